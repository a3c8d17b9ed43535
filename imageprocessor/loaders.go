// Package imageprocessor decodes image files and computes their perceptual hashes.
package imageprocessor

import (
	"fmt"
	"image"
)

// ImageLoader interface defines methods for image loading
type ImageLoader interface {
	// Name identifies the loader in debug logs
	Name() string

	// LoadImage decodes the file at path
	LoadImage(path string) (image.Image, error)
}

// ChainLoader tries each loader in order and returns the first decoded image
type ChainLoader struct {
	Loaders []ImageLoader
}

// Name lists the chained loaders
func (c *ChainLoader) Name() string {
	name := "chain("
	for i, l := range c.Loaders {
		if i > 0 {
			name += ","
		}
		name += l.Name()
	}
	return name + ")"
}

// LoadImage returns the first successful decode, or the last error
func (c *ChainLoader) LoadImage(path string) (image.Image, error) {
	var lastErr error
	for _, l := range c.Loaders {
		img, err := l.LoadImage(path)
		if err == nil {
			return img, nil
		}
		lastErr = err
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("no loaders configured")
	}
	return nil, newImageLoadError(lastErr.Error(), path)
}

// newImageLoadError creates a standardized error for image loading failures
func newImageLoadError(message, path string) error {
	return fmt.Errorf("%s: %s", message, path)
}
