package imageprocessor

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// StandardImageLoader decodes the formats registered with the image package:
// JPEG, PNG, GIF, BMP, TIFF and WebP. The format is sniffed from the content,
// so files with misleading extensions still decode.
type StandardImageLoader struct {
	AutoOrient bool
}

// NewStandardImageLoader creates a new loader for standard image formats
func NewStandardImageLoader(autoOrient bool) *StandardImageLoader {
	return &StandardImageLoader{AutoOrient: autoOrient}
}

// Name implements ImageLoader
func (l *StandardImageLoader) Name() string {
	return "standard"
}

// LoadImage loads a standard image format
func (l *StandardImageLoader) LoadImage(path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(l.AutoOrient))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}
