//go:build gocv

package imageprocessor

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

func init() {
	fallbackLoaders = append(fallbackLoaders, func(bool) ImageLoader {
		return NewOpenCVImageLoader()
	})
}

// OpenCVImageLoader decodes files through OpenCV's imread. It reads formats
// the pure Go decoders reject, such as some TIFF variants.
type OpenCVImageLoader struct{}

// NewOpenCVImageLoader creates a new OpenCV-backed loader
func NewOpenCVImageLoader() *OpenCVImageLoader {
	return &OpenCVImageLoader{}
}

// Name implements ImageLoader
func (l *OpenCVImageLoader) Name() string {
	return "opencv"
}

// LoadImage loads the file with gocv and converts it to an image.Image
func (l *OpenCVImageLoader) LoadImage(path string) (image.Image, error) {
	mat := gocv.IMRead(path, gocv.IMReadColor)
	defer mat.Close()

	if mat.Empty() {
		return nil, fmt.Errorf("opencv failed to load image")
	}

	img, err := mat.ToImage()
	if err != nil {
		return nil, fmt.Errorf("opencv conversion failed: %w", err)
	}
	return img, nil
}
