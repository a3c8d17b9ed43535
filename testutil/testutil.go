// Package testutil provides common testing utilities for dupsweep
package testutil

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"dupsweep/types"
)

// CreateTestFileWithSize creates a file of exactly size bytes
func CreateTestFileWithSize(t *testing.T, dir, filename string, size int64) string {
	t.Helper()
	filePath := filepath.Join(dir, filename)

	if err := os.WriteFile(filePath, make([]byte, size), 0o644); err != nil {
		t.Fatalf("Failed to create test file %s: %v", filePath, err)
	}
	return filePath
}

// WritePNG encodes img as a PNG file in dir
func WritePNG(t *testing.T, dir, filename string, img image.Image) string {
	t.Helper()
	filePath := filepath.Join(dir, filename)

	f, err := os.Create(filePath)
	if err != nil {
		t.Fatalf("Failed to create %s: %v", filePath, err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		t.Fatalf("Failed to encode %s: %v", filePath, err)
	}
	return filePath
}

// Gradient returns a w x h grayscale image whose brightness grows left to right.
// Shifting offset changes the picture enough to alter its hashes.
func Gradient(w, h int, offset int) image.Image {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetGray(x, y, color.Gray{Y: uint8((x*255/w + y*offset) % 256)})
		}
	}
	return img
}

// Hash builds an 8-byte hash from the given leading bytes, zero-padded
func Hash(b ...byte) types.Hash {
	h := make(types.Hash, 8)
	copy(h, b)
	return h
}

// FileExists reports whether path exists
func FileExists(t *testing.T, path string) bool {
	t.Helper()
	_, err := os.Stat(path)
	if err != nil && !os.IsNotExist(err) {
		t.Fatalf("Failed to stat %s: %v", path, err)
	}
	return err == nil
}
