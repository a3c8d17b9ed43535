//go:build !linux

package scanner

import (
	"fmt"
	"os"
)

// OSMetadata reads metadata with os.Stat. Birth time is not portable, so the
// modification time stands in for the creation time.
type OSMetadata struct{}

// Stat implements MetadataReader
func (OSMetadata) Stat(path string) (FileMetadata, error) {
	info, err := os.Stat(path)
	if err != nil {
		return FileMetadata{}, fmt.Errorf("cannot stat file %s: %w", path, err)
	}
	return FileMetadata{
		Size:      info.Size(),
		CreatedAt: info.ModTime(),
	}, nil
}
