package imageprocessor

import (
	"encoding/binary"
	"fmt"
	"image"

	"dupsweep/types"

	"github.com/corona10/goimagehash"
)

// HashAlgorithm selects the perceptual hash function
type HashAlgorithm string

const (
	HashAverage    HashAlgorithm = "average"
	HashDifference HashAlgorithm = "difference"
	HashPerception HashAlgorithm = "perception"
)

// HashSize is the length in bytes of every hash produced here
const HashSize = 8

// ParseHashAlgorithm validates an algorithm name
func ParseHashAlgorithm(name string) (HashAlgorithm, error) {
	switch HashAlgorithm(name) {
	case HashAverage, HashDifference, HashPerception:
		return HashAlgorithm(name), nil
	case "":
		return HashDifference, nil
	}
	return "", fmt.Errorf("unknown hash algorithm %q", name)
}

// ComputeHash hashes a decoded image into a fixed 8-byte big-endian value
func ComputeHash(img image.Image, algorithm HashAlgorithm) (types.Hash, error) {
	var (
		h   *goimagehash.ImageHash
		err error
	)
	switch algorithm {
	case HashAverage:
		h, err = goimagehash.AverageHash(img)
	case HashPerception:
		h, err = goimagehash.PerceptionHash(img)
	case HashDifference, "":
		h, err = goimagehash.DifferenceHash(img)
	default:
		return nil, fmt.Errorf("unknown hash algorithm %q", algorithm)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot compute %s hash: %w", algorithm, err)
	}

	out := make(types.Hash, HashSize)
	binary.BigEndian.PutUint64(out, h.GetHash())
	return out, nil
}

// Hasher decodes files through a loader registry and hashes them
type Hasher struct {
	registry  *ImageLoaderRegistry
	algorithm HashAlgorithm
}

// NewHasher creates a hasher
func NewHasher(registry *ImageLoaderRegistry, algorithm HashAlgorithm) *Hasher {
	return &Hasher{registry: registry, algorithm: algorithm}
}

// HashFile decodes and hashes the file at path. Any error means the file is not
// a readable image.
func (h *Hasher) HashFile(path string) (types.Hash, error) {
	img, err := h.registry.LoadImage(path)
	if err != nil {
		return nil, err
	}
	return ComputeHash(img, h.algorithm)
}
