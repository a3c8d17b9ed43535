package imageprocessor

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"dupsweep/testutil"
)

// reversed mirrors img horizontally
func reversed(img image.Image) image.Image {
	b := img.Bounds()
	out := image.NewGray(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			out.Set(b.Max.X-1-(x-b.Min.X), y, color.GrayModel.Convert(img.At(x, y)))
		}
	}
	return out
}

func TestParseHashAlgorithm(t *testing.T) {
	tests := []struct {
		name    string
		want    HashAlgorithm
		wantErr bool
	}{
		{"", HashDifference, false},
		{"average", HashAverage, false},
		{"difference", HashDifference, false},
		{"perception", HashPerception, false},
		{"sha256", "", true},
	}
	for _, tt := range tests {
		got, err := ParseHashAlgorithm(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseHashAlgorithm(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseHashAlgorithm(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestComputeHash(t *testing.T) {
	for _, algorithm := range []HashAlgorithm{HashAverage, HashDifference, HashPerception} {
		t.Run(string(algorithm), func(t *testing.T) {
			a, err := ComputeHash(testutil.Gradient(64, 64, 0), algorithm)
			if err != nil {
				t.Fatal(err)
			}
			if len(a) != HashSize {
				t.Fatalf("hash length = %d, want %d", len(a), HashSize)
			}
			b, err := ComputeHash(testutil.Gradient(64, 64, 0), algorithm)
			if err != nil {
				t.Fatal(err)
			}
			if !a.Equal(b) {
				t.Errorf("identical images hash differently: %s vs %s", a.Hex(), b.Hex())
			}
		})
	}
}

func TestDifferenceHashSurvivesResize(t *testing.T) {
	small, err := ComputeHash(testutil.Gradient(64, 64, 0), HashDifference)
	if err != nil {
		t.Fatal(err)
	}
	large, err := ComputeHash(testutil.Gradient(256, 256, 0), HashDifference)
	if err != nil {
		t.Fatal(err)
	}
	if !small.Equal(large) {
		t.Errorf("resized copy hashes differently: %s vs %s", small.Hex(), large.Hex())
	}

	mirrored, err := ComputeHash(reversed(testutil.Gradient(64, 64, 0)), HashDifference)
	if err != nil {
		t.Fatal(err)
	}
	if small.Equal(mirrored) {
		t.Error("mirrored gradient hashes the same as the original")
	}
}

func TestComputeHashUnknownAlgorithm(t *testing.T) {
	if _, err := ComputeHash(testutil.Gradient(8, 8, 0), "crc32"); err == nil {
		t.Error("expected error for unknown algorithm")
	}
}

func TestHasherHashFile(t *testing.T) {
	dir := t.TempDir()
	registry := NewImageLoaderRegistry(RegistryOptions{DisableExiftool: true})
	defer registry.Close()
	hasher := NewHasher(registry, HashDifference)

	img := testutil.Gradient(64, 64, 0)
	path := testutil.WritePNG(t, dir, "gradient.png", img)

	got, err := hasher.HashFile(path)
	if err != nil {
		t.Fatalf("HashFile: %v", err)
	}
	want, err := ComputeHash(img, HashDifference)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(want) {
		t.Errorf("HashFile = %s, want %s", got.Hex(), want.Hex())
	}

	// content sniffing ignores the extension
	renamed := filepath.Join(dir, "gradient.dat")
	if err := os.Rename(path, renamed); err != nil {
		t.Fatal(err)
	}
	if _, err := hasher.HashFile(renamed); err != nil {
		t.Errorf("HashFile with unknown extension: %v", err)
	}
}

func TestHasherRejectsNonImages(t *testing.T) {
	dir := t.TempDir()
	registry := NewImageLoaderRegistry(RegistryOptions{DisableExiftool: true})
	defer registry.Close()
	hasher := NewHasher(registry, HashDifference)

	for _, name := range []string{"notes.txt", "fake.png", "fake.cr3"} {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte("definitely not an image"), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := hasher.HashFile(path); err == nil {
			t.Errorf("HashFile(%s) succeeded on garbage", name)
		}
	}

	if _, err := hasher.HashFile(filepath.Join(dir, "missing.jpg")); err == nil {
		t.Error("HashFile succeeded on a missing file")
	}
}
