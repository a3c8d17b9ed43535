package imageprocessor

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"os/exec"
	"strings"
	"sync"

	"dupsweep/logging"

	"github.com/barasher/go-exiftool"
	"github.com/disintegration/imaging"
)

// Preview tags tried in order, largest first
var previewTags = []string{
	"JpgFromRaw",
	"LargePreviewImage",
	"PreviewImage",
	"OtherImage",
	"ThumbnailImage",
}

const base64Prefix = "base64:"

// RawPreviewLoader decodes the JPEG preview embedded in camera RAW files.
// It keeps one exiftool process running for the lifetime of the loader.
type RawPreviewLoader struct {
	AutoOrient bool

	mu  sync.Mutex
	et  *exiftool.Exiftool
	err error
}

// NewRawPreviewLoader creates a loader that uses go-exiftool
func NewRawPreviewLoader(autoOrient bool) *RawPreviewLoader {
	return &RawPreviewLoader{AutoOrient: autoOrient}
}

// checkExiftoolCommandAvailable reports whether the exiftool binary is on PATH
func checkExiftoolCommandAvailable() bool {
	_, err := exec.LookPath("exiftool")
	return err == nil
}

// Name implements ImageLoader
func (l *RawPreviewLoader) Name() string {
	return "exiftool-preview"
}

// LoadImage extracts and decodes the first embedded preview. Only the exiftool
// call is serialised; decoding runs on the caller's goroutine.
func (l *RawPreviewLoader) LoadImage(path string) (image.Image, error) {
	fileInfo, err := l.extract(path)
	if err != nil {
		return nil, err
	}
	return decodePreview(fileInfo, path, l.AutoOrient)
}

// extract runs exiftool on path. The exiftool process reads one request at a
// time, so calls are serialised.
func (l *RawPreviewLoader) extract(path string) (exiftool.FileMetadata, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.et == nil && l.err == nil {
		l.et, l.err = exiftool.NewExiftool(exiftool.ExtractAllBinaryMetadata())
		if l.err != nil {
			logging.LogError("Failed to initialize exiftool: %v", l.err)
		}
	}
	if l.err != nil {
		return exiftool.FileMetadata{}, fmt.Errorf("exiftool unavailable: %w", l.err)
	}

	fileInfos := l.et.ExtractMetadata(path)
	if len(fileInfos) == 0 {
		return exiftool.FileMetadata{}, fmt.Errorf("no metadata extracted")
	}
	fileInfo := fileInfos[0]
	if fileInfo.Err != nil {
		return exiftool.FileMetadata{}, fmt.Errorf("error extracting metadata: %w", fileInfo.Err)
	}
	return fileInfo, nil
}

// decodePreview decodes the largest usable preview tag of fileInfo
func decodePreview(fileInfo exiftool.FileMetadata, path string, autoOrient bool) (image.Image, error) {
	for _, tag := range previewTags {
		value, err := fileInfo.GetString(tag)
		if err != nil || !strings.HasPrefix(value, base64Prefix) {
			continue
		}
		data, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(value, base64Prefix))
		if err != nil {
			logging.LogWarning("Invalid %s payload in %s: %v", tag, path, err)
			continue
		}
		img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(autoOrient))
		if err != nil {
			logging.LogWarning("Cannot decode %s from %s: %v", tag, path, err)
			continue
		}
		logging.DebugLog("Decoded %s preview from %s", tag, path)
		return img, nil
	}

	return nil, fmt.Errorf("no decodable preview image")
}

// Close stops the exiftool process
func (l *RawPreviewLoader) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.et == nil {
		return nil
	}
	err := l.et.Close()
	l.et = nil
	return err
}
