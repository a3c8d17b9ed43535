package scanner

import (
	"time"

	"dupsweep/engine"
	"dupsweep/types"
)

// Hasher turns a file into a perceptual hash. An error marks the file as not
// decodable; it is skipped.
type Hasher interface {
	HashFile(path string) (types.Hash, error)
}

// FileMetadata holds the filesystem facts the resolution policy needs
type FileMetadata struct {
	Size      int64
	CreatedAt time.Time
}

// MetadataReader reads size and creation time of a file
type MetadataReader interface {
	Stat(path string) (FileMetadata, error)
}

// Reporter renders events as they arrive. Calls come from a single goroutine.
type Reporter interface {
	Start(root string, total int)
	Report(event types.Event)
	Finish(summary types.Summary)
}

// Journal persists events of a run
type Journal interface {
	RecordEvent(event types.Event) error
}

// ScanOptions defines the options for scanning
type ScanOptions struct {
	FolderPath    string
	Workers       int
	Threshold     int
	DeleteEnabled bool

	Hasher   Hasher
	Metadata MetadataReader
	Remover  engine.Remover
	Reporter Reporter
	Journal  Journal
}

// ProcessImageResult holds the result of processing one file
type ProcessImageResult struct {
	Path    string
	Outcome types.Outcome
	Skipped bool
	Error   error
}
