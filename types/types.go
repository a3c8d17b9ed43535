package types

import (
	"bytes"
	"encoding/hex"
	"time"
)

// Hash is a fixed-length perceptual hash. Two equal hashes mean an exact duplicate.
type Hash []byte

// Hex returns the lowercase hex encoding used for display
func (h Hash) Hex() string {
	return hex.EncodeToString(h)
}

// Equal reports whether two hashes carry the same bytes
func (h Hash) Equal(other Hash) bool {
	return bytes.Equal(h, other)
}

// Compare orders hashes by byte comparison
func (h Hash) Compare(other Hash) int {
	return bytes.Compare(h, other)
}

// Classification is the outcome of comparing a hash against the store
type Classification int

const (
	Unique Classification = iota
	Similar
	Duplicate
)

// String returns the short label printed in progress lines
func (c Classification) String() string {
	switch c {
	case Duplicate:
		return "dup"
	case Similar:
		return "sim"
	default:
		return "uniq"
	}
}

// HashRecord describes one accepted image. Records are never mutated once stored.
type HashRecord struct {
	Path      string
	Hash      Hash
	Size      int64
	CreatedAt time.Time
}

// Candidate is a freshly hashed image waiting to be classified
type Candidate struct {
	Path      string
	Hash      Hash
	Size      int64
	CreatedAt time.Time
}

// Record converts the candidate into the record that would be stored for it
func (c Candidate) Record() HashRecord {
	return HashRecord{
		Path:      c.Path,
		Hash:      c.Hash,
		Size:      c.Size,
		CreatedAt: c.CreatedAt,
	}
}

// Outcome is what the engine decided for one candidate
type Outcome struct {
	// Seq is the 1-based position of the candidate in store-update order
	Seq            int
	Candidate      Candidate
	Classification Classification
	Matched        *HashRecord
	Distance       int
	KeptPath       string
	DiscardedPath  string
	ReclaimedBytes int64
}

// Event is emitted once per successfully hashed image. Index is the display
// position and always counts up; Seq is the store-update order.
type Event struct {
	Index          int
	Seq            int
	Total          int
	Path           string
	HashHex        string
	Classification Classification
	MatchedPath    string
	Distance       int
	KeptPath       string
	DiscardedPath  string
}

// Summary holds the aggregate counters of one run
type Summary struct {
	Duplicates     int
	Similar        int
	Unique         int
	Skipped        int
	Total          int
	ReclaimedBytes int64
}

// Add increments the counter for the given classification
func (s *Summary) Add(c Classification) {
	switch c {
	case Duplicate:
		s.Duplicates++
	case Similar:
		s.Similar++
	default:
		s.Unique++
	}
}

// Processed returns the number of images that were classified
func (s Summary) Processed() int {
	return s.Duplicates + s.Similar + s.Unique
}
