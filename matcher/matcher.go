package matcher

import (
	"fmt"
	"math/bits"

	"dupsweep/hashstore"
	"dupsweep/types"
)

// DefaultThreshold is the largest bit distance still reported as similar
const DefaultThreshold = 5

// Match is the result of classifying one hash
type Match struct {
	Classification types.Classification
	Record         *types.HashRecord
	Distance       int
}

// Distance counts the differing bits of two equal-length hashes.
// Hashes of different length come from mismatched hashers and panic.
func Distance(a, b types.Hash) int {
	if len(a) != len(b) {
		panic(fmt.Sprintf("matcher: hash length mismatch (%d != %d)", len(a), len(b)))
	}
	diff := 0
	for i := range a {
		diff += bits.OnesCount8(a[i] ^ b[i])
	}
	return diff
}

// Matcher classifies hashes against a store with a fixed threshold
type Matcher struct {
	Threshold int
}

// New creates a matcher with the given bit-distance threshold
func New(threshold int) *Matcher {
	return &Matcher{Threshold: threshold}
}

// Classify looks for an exact match first, then for the first record in
// ascending hash order within the threshold. The first hit wins, not the closest.
func (m *Matcher) Classify(store *hashstore.Store, hash types.Hash) Match {
	if rec, ok := store.Lookup(hash); ok {
		return Match{Classification: types.Duplicate, Record: &rec}
	}

	var found *types.HashRecord
	distance := 0
	store.Ascend(func(rec types.HashRecord) bool {
		d := Distance(hash, rec.Hash)
		if d <= m.Threshold {
			r := rec
			found = &r
			distance = d
			return false
		}
		return true
	})

	if found == nil {
		return Match{Classification: types.Unique}
	}
	return Match{Classification: types.Similar, Record: found, Distance: distance}
}
