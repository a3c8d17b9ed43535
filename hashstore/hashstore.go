// Package hashstore keeps the records of every accepted image, ordered by hash bytes.
package hashstore

import (
	"dupsweep/types"

	"github.com/google/btree"
)

const degree = 32

// Store maps hash values to records. It is not safe for concurrent use;
// callers serialise access (see engine.Engine).
type Store struct {
	tree *btree.BTreeG[types.HashRecord]
}

func lessRecord(a, b types.HashRecord) bool {
	return a.Hash.Compare(b.Hash) < 0
}

// New creates an empty store
func New() *Store {
	return &Store{
		tree: btree.NewG(degree, lessRecord),
	}
}

// Lookup returns the record stored under hash, if any
func (s *Store) Lookup(hash types.Hash) (types.HashRecord, bool) {
	return s.tree.Get(types.HashRecord{Hash: hash})
}

// Ascend calls fn for every record in ascending hash order until fn returns false
func (s *Store) Ascend(fn func(rec types.HashRecord) bool) {
	s.tree.Ascend(btree.ItemIteratorG[types.HashRecord](fn))
}

// Put inserts rec, replacing any record already stored under the same hash.
// The replaced record is returned.
func (s *Store) Put(rec types.HashRecord) (types.HashRecord, bool) {
	return s.tree.ReplaceOrInsert(rec)
}

// Remove deletes the record stored under hash
func (s *Store) Remove(hash types.Hash) (types.HashRecord, bool) {
	return s.tree.Delete(types.HashRecord{Hash: hash})
}

// Len returns the number of stored records
func (s *Store) Len() int {
	return s.tree.Len()
}

// Records returns a snapshot of all records in ascending hash order
func (s *Store) Records() []types.HashRecord {
	records := make([]types.HashRecord, 0, s.tree.Len())
	s.Ascend(func(rec types.HashRecord) bool {
		records = append(records, rec)
		return true
	})
	return records
}
