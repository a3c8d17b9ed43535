// Package engine runs the classify, resolve and store-update sequence for each
// candidate as one critical section over the shared hash store.
package engine

import (
	"fmt"
	"os"
	"sync"

	"dupsweep/hashstore"
	"dupsweep/logging"
	"dupsweep/matcher"
	"dupsweep/resolver"
	"dupsweep/types"
)

// Remover deletes discarded files
type Remover interface {
	Remove(path string) error
}

// OSRemover removes files from the local filesystem
type OSRemover struct{}

// Remove deletes the file at path
func (OSRemover) Remove(path string) error {
	return os.Remove(path)
}

// Options configures an Engine
type Options struct {
	Threshold     int
	DeleteEnabled bool
	Remover       Remover
}

// Engine owns the hash store. Process may be called from many goroutines.
type Engine struct {
	mu      sync.Mutex
	store   *hashstore.Store
	matcher *matcher.Matcher
	policy  *resolver.Policy
	remover Remover
	seq     int
}

// New creates an engine with an empty store
func New(options Options) *Engine {
	remover := options.Remover
	if remover == nil {
		remover = OSRemover{}
	}
	return &Engine{
		store:   hashstore.New(),
		matcher: matcher.New(options.Threshold),
		policy:  resolver.New(options.DeleteEnabled),
		remover: remover,
	}
}

// Process classifies a candidate against the current store, applies the
// resolution policy and updates the store. The lock is held from the lookup
// until the store update so no other candidate observes a half-applied result.
func (e *Engine) Process(candidate types.Candidate) (types.Outcome, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.seq++
	match := e.matcher.Classify(e.store, candidate.Hash)
	decision := e.policy.Resolve(candidate, match.Record)

	outcome := types.Outcome{
		Seq:            e.seq,
		Candidate:      candidate,
		Classification: match.Classification,
		Matched:        match.Record,
		Distance:       match.Distance,
		KeptPath:       decision.Keep,
		DiscardedPath:  decision.Discard,
	}

	if decision.Discard != "" {
		if err := e.remover.Remove(decision.Discard); err != nil {
			return outcome, fmt.Errorf("cannot delete %s: %w", decision.Discard, err)
		}
		if decision.Discard == candidate.Path {
			outcome.ReclaimedBytes = candidate.Size
		} else {
			outcome.ReclaimedBytes = match.Record.Size
		}
		logging.DebugLog("Deleted %s (kept %s)", decision.Discard, decision.Keep)
	}

	if decision.Replace {
		e.store.Remove(match.Record.Hash)
	}
	if decision.Insert {
		e.store.Put(candidate.Record())
	}

	return outcome, nil
}

// Records returns a snapshot of the store in ascending hash order
func (e *Engine) Records() []types.HashRecord {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.Records()
}
