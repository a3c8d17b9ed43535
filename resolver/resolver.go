package resolver

import (
	"dupsweep/types"
)

// Decision says which file survives a match and how the store changes
type Decision struct {
	Keep    string
	Discard string
	// Replace is set when the candidate takes the matched record's place in the store
	Replace bool
	// Insert is set when the candidate must be added to the store
	Insert bool
}

// Policy decides between a candidate and the record it matched
type Policy struct {
	DeleteEnabled bool
}

// New creates a policy
func New(deleteEnabled bool) *Policy {
	return &Policy{DeleteEnabled: deleteEnabled}
}

// Resolve decides the fate of a candidate. matched is nil for unique candidates.
//
// Without deletion only unique candidates are stored. With deletion the larger
// file wins; on equal size the older file wins, and on equal timestamps the
// stored record wins.
func (p *Policy) Resolve(candidate types.Candidate, matched *types.HashRecord) Decision {
	if matched == nil {
		return Decision{Keep: candidate.Path, Insert: true}
	}
	if !p.DeleteEnabled {
		return Decision{Keep: matched.Path}
	}

	if candidateWins(candidate, *matched) {
		return Decision{
			Keep:    candidate.Path,
			Discard: matched.Path,
			Replace: true,
			Insert:  true,
		}
	}
	return Decision{Keep: matched.Path, Discard: candidate.Path}
}

func candidateWins(candidate types.Candidate, matched types.HashRecord) bool {
	switch {
	case candidate.Size > matched.Size:
		return true
	case candidate.Size < matched.Size:
		return false
	}
	return candidate.CreatedAt.Before(matched.CreatedAt)
}
