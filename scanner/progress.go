package scanner

import (
	"dupsweep/logging"
	"dupsweep/types"
)

// ProgressTracker is the single consumer of processing results. It owns the
// counters, turns outcomes into events and forwards them to the reporter and
// the journal.
type ProgressTracker struct {
	root       string
	summary    types.Summary
	reporter   Reporter
	journal    Journal
	journalErr error
	position   int
}

// NewProgressTracker initializes the tracker and announces the run to the reporter
func NewProgressTracker(root string, totalFiles int, reporter Reporter, journal Journal) *ProgressTracker {
	tracker := &ProgressTracker{
		root:     root,
		summary:  types.Summary{Total: totalFiles},
		reporter: reporter,
		journal:  journal,
	}
	if reporter != nil {
		reporter.Start(root, totalFiles)
	}
	return tracker
}

// ProcessResults consumes results until the channel is closed
func (p *ProgressTracker) ProcessResults(resultsChan <-chan ProcessImageResult) {
	for result := range resultsChan {
		p.handle(result)
	}
}

func (p *ProgressTracker) handle(result ProcessImageResult) {
	// skipped files still take their slot in the count
	p.position++
	if result.Skipped {
		p.summary.Skipped++
		return
	}

	outcome := result.Outcome
	p.summary.Add(outcome.Classification)
	p.summary.ReclaimedBytes += outcome.ReclaimedBytes

	event := NewEvent(outcome, p.position, p.summary.Total)
	if p.reporter != nil {
		p.reporter.Report(event)
	}
	if p.journal != nil && p.journalErr == nil {
		if err := p.journal.RecordEvent(event); err != nil {
			logging.LogError("Cannot journal %s: %v", event.Path, err)
			p.journalErr = err
		}
	}
}

// NewEvent builds the display event for an outcome shown at position index
func NewEvent(outcome types.Outcome, index, total int) types.Event {
	event := types.Event{
		Index:          index,
		Seq:            outcome.Seq,
		Total:          total,
		Path:           outcome.Candidate.Path,
		HashHex:        outcome.Candidate.Hash.Hex(),
		Classification: outcome.Classification,
		Distance:       outcome.Distance,
		KeptPath:       outcome.KeptPath,
		DiscardedPath:  outcome.DiscardedPath,
	}
	if outcome.Matched != nil {
		event.MatchedPath = outcome.Matched.Path
	}
	return event
}

// Summary returns the counters gathered so far
func (p *ProgressTracker) Summary() types.Summary {
	return p.summary
}

// JournalErr returns the first journal write error
func (p *ProgressTracker) JournalErr() error {
	return p.journalErr
}

// Finish hands the final summary to the reporter
func (p *ProgressTracker) Finish() {
	if p.reporter != nil {
		p.reporter.Finish(p.summary)
	}
}
