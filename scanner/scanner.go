package scanner

import (
	"context"
	"fmt"
	"time"

	"dupsweep/engine"
	"dupsweep/logging"
	"dupsweep/types"

	"golang.org/x/sync/errgroup"
)

// Run classifies every regular file in options.FolderPath. Hashing runs on
// options.Workers goroutines; the engine serialises store access. A fatal
// error (unreadable folder or metadata, failed delete) aborts the run and is
// returned along with the counters gathered so far.
//
// Which file of a cluster survives depends on scheduling order when more than
// one worker is used, so repeated --delete runs may keep different files.
func Run(ctx context.Context, options ScanOptions) (types.Summary, error) {
	if options.Hasher == nil {
		return types.Summary{}, fmt.Errorf("scanner: no hasher configured")
	}
	if options.Metadata == nil {
		options.Metadata = OSMetadata{}
	}
	workers := options.Workers
	if workers < 1 {
		workers = 1
	}

	paths, err := ListFiles(options.FolderPath)
	if err != nil {
		return types.Summary{}, err
	}

	logging.DebugLog("Starting scan of %s: %d files, %d workers, threshold %d, delete %v",
		options.FolderPath, len(paths), workers, options.Threshold, options.DeleteEnabled)

	eng := engine.New(engine.Options{
		Threshold:     options.Threshold,
		DeleteEnabled: options.DeleteEnabled,
		Remover:       options.Remover,
	})

	tracker := NewProgressTracker(options.FolderPath, len(paths), options.Reporter, options.Journal)

	startTime := time.Now()
	resultsChan := make(chan ProcessImageResult, workers*2)
	group, gctx := errgroup.WithContext(ctx)

	pathsChan := make(chan string)
	group.Go(func() error {
		defer close(pathsChan)
		for _, p := range paths {
			if err := gctx.Err(); err != nil {
				return err
			}
			select {
			case <-gctx.Done():
				return gctx.Err()
			case pathsChan <- p:
			}
		}
		return nil
	})

	for i := 0; i < workers; i++ {
		group.Go(func() error {
			for p := range pathsChan {
				result, err := processImage(eng, p, options)
				if err != nil {
					return err
				}
				resultsChan <- result
			}
			return nil
		})
	}

	waitErr := make(chan error, 1)
	go func() {
		waitErr <- group.Wait()
		close(resultsChan)
	}()

	tracker.ProcessResults(resultsChan)
	err = <-waitErr

	summary := tracker.Summary()
	logging.DebugLog("Scan finished in %v: %d dup, %d sim, %d uniq, %d skipped",
		time.Since(startTime), summary.Duplicates, summary.Similar, summary.Unique, summary.Skipped)

	if err != nil {
		return summary, err
	}
	// every file was classified; the summary is shown even if journaling failed
	tracker.Finish()
	if err := tracker.JournalErr(); err != nil {
		return summary, fmt.Errorf("journal: %w", err)
	}
	return summary, nil
}

// processImage hashes one file and runs it through the engine. Decode failures
// produce a skipped result; metadata and delete failures are returned as errors.
func processImage(eng *engine.Engine, path string, options ScanOptions) (ProcessImageResult, error) {
	result := ProcessImageResult{Path: path}

	hash, err := options.Hasher.HashFile(path)
	if err != nil {
		logging.LogImageProcessed(path, "", err)
		result.Skipped = true
		result.Error = err
		return result, nil
	}

	meta, err := options.Metadata.Stat(path)
	if err != nil {
		return result, err
	}

	outcome, err := eng.Process(types.Candidate{
		Path:      path,
		Hash:      hash,
		Size:      meta.Size,
		CreatedAt: meta.CreatedAt,
	})
	if err != nil {
		return result, err
	}

	logging.LogImageProcessed(path, outcome.Classification.String(), nil)
	result.Outcome = outcome
	return result, nil
}
