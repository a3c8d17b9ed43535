package database

import (
	"path/filepath"
	"testing"

	"dupsweep/types"
)

func TestJournalRoundTrip(t *testing.T) {
	db, err := InitDatabase(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("InitDatabase: %v", err)
	}
	defer db.Close()

	journal, err := BeginRun(db, RunInfo{Root: "/photos", DeleteEnabled: true, Threshold: 5})
	if err != nil {
		t.Fatalf("BeginRun: %v", err)
	}
	if journal.RunID() == "" {
		t.Fatal("empty run id")
	}

	events := []types.Event{
		{Index: 1, Seq: 1, Path: "/photos/x", HashHex: "00", Classification: types.Unique, KeptPath: "/photos/x"},
		{Index: 2, Seq: 2, Path: "/photos/y", HashHex: "00", Classification: types.Duplicate,
			MatchedPath: "/photos/x", KeptPath: "/photos/y", DiscardedPath: "/photos/x"},
		{Index: 3, Seq: 3, Path: "/photos/z", HashHex: "07", Classification: types.Similar, Distance: 3,
			MatchedPath: "/photos/y", KeptPath: "/photos/y", DiscardedPath: "/photos/z"},
	}
	for _, e := range events {
		if err := journal.RecordEvent(e); err != nil {
			t.Fatalf("RecordEvent: %v", err)
		}
	}

	summary := types.Summary{Duplicates: 1, Similar: 1, Unique: 1, Skipped: 2, ReclaimedBytes: 1500}
	if err := journal.FinishRun(summary); err != nil {
		t.Fatalf("FinishRun: %v", err)
	}

	stats, err := GetRunStats(db, journal.RunID())
	if err != nil {
		t.Fatalf("GetRunStats: %v", err)
	}
	want := RunStats{Duplicates: 1, Similar: 1, Unique: 1, Skipped: 2, Events: 3, Deleted: 2, ReclaimedBytes: 1500}
	if *stats != want {
		t.Errorf("stats = %+v, want %+v", *stats, want)
	}

	deleted, err := DeletedPaths(db, journal.RunID())
	if err != nil {
		t.Fatal(err)
	}
	if len(deleted) != 2 || deleted[0] != "/photos/x" || deleted[1] != "/photos/z" {
		t.Errorf("DeletedPaths = %v", deleted)
	}
}

func TestRunsAreSeparated(t *testing.T) {
	db, err := InitDatabase(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	first, err := BeginRun(db, RunInfo{Root: "/a"})
	if err != nil {
		t.Fatal(err)
	}
	first.RecordEvent(types.Event{Index: 1, Seq: 1, Path: "/a/1", HashHex: "ff"})
	first.FinishRun(types.Summary{Unique: 1})

	second, err := BeginRun(db, RunInfo{Root: "/a"})
	if err != nil {
		t.Fatal(err)
	}
	second.FinishRun(types.Summary{})

	if first.RunID() == second.RunID() {
		t.Fatal("run ids collide")
	}
	stats, err := GetRunStats(db, second.RunID())
	if err != nil {
		t.Fatal(err)
	}
	if stats.Events != 0 || stats.Unique != 0 {
		t.Errorf("second run sees first run's data: %+v", stats)
	}
}

func TestGetRunStatsUnknownRun(t *testing.T) {
	db, err := InitDatabase(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	if _, err := GetRunStats(db, "no-such-run"); err == nil {
		t.Error("expected error for unknown run")
	}
}
