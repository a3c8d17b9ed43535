package report

import (
	"bytes"
	"strings"
	"testing"

	"dupsweep/types"
)

func TestLineReporter(t *testing.T) {
	var buf bytes.Buffer
	r := NewLineReporter(&buf, true)

	r.Start("/photos", 3)
	r.Report(types.Event{Index: 1, Total: 3, Path: "/photos/a", HashHex: "00ff", Classification: types.Unique})
	r.Report(types.Event{Index: 2, Total: 3, Path: "/photos/b", HashHex: "00ff",
		Classification: types.Duplicate, MatchedPath: "/photos/a"})
	r.Report(types.Event{Index: 3, Total: 3, Path: "/photos/c", HashHex: "00fe",
		Classification: types.Similar, MatchedPath: "/photos/a", Distance: 1})
	r.Finish(types.Summary{Duplicates: 1, Similar: 1, Unique: 1})

	want := "1/3 00ff \r" +
		"2/3 00ff dup /photos/b == /photos/a\r\n" +
		"3/3 00fe sim /photos/c ~= /photos/a\r\n" +
		"1 dup, 1 sim, 1 uniq        \n"
	if buf.String() != want {
		t.Errorf("output mismatch\ngot:  %q\nwant: %q", buf.String(), want)
	}
}

func TestSummaryMentionsReclaimedBytes(t *testing.T) {
	var buf bytes.Buffer
	r := NewLineReporter(&buf, true)
	r.Finish(types.Summary{Duplicates: 2, ReclaimedBytes: 3 * 1024 * 1024})

	if !strings.Contains(buf.String(), "2 dup, 0 sim, 0 uniq, 3.0 MB reclaimed") {
		t.Errorf("summary = %q", buf.String())
	}
}

func TestBarReporterPrintsMatches(t *testing.T) {
	var buf bytes.Buffer
	r := NewBarReporter(&buf, true)

	r.Start("/photos", 2)
	r.Report(types.Event{Index: 1, Total: 2, Path: "/photos/a", Classification: types.Unique})
	r.Report(types.Event{Index: 2, Total: 2, Path: "/photos/b",
		Classification: types.Duplicate, MatchedPath: "/photos/a"})
	r.Finish(types.Summary{Duplicates: 1, Unique: 1})

	out := buf.String()
	if !strings.Contains(out, "dup /photos/b == /photos/a") {
		t.Errorf("match line missing from %q", out)
	}
	if strings.Contains(out, "/photos/a ==") {
		t.Errorf("unique image reported as a match: %q", out)
	}
	if !strings.Contains(out, "1 dup, 0 sim, 1 uniq") {
		t.Errorf("summary missing from %q", out)
	}
}

func TestHumanReadableSize(t *testing.T) {
	tests := []struct {
		size int64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{5 * 1024 * 1024, "5.0 MB"},
		{1 << 30, "1.0 GB"},
	}
	for _, tt := range tests {
		if got := HumanReadableSize(tt.size); got != tt.want {
			t.Errorf("HumanReadableSize(%d) = %q, want %q", tt.size, got, tt.want)
		}
	}
}
