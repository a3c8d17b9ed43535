// Package report renders classification events and the run summary.
package report

import (
	"fmt"
	"io"

	"dupsweep/types"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
)

type palette struct {
	dup  *color.Color
	sim  *color.Color
	uniq *color.Color
	hash *color.Color
}

func newPalette(noColor bool) palette {
	p := palette{
		dup:  color.New(color.FgHiRed),
		sim:  color.New(color.FgHiYellow),
		uniq: color.New(color.FgHiCyan),
		hash: color.New(color.FgHiBlack),
	}
	if noColor {
		p.dup.DisableColor()
		p.sim.DisableColor()
		p.uniq.DisableColor()
		p.hash.DisableColor()
	}
	return p
}

// matchNote returns the comparison shown for duplicates and similar images,
// or an empty string for unique ones
func (p palette) matchNote(event types.Event) string {
	switch event.Classification {
	case types.Duplicate:
		return fmt.Sprintf("%s %s == %s", p.dup.Sprint("dup"), event.Path, event.MatchedPath)
	case types.Similar:
		return fmt.Sprintf("%s %s ~= %s", p.sim.Sprint("sim"), event.Path, event.MatchedPath)
	}
	return ""
}

func (p palette) summary(summary types.Summary) string {
	line := fmt.Sprintf("%d %s, %d %s, %d %s",
		summary.Duplicates, p.dup.Sprint("dup"),
		summary.Similar, p.sim.Sprint("sim"),
		summary.Unique, p.uniq.Sprint("uniq"))
	if summary.ReclaimedBytes > 0 {
		line += fmt.Sprintf(", %s reclaimed", HumanReadableSize(summary.ReclaimedBytes))
	}
	return line
}

// LineReporter prints one progress line per image. Lines for unique images
// are overwritten by the next one; duplicate and similar lines are kept.
type LineReporter struct {
	out     io.Writer
	palette palette
}

// NewLineReporter creates a reporter writing to out
func NewLineReporter(out io.Writer, noColor bool) *LineReporter {
	return &LineReporter{out: out, palette: newPalette(noColor)}
}

// Start implements scanner.Reporter
func (r *LineReporter) Start(root string, total int) {}

// Report implements scanner.Reporter
func (r *LineReporter) Report(event types.Event) {
	fmt.Fprintf(r.out, "%d/%d %s %s\r", event.Index, event.Total, r.palette.hash.Sprint(event.HashHex), r.palette.matchNote(event))
	if event.Classification != types.Unique {
		fmt.Fprintln(r.out)
	}
}

// Finish implements scanner.Reporter. Trailing spaces clear what is left of
// the last overwritten line.
func (r *LineReporter) Finish(summary types.Summary) {
	fmt.Fprintf(r.out, "%s        \n", r.palette.summary(summary))
}

// BarReporter shows a progress bar and prints only matches above it
type BarReporter struct {
	out     io.Writer
	palette palette
	bar     *progressbar.ProgressBar
}

// NewBarReporter creates a progress bar reporter writing to out
func NewBarReporter(out io.Writer, noColor bool) *BarReporter {
	return &BarReporter{out: out, palette: newPalette(noColor)}
}

// Start implements scanner.Reporter
func (r *BarReporter) Start(root string, total int) {
	r.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(r.out),
		progressbar.OptionSetDescription(fmt.Sprintf("Hashing %s", root)),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionThrottle(65),
		progressbar.OptionEnableColorCodes(false),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(r.out, "\n")
		}),
	)
}

// Report implements scanner.Reporter
func (r *BarReporter) Report(event types.Event) {
	if note := r.palette.matchNote(event); note != "" {
		r.bar.Clear()
		fmt.Fprintln(r.out, note)
	}
	r.bar.Add(1)
}

// Finish implements scanner.Reporter
func (r *BarReporter) Finish(summary types.Summary) {
	r.bar.Finish()
	fmt.Fprintln(r.out, r.palette.summary(summary))
}

// HumanReadableSize formats a byte count with binary units
func HumanReadableSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), "KMGTPE"[exp])
}
