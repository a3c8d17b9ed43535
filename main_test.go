package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"dupsweep/testutil"
)

func TestExecuteUsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing path", []string{}},
		{"extra path", []string{"a", "b"}},
		{"unknown flag", []string{"--frobnicate", "a"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			if code := execute(tt.args, &stdout, &stderr); code == 0 {
				t.Fatal("exit status 0, want non-zero")
			}
			if !strings.Contains(stderr.String(), "Usage:") {
				t.Errorf("usage missing from stderr: %q", stderr.String())
			}
			if !strings.Contains(stderr.String(), "Error:") {
				t.Errorf("error missing from stderr: %q", stderr.String())
			}
			if stdout.Len() != 0 {
				t.Errorf("unexpected stdout: %q", stdout.String())
			}
		})
	}
}

func TestExecuteRejectsFile(t *testing.T) {
	path := testutil.CreateTestFileWithSize(t, t.TempDir(), "not-a-dir.jpg", 10)

	var stdout, stderr bytes.Buffer
	if code := execute([]string{path}, &stdout, &stderr); code != 1 {
		t.Fatalf("exit status %d, want 1", code)
	}
	if !strings.HasPrefix(stderr.String(), "Error:") {
		t.Errorf("stderr = %q", stderr.String())
	}
	if strings.Contains(stderr.String(), "Usage:") {
		t.Errorf("runtime error printed usage: %q", stderr.String())
	}
}

func TestExecuteClassifiesFolder(t *testing.T) {
	dir := t.TempDir()
	testutil.WritePNG(t, dir, "a.png", testutil.Gradient(64, 64, 0))
	testutil.WritePNG(t, dir, "b.png", testutil.Gradient(64, 64, 0))
	testutil.CreateTestFileWithSize(t, dir, "notes.txt", 20)

	var stdout, stderr bytes.Buffer
	code := execute([]string{"--no-color", "--workers", "1", dir}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit status %d, stderr %q", code, stderr.String())
	}
	out := stdout.String()
	if !strings.Contains(out, "dup "+filepath.Join(dir, "b.png")+" == "+filepath.Join(dir, "a.png")) {
		t.Errorf("duplicate line missing from %q", out)
	}
	if !strings.Contains(out, "1 dup, 0 sim, 1 uniq") {
		t.Errorf("summary missing from %q", out)
	}
	for _, name := range []string{"a.png", "b.png", "notes.txt"} {
		if !testutil.FileExists(t, filepath.Join(dir, name)) {
			t.Errorf("%s removed without --delete", name)
		}
	}
}

func TestExecuteDeleteKeepsOneCopy(t *testing.T) {
	dir := t.TempDir()
	testutil.WritePNG(t, dir, "a.png", testutil.Gradient(64, 64, 0))
	testutil.WritePNG(t, dir, "b.png", testutil.Gradient(64, 64, 0))

	var stdout, stderr bytes.Buffer
	if code := execute([]string{"-d", "--no-color", "-w", "1", dir}, &stdout, &stderr); code != 0 {
		t.Fatalf("exit status %d, stderr %q", code, stderr.String())
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("%d files remain, want 1", len(entries))
	}
}

func TestFlagsOverrideConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dupsweep.yaml")
	if err := os.WriteFile(path, []byte("threshold: 8\nworkers: 2\nhash_algorithm: average\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cmd := newRootCmd()
	if err := cmd.ParseFlags([]string{"--config", path, "--threshold", "3"}); err != nil {
		t.Fatal(err)
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Threshold != 3 {
		t.Errorf("Threshold = %d, want flag value 3", cfg.Threshold)
	}
	if cfg.Workers != 2 || cfg.HashAlgorithm != "average" {
		t.Errorf("config file values lost: %+v", cfg)
	}
}

func TestInvalidConfigIsRejected(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := execute([]string{"--threshold", "99", t.TempDir()}, &stdout, &stderr)
	if code != 1 {
		t.Fatalf("exit status %d, want 1", code)
	}
	if !strings.Contains(stderr.String(), "threshold must be between 0 and 64") {
		t.Errorf("stderr = %q", stderr.String())
	}
}
