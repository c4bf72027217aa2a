package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestColorEnabledRespectsExplicitMode(t *testing.T) {
	if !colorEnabled("on") {
		t.Fatalf("expected color mode \"on\" to enable color")
	}
	if colorEnabled("off") {
		t.Fatalf("expected color mode \"off\" to disable color")
	}
	if colorEnabled("ON") != colorEnabled("on") {
		t.Fatalf("expected color mode matching to be case-insensitive")
	}
}

func TestCollectTimFilesDeduplicatesAndSorts(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.tim", "a.tim", "not-tim.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("func f(): void {}"), 0o644); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	direct := filepath.Join(dir, "a.tim")
	got, err := collectTimFiles([]string{dir, direct})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{filepath.Join(dir, "a.tim"), filepath.Join(dir, "b.tim")}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestCollectTimFilesWalksNestedDirectories(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "sub")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := os.WriteFile(filepath.Join(nested, "c.tim"), []byte("func f(): void {}"), 0o644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := collectTimFiles([]string{dir})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0] != filepath.Join(nested, "c.tim") {
		t.Fatalf("expected to find the nested file, got %v", got)
	}
}

func TestCollectTimFilesRejectsMissingPath(t *testing.T) {
	if _, err := collectTimFiles([]string{filepath.Join(t.TempDir(), "missing.tim")}); err == nil {
		t.Fatalf("expected an error for a nonexistent path")
	}
}
