package project_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"tim/internal/project"
)

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("unexpected error creating %q: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("unexpected error writing %q: %v", path, err)
	}
}

func TestFindManifestWalksUpFromNestedDirectory(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "tim.toml"), "[package]\nname = \"demo\"\nentry = \"src/main.tim\"\n")
	writeFile(t, filepath.Join(root, "src", "main.tim"), "func main(): void {}\n")

	nested := filepath.Join(root, "src", "nested", "deeper")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	m, err := project.FindManifest(nested)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Config.Package.Name != "demo" {
		t.Fatalf("expected package name %q, got %q", "demo", m.Config.Package.Name)
	}
	want, err := filepath.Abs(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Root != want {
		t.Fatalf("expected manifest root %q, got %q", want, m.Root)
	}
}

func TestFindManifestReturnsErrNoManifest(t *testing.T) {
	dir := t.TempDir()
	_, err := project.FindManifest(dir)
	if !errors.Is(err, project.ErrNoManifest) {
		t.Fatalf("expected ErrNoManifest, got %v", err)
	}
}

func TestFindManifestRejectsMissingPackageTable(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "tim.toml"), "other = 1\n")
	if _, err := project.FindManifest(dir); err == nil {
		t.Fatalf("expected an error for a manifest missing [package]")
	}
}

func TestFindManifestRejectsMissingEntry(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "tim.toml"), "[package]\nname = \"demo\"\n")
	if _, err := project.FindManifest(dir); err == nil {
		t.Fatalf("expected an error for a manifest missing [package].entry")
	}
}

func TestEntryPathResolvesFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "tim.toml"), "[package]\nname = \"demo\"\nentry = \"main.tim\"\n")
	writeFile(t, filepath.Join(root, "main.tim"), "func main(): void {}\n")

	m, err := project.FindManifest(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	entry, kind, err := m.EntryPath()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if kind != project.ModuleKindFile {
		t.Fatalf("expected ModuleKindFile, got %v", kind)
	}
	if filepath.Base(entry) != "main.tim" {
		t.Fatalf("expected entry to end in main.tim, got %q", entry)
	}
}

func TestEntryPathResolvesDirectory(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "tim.toml"), "[package]\nname = \"demo\"\nentry = \"src\"\n")
	writeFile(t, filepath.Join(root, "src", "main.tim"), "func main(): void {}\n")

	m, err := project.FindManifest(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, kind, err := m.EntryPath()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if kind != project.ModuleKindDir {
		t.Fatalf("expected ModuleKindDir, got %v", kind)
	}
}

func TestEntryPathRejectsNonTimFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "tim.toml"), "[package]\nname = \"demo\"\nentry = \"main.txt\"\n")
	writeFile(t, filepath.Join(root, "main.txt"), "not tim source\n")

	m, err := project.FindManifest(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, _, err := m.EntryPath(); err == nil {
		t.Fatalf("expected an error for a non-.tim entry file")
	}
}

func TestEntryPathRejectsMissingPath(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "tim.toml"), "[package]\nname = \"demo\"\nentry = \"missing.tim\"\n")

	m, err := project.FindManifest(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, _, err := m.EntryPath(); err == nil {
		t.Fatalf("expected an error for a nonexistent entry path")
	}
}
