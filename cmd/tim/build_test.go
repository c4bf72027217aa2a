package main

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
)

func newTestRootWithBuild() *cobra.Command {
	root := &cobra.Command{Use: "tim"}
	root.PersistentFlags().String("color", "auto", "")
	root.PersistentFlags().Int("max-diagnostics", 100, "")
	root.AddCommand(buildCmd)
	return root
}

func TestBuildCommandResolvesProjectFromManifest(t *testing.T) {
	dir := t.TempDir()
	writeTimFile(t, dir, "tim.toml", "[package]\nname = \"demo\"\nentry = \"main.tim\"\n")
	writeTimFile(t, dir, "main.tim", "func main(): void {}\n")

	buildRoot = "."
	root := newTestRootWithBuild()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"build", "--root", dir, "--color=off"})

	if err := root.Execute(); err != nil {
		t.Fatalf("unexpected error: %v, output: %s", err, out.String())
	}
	if !bytes.Contains(out.Bytes(), []byte("resolved 1 module(s)")) {
		t.Fatalf("expected a resolved-module summary, got %q", out.String())
	}
}

func TestBuildCommandFailsOnUnresolvedDiagnostics(t *testing.T) {
	dir := t.TempDir()
	writeTimFile(t, dir, "tim.toml", "[package]\nname = \"demo\"\nentry = \"main.tim\"\n")
	writeTimFile(t, dir, "main.tim", "func main(): void { missing(); }\n")

	buildRoot = "."
	root := newTestRootWithBuild()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"build", "--root", dir, "--color=off"})

	if err := root.Execute(); err == nil {
		t.Fatalf("expected an error for a project with diagnostics")
	}
}

func TestBuildCommandFailsWithoutManifest(t *testing.T) {
	dir := t.TempDir()

	buildRoot = "."
	root := newTestRootWithBuild()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"build", "--root", dir})

	if err := root.Execute(); err == nil {
		t.Fatalf("expected an error when tim.toml cannot be found")
	}
}
