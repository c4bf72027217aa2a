package main

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
)

func newTestRootWithIDE() *cobra.Command {
	root := &cobra.Command{Use: "tim"}
	root.PersistentFlags().String("color", "auto", "")
	root.PersistentFlags().Int("max-diagnostics", 100, "")
	root.AddCommand(ideCmd)
	return root
}

// go test's harness never attaches stdout to a terminal, so runIDE always
// takes its plain-output fallback here rather than launching the Bubble Tea
// program.
func TestIDECommandFallsBackToPlainOutputWhenNotATerminal(t *testing.T) {
	dir := t.TempDir()
	path := writeTimFile(t, dir, "app.tim", "func main(): void { missing(); }\n")

	root := newTestRootWithIDE()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"ide", path, "--color=off"})

	if err := root.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Len() == 0 {
		t.Fatalf("expected fallback diagnostic output")
	}
}

func TestIDECommandReportsNoDiagnostics(t *testing.T) {
	dir := t.TempDir()
	path := writeTimFile(t, dir, "app.tim", "func main(): void {}\n")

	root := newTestRootWithIDE()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"ide", path, "--color=off"})

	if err := root.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Contains(out.Bytes(), []byte("no diagnostics")) {
		t.Fatalf("expected a no-diagnostics message, got %q", out.String())
	}
}
