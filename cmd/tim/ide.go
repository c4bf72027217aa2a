package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"tim/internal/diagfmt"
	"tim/internal/driver"
	"tim/internal/ui"
)

var ideCmd = &cobra.Command{
	Use:   "ide <files...|dir>",
	Short: "Browse diagnostics interactively",
	Long:  "Resolves the given .tim files and opens an interactive diagnostic browser when stdout is a terminal, falling back to plain diagnostic output otherwise.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runIDE,
}

func runIDE(cmd *cobra.Command, args []string) error {
	paths, err := collectTimFiles(args)
	if err != nil {
		return err
	}

	var sources []driver.Source
	for _, p := range paths {
		text, readErr := os.ReadFile(p)
		if readErr != nil {
			return fmt.Errorf("read %q: %w", p, readErr)
		}
		sources = append(sources, driver.Source{Path: p, Text: string(text)})
	}

	_, registry, items := driver.Compile(sources, driver.Options{})

	if !isTerminal(os.Stdout) {
		colorMode, colorErr := cmd.Root().PersistentFlags().GetString("color")
		if colorErr != nil {
			return colorErr
		}
		if len(items) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no diagnostics")
			return nil
		}
		diagfmt.Pretty(cmd.OutOrStdout(), items, registry, diagfmt.PrettyOpts{Color: colorEnabled(colorMode)})
		return nil
	}

	model := ui.NewDiagnosticsModel(items, registry)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout), tea.WithAltScreen())
	_, runErr := program.Run()
	return runErr
}
