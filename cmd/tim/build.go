package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tim/internal/diagfmt"
	"tim/internal/driver"
	"tim/internal/project"
)

var buildRoot string

func init() {
	buildCmd.Flags().StringVar(&buildRoot, "root", ".", "directory to search for tim.toml")
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Resolve the whole project named by tim.toml",
	Args:  cobra.NoArgs,
	RunE:  runBuild,
}

func runBuild(cmd *cobra.Command, args []string) error {
	manifest, err := project.FindManifest(buildRoot)
	if err != nil {
		return err
	}
	entry, _, err := manifest.EntryPath()
	if err != nil {
		return err
	}
	paths, err := collectTimFiles([]string{entry})
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

	prog, registry, items := driver.Compile(sources, driver.Options{})

	colorMode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return err
	}
	if len(items) > 0 {
		diagfmt.Pretty(cmd.OutOrStdout(), items, registry, diagfmt.PrettyOpts{Color: colorEnabled(colorMode)})
	}

	if prog == nil {
		return fmt.Errorf("%s: %d diagnostic(s), build failed", manifest.Config.Package.Name, len(items))
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: resolved %d module(s)\n", manifest.Config.Package.Name, len(prog.Modules))
	return nil
}
