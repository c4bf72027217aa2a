package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vmihailenco/msgpack/v5"

	"tim/internal/diagfmt"
	"tim/internal/driver"
)

var (
	checkFormat  string
	checkEmitIR  bool
	checkContext int
)

func init() {
	checkCmd.Flags().StringVar(&checkFormat, "format", "pretty", "output format (pretty|json)")
	checkCmd.Flags().BoolVar(&checkEmitIR, "emit-ir", false, "msgpack-encode the resolved export map to stdout on success")
	checkCmd.Flags().IntVar(&checkContext, "context", 0, "lines of source context around each diagnostic")
}

var checkCmd = &cobra.Command{
	Use:   "check <files...|dir>",
	Short: "Resolve .tim source and print diagnostics",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	format := strings.ToLower(checkFormat)
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unsupported format %q (must be pretty or json)", checkFormat)
	}

	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return err
	}
	colorMode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return err
	}

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

	prog, registry, items := driver.Compile(sources, driver.Options{})
	if len(items) > maxDiagnostics && maxDiagnostics > 0 {
		items = items[:maxDiagnostics]
	}

	out := cmd.OutOrStdout()
	switch format {
	case "json":
		if jsonErr := diagfmt.JSON(out, items, registry, diagfmt.JSONOpts{IncludePositions: true}); jsonErr != nil {
			return jsonErr
		}
	default:
		diagfmt.Pretty(out, items, registry, diagfmt.PrettyOpts{Color: colorEnabled(colorMode), Context: checkContext})
	}

	if prog == nil {
		return fmt.Errorf("%d diagnostic(s) found", len(items))
	}

	if checkEmitIR {
		snapshot := make(map[string]map[string]uint32, len(prog.Modules))
		for path, mod := range prog.Modules {
			exports := make(map[string]uint32, len(mod.Exports))
			for nameID, handle := range mod.Exports {
				exports[prog.Interner.MustLookup(nameID)] = uint32(handle)
			}
			snapshot[path] = exports
		}
		enc, encErr := msgpack.Marshal(snapshot)
		if encErr != nil {
			return fmt.Errorf("encode IR snapshot: %w", encErr)
		}
		if _, writeErr := cmd.OutOrStdout().Write(enc); writeErr != nil {
			return writeErr
		}
	}

	return nil
}
