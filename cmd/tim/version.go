package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tim/internal/version"
)

type versionPayload struct {
	Tool      string `json:"tool"`
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
}

var versionFormat string

func init() {
	versionCmd.Flags().StringVar(&versionFormat, "format", "pretty", "output format (pretty|json)")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the tim CLI's build fingerprint",
	RunE: func(cmd *cobra.Command, args []string) error {
		colorMode, err := cmd.Root().PersistentFlags().GetString("color")
		if err != nil {
			return err
		}
		switch strings.ToLower(versionFormat) {
		case "pretty":
			renderVersionPretty(cmd.OutOrStdout(), colorEnabled(colorMode))
			return nil
		case "json":
			return renderVersionJSON(cmd.OutOrStdout())
		default:
			return fmt.Errorf("unsupported format %q (must be pretty or json)", versionFormat)
		}
	},
}

func renderVersionPretty(out io.Writer, colored bool) {
	nameStyle := color.New(color.FgCyan, color.Bold)
	labelStyle := color.New(color.Faint)
	nameStyle.EnableColor()
	labelStyle.EnableColor()
	if !colored {
		nameStyle.DisableColor()
		labelStyle.DisableColor()
	}

	fmt.Fprintf(out, "%s %s\n", nameStyle.Sprint("tim"), version.Version)
	if version.GitCommit != "" {
		fmt.Fprintf(out, "%s %s\n", labelStyle.Sprint("commit:"), version.GitCommit)
	}
	if version.BuildDate != "" {
		fmt.Fprintf(out, "%s %s\n", labelStyle.Sprint("built: "), version.BuildDate)
	}
}

func renderVersionJSON(out io.Writer) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(versionPayload{
		Tool:      "tim",
		Version:   version.Version,
		GitCommit: version.GitCommit,
		BuildDate: version.BuildDate,
	})
}
