// Command tim is the CLI front end for the Tim compiler front end: source
// resolution, diagnostic reporting, and an interactive diagnostic browser.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"tim/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "tim",
	Short: "Tim language front-end compiler and toolchain",
	Long:  `Tim resolves .tim source into a typed program or reports every diagnostic it can find.`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(ideCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
