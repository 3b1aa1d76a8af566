// Package main is the entry point for the pokedex CLI.
//
// Pokedex can be run either as a library (SDK) or as a standalone binary
// with YAML configuration. This CLI provides the standalone binary approach.
//
// Usage:
//
//	pokedex serve -c config.yaml              # Start the explorer
//	pokedex list -c config.yaml -s char       # Print a filtered list once
//	pokedex validate -c config.yaml           # Validate configuration
//	pokedex version                           # Show version info
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information - set by GoReleaser at build time via ldflags.
// Example: go build -ldflags "-X main.version=1.0.0"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCmd is the base command when called without subcommands.
// It just displays help - actual functionality is in subcommands.
var rootCmd = &cobra.Command{
	Use:   "pokedex",
	Short: "A searchable explorer for a creature listing",
	Long: `Pokedex fetches a list of Pokémon once and serves a page to explore it.

The page filters by a free-text name search and by type. The list is
fetched a single time at startup; if that fails the page shows an error
and stays that way until restart.

Quick start:
  1. Create a config file (pokedex.yaml)
  2. Run: pokedex serve -c pokedex.yaml
  3. Open http://localhost:8080 in your browser

Example config:
  port: 8080
  api:
    url: https://example.com/api/pokemon
    timeout: 10s

Without -c, configuration is read from POKEDEX_API_URL, POKEDEX_PORT,
POKEDEX_TITLE and POKEDEX_API_TIMEOUT.`,
}

// Execute runs the root command.
// This is the main entry point called from main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error, just exit with code 1
		os.Exit(1)
	}
}

func main() {
	Execute()
}

// versionCmd prints version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print the version, commit hash, and build date of this pokedex binary.`,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "pokedex %s\n", version)
		fmt.Fprintf(out, "  commit: %s\n", commit)
		fmt.Fprintf(out, "  built:  %s\n", date)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
