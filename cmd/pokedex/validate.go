package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jpalmerr/pokedex/config"
)

// validateCmd validates a config file without starting the server.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a config file",
	Long: `Validate a pokedex configuration file without starting the server.

This command parses the YAML, applies POKEDEX_ environment overrides,
expands environment variables, and validates all fields. It does not
contact the listing endpoint.

Exit codes:
  0 - Config is valid
  1 - Config is invalid (error details printed to stderr)

Example:
  pokedex validate -c config.yaml`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringP("config", "c", "", "path to config file (required)")
	_ = validateCmd.MarkFlagRequired("config")
}

func runValidate(cmd *cobra.Command, args []string) error {
	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Config is valid!\n")
	fmt.Fprintf(out, "  Title:   %s\n", cfg.Title)
	fmt.Fprintf(out, "  Port:    %d\n", cfg.Port)
	fmt.Fprintf(out, "  API URL: %s\n", cfg.API.URL)
	fmt.Fprintf(out, "  Timeout: %s\n", cfg.API.Timeout.Duration())
	fmt.Fprintf(out, "  Headers: %d\n", len(cfg.API.Headers))

	return nil
}
