package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jpalmerr/pokedex"
	"github.com/jpalmerr/pokedex/config"
	"github.com/jpalmerr/pokedex/internal/explorer"
	"github.com/jpalmerr/pokedex/internal/render"
)

// listCmd fetches the list once and prints the filtered view.
var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "Fetch and print the creature list",
	Long: `Fetch the creature list once and print it, filtered the same way the
explorer page filters it.

The search matches a case-insensitive substring of the name; the type
matches one type exactly. The types line lists every type in the fetched
list, whatever the filter.

Examples:
  pokedex list -c config.yaml               # Everything, as a table
  pokedex list -c config.yaml -s char       # Names containing "char"
  pokedex list -c config.yaml -t fire -o json`,
	SilenceUsage: true,
	RunE:         runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringP("config", "c", "", "path to config file (defaults to environment)")
	listCmd.Flags().StringP("search", "s", "", "case-insensitive name substring")
	listCmd.Flags().StringP("type", "t", "", "exact type name")
	listCmd.Flags().StringP("output", "o", "table", "output format: table, json, yaml")
}

func runList(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("output")
	format = strings.ToLower(format)
	switch format {
	case "table", "json", "yaml":
	default:
		return fmt.Errorf("unsupported output format %q (expected table, json or yaml)", format)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	pd, err := pokedex.New(config.BuildOptions(cfg, newLogger(slog.LevelWarn))...)
	if err != nil {
		return fmt.Errorf("failed to create pokedex: %w", err)
	}

	search, _ := cmd.Flags().GetString("search")
	typeName, _ := cmd.Flags().GetString("type")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	result := pd.Explore(ctx, pokedex.Filter{Search: search, Type: typeName})
	if result.Phase != pokedex.PhaseReady {
		return errors.New(result.Message)
	}

	out := cmd.OutOrStdout()
	switch format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(result); err != nil {
			return err
		}
		return enc.Close()
	default:
		return outputTable(out, result)
	}
}

// outputTable prints one row per creature, or the empty-state text.
func outputTable(out io.Writer, result pokedex.Result) error {
	if result.Empty() {
		_, err := fmt.Fprintln(out, render.NoResultsText)
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTYPES")
	for _, c := range result.Creatures {
		fmt.Fprintf(w, "#%d\t%s\t%s\n", c.ID, explorer.DisplayName(c.Name), strings.Join(c.Types, ", "))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(out, "\n%d shown; types: %s\n",
		len(result.Creatures), strings.Join(result.Types, ", "))
	return err
}
