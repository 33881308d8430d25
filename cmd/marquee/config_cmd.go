package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/five82/marquee/internal/config"
)

func newConfigCmd(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect marquee configuration",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "check",
		Short: "Validate the config file and print the effective settings",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return o.runConfigCheck()
		},
	})
	return cmd
}

func (o *rootOptions) runConfigCheck() error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}

	source := cfg.Path
	if source == "" {
		source = "(defaults, no file found)"
	}
	apiKey := "set"
	if !cfg.HasAPIKey() {
		apiKey = "missing (set TMDB_API_KEY or tmdb.api_key)"
	}
	filterExpr := cfg.Search.Filter
	if filterExpr == "" {
		filterExpr = "(none)"
	}

	tw := tabwriter.NewWriter(o.stdout, 0, 0, 2, ' ', 0)
	rows := [][2]string{
		{"config", source},
		{"tmdb.base_url", cfg.TMDB.BaseURL},
		{"tmdb.api_key", apiKey},
		{"tmdb.timeout", formatDuration(cfg.TMDB.Timeout)},
		{"search.debounce", formatDuration(cfg.Search.Debounce)},
		{"search.discard_stale", fmt.Sprintf("%t", cfg.Search.DiscardStale)},
		{"search.filter", filterExpr},
		{"logging.level", cfg.Logging.Level},
		{"logging.format", cfg.Logging.Format},
		{"logging.file", cfg.LogFilePath()},
	}
	for _, row := range rows {
		fmt.Fprintf(tw, "%s\t%s\n", row[0], row[1])
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(o.stdout, "configuration OK")
	return nil
}

func formatDuration(d time.Duration) string {
	if d == 0 {
		return "0 (default)"
	}
	return d.String()
}
