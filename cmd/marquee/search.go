package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/five82/marquee/internal/app"
	"github.com/five82/marquee/internal/tmdb"
)

type queryFlags struct {
	filter string
	json   bool
}

func (f *queryFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.filter, "filter", "f", "", `result filter expression, e.g. 'Rating >= 7 && Year > 1990'`)
	cmd.Flags().BoolVar(&f.json, "json", false, "print results as JSON")
}

func newSearchCmd(o *rootOptions) *cobra.Command {
	var flags queryFlags
	cmd := &cobra.Command{
		Use:   "search <query...>",
		Short: "Search movies by title",
		Long: `Search movies by title and print one "id<TAB>title" line per result.

Arguments are joined with single spaces to form the query.`,
		Example: `  marquee search blade runner
  marquee search alien --filter 'Year < 1990' --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.runQuery(cmd.Context(), strings.Join(args, " "), flags)
		},
	}
	flags.register(cmd)
	return cmd
}

func newDiscoverCmd(o *rootOptions) *cobra.Command {
	var flags queryFlags
	cmd := &cobra.Command{
		Use:   "discover",
		Short: "List popular movies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return o.runQuery(cmd.Context(), "", flags)
		},
	}
	flags.register(cmd)
	return cmd
}

// runQuery performs one fetch through the same store and fetcher as the TUI.
// An Error outcome becomes the command error so the process exits non-zero.
func (o *rootOptions) runQuery(ctx context.Context, query string, flags queryFlags) error {
	env, err := app.Bootstrap(o.appOptions(flags.filter), false)
	if err != nil {
		return err
	}
	defer func() { _ = env.Close() }()

	out := env.Query(ctx, query)
	if !out.OK() {
		return errors.New(out.Message)
	}

	if flags.json {
		return writeJSON(o.stdout, out.Movies)
	}
	return writeTable(o.stdout, out.Movies)
}

func writeTable(w io.Writer, movies []tmdb.Movie) error {
	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)
	for _, m := range movies {
		if _, err := fmt.Fprintf(tw, "%d\t%s\n", m.ID, m.Title); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func writeJSON(w io.Writer, movies []tmdb.Movie) error {
	if movies == nil {
		movies = []tmdb.Movie{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(movies)
}
