package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/five82/marquee/internal/app"
)

// streams bundles the process I/O so commands can be driven from tests.
type streams struct {
	stdout   io.Writer
	stderr   io.Writer
	terminal func() bool
}

func newStreams() streams {
	return streams{
		stdout:   os.Stdout,
		stderr:   os.Stderr,
		terminal: func() bool {
			return isTTY(os.Stdin) && isTTY(os.Stdout)
		},
	}
}

func isTTY(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// rootOptions holds the persistent flags shared by every command.
type rootOptions struct {
	streams

	configPath string
	prefsPath  string
	logLevel   string
}

var validLogLevels = []string{"debug", "info", "warn", "error"}

// errNoTerminal is returned when the TUI is started without a terminal.
var errNoTerminal = errors.New("the interactive browser needs a terminal; use 'marquee search' or 'marquee discover' instead")

func newRootCmd(s streams) *cobra.Command {
	o := &rootOptions{streams: s}

	cmd := &cobra.Command{
		Use:   "marquee",
		Short: "Browse and search movies from your terminal",
		Long: `marquee is a terminal movie browser backed by The Movie Database.

Run without arguments to open the interactive browser: popular movies are
listed on start, and typing searches by title once you pause. The search and
discover subcommands print results for scripts.`,
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: o.validate,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !o.terminal() {
				return errNoTerminal
			}
			return app.Run(cmd.Context(), o.appOptions(""))
		},
	}
	cmd.SetOut(s.stdout)
	cmd.SetErr(s.stderr)

	flags := cmd.PersistentFlags()
	flags.StringVar(&o.configPath, "config", "", "config file (default ~/.config/marquee/config.toml)")
	flags.StringVar(&o.prefsPath, "prefs", "", "preferences file (default ~/.config/marquee/prefs.toml)")
	flags.StringVar(&o.logLevel, "log-level", "", "override logging.level ("+strings.Join(validLogLevels, ", ")+")")

	cmd.AddCommand(
		newSearchCmd(o),
		newDiscoverCmd(o),
		newConfigCmd(o),
		newLogsCmd(o),
		newVersionCmd(o),
	)
	return cmd
}

func (o *rootOptions) validate(_ *cobra.Command, _ []string) error {
	if o.logLevel == "" {
		return nil
	}
	level := strings.ToLower(strings.TrimSpace(o.logLevel))
	for _, valid := range validLogLevels {
		if level == valid {
			o.logLevel = level
			return nil
		}
	}
	return fmt.Errorf("invalid --log-level %q (want one of %s)", o.logLevel, strings.Join(validLogLevels, ", "))
}

func (o *rootOptions) appOptions(filterExpr string) app.Options {
	return app.Options{
		ConfigPath: o.configPath,
		PrefsPath:  o.prefsPath,
		LogLevel:   o.logLevel,
		Filter:     filterExpr,
		LogOutput:  o.stderr,
		Version:    version,
	}
}

func newVersionCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the marquee version",
		Args:  cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(o.stdout, "marquee %s\n", version)
		},
	}
}
