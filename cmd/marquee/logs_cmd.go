package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/five82/marquee/internal/config"
	"github.com/five82/marquee/internal/logtail"
)

func newLogsCmd(o *rootOptions) *cobra.Command {
	var opts logtail.Options
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Print the end of the TUI log file",
		Long: `The interactive browser logs to a file (logging.file) because it owns the
terminal. This prints the last lines of that file.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := config.Load(o.configPath)
			if err != nil {
				return err
			}
			lines, err := logtail.TailFile(cfg.LogFilePath(), opts)
			if err != nil {
				return err
			}
			for _, line := range lines {
				fmt.Fprintln(o.stdout, line)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&opts.Lines, "lines", "n", 50, "number of lines to show (0 for all)")
	cmd.Flags().StringVar(&opts.Contains, "grep", "", "only lines containing this text (case-insensitive)")
	return cmd
}
