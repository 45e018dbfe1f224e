package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"lyric_forge/internal/live"
	"lyric_forge/internal/logarchive"
	"lyric_forge/internal/report"
)

func newWatchCmd(root *rootOptions) *cobra.Command {
	var interval time.Duration
	var blueprint bool
	cmd := &cobra.Command{
		Use:   "watch <file>",
		Short: "Show live counters while a draft is being edited",
		Long: `watch re-reads the draft whenever it changes on disk and prints line, bar,
syllable and flow counters once edits settle. Stop with Ctrl+C.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(root)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			analyzer := live.NewAnalyzer(a.lex, a.cfg.DebounceDuration(), func(c live.Counters) {
				fmt.Fprintln(out, report.CountersLine(c))
				if blueprint {
					fmt.Fprintln(out, report.Blueprint(c.Sections))
				}
			})
			defer analyzer.Close()

			a.logs.Log(logarchive.LevelInfo, "WATCH", "watching draft", args[0])
			return live.WatchFile(ctx, args[0], interval, analyzer)
		},
	}
	cmd.Flags().DurationVar(&interval, "interval", 250*time.Millisecond, "how often to check the file for changes")
	cmd.Flags().BoolVar(&blueprint, "blueprint", false, "also print the section blueprint on every update")
	return cmd
}

func newBlueprintCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "blueprint [file]",
		Short: "Show how a draft fills the verse and chorus sections",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(root)
			if err != nil {
				return err
			}
			drafts, err := readDrafts(cmd.Context(), cmd.InOrStdin(), &scoreOptions{}, args)
			if err != nil {
				return err
			}
			counters := live.Count(drafts[0].Text, a.lex)
			fmt.Fprintln(cmd.OutOrStdout(), report.CountersLine(counters))
			fmt.Fprintln(cmd.OutOrStdout(), report.Blueprint(counters.Sections))
			return nil
		},
	}
}
