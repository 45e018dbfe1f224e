package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"lyric_forge/internal/db"
	"lyric_forge/internal/report"
)

func newHistoryCmd(root *rootOptions) *cobra.Command {
	var days int
	var all bool
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List saved scores",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(root)
			if err != nil {
				return err
			}
			store, err := a.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			if !cmd.Flags().Changed("days") {
				days = a.cfg.HistoryDays
			}
			if all {
				days = 0
			}
			now := time.Now()
			records, err := store.List(cmd.Context(), db.WindowStart(now, days))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), report.History(records, now))
			return nil
		},
	}
	cmd.Flags().IntVar(&days, "days", 7, "only show scores from the last N days")
	cmd.Flags().BoolVar(&all, "all", false, "show every saved score")
	return cmd
}

func newAveragesCmd(root *rootOptions) *cobra.Command {
	var days int
	cmd := &cobra.Command{
		Use:   "averages",
		Short: "Show mean F, P and R scores over a window",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(root)
			if err != nil {
				return err
			}
			store, err := a.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			if !cmd.Flags().Changed("days") {
				days = a.cfg.HistoryDays
			}
			avg, err := store.Averages(cmd.Context(), db.WindowStart(time.Now(), days))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), report.Averages(avg, days))
			return nil
		},
	}
	cmd.Flags().IntVar(&days, "days", 7, "window in days, 0 for all time")
	return cmd
}
