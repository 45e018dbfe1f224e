package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLogsCmd(root *rootOptions) *cobra.Command {
	var zipPath string
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show the session log directory or bundle it into a zip",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(root)
			if err != nil {
				return err
			}
			if zipPath == "" {
				fmt.Fprintln(cmd.OutOrStdout(), a.logs.RootDir())
				return nil
			}
			if err := a.logs.ExportZip(zipPath); err != nil {
				return fmt.Errorf("export logs: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "logs written to %s\n", zipPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&zipPath, "zip", "", "write every session log into this zip file")
	return cmd
}
