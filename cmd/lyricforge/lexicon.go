package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"lyric_forge/internal/forge"
	"lyric_forge/internal/report"
)

func newLexiconCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:       "lexicon [section]",
		Short:     "Print the word lists used for scoring",
		Long:      "Print a lexicon summary, or one section: " + strings.Join(report.LexiconSections, ", "),
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: report.LexiconSections,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(root)
			if err != nil {
				return err
			}
			section := ""
			if len(args) == 1 {
				section = args[0]
			}
			text, err := report.Lexicon(a.lex, section)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}
}

func newChallengesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "challenges",
		Short: "List the drills and their prompts",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), report.Challenges(forge.Challenges()))
		},
	}
}
