package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"lyric_forge/internal/config"
	"lyric_forge/internal/db"
	"lyric_forge/internal/lexicon"
	"lyric_forge/internal/logarchive"
	"lyric_forge/internal/workspace"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type rootOptions struct {
	configPath  string
	lexiconPath string
	dataDir     string
}

// app holds what every command needs once flags are parsed.
type app struct {
	cfg   *config.Config
	lex   *lexicon.Lexicon
	paths workspace.Paths
	logs  *logarchive.Archive
}

func loadApp(opts *rootOptions) (*app, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if opts.dataDir != "" {
		cfg.DataDir = opts.dataDir
	}
	if opts.lexiconPath != "" {
		cfg.LexiconPath = opts.lexiconPath
	}

	lex := lexicon.Default()
	if strings.TrimSpace(cfg.LexiconPath) != "" {
		lex, err = lexicon.Load(cfg.LexiconPath)
		if err != nil {
			return nil, err
		}
	}

	paths, err := workspace.EnsureAt(cfg.ResolvedDataDir())
	if err != nil {
		return nil, fmt.Errorf("preparing data dir: %w", err)
	}
	logs, err := logarchive.Open(paths.Logs)
	if err != nil {
		return nil, err
	}
	return &app{cfg: cfg, lex: lex, paths: paths, logs: logs}, nil
}

func (a *app) openStore() (*db.Store, error) {
	store, err := db.NewStore(a.paths.Database)
	if err != nil {
		return nil, fmt.Errorf("opening progress store: %w", err)
	}
	return store, nil
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:   "lyricforge",
		Short: "Score song lyrics for structure, poetic depth and rhythm",
		Long: `lyricforge scores lyric drafts against fixed rubrics:
F-Score for structural and commercial compliance, P-Score for imagery and
poetic depth, and R-Score for stress-map rhythm drills. Scores are saved to a
local progress store so you can track averages over time.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to config file")
	root.PersistentFlags().StringVar(&opts.lexiconPath, "lexicon", "", "replacement lexicon YAML")
	root.PersistentFlags().StringVar(&opts.dataDir, "data-dir", "", "directory for the progress store, exports and logs")

	root.AddCommand(
		newScoreCmd(opts),
		newHistoryCmd(opts),
		newAveragesCmd(opts),
		newWatchCmd(opts),
		newBlueprintCmd(opts),
		newLexiconCmd(opts),
		newChallengesCmd(),
		newLogsCmd(opts),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "lyricforge %s (commit: %s, built: %s, lexicon v%s)\n", version, commit, date, lexicon.Default().Version)
		},
	}
}
