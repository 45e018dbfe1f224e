package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"lyric_forge/internal/forge"
	"lyric_forge/internal/ingest"
	"lyric_forge/internal/live"
	"lyric_forge/internal/logarchive"
	"lyric_forge/internal/report"
	"lyric_forge/internal/workspace"
)

type scoreOptions struct {
	challenge string
	mood      string
	motif     string
	title     string
	url       string
	noSave    bool
	json      bool
	export    bool
}

func newScoreCmd(root *rootOptions) *cobra.Command {
	opts := &scoreOptions{}
	cmd := &cobra.Command{
		Use:   "score [files...]",
		Short: "Score one or more lyric drafts",
		Long: `Score lyric drafts read from files (.txt, .md, .docx, .pdf, .html), a web
page (--url) or stdin (no file or "-"). Several files are scored in parallel.

Challenges: ` + strings.Join(forge.ChallengeKeys(), ", "),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(root)
			if err != nil {
				return err
			}
			return runScore(cmd, a, opts, args)
		},
	}
	cmd.Flags().StringVar(&opts.challenge, "challenge", "structure", "challenge to score against")
	cmd.Flags().StringVar(&opts.mood, "mood", "", "NEGATIVE or POSITIVE (default from config)")
	cmd.Flags().StringVar(&opts.motif, "motif", "", "semantic motif, e.g. CAR (default from config)")
	cmd.Flags().StringVar(&opts.title, "title", "", "title saved with the score (default: challenge title)")
	cmd.Flags().StringVar(&opts.url, "url", "", "import the lyric from a web page")
	cmd.Flags().BoolVar(&opts.noSave, "no-save", false, "do not record the score in the progress store")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print JSON instead of the terminal view")
	cmd.Flags().BoolVar(&opts.export, "export", false, "write the score sheet to the exports directory")
	return cmd
}

func runScore(cmd *cobra.Command, a *app, opts *scoreOptions, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	drafts, err := readDrafts(ctx, cmd.InOrStdin(), opts, args)
	if err != nil {
		return err
	}

	serviceOpts := []forge.Option{forge.WithLogger(a.logs), forge.WithWorkers(a.cfg.Workers)}
	if !opts.noSave {
		store, err := a.openStore()
		if err != nil {
			return err
		}
		defer store.Close()
		serviceOpts = append(serviceOpts, forge.WithSink(store))
	}
	svc := forge.NewService(a.lex, serviceOpts...)

	reqs := make([]forge.Request, len(drafts))
	for i, d := range drafts {
		title := opts.title
		if title == "" && len(drafts) > 1 {
			title = d.Title
		}
		reqs[i] = forge.Request{
			Name:      d.SourcePath,
			Text:      d.Text,
			Title:     title,
			Mood:      firstNonEmpty(opts.mood, a.cfg.DefaultMood),
			Motif:     firstNonEmpty(opts.motif, a.cfg.DefaultMotif),
			Challenge: opts.challenge,
			NoSave:    opts.noSave,
		}
		if !opts.noSave && isImported(d) {
			if _, err := a.paths.SaveDraft(firstNonEmpty(title, d.Title), filepath.Base(d.SourcePath), d.SourceBytes); err != nil {
				a.logs.Log(logarchive.LevelWarn, "INGEST", "draft copy not kept", err.Error())
			}
		}
	}

	if len(reqs) == 1 {
		out, err := svc.Submit(ctx, reqs[0])
		if err != nil {
			return err
		}
		warnUnsaved(cmd.ErrOrStderr(), out)
		return printOutcome(cmd.OutOrStdout(), a, opts, out)
	}

	outcomes, errs := svc.SubmitBatch(ctx, reqs)
	for _, out := range outcomes {
		if out.Err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "%v\n", out.Err)
			continue
		}
		warnUnsaved(cmd.ErrOrStderr(), out)
		fmt.Fprintf(cmd.OutOrStdout(), "== %s ==\n", out.Name)
		if err := printOutcome(cmd.OutOrStdout(), a, opts, out); err != nil {
			return err
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%d of %d drafts failed: %w", len(errs), len(reqs), errors.Join(errs...))
	}
	return nil
}

func printOutcome(w io.Writer, a *app, opts *scoreOptions, out forge.Outcome) error {
	counters := live.Count(out.Lyric, a.lex)
	var sheet []byte
	ext := "txt"
	if opts.json {
		raw, err := report.JSON(out, counters)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(raw))
		sheet, ext = raw, "json"
	} else {
		fmt.Fprintln(w, report.Terminal(out, counters, a.lex))
		sheet = []byte(report.Text(out))
	}

	if opts.export {
		name := workspace.ExportName(report.ExportDay(out), out.Title, ext)
		path, err := a.paths.SaveExport(name, sheet)
		if err != nil {
			return err
		}
		if !opts.json {
			fmt.Fprintf(w, "exported to %s\n", path)
		}
	}
	return nil
}

func warnUnsaved(w io.Writer, out forge.Outcome) {
	if out.SaveErr != nil {
		fmt.Fprintf(w, "warning: score for %s not saved: %v\n", out.Title, out.SaveErr)
	}
}

func readDrafts(ctx context.Context, stdin io.Reader, opts *scoreOptions, args []string) ([]*ingest.Parsed, error) {
	if opts.url != "" {
		if len(args) > 0 {
			return nil, fmt.Errorf("--url cannot be combined with files")
		}
		client := &http.Client{Timeout: 30 * time.Second}
		parsed, err := ingest.FetchURL(ctx, client, opts.url)
		if err != nil {
			return nil, err
		}
		return []*ingest.Parsed{parsed}, nil
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	out := make([]*ingest.Parsed, 0, len(args))
	for _, arg := range args {
		var parsed *ingest.Parsed
		var err error
		if arg == "-" {
			parsed, err = ingest.ParseReader("stdin", stdin)
		} else {
			parsed, err = ingest.ParseFile(arg)
		}
		if err != nil {
			return nil, err
		}
		out = append(out, parsed)
	}
	return out, nil
}

// isImported reports whether the draft came from a format worth keeping a
// copy of.
func isImported(p *ingest.Parsed) bool {
	if strings.HasPrefix(p.SourcePath, "http://") || strings.HasPrefix(p.SourcePath, "https://") {
		return true
	}
	switch strings.ToLower(filepath.Ext(p.SourcePath)) {
	case ".docx", ".pdf", ".html", ".htm":
		return true
	}
	return false
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
