package forge

import (
	"context"
	"fmt"
	"strings"
	"time"

	"lyric_forge/internal/db"
	"lyric_forge/internal/lexicon"
	"lyric_forge/internal/logarchive"
	"lyric_forge/internal/pipeline"
	"lyric_forge/internal/score"
)

// Sink persists score records. *db.Store satisfies it.
type Sink interface {
	Append(ctx context.Context, rec db.Record) (db.Record, error)
}

// Request is one lyric handed to the service.
type Request struct {
	Name      string
	Text      string
	Title     string
	Mood      string
	Motif     string
	Challenge string
	NoSave    bool
}

// Outcome is the scored submission plus what happened when persisting it.
type Outcome struct {
	Name      string
	Challenge Challenge
	Title     string
	Date      time.Time
	Lyric     string
	Mood      string
	Motif     string
	Result    score.Result
	Record    db.Record
	Saved     bool
	SaveErr   error
	Err       error
}

type Service struct {
	lex     *lexicon.Lexicon
	sink    Sink
	logger  logarchive.Logger
	workers int
	now     func() time.Time
}

type Option func(*Service)

func WithSink(sink Sink) Option {
	return func(s *Service) { s.sink = sink }
}

func WithLogger(logger logarchive.Logger) Option {
	return func(s *Service) { s.logger = logarchive.OrDiscard(logger) }
}

func WithWorkers(n int) Option {
	return func(s *Service) { s.workers = n }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(lex *lexicon.Lexicon, opts ...Option) *Service {
	if lex == nil {
		lex = lexicon.Default()
	}
	s := &Service{lex: lex, logger: logarchive.Discard{}, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Lexicon() *lexicon.Lexicon {
	return s.lex
}

// Submit validates and scores one lyric, then appends it to the sink unless
// NoSave is set. A precondition failure returns an error and no score. A
// persistence failure is logged and reported through Saved and SaveErr; the
// score is still returned.
func (s *Service) Submit(ctx context.Context, req Request) (Outcome, error) {
	ch, err := LookupChallenge(req.Challenge)
	if err != nil {
		return Outcome{}, err
	}
	sub := score.NewSubmission(req.Text, req.Mood, req.Motif, ch.Kind).WithRhythmTarget(ch.RhythmTarget)
	if err := sub.Check(s.lex.Scoring.MinLines); err != nil {
		s.logger.Log(logarchive.LevelWarn, "VALIDATE", "submission rejected", fmt.Sprintf("%s: %v", displayName(req), err))
		return Outcome{}, err
	}
	if err := sub.ValidateMotif(s.lex); err != nil {
		s.logger.Log(logarchive.LevelWarn, "VALIDATE", "submission rejected", fmt.Sprintf("%s: %v", displayName(req), err))
		return Outcome{}, err
	}

	res, err := score.Evaluate(sub, s.lex)
	if err != nil {
		return Outcome{}, fmt.Errorf("score %s: %w", displayName(req), err)
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = ch.Title
	}
	out := Outcome{
		Name:      req.Name,
		Challenge: ch,
		Title:     title,
		Date:      s.now(),
		Lyric:     req.Text,
		Mood:      sub.Mood,
		Motif:     sub.Motif,
		Result:    res,
	}
	s.logger.Log(logarchive.LevelAnalysis, "SCORE", "scored "+ch.Key,
		fmt.Sprintf("%s F=%d P=%d R=%d lines=%d flow=%s", displayName(req), res.FScore, res.PScore, res.RScore, res.LineCount, res.Flow))
	if primary := PrimaryScore(res); primary < 40 {
		s.logger.Log(logarchive.LevelRisk, "SCORE", "low score", fmt.Sprintf("%s %d/100", displayName(req), primary))
	}

	if req.NoSave || s.sink == nil {
		return out, nil
	}
	rec, err := s.sink.Append(ctx, db.Record{
		Date:   out.Date.Format(db.DateLayout),
		Title:  title,
		Kind:   string(ch.Kind),
		FScore: res.FScore,
		PScore: res.PScore,
		RScore: res.RScore,
		Lyric:  req.Text,
	})
	if err != nil {
		out.SaveErr = err
		s.logger.Log(logarchive.LevelWarn, "PERSIST", "progress not saved", fmt.Sprintf("%s: %v", displayName(req), err))
		return out, nil
	}
	out.Record = rec
	out.Saved = true
	return out, nil
}

// SubmitBatch scores every request on the worker pool. Outcomes keep the
// request order; a failed request has Err set and the same error is returned
// in the error slice.
func (s *Service) SubmitBatch(ctx context.Context, reqs []Request) ([]Outcome, []error) {
	outcomes := make([]Outcome, len(reqs))
	drafts := make([]pipeline.Draft, len(reqs))
	for i, r := range reqs {
		drafts[i] = pipeline.Draft{Index: i, Name: displayName(r), Text: r.Text}
		outcomes[i] = Outcome{Name: r.Name}
	}

	s.logger.Log(logarchive.LevelInfo, "BATCH", fmt.Sprintf("scoring %d drafts", len(reqs)), fmt.Sprintf("workers=%d", s.workers))
	errs := pipeline.AnalyzeDrafts(ctx, drafts, s.workers, func(ctx context.Context, d pipeline.Draft) error {
		out, err := s.Submit(ctx, reqs[d.Index])
		if err != nil {
			err = fmt.Errorf("%s: %w", d.Name, err)
			outcomes[d.Index].Err = err
			return err
		}
		outcomes[d.Index] = out
		return nil
	})
	for i := range outcomes {
		if outcomes[i].Err == nil && outcomes[i].Challenge.Key == "" {
			// cancelled before the worker picked it up
			outcomes[i].Err = fmt.Errorf("%s: %w", drafts[i].Name, context.Cause(ctx))
		}
	}
	return outcomes, errs
}

// PrimaryScore is the score the challenge kind is mainly judged on.
func PrimaryScore(res score.Result) int {
	switch res.Kind {
	case score.PoeticWorkout:
		return res.PScore
	case score.RhythmDrill:
		return res.RScore
	default:
		return res.FScore
	}
}

func displayName(r Request) string {
	if r.Name != "" {
		return r.Name
	}
	if r.Title != "" {
		return r.Title
	}
	return "draft"
}
