package pipeline

import (
	"context"
	"fmt"
	"runtime"
	"sync"
)

// Draft is one lyric queued for batch scoring.
type Draft struct {
	Index int
	Name  string
	Text  string
}

type Analyzer func(ctx context.Context, d Draft) error

// AnalyzeDrafts runs fn over drafts on a bounded pool of workers and returns
// the errors in no particular order. Drafts not yet started when ctx is
// cancelled are reported with the context error.
func AnalyzeDrafts(ctx context.Context, drafts []Draft, workers int, fn Analyzer) []error {
	if len(drafts) == 0 || fn == nil {
		return nil
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
		if workers < 1 {
			workers = 1
		}
	}
	if workers > len(drafts) {
		workers = len(drafts)
	}

	jobs := make(chan Draft)
	errs := make(chan error, len(drafts))
	var wg sync.WaitGroup

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for d := range jobs {
				if err := ctx.Err(); err != nil {
					errs <- fmt.Errorf("%s: %w", d.Name, err)
					continue
				}
				if err := fn(ctx, d); err != nil {
					errs <- err
				}
			}
		}()
	}

	for _, d := range drafts {
		jobs <- d
	}
	close(jobs)
	wg.Wait()
	close(errs)

	out := make([]error, 0, len(errs))
	for err := range errs {
		out = append(out, err)
	}
	return out
}
