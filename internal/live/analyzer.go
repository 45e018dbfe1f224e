package live

import (
	"sync"
	"time"

	"github.com/bep/debounce"

	"lyric_forge/internal/lexicon"
)

// Analyzer recomputes counters after input has been quiet for the debounce
// period. Each Update supersedes any pending one; a result is delivered only
// if no newer Update arrived while it was being computed.
type Analyzer struct {
	lex      *lexicon.Lexicon
	deliver  func(Counters)
	debounce func(func())

	mu         sync.Mutex
	generation uint64
	closed     bool

	deliverMu sync.Mutex
}

func NewAnalyzer(lex *lexicon.Lexicon, wait time.Duration, deliver func(Counters)) *Analyzer {
	if lex == nil {
		lex = lexicon.Default()
	}
	return &Analyzer{
		lex:      lex,
		deliver:  deliver,
		debounce: debounce.New(wait),
	}
}

func (a *Analyzer) Update(text string) {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return
	}
	a.generation++
	gen := a.generation
	a.mu.Unlock()

	a.debounce(func() {
		counters := Count(text, a.lex)
		a.deliverMu.Lock()
		defer a.deliverMu.Unlock()
		if !a.current(gen) {
			return
		}
		a.deliver(counters)
	})
}

func (a *Analyzer) current(gen uint64) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return !a.closed && gen == a.generation
}

// Close stops delivery. Pending and later updates are dropped.
func (a *Analyzer) Close() {
	a.mu.Lock()
	a.closed = true
	a.mu.Unlock()
}
