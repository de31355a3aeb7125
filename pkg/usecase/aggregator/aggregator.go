package aggregator

import (
	"context"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/kokoro/pkg/source"
	"github.com/m-mizutani/kokoro/pkg/utils/logging"
	"golang.org/x/sync/errgroup"
)

var ErrAllSourcesFailed = goerr.New("all quote sources failed")

var errDuplicateQuote = goerr.New("quote already dispensed")

const (
	// lowWaterMark triggers a background refill when the cache drops below it.
	lowWaterMark = 3
	// maxCache bounds the prefetch cache. Refills that resolve against a full
	// cache drop their result, so overlapping refills cannot grow it.
	maxCache = 10
	// prewarmCount is the number of concurrent fetch attempts at startup.
	prewarmCount = 5
)

// UseCase aggregates quotes from an ordered source list with a prefetch
// cache, a rotating cursor, and short-term deduplication. All state is
// instance-local so independent aggregators (e.g. per test) never interfere.
type UseCase struct {
	sources  []source.Source
	fallback source.Picker

	mu       sync.Mutex
	cache    []string
	cursor   int
	seen     map[string]struct{}
	lastPick string
}

// Option is a functional option for UseCase
type Option func(*UseCase)

// WithCache pre-seeds the prefetch cache
func WithCache(texts ...string) Option {
	return func(uc *UseCase) {
		uc.cache = append(uc.cache, texts...)
	}
}

// New creates an aggregator over the given sources. fallback is the
// guaranteed-success path used when every source fails; it is normally the
// local source, which may also appear in the rotation.
func New(sources []source.Source, fallback source.Picker, opts ...Option) *UseCase {
	uc := &UseCase{
		sources:  sources,
		fallback: fallback,
		seen:     make(map[string]struct{}),
	}

	for _, opt := range opts {
		opt(uc)
	}

	return uc
}

// NextQuote returns the next quote text. It never fails: when the cache is
// empty and every source errors out, it falls back to a local message
// unconditionally, bypassing deduplication.
func (uc *UseCase) NextQuote(ctx context.Context) string {
	uc.mu.Lock()
	if len(uc.cache) > 0 {
		text := uc.cache[0]
		uc.cache = uc.cache[1:]
		refill := len(uc.cache) < lowWaterMark
		uc.mu.Unlock()
		if refill {
			// Fire-and-forget: the caller may render before this resolves,
			// and overlapping refills only append.
			go uc.refill(context.WithoutCancel(ctx))
		}
		return text
	}
	uc.mu.Unlock()

	if text, err := uc.fetchFromSources(ctx); err == nil {
		return text
	}

	quote, _ := uc.fallback.Pick(nil)
	return quote.Display()
}

// Prewarm fills the cache with up to prewarmCount concurrent fetch attempts.
// Partial failures are tolerated; whatever succeeds is kept.
func (uc *UseCase) Prewarm(ctx context.Context) {
	var eg errgroup.Group
	for i := 0; i < prewarmCount; i++ {
		eg.Go(func() error {
			text, err := uc.fetchFromSources(ctx)
			if err != nil {
				logging.From(ctx).Debug("prewarm fetch failed", "error", err)
				return nil
			}
			uc.push(text)
			return nil
		})
	}
	_ = eg.Wait()
}

// CacheLen reports the current cache size
func (uc *UseCase) CacheLen() int {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return len(uc.cache)
}

func (uc *UseCase) refill(ctx context.Context) {
	text, err := uc.fetchFromSources(ctx)
	if err != nil {
		logging.From(ctx).Debug("cache refill failed", "error", err)
		return
	}
	uc.push(text)
}

func (uc *UseCase) push(text string) {
	uc.mu.Lock()
	if len(uc.cache) < maxCache {
		uc.cache = append(uc.cache, text)
	}
	uc.mu.Unlock()
}

// fetchFromSources tries each enabled source once, starting at the rotating
// cursor. Errors and duplicates skip to the next source.
func (uc *UseCase) fetchFromSources(ctx context.Context) (string, error) {
	if len(uc.sources) == 0 {
		return "", goerr.Wrap(ErrAllSourcesFailed, "no sources configured")
	}

	uc.mu.Lock()
	start := uc.cursor
	uc.cursor = (uc.cursor + 1) % len(uc.sources)
	uc.mu.Unlock()

	for i := 0; i < len(uc.sources); i++ {
		src := uc.sources[(start+i)%len(uc.sources)]
		if !src.Enabled() {
			continue
		}

		text, err := uc.fetchOne(ctx, src)
		if err != nil {
			logging.From(ctx).Debug("quote source failed",
				"source", src.Name(), "error", err)
			continue
		}
		return text, nil
	}

	return "", goerr.Wrap(ErrAllSourcesFailed, "exhausted source rotation")
}

// fetchOne resolves a single quote from one source and records it in the
// seen-set. Sources that can pick among unseen texts (the local list) are
// asked to do so; when the pool is exhausted the seen-set resets.
func (uc *UseCase) fetchOne(ctx context.Context, src source.Source) (string, error) {
	if picker, ok := src.(source.Picker); ok {
		uc.mu.Lock()
		defer uc.mu.Unlock()

		quote, exhausted := picker.Pick(uc.seen)
		if exhausted {
			uc.seen = make(map[string]struct{})
			if uc.lastPick != "" {
				// The pool just reset; re-pick so the previous text cannot
				// repeat immediately. A single-message pool repeats anyway.
				quote, _ = picker.Pick(map[string]struct{}{uc.lastPick: {}})
			}
		}
		text := quote.Display()
		uc.lastPick = text
		uc.seen[text] = struct{}{}
		return text, nil
	}

	quote, err := src.Fetch(ctx)
	if err != nil {
		return "", err
	}
	text := quote.Display()

	uc.mu.Lock()
	defer uc.mu.Unlock()
	if _, dup := uc.seen[text]; dup {
		return "", goerr.Wrap(errDuplicateQuote, "rejected by seen-set",
			goerr.V("source", src.Name()))
	}
	uc.lastPick = text
	uc.seen[text] = struct{}{}
	return text, nil
}
