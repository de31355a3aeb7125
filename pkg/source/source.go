package source

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/kokoro/pkg/model"
	"github.com/urfave/cli/v3"
)

var (
	ErrEmptyQuote     = goerr.New("source returned empty quote text")
	ErrSourceNotFound = goerr.New("source not found")
)

// fetchTimeout bounds every single remote attempt. On expiry the request is
// aborted via context cancellation and reported as an ordinary source error.
const fetchTimeout = 2 * time.Second

// authorSentinel is the anonymous placeholder some feeds return instead of a
// real attribution. It is never rendered.
const authorSentinel = "网络"

// Source represents one named quote provider: a remote endpoint or the local
// message list.
type Source interface {
	// Name returns the identifier of the source
	Name() model.SourceName

	// Enabled reports whether the source participates in rotation
	Enabled() bool

	// Flags returns CLI flags for this source
	// Returns nil if no flags are needed
	Flags() []cli.Flag

	// Init prepares the source (e.g. loads resources). Called once before use.
	Init(ctx context.Context) error

	// Fetch retrieves one quote
	Fetch(ctx context.Context) (*model.Quote, error)
}

// Picker is implemented by sources that can select among texts not yet
// dispensed. exclude holds the already-seen display texts; exhausted reports
// that nothing outside exclude remained and the pick came from the full list.
type Picker interface {
	Source
	Pick(exclude map[string]struct{}) (quote *model.Quote, exhausted bool)
}

// acceptAuthor decides whether an attribution line is appended: the author
// must be present, must not be the anonymous sentinel, and must be shorter
// than maxRunes.
func acceptAuthor(author string, maxRunes int) bool {
	author = strings.TrimSpace(author)
	if author == "" || author == authorSentinel {
		return false
	}
	return utf8.RuneCountInString(author) < maxRunes
}
