package source

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/kokoro/pkg/model"
	"github.com/urfave/cli/v3"
)

const (
	defaultQuotableURL = "https://api.quotable.io/random"
	quotableAuthorCap  = 10
)

type quotableResponse struct {
	Content string `json:"content"`
	Author  string `json:"author"`
}

// Quotable fetches random quotes from the quotable.io API.
type Quotable struct {
	baseURL    string
	httpClient *http.Client
	disabled   bool
}

// QuotableOption mutates the source during construction.
type QuotableOption func(*Quotable)

// WithQuotableURL overrides the endpoint (useful for tests)
func WithQuotableURL(baseURL string) QuotableOption {
	return func(x *Quotable) {
		x.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithQuotableHTTPClient installs a custom http.Client
func WithQuotableHTTPClient(hc *http.Client) QuotableOption {
	return func(x *Quotable) { x.httpClient = hc }
}

// NewQuotable creates a new quotable source
func NewQuotable(opts ...QuotableOption) *Quotable {
	x := &Quotable{
		baseURL:    defaultQuotableURL,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(x)
	}
	return x
}

// Name returns the identifier of the source
func (x *Quotable) Name() model.SourceName {
	return model.SourceQuotable
}

// Enabled reports whether the source participates in rotation
func (x *Quotable) Enabled() bool {
	return !x.disabled
}

// Flags returns CLI flags for this source
func (x *Quotable) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:        "disable-quotable",
			Sources:     cli.EnvVars("KOKORO_DISABLE_QUOTABLE"),
			Usage:       "Exclude the quotable API from the source rotation",
			Destination: &x.disabled,
		},
		&cli.StringFlag{
			Name:        "quotable-url",
			Sources:     cli.EnvVars("KOKORO_QUOTABLE_URL"),
			Usage:       "Override the quotable API endpoint",
			Value:       defaultQuotableURL,
			Destination: &x.baseURL,
		},
	}
}

// Init initializes the source
func (x *Quotable) Init(ctx context.Context) error {
	return nil
}

// Fetch retrieves one quote within the shared fetch timeout.
func (x *Quotable) Fetch(ctx context.Context) (*model.Quote, error) {
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, x.baseURL, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create request")
	}

	resp, err := x.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to send request")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, goerr.New("quotable API returned error", goerr.V("status", resp.StatusCode))
	}

	var body quotableResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, goerr.Wrap(err, "failed to decode response")
	}

	text := strings.TrimSpace(body.Content)
	if text == "" {
		return nil, goerr.Wrap(ErrEmptyQuote, "content field is empty")
	}

	quote := &model.Quote{
		Text:      text,
		Source:    model.SourceQuotable,
		FetchedAt: time.Now(),
	}
	if acceptAuthor(body.Author, quotableAuthorCap) {
		quote.Author = strings.TrimSpace(body.Author)
	}
	return quote, nil
}
