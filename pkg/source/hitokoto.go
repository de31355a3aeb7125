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
	defaultHitokotoURL = "https://v1.hitokoto.cn"
	hitokotoAuthorCap  = 15
)

type hitokotoResponse struct {
	Hitokoto string `json:"hitokoto"`
	From     string `json:"from"`
}

// Hitokoto fetches one-liner quotes from the hitokoto.cn API.
type Hitokoto struct {
	baseURL    string
	httpClient *http.Client
	disabled   bool
}

// HitokotoOption mutates the source during construction.
type HitokotoOption func(*Hitokoto)

// WithHitokotoURL overrides the endpoint (useful for tests)
func WithHitokotoURL(baseURL string) HitokotoOption {
	return func(x *Hitokoto) {
		x.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithHitokotoHTTPClient installs a custom http.Client
func WithHitokotoHTTPClient(hc *http.Client) HitokotoOption {
	return func(x *Hitokoto) { x.httpClient = hc }
}

// NewHitokoto creates a new hitokoto source
func NewHitokoto(opts ...HitokotoOption) *Hitokoto {
	x := &Hitokoto{
		baseURL:    defaultHitokotoURL,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(x)
	}
	return x
}

// Name returns the identifier of the source
func (x *Hitokoto) Name() model.SourceName {
	return model.SourceHitokoto
}

// Enabled reports whether the source participates in rotation
func (x *Hitokoto) Enabled() bool {
	return !x.disabled
}

// Flags returns CLI flags for this source
func (x *Hitokoto) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:        "disable-hitokoto",
			Sources:     cli.EnvVars("KOKORO_DISABLE_HITOKOTO"),
			Usage:       "Exclude the hitokoto API from the source rotation",
			Destination: &x.disabled,
		},
		&cli.StringFlag{
			Name:        "hitokoto-url",
			Sources:     cli.EnvVars("KOKORO_HITOKOTO_URL"),
			Usage:       "Override the hitokoto API endpoint",
			Value:       defaultHitokotoURL,
			Destination: &x.baseURL,
		},
	}
}

// Init initializes the source
func (x *Hitokoto) Init(ctx context.Context) error {
	return nil
}

// Fetch retrieves one quote. The attempt is bounded by the shared fetch
// timeout; on expiry the request is aborted and the error is returned to the
// aggregator, which moves on to the next source.
func (x *Hitokoto) Fetch(ctx context.Context) (*model.Quote, error) {
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
		return nil, goerr.New("hitokoto API returned error", goerr.V("status", resp.StatusCode))
	}

	var body hitokotoResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, goerr.Wrap(err, "failed to decode response")
	}

	text := strings.TrimSpace(body.Hitokoto)
	if text == "" {
		return nil, goerr.Wrap(ErrEmptyQuote, "hitokoto field is empty")
	}

	quote := &model.Quote{
		Text:      text,
		Source:    model.SourceHitokoto,
		FetchedAt: time.Now(),
	}
	if acceptAuthor(body.From, hitokotoAuthorCap) {
		quote.Author = strings.TrimSpace(body.From)
	}
	return quote, nil
}
