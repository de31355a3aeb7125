package source

import (
	"context"
	"math/rand"
	"os"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/kokoro/pkg/model"
	"github.com/m-mizutani/kokoro/pkg/utils/logging"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// defaultMessages is the built-in list used when no message file is given or
// the file cannot be loaded.
var defaultMessages = []string{
	"愿你被这个世界温柔以待",
	"今天也要加油鸭",
	"保持热爱，奔赴山海",
	"万事胜意，平安喜乐",
	"你比想象中更勇敢",
	"慢慢来，一切都来得及",
	"星光不问赶路人",
	"心之所向，素履以往",
	"Every day is a fresh start",
	"You are enough",
	"Small steps still move forward",
	"Be kind to yourself today",
}

type messageFile struct {
	Messages []string `yaml:"messages"`
}

// Local dispenses messages from a YAML file or the built-in list. It is also
// the aggregator's unconditional fallback: Pick never fails.
type Local struct {
	path     string
	disabled bool
	rng      *rand.Rand

	mu       sync.Mutex
	messages []string
	watcher  *fsnotify.Watcher
}

// LocalOption mutates the source during construction.
type LocalOption func(*Local)

// WithLocalRand injects a seedable random source for deterministic picks
func WithLocalRand(rng *rand.Rand) LocalOption {
	return func(x *Local) { x.rng = rng }
}

// WithLocalMessages replaces the built-in message list (useful for tests)
func WithLocalMessages(messages []string) LocalOption {
	return func(x *Local) { x.messages = messages }
}

// WithLocalPath sets the message file path without going through flags
func WithLocalPath(path string) LocalOption {
	return func(x *Local) { x.path = path }
}

// NewLocal creates a new local source
func NewLocal(opts ...LocalOption) *Local {
	x := &Local{
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		messages: defaultMessages,
	}
	for _, opt := range opts {
		opt(x)
	}
	return x
}

// Name returns the identifier of the source
func (x *Local) Name() model.SourceName {
	return model.SourceLocal
}

// Enabled reports whether the source participates in rotation. Even when
// disabled, the aggregator still uses it as the last-resort fallback.
func (x *Local) Enabled() bool {
	return !x.disabled
}

// Flags returns CLI flags for this source
func (x *Local) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "messages",
			Aliases:     []string{"m"},
			Sources:     cli.EnvVars("KOKORO_MESSAGES"),
			Usage:       "Path to YAML file with a 'messages' list",
			Destination: &x.path,
		},
		&cli.BoolFlag{
			Name:        "disable-local",
			Sources:     cli.EnvVars("KOKORO_DISABLE_LOCAL"),
			Usage:       "Exclude the local list from rotation (it remains the fallback)",
			Destination: &x.disabled,
		},
	}
}

// Init loads the message file once. A load failure falls back to the built-in
// list and is not retried; the source itself never fails to initialize. When
// a file is given, it is watched and hot-reloaded on change.
func (x *Local) Init(ctx context.Context) error {
	if x.path == "" {
		return nil
	}

	if err := x.load(); err != nil {
		logging.From(ctx).Warn("failed to load message file, using built-in list",
			"path", x.path, "error", err)
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		logging.From(ctx).Warn("failed to watch message file", "path", x.path, "error", err)
		return nil
	}
	if err := watcher.Add(x.path); err != nil {
		_ = watcher.Close()
		logging.From(ctx).Warn("failed to watch message file", "path", x.path, "error", err)
		return nil
	}
	x.watcher = watcher
	go x.watch(ctx)

	return nil
}

// Close stops the file watcher if one is running
func (x *Local) Close() error {
	if x.watcher != nil {
		return x.watcher.Close()
	}
	return nil
}

func (x *Local) load() error {
	raw, err := os.ReadFile(x.path)
	if err != nil {
		return goerr.Wrap(err, "failed to read message file", goerr.V("path", x.path))
	}

	var file messageFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return goerr.Wrap(err, "failed to parse message file", goerr.V("path", x.path))
	}
	if len(file.Messages) == 0 {
		return goerr.New("message file has no messages", goerr.V("path", x.path))
	}

	x.mu.Lock()
	x.messages = file.Messages
	x.mu.Unlock()
	return nil
}

func (x *Local) watch(ctx context.Context) {
	logger := logging.From(ctx)
	for {
		select {
		case event, ok := <-x.watcher.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				if err := x.load(); err != nil {
					logger.Warn("failed to reload message file", "error", err)
				} else {
					logger.Debug("reloaded message file", "path", event.Name)
				}
			}
		case err, ok := <-x.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("message file watcher error", "error", err)
		}
	}
}

// Fetch picks uniformly at random from the full list.
func (x *Local) Fetch(ctx context.Context) (*model.Quote, error) {
	quote, _ := x.Pick(nil)
	return quote, nil
}

// Pick selects uniformly among messages whose text is not in exclude. When
// every message is excluded, it picks from the full list and reports
// exhausted so the caller can reset its seen-set.
func (x *Local) Pick(exclude map[string]struct{}) (*model.Quote, bool) {
	x.mu.Lock()
	defer x.mu.Unlock()

	candidates := x.messages
	exhausted := false
	if len(exclude) > 0 {
		fresh := make([]string, 0, len(x.messages))
		for _, msg := range x.messages {
			if _, seen := exclude[msg]; !seen {
				fresh = append(fresh, msg)
			}
		}
		if len(fresh) > 0 {
			candidates = fresh
		} else {
			exhausted = true
		}
	}

	text := candidates[x.rng.Intn(len(candidates))]
	return &model.Quote{
		Text:      text,
		Source:    model.SourceLocal,
		FetchedAt: time.Now(),
	}, exhausted
}
