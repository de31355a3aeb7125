package board

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/kokoro/pkg/model"
	"github.com/m-mizutani/kokoro/pkg/repository"
	"github.com/m-mizutani/kokoro/pkg/usecase/aggregator"
	"github.com/m-mizutani/kokoro/pkg/usecase/layout"
)

// UseCase owns the note records: it composes the quote aggregator with the
// placement engine and tracks every rendered note until the board is cleared.
type UseCase struct {
	repo   repository.Repository
	agg    *aggregator.UseCase
	engine *layout.Engine
	rng    *rand.Rand
	slots  int

	mu        sync.Mutex
	nextIndex int
}

// Option is a functional option for UseCase
type Option func(*UseCase)

// WithRand injects a seedable random source for color picks
func WithRand(rng *rand.Rand) Option {
	return func(uc *UseCase) { uc.rng = rng }
}

// WithSlots overrides the heart-curve slot count
func WithSlots(slots int) Option {
	return func(uc *UseCase) { uc.slots = slots }
}

// New creates a board UseCase instance
func New(
	repo repository.Repository,
	agg *aggregator.UseCase,
	engine *layout.Engine,
	opts ...Option,
) *UseCase {
	uc := &UseCase{
		repo:   repo,
		agg:    agg,
		engine: engine,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		slots:  layout.DefaultSlots,
	}

	for _, opt := range opts {
		opt(uc)
	}

	return uc
}

// Spawn creates one note: next quote, a placement for the requested layout
// mode, a size class from the text length, and a palette color. Heart indexes
// advance a rotating counter and wrap past the slot count.
func (uc *UseCase) Spawn(ctx context.Context, vp model.Viewport, mode model.LayoutMode) (*model.Note, error) {
	if err := mode.Validate(); err != nil {
		return nil, err
	}
	if err := vp.Validate(); err != nil {
		return nil, err
	}

	text := uc.agg.NextQuote(ctx)

	var placement model.Placement
	switch mode {
	case model.LayoutHeart:
		uc.mu.Lock()
		index := uc.nextIndex
		uc.nextIndex = (uc.nextIndex + 1) % uc.slots
		uc.mu.Unlock()

		p, err := uc.engine.HeartPosition(index, uc.slots, vp)
		if err != nil {
			return nil, err
		}
		placement = p

	case model.LayoutScatter:
		existing, err := uc.repo.ListNotes(ctx)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list placed notes")
		}
		placed := make([]model.Placement, 0, len(existing))
		for _, n := range existing {
			placed = append(placed, n.Placement)
		}

		p, err := uc.engine.Scatter(vp, placed)
		if err != nil {
			return nil, err
		}
		placement = p
	}

	palette := model.Palette()
	note := &model.Note{
		ID:        model.NewNoteID(),
		Text:      text,
		Placement: placement,
		Size:      layout.Classify(text),
		Color:     palette[uc.rng.Intn(len(palette))],
		CreatedAt: time.Now(),
	}

	if err := uc.repo.PutNote(ctx, note); err != nil {
		return nil, goerr.Wrap(err, "failed to store note")
	}
	return note, nil
}

// Move records the final coordinates reported by the drag collaborator.
func (uc *UseCase) Move(ctx context.Context, id model.NoteID, x, y float64) (*model.Note, error) {
	note, err := uc.repo.GetNote(ctx, id)
	if err != nil {
		return nil, err
	}

	note.Placement = model.Placement{X: x, Y: y}
	if err := uc.repo.PutNote(ctx, note); err != nil {
		return nil, goerr.Wrap(err, "failed to update note")
	}
	return note, nil
}

// List returns all notes in creation order
func (uc *UseCase) List(ctx context.Context) ([]*model.Note, error) {
	return uc.repo.ListNotes(ctx)
}

// Clear destroys every note record and resets the heart index
func (uc *UseCase) Clear(ctx context.Context) error {
	if err := uc.repo.ClearNotes(ctx); err != nil {
		return goerr.Wrap(err, "failed to clear notes")
	}
	uc.mu.Lock()
	uc.nextIndex = 0
	uc.mu.Unlock()
	return nil
}
