package layout

import (
	"math"
	"math/rand"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/kokoro/pkg/model"
)

var ErrInvalidSlots = goerr.New("totalSlots must be positive")

// DefaultSlots is the nominal heart-curve capacity. Indexes beyond it wrap
// around the curve (angle periodicity), they are not rejected.
const DefaultSlots = 50

// NoteSize is the nominal square note edge in pixels. Placements are shifted
// by half of it so the note's visual center lands on the curve.
const NoteSize = 50.0

// ScaleTier maps a viewport's smaller dimension to a curve scale factor.
// Smaller surfaces get a relatively larger curve to stay legible; larger ones
// a relatively smaller curve to avoid edge clipping.
type ScaleTier struct {
	Name   string
	maxDim float64
	Factor float64
}

var scaleTiers = []ScaleTier{
	{Name: "phone-portrait", maxDim: 500, Factor: 0.025},
	{Name: "phone-landscape", maxDim: 768, Factor: 0.028},
	{Name: "tablet", maxDim: 1024, Factor: 0.032},
	{Name: "desktop", maxDim: math.Inf(1), Factor: 0.035},
}

// ScaleFor returns the scale tier for the viewport's smaller dimension.
// Boundaries belong to the larger tier: 499 is phone-portrait, 500 is
// phone-landscape, 1024 is desktop.
func ScaleFor(vp model.Viewport) ScaleTier {
	dim := math.Min(vp.Width, vp.Height)
	for _, tier := range scaleTiers {
		if dim < tier.maxDim {
			return tier
		}
	}
	return scaleTiers[len(scaleTiers)-1]
}

// Engine computes note placements. Randomness is injected so scatter and
// color picks are reproducible under test.
type Engine struct {
	rng      *rand.Rand
	noteSize float64
}

// Option is a functional option for Engine
type Option func(*Engine)

// WithRand injects a seedable random source
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) { e.rng = rng }
}

// New creates a placement engine
func New(opts ...Option) *Engine {
	e := &Engine{
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		noteSize: NoteSize,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// HeartPosition evaluates the heart parametric curve at the angular step
// index/totalSlots·2π:
//
//	x = 16·sin³θ · scale
//	y = −(13·cosθ − 5·cos2θ − 2·cos3θ − cos4θ) · scale
//
// scale is the viewport's smaller dimension times the tier factor. The result
// is the viewport center plus the offset, shifted by half the note size. Pure
// and deterministic for fixed viewport dimensions.
func (e *Engine) HeartPosition(index, totalSlots int, vp model.Viewport) (model.Placement, error) {
	if totalSlots <= 0 {
		return model.Placement{}, goerr.Wrap(ErrInvalidSlots, "cannot divide the curve",
			goerr.V("totalSlots", totalSlots))
	}
	if err := vp.Validate(); err != nil {
		return model.Placement{}, err
	}

	angle := float64(index) / float64(totalSlots) * 2 * math.Pi
	scale := math.Min(vp.Width, vp.Height) * ScaleFor(vp).Factor

	sin := math.Sin(angle)
	x := 16 * sin * sin * sin * scale
	y := -(13*math.Cos(angle) - 5*math.Cos(2*angle) - 2*math.Cos(3*angle) - math.Cos(4*angle)) * scale

	half := e.noteSize / 2
	return model.Placement{
		X: vp.Width/2 + x - half,
		Y: vp.Height/2 + y - half,
	}, nil
}
