package layout_test

import (
	"math"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/kokoro/pkg/model"
	"github.com/m-mizutani/kokoro/pkg/usecase/layout"
)

func TestHeartPositionIsDeterministic(t *testing.T) {
	engine := layout.New()
	vp := model.Viewport{Width: 1280, Height: 800}

	for index := 0; index < 50; index++ {
		first, err := engine.HeartPosition(index, 50, vp)
		gt.NoError(t, err)
		second, err := engine.HeartPosition(index, 50, vp)
		gt.NoError(t, err)
		gt.V(t, first).Equal(second)
	}
}

func TestHeartPositionWrapsAtFullTurn(t *testing.T) {
	engine := layout.New()
	vp := model.Viewport{Width: 1280, Height: 800}

	start, err := engine.HeartPosition(0, 50, vp)
	gt.NoError(t, err)
	wrapped, err := engine.HeartPosition(50, 50, vp)
	gt.NoError(t, err)

	if math.Abs(start.X-wrapped.X) > 1e-6 || math.Abs(start.Y-wrapped.Y) > 1e-6 {
		t.Errorf("index 50 of 50 should wrap to index 0: got %+v vs %+v", wrapped, start)
	}
}

func TestHeartPositionCentersNote(t *testing.T) {
	engine := layout.New()
	vp := model.Viewport{Width: 1000, Height: 1000}

	// At angle 0 the x offset vanishes (sin 0 = 0), so the placement is the
	// horizontal center minus half the nominal note size.
	p, err := engine.HeartPosition(0, 50, vp)
	gt.NoError(t, err)
	gt.V(t, p.X).Equal(vp.Width/2 - layout.NoteSize/2)
}

func TestHeartPositionErrors(t *testing.T) {
	engine := layout.New()
	vp := model.Viewport{Width: 1280, Height: 800}

	t.Run("zero slots", func(t *testing.T) {
		_, err := engine.HeartPosition(0, 0, vp)
		gt.Error(t, err)
	})

	t.Run("negative slots", func(t *testing.T) {
		_, err := engine.HeartPosition(3, -1, vp)
		gt.Error(t, err)
	})

	t.Run("empty viewport", func(t *testing.T) {
		_, err := engine.HeartPosition(0, 50, model.Viewport{})
		gt.Error(t, err)
	})
}

func TestScaleTierBoundaries(t *testing.T) {
	tests := []struct {
		name   string
		vp     model.Viewport
		tier   string
		factor float64
	}{
		{
			name:   "499 is phone-portrait",
			vp:     model.Viewport{Width: 499, Height: 2000},
			tier:   "phone-portrait",
			factor: 0.025,
		},
		{
			name:   "500 is phone-landscape",
			vp:     model.Viewport{Width: 500, Height: 2000},
			tier:   "phone-landscape",
			factor: 0.028,
		},
		{
			name:   "767 is phone-landscape",
			vp:     model.Viewport{Width: 767, Height: 2000},
			tier:   "phone-landscape",
			factor: 0.028,
		},
		{
			name:   "768 is tablet",
			vp:     model.Viewport{Width: 768, Height: 2000},
			tier:   "tablet",
			factor: 0.032,
		},
		{
			name:   "1023 is tablet",
			vp:     model.Viewport{Width: 1023, Height: 2000},
			tier:   "tablet",
			factor: 0.032,
		},
		{
			name:   "1024 is desktop",
			vp:     model.Viewport{Width: 1024, Height: 2000},
			tier:   "desktop",
			factor: 0.035,
		},
		{
			name:   "smaller dimension wins",
			vp:     model.Viewport{Width: 3000, Height: 480},
			tier:   "phone-portrait",
			factor: 0.025,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tier := layout.ScaleFor(tt.vp)
			gt.V(t, tier.Name).Equal(tt.tier)
			gt.V(t, tier.Factor).Equal(tt.factor)
		})
	}
}
