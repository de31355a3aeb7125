package layout

import (
	"math"

	"github.com/m-mizutani/kokoro/pkg/model"
)

const (
	// scatterAttempts bounds the sampling loop; after the budget, overlap is
	// allowed rather than stalling placement.
	scatterAttempts = 30
	// minSeparation is the minimum Euclidean distance to every placed note.
	minSeparation = 160.0
	// scatterPadding keeps samples away from the surface edges.
	scatterPadding = 50.0
)

// Scatter samples a uniform-random point within the padded viewport bounds
// and accepts the first one at least minSeparation away from every placed
// note. If no sample passes within the attempt budget, the last sample is
// returned unconditionally.
func (e *Engine) Scatter(vp model.Viewport, placed []model.Placement) (model.Placement, error) {
	if err := vp.Validate(); err != nil {
		return model.Placement{}, err
	}

	width := vp.Width - 2*scatterPadding
	height := vp.Height - 2*scatterPadding
	if width <= 0 || height <= 0 {
		// Too small to pad; sample the full surface instead.
		width = vp.Width
		height = vp.Height
	}

	var p model.Placement
	for i := 0; i < scatterAttempts; i++ {
		p = model.Placement{
			X: vp.Width/2 - width/2 + e.rng.Float64()*width,
			Y: vp.Height/2 - height/2 + e.rng.Float64()*height,
		}
		if separated(p, placed) {
			return p, nil
		}
	}
	return p, nil
}

func separated(p model.Placement, placed []model.Placement) bool {
	for _, q := range placed {
		if math.Hypot(p.X-q.X, p.Y-q.Y) < minSeparation {
			return false
		}
	}
	return true
}
