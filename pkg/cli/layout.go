package cli

import (
	"context"
	"fmt"

	"github.com/m-mizutani/kokoro/pkg/model"
	"github.com/m-mizutani/kokoro/pkg/usecase/layout"
	"github.com/urfave/cli/v3"
)

func layoutCommand() *cli.Command {
	var (
		cfg    = newConfig()
		count  int64
		slots  int64
		width  float64
		height float64
		mode   string
	)

	flags := []cli.Flag{
		&cli.IntFlag{
			Name:        "count",
			Aliases:     []string{"n"},
			Usage:       "Number of placements to print",
			Value:       12,
			Destination: &count,
		},
		&cli.IntFlag{
			Name:        "slots",
			Usage:       "Heart-curve slot count (indexes wrap past it)",
			Value:       layout.DefaultSlots,
			Destination: &slots,
		},
		&cli.FloatFlag{
			Name:        "width",
			Usage:       "Viewport width in pixels",
			Value:       1280,
			Destination: &width,
		},
		&cli.FloatFlag{
			Name:        "height",
			Usage:       "Viewport height in pixels",
			Value:       800,
			Destination: &height,
		},
		&cli.StringFlag{
			Name:        "mode",
			Usage:       "Placement mode: heart or scatter",
			Value:       string(model.LayoutHeart),
			Destination: &mode,
		},
	}
	flags = append(flags, cfg.baseFlags()...)

	return &cli.Command{
		Name:  "layout",
		Usage: "Print note placements for a viewport",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			_ = cfg.loggerContext(ctx)

			vp := model.Viewport{Width: width, Height: height}
			if err := vp.Validate(); err != nil {
				return err
			}
			layoutMode := model.LayoutMode(mode)
			if err := layoutMode.Validate(); err != nil {
				return err
			}

			engine := layout.New()
			w := c.Root().Writer
			fmt.Fprintf(w, "viewport %.0fx%.0f, tier %s\n", width, height, layout.ScaleFor(vp).Name)

			var placed []model.Placement
			for i := int64(0); i < count; i++ {
				var p model.Placement
				var err error
				switch layoutMode {
				case model.LayoutHeart:
					p, err = engine.HeartPosition(int(i), int(slots), vp)
				case model.LayoutScatter:
					p, err = engine.Scatter(vp, placed)
					placed = append(placed, p)
				}
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%3d  (%7.1f, %7.1f)\n", i, p.X, p.Y)
			}
			return nil
		},
	}
}
