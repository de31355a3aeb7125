package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/kokoro/pkg/model"
	"github.com/m-mizutani/kokoro/pkg/usecase/board"
	"github.com/urfave/cli/v3"
)

const boardHelp = `commands:
  next [heart|scatter]   spawn a note (default heart)
  list                   show all notes
  move <id> <x> <y>      reposition a note
  clear                  remove all notes
  exit                   quit`

func boardCommand() *cli.Command {
	var (
		cfg    = newConfig()
		width  float64
		height float64
	)

	flags := []cli.Flag{
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
	}
	flags = append(flags, cfg.flags()...)

	return &cli.Command{
		Name:  "board",
		Usage: "Interactive note board",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx = cfg.loggerContext(ctx)

			agg, err := cfg.newAggregator(ctx)
			if err != nil {
				return err
			}
			defer func() {
				_ = cfg.local.Close()
			}()

			b := cfg.newBoard(agg)
			vp := model.Viewport{Width: width, Height: height}

			rl, err := readline.New("kokoro> ")
			if err != nil {
				return goerr.Wrap(err, "failed to open prompt")
			}
			defer rl.Close()

			w := c.Root().Writer
			fmt.Fprintln(w, boardHelp)

			for {
				line, err := rl.Readline()
				if errors.Is(err, readline.ErrInterrupt) {
					continue
				}
				if errors.Is(err, io.EOF) {
					return nil
				}
				if err != nil {
					return goerr.Wrap(err, "failed to read line")
				}

				if err := runBoardCommand(ctx, w, b, vp, strings.Fields(line)); err != nil {
					if errors.Is(err, errBoardExit) {
						return nil
					}
					fmt.Fprintf(w, "error: %s\n", err)
				}
			}
		},
	}
}

var errBoardExit = goerr.New("exit")

func runBoardCommand(ctx context.Context, w io.Writer, b *board.UseCase, vp model.Viewport, args []string) error {
	if len(args) == 0 {
		return nil
	}

	switch args[0] {
	case "next", "n":
		mode := model.LayoutHeart
		if len(args) > 1 {
			mode = model.LayoutMode(args[1])
		}
		note, err := b.Spawn(ctx, vp, mode)
		if err != nil {
			return err
		}
		printNote(w, note)
		return nil

	case "list", "ls":
		notes, err := b.List(ctx)
		if err != nil {
			return err
		}
		for _, note := range notes {
			printNote(w, note)
		}
		fmt.Fprintf(w, "%d note(s)\n", len(notes))
		return nil

	case "move", "mv":
		if len(args) != 4 {
			return goerr.New("usage: move <id> <x> <y>")
		}
		x, err := strconv.ParseFloat(args[2], 64)
		if err != nil {
			return goerr.Wrap(err, "invalid x")
		}
		y, err := strconv.ParseFloat(args[3], 64)
		if err != nil {
			return goerr.Wrap(err, "invalid y")
		}
		note, err := b.Move(ctx, model.NoteID(args[1]), x, y)
		if err != nil {
			return err
		}
		printNote(w, note)
		return nil

	case "clear":
		if err := b.Clear(ctx); err != nil {
			return err
		}
		fmt.Fprintln(w, "board cleared")
		return nil

	case "help":
		fmt.Fprintln(w, boardHelp)
		return nil

	case "exit", "quit", "q":
		return errBoardExit

	default:
		return goerr.New("unknown command", goerr.V("command", args[0]))
	}
}

func printNote(w io.Writer, note *model.Note) {
	text := strings.ReplaceAll(note.Text, "\n", " ")
	fmt.Fprintf(w, "%s  (%6.1f, %6.1f)  %-2s %-8s  %s\n",
		note.ID, note.Placement.X, note.Placement.Y, note.Size.Name, note.Color, text)
}
