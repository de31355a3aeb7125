package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

var (
	ErrInvalidViewport   = goerr.New("invalid viewport")
	ErrInvalidLayoutMode = goerr.New("invalid layout mode")
	ErrNoteNotFound      = goerr.New("note not found")
)

type NoteID string

// NewNoteID generates a new unique NoteID
func NewNoteID() NoteID {
	return NoteID(uuid.New().String())
}

// Placement is a surface-local pixel coordinate. It is recomputed per note
// and never persisted beyond the life of the board.
type Placement struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Viewport is the display surface the notes are placed on.
type Viewport struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Validate checks that the viewport has a drawable area
func (v Viewport) Validate() error {
	if v.Width <= 0 || v.Height <= 0 {
		return goerr.Wrap(ErrInvalidViewport, "viewport must have positive dimensions",
			goerr.V("width", v.Width), goerr.V("height", v.Height))
	}
	return nil
}

type LayoutMode string

const (
	LayoutHeart   LayoutMode = "heart"
	LayoutScatter LayoutMode = "scatter"
)

// Validate checks if the layout mode is valid
func (m LayoutMode) Validate() error {
	switch m {
	case LayoutHeart, LayoutScatter:
		return nil
	default:
		return goerr.Wrap(ErrInvalidLayoutMode, "unknown layout mode", goerr.V("mode", m))
	}
}

type Color string

const (
	ColorRose     Color = "rose"
	ColorPeach    Color = "peach"
	ColorLavender Color = "lavender"
	ColorMint     Color = "mint"
	ColorSky      Color = "sky"
	ColorLemon    Color = "lemon"
)

// Palette returns the note color tokens in a fixed order so an injected
// random source yields reproducible picks.
func Palette() []Color {
	return []Color{ColorRose, ColorPeach, ColorLavender, ColorMint, ColorSky, ColorLemon}
}

// SizeClass holds the pixel dimensions and font scale of a note, chosen by
// text length bucket.
type SizeClass struct {
	Name      string  `json:"name"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	FontScale float64 `json:"font_scale"`
}

// Note is one rendered sticky note. It is owned by the board and destroyed
// when the board is cleared.
type Note struct {
	ID        NoteID    `json:"id"`
	Text      string    `json:"text"`
	Placement Placement `json:"placement"`
	Size      SizeClass `json:"size"`
	Color     Color     `json:"color"`
	CreatedAt time.Time `json:"created_at"`
}
