package layout

import (
	"unicode/utf8"

	"github.com/m-mizutani/kokoro/pkg/model"
)

// sizeClasses trades legibility against a visually consistent spread of box
// sizes. Buckets are rune counts of the display text.
var sizeClasses = []struct {
	maxRunes int
	class    model.SizeClass
}{
	{8, model.SizeClass{Name: "xs", Width: 100, Height: 100, FontScale: 1.1}},
	{20, model.SizeClass{Name: "sm", Width: 120, Height: 120, FontScale: 1.0}},
	{35, model.SizeClass{Name: "md", Width: 140, Height: 140, FontScale: 0.92}},
	{51, model.SizeClass{Name: "lg", Width: 160, Height: 160, FontScale: 0.85}},
	{0, model.SizeClass{Name: "xl", Width: 180, Height: 180, FontScale: 0.78}},
}

// Classify returns the size class for a note text: very short (<8 runes)
// through very long (>50 runes).
func Classify(text string) model.SizeClass {
	n := utf8.RuneCountInString(text)
	for _, bucket := range sizeClasses[:len(sizeClasses)-1] {
		if n < bucket.maxRunes {
			return bucket.class
		}
	}
	return sizeClasses[len(sizeClasses)-1].class
}
