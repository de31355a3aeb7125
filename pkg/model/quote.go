package model

import (
	"time"
)

// SourceName identifies a quote provider.
type SourceName string

const (
	SourceHitokoto SourceName = "hitokoto"
	SourceQuotable SourceName = "quotable"
	SourceLocal    SourceName = "local"
)

// Quote is a single snippet dispensed to the board. Author is set only when
// the source accepted the attribution (non-empty, not the anonymous
// placeholder, under the per-source length cap).
type Quote struct {
	Text      string     `json:"text"`
	Author    string     `json:"author,omitempty"`
	Source    SourceName `json:"source"`
	FetchedAt time.Time  `json:"fetched_at"`
}

// Display returns the text rendered onto a note: the quote itself, plus an
// attribution line when an author survived the source's filter.
func (q *Quote) Display() string {
	if q.Author == "" {
		return q.Text
	}
	return q.Text + "\n— " + q.Author
}
