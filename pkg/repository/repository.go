package repository

import (
	"context"

	"github.com/m-mizutani/kokoro/pkg/model"
)

// Repository defines the interface for note record bookkeeping. Records live
// only as long as the board; the shipped backend is in-memory, but the board
// only sees this interface.
type Repository interface {
	// PutNote stores a note record
	PutNote(ctx context.Context, note *model.Note) error

	// GetNote retrieves a note by ID
	GetNote(ctx context.Context, id model.NoteID) (*model.Note, error)

	// ListNotes retrieves all note records in creation order
	ListNotes(ctx context.Context) ([]*model.Note, error)

	// DeleteNote removes a single note record
	DeleteNote(ctx context.Context, id model.NoteID) error

	// ClearNotes removes every note record
	ClearNotes(ctx context.Context) error
}
