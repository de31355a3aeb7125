package repository

import (
	"context"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/kokoro/pkg/model"
)

// Memory is the in-memory Repository implementation.
type Memory struct {
	mu    sync.RWMutex
	notes map[model.NoteID]*model.Note
	order []model.NoteID
}

// NewMemory creates an empty in-memory repository
func NewMemory() *Memory {
	return &Memory{
		notes: make(map[model.NoteID]*model.Note),
	}
}

// PutNote stores a note record
func (r *Memory) PutNote(ctx context.Context, note *model.Note) error {
	if note == nil || note.ID == "" {
		return goerr.New("note must have an ID")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.notes[note.ID]; !exists {
		r.order = append(r.order, note.ID)
	}
	r.notes[note.ID] = note
	return nil
}

// GetNote retrieves a note by ID
func (r *Memory) GetNote(ctx context.Context, id model.NoteID) (*model.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	note, ok := r.notes[id]
	if !ok {
		return nil, goerr.Wrap(model.ErrNoteNotFound, "no such note", goerr.V("id", id))
	}
	return note, nil
}

// ListNotes retrieves all note records in creation order
func (r *Memory) ListNotes(ctx context.Context) ([]*model.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	notes := make([]*model.Note, 0, len(r.order))
	for _, id := range r.order {
		if note, ok := r.notes[id]; ok {
			notes = append(notes, note)
		}
	}
	return notes, nil
}

// DeleteNote removes a single note record
func (r *Memory) DeleteNote(ctx context.Context, id model.NoteID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.notes[id]; !ok {
		return goerr.Wrap(model.ErrNoteNotFound, "no such note", goerr.V("id", id))
	}
	delete(r.notes, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// ClearNotes removes every note record
func (r *Memory) ClearNotes(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes = make(map[model.NoteID]*model.Note)
	r.order = nil
	return nil
}
