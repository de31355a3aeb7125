package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/kokoro/pkg/model"
	"github.com/m-mizutani/kokoro/pkg/repository"
)

func newNote(text string) *model.Note {
	return &model.Note{
		ID:   model.NewNoteID(),
		Text: text,
	}
}

func TestMemoryRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("put and get", func(t *testing.T) {
		repo := repository.NewMemory()
		note := newNote("hello")
		gt.NoError(t, repo.PutNote(ctx, note))

		got, err := repo.GetNote(ctx, note.ID)
		gt.NoError(t, err)
		gt.V(t, got.Text).Equal("hello")
	})

	t.Run("get unknown note", func(t *testing.T) {
		repo := repository.NewMemory()
		_, err := repo.GetNote(ctx, "no-such-id")
		gt.Error(t, err)
		gt.V(t, errors.Is(err, model.ErrNoteNotFound)).Equal(true)
	})

	t.Run("put without ID", func(t *testing.T) {
		repo := repository.NewMemory()
		gt.Error(t, repo.PutNote(ctx, &model.Note{}))
	})

	t.Run("list preserves creation order", func(t *testing.T) {
		repo := repository.NewMemory()
		first := newNote("first")
		second := newNote("second")
		third := newNote("third")
		for _, n := range []*model.Note{first, second, third} {
			gt.NoError(t, repo.PutNote(ctx, n))
		}

		notes, err := repo.ListNotes(ctx)
		gt.NoError(t, err)
		gt.V(t, len(notes)).Equal(3)
		gt.V(t, notes[0].ID).Equal(first.ID)
		gt.V(t, notes[2].ID).Equal(third.ID)
	})

	t.Run("update keeps position in order", func(t *testing.T) {
		repo := repository.NewMemory()
		first := newNote("first")
		second := newNote("second")
		gt.NoError(t, repo.PutNote(ctx, first))
		gt.NoError(t, repo.PutNote(ctx, second))

		first.Text = "updated"
		gt.NoError(t, repo.PutNote(ctx, first))

		notes, err := repo.ListNotes(ctx)
		gt.NoError(t, err)
		gt.V(t, len(notes)).Equal(2)
		gt.V(t, notes[0].Text).Equal("updated")
	})

	t.Run("delete", func(t *testing.T) {
		repo := repository.NewMemory()
		note := newNote("bye")
		gt.NoError(t, repo.PutNote(ctx, note))
		gt.NoError(t, repo.DeleteNote(ctx, note.ID))

		_, err := repo.GetNote(ctx, note.ID)
		gt.Error(t, err)
		gt.Error(t, repo.DeleteNote(ctx, note.ID))
	})

	t.Run("clear", func(t *testing.T) {
		repo := repository.NewMemory()
		gt.NoError(t, repo.PutNote(ctx, newNote("a")))
		gt.NoError(t, repo.PutNote(ctx, newNote("b")))
		gt.NoError(t, repo.ClearNotes(ctx))

		notes, err := repo.ListNotes(ctx)
		gt.NoError(t, err)
		gt.V(t, len(notes)).Equal(0)
	})
}
