package ports

import (
	"context"

	"github.com/quicknotes/notes-api/internal/core/domain"
)

// NoteRepository defines persistence operations for notes. Every lookup or
// mutation that targets a single note takes the owner's user ID and conjoins
// it with the note ID in the query filter, so a note that exists but belongs
// to someone else surfaces as domain.ErrNoteNotFound.
type NoteRepository interface {
	Insert(ctx context.Context, note *domain.Note) (*domain.Note, error)
	// FindByOwner returns all notes owned by userID, newest created first.
	FindByOwner(ctx context.Context, userID string) ([]*domain.Note, error)
	FindOne(ctx context.Context, id, userID string) (*domain.Note, error)
	Update(ctx context.Context, id, userID, content string) (*domain.Note, error)
	Delete(ctx context.Context, id, userID string) error
	// DeleteByOwner removes every note owned by userID (account deletion).
	DeleteByOwner(ctx context.Context, userID string) error
}
