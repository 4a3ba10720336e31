package ports

import (
	"context"

	"github.com/quicknotes/notes-api/internal/core/domain"
)

// NoteService defines the note use cases. The authenticated user's ID is an
// explicit parameter on every operation; the service guarantees that no
// operation can see or touch a note owned by anyone else.
type NoteService interface {
	Create(ctx context.Context, userID, content string) (*domain.Note, error)
	List(ctx context.Context, userID string) ([]*domain.Note, error)
	Get(ctx context.Context, userID, noteID string) (*domain.Note, error)
	Update(ctx context.Context, userID, noteID, content string) (*domain.Note, error)
	Delete(ctx context.Context, userID, noteID string) error
}
