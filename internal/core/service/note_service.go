package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/quicknotes/notes-api/internal/core/domain"
	"github.com/quicknotes/notes-api/internal/core/ports"
)

// NoteService applies content validation and the ownership invariant to all
// note operations. The repository conjoins the owner's ID into every single
// note query, so a foreign note is reported as not found.
type NoteService struct {
	repo ports.NoteRepository
	log  zerolog.Logger
}

func NewNoteService(repo ports.NoteRepository, log zerolog.Logger) *NoteService {
	return &NoteService{repo: repo, log: log}
}

func (s *NoteService) Create(ctx context.Context, userID, content string) (*domain.Note, error) {
	if strings.TrimSpace(content) == "" {
		return nil, domain.ErrEmptyContent
	}

	now := time.Now().UTC()
	note := &domain.Note{
		UserID:    userID,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.repo.Insert(ctx, note)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Msg("failed to create note")
		return nil, err
	}

	s.log.Debug().Str("note_id", created.ID).Str("user_id", userID).Msg("note created")
	return created, nil
}

func (s *NoteService) List(ctx context.Context, userID string) ([]*domain.Note, error) {
	return s.repo.FindByOwner(ctx, userID)
}

func (s *NoteService) Get(ctx context.Context, userID, noteID string) (*domain.Note, error) {
	return s.repo.FindOne(ctx, noteID, userID)
}

// Update validates the new content before touching the store, so a failed
// validation leaves the stored note unchanged.
func (s *NoteService) Update(ctx context.Context, userID, noteID, content string) (*domain.Note, error) {
	if strings.TrimSpace(content) == "" {
		return nil, domain.ErrEmptyContent
	}
	return s.repo.Update(ctx, noteID, userID, content)
}

func (s *NoteService) Delete(ctx context.Context, userID, noteID string) error {
	if err := s.repo.Delete(ctx, noteID, userID); err != nil {
		return err
	}
	s.log.Debug().Str("note_id", noteID).Str("user_id", userID).Msg("note deleted")
	return nil
}
