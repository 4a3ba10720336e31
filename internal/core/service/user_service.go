package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/quicknotes/notes-api/internal/core/domain"
	"github.com/quicknotes/notes-api/internal/core/ports"
)

// UserService implements account management. Re-hashing happens only in
// ChangePassword; profile updates go through a repository method that cannot
// touch the password hash.
type UserService struct {
	users  ports.UserRepository
	notes  ports.NoteRepository
	hasher ports.PasswordHasher
	cache  UserCache
	log    zerolog.Logger
}

func NewUserService(users ports.UserRepository, notes ports.NoteRepository, hasher ports.PasswordHasher, cache UserCache, log zerolog.Logger) *UserService {
	return &UserService{
		users:  users,
		notes:  notes,
		hasher: hasher,
		cache:  cache,
		log:    log,
	}
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx)
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

func (s *UserService) UpdateProfile(ctx context.Context, userID, username string) (*domain.User, error) {
	user, err := s.users.UpdateProfile(ctx, userID, username)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, userID)
	return user, nil
}

// ChangePassword verifies the caller's current password before hashing and
// storing the new one.
func (s *UserService) ChangePassword(ctx context.Context, userID, current, next string) error {
	if next == "" {
		return domain.ErrMissingCredentials
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.hasher.Compare(ctx, user.PasswordHash, current); err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return domain.ErrInvalidCredentials
		}
		return err
	}

	hash, err := s.hasher.Hash(ctx, next)
	if err != nil {
		return err
	}

	if err := s.users.UpdatePassword(ctx, userID, hash); err != nil {
		return err
	}

	s.invalidate(ctx, userID)
	s.log.Info().Str("user_id", userID).Msg("password changed")
	return nil
}

// Delete removes the account and every note it owns. The account goes
// first: once it is gone its notes are unreachable through the API, so a
// failed purge leaves no accessible data behind.
func (s *UserService) Delete(ctx context.Context, userID string) error {
	if err := s.users.Delete(ctx, userID); err != nil {
		return err
	}
	if err := s.notes.DeleteByOwner(ctx, userID); err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("failed to purge notes for deleted account")
	}

	s.invalidate(ctx, userID)
	s.log.Info().Str("user_id", userID).Msg("account deleted")
	return nil
}

func (s *UserService) invalidate(ctx context.Context, userID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, userID); err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("failed to invalidate user cache")
	}
}
