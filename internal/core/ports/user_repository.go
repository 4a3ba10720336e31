package ports

import (
	"context"

	"github.com/quicknotes/notes-api/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
// Email uniqueness is enforced by the store (unique index); Create returns
// domain.ErrEmailTaken on a duplicate.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	// UpdateProfile changes profile fields only. It must never touch the
	// password hash.
	UpdateProfile(ctx context.Context, id, username string) (*domain.User, error)
	// UpdatePassword replaces the stored hash. The caller is responsible
	// for hashing; plaintext never reaches the repository.
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	Delete(ctx context.Context, id string) error
}
