package ports

import (
	"context"

	"github.com/quicknotes/notes-api/internal/core/domain"
)

// UserService defines account management use cases. All operations require
// an authenticated caller; mutations only ever apply to the caller's own
// account.
type UserService interface {
	List(ctx context.Context) ([]*domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	// UpdateProfile changes the optional username. It must not re-hash or
	// otherwise modify the stored password.
	UpdateProfile(ctx context.Context, userID, username string) (*domain.User, error)
	// ChangePassword verifies the current password, then hashes and stores
	// the new one. This is the only mutation that re-hashes.
	ChangePassword(ctx context.Context, userID, current, next string) error
	// Delete removes the caller's account along with all of their notes.
	Delete(ctx context.Context, userID string) error
}
