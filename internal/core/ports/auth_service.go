package ports

import (
	"context"

	"github.com/quicknotes/notes-api/internal/core/domain"
)

// AuthService defines signup, signin, and bearer-token operations.
type AuthService interface {
	// Register creates a new account. The plaintext password is hashed
	// before it is handed to the repository.
	Register(ctx context.Context, email, password string) (*domain.User, error)
	// Login verifies credentials and returns a signed bearer token. A wrong
	// password and an unknown email both fail with
	// domain.ErrInvalidCredentials.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// IssueToken signs a bearer token bound to the user's identity.
	IssueToken(user *domain.User) (string, error)
	// Authenticate validates a bearer token and resolves it back to the
	// user it was issued for. Malformed tokens, bad signatures, and tokens
	// whose subject no longer exists all fail with domain.ErrInvalidToken.
	Authenticate(ctx context.Context, token string) (*domain.User, error)
}
