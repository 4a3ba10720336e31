package ports

import "context"

// PasswordHasher is a one-way password transform. Hash generates a fresh
// random salt on every call; Compare recomputes with the embedded salt and
// cost and checks the result in constant time. Both calls may block on a
// bounded worker pool, so they take a context.
type PasswordHasher interface {
	Hash(ctx context.Context, plaintext string) (string, error)
	// Compare returns nil on a match and domain.ErrInvalidCredentials on a
	// mismatch.
	Compare(ctx context.Context, hashed, plaintext string) error
}
