package domain

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

var ErrUserNotFound = errors.New("user not found")
var ErrEmailTaken = errors.New("email is already in use")
var ErrInvalidEmail = errors.New("invalid email address")
var ErrMissingCredentials = errors.New("email and password are required")
var ErrInvalidCredentials = errors.New("invalid email or password")
var ErrInvalidToken = errors.New("invalid or expired token")

var emailPattern = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)

// User models an account holder. PasswordHash is a bcrypt digest with the
// salt and cost factor embedded; the plaintext password is never persisted.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username,omitempty"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// NormalizeEmail lowercases and trims an address so email uniqueness is
// case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidEmail reports whether the (already normalized) address is well formed.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}
