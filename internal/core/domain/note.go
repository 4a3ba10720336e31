package domain

import (
	"errors"
	"time"
)

// ErrNoteNotFound covers both a genuinely absent note and a note owned by
// another user. The two cases are deliberately indistinguishable so that a
// caller cannot probe for the existence of other users' notes.
var ErrNoteNotFound = errors.New("note not found")
var ErrEmptyContent = errors.New("content is required")

// Note is a piece of text owned by exactly one user. Ownership is not
// transferable; every read or mutation must be filtered by both the note
// ID and the owner's user ID.
type Note struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
