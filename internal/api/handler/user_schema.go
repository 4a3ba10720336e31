package handler

import "time"

// userResponse is the sanitized public view of an account. The password
// hash never leaves the service.
type userResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type updateProfileRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=6"`
}
