package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type signupRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type signinRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// signupResponse mirrors the original signup contract: a human-readable
// message plus the new user's ID and a ready-to-use bearer token.
type signupResponse struct {
	Message string `json:"message"`
	UserID  string `json:"user_id"`
	Token   string `json:"token"`
}

type signinResponse struct {
	Token  string `json:"token"`
	UserID string `json:"user_id"`
}
