package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/quicknotes/notes-api/internal/api/metrics"
	"github.com/quicknotes/notes-api/internal/core/domain"
	"github.com/quicknotes/notes-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Signup creates a new account and returns a bearer token for it.
//
// @Summary      Sign up
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Email and password"
// @Success      201   {object}  signupResponse
// @Failure      422   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /auth [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		metrics.SignupsTotal.WithLabelValues("invalid").Inc()
		return c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: domain.ErrMissingCredentials.Error()})
	}

	user, err := h.authService.Register(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMissingCredentials), errors.Is(err, domain.ErrInvalidEmail):
			metrics.SignupsTotal.WithLabelValues("invalid").Inc()
			return c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
		case errors.Is(err, domain.ErrEmailTaken):
			metrics.SignupsTotal.WithLabelValues("duplicate").Inc()
			return c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
		}
		metrics.SignupsTotal.WithLabelValues("error").Inc()
		return err
	}

	token, err := h.authService.IssueToken(user)
	if err != nil {
		metrics.SignupsTotal.WithLabelValues("error").Inc()
		return err
	}

	metrics.SignupsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusCreated, signupResponse{
		Message: "User created successfully.",
		UserID:  user.ID,
		Token:   token,
	})
}

// Signin authenticates an existing account and returns a bearer token.
//
// @Summary      Sign in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signinRequest  true  "Credentials"
// @Success      200   {object}  signinResponse
// @Failure      401   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /auth/signin [post]
func (h *AuthHandler) Signin(c echo.Context) error {
	var req signinRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.SigninsTotal.WithLabelValues("rejected").Inc()
			return c.JSON(http.StatusUnauthorized, errorResponse{Error: err.Error()})
		}
		metrics.SigninsTotal.WithLabelValues("error").Inc()
		return err
	}

	metrics.SigninsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, signinResponse{Token: token, UserID: user.ID})
}

// Root answers GET on the signup path with a usage hint, matching the
// original API.
func (h *AuthHandler) Root(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"message": "Auth endpoint is up. Use POST to /api/v1/auth to sign up.",
	})
}
