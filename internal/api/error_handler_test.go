package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/quicknotes/notes-api/internal/core/domain"
)

func invokeErrorHandler(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/notes", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)
	return rec
}

func TestHTTPErrorHandler_DomainErrors(t *testing.T) {
	cases := []struct {
		err      error
		wantCode int
		wantMsg  string
	}{
		{domain.ErrMissingCredentials, http.StatusUnprocessableEntity, domain.ErrMissingCredentials.Error()},
		{domain.ErrInvalidEmail, http.StatusUnprocessableEntity, domain.ErrInvalidEmail.Error()},
		{domain.ErrEmailTaken, http.StatusUnprocessableEntity, domain.ErrEmailTaken.Error()},
		{domain.ErrEmptyContent, http.StatusBadRequest, domain.ErrEmptyContent.Error()},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid email or password"},
		{domain.ErrInvalidToken, http.StatusUnauthorized, "invalid token"},
		{domain.ErrNoteNotFound, http.StatusNotFound, "note not found"},
		{domain.ErrUserNotFound, http.StatusNotFound, "user not found"},
	}

	for _, tc := range cases {
		rec := invokeErrorHandler(t, tc.err)
		if rec.Code != tc.wantCode {
			t.Errorf("%v: expected %d, got %d", tc.err, tc.wantCode, rec.Code)
		}

		var resp errorResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("%v: decode body: %v", tc.err, err)
		}
		if resp.Error != tc.wantMsg {
			t.Errorf("%v: expected message %q, got %q", tc.err, tc.wantMsg, resp.Error)
		}
	}
}

func TestHTTPErrorHandler_WrappedDomainError(t *testing.T) {
	wrapped := errors.Join(errors.New("mongo: cursor closed"), domain.ErrNoteNotFound)
	rec := invokeErrorHandler(t, wrapped)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for wrapped domain error, got %d", rec.Code)
	}
}

func TestHTTPErrorHandler_EchoHTTPError(t *testing.T) {
	rec := invokeErrorHandler(t, echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header"))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if resp.Error != "missing authorization header" {
		t.Fatalf("unexpected message: %q", resp.Error)
	}
}

func TestHTTPErrorHandler_UnknownError(t *testing.T) {
	rec := invokeErrorHandler(t, errors.New("connection reset by peer"))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	// The real cause is logged, never leaked to the client.
	if resp.Error != "internal server error" {
		t.Fatalf("internal details leaked: %q", resp.Error)
	}
}
