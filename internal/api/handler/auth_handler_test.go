package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/quicknotes/notes-api/internal/core/domain"
)

type stubAuthService struct {
	registerUser *domain.User
	registerErr  error
	loginToken   string
	loginUser    *domain.User
	loginErr     error
}

func (s *stubAuthService) Register(context.Context, string, string) (*domain.User, error) {
	return s.registerUser, s.registerErr
}

func (s *stubAuthService) Login(context.Context, string, string) (string, *domain.User, error) {
	return s.loginToken, s.loginUser, s.loginErr
}

func (s *stubAuthService) IssueToken(*domain.User) (string, error) {
	return s.loginToken, nil
}

func (s *stubAuthService) Authenticate(context.Context, string) (*domain.User, error) {
	return s.loginUser, nil
}

func newJSONContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	e.Validator = NewValidator()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

func TestAuthHandler_Signup_Success(t *testing.T) {
	svc := &stubAuthService{
		registerUser: &domain.User{ID: "abc123", Email: "new@example.com"},
		loginToken:   "issued-token",
	}
	h := NewAuthHandler(svc)

	c, rec := newJSONContext(t, http.MethodPost, "/api/v1/auth", `{"email":"new@example.com","password":"pass123"}`)
	if err := h.Signup(c); err != nil {
		t.Fatalf("signup returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp signupResponse
	decodeBody(t, rec, &resp)
	if resp.Message != "User created successfully." {
		t.Fatalf("unexpected message: %q", resp.Message)
	}
	if resp.UserID != "abc123" {
		t.Fatalf("unexpected user_id: %q", resp.UserID)
	}
	if resp.Token != "issued-token" {
		t.Fatalf("unexpected token: %q", resp.Token)
	}
}

func TestAuthHandler_Signup_MissingFields(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	for _, body := range []string{`{}`, `{"email":"a@b.com"}`, `{"password":"pass"}`} {
		c, rec := newJSONContext(t, http.MethodPost, "/api/v1/auth", body)
		if err := h.Signup(c); err != nil {
			t.Fatalf("signup returned error: %v", err)
		}
		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("body %s: expected 422, got %d", body, rec.Code)
		}
	}
}

func TestAuthHandler_Signup_DuplicateEmail(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{registerErr: domain.ErrEmailTaken})

	c, rec := newJSONContext(t, http.MethodPost, "/api/v1/auth", `{"email":"dup@example.com","password":"pass123"}`)
	if err := h.Signup(c); err != nil {
		t.Fatalf("signup returned error: %v", err)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}

	var resp errorResponse
	decodeBody(t, rec, &resp)
	if resp.Error != domain.ErrEmailTaken.Error() {
		t.Fatalf("unexpected error body: %q", resp.Error)
	}
}

func TestAuthHandler_Signup_InvalidEmail(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{registerErr: domain.ErrInvalidEmail})

	c, rec := newJSONContext(t, http.MethodPost, "/api/v1/auth", `{"email":"not-an-email","password":"pass123"}`)
	if err := h.Signup(c); err != nil {
		t.Fatalf("signup returned error: %v", err)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}

func TestAuthHandler_Signin_Success(t *testing.T) {
	svc := &stubAuthService{
		loginToken: "signed-token",
		loginUser:  &domain.User{ID: "abc123", Email: "known@example.com"},
	}
	h := NewAuthHandler(svc)

	c, rec := newJSONContext(t, http.MethodPost, "/api/v1/auth/signin", `{"email":"known@example.com","password":"pass123"}`)
	if err := h.Signin(c); err != nil {
		t.Fatalf("signin returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp signinResponse
	decodeBody(t, rec, &resp)
	if resp.Token != "signed-token" {
		t.Fatalf("unexpected token: %q", resp.Token)
	}
	if resp.UserID != "abc123" {
		t.Fatalf("unexpected user_id: %q", resp.UserID)
	}
}

func TestAuthHandler_Signin_BadCredentials(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{loginErr: domain.ErrInvalidCredentials})

	c, rec := newJSONContext(t, http.MethodPost, "/api/v1/auth/signin", `{"email":"known@example.com","password":"wrong"}`)
	if err := h.Signin(c); err != nil {
		t.Fatalf("signin returned error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	var resp errorResponse
	decodeBody(t, rec, &resp)
	if resp.Error == "" {
		t.Fatalf("expected error body")
	}
}

func TestAuthHandler_Signup_MalformedJSON(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, rec := newJSONContext(t, http.MethodPost, "/api/v1/auth", `{"email":`)
	if err := h.Signup(c); err != nil {
		t.Fatalf("signup returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_Root(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, rec := newJSONContext(t, http.MethodGet, "/api/v1/auth", "")
	if err := h.Root(c); err != nil {
		t.Fatalf("root returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "sign up") {
		t.Fatalf("expected usage hint, got %q", rec.Body.String())
	}
}
