package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/quicknotes/notes-api/internal/core/domain"
)

type stubAuthService struct {
	user  *domain.User
	token string
}

func (s *stubAuthService) Register(context.Context, string, string) (*domain.User, error) {
	return nil, nil
}

func (s *stubAuthService) Login(context.Context, string, string) (string, *domain.User, error) {
	return "", nil, nil
}

func (s *stubAuthService) IssueToken(*domain.User) (string, error) {
	return s.token, nil
}

func (s *stubAuthService) Authenticate(_ context.Context, token string) (*domain.User, error) {
	if token == s.token {
		return s.user, nil
	}
	return nil, domain.ErrInvalidToken
}

func callAuth(t *testing.T, header string) (echo.Context, error) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/notes", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	auth := &stubAuthService{
		user:  &domain.User{ID: "user-1", Email: "a@example.com"},
		token: "good-token",
	}

	called := false
	handler := Auth(auth)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	err := handler(c)
	if err == nil && !called {
		t.Fatalf("middleware passed without invoking the handler")
	}
	if err != nil && called {
		t.Fatalf("handler invoked despite middleware failure")
	}
	return c, err
}

func TestAuth_ValidToken(t *testing.T) {
	c, err := callAuth(t, "Bearer good-token")
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}

	user, ok := c.Get(ContextUserKey).(*domain.User)
	if !ok || user == nil {
		t.Fatalf("expected user in context")
	}
	if user.ID != "user-1" {
		t.Fatalf("wrong user resolved: %s", user.ID)
	}
}

func TestAuth_CaseInsensitiveScheme(t *testing.T) {
	if _, err := callAuth(t, "bearer good-token"); err != nil {
		t.Fatalf("lowercase scheme rejected: %v", err)
	}
}

func TestAuth_MissingHeader(t *testing.T) {
	_, err := callAuth(t, "")
	assertUnauthorized(t, err)
}

func TestAuth_MalformedHeader(t *testing.T) {
	for _, header := range []string{"good-token", "Basic Zm9vOmJhcg==", "Bearer"} {
		_, err := callAuth(t, header)
		assertUnauthorized(t, err)
	}
}

func TestAuth_InvalidToken(t *testing.T) {
	_, err := callAuth(t, "Bearer forged-token")
	assertUnauthorized(t, err)
}

func assertUnauthorized(t *testing.T, err error) {
	t.Helper()
	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %v", err)
	}
	if httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", httpErr.Code)
	}
}
