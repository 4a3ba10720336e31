package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/quicknotes/notes-api/internal/api/middleware"
	"github.com/quicknotes/notes-api/internal/core/domain"
)

// currentUser extracts the user resolved by the Auth middleware. A missing
// entry means the middleware did not run on this route; treat the request
// as unauthenticated rather than panicking.
func currentUser(c echo.Context) (*domain.User, error) {
	user, ok := c.Get(middleware.ContextUserKey).(*domain.User)
	if !ok || user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}
	return user, nil
}
