package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// DebugHandler exposes the small diagnostics the mobile client uses while
// troubleshooting authentication.
type DebugHandler struct{}

func NewDebugHandler() *DebugHandler {
	return &DebugHandler{}
}

type whoamiResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Whoami handles GET /api/v1/debug/whoami: echoes the identity the bearer
// token resolved to. Useful for checking a stored token without touching
// any data.
//
// @Summary      Resolve the caller's token to an identity
// @Tags         debug
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  whoamiResponse
// @Failure      401  {object}  errorResponse
// @Router       /debug/whoami [get]
func (h *DebugHandler) Whoami(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, whoamiResponse{ID: user.ID, Email: user.Email})
}

// Ping handles GET /api/v1/debug/ping.
func (h *DebugHandler) Ping(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]bool{"ok": true})
}

// routeManifest is the hand-maintained list of public API routes. Kept
// static on purpose: no reflection over the router at runtime.
var routeManifest = []string{
	"POST /api/v1/auth",
	"POST /api/v1/auth/signin",
	"GET /api/v1/debug/ping",
	"GET /api/v1/debug/routes",
	"GET /api/v1/debug/whoami",
	"GET /api/v1/notes",
	"POST /api/v1/notes",
	"GET /api/v1/notes/:id",
	"PUT /api/v1/notes/:id",
	"DELETE /api/v1/notes/:id",
	"GET /api/v1/users",
	"GET /api/v1/users/:id",
	"PUT /api/v1/users/me",
	"PUT /api/v1/users/me/password",
	"DELETE /api/v1/users/me",
}

// Routes handles GET /api/v1/debug/routes.
func (h *DebugHandler) Routes(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{"routes": routeManifest})
}
