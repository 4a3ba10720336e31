package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/quicknotes/notes-api/internal/api/metrics"
	"github.com/quicknotes/notes-api/internal/core/domain"
	"github.com/quicknotes/notes-api/internal/core/ports"
)

// NoteHandler handles HTTP requests for note operations. Every route is
// behind the Auth middleware; the owner's identity always comes from the
// verified token, never from the payload.
type NoteHandler struct {
	service ports.NoteService
}

func NewNoteHandler(service ports.NoteService) *NoteHandler {
	return &NoteHandler{service: service}
}

func toNoteResponse(n *domain.Note) noteResponse {
	return noteResponse{
		ID:        n.ID,
		UserID:    n.UserID,
		Content:   n.Content,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

// Create handles POST /api/v1/notes.
//
// @Summary      Create a note
// @Tags         notes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      noteRequest  true  "Note content"
// @Success      201   {object}  noteResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /notes [post]
func (h *NoteHandler) Create(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req noteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}

	note, err := h.service.Create(c.Request().Context(), user.ID, req.Content)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyContent) {
			metrics.NoteOperationsTotal.WithLabelValues("create", "invalid").Inc()
			return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		}
		metrics.NoteOperationsTotal.WithLabelValues("create", "error").Inc()
		return err
	}

	metrics.NoteOperationsTotal.WithLabelValues("create", "success").Inc()
	return c.JSON(http.StatusCreated, toNoteResponse(note))
}

// List handles GET /api/v1/notes.
//
// @Summary      List the caller's notes, newest first
// @Tags         notes
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   noteResponse
// @Failure      401  {object}  errorResponse
// @Router       /notes [get]
func (h *NoteHandler) List(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	notes, err := h.service.List(c.Request().Context(), user.ID)
	if err != nil {
		metrics.NoteOperationsTotal.WithLabelValues("list", "error").Inc()
		return err
	}

	resp := make([]noteResponse, 0, len(notes))
	for _, n := range notes {
		resp = append(resp, toNoteResponse(n))
	}

	metrics.NoteOperationsTotal.WithLabelValues("list", "success").Inc()
	return c.JSON(http.StatusOK, resp)
}

// Get handles GET /api/v1/notes/:id.
//
// @Summary      Get one of the caller's notes
// @Tags         notes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Note ID"
// @Success      200  {object}  noteResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /notes/{id} [get]
func (h *NoteHandler) Get(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	note, err := h.service.Get(c.Request().Context(), user.ID, c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNoteNotFound) {
			metrics.NoteOperationsTotal.WithLabelValues("get", "not_found").Inc()
			return c.JSON(http.StatusNotFound, errorResponse{Error: err.Error()})
		}
		metrics.NoteOperationsTotal.WithLabelValues("get", "error").Inc()
		return err
	}

	metrics.NoteOperationsTotal.WithLabelValues("get", "success").Inc()
	return c.JSON(http.StatusOK, toNoteResponse(note))
}

// Update handles PUT /api/v1/notes/:id.
//
// @Summary      Update one of the caller's notes
// @Tags         notes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string       true  "Note ID"
// @Param        body  body      noteRequest  true  "New content"
// @Success      200   {object}  noteResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /notes/{id} [put]
func (h *NoteHandler) Update(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req noteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}

	note, err := h.service.Update(c.Request().Context(), user.ID, c.Param("id"), req.Content)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmptyContent):
			metrics.NoteOperationsTotal.WithLabelValues("update", "invalid").Inc()
			return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		case errors.Is(err, domain.ErrNoteNotFound):
			metrics.NoteOperationsTotal.WithLabelValues("update", "not_found").Inc()
			return c.JSON(http.StatusNotFound, errorResponse{Error: err.Error()})
		}
		metrics.NoteOperationsTotal.WithLabelValues("update", "error").Inc()
		return err
	}

	metrics.NoteOperationsTotal.WithLabelValues("update", "success").Inc()
	return c.JSON(http.StatusOK, toNoteResponse(note))
}

// Delete handles DELETE /api/v1/notes/:id.
//
// @Summary      Delete one of the caller's notes
// @Tags         notes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Note ID"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /notes/{id} [delete]
func (h *NoteHandler) Delete(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), user.ID, c.Param("id")); err != nil {
		if errors.Is(err, domain.ErrNoteNotFound) {
			metrics.NoteOperationsTotal.WithLabelValues("delete", "not_found").Inc()
			return c.JSON(http.StatusNotFound, errorResponse{Error: err.Error()})
		}
		metrics.NoteOperationsTotal.WithLabelValues("delete", "error").Inc()
		return err
	}

	metrics.NoteOperationsTotal.WithLabelValues("delete", "success").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "Note deleted successfully"})
}
