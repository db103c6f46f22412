package handler

import (
	"errors"
	"net/http"

	"notes-storage/internal/domain"
	"notes-storage/internal/usecase"
	"notes-storage/middleware"

	"github.com/labstack/echo/v4"
)

// StorageHandler handles the chat-scoped note endpoints.
type StorageHandler struct {
	notes *usecase.Notes
}

// NewStorageHandler creates a new storage handler.
func NewStorageHandler(notes *usecase.Notes) *StorageHandler {
	return &StorageHandler{notes: notes}
}

// noteSummary is the per-note entry of a listing.
type noteSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// listResponse is the response of the listing endpoint.
type listResponse struct {
	Notes []noteSummary `json:"notes"`
	Tags  []string      `json:"tags"`
}

// noteResponse is the full wire representation of a note.
type noteResponse struct {
	ID      string   `json:"id"`
	ChatID  string   `json:"chatId"`
	Name    string   `json:"name"`
	Content string   `json:"content"`
	Tags    []string `json:"tags,omitempty"`
}

// notePayload is the request body for create and update.
type notePayload struct {
	Name    string   `json:"name"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

// createResponse carries the id of a freshly created note.
type createResponse struct {
	ID string `json:"id"`
}

func toNoteResponse(note *domain.Note) noteResponse {
	return noteResponse{
		ID:      note.ID,
		ChatID:  note.ChatID,
		Name:    note.Name,
		Content: note.Content,
		Tags:    note.Tags,
	}
}

// caller extracts the authenticated identity placed by the auth middleware.
func caller(c echo.Context) (*domain.Identity, error) {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "invalid user")
	}
	return identity, nil
}

// GetAll lists a chat's notes together with the union of their tags.
func (h *StorageHandler) GetAll(c echo.Context) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}

	listing, err := h.notes.GetAll(c.Request().Context(), identity, identity.SessionID, c.Param("chatId"))
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			// The listing endpoint historically answers 401 to non-members.
			return echo.NewHTTPError(http.StatusUnauthorized, "not logged in")
		}
		return mapDomainError(err)
	}

	summaries := make([]noteSummary, 0, len(listing.Notes))
	for _, note := range listing.Notes {
		summaries = append(summaries, noteSummary{ID: note.ID, Name: note.Name})
	}
	return c.JSON(http.StatusOK, listResponse{Notes: summaries, Tags: listing.Tags})
}

// CreateNew creates a note and returns its generated id.
func (h *StorageHandler) CreateNew(c echo.Context) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}

	var payload notePayload
	if err := c.Bind(&payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}

	id, err := h.notes.CreateNew(c.Request().Context(), identity, identity.SessionID, c.Param("chatId"), domain.NoteDraft{
		Name:    payload.Name,
		Content: payload.Content,
		Tags:    payload.Tags,
	})
	if err != nil {
		return mapDomainError(err)
	}
	return c.JSON(http.StatusOK, createResponse{ID: id})
}

// GetOne returns a single note.
func (h *StorageHandler) GetOne(c echo.Context) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}

	note, err := h.notes.FindOne(c.Request().Context(), identity, identity.SessionID, c.Param("chatId"), c.Param("id"))
	if err != nil {
		return mapDomainError(err)
	}
	return c.JSON(http.StatusOK, toNoteResponse(note))
}

// ChangeOne applies a partial update and returns the merged note.
func (h *StorageHandler) ChangeOne(c echo.Context) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}

	var payload notePayload
	if err := c.Bind(&payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}

	merged, err := h.notes.ChangeOne(c.Request().Context(), identity, identity.SessionID, c.Param("chatId"), c.Param("id"), domain.NotePatch{
		Name:    payload.Name,
		Content: payload.Content,
		Tags:    payload.Tags,
	})
	if err != nil {
		return mapDomainError(err)
	}
	return c.JSON(http.StatusOK, toNoteResponse(merged))
}

// DeleteOne removes a note. Any failure, including a denied membership
// check, surfaces as a plain 500; deletion keeps the legacy mapping.
func (h *StorageHandler) DeleteOne(c echo.Context) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}

	if err := h.notes.DeleteOne(c.Request().Context(), identity, identity.SessionID, c.Param("chatId"), c.Param("id")); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "deletion failed")
	}
	return c.NoContent(http.StatusOK)
}
