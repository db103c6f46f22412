package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"notes-storage/internal/domain"
	"notes-storage/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubMembers implements domain.MembershipChecker.
type stubMembers struct {
	member bool
	err    error
}

func (s *stubMembers) HasMember(_ context.Context, _, _, _ string) (bool, error) {
	return s.member, s.err
}

// stubStore implements domain.NoteStore.
type stubStore struct {
	notes   []domain.Note
	found   *domain.Note
	listErr error
	findErr error
	insErr  error
	delErr  error
}

func (s *stubStore) ListByChat(_ context.Context, _ string) ([]domain.Note, error) {
	return s.notes, s.listErr
}

func (s *stubStore) Insert(_ context.Context, _ domain.Note) error { return s.insErr }

func (s *stubStore) Find(_ context.Context, _, _ string) (*domain.Note, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	return s.found, nil
}

func (s *stubStore) Update(_ context.Context, _, _ string, _ domain.NoteChanges) error { return nil }

func (s *stubStore) Delete(_ context.Context, _, _ string) error { return s.delErr }

// newStorageServer builds an echo app with the storage routes and a test
// middleware injecting an already-authenticated identity.
func newStorageServer(members domain.MembershipChecker, store domain.NoteStore, identity *domain.Identity) *echo.Echo {
	notes := usecase.NewNotes(members, store, slog.Default())
	h := NewStorageHandler(notes)

	inject := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if identity != nil {
				c.Set("identity", identity)
			}
			return next(c)
		}
	}

	e := echo.New()
	g := e.Group("/api/storage", inject)
	g.GET("/:chatId", h.GetAll)
	g.POST("/:chatId", h.CreateNew)
	g.GET("/:chatId/:id", h.GetOne)
	g.PUT("/:chatId/:id", h.ChangeOne)
	g.DELETE("/:chatId/:id", h.DeleteOne)
	return e
}

var bob = &domain.Identity{UserID: "user-bob", SessionID: "sess-bob"}

func TestStorage_GetAll(t *testing.T) {
	store := &stubStore{notes: []domain.Note{
		{ID: "n1", ChatID: "chat-1", Name: "first", Content: "body", Tags: []string{"a", "b"}},
		{ID: "n2", ChatID: "chat-1", Name: "second", Tags: []string{"b", "c"}},
	}}
	e := newStorageServer(&stubMembers{member: true}, store, bob)

	req := httptest.NewRequest(http.MethodGet, "/api/storage/chat-1", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Notes []map[string]string `json:"notes"`
		Tags  []string            `json:"tags"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Notes, 2)
	assert.Equal(t, "n1", body.Notes[0]["id"])
	assert.Equal(t, "first", body.Notes[0]["name"])
	assert.NotContains(t, body.Notes[0], "content", "listing must not leak note bodies")
	assert.ElementsMatch(t, []string{"a", "b", "c"}, body.Tags)
}

func TestStorage_GetAll_NonMemberGets401(t *testing.T) {
	e := newStorageServer(&stubMembers{member: false}, &stubStore{}, bob)

	req := httptest.NewRequest(http.MethodGet, "/api/storage/chat-1", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestStorage_GetAll_MissingIdentity(t *testing.T) {
	e := newStorageServer(&stubMembers{member: true}, &stubStore{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/storage/chat-1", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestStorage_CreateNew(t *testing.T) {
	e := newStorageServer(&stubMembers{member: true}, &stubStore{}, bob)

	req := httptest.NewRequest(http.MethodPost, "/api/storage/chat-1",
		strings.NewReader(`{"name":"groceries","content":"milk","tags":["todo"]}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body createResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body.ID)
}

func TestStorage_CreateNew_MalformedBody(t *testing.T) {
	e := newStorageServer(&stubMembers{member: true}, &stubStore{}, bob)

	req := httptest.NewRequest(http.MethodPost, "/api/storage/chat-1", strings.NewReader(`{not json`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStorage_CreateNew_NonMemberGets403(t *testing.T) {
	e := newStorageServer(&stubMembers{member: false}, &stubStore{}, bob)

	req := httptest.NewRequest(http.MethodPost, "/api/storage/chat-1", strings.NewReader(`{"name":"n"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestStorage_GetOne(t *testing.T) {
	store := &stubStore{found: &domain.Note{
		ID: "n1", ChatID: "chat-1", Name: "first", Content: "body", Tags: []string{"a"},
	}}
	e := newStorageServer(&stubMembers{member: true}, store, bob)

	req := httptest.NewRequest(http.MethodGet, "/api/storage/chat-1/n1", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body noteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "n1", body.ID)
	assert.Equal(t, "chat-1", body.ChatID)
	assert.Equal(t, "body", body.Content)
}

func TestStorage_GetOne_NotFound(t *testing.T) {
	store := &stubStore{findErr: domain.ErrNoteNotFound}
	e := newStorageServer(&stubMembers{member: true}, store, bob)

	req := httptest.NewRequest(http.MethodGet, "/api/storage/chat-1/missing", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStorage_ChangeOne_ReturnsMergedNote(t *testing.T) {
	store := &stubStore{found: &domain.Note{
		ID: "n1", ChatID: "chat-1", Name: "old", Content: "old content",
	}}
	e := newStorageServer(&stubMembers{member: true}, store, bob)

	req := httptest.NewRequest(http.MethodPut, "/api/storage/chat-1/n1",
		strings.NewReader(`{"name":"","content":"new content"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body noteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "old", body.Name, "empty name keeps the stored value")
	assert.Equal(t, "new content", body.Content)
}

func TestStorage_DeleteOne(t *testing.T) {
	e := newStorageServer(&stubMembers{member: true}, &stubStore{}, bob)

	req := httptest.NewRequest(http.MethodDelete, "/api/storage/chat-1/n1", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestStorage_DeleteOne_FailureIs500(t *testing.T) {
	store := &stubStore{delErr: domain.ErrStoreUnavailable}
	e := newStorageServer(&stubMembers{member: true}, store, bob)

	req := httptest.NewRequest(http.MethodDelete, "/api/storage/chat-1/n1", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
