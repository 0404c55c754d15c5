package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediarepo/admin-api/domain"
	"github.com/mediarepo/admin-api/dto"
)

func seedMedia(h *testHarness, id string) {
	now := time.Now().UTC()
	h.medias.items = append(h.medias.items, &domain.Media{
		ID:        id,
		Label:     "Item",
		URL:       "https://cdn.example.com/item.jpg",
		CreatedAt: now,
		UpdatedAt: now,
	})
}

func postComment(t *testing.T, h *testHarness, mediaID, userID, body string) dto.CommentResponse {
	t.Helper()
	req := jsonRequest(http.MethodPost, "/api/medias/"+mediaID+"/comments", `{"body":"`+body+`"}`)
	req.Header.Set("Authorization", h.bearerFor(userID))
	rec := h.do(req)
	require.Equal(t, http.StatusOK, rec.Code)

	var comment dto.CommentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &comment))
	return comment
}

func TestCreateCommentHandler(t *testing.T) {
	h := newTestHarness([]byte("comment-secret"))
	seedMedia(h, "media-1")

	comment := postComment(t, h, "media-1", "user-1", "great shot")

	assert.NotEmpty(t, comment.ID)
	assert.Equal(t, "media-1", comment.MediaID)
	assert.Equal(t, "user-1", comment.UserID)
	assert.Equal(t, "great shot", comment.Body)
}

func TestCreateCommentHandler_EmptyBody(t *testing.T) {
	h := newTestHarness([]byte("comment-secret"))
	seedMedia(h, "media-1")

	req := jsonRequest(http.MethodPost, "/api/medias/media-1/comments", `{"body":"   "}`)
	req.Header.Set("Authorization", h.bearerFor("user-1"))
	rec := h.do(req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Comment body is required")
}

func TestCreateCommentHandler_UnknownMedia(t *testing.T) {
	h := newTestHarness([]byte("comment-secret"))

	req := jsonRequest(http.MethodPost, "/api/medias/missing/comments", `{"body":"hello"}`)
	req.Header.Set("Authorization", h.bearerFor("user-1"))
	rec := h.do(req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListCommentsHandler_NewestFirst(t *testing.T) {
	h := newTestHarness([]byte("comment-secret"))
	seedMedia(h, "media-1")

	postComment(t, h, "media-1", "user-1", "first")
	postComment(t, h, "media-1", "user-2", "second")

	req := httptest.NewRequest(http.MethodGet, "/api/medias/media-1/comments", nil)
	req.Header.Set("Authorization", h.bearerFor("user-3"))
	rec := h.do(req)

	require.Equal(t, http.StatusOK, rec.Code)

	var comments []dto.CommentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &comments))
	require.Len(t, comments, 2)
	assert.Equal(t, "second", comments[0].Body)
	assert.Equal(t, "first", comments[1].Body)
}

func TestDeleteCommentHandler_OwnerOnly(t *testing.T) {
	h := newTestHarness([]byte("comment-secret"))
	seedMedia(h, "media-1")
	h.sessions.users["owner-session"] = "user-1"
	h.sessions.users["other-session"] = "user-2"

	comment := postComment(t, h, "media-1", "user-1", "mine")

	req := httptest.NewRequest(http.MethodDelete, "/api/medias/media-1/comments/"+comment.ID, nil)
	req.AddCookie(&http.Cookie{Name: testSessionCookie, Value: "other-session"})
	assert.Equal(t, http.StatusForbidden, h.do(req).Code)

	req = httptest.NewRequest(http.MethodDelete, "/api/medias/media-1/comments/"+comment.ID, nil)
	req.AddCookie(&http.Cookie{Name: testSessionCookie, Value: "owner-session"})
	rec := h.do(req)
	require.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodDelete, "/api/medias/media-1/comments/"+comment.ID, nil)
	req.AddCookie(&http.Cookie{Name: testSessionCookie, Value: "owner-session"})
	assert.Equal(t, http.StatusNotFound, h.do(req).Code)
}

func TestDeleteCommentHandler_MediaMismatch(t *testing.T) {
	h := newTestHarness([]byte("comment-secret"))
	seedMedia(h, "media-1")
	seedMedia(h, "media-2")
	h.sessions.users["owner-session"] = "user-1"

	comment := postComment(t, h, "media-1", "user-1", "mine")

	req := httptest.NewRequest(http.MethodDelete, "/api/medias/media-2/comments/"+comment.ID, nil)
	req.AddCookie(&http.Cookie{Name: testSessionCookie, Value: "owner-session"})
	assert.Equal(t, http.StatusNotFound, h.do(req).Code)
}
