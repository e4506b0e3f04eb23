package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"inkwell/internal/models"
	"inkwell/internal/repository"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGetComments(t *testing.T) {
	app := fiber.New()
	s, deps := newTestServer()
	app.Get("/post/comment", s.GetComments)

	postID := uint(5)
	deps.commentRepo.On("ListByPost", mock.Anything, mock.MatchedBy(func(q repository.ListQuery) bool {
		return q.Filters["post__id"] == "5"
	})).Return(
		[]*models.Comment{{ID: 2, PostID: &postID, Body: "second", TotalReplies: 1}},
		repository.PageMeta{Total: 1, TotalPages: 1, Page: 1, Limit: 3},
		nil,
	)

	req := httptest.NewRequest(http.MethodGet, "/post/comment?post__id=5", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "OK", body["message"])
	data := body["data"].(map[string]any)
	assert.Equal(t, "ok", data["message"])
	results, ok := data["results"].([]any)
	require.True(t, ok)
	require.Len(t, results, 1)
	first := results[0].(map[string]any)
	assert.Equal(t, "second", first["body"])
	assert.Equal(t, float64(1), first["total_replies"])
	assert.Equal(t, float64(5), first["post"])
}

func TestGetComments_WithoutPostScope(t *testing.T) {
	app := fiber.New()
	s, _ := newTestServer()
	app.Get("/post/comment", s.GetComments)

	req := httptest.NewRequest(http.MethodGet, "/post/comment", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	data := body["data"].(map[string]any)
	assert.Equal(t, float64(0), data["total"])
	results, ok := data["results"].([]any)
	require.True(t, ok)
	assert.Empty(t, results)
}

func TestCreateComment(t *testing.T) {
	app := fiber.New()
	s, deps := newTestServer()
	app.Post("/post/comment", withUser(2), s.CreateComment)

	deps.postRepo.On("GetByID", mock.Anything, uint(5)).
		Return(&models.Post{ID: 5}, nil)
	deps.commentRepo.On("Create", mock.Anything, mock.MatchedBy(func(c *models.Comment) bool {
		return c.PostID != nil && *c.PostID == 5 && c.UserID != nil && *c.UserID == 2
	})).Return(nil)

	resp := postJSON(t, app, "/post/comment", map[string]any{
		"post_id": 5,
		"body":    "nice post",
	})

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "Comment created", body["message"])
	deps.commentRepo.AssertExpectations(t)
}

func TestCreateComment_TargetValidation(t *testing.T) {
	tests := []struct {
		name    string
		payload map[string]any
	}{
		{
			name:    "both targets",
			payload: map[string]any{"post_id": 5, "parent_comment_id": 9, "body": "x"},
		},
		{
			name:    "no target",
			payload: map[string]any{"body": "x"},
		},
		{
			name:    "missing body",
			payload: map[string]any{"post_id": 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			s, _ := newTestServer()
			app.Post("/post/comment", withUser(2), s.CreateComment)

			resp := postJSON(t, app, "/post/comment", tt.payload)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestCreateComment_DanglingPost(t *testing.T) {
	app := fiber.New()
	s, deps := newTestServer()
	app.Post("/post/comment", withUser(2), s.CreateComment)

	deps.postRepo.On("GetByID", mock.Anything, uint(404)).
		Return(nil, gormNotFound())

	resp := postJSON(t, app, "/post/comment", map[string]any{
		"post_id": 404,
		"body":    "hello?",
	})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "The post you are commenting on does not exist", body["message"])
}

func TestGetReplies(t *testing.T) {
	app := fiber.New()
	s, deps := newTestServer()
	app.Get("/post/comment/:id/replies", s.GetReplies)

	parentID := uint(9)
	deps.commentRepo.On("GetByID", mock.Anything, uint(9)).
		Return(&models.Comment{ID: 9}, nil)
	deps.commentRepo.On("ListReplies", mock.Anything, uint(9)).
		Return([]*models.Comment{
			{ID: 12, ParentID: &parentID, Body: "newer"},
			{ID: 11, ParentID: &parentID, Body: "older"},
		}, nil)

	req := httptest.NewRequest(http.MethodGet, "/post/comment/9/replies", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	replies, ok := body["data"].([]any)
	require.True(t, ok)
	require.Len(t, replies, 2)
	assert.Equal(t, "newer", replies[0].(map[string]any)["body"])
}

func TestGetReplies_MissingComment(t *testing.T) {
	app := fiber.New()
	s, deps := newTestServer()
	app.Get("/post/comment/:id/replies", s.GetReplies)

	deps.commentRepo.On("GetByID", mock.Anything, uint(404)).
		Return(nil, gormNotFound())

	req := httptest.NewRequest(http.MethodGet, "/post/comment/404/replies", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
