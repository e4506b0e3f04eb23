package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The comment routes share the /post prefix with the generic /post/:id
// routes; registration order is what keeps "comment" from being parsed
// as a post ID.
func TestRouteOrdering_CommentBeforePostID(t *testing.T) {
	app := fiber.New()
	s, deps := newTestServer()
	s.SetupRoutes(app)

	// Unscoped comment listing answers without touching any repository;
	// if the route resolved to GetPost instead, parsing "comment" as an
	// ID would return an invalid-ID failure.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/post/comment", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	_, hasResults := data["results"]
	assert.True(t, hasResults, "expected an empty comment page, got %v", body)

	deps.commentRepo.AssertNotCalled(t, "ListByPost")
	deps.postRepo.AssertNotCalled(t, "GetByID")
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	app := fiber.New()
	s, _ := newTestServer()
	s.SetupRoutes(app)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/v1/post"},
		{http.MethodPut, "/api/v1/post/1"},
		{http.MethodDelete, "/api/v1/post/1"},
		{http.MethodPost, "/api/v1/post/comment"},
	}

	for _, p := range paths {
		req := httptest.NewRequest(p.method, p.path, nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode,
			"%s %s should demand a bearer token", p.method, p.path)
	}
}

func TestLivenessCheck(t *testing.T) {
	app := fiber.New()
	s, _ := newTestServer()
	app.Get("/health/live", s.LivenessCheck)

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
