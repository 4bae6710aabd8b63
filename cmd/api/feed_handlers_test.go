package main

import (
	"net/http"
	"testing"

	"kutuphanem/proj/internal/services/feed"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedRoutes(t *testing.T) {
	app := NewTestApplication(t, nil)
	h := app.routes()
	reader, followed, stranger := tokenFor(t, app, 1), tokenFor(t, app, 2), tokenFor(t, app, 3)

	require.Equal(t, http.StatusCreated, do(t, h, http.MethodPost, "/api/follows/2", reader, nil).Code)
	for _, token := range []string{followed, stranger} {
		res := do(t, h, http.MethodPost, "/api/reviews", token, `{"content_type": "movie", "content_id": 603, "review_text": "Seen it"}`)
		require.Equal(t, http.StatusCreated, res.Code)
	}

	page := do(t, h, http.MethodGet, "/api/feed", reader, nil)
	require.Equal(t, http.StatusOK, page.Code)
	activities, ok := page.Body.Data["activities"].([]any)
	require.True(t, ok)
	require.Len(t, activities, 1)
	first := activities[0].(map[string]any)
	assert.EqualValues(t, 2, first["user_id"])
	assert.Equal(t, "review", first["activity_type"])
	assert.Equal(t, false, page.Body.Data["hasMore"])
	assert.EqualValues(t, feed.DefaultFeedLimit, page.Body.Data["limit"])

	own := do(t, h, http.MethodGet, "/api/user-activities/3?limit=1", "", nil)
	require.Equal(t, http.StatusOK, own.Code)
	require.Len(t, own.Body.Data["activities"], 1)
	assert.EqualValues(t, 3, own.Body.Data["activities"].([]any)[0].(map[string]any)["user_id"])

	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodGet, "/api/feed?page=1000000&limit=100", reader, nil).Code)
	assert.Equal(t, http.StatusUnauthorized, do(t, h, http.MethodGet, "/api/feed", "", nil).Code)
}

func TestSearchRoutes(t *testing.T) {
	app := NewTestApplication(t, nil)
	h := app.routes()

	found := do(t, h, http.MethodGet, "/api/search?query=matrix", "", nil)
	require.Equal(t, http.StatusOK, found.Code)
	movies, ok := found.Body.Data["movies"].([]any)
	require.True(t, ok)
	require.Len(t, movies, 1)
	assert.Equal(t, "The Matrix", movies[0].(map[string]any)["title"])
	// the books provider is down; search still answers
	assert.Empty(t, found.Body.Data["books"])

	local := do(t, h, http.MethodGet, "/api/search?type=movie&genre=Drama", "", nil)
	require.Equal(t, http.StatusOK, local.Code)
	assert.Len(t, local.Body.Data["movies"], 1)
	assert.Empty(t, local.Body.Data["books"])

	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodGet, "/api/search", "", nil).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodGet, "/api/search?query=x&type=music", "", nil).Code)

	popular := do(t, h, http.MethodGet, "/api/search/popular", "", nil)
	require.Equal(t, http.StatusOK, popular.Code)
	results := popular.Body.Data["results"].([]any)
	require.Len(t, results, 2)
	assert.Equal(t, "Dune", results[0].(map[string]any)["title"])

	top := do(t, h, http.MethodGet, "/api/search/top-rated?type=movie", "", nil)
	require.Equal(t, http.StatusOK, top.Code)
	require.Len(t, top.Body.Data["results"], 1)
	assert.Equal(t, "The Matrix", top.Body.Data["results"].([]any)[0].(map[string]any)["title"])
}
