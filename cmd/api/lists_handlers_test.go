package main

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserListRoutes(t *testing.T) {
	app := NewTestApplication(t, nil)
	h := app.routes()
	token := tokenFor(t, app, 1)
	entry := map[string]any{"content_type": "movie", "content_id": 550, "list_type": "watched"}

	require.Equal(t, http.StatusCreated, do(t, h, http.MethodPost, "/api/lists/user-list", token, entry).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, "/api/lists/user-list", token, entry).Code)

	mismatch := do(t, h, http.MethodPost, "/api/lists/user-list", token, map[string]any{
		"content_type": "book", "content_id": "zyTCAlFPjgYC", "list_type": "watched",
	})
	assert.Equal(t, http.StatusBadRequest, mismatch.Code)

	watched := do(t, h, http.MethodGet, "/api/lists/user/1/watched", "", nil)
	require.Equal(t, http.StatusOK, watched.Code)
	assert.Len(t, watched.Body.Data["items"], 1)
	assert.EqualValues(t, 1, watched.Body.Data["total"])

	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodGet, "/api/lists/user/1/favourites", "", nil).Code)

	require.Equal(t, http.StatusOK, do(t, h, http.MethodDelete, "/api/lists/user-list", token, entry).Code)
	watched = do(t, h, http.MethodGet, "/api/lists/user/1/watched", "", nil)
	assert.Empty(t, watched.Body.Data["items"])
}

func TestCustomListRoutes(t *testing.T) {
	app := NewTestApplication(t, nil)
	h := app.routes()
	owner, other := tokenFor(t, app, 1), tokenFor(t, app, 2)

	created := do(t, h, http.MethodPost, "/api/lists/custom", owner, map[string]any{"name": "  Favoriler ", "is_public": false})
	require.Equal(t, http.StatusCreated, created.Code)
	list := created.Body.Data["list"].(map[string]any)
	assert.Equal(t, "Favoriler", list["name"])
	assert.Equal(t, false, list["is_public"])
	info := "/api/lists/custom/" + idOf(t, created.Body.Data, "list")

	assert.Empty(t, do(t, h, http.MethodGet, "/api/lists/custom/1", "", nil).Body.Data["lists"])
	assert.Len(t, do(t, h, http.MethodGet, "/api/lists/custom/1", owner, nil).Body.Data["lists"], 1)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, info+"/info", other, nil).Code)
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, info+"/info", owner, nil).Code)

	book := map[string]any{"content_type": "book", "content_id": "zyTCAlFPjgYC"}
	assert.Equal(t, http.StatusForbidden, do(t, h, http.MethodPost, info+"/add", other, book).Code)
	added := do(t, h, http.MethodPost, info+"/add", owner, book)
	require.Equal(t, http.StatusCreated, added.Code)
	itemID := idOf(t, added.Body.Data, "item")
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, info+"/add", owner, book).Code)

	published := do(t, h, http.MethodPut, info+"/info", owner, map[string]any{"is_public": true})
	require.Equal(t, http.StatusOK, published.Code)
	assert.Equal(t, true, published.Body.Data["list"].(map[string]any)["is_public"])
	assert.Equal(t, "Favoriler", published.Body.Data["list"].(map[string]any)["name"])

	items := do(t, h, http.MethodGet, info+"/items", "", nil)
	require.Equal(t, http.StatusOK, items.Code)
	assert.Len(t, items.Body.Data["items"], 1)

	require.Equal(t, http.StatusOK, do(t, h, http.MethodDelete, info+"/items/"+itemID, owner, nil).Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodDelete, info+"/items/"+itemID, owner, nil).Code)

	assert.Equal(t, http.StatusForbidden, do(t, h, http.MethodDelete, info+"/info", other, nil).Code)
	require.Equal(t, http.StatusOK, do(t, h, http.MethodDelete, info+"/info", owner, nil).Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, info+"/info", owner, nil).Code)
}
