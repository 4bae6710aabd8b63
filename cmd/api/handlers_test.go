package main

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthcheck(t *testing.T) {
	app := NewTestApplication(t, nil)
	h := app.routes()
	recorder := do(t, h, http.MethodGet, "/api/healthcheck", "", nil)
	assert.Equal(t, http.StatusOK, recorder.Code)

	notFound := do(t, h, http.MethodGet, "/api/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, notFound.Code)
	assert.False(t, notFound.Body.Success)

	notAllowed := do(t, h, http.MethodPatch, "/api/healthcheck", "", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, notAllowed.Code)
}

func TestRegisterLoginMe(t *testing.T) {
	app := NewTestApplication(t, nil)
	h := app.routes()

	invalid := do(t, h, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "ay", "email": "not-an-email", "password": "secret1", "passwordConfirm": "other",
	})
	require.Equal(t, http.StatusBadRequest, invalid.Code)
	errs, ok := invalid.Body.Data["errors"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, errs, "username")
	assert.Contains(t, errs, "email")
	assert.Equal(t, "Passwords do not match", errs["passwordConfirm"])

	body := map[string]string{
		"username": "ayse", "email": "ayse@example.com", "password": "secret1", "passwordConfirm": "secret1",
	}
	registered := do(t, h, http.MethodPost, "/api/auth/register", "", body)
	require.Equal(t, http.StatusCreated, registered.Code)
	assert.NotEmpty(t, registered.Body.Data["token"])

	duplicate := do(t, h, http.MethodPost, "/api/auth/register", "", body)
	assert.Equal(t, http.StatusBadRequest, duplicate.Code)

	wrong := do(t, h, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "ayse@example.com", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, wrong.Code)

	login := do(t, h, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "ayse@example.com", "password": "secret1"})
	require.Equal(t, http.StatusOK, login.Code)
	token, _ := login.Body.Data["token"].(string)
	require.NotEmpty(t, token)

	me := do(t, h, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, me.Code)
	user, _ := me.Body.Data["user"].(map[string]any)
	assert.Equal(t, "ayse", user["username"])

	anonymous := do(t, h, http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, anonymous.Code)
}

func TestForgotPasswordAlwaysSucceeds(t *testing.T) {
	app := NewTestApplication(t, nil)
	h := app.routes()
	res := do(t, h, http.MethodPost, "/api/auth/forgot-password", "", map[string]string{"email": "nobody@example.com"})
	assert.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, forgotPasswordMsg, res.Body.Message)
	assert.NotContains(t, res.Body.Data, "resetLink")
}

func TestAuthRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.Limiter.Enabled = true
	cfg.Limiter.Rps = 1000
	cfg.Limiter.Burst = 1000
	app := NewTestApplication(t, cfg)
	h := app.routes()
	var last int
	for range cfg.Limiter.AuthRequests + 1 {
		last = do(t, h, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "a@example.com", "password": "x"}).Code
	}
	assert.Equal(t, http.StatusTooManyRequests, last)
}

func TestFollowRoutes(t *testing.T) {
	app := NewTestApplication(t, nil)
	h := app.routes()
	token := tokenFor(t, app, 1)

	assert.Equal(t, http.StatusUnauthorized, do(t, h, http.MethodPost, "/api/follows/2", "", nil).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, "/api/follows/1", token, nil).Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodPost, "/api/follows/999", token, nil).Code)

	require.Equal(t, http.StatusCreated, do(t, h, http.MethodPost, "/api/follows/2", token, nil).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, "/api/follows/2", token, nil).Code)

	status := do(t, h, http.MethodGet, "/api/follows/2/status", token, nil)
	require.Equal(t, http.StatusOK, status.Code)
	assert.Equal(t, true, status.Body.Data["isFollowing"])

	followers := do(t, h, http.MethodGet, "/api/follows/2/followers", "", nil)
	require.Equal(t, http.StatusOK, followers.Code)
	assert.Len(t, followers.Body.Data["followers"], 1)

	require.Equal(t, http.StatusOK, do(t, h, http.MethodDelete, "/api/follows/2", token, nil).Code)
	status = do(t, h, http.MethodGet, "/api/follows/2/status", token, nil)
	assert.Equal(t, false, status.Body.Data["isFollowing"])
}

func TestLikeRoutes(t *testing.T) {
	app := NewTestApplication(t, nil)
	h := app.routes()
	token := tokenFor(t, app, 1)

	bad := do(t, h, http.MethodPost, "/api/likes/movie/5", token, nil)
	assert.Equal(t, http.StatusBadRequest, bad.Code)

	liked := do(t, h, http.MethodPost, "/api/likes/review/5", token, nil)
	require.Equal(t, http.StatusOK, liked.Code)
	assert.Equal(t, true, liked.Body.Data["liked"])
	assert.EqualValues(t, 1, liked.Body.Data["count"])

	count := do(t, h, http.MethodGet, "/api/likes/review/5/count", "", nil)
	require.Equal(t, http.StatusOK, count.Code)
	assert.EqualValues(t, 1, count.Body.Data["count"])

	unliked := do(t, h, http.MethodPost, "/api/likes/review/5", token, nil)
	assert.Equal(t, false, unliked.Body.Data["liked"])
	assert.EqualValues(t, 0, unliked.Body.Data["count"])
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	app := NewTestApplication(t, nil)
	h := app.routes()
	routes := []struct{ method, path string }{
		{http.MethodPost, "/api/ratings"},
		{http.MethodGet, "/api/ratings/user/movie/550"},
		{http.MethodPost, "/api/reviews"},
		{http.MethodPut, "/api/reviews/1"},
		{http.MethodPost, "/api/lists/user-list"},
		{http.MethodPost, "/api/lists/custom"},
		{http.MethodDelete, "/api/lists/custom/1/items/2"},
		{http.MethodGet, "/api/feed"},
		{http.MethodPut, "/api/users/1"},
	}
	for _, rt := range routes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			assert.Equal(t, http.StatusUnauthorized, do(t, h, rt.method, rt.path, "", nil).Code)
		})
	}
}

func TestRateValidation(t *testing.T) {
	app := NewTestApplication(t, nil)
	h := app.routes()
	res := do(t, h, http.MethodPost, "/api/ratings", tokenFor(t, app, 1), `{"content_type": "podcast", "content_id": 550, "rating": 11}`)
	require.Equal(t, http.StatusBadRequest, res.Code)
	errs, ok := res.Body.Data["errors"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Rating must be between 1 and 10", errs["rating"])
	assert.Equal(t, "Value must be movie or book", errs["content_type"])
	assert.NotContains(t, errs, "content_id")
}

func TestFieldLimitsMatchColumns(t *testing.T) {
	app := NewTestApplication(t, nil)
	h := app.routes()

	long := strings.Repeat("p", 80)
	register := do(t, h, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "ayse", "email": strings.Repeat("a", 250) + "@example.com", "password": long, "passwordConfirm": long,
	})
	require.Equal(t, http.StatusBadRequest, register.Code)
	errs, ok := register.Body.Data["errors"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Password must be between 6 and 72 characters", errs["password"])
	assert.Contains(t, errs, "email")

	reset := do(t, h, http.MethodPost, "/api/auth/reset-password", "", map[string]string{
		"token": "x", "password": long, "passwordConfirm": long,
	})
	require.Equal(t, http.StatusBadRequest, reset.Code)
	errs, _ = reset.Body.Data["errors"].(map[string]any)
	assert.Contains(t, errs, "password")

	list := do(t, h, http.MethodPost, "/api/lists/custom", tokenFor(t, app, 1), map[string]any{
		"name": strings.Repeat("n", 101),
	})
	require.Equal(t, http.StatusBadRequest, list.Code)
	errs, _ = list.Body.Data["errors"].(map[string]any)
	assert.Equal(t, "The maximum value is 100", errs["name"])
}
