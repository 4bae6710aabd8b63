package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"kutuphanem/proj/internal/clients/catalog/googlebooks"
	"kutuphanem/proj/internal/clients/catalog/tmdb"
	"kutuphanem/proj/internal/config"
	"kutuphanem/proj/internal/domain/fields"
	"kutuphanem/proj/internal/domain/models"
	"kutuphanem/proj/internal/mails"
	"kutuphanem/proj/internal/services"
	"kutuphanem/proj/internal/services/auth"
	"kutuphanem/proj/internal/services/feed"
	"kutuphanem/proj/internal/services/follows"
	"kutuphanem/proj/internal/services/likes"
	"kutuphanem/proj/internal/services/lists"
	"kutuphanem/proj/internal/services/reviews"
	"kutuphanem/proj/internal/services/search"
	"kutuphanem/proj/internal/storage"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
)

type memUsers struct {
	mu    sync.Mutex
	users map[int64]*models.User
}

func (m *memUsers) Insert(_ context.Context, username, email string, hash []byte) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			return nil, storage.ErrEmailTaken
		}
		if u.Username == username {
			return nil, storage.ErrUsernameTaken
		}
	}
	u := &models.User{ID: int64(len(m.users) + 1), Username: username, Email: email, PasswordHash: hash}
	m.users[u.ID] = u
	return u, nil
}

func (m *memUsers) GetByID(_ context.Context, id int64) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, storage.ErrNotFound
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (m *memUsers) SetResetToken(context.Context, int64, string, time.Time) error { return nil }

func (m *memUsers) ResetPassword(context.Context, string, []byte) error { return storage.ErrNotFound }

type followEdge struct{ from, to int64 }

type memFollows struct {
	mu    sync.Mutex
	edges map[followEdge]bool
}

func (m *memFollows) Insert(_ context.Context, from, to int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if to > 100 {
		return storage.ErrReferenceNotFound
	}
	if m.edges[followEdge{from, to}] {
		return storage.ErrConflict
	}
	m.edges[followEdge{from, to}] = true
	return nil
}

func (m *memFollows) Delete(_ context.Context, from, to int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.edges, followEdge{from, to})
	return nil
}

func (m *memFollows) Exists(_ context.Context, from, to int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.edges[followEdge{from, to}], nil
}

func (m *memFollows) Followers(_ context.Context, id int64) ([]models.UserSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.UserSummary{}
	for e := range m.edges {
		if e.to == id {
			out = append(out, models.UserSummary{ID: e.from})
		}
	}
	return out, nil
}

func (m *memFollows) Following(_ context.Context, id int64) ([]models.UserSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.UserSummary{}
	for e := range m.edges {
		if e.from == id {
			out = append(out, models.UserSummary{ID: e.to})
		}
	}
	return out, nil
}

type likeKey struct {
	user   int64
	target fields.LikeTarget
	id     int64
}

type memLikes struct {
	mu    sync.Mutex
	likes map[likeKey]bool
}

func (m *memLikes) count(target fields.LikeTarget, id int64) int64 {
	var n int64
	for k := range m.likes {
		if k.target == target && k.id == id {
			n++
		}
	}
	return n
}

func (m *memLikes) Toggle(_ context.Context, user int64, target fields.LikeTarget, id int64) (bool, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := likeKey{user, target, id}
	if m.likes[k] {
		delete(m.likes, k)
	} else {
		m.likes[k] = true
	}
	return m.likes[k], m.count(target, id), nil
}

func (m *memLikes) Exists(_ context.Context, user int64, target fields.LikeTarget, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.likes[likeKey{user, target, id}], nil
}

func (m *memLikes) Count(_ context.Context, target fields.LikeTarget, id int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.count(target, id), nil
}

func testConfig() *config.Config {
	return &config.Config{
		AppSecret:   "test-secret",
		TokenTTL:    time.Hour,
		FrontendURL: "http://localhost:3000",
		Limiter:     config.Limiter{Rps: 2, Burst: 2, AuthRequests: 3, AuthWindow: time.Minute},
	}
}

// NewTestApplication wires services over in-memory storage. Search talks to
// fake TMDB and Google Books servers; the books one always fails. Users,
// catalog and ratings are left nil.
func NewTestApplication(t *testing.T, cfg *config.Config) *Application {
	t.Helper()
	if cfg == nil {
		cfg = testConfig()
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	followStore := &memFollows{edges: map[followEdge]bool{}}
	reviewStore := &memReviews{reviews: map[int64]models.Review{}}
	resolver := &memResolver{ids: map[string]int64{}}
	ranked := []models.RankedContent{
		{ID: 1, ExternalID: "603", ContentType: fields.ContentMovie, Title: "The Matrix", AverageRating: 9, TotalRatings: 3, PopularityScore: 12},
		{ID: 2, ExternalID: "zyTCAlFPjgYC", ContentType: fields.ContentBook, Title: "Dune", AverageRating: 7, TotalRatings: 5, PopularityScore: 20},
	}

	svc := &services.Services{
		Auth:    auth.New(log, cfg, &memUsers{users: map[int64]*models.User{}}, (*mails.Mailer)(nil)),
		Follows: follows.New(log, followStore),
		Likes:   likes.New(log, &memLikes{likes: map[likeKey]bool{}}),
		Reviews: reviews.New(log, reviewStore, &memComments{comments: map[int64]models.Comment{}}, resolver),
		Lists:   lists.New(log, newMemLists(), resolver),
		Feed:    feed.New(log, followStore, memActivities{reviews: reviewStore}),
		Search: search.New(log,
			movieIndex{rankedIndex{ranked[:1]}},
			bookIndex{rankedIndex{ranked[1:]}},
			tmdb.New(log, config.TMDBClient{BaseURL: fakeTMDB(t).URL, ApiKey: "test", Timeout: time.Second}),
			googlebooks.New(log, config.GoogleBooksClient{BaseURL: failingServer(t).URL, Timeout: time.Second}, ""),
		),
	}
	return newApplication(cfg, log, svc)
}

func fakeTMDB(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/movie" || r.URL.Query().Get("api_key") != "test" {
			http.NotFound(w, r)
			return
		}
		io.WriteString(w, `{"page":1,"results":[{"id":603,"title":"The Matrix","release_date":"1999-03-30"}],"total_pages":1,"total_results":1}`)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func failingServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func tokenFor(t *testing.T, app *Application, id int64) string {
	t.Helper()
	token, err := app.services.Auth.NewToken(&models.User{ID: id, Username: "user", Email: "user@example.com"})
	require.NoError(t, err)
	return token
}

type testResponse struct {
	Code int
	Body Response
}

func do(t *testing.T, h http.Handler, method, target, token string, body any) testResponse {
	t.Helper()
	var rdr io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rdr = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		rdr = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, rdr)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	var res testResponse
	res.Code = rec.Code
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res.Body), rec.Body.String())
	}
	return res
}
