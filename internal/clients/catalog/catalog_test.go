package catalog

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestGetDecodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/things", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		assert.Equal(t, "yes", r.Header.Get("X-Test"))
		io.WriteString(w, `{"name":"thing"}`)
	}))
	defer srv.Close()
	c := New(discardLogger(), "test", srv.URL+"/", time.Second, WithHeader("X-Test", "yes"))

	var dst struct {
		Name string `json:"name"`
	}
	require.NoError(t, c.Get(context.Background(), "/things", map[string][]string{"page": {"1"}}, &dst))
	assert.Equal(t, "thing", dst.Name)
}

func TestBreakerOpensOnServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()
	c := New(discardLogger(), "flaky", srv.URL, time.Second)

	var dst map[string]any
	for range 5 {
		err := c.Get(context.Background(), "/", nil, &dst)
		var statusErr *StatusError
		require.ErrorAs(t, err, &statusErr)
		assert.Equal(t, http.StatusServiceUnavailable, statusErr.Status)
		assert.NotErrorIs(t, err, ErrUnavailable)
	}
	assert.EqualValues(t, 5, calls.Load())

	err := c.Get(context.Background(), "/", nil, &dst)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.EqualValues(t, 5, calls.Load(), "open breaker must not reach the provider")
}

func TestClientErrorsDoNotTrip(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if r.URL.Path == "/missing" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()
	c := New(discardLogger(), "strict", srv.URL, time.Second)

	var dst map[string]any
	for range 6 {
		err := c.Get(context.Background(), "/bad", nil, &dst)
		var statusErr *StatusError
		require.ErrorAs(t, err, &statusErr)
		assert.Equal(t, http.StatusBadRequest, statusErr.Status)
	}
	for range 6 {
		assert.ErrorIs(t, c.Get(context.Background(), "/missing", nil, &dst), ErrNotFound)
	}
	assert.EqualValues(t, 12, calls.Load())
}

func TestConnectionFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	c := New(discardLogger(), "gone", url, time.Second)

	var dst map[string]any
	assert.ErrorIs(t, c.Get(context.Background(), "/", nil, &dst), ErrUnavailable)
}

func TestTimeoutIsUnavailable(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	hc := srv.Client()
	hc.Timeout = 50 * time.Millisecond
	c := New(discardLogger(), "slow", srv.URL, time.Minute, WithHTTPClient(hc))

	var dst map[string]any
	assert.ErrorIs(t, c.Get(context.Background(), "/", nil, &dst), ErrUnavailable)
}
