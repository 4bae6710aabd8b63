package googlebooks

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"kutuphanem/proj/internal/clients/catalog"
	"kutuphanem/proj/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		config.GoogleBooksClient{BaseURL: srv.URL, Timeout: time.Second},
		"http://localhost:3000",
	)
}

func TestBook(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/volumes/zyTCAlFPjgYC", r.URL.Path)
		assert.Equal(t, "http://localhost:3000", r.Header.Get("Referer"))
		assert.False(t, r.URL.Query().Has("key"))
		io.WriteString(w, `{"id":"zyTCAlFPjgYC","volumeInfo":{
			"title":"The Google Story","authors":["David A. Vise"],"publisher":"Random House",
			"publishedDate":"2005-11-15","description":"desc","pageCount":207,
			"industryIdentifiers":[{"type":"ISBN_10","identifier":"055380457X"},{"type":"ISBN_13","identifier":"9780553804577"}],
			"categories":["Browsers"],"imageLinks":{"smallThumbnail":"http://small","thumbnail":"http://thumb"}}}`)
	})

	book, err := c.Book(context.Background(), "zyTCAlFPjgYC")
	require.NoError(t, err)
	assert.Equal(t, "zyTCAlFPjgYC", book.GoogleBooksID)
	assert.Equal(t, "The Google Story", book.Title)
	assert.Equal(t, "2005", *book.PublishedDate)
	assert.Equal(t, "055380457X", *book.ISBN)
	assert.Equal(t, "http://thumb", *book.CoverURL)
	assert.EqualValues(t, 207, *book.PageCount)
	assert.Equal(t, []string{"David A. Vise"}, book.Authors)
	assert.Equal(t, []string{"Browsers"}, book.Categories)
}

func TestBookSparse(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"id":"x","volumeInfo":{"title":"Untitled","imageLinks":{"smallThumbnail":"http://small"}}}`)
	})

	book, err := c.Book(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, "http://small", *book.CoverURL)
	assert.Nil(t, book.ISBN)
	assert.Nil(t, book.PageCount)
	assert.NotNil(t, book.Authors)
	assert.Empty(t, book.Authors)
}

func TestBookNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	_, err := c.Book(context.Background(), "missing")
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestSearch(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "publishedDate:2001", q.Get("q"))
		assert.Equal(t, "40", q.Get("startIndex"))
		assert.Equal(t, "20", q.Get("maxResults"))
		io.WriteString(w, `{"totalItems":1,"items":[{"id":"a","volumeInfo":{"title":"A","publishedDate":"2001"}}]}`)
	})

	vs, err := c.ByYear(context.Background(), 2001, 3)
	require.NoError(t, err)
	require.Len(t, vs.Items, 1)

	s := Summary(vs.Items[0])
	assert.Equal(t, "a", s.ID)
	assert.Equal(t, "book", s.Type)
	assert.Equal(t, "2001", *s.PublishedDate)
	assert.Nil(t, s.PosterURL)
}
