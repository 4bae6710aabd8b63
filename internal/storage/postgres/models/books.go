package models

import (
	"context"
	"errors"
	"strconv"

	"kutuphanem/proj/internal/domain/models"
	"kutuphanem/proj/internal/storage"
)

type BookModel struct {
	DB DBTX
}

const bookColumns = `id, google_books_id, isbn, title, description, published_date, page_count, cover_url,
	authors, categories, publisher, average_rating, total_ratings, total_reviews, created_at`

// GetByRef matches a numeric ref against the internal id or the Google Books
// id; any other ref only against the Google Books id.
func (m *BookModel) GetByRef(ctx context.Context, ref string) (*models.Book, error) {
	var id *int64
	if n, err := strconv.ParseInt(ref, 10, 64); err == nil {
		id = &n
	}
	rows, err := m.DB.Query(ctx, `
		SELECT `+bookColumns+` FROM books
		WHERE ($1::bigint IS NOT NULL AND id = $1) OR google_books_id = $2
		ORDER BY (id = $1) DESC NULLS LAST
		LIMIT 1`, id, ref,
	)
	return collectOne[models.Book](rows, err)
}

func (m *BookModel) GetByGoogleID(ctx context.Context, googleID string) (*models.Book, error) {
	rows, err := m.DB.Query(ctx, "SELECT "+bookColumns+" FROM books WHERE google_books_id = $1", googleID)
	return collectOne[models.Book](rows, err)
}

func (m *BookModel) Insert(ctx context.Context, book *models.Book) (*models.Book, error) {
	rows, err := m.DB.Query(ctx, `
		INSERT INTO books (google_books_id, isbn, title, description, published_date, page_count,
			cover_url, authors, categories, publisher)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (google_books_id) DO NOTHING
		RETURNING `+bookColumns,
		book.GoogleBooksID, book.ISBN, book.Title, book.Description, book.PublishedDate, book.PageCount,
		book.CoverURL, nonNil(book.Authors), nonNil(book.Categories), book.Publisher,
	)
	stored, err := collectOne[models.Book](rows, err)
	if errors.Is(err, storage.ErrNotFound) {
		return m.GetByGoogleID(ctx, book.GoogleBooksID)
	}
	return stored, err
}

const bookSummaryColumns = `google_books_id AS id, title, published_date, cover_url AS poster_url,
	'book' AS type, average_rating::float8 AS average_rating, total_ratings`

func (m *BookModel) Filter(ctx context.Context, year *int, minRating *float64, genre *string, limit int) ([]models.BookSummary, error) {
	var yearText, genrePattern *string
	if year != nil {
		y := strconv.Itoa(*year)
		yearText = &y
	}
	if genre != nil {
		p := likePattern(*genre)
		genrePattern = &p
	}
	rows, err := m.DB.Query(ctx, `
		SELECT `+bookSummaryColumns+` FROM books
		WHERE ($1::text IS NULL OR LEFT(published_date, 4) = $1)
			AND ($2::float8 IS NULL OR average_rating >= $2)
			AND ($3::text IS NULL OR categories::text ILIKE $3)
		ORDER BY average_rating DESC, total_ratings DESC
		LIMIT $4`,
		yearText, minRating, genrePattern, limit,
	)
	return collect[models.BookSummary](rows, err)
}

func (m *BookModel) RatedAtLeast(ctx context.Context, googleIDs []string, minRating float64) ([]models.BookSummary, error) {
	if len(googleIDs) == 0 {
		return []models.BookSummary{}, nil
	}
	rows, err := m.DB.Query(ctx, `
		SELECT `+bookSummaryColumns+` FROM books
		WHERE google_books_id = ANY($1) AND average_rating >= $2`,
		googleIDs, minRating,
	)
	return collect[models.BookSummary](rows, err)
}

const bookRankedColumns = `b.id, b.google_books_id AS external_id, 'book' AS content_type, b.title,
	b.cover_url AS poster_url, b.published_date AS release_date, b.average_rating::float8 AS average_rating,
	b.total_ratings, b.total_reviews, l.total_list_additions,
	b.total_ratings + b.total_reviews + l.total_list_additions AS popularity_score`

const bookListAdditions = `CROSS JOIN LATERAL (
		SELECT COUNT(*) AS total_list_additions FROM user_lists ul
		WHERE ul.content_type = 'book' AND ul.content_id = b.id
	) l`

func (m *BookModel) Popular(ctx context.Context, limit int) ([]models.RankedContent, error) {
	rows, err := m.DB.Query(ctx, `
		SELECT `+bookRankedColumns+` FROM books b `+bookListAdditions+`
		WHERE b.total_ratings > 0 OR b.total_reviews > 0
		ORDER BY popularity_score DESC, b.id DESC
		LIMIT $1`, limit,
	)
	return collect[models.RankedContent](rows, err)
}

func (m *BookModel) TopRated(ctx context.Context, limit int) ([]models.RankedContent, error) {
	rows, err := m.DB.Query(ctx, `
		SELECT `+bookRankedColumns+` FROM books b `+bookListAdditions+`
		WHERE b.total_ratings >= 1
		ORDER BY b.average_rating DESC, b.total_ratings DESC, b.id DESC
		LIMIT $1`, limit,
	)
	return collect[models.RankedContent](rows, err)
}
