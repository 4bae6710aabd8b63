package models

import (
	"context"
	"errors"

	"kutuphanem/proj/internal/domain/models"
	"kutuphanem/proj/internal/storage"
)

type MovieModel struct {
	DB DBTX
}

const movieColumns = `id, tmdb_id, title, overview, release_date, poster_url, backdrop_url, runtime,
	genres, directors, cast_members, average_rating, total_ratings, total_reviews, created_at`

// GetByRef looks a movie up by internal id or TMDB id, preferring the
// internal id when both match different rows.
func (m *MovieModel) GetByRef(ctx context.Context, ref int64) (*models.Movie, error) {
	rows, err := m.DB.Query(ctx, `
		SELECT `+movieColumns+` FROM movies
		WHERE id = $1 OR tmdb_id = $1
		ORDER BY (id = $1) DESC
		LIMIT 1`, ref,
	)
	return collectOne[models.Movie](rows, err)
}

func (m *MovieModel) GetByTmdbID(ctx context.Context, tmdbID int64) (*models.Movie, error) {
	rows, err := m.DB.Query(ctx, "SELECT "+movieColumns+" FROM movies WHERE tmdb_id = $1", tmdbID)
	return collectOne[models.Movie](rows, err)
}

// Insert stores a normalized provider record. When another request cached the
// same TMDB id first, the existing row is returned.
func (m *MovieModel) Insert(ctx context.Context, movie *models.Movie) (*models.Movie, error) {
	rows, err := m.DB.Query(ctx, `
		INSERT INTO movies (tmdb_id, title, overview, release_date, poster_url, backdrop_url,
			runtime, genres, directors, cast_members)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (tmdb_id) DO NOTHING
		RETURNING `+movieColumns,
		movie.TmdbID, movie.Title, movie.Overview, movie.ReleaseDate, movie.PosterURL, movie.BackdropURL,
		movie.Runtime, nonNil(movie.Genres), nonNil(movie.Directors), nonNil(movie.Cast),
	)
	stored, err := collectOne[models.Movie](rows, err)
	if errors.Is(err, storage.ErrNotFound) {
		return m.GetByTmdbID(ctx, movie.TmdbID)
	}
	return stored, err
}

const movieSummaryColumns = `tmdb_id AS id, title, to_char(release_date, 'YYYY-MM-DD') AS release_date,
	poster_url, 'movie' AS type, average_rating::float8 AS average_rating, total_ratings`

// Filter queries the local cache. Nil arguments are not applied.
func (m *MovieModel) Filter(ctx context.Context, year *int, minRating *float64, genre *string, limit int) ([]models.MovieSummary, error) {
	var genrePattern *string
	if genre != nil {
		p := likePattern(*genre)
		genrePattern = &p
	}
	rows, err := m.DB.Query(ctx, `
		SELECT `+movieSummaryColumns+` FROM movies
		WHERE ($1::int IS NULL OR EXTRACT(YEAR FROM release_date) = $1)
			AND ($2::float8 IS NULL OR average_rating >= $2)
			AND ($3::text IS NULL OR genres::text ILIKE $3)
		ORDER BY average_rating DESC, total_ratings DESC
		LIMIT $4`,
		year, minRating, genrePattern, limit,
	)
	return collect[models.MovieSummary](rows, err)
}

// RatedAtLeast returns the cached movies among tmdbIDs whose average is at
// least minRating.
func (m *MovieModel) RatedAtLeast(ctx context.Context, tmdbIDs []int64, minRating float64) ([]models.MovieSummary, error) {
	if len(tmdbIDs) == 0 {
		return []models.MovieSummary{}, nil
	}
	rows, err := m.DB.Query(ctx, `
		SELECT `+movieSummaryColumns+` FROM movies
		WHERE tmdb_id = ANY($1) AND average_rating >= $2`,
		tmdbIDs, minRating,
	)
	return collect[models.MovieSummary](rows, err)
}

const movieRankedColumns = `m.id, m.tmdb_id::text AS external_id, 'movie' AS content_type, m.title, m.poster_url,
	to_char(m.release_date, 'YYYY-MM-DD') AS release_date, m.average_rating::float8 AS average_rating,
	m.total_ratings, m.total_reviews, l.total_list_additions,
	m.total_ratings + m.total_reviews + l.total_list_additions AS popularity_score`

const movieListAdditions = `CROSS JOIN LATERAL (
		SELECT COUNT(*) AS total_list_additions FROM user_lists ul
		WHERE ul.content_type = 'movie' AND ul.content_id = m.id
	) l`

func (m *MovieModel) Popular(ctx context.Context, limit int) ([]models.RankedContent, error) {
	rows, err := m.DB.Query(ctx, `
		SELECT `+movieRankedColumns+` FROM movies m `+movieListAdditions+`
		WHERE m.total_ratings > 0 OR m.total_reviews > 0
		ORDER BY popularity_score DESC, m.id DESC
		LIMIT $1`, limit,
	)
	return collect[models.RankedContent](rows, err)
}

func (m *MovieModel) TopRated(ctx context.Context, limit int) ([]models.RankedContent, error) {
	rows, err := m.DB.Query(ctx, `
		SELECT `+movieRankedColumns+` FROM movies m `+movieListAdditions+`
		WHERE m.total_ratings >= 1
		ORDER BY m.average_rating DESC, m.total_ratings DESC, m.id DESC
		LIMIT $1`, limit,
	)
	return collect[models.RankedContent](rows, err)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
