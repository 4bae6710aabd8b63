package models

import (
	"time"

	"kutuphanem/proj/internal/domain/fields"
)

type CastMember struct {
	Name      string `json:"name"`
	Character string `json:"character"`
}

type Movie struct {
	ID            int64        `json:"id"`
	TmdbID        int64        `json:"tmdb_id" db:"tmdb_id"`
	Title         string       `json:"title"`
	Overview      *string      `json:"overview"`
	ReleaseDate   *time.Time   `json:"release_date" db:"release_date"`
	PosterURL     *string      `json:"poster_url" db:"poster_url"`
	BackdropURL   *string      `json:"backdrop_url" db:"backdrop_url"`
	Runtime       *int32       `json:"runtime"`
	Genres        []string     `json:"genres"`
	Directors     []string     `json:"directors"`
	Cast          []CastMember `json:"cast" db:"cast_members"`
	AverageRating float64      `json:"average_rating" db:"average_rating"`
	TotalRatings  int32        `json:"total_ratings" db:"total_ratings"`
	TotalReviews  int32        `json:"total_reviews" db:"total_reviews"`
	CreatedAt     time.Time    `json:"created_at" db:"created_at"`
}

type Book struct {
	ID            int64     `json:"id"`
	GoogleBooksID string    `json:"google_books_id" db:"google_books_id"`
	ISBN          *string   `json:"isbn"`
	Title         string    `json:"title"`
	Description   *string   `json:"description"`
	PublishedDate *string   `json:"published_date" db:"published_date"`
	PageCount     *int32    `json:"page_count" db:"page_count"`
	CoverURL      *string   `json:"cover_url" db:"cover_url"`
	Authors       []string  `json:"authors"`
	Categories    []string  `json:"categories"`
	Publisher     *string   `json:"publisher"`
	AverageRating float64   `json:"average_rating" db:"average_rating"`
	TotalRatings  int32     `json:"total_ratings" db:"total_ratings"`
	TotalReviews  int32     `json:"total_reviews" db:"total_reviews"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// MovieSummary is a search hit. ID is the TMDB id for provider results and
// falls back to the local id for cache rows that lack one.
type MovieSummary struct {
	ID            int64    `json:"id"`
	Title         string   `json:"title"`
	ReleaseDate   *string  `json:"release_date"`
	PosterURL     *string  `json:"poster_url"`
	Type          string   `json:"type"`
	AverageRating *float64 `json:"average_rating,omitempty" db:"average_rating"`
	TotalRatings  *int32   `json:"total_ratings,omitempty" db:"total_ratings"`
}

type BookSummary struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	PublishedDate *string  `json:"published_date"`
	PosterURL     *string  `json:"poster_url"`
	Type          string   `json:"type"`
	AverageRating *float64 `json:"average_rating,omitempty" db:"average_rating"`
	TotalRatings  *int32   `json:"total_ratings,omitempty" db:"total_ratings"`
}

// RankedContent is a locally cached item ranked by popularity or rating.
type RankedContent struct {
	ID                 int64              `json:"id"`
	ExternalID         string             `json:"external_id" db:"external_id"`
	ContentType        fields.ContentType `json:"content_type" db:"content_type"`
	Title              string             `json:"title"`
	PosterURL          *string            `json:"poster_url" db:"poster_url"`
	ReleaseDate        *string            `json:"release_date" db:"release_date"`
	AverageRating      float64            `json:"average_rating" db:"average_rating"`
	TotalRatings       int32              `json:"total_ratings" db:"total_ratings"`
	TotalReviews       int32              `json:"total_reviews" db:"total_reviews"`
	TotalListAdditions int64              `json:"total_list_additions" db:"total_list_additions"`
	PopularityScore    int64              `json:"popularity_score" db:"popularity_score"`
}

type RatingSummary struct {
	AverageRating float64 `json:"average_rating" db:"average_rating"`
	TotalRatings  int64   `json:"total_ratings" db:"total_ratings"`
}
