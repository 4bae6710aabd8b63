package models

import (
	"time"

	"kutuphanem/proj/internal/domain/fields"
)

type Rating struct {
	ID          int64              `json:"id"`
	UserID      int64              `json:"user_id" db:"user_id"`
	ContentType fields.ContentType `json:"content_type" db:"content_type"`
	ContentID   int64              `json:"content_id" db:"content_id"`
	Rating      int32              `json:"rating"`
	CreatedAt   time.Time          `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" db:"updated_at"`
}

type Review struct {
	ID          int64              `json:"id"`
	UserID      int64              `json:"user_id" db:"user_id"`
	ContentType fields.ContentType `json:"content_type" db:"content_type"`
	ContentID   int64              `json:"content_id" db:"content_id"`
	ReviewText  string             `json:"review_text" db:"review_text"`
	CreatedAt   time.Time          `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" db:"updated_at"`
	Username    string             `json:"username,omitempty"`
	AvatarURL   *string            `json:"avatar_url,omitempty" db:"avatar_url"`
}

type Comment struct {
	ID          int64     `json:"id"`
	ReviewID    int64     `json:"review_id" db:"review_id"`
	UserID      int64     `json:"user_id" db:"user_id"`
	CommentText string    `json:"comment_text" db:"comment_text"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
	Username    string    `json:"username"`
	AvatarURL   *string   `json:"avatar_url" db:"avatar_url"`
}

// Activity is one feed entry: a rating or a review enriched with the
// author and the cached content it refers to.
type Activity struct {
	ActivityID           int64               `json:"activity_id" db:"activity_id"`
	ActivityType         fields.ActivityType `json:"activity_type" db:"activity_type"`
	UserID               int64               `json:"user_id" db:"user_id"`
	ContentType          fields.ContentType  `json:"content_type" db:"content_type"`
	ContentID            int64               `json:"content_id" db:"content_id"`
	Rating               *int32              `json:"rating,omitempty"`
	ReviewText           *string             `json:"review_text,omitempty" db:"review_text"`
	ReviewExcerpt        *string             `json:"review_excerpt,omitempty" db:"review_excerpt"`
	CreatedAt            time.Time           `json:"created_at" db:"created_at"`
	Username             string              `json:"username"`
	AvatarURL            *string             `json:"avatar_url" db:"avatar_url"`
	ContentTitle         *string             `json:"content_title" db:"content_title"`
	ContentPoster        *string             `json:"content_poster" db:"content_poster"`
	ContentReleaseDate   *string             `json:"content_release_date" db:"content_release_date"`
	ContentGenres        []string            `json:"content_genres" db:"content_genres"`
	ContentCreators      []string            `json:"content_creators" db:"content_creators"`
	ContentAverageRating *float64            `json:"content_average_rating" db:"content_average_rating"`
}
