package models

import (
	"time"

	"kutuphanem/proj/internal/domain/fields"
)

type ListItem struct {
	ID          int64              `json:"id"`
	UserID      int64              `json:"user_id" db:"user_id"`
	ContentType fields.ContentType `json:"content_type" db:"content_type"`
	ContentID   int64              `json:"content_id" db:"content_id"`
	ListType    fields.ListType    `json:"list_type" db:"list_type"`
	CreatedAt   time.Time          `json:"created_at" db:"created_at"`
	Title       *string            `json:"title"`
	PosterURL   *string            `json:"poster_url" db:"poster_url"`
	ReleaseDate *string            `json:"release_date" db:"release_date"`
}

type CustomList struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id" db:"user_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	IsPublic    bool      `json:"is_public" db:"is_public"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

type CustomListItem struct {
	ID           int64              `json:"id"`
	CustomListID int64              `json:"custom_list_id" db:"custom_list_id"`
	ContentType  fields.ContentType `json:"content_type" db:"content_type"`
	ContentID    int64              `json:"content_id" db:"content_id"`
	AddedAt      time.Time          `json:"added_at" db:"added_at"`
	Title        *string            `json:"title"`
	PosterURL    *string            `json:"poster_url" db:"poster_url"`
}
