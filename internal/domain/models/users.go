package models

import "time"

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email,omitempty"`
	PasswordHash []byte    `json:"-" db:"password_hash"`
	AvatarURL    *string   `json:"avatar_url" db:"avatar_url"`
	Bio          *string   `json:"bio" db:"bio"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"-" db:"updated_at"`
}

// AnonymousUser is put into the request context when no valid token was sent.
var AnonymousUser = &User{}

func (u *User) IsAnonymous() bool {
	return u == nil || u == AnonymousUser || u.ID == 0
}

type UserStats struct {
	TotalRatings   int64 `json:"total_ratings" db:"total_ratings"`
	TotalReviews   int64 `json:"total_reviews" db:"total_reviews"`
	FollowingCount int64 `json:"following_count" db:"following_count"`
	FollowersCount int64 `json:"followers_count" db:"followers_count"`
}

type Profile struct {
	User
	Stats UserStats `json:"stats" db:"-"`
}

// UserSummary is the public card shown in follower lists and user search.
type UserSummary struct {
	ID             int64      `json:"id"`
	Username       string     `json:"username"`
	AvatarURL      *string    `json:"avatar_url" db:"avatar_url"`
	Bio            *string    `json:"bio" db:"bio"`
	FollowedAt     *time.Time `json:"followed_at,omitempty" db:"followed_at"`
	TotalRatings   int64      `json:"total_ratings" db:"total_ratings"`
	TotalReviews   int64      `json:"total_reviews" db:"total_reviews"`
	FollowersCount int64      `json:"followers_count" db:"followers_count"`
}
