package models

import (
	"context"

	"kutuphanem/proj/internal/domain/models"
)

type ActivityModel struct {
	DB DBTX
}

const activityContentColumns = `x.created_at, u.username, u.avatar_url,
	COALESCE(m.title, b.title) AS content_title,
	COALESCE(m.poster_url, b.cover_url) AS content_poster,
	COALESCE(to_char(m.release_date, 'YYYY-MM-DD'), b.published_date) AS content_release_date,
	COALESCE(m.genres, b.categories) AS content_genres,
	COALESCE(m.directors, b.authors) AS content_creators,
	COALESCE(m.average_rating, b.average_rating)::float8 AS content_average_rating`

// RecentRatings returns the newest ratings made by any of userIDs, newest
// first, enriched with author and content details.
func (m *ActivityModel) RecentRatings(ctx context.Context, userIDs []int64, limit int) ([]models.Activity, error) {
	rows, err := m.DB.Query(ctx, `
		SELECT x.id AS activity_id, 'rating' AS activity_type, x.user_id, x.content_type, x.content_id,
			x.rating, `+activityContentColumns+`
		FROM ratings x JOIN users u ON u.id = x.user_id`+contentJoin+`
		WHERE x.user_id = ANY($1)
		ORDER BY x.created_at DESC, x.id DESC
		LIMIT $2`,
		userIDs, limit,
	)
	return collect[models.Activity](rows, err)
}

// RecentReviews is RecentRatings for reviews.
func (m *ActivityModel) RecentReviews(ctx context.Context, userIDs []int64, limit int) ([]models.Activity, error) {
	rows, err := m.DB.Query(ctx, `
		SELECT x.id AS activity_id, 'review' AS activity_type, x.user_id, x.content_type, x.content_id,
			x.review_text, LEFT(x.review_text, 150) AS review_excerpt, `+activityContentColumns+`
		FROM reviews x JOIN users u ON u.id = x.user_id`+contentJoin+`
		WHERE x.user_id = ANY($1)
		ORDER BY x.created_at DESC, x.id DESC
		LIMIT $2`,
		userIDs, limit,
	)
	return collect[models.Activity](rows, err)
}
