package models

import (
	"context"

	"kutuphanem/proj/internal/domain/models"
	"kutuphanem/proj/internal/storage/postgres"

	"github.com/jackc/pgx/v5"
)

type FollowModel struct {
	DB DBTX
}

func (m *FollowModel) Insert(ctx context.Context, followerID, followingID int64) error {
	_, err := m.DB.Exec(ctx,
		"INSERT INTO follows (follower_id, following_id) VALUES ($1, $2)",
		followerID, followingID,
	)
	return postgres.MapError(err)
}

// Delete is a no-op when the edge does not exist.
func (m *FollowModel) Delete(ctx context.Context, followerID, followingID int64) error {
	_, err := m.DB.Exec(ctx,
		"DELETE FROM follows WHERE follower_id = $1 AND following_id = $2",
		followerID, followingID,
	)
	return postgres.MapError(err)
}

func (m *FollowModel) Exists(ctx context.Context, followerID, followingID int64) (bool, error) {
	var exists bool
	err := m.DB.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM follows WHERE follower_id = $1 AND following_id = $2)",
		followerID, followingID,
	).Scan(&exists)
	return exists, postgres.MapError(err)
}

func (m *FollowModel) FollowingIDs(ctx context.Context, userID int64) ([]int64, error) {
	rows, err := m.DB.Query(ctx, "SELECT following_id FROM follows WHERE follower_id = $1", userID)
	if err != nil {
		return nil, postgres.MapError(err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	return ids, postgres.MapError(err)
}

const followSummaryColumns = `u.id, u.username, u.avatar_url, u.bio, f.created_at AS followed_at,
	(SELECT COUNT(*) FROM ratings WHERE user_id = u.id) AS total_ratings,
	(SELECT COUNT(*) FROM reviews WHERE user_id = u.id) AS total_reviews,
	(SELECT COUNT(*) FROM follows WHERE following_id = u.id) AS followers_count`

func (m *FollowModel) Followers(ctx context.Context, userID int64) ([]models.UserSummary, error) {
	rows, err := m.DB.Query(ctx, `
		SELECT `+followSummaryColumns+`
		FROM follows f JOIN users u ON u.id = f.follower_id
		WHERE f.following_id = $1
		ORDER BY f.created_at DESC, f.id DESC`, userID,
	)
	return collect[models.UserSummary](rows, err)
}

func (m *FollowModel) Following(ctx context.Context, userID int64) ([]models.UserSummary, error) {
	rows, err := m.DB.Query(ctx, `
		SELECT `+followSummaryColumns+`
		FROM follows f JOIN users u ON u.id = f.following_id
		WHERE f.follower_id = $1
		ORDER BY f.created_at DESC, f.id DESC`, userID,
	)
	return collect[models.UserSummary](rows, err)
}
