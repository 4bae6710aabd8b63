package models

import (
	"context"

	"kutuphanem/proj/internal/domain/fields"
	"kutuphanem/proj/internal/storage/postgres"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type LikeModel struct {
	DB *pgxpool.Pool
}

// Toggle removes the user's like if present and adds it otherwise. It
// returns the resulting state and the new like count for the target.
func (m *LikeModel) Toggle(ctx context.Context, userID int64, target fields.LikeTarget, targetID int64) (liked bool, count int64, err error) {
	err = pgx.BeginFunc(ctx, m.DB, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			"DELETE FROM likes WHERE user_id = $1 AND target_type = $2 AND target_id = $3",
			userID, target, targetID,
		)
		if err != nil {
			return postgres.MapError(err)
		}
		if tag.RowsAffected() == 0 {
			_, err = tx.Exec(ctx, `
				INSERT INTO likes (user_id, target_type, target_id) VALUES ($1, $2, $3)
				ON CONFLICT DO NOTHING`,
				userID, target, targetID,
			)
			if err != nil {
				return postgres.MapError(err)
			}
			liked = true
		}
		count, err = countLikes(ctx, tx, target, targetID)
		return err
	})
	return liked, count, err
}

func (m *LikeModel) Exists(ctx context.Context, userID int64, target fields.LikeTarget, targetID int64) (bool, error) {
	var exists bool
	err := m.DB.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM likes WHERE user_id = $1 AND target_type = $2 AND target_id = $3)",
		userID, target, targetID,
	).Scan(&exists)
	return exists, postgres.MapError(err)
}

func (m *LikeModel) Count(ctx context.Context, target fields.LikeTarget, targetID int64) (int64, error) {
	return countLikes(ctx, m.DB, target, targetID)
}

func countLikes(ctx context.Context, db DBTX, target fields.LikeTarget, targetID int64) (int64, error) {
	var count int64
	err := db.QueryRow(ctx,
		"SELECT COUNT(*) FROM likes WHERE target_type = $1 AND target_id = $2",
		target, targetID,
	).Scan(&count)
	return count, postgres.MapError(err)
}
