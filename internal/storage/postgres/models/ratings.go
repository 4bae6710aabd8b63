package models

import (
	"context"

	"kutuphanem/proj/internal/domain/fields"
	"kutuphanem/proj/internal/domain/models"
	"kutuphanem/proj/internal/storage"
	"kutuphanem/proj/internal/storage/postgres"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RatingModel struct {
	DB *pgxpool.Pool
}

const ratingColumns = "id, user_id, content_type, content_id, rating, created_at, updated_at"

// Upsert stores the user's rating and recomputes the content aggregate in the
// same transaction. The content row is locked first so concurrent raters of
// one item are serialized.
func (m *RatingModel) Upsert(ctx context.Context, userID int64, ct fields.ContentType, contentID int64, value int32) (models.RatingSummary, error) {
	var summary models.RatingSummary
	err := pgx.BeginFunc(ctx, m.DB, func(tx pgx.Tx) error {
		if err := lockContent(ctx, tx, ct, contentID); err != nil {
			return err
		}
		_, err := tx.Exec(ctx, `
			INSERT INTO ratings (user_id, content_type, content_id, rating)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (user_id, content_type, content_id)
			DO UPDATE SET rating = EXCLUDED.rating, updated_at = NOW()`,
			userID, ct, contentID, value,
		)
		if err != nil {
			return postgres.MapError(err)
		}
		summary, err = recomputeRatings(ctx, tx, ct, contentID)
		return err
	})
	return summary, err
}

// Delete removes the user's rating and recomputes the aggregate.
func (m *RatingModel) Delete(ctx context.Context, userID int64, ct fields.ContentType, contentID int64) (models.RatingSummary, error) {
	var summary models.RatingSummary
	err := pgx.BeginFunc(ctx, m.DB, func(tx pgx.Tx) error {
		if err := lockContent(ctx, tx, ct, contentID); err != nil {
			return err
		}
		tag, err := tx.Exec(ctx,
			"DELETE FROM ratings WHERE user_id = $1 AND content_type = $2 AND content_id = $3",
			userID, ct, contentID,
		)
		if err != nil {
			return postgres.MapError(err)
		}
		if tag.RowsAffected() == 0 {
			return storage.ErrNotFound
		}
		summary, err = recomputeRatings(ctx, tx, ct, contentID)
		return err
	})
	return summary, err
}

func recomputeRatings(ctx context.Context, tx pgx.Tx, ct fields.ContentType, contentID int64) (models.RatingSummary, error) {
	table, err := contentTable(ct)
	if err != nil {
		return models.RatingSummary{}, err
	}
	var summary models.RatingSummary
	err = tx.QueryRow(ctx, `
		UPDATE `+table+` t SET
			average_rating = agg.average,
			total_ratings = agg.total
		FROM (
			SELECT COALESCE(ROUND(AVG(rating)::numeric, 1), 0) AS average, COUNT(*) AS total
			FROM ratings WHERE content_type = $1 AND content_id = $2
		) agg
		WHERE t.id = $2
		RETURNING t.average_rating::float8, t.total_ratings::bigint`,
		ct, contentID,
	).Scan(&summary.AverageRating, &summary.TotalRatings)
	if err != nil {
		return models.RatingSummary{}, postgres.MapError(err)
	}
	return summary, nil
}

func (m *RatingModel) Get(ctx context.Context, userID int64, ct fields.ContentType, contentID int64) (*models.Rating, error) {
	rows, err := m.DB.Query(ctx, `
		SELECT `+ratingColumns+` FROM ratings
		WHERE user_id = $1 AND content_type = $2 AND content_id = $3`,
		userID, ct, contentID,
	)
	return collectOne[models.Rating](rows, err)
}
