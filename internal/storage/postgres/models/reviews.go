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

type ReviewModel struct {
	DB *pgxpool.Pool
}

const reviewSelect = `
	SELECT r.id, r.user_id, r.content_type, r.content_id, r.review_text, r.created_at, r.updated_at,
		u.username, u.avatar_url
	FROM reviews r JOIN users u ON u.id = r.user_id`

func getReview(ctx context.Context, db DBTX, id int64) (*models.Review, error) {
	rows, err := db.Query(ctx, reviewSelect+" WHERE r.id = $1", id)
	return collectOne[models.Review](rows, err)
}

func (m *ReviewModel) Get(ctx context.Context, id int64) (*models.Review, error) {
	return getReview(ctx, m.DB, id)
}

// Insert adds a review and refreshes the content's total_reviews counter.
func (m *ReviewModel) Insert(ctx context.Context, userID int64, ct fields.ContentType, contentID int64, text string) (*models.Review, error) {
	var review *models.Review
	err := pgx.BeginFunc(ctx, m.DB, func(tx pgx.Tx) error {
		if err := lockContent(ctx, tx, ct, contentID); err != nil {
			return err
		}
		var id int64
		err := tx.QueryRow(ctx, `
			INSERT INTO reviews (user_id, content_type, content_id, review_text)
			VALUES ($1, $2, $3, $4) RETURNING id`,
			userID, ct, contentID, text,
		).Scan(&id)
		if err != nil {
			return postgres.MapError(err)
		}
		if err := recountReviews(ctx, tx, ct, contentID); err != nil {
			return err
		}
		review, err = getReview(ctx, tx, id)
		return err
	})
	return review, err
}

func (m *ReviewModel) UpdateText(ctx context.Context, id int64, text string) (*models.Review, error) {
	tag, err := m.DB.Exec(ctx,
		"UPDATE reviews SET review_text = $2, updated_at = NOW() WHERE id = $1",
		id, text,
	)
	if err != nil {
		return nil, postgres.MapError(err)
	}
	if tag.RowsAffected() == 0 {
		return nil, storage.ErrNotFound
	}
	return m.Get(ctx, id)
}

// Delete removes a review and refreshes the content's total_reviews counter.
func (m *ReviewModel) Delete(ctx context.Context, id int64) error {
	return pgx.BeginFunc(ctx, m.DB, func(tx pgx.Tx) error {
		var (
			ct        fields.ContentType
			contentID int64
		)
		err := tx.QueryRow(ctx, "SELECT content_type, content_id FROM reviews WHERE id = $1", id).Scan(&ct, &contentID)
		if err != nil {
			return postgres.MapError(err)
		}
		if err := lockContent(ctx, tx, ct, contentID); err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, "DELETE FROM reviews WHERE id = $1", id)
		if err != nil {
			return postgres.MapError(err)
		}
		if tag.RowsAffected() == 0 {
			return storage.ErrNotFound
		}
		return recountReviews(ctx, tx, ct, contentID)
	})
}

func recountReviews(ctx context.Context, tx pgx.Tx, ct fields.ContentType, contentID int64) error {
	table, err := contentTable(ct)
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, `
		UPDATE `+table+` SET total_reviews = (
			SELECT COUNT(*) FROM reviews WHERE content_type = $1 AND content_id = $2
		) WHERE id = $2`,
		ct, contentID,
	)
	return postgres.MapError(err)
}

// ListForContent returns one page of reviews, newest first, and the total.
func (m *ReviewModel) ListForContent(ctx context.Context, ct fields.ContentType, contentID int64, limit, offset int) ([]models.Review, int64, error) {
	var total int64
	err := m.DB.QueryRow(ctx,
		"SELECT COUNT(*) FROM reviews WHERE content_type = $1 AND content_id = $2",
		ct, contentID,
	).Scan(&total)
	if err != nil {
		return nil, 0, postgres.MapError(err)
	}
	rows, err := m.DB.Query(ctx, reviewSelect+`
		WHERE r.content_type = $1 AND r.content_id = $2
		ORDER BY r.created_at DESC, r.id DESC
		LIMIT $3 OFFSET $4`,
		ct, contentID, limit, offset,
	)
	reviews, err := collect[models.Review](rows, err)
	if err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}
