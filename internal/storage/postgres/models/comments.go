package models

import (
	"context"

	"kutuphanem/proj/internal/domain/models"
	"kutuphanem/proj/internal/storage/postgres"
)

type CommentModel struct {
	DB DBTX
}

// commentWithAuthor wraps a statement returning review_comments rows into a
// query that also yields the author's username and avatar.
func commentWithAuthor(stmt string) string {
	return `WITH c AS (` + stmt + `)
		SELECT c.id, c.review_id, c.user_id, c.comment_text, c.created_at, c.updated_at,
			u.username, u.avatar_url
		FROM c JOIN users u ON u.id = c.user_id`
}

func (m *CommentModel) Get(ctx context.Context, id int64) (*models.Comment, error) {
	rows, err := m.DB.Query(ctx, commentWithAuthor("SELECT * FROM review_comments WHERE id = $1"), id)
	return collectOne[models.Comment](rows, err)
}

func (m *CommentModel) Insert(ctx context.Context, reviewID, userID int64, text string) (*models.Comment, error) {
	rows, err := m.DB.Query(ctx, commentWithAuthor(`
		INSERT INTO review_comments (review_id, user_id, comment_text)
		VALUES ($1, $2, $3) RETURNING *`),
		reviewID, userID, text,
	)
	return collectOne[models.Comment](rows, err)
}

func (m *CommentModel) UpdateText(ctx context.Context, id int64, text string) (*models.Comment, error) {
	rows, err := m.DB.Query(ctx, commentWithAuthor(`
		UPDATE review_comments SET comment_text = $2, updated_at = NOW()
		WHERE id = $1 RETURNING *`),
		id, text,
	)
	return collectOne[models.Comment](rows, err)
}

// Delete returns the removed comment so callers can echo it back.
func (m *CommentModel) Delete(ctx context.Context, id int64) (*models.Comment, error) {
	rows, err := m.DB.Query(ctx, commentWithAuthor(
		"DELETE FROM review_comments WHERE id = $1 RETURNING *"),
		id,
	)
	return collectOne[models.Comment](rows, err)
}

// ListForReview returns one page of comments, oldest first, and the total.
func (m *CommentModel) ListForReview(ctx context.Context, reviewID int64, limit, offset int) ([]models.Comment, int64, error) {
	var total int64
	err := m.DB.QueryRow(ctx, "SELECT COUNT(*) FROM review_comments WHERE review_id = $1", reviewID).Scan(&total)
	if err != nil {
		return nil, 0, postgres.MapError(err)
	}
	rows, err := m.DB.Query(ctx, commentWithAuthor(`
		SELECT * FROM review_comments WHERE review_id = $1
		ORDER BY created_at, id LIMIT $2 OFFSET $3`)+`
		ORDER BY c.created_at, c.id`,
		reviewID, limit, offset,
	)
	comments, err := collect[models.Comment](rows, err)
	if err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}
