package models

import (
	"context"
	"errors"
	"time"

	"kutuphanem/proj/internal/domain/models"
	"kutuphanem/proj/internal/storage"
	"kutuphanem/proj/internal/storage/postgres"

	"github.com/jackc/pgx/v5/pgconn"
)

type UserModel struct {
	DB DBTX
}

const userColumns = "id, username, email, password_hash, avatar_url, bio, created_at, updated_at"

func (m *UserModel) Insert(ctx context.Context, username, email string, passwordHash []byte) (*models.User, error) {
	rows, err := m.DB.Query(
		ctx,
		`INSERT INTO users (username, email, password_hash) VALUES ($1, $2, $3)
		RETURNING `+userColumns,
		username, email, passwordHash,
	)
	user, err := collectOne[models.User](rows, err)
	if err != nil {
		return nil, userConflict(err)
	}
	return user, nil
}

// userConflict narrows a unique violation down to the column that caused it.
func userConflict(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == postgres.ErrConflictCode {
		if pgErr.ConstraintName == "users_username_key" {
			return storage.ErrUsernameTaken
		}
		return storage.ErrEmailTaken
	}
	return postgres.MapError(err)
}

func (m *UserModel) GetByID(ctx context.Context, id int64) (*models.User, error) {
	rows, err := m.DB.Query(ctx, "SELECT "+userColumns+" FROM users WHERE id = $1", id)
	return collectOne[models.User](rows, err)
}

func (m *UserModel) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	rows, err := m.DB.Query(ctx, "SELECT "+userColumns+" FROM users WHERE LOWER(email) = LOWER($1)", email)
	return collectOne[models.User](rows, err)
}

// GetProfile returns the user with follower and activity counters.
func (m *UserModel) GetProfile(ctx context.Context, id int64) (*models.Profile, error) {
	var p models.Profile
	err := m.DB.QueryRow(ctx, `
		SELECT u.id, u.username, u.email, u.avatar_url, u.bio, u.created_at,
			(SELECT COUNT(*) FROM ratings WHERE user_id = u.id),
			(SELECT COUNT(*) FROM reviews WHERE user_id = u.id),
			(SELECT COUNT(*) FROM follows WHERE follower_id = u.id),
			(SELECT COUNT(*) FROM follows WHERE following_id = u.id)
		FROM users u WHERE u.id = $1`, id,
	).Scan(
		&p.ID, &p.Username, &p.Email, &p.AvatarURL, &p.Bio, &p.CreatedAt,
		&p.Stats.TotalRatings, &p.Stats.TotalReviews, &p.Stats.FollowingCount, &p.Stats.FollowersCount,
	)
	if err != nil {
		return nil, postgres.MapError(err)
	}
	return &p, nil
}

// Update changes only the fields that are non-nil. An empty string clears
// the field.
func (m *UserModel) Update(ctx context.Context, id int64, avatarURL, bio *string) (*models.User, error) {
	rows, err := m.DB.Query(ctx, `
		UPDATE users SET
			avatar_url = CASE WHEN $2::text IS NULL THEN avatar_url ELSE NULLIF($2, '') END,
			bio = CASE WHEN $3::text IS NULL THEN bio ELSE NULLIF($3, '') END,
			updated_at = NOW()
		WHERE id = $1
		RETURNING `+userColumns,
		id, avatarURL, bio,
	)
	return collectOne[models.User](rows, err)
}

// SetAvatar stores a new avatar URL and returns the one it replaced.
func (m *UserModel) SetAvatar(ctx context.Context, id int64, avatarURL string) (previous *string, err error) {
	err = m.DB.QueryRow(ctx, `
		UPDATE users u SET avatar_url = $2, updated_at = NOW()
		FROM (SELECT id, avatar_url FROM users WHERE id = $1 FOR UPDATE) old
		WHERE u.id = old.id
		RETURNING old.avatar_url`,
		id, avatarURL,
	).Scan(&previous)
	if err != nil {
		return nil, postgres.MapError(err)
	}
	return previous, nil
}

func (m *UserModel) Search(ctx context.Context, query string, limit int) ([]models.UserSummary, error) {
	rows, err := m.DB.Query(ctx, `
		SELECT u.id, u.username, u.avatar_url, u.bio,
			(SELECT COUNT(*) FROM ratings WHERE user_id = u.id) AS total_ratings,
			(SELECT COUNT(*) FROM reviews WHERE user_id = u.id) AS total_reviews,
			(SELECT COUNT(*) FROM follows WHERE following_id = u.id) AS followers_count
		FROM users u
		WHERE u.username ILIKE $1
		ORDER BY u.username
		LIMIT $2`,
		likePattern(query), limit,
	)
	return collect[models.UserSummary](rows, err)
}

func (m *UserModel) SetResetToken(ctx context.Context, id int64, tokenHash string, expires time.Time) error {
	tag, err := m.DB.Exec(ctx,
		"UPDATE users SET reset_token = $2, reset_token_expires = $3 WHERE id = $1",
		id, tokenHash, expires,
	)
	if err != nil {
		return postgres.MapError(err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// ResetPassword consumes an unexpired reset token and sets the new hash in a
// single statement, so a token can be used at most once.
func (m *UserModel) ResetPassword(ctx context.Context, tokenHash string, passwordHash []byte) error {
	tag, err := m.DB.Exec(ctx, `
		UPDATE users SET
			password_hash = $2,
			reset_token = NULL,
			reset_token_expires = NULL,
			updated_at = NOW()
		WHERE reset_token = $1 AND reset_token_expires > NOW()`,
		tokenHash, passwordHash,
	)
	if err != nil {
		return postgres.MapError(err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
