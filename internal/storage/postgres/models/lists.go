package models

import (
	"context"

	"kutuphanem/proj/internal/domain/fields"
	"kutuphanem/proj/internal/domain/models"
	"kutuphanem/proj/internal/storage"
	"kutuphanem/proj/internal/storage/postgres"
)

type ListModel struct {
	DB DBTX
}

func (m *ListModel) AddItem(ctx context.Context, userID int64, ct fields.ContentType, contentID int64, lt fields.ListType) (*models.ListItem, error) {
	rows, err := m.DB.Query(ctx, `
		INSERT INTO user_lists (user_id, content_type, content_id, list_type)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, content_type, content_id, list_type, created_at`,
		userID, ct, contentID, lt,
	)
	return collectOne[models.ListItem](rows, err)
}

// RemoveItem is a no-op when the item is not in the list.
func (m *ListModel) RemoveItem(ctx context.Context, userID int64, ct fields.ContentType, contentID int64, lt fields.ListType) error {
	_, err := m.DB.Exec(ctx, `
		DELETE FROM user_lists
		WHERE user_id = $1 AND content_type = $2 AND content_id = $3 AND list_type = $4`,
		userID, ct, contentID, lt,
	)
	return postgres.MapError(err)
}

const contentJoin = `
	LEFT JOIN movies m ON x.content_type = 'movie' AND m.id = x.content_id
	LEFT JOIN books b ON x.content_type = 'book' AND b.id = x.content_id`

// Items returns one page of a fixed list, newest first, and the total.
func (m *ListModel) Items(ctx context.Context, userID int64, lt fields.ListType, limit, offset int) ([]models.ListItem, int64, error) {
	var total int64
	err := m.DB.QueryRow(ctx,
		"SELECT COUNT(*) FROM user_lists WHERE user_id = $1 AND list_type = $2",
		userID, lt,
	).Scan(&total)
	if err != nil {
		return nil, 0, postgres.MapError(err)
	}
	rows, err := m.DB.Query(ctx, `
		SELECT x.id, x.user_id, x.content_type, x.content_id, x.list_type, x.created_at,
			COALESCE(m.title, b.title) AS title,
			COALESCE(m.poster_url, b.cover_url) AS poster_url,
			COALESCE(to_char(m.release_date, 'YYYY-MM-DD'), b.published_date) AS release_date
		FROM user_lists x`+contentJoin+`
		WHERE x.user_id = $1 AND x.list_type = $2
		ORDER BY x.created_at DESC, x.id DESC
		LIMIT $3 OFFSET $4`,
		userID, lt, limit, offset,
	)
	items, err := collect[models.ListItem](rows, err)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

const customListColumns = "id, user_id, name, description, is_public, created_at, updated_at"

func (m *ListModel) CreateCustom(ctx context.Context, userID int64, name string, description *string, isPublic bool) (*models.CustomList, error) {
	rows, err := m.DB.Query(ctx, `
		INSERT INTO custom_lists (user_id, name, description, is_public)
		VALUES ($1, $2, $3, $4)
		RETURNING `+customListColumns,
		userID, name, description, isPublic,
	)
	return collectOne[models.CustomList](rows, err)
}

func (m *ListModel) GetCustom(ctx context.Context, id int64) (*models.CustomList, error) {
	rows, err := m.DB.Query(ctx, "SELECT "+customListColumns+" FROM custom_lists WHERE id = $1", id)
	return collectOne[models.CustomList](rows, err)
}

// CustomByUser lists a user's custom lists; private ones only when
// includePrivate is set.
func (m *ListModel) CustomByUser(ctx context.Context, userID int64, includePrivate bool) ([]models.CustomList, error) {
	rows, err := m.DB.Query(ctx, `
		SELECT `+customListColumns+` FROM custom_lists
		WHERE user_id = $1 AND (is_public OR $2)
		ORDER BY created_at DESC, id DESC`,
		userID, includePrivate,
	)
	return collect[models.CustomList](rows, err)
}

// UpdateCustom changes only the fields that are non-nil.
func (m *ListModel) UpdateCustom(ctx context.Context, id int64, name, description *string, isPublic *bool) (*models.CustomList, error) {
	rows, err := m.DB.Query(ctx, `
		UPDATE custom_lists SET
			name = COALESCE($2, name),
			description = COALESCE($3, description),
			is_public = COALESCE($4, is_public),
			updated_at = NOW()
		WHERE id = $1
		RETURNING `+customListColumns,
		id, name, description, isPublic,
	)
	return collectOne[models.CustomList](rows, err)
}

func (m *ListModel) DeleteCustom(ctx context.Context, id int64) error {
	tag, err := m.DB.Exec(ctx, "DELETE FROM custom_lists WHERE id = $1", id)
	if err != nil {
		return postgres.MapError(err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (m *ListModel) AddCustomItem(ctx context.Context, listID int64, ct fields.ContentType, contentID int64) (*models.CustomListItem, error) {
	rows, err := m.DB.Query(ctx, `
		INSERT INTO custom_list_items (custom_list_id, content_type, content_id)
		VALUES ($1, $2, $3)
		RETURNING id, custom_list_id, content_type, content_id, added_at`,
		listID, ct, contentID,
	)
	return collectOne[models.CustomListItem](rows, err)
}

func (m *ListModel) RemoveCustomItem(ctx context.Context, listID, itemID int64) error {
	tag, err := m.DB.Exec(ctx,
		"DELETE FROM custom_list_items WHERE custom_list_id = $1 AND id = $2",
		listID, itemID,
	)
	if err != nil {
		return postgres.MapError(err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (m *ListModel) CustomItems(ctx context.Context, listID int64) ([]models.CustomListItem, error) {
	rows, err := m.DB.Query(ctx, `
		SELECT x.id, x.custom_list_id, x.content_type, x.content_id, x.added_at,
			COALESCE(m.title, b.title) AS title,
			COALESCE(m.poster_url, b.cover_url) AS poster_url
		FROM custom_list_items x`+contentJoin+`
		WHERE x.custom_list_id = $1
		ORDER BY x.added_at DESC, x.id DESC`,
		listID,
	)
	return collect[models.CustomListItem](rows, err)
}
