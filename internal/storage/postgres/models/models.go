package models

import (
	"context"
	"fmt"
	"strings"

	"kutuphanem/proj/internal/domain/fields"
	"kutuphanem/proj/internal/storage/postgres"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DBTX is satisfied by both *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Models struct {
	User     *UserModel
	Movie    *MovieModel
	Book     *BookModel
	Rating   *RatingModel
	Review   *ReviewModel
	Comment  *CommentModel
	Follow   *FollowModel
	Like     *LikeModel
	List     *ListModel
	Activity *ActivityModel
}

func New(db *postgres.Storage) *Models {
	return &Models{
		User:     &UserModel{db.Conn},
		Movie:    &MovieModel{db.Conn},
		Book:     &BookModel{db.Conn},
		Rating:   &RatingModel{db.Conn},
		Review:   &ReviewModel{db.Conn},
		Comment:  &CommentModel{db.Conn},
		Follow:   &FollowModel{db.Conn},
		Like:     &LikeModel{db.Conn},
		List:     &ListModel{db.Conn},
		Activity: &ActivityModel{db.Conn},
	}
}

func contentTable(ct fields.ContentType) (string, error) {
	switch ct {
	case fields.ContentMovie:
		return "movies", nil
	case fields.ContentBook:
		return "books", nil
	}
	return "", fmt.Errorf("unknown content type %q", ct)
}

// lockContent takes a row lock on the cached content item so that aggregate
// recomputation for it is serialized.
func lockContent(ctx context.Context, tx pgx.Tx, ct fields.ContentType, contentID int64) error {
	table, err := contentTable(ct)
	if err != nil {
		return err
	}
	var id int64
	err = tx.QueryRow(ctx, "SELECT id FROM "+table+" WHERE id = $1 FOR UPDATE", contentID).Scan(&id)
	return postgres.MapError(err)
}

func collect[T any](rows pgx.Rows, err error) ([]T, error) {
	if err != nil {
		return nil, postgres.MapError(err)
	}
	items, err := pgx.CollectRows(rows, pgx.RowToStructByNameLax[T])
	if err != nil {
		return nil, postgres.MapError(err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func collectOne[T any](rows pgx.Rows, err error) (*T, error) {
	if err != nil {
		return nil, postgres.MapError(err)
	}
	item, err := pgx.CollectOneRow(rows, pgx.RowToStructByNameLax[T])
	if err != nil {
		return nil, postgres.MapError(err)
	}
	return &item, nil
}

// likePattern escapes LIKE metacharacters and wraps s for a substring match.
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}

var _ DBTX = (*pgxpool.Pool)(nil)
