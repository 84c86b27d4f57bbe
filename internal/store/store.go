// Package store holds the repositories backing users, posts and tags.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"github.com/vaughan-dsouza/blogly/internal/models"
)

var (
	ErrNotFound     = errors.New("record not found")
	ErrDuplicateTag = errors.New("tag name already in use")
	ErrUnknownTag   = errors.New("unknown tag")
)

type UserRepository interface {
	List(ctx context.Context) ([]models.User, error)
	ByID(ctx context.Context, id int64) (*models.User, error)
	Create(ctx context.Context, u *models.User) error
	Update(ctx context.Context, u *models.User) error
	Delete(ctx context.Context, id int64) error
}

type PostRepository interface {
	ByID(ctx context.Context, id int64) (*models.Post, error)
	ListByUser(ctx context.Context, userID int64) ([]models.Post, error)
	ListByTag(ctx context.Context, tagID int64) ([]models.Post, error)
	// Create inserts p and links it to every named tag.
	Create(ctx context.Context, p *models.Post, tagNames []string) error
	// Update overwrites title and content and makes the linked tags exactly tagNames.
	Update(ctx context.Context, p *models.Post, tagNames []string) error
	// Delete removes the post and returns the id of the user who owned it.
	Delete(ctx context.Context, id int64) (int64, error)
}

type TagRepository interface {
	List(ctx context.Context) ([]models.Tag, error)
	ByID(ctx context.Context, id int64) (*models.Tag, error)
	ListByPost(ctx context.Context, postID int64) ([]models.Tag, error)
	Create(ctx context.Context, t *models.Tag) error
	Update(ctx context.Context, t *models.Tag) error
	Delete(ctx context.Context, id int64) error
}

// Store bundles the Postgres-backed repositories over one pool.
type Store struct {
	Users *UserStore
	Posts *PostStore
	Tags  *TagStore
}

func New(db *sqlx.DB, defaultImageURL string) *Store {
	return &Store{
		Users: NewUserStore(db, defaultImageURL),
		Posts: NewPostStore(db),
		Tags:  NewTagStore(db),
	}
}

// withTx runs fn inside a transaction, committing only if fn succeeds.
func withTx(ctx context.Context, db *sqlx.DB, fn func(tx *sqlx.Tx) error) (err error) {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// Postgres SQLSTATE codes we translate.
const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func affected(res sql.Result, err error) error {
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
