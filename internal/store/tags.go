package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/vaughan-dsouza/blogly/internal/models"
)

type TagStore struct {
	DB *sqlx.DB
}

func NewTagStore(db *sqlx.DB) *TagStore {
	return &TagStore{DB: db}
}

func (s *TagStore) List(ctx context.Context) ([]models.Tag, error) {
	tags := []models.Tag{}
	if err := s.DB.SelectContext(ctx, &tags, `SELECT id, name FROM tags ORDER BY name`); err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return tags, nil
}

func (s *TagStore) ByID(ctx context.Context, id int64) (*models.Tag, error) {
	var t models.Tag
	if err := s.DB.GetContext(ctx, &t, `SELECT id, name FROM tags WHERE id=$1`, id); err != nil {
		return nil, notFound(err)
	}
	return &t, nil
}

func (s *TagStore) ListByPost(ctx context.Context, postID int64) ([]models.Tag, error) {
	return tagsForPost(ctx, s.DB, postID)
}

func (s *TagStore) Create(ctx context.Context, t *models.Tag) error {
	err := s.DB.QueryRowxContext(ctx, `
		INSERT INTO tags (name) VALUES ($1) RETURNING id
	`, t.Name).Scan(&t.ID)
	if pgCode(err) == uniqueViolation {
		return fmt.Errorf("%w: %q", ErrDuplicateTag, t.Name)
	}
	if err != nil {
		return fmt.Errorf("create tag: %w", err)
	}
	return nil
}

func (s *TagStore) Update(ctx context.Context, t *models.Tag) error {
	err := affected(s.DB.ExecContext(ctx, `UPDATE tags SET name=$1 WHERE id=$2`, t.Name, t.ID))
	switch {
	case err == nil, err == ErrNotFound:
		return err
	case pgCode(err) == uniqueViolation:
		return fmt.Errorf("%w: %q", ErrDuplicateTag, t.Name)
	default:
		return fmt.Errorf("update tag %d: %w", t.ID, err)
	}
}

// Delete removes the tag and its posts_tags rows. Posts are untouched.
func (s *TagStore) Delete(ctx context.Context, id int64) error {
	err := affected(s.DB.ExecContext(ctx, `DELETE FROM tags WHERE id=$1`, id))
	if err != nil && err != ErrNotFound {
		return fmt.Errorf("delete tag %d: %w", id, err)
	}
	return err
}

func tagsForPost(ctx context.Context, q sqlx.QueryerContext, postID int64) ([]models.Tag, error) {
	tags := []models.Tag{}
	err := sqlx.SelectContext(ctx, q, &tags, `
		SELECT t.id, t.name
		FROM tags t
		JOIN posts_tags pt ON pt.tag_id = t.id
		WHERE pt.post_id=$1
		ORDER BY t.name
	`, postID)
	if err != nil {
		return nil, fmt.Errorf("tags for post %d: %w", postID, err)
	}
	return tags, nil
}

// tagsByName resolves every name to its tag, failing with ErrUnknownTag on the
// first name that has no row.
func tagsByName(ctx context.Context, tx *sqlx.Tx, names []string) ([]models.Tag, error) {
	if len(names) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(`SELECT id, name FROM tags WHERE name IN (?)`, names)
	if err != nil {
		return nil, err
	}
	var tags []models.Tag
	if err := tx.SelectContext(ctx, &tags, tx.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("resolve tags: %w", err)
	}

	found := make(map[string]bool, len(tags))
	for _, t := range tags {
		found[t.Name] = true
	}
	for _, name := range names {
		if !found[name] {
			return nil, fmt.Errorf("%w: %q", ErrUnknownTag, name)
		}
	}
	return tags, nil
}
