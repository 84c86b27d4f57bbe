package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/vaughan-dsouza/blogly/internal/models"
)

type PostStore struct {
	DB *sqlx.DB
}

func NewPostStore(db *sqlx.DB) *PostStore {
	return &PostStore{DB: db}
}

// ---------------------- READ ----------------------

func (s *PostStore) ByID(ctx context.Context, id int64) (*models.Post, error) {
	var p models.Post
	err := s.DB.GetContext(ctx, &p, `
		SELECT id, user_id, title, content, created_at
		FROM posts
		WHERE id=$1
	`, id)
	if err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func (s *PostStore) ListByUser(ctx context.Context, userID int64) ([]models.Post, error) {
	posts := []models.Post{}
	err := s.DB.SelectContext(ctx, &posts, `
		SELECT id, user_id, title, content, created_at
		FROM posts
		WHERE user_id=$1
		ORDER BY created_at DESC, id DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("posts for user %d: %w", userID, err)
	}
	return posts, nil
}

func (s *PostStore) ListByTag(ctx context.Context, tagID int64) ([]models.Post, error) {
	posts := []models.Post{}
	err := s.DB.SelectContext(ctx, &posts, `
		SELECT p.id, p.user_id, p.title, p.content, p.created_at
		FROM posts p
		JOIN posts_tags pt ON pt.post_id = p.id
		WHERE pt.tag_id=$1
		ORDER BY p.created_at DESC, p.id DESC
	`, tagID)
	if err != nil {
		return nil, fmt.Errorf("posts for tag %d: %w", tagID, err)
	}
	return posts, nil
}

// ---------------------- CREATE ----------------------

func (s *PostStore) Create(ctx context.Context, p *models.Post, tagNames []string) error {
	return withTx(ctx, s.DB, func(tx *sqlx.Tx) error {
		tags, err := tagsByName(ctx, tx, Dedupe(tagNames))
		if err != nil {
			return err
		}

		err = tx.QueryRowxContext(ctx, `
			INSERT INTO posts (user_id, title, content)
			VALUES ($1, $2, $3)
			RETURNING id, created_at
		`, p.UserID, p.Title, p.Content).Scan(&p.ID, &p.CreatedAt)
		if pgCode(err) == foreignKeyViolation {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("create post: %w", err)
		}

		return linkTags(ctx, tx, p.ID, tags)
	})
}

// ---------------------- UPDATE ----------------------

func (s *PostStore) Update(ctx context.Context, p *models.Post, tagNames []string) error {
	return withTx(ctx, s.DB, func(tx *sqlx.Tx) error {
		var userID int64
		err := tx.GetContext(ctx, &userID, `SELECT user_id FROM posts WHERE id=$1 FOR UPDATE`, p.ID)
		if err != nil {
			return notFound(err)
		}
		p.UserID = userID

		current, err := tagsForPost(ctx, tx, p.ID)
		if err != nil {
			return err
		}
		currentIDs := make(map[string]int64, len(current))
		currentNames := make([]string, 0, len(current))
		for _, t := range current {
			currentIDs[t.Name] = t.ID
			currentNames = append(currentNames, t.Name)
		}

		unlink, link := ReconcileTags(currentNames, tagNames)

		// resolve before writing anything
		added, err := tagsByName(ctx, tx, link)
		if err != nil {
			return err
		}

		err = tx.QueryRowxContext(ctx, `
			UPDATE posts SET title=$1, content=$2
			WHERE id=$3
			RETURNING created_at
		`, p.Title, p.Content, p.ID).Scan(&p.CreatedAt)
		if err != nil {
			return fmt.Errorf("update post %d: %w", p.ID, err)
		}

		for _, name := range unlink {
			_, err := tx.ExecContext(ctx, `
				DELETE FROM posts_tags WHERE post_id=$1 AND tag_id=$2
			`, p.ID, currentIDs[name])
			if err != nil {
				return fmt.Errorf("unlink tag %q: %w", name, err)
			}
		}

		return linkTags(ctx, tx, p.ID, added)
	})
}

// ---------------------- DELETE ----------------------

// Delete removes the post and its posts_tags rows. Tags are untouched.
func (s *PostStore) Delete(ctx context.Context, id int64) (int64, error) {
	var userID int64
	err := s.DB.QueryRowxContext(ctx, `DELETE FROM posts WHERE id=$1 RETURNING user_id`, id).Scan(&userID)
	if err != nil {
		if err = notFound(err); err == ErrNotFound {
			return 0, err
		}
		return 0, fmt.Errorf("delete post %d: %w", id, err)
	}
	return userID, nil
}

func linkTags(ctx context.Context, tx *sqlx.Tx, postID int64, tags []models.Tag) error {
	for _, t := range tags {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO posts_tags (post_id, tag_id)
			VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, postID, t.ID)
		if err != nil {
			return fmt.Errorf("link tag %q: %w", t.Name, err)
		}
	}
	return nil
}
