package db

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/vaughan-dsouza/blogly/internal/models"
)

// Deleting a user removes their posts; deleting a post or a tag removes only
// its posts_tags rows.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id         BIGSERIAL PRIMARY KEY,
		first_name TEXT NOT NULL,
		last_name  TEXT NOT NULL,
		image_url  TEXT NOT NULL DEFAULT '` + models.DefaultImageURL + `'
	)`,
	`CREATE TABLE IF NOT EXISTS posts (
		id         BIGSERIAL PRIMARY KEY,
		title      TEXT NOT NULL,
		content    TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		user_id    BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_posts_user_id ON posts(user_id)`,
	`CREATE TABLE IF NOT EXISTS tags (
		id   BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS posts_tags (
		post_id BIGINT NOT NULL REFERENCES posts(id) ON DELETE CASCADE,
		tag_id  BIGINT NOT NULL REFERENCES tags(id) ON DELETE CASCADE,
		PRIMARY KEY (post_id, tag_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_posts_tags_tag_id ON posts_tags(tag_id)`,
}

// EnsureSchema creates any missing tables. Existing tables are left alone.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("db: ensure schema: %w", err)
		}
	}
	return nil
}

// ResetSchema drops every table and recreates them empty.
func ResetSchema(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, `DROP TABLE IF EXISTS posts_tags, tags, posts, users`); err != nil {
		return fmt.Errorf("db: drop schema: %w", err)
	}
	return EnsureSchema(ctx, db)
}
