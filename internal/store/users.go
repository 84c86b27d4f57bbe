package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/vaughan-dsouza/blogly/internal/models"
)

type UserStore struct {
	DB              *sqlx.DB
	DefaultImageURL string
}

func NewUserStore(db *sqlx.DB, defaultImageURL string) *UserStore {
	if defaultImageURL == "" {
		defaultImageURL = models.DefaultImageURL
	}
	return &UserStore{DB: db, DefaultImageURL: defaultImageURL}
}

func (s *UserStore) List(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	err := s.DB.SelectContext(ctx, &users, `
		SELECT id, first_name, last_name, image_url
		FROM users
		ORDER BY last_name, first_name, id
	`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *UserStore) ByID(ctx context.Context, id int64) (*models.User, error) {
	var u models.User
	err := s.DB.GetContext(ctx, &u, `
		SELECT id, first_name, last_name, image_url
		FROM users
		WHERE id=$1
	`, id)
	if err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (s *UserStore) Create(ctx context.Context, u *models.User) error {
	if u.ImageURL == "" {
		u.ImageURL = s.DefaultImageURL
	}
	err := s.DB.QueryRowxContext(ctx, `
		INSERT INTO users (first_name, last_name, image_url)
		VALUES ($1, $2, $3)
		RETURNING id
	`, u.FirstName, u.LastName, u.ImageURL).Scan(&u.ID)
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (s *UserStore) Update(ctx context.Context, u *models.User) error {
	if u.ImageURL == "" {
		u.ImageURL = s.DefaultImageURL
	}
	err := affected(s.DB.ExecContext(ctx, `
		UPDATE users
		SET first_name=$1, last_name=$2, image_url=$3
		WHERE id=$4
	`, u.FirstName, u.LastName, u.ImageURL, u.ID))
	if err != nil && err != ErrNotFound {
		return fmt.Errorf("update user %d: %w", u.ID, err)
	}
	return err
}

// Delete removes the user; their posts go with them via ON DELETE CASCADE.
func (s *UserStore) Delete(ctx context.Context, id int64) error {
	err := affected(s.DB.ExecContext(ctx, `DELETE FROM users WHERE id=$1`, id))
	if err != nil && err != ErrNotFound {
		return fmt.Errorf("delete user %d: %w", id, err)
	}
	return err
}
