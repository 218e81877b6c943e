package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mrevanzak/memovox/models"
)

// InsertUser stores a user in the database
func (s *db) InsertUser(ctx context.Context, user models.User) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO users (id, email, display_name, is_shadow) VALUES (?, ?, ?, ?)",
		user.ID, user.Email, user.DisplayName, user.IsShadow,
	)
	if err != nil {
		return fmt.Errorf("failed to insert user: %v", err)
	}
	return nil
}

// GetUser retrieves a user by id
func (s *db) GetUser(ctx context.Context, id string) (*models.User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx,
		"SELECT id, email, display_name, is_shadow, created_at FROM users WHERE id = ?", id))
}

// FindUserByDisplayName retrieves a user whose display name exactly matches
func (s *db) FindUserByDisplayName(ctx context.Context, name string) (*models.User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx,
		"SELECT id, email, display_name, is_shadow, created_at FROM users WHERE display_name = ? LIMIT 1", name))
}

// FindUserByEmail retrieves a user by email
func (s *db) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx,
		"SELECT id, email, display_name, is_shadow, created_at FROM users WHERE email = ?", email))
}

func (s *db) scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(&user.ID, &user.Email, &user.DisplayName, &user.IsShadow, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}
