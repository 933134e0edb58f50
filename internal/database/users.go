package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/01moynul/fitshop-api/internal/models"
	"github.com/jmoiron/sqlx"
)

// UserStore is the credential store. Every lookup is scoped to a site.
type UserStore struct {
	DB *sqlx.DB
}

func NewUserStore(db *sqlx.DB) *UserStore {
	return &UserStore{DB: db}
}

// Create inserts the user and sets its ID. A (username, site) or (email, site)
// collision returns an error wrapping ErrDuplicate.
func (s *UserStore) Create(ctx context.Context, q Querier, u *models.User) error {
	query := `
		INSERT INTO users (username, email, role, site, password_hash, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`

	result, err := pick(s.DB, q).ExecContext(ctx, query,
		u.Username, strings.ToLower(u.Email), u.Role, u.Site, u.PasswordHash, u.CreatedAt)
	if err != nil {
		if IsDuplicate(err) {
			return fmt.Errorf("create user: %w", ErrDuplicate)
		}
		return fmt.Errorf("create user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	u.ID = id
	u.Email = strings.ToLower(u.Email)
	return nil
}

// FindByUsername returns the user including its password hash.
func (s *UserStore) FindByUsername(ctx context.Context, q Querier, username, site string) (*models.User, error) {
	var u models.User
	query := `
		SELECT id, username, email, role, site, password_hash, created_at
		FROM users
		WHERE username = ? AND site = ?`

	if err := pick(s.DB, q).GetContext(ctx, &u, query, username, site); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &u, nil
}
