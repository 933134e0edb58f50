package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/01moynul/fitshop-api/internal/models"
	"github.com/gosimple/slug"
	"github.com/jmoiron/sqlx"
)

const postColumns = "id, site, title, slug, summary, body, author, published, created_at, updated_at"

// PostStore serves the blogs and articles tables, which share one shape.
type PostStore struct {
	DB    *sqlx.DB
	table string
}

func NewBlogStore(db *sqlx.DB) *PostStore {
	return &PostStore{DB: db, table: "blogs"}
}

func NewArticleStore(db *sqlx.DB) *PostStore {
	return &PostStore{DB: db, table: "articles"}
}

// List returns a site's posts, newest first.
func (s *PostStore) List(ctx context.Context, site string, publishedOnly bool) ([]models.Post, error) {
	query := "SELECT " + postColumns + " FROM " + s.table + " WHERE site = ?"
	args := []interface{}{site}
	if publishedOnly {
		query += " AND published = ?"
		args = append(args, true)
	}
	query += " ORDER BY created_at DESC, id DESC"

	posts := []models.Post{}
	if err := s.DB.SelectContext(ctx, &posts, query, args...); err != nil {
		return nil, fmt.Errorf("list %s: %w", s.table, err)
	}
	return posts, nil
}

func (s *PostStore) GetBySlug(ctx context.Context, site, postSlug string) (*models.Post, error) {
	var p models.Post
	query := "SELECT " + postColumns + " FROM " + s.table + " WHERE site = ? AND slug = ?"
	if err := s.DB.GetContext(ctx, &p, query, site, postSlug); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get %s: %w", s.table, err)
	}
	return &p, nil
}

func (s *PostStore) GetByID(ctx context.Context, site string, id int64) (*models.Post, error) {
	var p models.Post
	query := "SELECT " + postColumns + " FROM " + s.table + " WHERE site = ? AND id = ?"
	if err := s.DB.GetContext(ctx, &p, query, site, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get %s: %w", s.table, err)
	}
	return &p, nil
}

// Create derives the slug from the title when none is given.
func (s *PostStore) Create(ctx context.Context, p *models.Post) error {
	if p.Slug == "" {
		p.Slug = slug.Make(p.Title)
	}
	now := time.Now().UTC()
	p.CreatedAt, p.UpdatedAt = now, now

	query := "INSERT INTO " + s.table + `
		(site, title, slug, summary, body, author, published, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := s.DB.ExecContext(ctx, query,
		p.Site, p.Title, p.Slug, p.Summary, p.Body, p.Author, p.Published, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		if IsDuplicate(err) {
			return fmt.Errorf("create %s: %w", s.table, ErrDuplicate)
		}
		return fmt.Errorf("create %s: %w", s.table, err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("create %s: %w", s.table, err)
	}
	p.ID = id
	return nil
}

// Update overwrites the editable fields of the post identified by p.ID within p.Site.
func (s *PostStore) Update(ctx context.Context, p *models.Post) error {
	if p.Slug == "" {
		p.Slug = slug.Make(p.Title)
	}
	p.UpdatedAt = time.Now().UTC()

	query := "UPDATE " + s.table + `
		SET title = ?, slug = ?, summary = ?, body = ?, author = ?, published = ?, updated_at = ?
		WHERE id = ? AND site = ?`

	result, err := s.DB.ExecContext(ctx, query,
		p.Title, p.Slug, p.Summary, p.Body, p.Author, p.Published, p.UpdatedAt, p.ID, p.Site)
	if err != nil {
		if IsDuplicate(err) {
			return fmt.Errorf("update %s: %w", s.table, ErrDuplicate)
		}
		return fmt.Errorf("update %s: %w", s.table, err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostStore) Delete(ctx context.Context, site string, id int64) error {
	result, err := s.DB.ExecContext(ctx, "DELETE FROM "+s.table+" WHERE id = ? AND site = ?", id, site)
	if err != nil {
		return fmt.Errorf("delete %s: %w", s.table, err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
