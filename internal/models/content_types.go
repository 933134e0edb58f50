package models

import "time"

// Post is a blog entry or an article. Both tables share this shape.
type Post struct {
	ID        int64     `json:"id" db:"id"`
	Site      string    `json:"site" db:"site"`
	Title     string    `json:"title" db:"title"`
	Slug      string    `json:"slug" db:"slug"`
	Summary   string    `json:"summary" db:"summary"`
	Body      string    `json:"body" db:"body"`
	Author    string    `json:"author" db:"author"`
	Published bool      `json:"published" db:"published"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
