package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/01moynul/fitshop-api/internal/database"
	"github.com/01moynul/fitshop-api/internal/middleware"
	"github.com/01moynul/fitshop-api/internal/models"
	"github.com/gin-gonic/gin"
)

// PostInput is the editable part of a blog entry or article.
type PostInput struct {
	Title     string `json:"title" binding:"required,max=200"`
	Slug      string `json:"slug" binding:"omitempty,max=200"`
	Summary   string `json:"summary"`
	Body      string `json:"body" binding:"required"`
	Author    string `json:"author"`
	Published bool   `json:"published"`
}

// The post handlers are built per store so blogs and articles share them.

// ListPosts returns the published posts of ?site=.
func (h *Handlers) ListPosts(store PostStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		site := c.Query("site")
		if site == "" {
			badRequest(c, "site is required")
			return
		}

		posts, err := store.List(c.Request.Context(), site, true)
		if err != nil {
			log.Printf("ERROR: list posts for %s: %v", site, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
			return
		}
		c.JSON(http.StatusOK, posts)
	}
}

func (h *Handlers) GetPost(store PostStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		site := c.Query("site")
		if site == "" {
			badRequest(c, "site is required")
			return
		}

		post, err := store.GetBySlug(c.Request.Context(), site, c.Param("slug"))
		if errors.Is(err, database.ErrNotFound) || (err == nil && !post.Published) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}
		if err != nil {
			log.Printf("ERROR: get post %s: %v", c.Param("slug"), err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch post"})
			return
		}
		c.JSON(http.StatusOK, post)
	}
}

// CreatePost writes into the admin's own site.
func (h *Handlers) CreatePost(store PostStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, _ := middleware.ClaimsFrom(c)

		var input PostInput
		if !bindJSON(c, &input) {
			return
		}

		post := input.toPost(claims.Site)
		if err := store.Create(c.Request.Context(), post); err != nil {
			writePostError(c, err)
			return
		}
		c.JSON(http.StatusCreated, post)
	}
}

func (h *Handlers) UpdatePost(store PostStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, _ := middleware.ClaimsFrom(c)

		id, ok := postID(c)
		if !ok {
			return
		}
		var input PostInput
		if !bindJSON(c, &input) {
			return
		}

		post := input.toPost(claims.Site)
		post.ID = id
		if err := store.Update(c.Request.Context(), post); err != nil {
			writePostError(c, err)
			return
		}

		updated, err := store.GetByID(c.Request.Context(), claims.Site, id)
		if err != nil {
			writePostError(c, err)
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

func (h *Handlers) DeletePost(store PostStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, _ := middleware.ClaimsFrom(c)

		id, ok := postID(c)
		if !ok {
			return
		}
		if err := store.Delete(c.Request.Context(), claims.Site, id); err != nil {
			writePostError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully"})
	}
}

func (in PostInput) toPost(site string) *models.Post {
	return &models.Post{
		Site:      site,
		Title:     in.Title,
		Slug:      in.Slug,
		Summary:   in.Summary,
		Body:      in.Body,
		Author:    in.Author,
		Published: in.Published,
	}
}

func postID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		badRequest(c, "id must be a positive integer")
		return 0, false
	}
	return id, true
}

func writePostError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, database.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
	case errors.Is(err, database.ErrDuplicate):
		c.JSON(http.StatusBadRequest, gin.H{"error": "A post with this slug already exists"})
	default:
		log.Printf("ERROR: write post: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save post"})
	}
}
