package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/01moynul/fitshop-api/internal/auth"
	"github.com/01moynul/fitshop-api/internal/middleware"
	"github.com/gin-gonic/gin"
)

// RegisterInput is the registration body. The user can never pick a role.
type RegisterInput struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	Email    string `json:"email" binding:"required,email"`
	Site     string `json:"site" binding:"required"`
}

// maxPasswordBytes is bcrypt's input limit. The max tag counts runes, not bytes.
const maxPasswordBytes = 72

type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Site     string `json:"site" binding:"required"`
}

// --- User Registration ---
func (h *Handlers) Register(c *gin.Context) {
	// 1. --- Bind & Validate JSON ---
	var input RegisterInput
	if !bindJSON(c, &input) {
		return
	}
	if len(input.Password) > maxPasswordBytes {
		badRequest(c, "password must be at most 72 bytes")
		return
	}

	// 2. --- Create User ---
	user, err := h.Auth.Register(c.Request.Context(), input.Username, input.Password, input.Email, input.Site)
	if err != nil {
		if errors.Is(err, auth.ErrDuplicateUser) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username or email already exists for this site"})
			return
		}
		log.Printf("ERROR: register %q on %q: %v", input.Username, input.Site, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register user"})
		return
	}

	// 3. --- Send Success Response ---
	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"user":    user,
	})
}

// --- User Login ---
func (h *Handlers) Login(c *gin.Context) {
	var input LoginInput
	if !bindJSON(c, &input) {
		return
	}

	result, err := h.Auth.Authenticate(c.Request.Context(), input.Username, input.Password, input.Site)
	if err != nil {
		log.Printf("ERROR: login %q on %q: %v", input.Username, input.Site, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log in"})
		return
	}
	if result == nil {
		// Same message for unknown user and wrong password.
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": result.Token, "user": result.User})
}

// Me returns the claims of the caller's token.
func (h *Handlers) Me(c *gin.Context) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": gin.H{
		"id":       claims.ID,
		"username": claims.Username,
		"role":     claims.Role,
		"site":     claims.Site,
	}})
}
