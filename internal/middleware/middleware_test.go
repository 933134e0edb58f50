package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/01moynul/fitshop-api/internal/auth"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(issuer *auth.TokenIssuer) *gin.Engine {
	r := gin.New()
	verifier := auth.NewService(nil, issuer, 0)
	r.GET("/me", AuthMiddleware(verifier), func(c *gin.Context) {
		claims, ok := ClaimsFrom(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"username": claims.Username, "site": claims.Site})
	})
	r.GET("/admin", AuthMiddleware(verifier), RequireRole("admin"), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func get(r http.Handler, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	issuer := auth.NewTokenIssuer([]byte("secret"), time.Hour)
	r := newRouter(issuer)

	token, err := issuer.GenerateToken(5, "kai", "user", "fit")
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"empty bearer", "Bearer ", http.StatusUnauthorized},
		{"bad token", "Bearer nope", http.StatusForbidden},
		{"valid", "Bearer " + token, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(r, "/me", tt.header)
			assert.Equal(t, tt.want, w.Code)
			if tt.want == http.StatusOK {
				assert.JSONEq(t, `{"username":"kai","site":"fit"}`, w.Body.String())
			} else {
				assert.Contains(t, w.Body.String(), `"error"`)
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	issuer := auth.NewTokenIssuer([]byte("secret"), time.Hour)
	r := newRouter(issuer)

	user, _ := issuer.GenerateToken(1, "u", "user", "fit")
	admin, _ := issuer.GenerateToken(2, "a", "admin", "fit")

	assert.Equal(t, http.StatusForbidden, get(r, "/admin", "Bearer "+user).Code)
	assert.Equal(t, http.StatusNoContent, get(r, "/admin", "Bearer "+admin).Code)
}

func TestRateLimit(t *testing.T) {
	r := gin.New()
	r.POST("/order-status", RateLimit(NewRateLimiter(0.001, 2)), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	send := func(ip string) int {
		req := httptest.NewRequest(http.MethodPost, "/order-status", nil)
		req.RemoteAddr = ip + ":1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, send("10.0.0.1"))
	assert.Equal(t, http.StatusOK, send("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, send("10.0.0.1"))
	assert.Equal(t, http.StatusOK, send("10.0.0.2"), "buckets are per IP")
}
