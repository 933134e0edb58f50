package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const storesYAML = `
stores:
  "shop-1":
    display_name: Fit Shop
    frontend_url: https://shop.example.com
    smtp:
      host: smtp.example.com
      port: 587
      username: mailer
      password: secret
      from: orders@example.com
    stripe_secret_key: sk_test_123
`

func TestParseStores(t *testing.T) {
	stores, err := ParseStores([]byte(storesYAML))
	require.NoError(t, err)

	cfg, ok := stores.Store("shop-1")
	require.True(t, ok)
	assert.Equal(t, "Fit Shop", cfg.DisplayName)
	assert.Equal(t, 587, cfg.SMTP.Port)
	assert.Equal(t, "orders@example.com", cfg.SMTP.From)
	assert.Equal(t, "sk_test_123", cfg.StripeSecretKey)

	_, ok = stores.Store("missing")
	assert.False(t, ok)
}

func TestNilStoresLookup(t *testing.T) {
	var s *Stores
	_, ok := s.Store("any")
	assert.False(t, ok)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stores.yaml")
	require.NoError(t, os.WriteFile(path, []byte(storesYAML), 0o600))

	t.Setenv("DB_DSN", "file::memory:")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("PRINTIFY_API_KEY", "key")
	t.Setenv("JWT_TTL", "2h")
	t.Setenv("BCRYPT_COST", "")
	t.Setenv("STORES_CONFIG", path)
	t.Setenv("TRUSTED_PROXIES", " 10.0.0.1, ,192.168.0.0/16 ")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 2*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, "mysql", cfg.DBDriver)
	assert.Equal(t, []string{"10.0.0.1", "192.168.0.0/16"}, cfg.TrustedProxies)
	_, ok := cfg.Stores.Store("shop-1")
	assert.True(t, ok)
}

func TestLoadMissingSecret(t *testing.T) {
	t.Setenv("DB_DSN", "dsn")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("PRINTIFY_API_KEY", "key")

	_, err := Load()
	assert.ErrorIs(t, err, ErrMissingSetting)
}

func TestLoadRejectsBadCost(t *testing.T) {
	t.Setenv("DB_DSN", "dsn")
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("PRINTIFY_API_KEY", "key")
	t.Setenv("BCRYPT_COST", "99")
	t.Setenv("STORES_CONFIG", "")

	_, err := Load()
	assert.Error(t, err)
}
