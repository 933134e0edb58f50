// Package config loads process configuration from the environment and the
// per-store YAML file. Everything here is read-only once Load returns.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// ErrMissingSetting is returned when a required variable is not set.
var ErrMissingSetting = errors.New("required setting missing")

// Config holds the settings consumed at startup.
type Config struct {
	Port              string
	CORSAllowedOrigin string
	// TrustedProxies may set X-Forwarded-For. Empty means the peer address is the client.
	TrustedProxies []string

	DBDriver string
	DBDSN    string

	JWTSecret  []byte
	JWTTTL     time.Duration
	BcryptCost int

	PrintifyAPIKey  string
	PrintifyBaseURL string
	HTTPTimeout     time.Duration

	StatusRateLimit float64
	StatusBurst     int

	Stores *Stores
}

// Load reads the optional .env file, then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("WARNING: Could not find or load .env file. Relying on system environment variables.")
	}

	cfg := &Config{
		Port:              getenv("PORT", "8080"),
		CORSAllowedOrigin: getenv("CORS_ALLOWED_ORIGIN", "http://localhost:5173"),
		DBDriver:          getenv("DB_DRIVER", "mysql"),
		DBDSN:             os.Getenv("DB_DSN"),
		JWTSecret:         []byte(os.Getenv("JWT_SECRET")),
		PrintifyAPIKey:    os.Getenv("PRINTIFY_API_KEY"),
		PrintifyBaseURL:   getenv("PRINTIFY_BASE_URL", "https://api.printify.com"),
		TrustedProxies:    getenvList("TRUSTED_PROXIES"),
	}

	for key, val := range map[string]string{
		"DB_DSN":           cfg.DBDSN,
		"JWT_SECRET":       string(cfg.JWTSecret),
		"PRINTIFY_API_KEY": cfg.PrintifyAPIKey,
	} {
		if val == "" {
			return nil, fmt.Errorf("%w: %s", ErrMissingSetting, key)
		}
	}

	var err error
	if cfg.JWTTTL, err = getenvDuration("JWT_TTL", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", 15*time.Second); err != nil {
		return nil, err
	}
	if cfg.BcryptCost, err = getenvInt("BCRYPT_COST", bcrypt.DefaultCost); err != nil {
		return nil, err
	}
	if cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost {
		return nil, fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	if cfg.StatusBurst, err = getenvInt("ORDER_STATUS_BURST", 10); err != nil {
		return nil, err
	}
	rps, err := getenvInt("ORDER_STATUS_RATE", 1)
	if err != nil {
		return nil, err
	}
	cfg.StatusRateLimit = float64(rps)

	cfg.Stores = &Stores{}
	if path := os.Getenv("STORES_CONFIG"); path != "" {
		if cfg.Stores, err = LoadStores(path); err != nil {
			return nil, err
		}
	} else {
		log.Println("WARNING: STORES_CONFIG is not set. Confirmation emails and payments are disabled.")
	}

	return cfg, nil
}

func getenv(key, d string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return d
}

// getenvList splits a comma-separated variable, dropping empty entries.
func getenvList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getenvInt(key string, d int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return d, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return i, nil
}

func getenvDuration(key string, d time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return d, nil
	}
	dur, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return dur, nil
}
