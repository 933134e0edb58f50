package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// SMTPConfig is a store's outgoing mail account.
type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}

// StoreConfig is the per-tenant configuration keyed by store id.
type StoreConfig struct {
	DisplayName     string     `yaml:"display_name"`
	FrontendURL     string     `yaml:"frontend_url"`
	SMTP            SMTPConfig `yaml:"smtp"`
	StripeSecretKey string     `yaml:"stripe_secret_key"`
}

// StoreLookup resolves a store id to its configuration.
type StoreLookup interface {
	Store(id string) (StoreConfig, bool)
}

// Stores is the read-only StoreLookup built at startup.
type Stores struct {
	byID map[string]StoreConfig
}

// NewStores builds a lookup from an in-memory map. The map is copied.
func NewStores(m map[string]StoreConfig) *Stores {
	byID := make(map[string]StoreConfig, len(m))
	for k, v := range m {
		byID[k] = v
	}
	return &Stores{byID: byID}
}

// LoadStores parses a YAML file of the form
//
//	stores:
//	  "12345":
//	    display_name: Fit Shop
//	    frontend_url: https://shop.example.com
//	    smtp: {host: smtp.example.com, port: 587, username: u, password: p, from: orders@example.com}
//	    stripe_secret_key: sk_live_...
func LoadStores(path string) (*Stores, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read stores config: %w", err)
	}
	return ParseStores(data)
}

// ParseStores parses the YAML document described on LoadStores.
func ParseStores(data []byte) (*Stores, error) {
	var doc struct {
		Stores map[string]StoreConfig `yaml:"stores"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse stores config: %w", err)
	}
	return NewStores(doc.Stores), nil
}

func (s *Stores) Store(id string) (StoreConfig, bool) {
	if s == nil || s.byID == nil {
		return StoreConfig{}, false
	}
	cfg, ok := s.byID[id]
	return cfg, ok
}
