package config

import "time"

// TestConfig returns a config suitable for testing
func TestConfig() *Config {
	cfg := defaultConfig()
	cfg.Database = DatabaseConfig{
		Path:    ":memory:", // callers swap in a temp file before opening
		Timeout: 1 * time.Second,
	}
	cfg.Catalog = CatalogConfig{}
	cfg.Search.KeywordIndex = true
	cfg.Log = LogConfig{Level: "error"}
	return cfg
}
