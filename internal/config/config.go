package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config carries the hosting-layer settings. The survey core takes no
// configuration beyond the catalog and the per-session limit policy.
type Config struct {
	Addr        string // listen address
	Env         string // "development" or "production", selects logger
	CatalogPath string // optional YAML catalog; built-in catalog when empty
	StaticDir   string // optional frontend bundle to serve at /
}

// Load reads configuration from the environment, after best-effort loading
// of a local .env file.
func Load() *Config {
	_ = godotenv.Load()
	return &Config{
		Addr:        getEnv("SEVENQ_ADDR", ":8080"),
		Env:         getEnv("SEVENQ_ENV", "development"),
		CatalogPath: getEnv("SEVENQ_CATALOG", ""),
		StaticDir:   getEnv("SEVENQ_STATIC_DIR", ""),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
