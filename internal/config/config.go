package config

import (
	"errors"
	"os"
)

type Config struct {
	Env      string
	Addr     string
	DBType   string
	DBDSN    string
	FileData string
	// AuthToken is the accepted token for the local (development) auth
	// provider. AuthURL is the identity service endpoint used outside
	// development.
	AuthToken string
	AuthURL   string
	// StrictClients controls whether creating an already-existing client
	// is a conflict (true) or an idempotent no-op (false).
	StrictClients bool
}

func Load() (*Config, error) {
	_ = loadDotEnv()
	cfg := &Config{
		Env:           getEnv("APP_ENV", "development"),
		Addr:          getEnv("LISTEN_ADDR", ":8088"),
		DBType:        getEnv("STORAGE_BACKEND", "file"),
		DBDSN:         getEnv("POSTGRES_DSN", ""),
		FileData:      getEnv("ENTRIES_FILE", "data/time_entries.json"),
		AuthToken:     getEnv("AUTH_TOKEN", "MOCK-TOKEN"),
		AuthURL:       getEnv("AUTH_SERVICE_URL", ""),
		StrictClients: getEnv("STRICT_CLIENTS", "true") != "false",
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.DBType == "postgres" && c.DBDSN == "" {
		return errors.New("POSTGRES_DSN is required when STORAGE_BACKEND=postgres")
	}
	if c.DBType == "file" && c.FileData == "" {
		return errors.New("File storage requires ENTRIES_FILE to be set")
	}
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return errors.New("APP_ENV must be one of: development, staging, production")
	}
	if c.Env != "development" && c.AuthURL == "" {
		return errors.New("AUTH_SERVICE_URL is required outside development")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func loadDotEnv() error {
	if _, err := os.Stat(".env"); err != nil {
		return nil
	}
	data, err := os.ReadFile(".env")
	if err != nil {
		return err
	}
	for _, l := range splitLines(string(data)) {
		if len(l) == 0 || l[0] == '#' {
			continue
		}
		kv := splitKV(l)
		if len(kv) == 2 {
			os.Setenv(kv[0], kv[1])
		}
	}
	return nil
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i, c := range s {
		if c == '\n' || c == '\r' {
			if i > start {
				lines = append(lines, s[start:i])
			}
			start = i + 1
		}
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}

func splitKV(s string) []string {
	for i, c := range s {
		if c == '=' {
			return []string{s[:i], s[i+1:]}
		}
	}
	return nil
}
