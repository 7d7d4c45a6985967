package config

import (
	"os"
	"strconv"
)

// Store backends. Supabase's REST interface is the default; postgres talks
// to the same schema directly for self-hosted deployments.
const (
	BackendSupabase = "supabase"
	BackendPostgres = "postgres"
)

type Config struct {
	Env        string
	ListenAddr string
	BaseURL    string

	StoreBackend       string
	SupabaseURL        string
	SupabaseServiceKey string
	DatabaseURL        string

	// "fallback" serves the hard-coded experiment set when the store is
	// unreachable; "empty" shows an honest empty grid.
	CatalogOnUnavailable string

	RabbitURL string

	MailHost string
	MailPort int
	MailUser string
	MailPass string
	MailFrom string
}

func Load() Config {
	return Config{
		Env:        getEnv("APP_ENV", "development"),
		ListenAddr: getEnv("LISTEN_ADDR", ":8080"),
		BaseURL:    getEnv("BASE_URL", "https://grapl.ai"),

		StoreBackend:       getEnv("STORE_BACKEND", BackendSupabase),
		SupabaseURL:        os.Getenv("SUPABASE_URL"),
		SupabaseServiceKey: os.Getenv("SUPABASE_SERVICE_ROLE_KEY"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),

		CatalogOnUnavailable: getEnv("CATALOG_ON_UNAVAILABLE", "fallback"),

		RabbitURL: os.Getenv("RABBITMQ_URL"),

		MailHost: os.Getenv("MAIL_HOST"),
		MailPort: getEnvAsInt("MAIL_PORT", 587),
		MailUser: os.Getenv("MAIL_USER"),
		MailPass: os.Getenv("MAIL_PASS"),
		MailFrom: getEnv("MAIL_FROM", "hello@grapl.ai"),
	}
}

// StoreConfigured reports whether the selected backend has the credentials
// it needs. When false, every submission fails fast instead of attempting
// a call that cannot succeed.
func (c Config) StoreConfigured() bool {
	switch c.StoreBackend {
	case BackendPostgres:
		return c.DatabaseURL != ""
	default:
		return c.SupabaseURL != "" && c.SupabaseServiceKey != ""
	}
}

func (c Config) MailConfigured() bool {
	return c.MailHost != "" && c.MailUser != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
