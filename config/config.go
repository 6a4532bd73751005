package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL         string
	ServerPort          string
	Environment         string
	JWTSecret           string
	SessionSecret       string
	DiscordClientID     string
	DiscordClientSecret string
	DiscordRedirectURL  string
	FrontendURL         string
	AdminEmails         string
	MoviesCSVImport     string
	Debug               bool
}

func Load() *Config {
	// Optional .env for local development; real deployments set the
	// environment directly.
	_ = godotenv.Load()

	return &Config{
		DatabaseURL:         databaseURL(),
		ServerPort:          getEnv("PORT", "23245"),
		Environment:         getEnv("ENV", "development"),
		JWTSecret:           getEnv("JWT_SECRET", "change-me-in-production"),
		SessionSecret:       getEnv("SESSION_SECRET", "change-me-in-production"),
		DiscordClientID:     getEnv("DISCORD_CLIENT_ID", ""),
		DiscordClientSecret: getEnv("DISCORD_CLIENT_SECRET", ""),
		DiscordRedirectURL:  getEnv("DISCORD_REDIRECT_URL", "http://localhost:23245/api/callback"),
		FrontendURL:         getEnv("FRONTEND_URL", "http://localhost:5173"),
		AdminEmails:         getEnv("ADMIN_EMAILS", ""),
		MoviesCSVImport:     getEnv("MOVIES_CSV_IMPORT", ""),
		Debug:               getEnv("DEBUG", "false") == "true",
	}
}

// databaseURL prefers a full DATABASE_URL and otherwise assembles one
// from the individual POSTGRES_* variables.
func databaseURL() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}

	user := getEnv("POSTGRES_USER", "movienite")
	password := getEnv("POSTGRES_PASSWORD", "movienite")
	host := getEnv("POSTGRES_HOST", "localhost")
	port := getEnv("POSTGRES_PORT", "5432")
	name := getEnv("POSTGRES_DB", "movienite")

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, name)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
