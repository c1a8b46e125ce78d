package config

import (
	"log/slog"
	"os"
)

type Config struct {
	Port        string
	Env         string
	DatabaseDSN string

	// SessionSecret signs the session cookie. Must be overridden in
	// production.
	SessionSecret string

	SMTPHost     string
	SMTPPort     string
	SMTPUser     string
	SMTPPassword string
	MailFrom     string

	// BaseURL is the externally visible origin, used to build the
	// password-reset link sent by email.
	BaseURL string

	UploadDir string
}

func Load() Config {
	cfg := Config{
		Port:          getEnv("PORT", "8080"),
		Env:           getEnv("ENV", "development"),
		DatabaseDSN:   getEnv("DATABASE_DSN", "root:password@tcp(127.0.0.1:3306)/inkwell?parseTime=true"),
		SessionSecret: getEnv("SESSION_SECRET", "dev-secret-change-in-production"),
		SMTPHost:      getEnv("SMTP_HOST", "localhost"),
		SMTPPort:      getEnv("SMTP_PORT", "587"),
		SMTPUser:      getEnv("SMTP_USER", ""),
		SMTPPassword:  getEnv("SMTP_PASSWORD", ""),
		MailFrom:      getEnv("MAIL_FROM", "noreply@inkwell.local"),
		BaseURL:       getEnv("BASE_URL", "http://localhost:8080"),
		UploadDir:     getEnv("UPLOAD_DIR", "uploads"),
	}

	if cfg.Env == "production" && cfg.SessionSecret == "dev-secret-change-in-production" {
		slog.Error("SESSION_SECRET must be set in production environment")
		os.Exit(1)
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
