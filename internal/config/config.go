package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	ContentDir      string
	StaticDir       string
	OutputDir       string
	APIPort         string
	SiteTitle       string
	SiteDescription string
	SiteAuthor      string
	LogLevel        slog.Level
	LogFormat       string
}

// Load reads configuration from environment variables and returns a Config struct.
// If a .env file exists in the current directory or a parent, it is loaded first.
// Environment variables already set take precedence over .env file values.
func Load() (*Config, error) {
	_ = godotenv.Load()

	wd, err := os.Getwd()
	if err == nil {
		dir := wd
		for i := 0; i < 5; i++ {
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}

	cfg := &Config{
		StaticDir:       getEnv("STATIC_DIR", ""),
		OutputDir:       getEnv("OUTPUT_DIR", "out"),
		APIPort:         getEnv("API_PORT", "9000"),
		SiteTitle:       getEnv("SITE_TITLE", "Portfolio"),
		SiteDescription: getEnv("SITE_DESCRIPTION", ""),
		SiteAuthor:      getEnv("SITE_AUTHOR", ""),
		LogFormat:       strings.ToLower(getEnv("LOG_FORMAT", "text")),
	}

	contentDir, err := filepath.Abs(getEnv("CONTENT_DIR", "posts"))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve CONTENT_DIR: %w", err)
	}
	info, err := os.Stat(contentDir)
	if err != nil {
		return nil, fmt.Errorf("CONTENT_DIR %s is not accessible: %w", contentDir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("CONTENT_DIR %s is not a directory", contentDir)
	}
	cfg.ContentDir = contentDir

	if cfg.StaticDir != "" {
		staticDir, err := filepath.Abs(cfg.StaticDir)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve STATIC_DIR: %w", err)
		}
		cfg.StaticDir = staticDir
	}

	port, err := strconv.Atoi(cfg.APIPort)
	if err != nil {
		return nil, fmt.Errorf("API_PORT must be a valid integer: %w", err)
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("API_PORT must be between 1 and 65535")
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("LOG_LEVEL is invalid: %w", err)
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("LOG_FORMAT must be text or json, got %q", cfg.LogFormat)
	}

	return cfg, nil
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
