package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

var envVars = []string{
	"CONTENT_DIR", "STATIC_DIR", "OUTPUT_DIR", "API_PORT",
	"SITE_TITLE", "SITE_DESCRIPTION", "SITE_AUTHOR",
	"LOG_LEVEL", "LOG_FORMAT",
}

// isolate runs the test from an empty temp directory with every config
// variable cleared, so neither the host environment nor a .env file leaks in.
func isolate(t *testing.T) string {
	t.Helper()
	for _, key := range envVars {
		t.Setenv(key, "")
	}
	dir := t.TempDir()
	chdir(t, dir)
	return dir
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		setupEnv    func(t *testing.T, wd string)
		wantErr     bool
		checkConfig func(t *testing.T, wd string, cfg *Config)
	}{
		{
			name: "defaults with posts directory present",
			setupEnv: func(t *testing.T, wd string) {
				if err := os.Mkdir(filepath.Join(wd, "posts"), 0755); err != nil {
					t.Fatalf("Failed to create posts dir: %v", err)
				}
			},
			checkConfig: func(t *testing.T, wd string, cfg *Config) {
				if filepath.Base(cfg.ContentDir) != "posts" || !filepath.IsAbs(cfg.ContentDir) {
					t.Errorf("ContentDir = %q, want absolute path ending in posts", cfg.ContentDir)
				}
				if cfg.StaticDir != "" {
					t.Errorf("StaticDir = %q, want empty", cfg.StaticDir)
				}
				if cfg.OutputDir != "out" {
					t.Errorf("OutputDir = %q, want out", cfg.OutputDir)
				}
				if cfg.APIPort != "9000" {
					t.Errorf("APIPort = %q, want 9000", cfg.APIPort)
				}
				if cfg.SiteTitle != "Portfolio" {
					t.Errorf("SiteTitle = %q, want Portfolio", cfg.SiteTitle)
				}
				if cfg.LogLevel != slog.LevelInfo {
					t.Errorf("LogLevel = %v, want INFO", cfg.LogLevel)
				}
				if cfg.LogFormat != "text" {
					t.Errorf("LogFormat = %q, want text", cfg.LogFormat)
				}
			},
		},
		{
			name:    "missing content directory",
			wantErr: true,
		},
		{
			name: "content path is a file",
			setupEnv: func(t *testing.T, wd string) {
				path := filepath.Join(wd, "posts.md")
				if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
					t.Fatalf("Failed to write file: %v", err)
				}
				t.Setenv("CONTENT_DIR", path)
			},
			wantErr: true,
		},
		{
			name: "custom values",
			setupEnv: func(t *testing.T, wd string) {
				t.Setenv("CONTENT_DIR", t.TempDir())
				t.Setenv("STATIC_DIR", "public")
				t.Setenv("OUTPUT_DIR", "dist")
				t.Setenv("API_PORT", "8080")
				t.Setenv("SITE_TITLE", "Rangga")
				t.Setenv("SITE_AUTHOR", "rangga")
				t.Setenv("LOG_LEVEL", "debug")
				t.Setenv("LOG_FORMAT", "JSON")
			},
			checkConfig: func(t *testing.T, wd string, cfg *Config) {
				if cfg.StaticDir != filepath.Join(wd, "public") {
					t.Errorf("StaticDir = %q, want %q", cfg.StaticDir, filepath.Join(wd, "public"))
				}
				if cfg.OutputDir != "dist" {
					t.Errorf("OutputDir = %q, want dist", cfg.OutputDir)
				}
				if cfg.APIPort != "8080" {
					t.Errorf("APIPort = %q, want 8080", cfg.APIPort)
				}
				if cfg.SiteTitle != "Rangga" || cfg.SiteAuthor != "rangga" {
					t.Errorf("Site = %q/%q", cfg.SiteTitle, cfg.SiteAuthor)
				}
				if cfg.LogLevel != slog.LevelDebug {
					t.Errorf("LogLevel = %v, want DEBUG", cfg.LogLevel)
				}
				if cfg.LogFormat != "json" {
					t.Errorf("LogFormat = %q, want json", cfg.LogFormat)
				}
			},
		},
		{
			name: "invalid API_PORT",
			setupEnv: func(t *testing.T, wd string) {
				t.Setenv("CONTENT_DIR", t.TempDir())
				t.Setenv("API_PORT", "http")
			},
			wantErr: true,
		},
		{
			name: "out of range API_PORT",
			setupEnv: func(t *testing.T, wd string) {
				t.Setenv("CONTENT_DIR", t.TempDir())
				t.Setenv("API_PORT", "70000")
			},
			wantErr: true,
		},
		{
			name: "invalid LOG_LEVEL",
			setupEnv: func(t *testing.T, wd string) {
				t.Setenv("CONTENT_DIR", t.TempDir())
				t.Setenv("LOG_LEVEL", "loud")
			},
			wantErr: true,
		},
		{
			name: "invalid LOG_FORMAT",
			setupEnv: func(t *testing.T, wd string) {
				t.Setenv("CONTENT_DIR", t.TempDir())
				t.Setenv("LOG_FORMAT", "xml")
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wd := isolate(t)
			if tt.setupEnv != nil {
				tt.setupEnv(t, wd)
			}

			cfg, err := Load()

			if tt.wantErr {
				if err == nil {
					t.Errorf("Load() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Load() unexpected error: %v", err)
			}
			if tt.checkConfig != nil {
				// Resolve symlinked temp dirs the same way Abs would see them.
				resolved, err := os.Getwd()
				if err != nil {
					t.Fatalf("Getwd() error = %v", err)
				}
				tt.checkConfig(t, resolved, cfg)
			}
		})
	}
}

func TestLoad_DotEnv(t *testing.T) {
	wd := isolate(t)
	contentDir := t.TempDir()
	env := "CONTENT_DIR=" + contentDir + "\nSITE_TITLE=From Dotenv\n"
	if err := os.WriteFile(filepath.Join(wd, ".env"), []byte(env), 0644); err != nil {
		t.Fatalf("Failed to write .env: %v", err)
	}
	// godotenv never overrides variables that are already set, so drop the
	// empty placeholders isolate installed.
	for _, key := range []string{"CONTENT_DIR", "SITE_TITLE"} {
		if err := os.Unsetenv(key); err != nil {
			t.Fatalf("Unsetenv() error = %v", err)
		}
	}
	t.Cleanup(func() {
		_ = os.Unsetenv("CONTENT_DIR")
		_ = os.Unsetenv("SITE_TITLE")
	})

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.SiteTitle != "From Dotenv" {
		t.Errorf("SiteTitle = %q, want From Dotenv", cfg.SiteTitle)
	}
	if cfg.ContentDir != contentDir {
		t.Errorf("ContentDir = %q, want %q", cfg.ContentDir, contentDir)
	}
}

func TestGetEnv(t *testing.T) {
	tests := []struct {
		name         string
		value        string
		defaultValue string
		want         string
	}{
		{name: "env var set", value: "set-value", defaultValue: "default", want: "set-value"},
		{name: "empty env var uses default", value: "", defaultValue: "default", want: "default"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_ENV_VAR", tt.value)
			if got := getEnv("TEST_ENV_VAR", tt.defaultValue); got != tt.want {
				t.Errorf("getEnv(%q, %q) = %q, want %q", "TEST_ENV_VAR", tt.defaultValue, got, tt.want)
			}
		})
	}
}
