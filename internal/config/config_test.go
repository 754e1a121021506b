package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "LISTEN_ADDR", "DATABASE_DRIVER", "DATABASE_PATH", "SITE_BASE_URL",
		"CORS_ALLOWED_ORIGINS", "LOGIN_RATE_LIMIT", "UPLOAD_DIR",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.ListenAddr != ":8080" {
		t.Fatalf("expected default listen addr, got %q", cfg.ListenAddr)
	}
	if cfg.DatabaseDriver != "sqlite" || cfg.DatabasePath != "church.db" {
		t.Fatalf("unexpected database defaults: %s %s", cfg.DatabaseDriver, cfg.DatabasePath)
	}
	if cfg.LoginRateLimit != 10 {
		t.Fatalf("expected default login limit 10, got %d", cfg.LoginRateLimit)
	}
	if diff := cmp.Diff([]string{"*"}, cfg.CORSAllowedOrigins); diff != "" {
		t.Fatalf("cors origins mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("LISTEN_ADDR", "")
	t.Setenv("DATABASE_DRIVER", "Postgres")
	t.Setenv("SITE_BASE_URL", "https://grace.example.org/")
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example.org, ,https://b.example.org ")
	t.Setenv("LOGIN_RATE_LIMIT", "abc")

	cfg := Load()
	if cfg.ListenAddr != ":9000" {
		t.Fatalf("expected listen addr from PORT, got %q", cfg.ListenAddr)
	}
	if cfg.DatabaseDriver != "postgres" {
		t.Fatalf("expected postgres driver, got %q", cfg.DatabaseDriver)
	}
	if cfg.SiteBaseURL != "https://grace.example.org" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.SiteBaseURL)
	}
	if cfg.LoginRateLimit != 10 {
		t.Fatalf("invalid limit should fall back to 10, got %d", cfg.LoginRateLimit)
	}
	want := []string{"https://a.example.org", "https://b.example.org"}
	if diff := cmp.Diff(want, cfg.CORSAllowedOrigins); diff != "" {
		t.Fatalf("cors origins mismatch (-want +got):\n%s", diff)
	}
}

func TestUnknownDriverFallsBackToSQLite(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", "mysql")
	if got := Load().DatabaseDriver; got != "sqlite" {
		t.Fatalf("expected sqlite fallback, got %q", got)
	}
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("GRACE_TEST_VALUE=from-file\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("GRACE_TEST_VALUE", "")
	os.Unsetenv("GRACE_TEST_VALUE")

	LoadDotEnv(path)
	if got := os.Getenv("GRACE_TEST_VALUE"); got != "from-file" {
		t.Fatalf("expected value from .env, got %q", got)
	}

	LoadDotEnv(filepath.Join(t.TempDir(), "missing.env"))
}
