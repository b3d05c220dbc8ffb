package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

var configEnvKeys = []string{
	"APP_ENV",
	"HTTP_ADDR",
	"HTTP_READ_TIMEOUT",
	"HTTP_WRITE_TIMEOUT",
	"HTTP_IDLE_TIMEOUT",
	"LOG_LEVEL",
	"BACKEND_BASE_URL",
	"BACKEND_API_TOKEN",
	"BACKEND_TIMEOUT",
	"POSTGRES_DSN",
	"REDIS_ADDR",
	"REDIS_PASSWORD",
	"REDIS_DB",
	"S3_ENDPOINT",
	"S3_ACCESS_KEY",
	"S3_SECRET_KEY",
	"S3_BUCKET",
	"S3_USE_SSL",
	"ADMIN_TOKEN",
	"SESSION_TTL",
	"REVIEW_SEED_PLACEHOLDERS",
}

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range configEnvKeys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearConfigEnv(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Env != "dev" {
		t.Fatalf("unexpected env: %q", cfg.Env)
	}
	if cfg.HTTP.Addr != ":8080" {
		t.Fatalf("unexpected http addr: %q", cfg.HTTP.Addr)
	}
	if cfg.Backend.Timeout != 8*time.Second {
		t.Fatalf("unexpected backend timeout: %v", cfg.Backend.Timeout)
	}
	if cfg.Auth.SessionTTL != 12*time.Hour {
		t.Fatalf("unexpected session ttl: %v", cfg.Auth.SessionTTL)
	}
	if !cfg.Review.SeedPlaceholders {
		t.Fatal("expected placeholder seeding enabled by default")
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	clearConfigEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "no-such-config.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTP.Addr != ":8080" {
		t.Fatalf("unexpected http addr: %q", cfg.HTTP.Addr)
	}
}

func TestLoadFromYAML(t *testing.T) {
	clearConfigEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte(`
env: prod
http:
  addr: ":9091"
  read_timeout: 2s
backend:
  base_url: "https://api.example.com"
  api_token: "yaml-token"
  timeout: 3s
auth:
  admin_token: "yaml-admin"
  session_ttl: 1h
review:
  seed_placeholders: false
`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Env != "prod" {
		t.Fatalf("unexpected env: %q", cfg.Env)
	}
	if cfg.HTTP.Addr != ":9091" || cfg.HTTP.ReadTimeout != 2*time.Second {
		t.Fatalf("unexpected http config: %+v", cfg.HTTP)
	}
	// Values the file does not set keep their defaults.
	if cfg.HTTP.WriteTimeout != 10*time.Second {
		t.Fatalf("unexpected write timeout: %v", cfg.HTTP.WriteTimeout)
	}
	if cfg.Backend.BaseURL != "https://api.example.com" || cfg.Backend.APIToken != "yaml-token" {
		t.Fatalf("unexpected backend config: %+v", cfg.Backend)
	}
	if cfg.Auth.SessionTTL != time.Hour {
		t.Fatalf("unexpected session ttl: %v", cfg.Auth.SessionTTL)
	}
	if cfg.Review.SeedPlaceholders {
		t.Fatal("expected placeholder seeding disabled")
	}
}

func TestEnvOverridesBeatYAML(t *testing.T) {
	clearConfigEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte(`
backend:
  base_url: "https://yaml.example.com"
redis:
  db: 1
`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	t.Setenv("BACKEND_BASE_URL", "https://env.example.com")
	t.Setenv("BACKEND_TIMEOUT", "15s")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("S3_USE_SSL", "true")
	t.Setenv("REVIEW_SEED_PLACEHOLDERS", "false")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Backend.BaseURL != "https://env.example.com" {
		t.Fatalf("unexpected backend base url: %q", cfg.Backend.BaseURL)
	}
	if cfg.Backend.Timeout != 15*time.Second {
		t.Fatalf("unexpected backend timeout: %v", cfg.Backend.Timeout)
	}
	if cfg.Redis.DB != 3 {
		t.Fatalf("unexpected redis db: %d", cfg.Redis.DB)
	}
	if !cfg.S3.UseSSL {
		t.Fatal("expected s3 ssl enabled via env")
	}
	if cfg.Review.SeedPlaceholders {
		t.Fatal("expected placeholder seeding disabled via env")
	}
}

func TestEnvOverrideRejectsBadValues(t *testing.T) {
	clearConfigEnv(t)

	t.Setenv("BACKEND_TIMEOUT", "soon")
	if _, err := Load(""); err == nil {
		t.Fatal("expected error for invalid duration")
	}

	clearConfigEnv(t)
	t.Setenv("REDIS_DB", "two")
	if _, err := Load(""); err == nil {
		t.Fatal("expected error for invalid int")
	}

	clearConfigEnv(t)
	t.Setenv("S3_USE_SSL", "yep")
	if _, err := Load(""); err == nil {
		t.Fatal("expected error for invalid bool")
	}
}
