package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigFromFile(t *testing.T) {
	path := writeConfig(t, `
server:
  address: ":8080"
  allowed_origins: ["http://localhost:5173"]
database:
  url: "user:pass@/society?parseTime=true"
redis:
  addr: "localhost:6379"
jwt:
  secret: "s3cret"
  access_ttl: 1h
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.Address != ":8080" || cfg.Database.URL != "user:pass@/society?parseTime=true" {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.JWT.AccessTTL != time.Hour {
		t.Fatalf("expected 1h access ttl, got %v", cfg.JWT.AccessTTL)
	}
	if cfg.JWT.RefreshTTL != defaultRefreshTTL || cfg.Database.Driver != "mysql" {
		t.Fatalf("expected defaults to fill the gaps, got %+v", cfg.JWT)
	}
	if len(cfg.Server.AllowedOrigins) != 1 {
		t.Fatalf("expected one origin, got %v", cfg.Server.AllowedOrigins)
	}
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.Address != defaultAddress || cfg.Top.CacheTTL != defaultTopCacheTTL {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "4100")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("TOP_CACHE_TTL_SECONDS", "30")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, http://b.test,")
	t.Setenv("COOKIE_SECURE", "true")

	cfg, err := LoadConfig(writeConfig(t, "jwt:\n  secret: from-file\n"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.Address != ":4100" {
		t.Fatalf("expected :4100, got %q", cfg.Server.Address)
	}
	if cfg.Redis.DB != 3 || cfg.JWT.Secret != "from-env" || cfg.Top.CacheTTL != 30*time.Second {
		t.Fatalf("unexpected overrides %+v", cfg)
	}
	if !cfg.Server.SecureCookies {
		t.Fatal("expected secure cookies from env")
	}
	if len(cfg.Server.AllowedOrigins) != 2 {
		t.Fatalf("expected two origins, got %v", cfg.Server.AllowedOrigins)
	}
}

func TestEnvParseErrors(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"REDIS_DB", "one"},
		{"JWT_ACCESS_TTL_SECONDS", "-5"},
		{"TOP_REFRESH_SECONDS", "soon"},
		{"COOKIE_SECURE", "maybe"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
				t.Fatalf("expected error for %s=%s", tt.key, tt.value)
			}
		})
	}
}

func TestPath(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	if Path() != defaultConfigPath {
		t.Fatalf("expected default path, got %q", Path())
	}
	t.Setenv("CONFIG_PATH", "/etc/society.yaml")
	if Path() != "/etc/society.yaml" {
		t.Fatalf("expected env path, got %q", Path())
	}
}
