package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_DefaultsWithEnvOverride(t *testing.T) {
	t.Setenv("WMS_DATABASE_URL", "postgres://localhost/wms_test")
	t.Setenv("WMS_HTTP_ADDR", ":9090")

	c, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Database.URL != "postgres://localhost/wms_test" {
		t.Errorf("expected database url from env, got %q", c.Database.URL)
	}
	if c.HTTP.Addr != ":9090" {
		t.Errorf("expected http addr :9090, got %q", c.HTTP.Addr)
	}
	if c.Auth.TokenTTL != time.Hour {
		t.Errorf("expected default token ttl 1h, got %s", c.Auth.TokenTTL)
	}
	if !c.Metrics.Enabled {
		t.Error("expected metrics enabled by default")
	}
	if c.IsDevelopment() {
		t.Error("expected production env by default")
	}
}

func TestLoad_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
app:
  env: dev
http:
  addr: ":7000"
  allowed_origins: "http://localhost:3000"
database:
  url: "postgres://file/wms"
auth:
  jwt_secret: "s3cret"
  token_ttl: 30m
metrics:
  enabled: false
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !c.IsDevelopment() {
		t.Errorf("expected dev env, got %q", c.App.Env)
	}
	if c.HTTP.AllowedOrigins != "http://localhost:3000" {
		t.Errorf("unexpected allowed origins %q", c.HTTP.AllowedOrigins)
	}
	if c.Auth.JWTSecret != "s3cret" {
		t.Errorf("unexpected jwt secret %q", c.Auth.JWTSecret)
	}
	if c.Auth.TokenTTL != 30*time.Minute {
		t.Errorf("expected token ttl 30m, got %s", c.Auth.TokenTTL)
	}
	if c.Metrics.Enabled {
		t.Error("expected metrics disabled")
	}
}

func TestLoad_MissingDatabaseURL(t *testing.T) {
	t.Setenv("WMS_DATABASE_URL", "")
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error when database url is missing")
	}
}
