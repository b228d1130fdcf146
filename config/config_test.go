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

func TestLoad_DefaultsAndFile(t *testing.T) {
	path := writeConfig(t, `
auth:
  jwt_secret: a-secret-that-is-long-enough
store:
  driver: memory
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Store.Driver != StoreDriverMemory {
		t.Errorf("expected memory driver, got %s", cfg.Store.Driver)
	}
	if cfg.Approval.LockTTL != 30*time.Second {
		t.Errorf("expected 30s lock ttl, got %v", cfg.Approval.LockTTL)
	}
	if cfg.Approval.LockRetryInterval != 100*time.Millisecond {
		t.Errorf("expected 100ms retry interval, got %v", cfg.Approval.LockRetryInterval)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	path := writeConfig(t, `
auth:
  jwt_secret: a-secret-that-is-long-enough
`)
	t.Setenv("SGAY_SERVER_PORT", "9090")
	t.Setenv("SGAY_STORE_DRIVER", "memory")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("expected env port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Store.Driver != StoreDriverMemory {
		t.Errorf("expected env store driver memory, got %s", cfg.Store.Driver)
	}
}

func validConfig() *Config {
	return &Config{
		Server:   ServerConfig{Port: 8080},
		Auth:     AuthConfig{Enabled: true, JWTSecret: "0123456789abcdef"},
		Store:    StoreConfig{Driver: StoreDriverPostgres},
		Approval: ApprovalConfig{LockTTL: time.Second},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"bad port", func(c *Config) { c.Server.Port = 0 }, true},
		{"short secret", func(c *Config) { c.Auth.JWTSecret = "short" }, true},
		{"short secret with auth disabled", func(c *Config) {
			c.Auth.Enabled = false
			c.Auth.JWTSecret = ""
		}, false},
		{"unknown driver", func(c *Config) { c.Store.Driver = "sqlite" }, true},
		{"zero lock ttl", func(c *Config) { c.Approval.LockTTL = 0 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)
			err := c.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("wantErr=%v, got %v", tt.wantErr, err)
			}
		})
	}
}
