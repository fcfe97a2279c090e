package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParse_Full(t *testing.T) {
	data := []byte(`
store:
  host: db.internal
  port: 3307
  user: edifice
  password: hunter2
  database: edifice_prod
server:
  port: 9090
  functions_port: 9091
auth:
  secret: s3cret
invite:
  base_url: https://app.example.com/invite
  expiry_days: 14
slack:
  webhook_url: https://hooks.slack.com/services/T/B/X
sweep:
  schedule: "*/15 * * * *"
`)
	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if cfg.Store.Host != "db.internal" {
		t.Errorf("Store.Host = %q", cfg.Store.Host)
	}
	if cfg.Store.Port != 3307 {
		t.Errorf("Store.Port = %d", cfg.Store.Port)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d", cfg.Server.Port)
	}
	if cfg.Invite.ExpiryDays != 14 {
		t.Errorf("Invite.ExpiryDays = %d", cfg.Invite.ExpiryDays)
	}
	if cfg.Sweep.Schedule != "*/15 * * * *" {
		t.Errorf("Sweep.Schedule = %q", cfg.Sweep.Schedule)
	}
	if !cfg.StoreConfigured() {
		t.Error("StoreConfigured() = false, want true")
	}
}

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if cfg.Store.Port != 3306 {
		t.Errorf("Store.Port = %d, want 3306", cfg.Store.Port)
	}
	if cfg.Store.User != "root" {
		t.Errorf("Store.User = %q, want root", cfg.Store.User)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Server.FunctionsPort != 8081 {
		t.Errorf("Server.FunctionsPort = %d, want 8081", cfg.Server.FunctionsPort)
	}
	if cfg.Invite.ExpiryDays != 7 {
		t.Errorf("Invite.ExpiryDays = %d, want 7", cfg.Invite.ExpiryDays)
	}
}

func TestParse_MissingStoreIsNotAnError(t *testing.T) {
	cfg, err := Parse([]byte("server:\n  port: 8088\n"))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if cfg.StoreConfigured() {
		t.Error("StoreConfigured() = true, want false")
	}
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := Parse([]byte("store: [broken"))
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "config: parse") {
		t.Errorf("error = %q", err)
	}
}

func TestParse_InvalidPort(t *testing.T) {
	_, err := Parse([]byte("server:\n  port: 99999\n"))
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "out of range") {
		t.Errorf("error = %q", err)
	}
}

func TestParse_NegativeExpiry(t *testing.T) {
	_, err := Parse([]byte("invite:\n  expiry_days: -1\n"))
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "expiry_days") {
		t.Errorf("error = %q", err)
	}
}

func TestParse_EnvOverrides(t *testing.T) {
	t.Setenv("EDIFICE_DB_HOST", "env-host")
	t.Setenv("EDIFICE_DB_PORT", "3310")
	t.Setenv("EDIFICE_JWT_SECRET", "env-secret")
	t.Setenv("EDIFICE_SWEEP_SCHEDULE", "0 * * * *")

	cfg, err := Parse([]byte("store:\n  host: file-host\n  database: edifice\n"))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if cfg.Store.Host != "env-host" {
		t.Errorf("Store.Host = %q, want env override", cfg.Store.Host)
	}
	if cfg.Store.Port != 3310 {
		t.Errorf("Store.Port = %d, want 3310", cfg.Store.Port)
	}
	if cfg.Auth.Secret != "env-secret" {
		t.Errorf("Auth.Secret = %q", cfg.Auth.Secret)
	}
	if cfg.Sweep.Schedule != "0 * * * *" {
		t.Errorf("Sweep.Schedule = %q", cfg.Sweep.Schedule)
	}
}

func TestParse_EnvBadIntIgnored(t *testing.T) {
	t.Setenv("EDIFICE_DB_PORT", "not-a-number")
	cfg, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if cfg.Store.Port != 3306 {
		t.Errorf("Store.Port = %d, want default 3306", cfg.Store.Port)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load() on missing file should use defaults, got error: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "edifice.yaml")
	if err := os.WriteFile(path, []byte("store:\n  host: h\n  database: d\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !cfg.StoreConfigured() {
		t.Error("StoreConfigured() = false, want true")
	}
}
