package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "5000" {
		t.Fatalf("expected default port 5000, got %q", cfg.Port)
	}
	if cfg.DataBackend != "memory" {
		t.Fatalf("expected default backend memory, got %q", cfg.DataBackend)
	}
	if cfg.ExportBatchSize != 50 {
		t.Fatalf("expected default batch size 50, got %d", cfg.ExportBatchSize)
	}
	if cfg.ExportInterval != time.Minute {
		t.Fatalf("expected default interval 1m, got %v", cfg.ExportInterval)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("DATA_BACKEND", "sqlite")
	t.Setenv("SQLITE_DB_PATH", t.TempDir()+"/app.db")
	t.Setenv("EXPORT_INTERVAL", "5m")

	cfg := Load()
	if cfg.Port != "8080" || cfg.DataBackend != "sqlite" || cfg.ExportInterval != 5*time.Minute {
		t.Fatalf("env not applied: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestValidateFailures(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"bad port", func(c *Config) { c.Port = "http" }, "invalid port"},
		{"port out of range", func(c *Config) { c.Port = "70000" }, "invalid port"},
		{"bad backend", func(c *Config) { c.DataBackend = "postgres" }, "invalid data backend"},
		{"bad amqp scheme", func(c *Config) { c.AMQPURL = "http://localhost" }, "invalid AMQP URL scheme"},
		{"empty queue", func(c *Config) { c.AMQPURL = "amqp://localhost"; c.AMQPQueue = "" }, "queue name"},
		{"batch too small", func(c *Config) { c.ExportBatchSize = 0 }, "export batch size"},
		{"interval too short", func(c *Config) { c.ExportInterval = time.Millisecond }, "export interval"},
	}
	for _, tc := range cases {
		cfg := Load()
		tc.mutate(cfg)
		err := cfg.Validate()
		if err == nil || !strings.Contains(err.Error(), tc.want) {
			t.Fatalf("%s: expected error containing %q, got %v", tc.name, tc.want, err)
		}
	}
}
