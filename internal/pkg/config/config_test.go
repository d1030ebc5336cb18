package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestProcess_Defaults(t *testing.T) {
	cfg, err := Process(context.Background(), envconfig.MapLookuper(map[string]string{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port: want 8080, got %q", cfg.Port)
	}
	if cfg.StoreDriver != StoreMemory {
		t.Errorf("StoreDriver: want %q, got %q", StoreMemory, cfg.StoreDriver)
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Errorf("TokenTTL: want 24h, got %v", cfg.TokenTTL)
	}
	if cfg.Notify.Workers != 4 {
		t.Errorf("Notify.Workers: want 4, got %d", cfg.Notify.Workers)
	}
	if cfg.TelegramEnabled() {
		t.Error("telegram must be disabled without token and chat id")
	}
}

func TestProcess_Overrides(t *testing.T) {
	cfg, err := Process(context.Background(), envconfig.MapLookuper(map[string]string{
		"STORE_DRIVER":     "sqlite",
		"SQLITE_PATH":      "/tmp/x.db",
		"REDIS_ENABLED":    "true",
		"TELEGRAM_TOKEN":   "abc",
		"TELEGRAM_CHAT_ID": "-1001",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.SQLite.Path != "/tmp/x.db" {
		t.Errorf("SQLite.Path: got %q", cfg.SQLite.Path)
	}
	if !cfg.Redis.Enabled {
		t.Error("Redis.Enabled: want true")
	}
	if !cfg.TelegramEnabled() {
		t.Error("telegram should be enabled")
	}
}

func TestProcess_RejectsUnknownDriver(t *testing.T) {
	_, err := Process(context.Background(), envconfig.MapLookuper(map[string]string{"STORE_DRIVER": "cassandra"}))
	if err == nil {
		t.Fatal("expected error for unknown driver")
	}
}
