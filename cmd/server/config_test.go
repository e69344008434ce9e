package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	cch23service "codehunt/internal/cch23/service"
	"codehunt/internal/common/db"
	"codehunt/internal/server"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "server.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadAppConfigDefaults(t *testing.T) {
	cfg, err := loadAppConfig(writeConfig(t, "gift:\n  secret: s3cret\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Event != server.EventCCH24 {
		t.Fatalf("expected default event, got %q", cfg.Event)
	}
	if cfg.Server.Addr != defaultHTTPAddr || cfg.Server.ReadTimeout != defaultReadTimeout {
		t.Fatalf("server defaults not applied: %+v", cfg.Server)
	}
	if cfg.Database.Driver != db.DriverSQLite || cfg.Database.DSN != defaultDatabaseDSN {
		t.Fatalf("database defaults not applied: %+v", cfg.Database)
	}
	if cfg.Quotes.PageTokenTTL != time.Hour {
		t.Fatalf("expected page token ttl default, got %v", cfg.Quotes.PageTokenTTL)
	}
	if cfg.Lookups.PokeAPIURL != cch23service.DefaultPokeAPIURL || cfg.Lookups.Timeout != 10*time.Second {
		t.Fatalf("lookup defaults not applied: %+v", cfg.Lookups)
	}
}

func TestLoadAppConfigValidation(t *testing.T) {
	cases := map[string]string{
		"unknown event":  "event: cch22\n",
		"missing secret": "event: cch24\n",
		"redis no addr":  "event: cch23\ncache:\n  driver: redis\n",
		"mysql no dsn":   "event: cch23\ndatabase:\n  driver: mysql\n",
		"malformed yaml": "event: [\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := loadAppConfig(writeConfig(t, body)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}

	cfg, err := loadAppConfig(writeConfig(t, "event: cch23\nquotes:\n  pageTokenTTL: 5m\nlookups:\n  geocoderURL: http://geo.local\n"))
	if err != nil {
		t.Fatalf("cch23 needs no gift secret: %v", err)
	}
	if cfg.Quotes.PageTokenTTL != 5*time.Minute {
		t.Fatalf("expected configured ttl, got %v", cfg.Quotes.PageTokenTTL)
	}
	if cfg.Lookups.GeocoderURL != "http://geo.local" || cfg.Lookups.UserAgent != cch23service.DefaultUserAgent {
		t.Fatalf("unexpected lookups: %+v", cfg.Lookups)
	}
}
