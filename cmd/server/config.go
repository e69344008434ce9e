package main

import (
	"fmt"
	"os"
	"time"

	cch23service "codehunt/internal/cch23/service"
	"codehunt/internal/common/cache"
	"codehunt/internal/common/db"
	"codehunt/internal/common/http/middleware"
	"codehunt/internal/server"
	"codehunt/pkg/utils/logger"

	"gopkg.in/yaml.v3"
)

const (
	defaultHTTPAddr        = "127.0.0.1:8000"
	defaultReadTimeout     = 5 * time.Second
	defaultWriteTimeout    = 30 * time.Second
	defaultIdleTimeout     = 60 * time.Second
	defaultShutdownTimeout = 10 * time.Second
	defaultMaxHeaderBytes  = 1 << 20

	defaultEvent        = server.EventCCH24
	defaultDatabaseDSN  = "file:codehunt.db?_pragma=busy_timeout(5000)"
	defaultPageTokenTTL = time.Hour
)

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr           string        `yaml:"addr"`
	ReadTimeout    time.Duration `yaml:"readTimeout"`
	WriteTimeout   time.Duration `yaml:"writeTimeout"`
	IdleTimeout    time.Duration `yaml:"idleTimeout"`
	MaxHeaderBytes int           `yaml:"maxHeaderBytes"`
}

// GiftConfig holds the keys used by the gift wrapping endpoints.
type GiftConfig struct {
	Secret string `yaml:"secret"`
	// SantaKeyPath points at a PEM public key. Without it /16/decode answers 503.
	SantaKeyPath string `yaml:"santaKeyPath"`
}

// QuotesConfig holds quote book settings.
type QuotesConfig struct {
	PageTokenTTL time.Duration `yaml:"pageTokenTTL"`
}

// AppConfig holds the challenge server configuration.
type AppConfig struct {
	Event    string                        `yaml:"event"`
	Server   ServerConfig                  `yaml:"server"`
	Logger   logger.Config                 `yaml:"logger"`
	Cache    cache.Config                  `yaml:"cache"`
	Database db.Config                     `yaml:"database"`
	Gift     GiftConfig                    `yaml:"gift"`
	Quotes   QuotesConfig                  `yaml:"quotes"`
	Lookups  cch23service.UpstreamConfig   `yaml:"lookups"`
	CORS     middleware.CORSConfig         `yaml:"cors"`
	Trace    middleware.TraceContextConfig `yaml:"trace"`
}

func loadYAML(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file failed: %w", err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse config file failed: %w", err)
	}
	return nil
}

func loadAppConfig(path string) (*AppConfig, error) {
	var cfg AppConfig
	if err := loadYAML(path, &cfg); err != nil {
		return nil, err
	}
	if cfg.Event == "" {
		cfg.Event = defaultEvent
	}
	if cfg.Event != server.EventCCH23 && cfg.Event != server.EventCCH24 {
		return nil, fmt.Errorf("event must be %s or %s", server.EventCCH23, server.EventCCH24)
	}

	if cfg.Server.Addr == "" {
		cfg.Server.Addr = defaultHTTPAddr
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = defaultReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = defaultWriteTimeout
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = defaultIdleTimeout
	}
	if cfg.Server.MaxHeaderBytes == 0 {
		cfg.Server.MaxHeaderBytes = defaultMaxHeaderBytes
	}

	if cfg.Logger.Level == "" {
		cfg.Logger.Level = "info"
	}
	if cfg.Logger.OutputPath == "" {
		cfg.Logger.OutputPath = "stdout"
	}

	if cfg.Cache.Driver == cache.DriverRedis && cfg.Cache.Redis.Addr == "" {
		return nil, fmt.Errorf("cache.redis.addr is required for the redis driver")
	}

	if cfg.Database.Driver == "" {
		cfg.Database.Driver = db.DriverSQLite
	}
	if cfg.Database.DSN == "" {
		if cfg.Database.Driver != db.DriverSQLite {
			return nil, fmt.Errorf("database.dsn is required")
		}
		cfg.Database.DSN = defaultDatabaseDSN
	}

	if cfg.Event == server.EventCCH24 && cfg.Gift.Secret == "" {
		return nil, fmt.Errorf("gift.secret is required")
	}
	if cfg.Quotes.PageTokenTTL == 0 {
		cfg.Quotes.PageTokenTTL = defaultPageTokenTTL
	}
	cfg.Lookups = cfg.Lookups.WithDefaults()
	return &cfg, nil
}
