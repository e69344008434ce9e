package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"
)

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"

	defaultMaxOpenConnections = 25
	defaultMaxIdleConnections = 5
	defaultConnMaxLifetime    = 5 * time.Minute
	defaultConnMaxIdleTime    = 10 * time.Minute
	defaultPingTimeout        = 5 * time.Second
)

// Config holds the configuration for a database connection pool
type Config struct {
	// Driver is "mysql" or "sqlite"
	Driver string `yaml:"driver"`

	// DSN is the data source name
	// MySQL: "user:password@tcp(host:port)/dbname?parseTime=true"
	// SQLite: "file:quotes.db" or ":memory:"
	DSN string `yaml:"dsn"`

	MaxOpenConnections int           `yaml:"maxOpenConnections"`
	MaxIdleConnections int           `yaml:"maxIdleConnections"`
	ConnMaxLifetime    time.Duration `yaml:"connMaxLifetime"`
	ConnMaxIdleTime    time.Duration `yaml:"connMaxIdleTime"`
}

// Database is a pooled connection plus the helpers repositories use.
type Database struct {
	db     *sql.DB
	driver string
}

// Open creates a connection pool for cfg and verifies it with a ping.
func Open(cfg Config) (*Database, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("DSN cannot be empty")
	}

	switch cfg.Driver {
	case DriverMySQL:
		if cfg.MaxOpenConnections == 0 {
			cfg.MaxOpenConnections = defaultMaxOpenConnections
		}
		if cfg.MaxIdleConnections == 0 {
			cfg.MaxIdleConnections = defaultMaxIdleConnections
		}
		if cfg.ConnMaxLifetime == 0 {
			cfg.ConnMaxLifetime = defaultConnMaxLifetime
		}
		if cfg.ConnMaxIdleTime == 0 {
			cfg.ConnMaxIdleTime = defaultConnMaxIdleTime
		}
	case DriverSQLite:
		// One connection keeps in-memory databases alive and serializes writers.
		cfg.MaxOpenConnections = 1
		cfg.MaxIdleConnections = 1
		cfg.ConnMaxLifetime = 0
		cfg.ConnMaxIdleTime = 0
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}

	sqlDB, err := sql.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConnections)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConnections)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), defaultPingTimeout)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Database{db: sqlDB, driver: cfg.Driver}, nil
}

// Driver returns the driver name the pool was opened with.
func (d *Database) Driver() string {
	return d.driver
}

// Query executes a query that returns rows
func (d *Database) Query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return rows, nil
}

// QueryRow executes a query that returns at most one row
func (d *Database) QueryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return d.db.QueryRowContext(ctx, query, args...)
}

// Exec executes a query that doesn't return rows
func (d *Database) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	result, err := d.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("exec failed: %w", err)
	}
	return result, nil
}

// Transaction executes a function within a database transaction
func (d *Database) Transaction(ctx context.Context, fn func(q Querier) error) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction failed: %w", err)
	}

	if err := fn(&txQuerier{tx: tx}); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit failed: %w", err)
	}
	return nil
}

// Ping verifies a connection to the database is still alive
func (d *Database) Ping(ctx context.Context) error {
	if err := d.db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping failed: %w", err)
	}
	return nil
}

// Close closes the database connection
func (d *Database) Close() error {
	if err := d.db.Close(); err != nil {
		return fmt.Errorf("close failed: %w", err)
	}
	return nil
}

type txQuerier struct {
	tx *sql.Tx
}

func (t *txQuerier) Query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	rows, err := t.tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("transaction query failed: %w", err)
	}
	return rows, nil
}

func (t *txQuerier) QueryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return t.tx.QueryRowContext(ctx, query, args...)
}

func (t *txQuerier) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	result, err := t.tx.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("transaction exec failed: %w", err)
	}
	return result, nil
}
