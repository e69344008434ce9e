package repository

import (
	"context"
	"fmt"

	"codehunt/internal/common/db"
	"codehunt/pkg/repository"

	"github.com/google/uuid"
)

const (
	createQuotesSQLite = `CREATE TABLE IF NOT EXISTS quotes (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	id CHAR(36) NOT NULL UNIQUE,
	author TEXT NOT NULL,
	quote TEXT NOT NULL,
	created_at VARCHAR(64) NOT NULL,
	version INTEGER NOT NULL DEFAULT 1
)`
	createQuotesMySQL = `CREATE TABLE IF NOT EXISTS quotes (
	seq BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
	id CHAR(36) NOT NULL UNIQUE,
	author TEXT NOT NULL,
	quote TEXT NOT NULL,
	created_at VARCHAR(64) NOT NULL,
	version INT NOT NULL DEFAULT 1
)`

	quoteColumns = "id, author, quote, created_at, version"
)

// QuoteRepository stores quotes in insertion order.
type QuoteRepository interface {
	repository.Repository[Quote, uuid.UUID]

	// Migrate creates the quotes table when missing.
	Migrate(ctx context.Context) error
	// Reset removes every quote.
	Reset(ctx context.Context) error
	// Revise replaces author and text and bumps the version atomically.
	Revise(ctx context.Context, id uuid.UUID, author, text string) (*Quote, error)
	// Take deletes a quote and returns what was stored.
	Take(ctx context.Context, id uuid.UUID) (*Quote, error)
}

type SQLQuoteRepository struct {
	db *db.Database
}

func NewQuoteRepository(database *db.Database) QuoteRepository {
	return &SQLQuoteRepository{db: database}
}

func (r *SQLQuoteRepository) Migrate(ctx context.Context) error {
	ddl := createQuotesSQLite
	if r.db.Driver() == db.DriverMySQL {
		ddl = createQuotesMySQL
	}
	if _, err := r.db.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("create quotes table failed: %w", err)
	}
	return nil
}

func (r *SQLQuoteRepository) Reset(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, "DELETE FROM quotes"); err != nil {
		return fmt.Errorf("reset quotes failed: %w", err)
	}
	return nil
}

func (r *SQLQuoteRepository) Create(ctx context.Context, q *Quote) error {
	_, err := r.db.Exec(ctx,
		"INSERT INTO quotes ("+quoteColumns+") VALUES (?, ?, ?, ?, ?)",
		q.ID.String(), q.Author, q.Quote, q.CreatedAt, q.Version,
	)
	if err != nil {
		return fmt.Errorf("insert quote failed: %w", err)
	}
	return nil
}

func (r *SQLQuoteRepository) GetByID(ctx context.Context, id uuid.UUID) (*Quote, error) {
	return getQuote(ctx, r.db, id)
}

func (r *SQLQuoteRepository) Update(ctx context.Context, q *Quote) error {
	result, err := r.db.Exec(ctx,
		"UPDATE quotes SET author = ?, quote = ?, version = ? WHERE id = ?",
		q.Author, q.Quote, q.Version, q.ID.String(),
	)
	if err != nil {
		return fmt.Errorf("update quote failed: %w", err)
	}
	return expectOneRow(result.RowsAffected())
}

func (r *SQLQuoteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, "DELETE FROM quotes WHERE id = ?", id.String())
	if err != nil {
		return fmt.Errorf("delete quote failed: %w", err)
	}
	return expectOneRow(result.RowsAffected())
}

func (r *SQLQuoteRepository) List(ctx context.Context, opts repository.ListOptions) ([]*Quote, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx,
		"SELECT "+quoteColumns+" FROM quotes ORDER BY seq LIMIT ? OFFSET ?",
		opts.Limit, opts.Offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	quotes := make([]*Quote, 0, opts.Limit)
	for rows.Next() {
		q, err := scanQuote(rows)
		if err != nil {
			return nil, err
		}
		quotes = append(quotes, q)
	}
	return quotes, rows.Err()
}

func (r *SQLQuoteRepository) Revise(ctx context.Context, id uuid.UUID, author, text string) (*Quote, error) {
	var revised *Quote
	err := r.db.Transaction(ctx, func(tx db.Querier) error {
		q, err := getQuote(ctx, tx, id)
		if err != nil {
			return err
		}
		q.Author, q.Quote, q.Version = author, text, q.Version+1
		result, err := tx.Exec(ctx,
			"UPDATE quotes SET author = ?, quote = ?, version = ? WHERE id = ?",
			q.Author, q.Quote, q.Version, id.String(),
		)
		if err != nil {
			return fmt.Errorf("revise quote failed: %w", err)
		}
		if err := expectOneRow(result.RowsAffected()); err != nil {
			return err
		}
		revised = q
		return nil
	})
	return revised, err
}

func (r *SQLQuoteRepository) Take(ctx context.Context, id uuid.UUID) (*Quote, error) {
	var taken *Quote
	err := r.db.Transaction(ctx, func(tx db.Querier) error {
		q, err := getQuote(ctx, tx, id)
		if err != nil {
			return err
		}
		result, err := tx.Exec(ctx, "DELETE FROM quotes WHERE id = ?", id.String())
		if err != nil {
			return fmt.Errorf("delete quote failed: %w", err)
		}
		if err := expectOneRow(result.RowsAffected()); err != nil {
			return err
		}
		taken = q
		return nil
	})
	return taken, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuote(row rowScanner) (*Quote, error) {
	var (
		q  Quote
		id string
	)
	if err := row.Scan(&id, &q.Author, &q.Quote, &q.CreatedAt, &q.Version); err != nil {
		return nil, err
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("stored quote id %q: %w", id, err)
	}
	q.ID = parsed
	return &q, nil
}

func getQuote(ctx context.Context, q db.Querier, id uuid.UUID) (*Quote, error) {
	row := q.QueryRow(ctx, "SELECT "+quoteColumns+" FROM quotes WHERE id = ?", id.String())
	quote, err := scanQuote(row)
	if db.IsNoRows(err) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return quote, nil
}

func expectOneRow(n int64, err error) error {
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}
