package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"codehunt/internal/common/db"
)

var ErrNegativeLimit = errors.New("limit must not be negative")

const (
	createOrdersTable = `CREATE TABLE orders (
	id INTEGER,
	region_id INTEGER,
	gift_name VARCHAR(255),
	quantity INTEGER
)`
	createRegionsTable = `CREATE TABLE regions (
	id INTEGER,
	name VARCHAR(255)
)`
)

// OrderRepository stores gift orders and their regions.
type OrderRepository interface {
	Warmup(ctx context.Context) (int64, error)
	ResetOrders(ctx context.Context) error
	ResetAll(ctx context.Context) error
	InsertOrders(ctx context.Context, orders []Order) error
	InsertRegions(ctx context.Context, regions []Region) error
	TotalQuantity(ctx context.Context) (int64, error)
	MostPopularGift(ctx context.Context) (string, bool, error)
	TotalsByRegion(ctx context.Context) ([]RegionTotal, error)
	TopGiftsByRegion(ctx context.Context, limit int) ([]RegionTopGifts, error)
}

type SQLOrderRepository struct {
	db *db.Database
}

func NewOrderRepository(database *db.Database) OrderRepository {
	return &SQLOrderRepository{db: database}
}

// Warmup runs a constant query to prove the database answers.
func (r *SQLOrderRepository) Warmup(ctx context.Context) (int64, error) {
	var v int64
	if err := r.db.QueryRow(ctx, "SELECT 20231213").Scan(&v); err != nil {
		return 0, err
	}
	return v, nil
}

// ResetOrders recreates an empty orders table.
func (r *SQLOrderRepository) ResetOrders(ctx context.Context) error {
	return r.exec(ctx, "DROP TABLE IF EXISTS orders", createOrdersTable)
}

// ResetAll recreates empty orders and regions tables.
func (r *SQLOrderRepository) ResetAll(ctx context.Context) error {
	return r.exec(ctx,
		"DROP TABLE IF EXISTS orders",
		"DROP TABLE IF EXISTS regions",
		createRegionsTable,
		createOrdersTable,
	)
}

// DDL statements run one by one since MySQL commits them implicitly.
func (r *SQLOrderRepository) exec(ctx context.Context, statements ...string) error {
	for _, stmt := range statements {
		if _, err := r.db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("exec %q failed: %w", stmt, err)
		}
	}
	return nil
}

func (r *SQLOrderRepository) InsertOrders(ctx context.Context, orders []Order) error {
	if len(orders) == 0 {
		return nil
	}
	return r.db.Transaction(ctx, func(q db.Querier) error {
		query := "INSERT INTO orders (id, region_id, gift_name, quantity) VALUES (?, ?, ?, ?)"
		for _, o := range orders {
			if _, err := q.Exec(ctx, query, o.ID, o.RegionID, o.GiftName, o.Quantity); err != nil {
				return fmt.Errorf("insert order %d failed: %w", o.ID, err)
			}
		}
		return nil
	})
}

func (r *SQLOrderRepository) InsertRegions(ctx context.Context, regions []Region) error {
	if len(regions) == 0 {
		return nil
	}
	return r.db.Transaction(ctx, func(q db.Querier) error {
		query := "INSERT INTO regions (id, name) VALUES (?, ?)"
		for _, region := range regions {
			if _, err := q.Exec(ctx, query, region.ID, region.Name); err != nil {
				return fmt.Errorf("insert region %d failed: %w", region.ID, err)
			}
		}
		return nil
	})
}

func (r *SQLOrderRepository) TotalQuantity(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.QueryRow(ctx, "SELECT COALESCE(SUM(quantity), 0) FROM orders").Scan(&total)
	if err != nil {
		return 0, err
	}
	return total, nil
}

// MostPopularGift returns the gift with the highest summed quantity. Ties go
// to the alphabetically first gift. ok is false when there are no orders.
func (r *SQLOrderRepository) MostPopularGift(ctx context.Context) (string, bool, error) {
	query := `SELECT gift_name FROM orders
GROUP BY gift_name
ORDER BY SUM(quantity) DESC, gift_name
LIMIT 1`
	var name string
	err := r.db.QueryRow(ctx, query).Scan(&name)
	if db.IsNoRows(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return name, true, nil
}

// TotalsByRegion sums the orders of every region that has any, by region name.
func (r *SQLOrderRepository) TotalsByRegion(ctx context.Context) ([]RegionTotal, error) {
	query := `SELECT r.name, SUM(o.quantity) FROM orders o
JOIN regions r ON o.region_id = r.id
GROUP BY r.id, r.name
ORDER BY r.name`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	totals := make([]RegionTotal, 0)
	for rows.Next() {
		var t RegionTotal
		if err := rows.Scan(&t.Region, &t.Total); err != nil {
			return nil, err
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}

// TopGiftsByRegion lists every region by name with up to limit gifts,
// most ordered first and ties broken by gift name.
func (r *SQLOrderRepository) TopGiftsByRegion(ctx context.Context, limit int) ([]RegionTopGifts, error) {
	if limit < 0 {
		return nil, ErrNegativeLimit
	}
	query := `SELECT r.id, r.name, o.gift_name, SUM(o.quantity) AS total FROM regions r
LEFT JOIN orders o ON o.region_id = r.id
GROUP BY r.id, r.name, o.gift_name
ORDER BY r.name, r.id, total DESC, o.gift_name`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]RegionTopGifts, 0)
	lastID := int64(0)
	for rows.Next() {
		var (
			id    int64
			name  string
			gift  sql.NullString
			total sql.NullInt64
		)
		if err := rows.Scan(&id, &name, &gift, &total); err != nil {
			return nil, err
		}
		if len(out) == 0 || id != lastID || name != out[len(out)-1].Region {
			out = append(out, RegionTopGifts{Region: name, TopGifts: []string{}})
			lastID = id
		}
		cur := &out[len(out)-1]
		if gift.Valid && len(cur.TopGifts) < limit {
			cur.TopGifts = append(cur.TopGifts, gift.String)
		}
	}
	return out, rows.Err()
}
