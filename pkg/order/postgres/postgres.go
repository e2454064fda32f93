package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"foodorder/pkg/order"
)

const schema = `CREATE TABLE IF NOT EXISTS orders (
	position INT NOT NULL,
	id TEXT PRIMARY KEY,
	body JSONB NOT NULL
)`

// Store persists orders in PostgreSQL, one row per order.
type Store struct {
	db *sql.DB
}

// New creates a PostgreSQL store.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Migrate creates the orders table if it does not exist.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create orders table: %w", err)
	}
	return nil
}

// Load fetches all orders in insertion order.
func (s *Store) Load(ctx context.Context) ([]order.Order, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT body FROM orders ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	orders := []order.Order{}
	for rows.Next() {
		var body []byte
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		var o order.Order
		if err := json.Unmarshal(body, &o); err != nil {
			return nil, fmt.Errorf("decode order: %w", err)
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

// Save replaces the table contents with orders inside one transaction.
func (s *Store) Save(ctx context.Context, orders []order.Order) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, "DELETE FROM orders"); err != nil {
		return fmt.Errorf("clear orders: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO orders (position,id,body) VALUES ($1,$2,$3)")
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, o := range orders {
		body, merr := json.Marshal(o)
		if merr != nil {
			err = fmt.Errorf("encode order %s: %w", o.ID, merr)
			return err
		}
		if _, err = stmt.ExecContext(ctx, i, o.ID, body); err != nil {
			return fmt.Errorf("insert order %s: %w", o.ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
