package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"github.com/zhouzirui/cliente-api/internal/model/customer"
)

const schema = `CREATE TABLE IF NOT EXISTS customers (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	national_id TEXT NOT NULL
)`

// Store persists customers in a single SQLite table.
type Store struct {
	db   *sql.DB
	path string
}

var _ customer.Store = (*Store)(nil)

// Open creates (or reuses) the database at path and ensures the schema exists.
func Open(ctx context.Context, path string) (*Store, error) {
	if path == "" {
		path = "customers.db"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// a single connection keeps writers from tripping over SQLITE_BUSY
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create customers table: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

// Path returns the database file backing the store.
func (s *Store) Path() string { return s.path }

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// SeedIfEmpty inserts items only when the table holds no rows yet.
// It reports whether seeding happened.
func (s *Store) SeedIfEmpty(ctx context.Context, items []customer.Customer) (bool, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM customers`).Scan(&count); err != nil {
		return false, fmt.Errorf("count customers: %w", err)
	}
	if count > 0 || len(items) == 0 {
		return false, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin seed: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, item := range items {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO customers (id, name, national_id) VALUES (?, ?, ?) ON CONFLICT(id) DO NOTHING`,
			item.ID, item.Name, item.NationalID,
		); err != nil {
			return false, fmt.Errorf("seed customer %q: %w", item.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit seed: %w", err)
	}
	return true, nil
}

// List returns every customer ordered by id.
func (s *Store) List(ctx context.Context) ([]customer.Customer, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, national_id FROM customers ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("select customers: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := make([]customer.Customer, 0)
	for rows.Next() {
		var c customer.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.NationalID); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate customers: %w", err)
	}
	return out, nil
}

// Filter scans all rows in Go so case folding matches the in-memory store;
// SQLite's lower() only folds ASCII.
func (s *Store) Filter(ctx context.Context, q customer.Criteria) ([]customer.Customer, error) {
	if q.Empty() {
		return []customer.Customer{}, nil
	}
	items, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return customer.Apply(q, items), nil
}

// Insert adds c unless its id is already taken.
func (s *Store) Insert(ctx context.Context, c customer.Customer) error {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO customers (id, name, national_id) VALUES (?, ?, ?) ON CONFLICT(id) DO NOTHING`,
		c.ID, c.Name, c.NationalID,
	)
	if err != nil {
		return fmt.Errorf("insert customer %q: %w", c.ID, err)
	}
	return expectRow(res, customer.ErrCustomerExists)
}

// Update overwrites name and national id of an existing customer.
func (s *Store) Update(ctx context.Context, c customer.Customer) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE customers SET name = ?, national_id = ? WHERE id = ?`,
		c.Name, c.NationalID, c.ID,
	)
	if err != nil {
		return fmt.Errorf("update customer %q: %w", c.ID, err)
	}
	return expectRow(res, customer.ErrCustomerNotFound)
}

// Delete removes the customer with the given id.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM customers WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete customer %q: %w", id, err)
	}
	return expectRow(res, customer.ErrCustomerNotFound)
}

func expectRow(res sql.Result, none error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return none
	}
	return nil
}
