package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	_ "modernc.org/sqlite"

	"github.com/aussiebroadwan/storefront/internal/storefront/store"
	"github.com/aussiebroadwan/storefront/internal/storefront/store/drivers/sqlq"
)

// Store is the SQLite catalog. Writes are serialised through a single
// connection, which also keeps ":memory:" databases alive for the store's
// lifetime.
type Store struct {
	db  *sql.DB
	d   sqlq.Dialect
	dsn string
}

var _ store.Catalog = (*Store)(nil)

func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	// Enforce FKs
	if _, err := db.ExecContext(context.Background(), `PRAGMA foreign_keys = ON;`); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db, d: sqlq.SQLite, dsn: dsn}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Customers() store.Customers { return &customersRepo{s} }
func (s *Store) Products() store.Products   { return &productsRepo{s} }
func (s *Store) Orders() store.Orders       { return &ordersRepo{s} }

func (s *Store) count(ctx context.Context, b sq.SelectBuilder) (int64, error) {
	q, args, err := b.ToSql()
	if err != nil {
		return 0, err
	}
	var n int64
	if err := s.db.QueryRowContext(ctx, q, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

// queryAll runs b and scans every row with scan.
func queryAll[T any](ctx context.Context, db *sql.DB, b sq.SelectBuilder, scan func(scanner) (T, error)) ([]T, error) {
	q, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func queryOne[T any](ctx context.Context, db *sql.DB, b sq.SelectBuilder, scan func(scanner) (T, error)) (T, error) {
	q, args, err := b.ToSql()
	if err != nil {
		var zero T
		return zero, err
	}
	v, err := scan(db.QueryRowContext(ctx, q, args...))
	return v, mapNotFound(err)
}

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}
