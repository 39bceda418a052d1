package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	"github.com/golang-migrate/migrate/v4"
	pgmigrate "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/aussiebroadwan/storefront/internal/storefront/store"
	"github.com/aussiebroadwan/storefront/internal/storefront/store/drivers/postgres/migrations"
	"github.com/aussiebroadwan/storefront/internal/storefront/store/drivers/sqlq"
)

// Store is the Postgres catalog backed by a pgx connection pool.
type Store struct {
	pool   *pgxpool.Pool
	d      sqlq.Dialect
	dsn    string
	logger *slog.Logger
}

var _ store.Catalog = (*Store)(nil)

func NewStore(ctx context.Context, dsn string, logger *slog.Logger) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open pool: %w", err)
	}
	logger.Info("postgres pool initialised", "max_conns", cfg.MaxConns)

	return &Store{pool: pool, d: sqlq.Postgres, dsn: dsn, logger: logger}, nil
}

func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// ApplyMigrations runs the embedded migrations over a short-lived
// database/sql handle, separate from the pool.
func (s *Store) ApplyMigrations() error {
	db, err := sql.Open("pgx", s.dsn)
	if err != nil {
		return fmt.Errorf("open pgx stdlib: %w", err)
	}
	defer db.Close()

	driver, err := pgmigrate.WithInstance(db, &pgmigrate.Config{})
	if err != nil {
		return fmt.Errorf("postgres migrate driver: %w", err)
	}

	src, err := iofs.New(migrations.Migrations, ".")
	if err != nil {
		return fmt.Errorf("iofs source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		return fmt.Errorf("migrate instance: %w", err)
	}

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			s.logger.Debug("no new migrations to apply")
			return nil
		}
		return fmt.Errorf("apply migrations: %w", err)
	}
	s.logger.Info("migrations applied")
	return nil
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
	if err := s.pool.QueryRow(ctx, q, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	return n, nil
}

func (s *Store) exec(ctx context.Context, b sq.Sqlizer) (int64, error) {
	q, args, err := b.ToSql()
	if err != nil {
		return 0, err
	}
	tag, err := s.pool.Exec(ctx, q, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func queryAll[T any](ctx context.Context, s *Store, b sq.SelectBuilder, scan func(pgx.Row) (T, error)) ([]T, error) {
	q, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.pool.Query(ctx, q, args...)
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

func queryOne[T any](ctx context.Context, s *Store, b sq.SelectBuilder, scan func(pgx.Row) (T, error)) (T, error) {
	q, args, err := b.ToSql()
	if err != nil {
		var zero T
		return zero, err
	}
	v, err := scan(s.pool.QueryRow(ctx, q, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return v, store.ErrNotFound
	}
	return v, err
}
