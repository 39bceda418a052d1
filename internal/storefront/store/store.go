package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/storefront/internal/storefront/domain"
)

var (
	ErrNotFound = errors.New("store: not found")
	ErrExpired  = errors.New("store: expired")
	ErrConflict = errors.New("store: conflict")
)

// Sessions holds refresh-token sessions keyed by token fingerprint. Every
// method is atomic with respect to the others.
type Sessions interface {
	// Put stores s under hash, replacing any previous entry.
	Put(ctx context.Context, hash string, s domain.Session) error

	// TakeIfValid removes the entry for hash and returns it. A missing entry
	// gives ErrNotFound. An entry that expired at or before now is still
	// removed but gives ErrExpired.
	TakeIfValid(ctx context.Context, hash string, now time.Time) (domain.Session, error)

	// Remove deletes the entry for hash if present. Missing entries are not
	// an error.
	Remove(ctx context.Context, hash string) error

	// RemoveAllForUser deletes every entry owned by username and reports how
	// many were dropped.
	RemoveAllForUser(ctx context.Context, username string) (int, error)

	// DeleteExpired sweeps entries that expired at or before now.
	DeleteExpired(ctx context.Context, now time.Time) (int, error)
}

// Catalog is the root data access interface for the sample dataset.
// Concrete drivers (sqlite, postgres) implement it.
type Catalog interface {
	Customers() Customers
	Products() Products
	Orders() Orders

	ApplyMigrations() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error

	Close() error
}

type Customers interface {
	ListCustomers(ctx context.Context, f domain.CustomerFilter, p domain.PageRequest) (domain.Page[domain.Customer], error)
	GetCustomer(ctx context.Context, id int64) (domain.Customer, error)
}

type Products interface {
	ListProducts(ctx context.Context, f domain.ProductFilter, p domain.PageRequest) (domain.Page[domain.Product], error)
	GetProduct(ctx context.Context, id int64) (domain.Product, error)

	// CreateProduct inserts p (ID ignored) and returns it with its new ID.
	CreateProduct(ctx context.Context, p domain.Product) (domain.Product, error)

	// UpdateProduct overwrites every mutable column of the product with p.ID.
	UpdateProduct(ctx context.Context, p domain.Product) (domain.Product, error)

	// DeleteProduct fails with ErrConflict while order items reference it.
	DeleteProduct(ctx context.Context, id int64) error
}

type Orders interface {
	ListOrders(ctx context.Context, f domain.OrderFilter, p domain.PageRequest) (domain.Page[domain.Order], error)

	// GetOrder returns the order with its items joined to product names.
	GetOrder(ctx context.Context, id int64) (domain.Order, error)
}
