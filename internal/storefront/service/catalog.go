package service

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"math"
	"slices"
	"strings"

	"github.com/aussiebroadwan/storefront/internal/storefront/domain"
	"github.com/aussiebroadwan/storefront/internal/storefront/store"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
	// MaxPage keeps (page-1)*pageSize within int for any valid page size.
	MaxPage = math.MaxInt / MaxPageSize

	maxNameLength = 200
)

var (
	ErrNotFound = errors.New("not_found")
	ErrConflict = errors.New("conflict")
)

// ValidationError lists rejected input fields with a short message each.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := slices.Sorted(maps.Keys(e.Fields))
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

type validator map[string]string

func (v validator) check(ok bool, field, msg string) {
	if !ok {
		if _, exists := v[field]; !exists {
			v[field] = msg
		}
	}
}

func (v validator) err() error {
	if len(v) == 0 {
		return nil
	}
	return &ValidationError{Fields: v}
}

// CatalogService is the read/write surface over customers, products and
// orders. It validates input and maps store errors to service errors.
type CatalogService struct {
	Catalog store.Catalog
}

// NormalizePage fills in a default page size and rejects out of range values.
func NormalizePage(p domain.PageRequest) (domain.PageRequest, error) {
	if p.PageSize == 0 {
		p.PageSize = DefaultPageSize
	}
	if p.Page == 0 {
		p.Page = 1
	}

	v := validator{}
	v.check(p.Page >= 1, "page", "must be at least 1")
	v.check(p.Page <= MaxPage, "page", fmt.Sprintf("must be at most %d", MaxPage))
	v.check(p.PageSize >= 1 && p.PageSize <= MaxPageSize, "pageSize", fmt.Sprintf("must be between 1 and %d", MaxPageSize))
	return p, v.err()
}

func (s *CatalogService) ListProducts(ctx context.Context, f domain.ProductFilter, p domain.PageRequest) (domain.Page[domain.Product], error) {
	p, err := NormalizePage(p)
	if err != nil {
		return domain.Page[domain.Product]{}, err
	}

	v := validator{}
	v.check(f.MinPrice == nil || *f.MinPrice >= 0, "minPrice", "must not be negative")
	v.check(f.MaxPrice == nil || *f.MaxPrice >= 0, "maxPrice", "must not be negative")
	if f.MinPrice != nil && f.MaxPrice != nil {
		v.check(*f.MinPrice <= *f.MaxPrice, "minPrice", "must not exceed maxPrice")
	}
	if err := v.err(); err != nil {
		return domain.Page[domain.Product]{}, err
	}

	f.Name = strings.TrimSpace(f.Name)
	f.Category = strings.TrimSpace(f.Category)

	page, err := s.Catalog.Products().ListProducts(ctx, f, p)
	return page, mapStoreErr(err)
}

func (s *CatalogService) GetProduct(ctx context.Context, id int64) (domain.Product, error) {
	p, err := s.Catalog.Products().GetProduct(ctx, id)
	return p, mapStoreErr(err)
}

func (s *CatalogService) CreateProduct(ctx context.Context, p domain.Product) (domain.Product, error) {
	p, err := validateProduct(p)
	if err != nil {
		return domain.Product{}, err
	}

	created, err := s.Catalog.Products().CreateProduct(ctx, p)
	return created, mapStoreErr(err)
}

func (s *CatalogService) UpdateProduct(ctx context.Context, p domain.Product) (domain.Product, error) {
	p, err := validateProduct(p)
	if err != nil {
		return domain.Product{}, err
	}

	updated, err := s.Catalog.Products().UpdateProduct(ctx, p)
	return updated, mapStoreErr(err)
}

// DeleteProduct returns ErrConflict while any order still references the product.
func (s *CatalogService) DeleteProduct(ctx context.Context, id int64) error {
	return mapStoreErr(s.Catalog.Products().DeleteProduct(ctx, id))
}

func (s *CatalogService) ListCustomers(ctx context.Context, f domain.CustomerFilter, p domain.PageRequest) (domain.Page[domain.Customer], error) {
	p, err := NormalizePage(p)
	if err != nil {
		return domain.Page[domain.Customer]{}, err
	}

	f.Name = strings.TrimSpace(f.Name)
	f.Country = strings.TrimSpace(f.Country)

	page, err := s.Catalog.Customers().ListCustomers(ctx, f, p)
	return page, mapStoreErr(err)
}

func (s *CatalogService) GetCustomer(ctx context.Context, id int64) (domain.Customer, error) {
	c, err := s.Catalog.Customers().GetCustomer(ctx, id)
	return c, mapStoreErr(err)
}

// ListCustomerOrders is ListOrders scoped to one customer, which must exist.
func (s *CatalogService) ListCustomerOrders(ctx context.Context, customerID int64, p domain.PageRequest) (domain.Page[domain.Order], error) {
	if _, err := s.GetCustomer(ctx, customerID); err != nil {
		return domain.Page[domain.Order]{}, err
	}
	return s.ListOrders(ctx, domain.OrderFilter{CustomerID: &customerID}, p)
}

func (s *CatalogService) ListOrders(ctx context.Context, f domain.OrderFilter, p domain.PageRequest) (domain.Page[domain.Order], error) {
	p, err := NormalizePage(p)
	if err != nil {
		return domain.Page[domain.Order]{}, err
	}

	f.Status = strings.ToLower(strings.TrimSpace(f.Status))
	v := validator{}
	v.check(f.Status == "" || isOrderStatus(f.Status), "status", "unknown order status")
	v.check(f.CustomerID == nil || *f.CustomerID > 0, "customerId", "must be a positive integer")
	if err := v.err(); err != nil {
		return domain.Page[domain.Order]{}, err
	}

	page, err := s.Catalog.Orders().ListOrders(ctx, f, p)
	return page, mapStoreErr(err)
}

func (s *CatalogService) GetOrder(ctx context.Context, id int64) (domain.Order, error) {
	o, err := s.Catalog.Orders().GetOrder(ctx, id)
	return o, mapStoreErr(err)
}

func validateProduct(p domain.Product) (domain.Product, error) {
	p.Name = strings.TrimSpace(p.Name)
	p.Category = strings.TrimSpace(p.Category)

	v := validator{}
	v.check(p.Name != "", "name", "is required")
	v.check(len(p.Name) <= maxNameLength, "name", fmt.Sprintf("must be at most %d characters", maxNameLength))
	v.check(p.Category != "", "category", "is required")
	v.check(p.PriceCents >= 0, "priceCents", "must not be negative")
	v.check(p.Stock >= 0, "stock", "must not be negative")
	return p, v.err()
}

func isOrderStatus(s string) bool {
	switch s {
	case domain.OrderStatusPending, domain.OrderStatusShipped,
		domain.OrderStatusDelivered, domain.OrderStatusCancelled:
		return true
	}
	return false
}

func mapStoreErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, store.ErrConflict):
		return ErrConflict
	default:
		return err
	}
}
