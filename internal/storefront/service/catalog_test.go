package service_test

import (
	"context"
	"math"
	"strings"
	"testing"

	"github.com/aussiebroadwan/storefront/internal/storefront/domain"
	"github.com/aussiebroadwan/storefront/internal/storefront/service"
	"github.com/aussiebroadwan/storefront/internal/storefront/store/drivers/sqlite"
	"github.com/stretchr/testify/require"
)

func newCatalogService(t *testing.T) *service.CatalogService {
	t.Helper()

	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.ApplyMigrations())

	return &service.CatalogService{Catalog: s}
}

func requireFields(t *testing.T, err error, fields ...string) {
	t.Helper()

	var verr *service.ValidationError
	require.ErrorAs(t, err, &verr)
	for _, f := range fields {
		require.Contains(t, verr.Fields, f)
	}
}

func ptr[T any](v T) *T { return &v }

func TestNormalizePage(t *testing.T) {
	got, err := service.NormalizePage(domain.PageRequest{})
	require.NoError(t, err)
	require.Equal(t, domain.PageRequest{Page: 1, PageSize: service.DefaultPageSize}, got)

	_, err = service.NormalizePage(domain.PageRequest{Page: -1, PageSize: service.MaxPageSize + 1})
	requireFields(t, err, "page", "pageSize")

	got, err = service.NormalizePage(domain.PageRequest{Page: 3, PageSize: service.MaxPageSize})
	require.NoError(t, err)
	require.Equal(t, 3, got.Page)

	got, err = service.NormalizePage(domain.PageRequest{Page: service.MaxPage, PageSize: service.MaxPageSize})
	require.NoError(t, err)
	require.Positive(t, got.Offset())

	_, err = service.NormalizePage(domain.PageRequest{Page: math.MaxInt, PageSize: service.MaxPageSize})
	requireFields(t, err, "page")
}

func TestCatalogProducts(t *testing.T) {
	ctx := context.Background()
	svc := newCatalogService(t)

	t.Run("defaults the page", func(t *testing.T) {
		page, err := svc.ListProducts(ctx, domain.ProductFilter{}, domain.PageRequest{})
		require.NoError(t, err)
		require.Equal(t, 1, page.Page)
		require.Equal(t, service.DefaultPageSize, page.PageSize)
		require.Len(t, page.Items, 10)
	})

	t.Run("price range", func(t *testing.T) {
		page, err := svc.ListProducts(ctx, domain.ProductFilter{
			Category: " Equipment ",
			MinPrice: ptr[int64](2000),
			MaxPrice: ptr[int64](5000),
		}, domain.PageRequest{})
		require.NoError(t, err)
		require.EqualValues(t, 3, page.TotalItems)
	})

	t.Run("inverted price range", func(t *testing.T) {
		_, err := svc.ListProducts(ctx, domain.ProductFilter{
			MinPrice: ptr[int64](5000),
			MaxPrice: ptr[int64](2000),
		}, domain.PageRequest{})
		requireFields(t, err, "minPrice")
	})

	t.Run("negative prices", func(t *testing.T) {
		_, err := svc.ListProducts(ctx, domain.ProductFilter{MaxPrice: ptr[int64](-1)}, domain.PageRequest{})
		requireFields(t, err, "maxPrice")
	})

	t.Run("missing product", func(t *testing.T) {
		_, err := svc.GetProduct(ctx, 999)
		require.ErrorIs(t, err, service.ErrNotFound)
	})

	t.Run("create trims and validates", func(t *testing.T) {
		created, err := svc.CreateProduct(ctx, domain.Product{Name: "  Scale  ", Category: "Equipment", PriceCents: 3900, Stock: 3})
		require.NoError(t, err)
		require.Equal(t, "Scale", created.Name)
		require.Positive(t, created.ID)

		_, err = svc.CreateProduct(ctx, domain.Product{Name: strings.Repeat("x", 201), Category: " ", Stock: -1})
		requireFields(t, err, "name", "category", "stock")
	})

	t.Run("update missing product", func(t *testing.T) {
		_, err := svc.UpdateProduct(ctx, domain.Product{ID: 999, Name: "Ghost", Category: "Coffee"})
		require.ErrorIs(t, err, service.ErrNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		require.ErrorIs(t, svc.DeleteProduct(ctx, 1), service.ErrConflict)
		require.ErrorIs(t, svc.DeleteProduct(ctx, 999), service.ErrNotFound)

		created, err := svc.CreateProduct(ctx, domain.Product{Name: "Temp", Category: "Supplies", PriceCents: 100})
		require.NoError(t, err)
		require.NoError(t, svc.DeleteProduct(ctx, created.ID))
	})
}

func TestCatalogCustomersAndOrders(t *testing.T) {
	ctx := context.Background()
	svc := newCatalogService(t)

	t.Run("customers by country", func(t *testing.T) {
		page, err := svc.ListCustomers(ctx, domain.CustomerFilter{Country: "Australia"}, domain.PageRequest{})
		require.NoError(t, err)
		require.EqualValues(t, 2, page.TotalItems)
	})

	t.Run("customer orders require the customer", func(t *testing.T) {
		page, err := svc.ListCustomerOrders(ctx, 1, domain.PageRequest{})
		require.NoError(t, err)
		require.EqualValues(t, 2, page.TotalItems)

		_, err = svc.ListCustomerOrders(ctx, 404, domain.PageRequest{})
		require.ErrorIs(t, err, service.ErrNotFound)
	})

	t.Run("status is case-insensitive", func(t *testing.T) {
		page, err := svc.ListOrders(ctx, domain.OrderFilter{Status: "Delivered"}, domain.PageRequest{})
		require.NoError(t, err)
		require.EqualValues(t, 3, page.TotalItems)
	})

	t.Run("bad order filters", func(t *testing.T) {
		_, err := svc.ListOrders(ctx, domain.OrderFilter{Status: "lost", CustomerID: ptr[int64](0)}, domain.PageRequest{})
		requireFields(t, err, "status", "customerId")
	})

	t.Run("order items", func(t *testing.T) {
		o, err := svc.GetOrder(ctx, 1)
		require.NoError(t, err)
		require.Len(t, o.Items, 3)

		_, err = svc.GetOrder(ctx, 404)
		require.ErrorIs(t, err, service.ErrNotFound)
	})
}
