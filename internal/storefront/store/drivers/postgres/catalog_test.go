package postgres_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/aussiebroadwan/storefront/internal/storefront/domain"
	"github.com/aussiebroadwan/storefront/internal/storefront/store"
	"github.com/aussiebroadwan/storefront/internal/storefront/store/drivers/postgres"
)

// startPostgres runs a throwaway Postgres and returns its DSN.
func startPostgres(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("postgres container tests skipped in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "storefront",
				"POSTGRES_PASSWORD": "storefront",
				"POSTGRES_DB":       "storefront",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	return fmt.Sprintf("postgres://storefront:storefront@%s:%s/storefront?sslmode=disable", host, port.Port())
}

func TestPostgresCatalog(t *testing.T) {
	dsn := startPostgres(t)
	ctx := context.Background()

	s, err := postgres.NewStore(ctx, dsn, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	require.NoError(t, s.ApplyMigrations())
	require.NoError(t, s.Ping(ctx))

	t.Run("products page and filter", func(t *testing.T) {
		got, err := s.Products().ListProducts(ctx, domain.ProductFilter{Name: "kettle"}, domain.PageRequest{Page: 1, PageSize: 20})
		require.NoError(t, err)
		require.EqualValues(t, 1, got.TotalItems)
		require.Equal(t, "Pour Over Kettle", got.Items[0].Name)
	})

	t.Run("sequence continues after seed", func(t *testing.T) {
		p, err := s.Products().CreateProduct(ctx, domain.Product{Name: "Tamper", Category: "Equipment", PriceCents: 4500})
		require.NoError(t, err)
		require.EqualValues(t, 11, p.ID)
		require.NoError(t, s.Products().DeleteProduct(ctx, p.ID))
	})

	t.Run("referenced product conflicts", func(t *testing.T) {
		require.ErrorIs(t, s.Products().DeleteProduct(ctx, 1), store.ErrConflict)
	})

	t.Run("order with items", func(t *testing.T) {
		o, err := s.Orders().GetOrder(ctx, 8)
		require.NoError(t, err)
		require.Len(t, o.Items, 3)
		require.Equal(t, domain.OrderStatusDelivered, o.Status)
	})

	t.Run("customers", func(t *testing.T) {
		got, err := s.Customers().ListCustomers(ctx, domain.CustomerFilter{Name: "o'brien"}, domain.PageRequest{Page: 1, PageSize: 5})
		require.NoError(t, err)
		require.Len(t, got.Items, 1)

		_, err = s.Customers().GetCustomer(ctx, 404)
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}
