package sqlq_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/storefront/internal/storefront/domain"
	"github.com/aussiebroadwan/storefront/internal/storefront/store/drivers/sqlq"
)

func TestProductsListing(t *testing.T) {
	minPrice := int64(100)
	f := domain.ProductFilter{Name: "be%an_", Category: "Coffee", MinPrice: &minPrice}
	p := domain.PageRequest{Page: 3, PageSize: 10}

	t.Run("sqlite", func(t *testing.T) {
		l := sqlq.SQLite.Products(f, p)

		q, args, err := l.Page.ToSql()
		require.NoError(t, err)
		require.Equal(t,
			"SELECT id, name, category, price_cents, stock FROM products WHERE name LIKE ? AND LOWER(category) = LOWER(?) AND price_cents >= ? ORDER BY id LIMIT 10 OFFSET 20",
			q)
		require.Equal(t, []any{"%bean%", "Coffee", int64(100)}, args)

		q, _, err = l.Count.ToSql()
		require.NoError(t, err)
		require.Equal(t, "SELECT COUNT(*) FROM products WHERE name LIKE ? AND LOWER(category) = LOWER(?) AND price_cents >= ?", q)
	})

	t.Run("postgres", func(t *testing.T) {
		q, _, err := sqlq.Postgres.Products(f, p).Page.ToSql()
		require.NoError(t, err)
		require.Contains(t, q, "name ILIKE $1")
		require.Contains(t, q, "price_cents >= $3")
	})
}

func TestOrdersListing(t *testing.T) {
	id := int64(4)
	q, args, err := sqlq.SQLite.Orders(domain.OrderFilter{CustomerID: &id, Status: "pending"}, domain.PageRequest{Page: 1, PageSize: 5}).Page.ToSql()
	require.NoError(t, err)
	require.Equal(t,
		"SELECT id, customer_id, status, total_cents, placed_at FROM orders WHERE customer_id = ? AND status = ? ORDER BY placed_at DESC, id DESC LIMIT 5 OFFSET 0",
		q)
	require.Equal(t, []any{int64(4), "pending"}, args)
}

func TestOrderItemsJoin(t *testing.T) {
	q, _, err := sqlq.Postgres.OrderItems(7).ToSql()
	require.NoError(t, err)
	require.Equal(t,
		"SELECT oi.product_id, p.name, oi.quantity, oi.unit_price_cents FROM order_items oi JOIN products p ON p.id = oi.product_id WHERE oi.order_id = $1 ORDER BY oi.product_id",
		q)
}
