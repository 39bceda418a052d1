package sqlite

import (
	"context"
	"fmt"

	"github.com/aussiebroadwan/storefront/internal/storefront/domain"
	"github.com/aussiebroadwan/storefront/internal/storefront/store"
)

type productsRepo struct{ s *Store }

func (r *productsRepo) ListProducts(ctx context.Context, f domain.ProductFilter, p domain.PageRequest) (domain.Page[domain.Product], error) {
	l := r.s.d.Products(f, p)
	total, err := r.s.count(ctx, l.Count)
	if err != nil {
		return domain.Page[domain.Product]{}, err
	}
	items, err := queryAll(ctx, r.s.db, l.Page, scanProduct)
	if err != nil {
		return domain.Page[domain.Product]{}, fmt.Errorf("list products: %w", err)
	}
	return domain.Page[domain.Product]{Items: items, Page: p.Page, PageSize: p.PageSize, TotalItems: total}, nil
}

func (r *productsRepo) GetProduct(ctx context.Context, id int64) (domain.Product, error) {
	return queryOne(ctx, r.s.db, r.s.d.ProductByID(id), scanProduct)
}

func (r *productsRepo) CreateProduct(ctx context.Context, p domain.Product) (domain.Product, error) {
	q, args, err := r.s.d.InsertProduct(p).ToSql()
	if err != nil {
		return domain.Product{}, err
	}
	if err := r.s.db.QueryRowContext(ctx, q, args...).Scan(&p.ID); err != nil {
		return domain.Product{}, fmt.Errorf("insert product: %w", err)
	}
	return p, nil
}

func (r *productsRepo) UpdateProduct(ctx context.Context, p domain.Product) (domain.Product, error) {
	q, args, err := r.s.d.UpdateProduct(p).ToSql()
	if err != nil {
		return domain.Product{}, err
	}
	res, err := r.s.db.ExecContext(ctx, q, args...)
	if err != nil {
		return domain.Product{}, fmt.Errorf("update product: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.Product{}, store.ErrNotFound
	}
	return p, nil
}

func (r *productsRepo) DeleteProduct(ctx context.Context, id int64) error {
	refs, err := r.s.count(ctx, r.s.d.ProductReferences(id))
	if err != nil {
		return err
	}
	if refs > 0 {
		return store.ErrConflict
	}

	q, args, err := r.s.d.DeleteProduct(id).ToSql()
	if err != nil {
		return err
	}
	res, err := r.s.db.ExecContext(ctx, q, args...)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return store.ErrNotFound
	}
	return nil
}

type customersRepo struct{ s *Store }

func (r *customersRepo) ListCustomers(ctx context.Context, f domain.CustomerFilter, p domain.PageRequest) (domain.Page[domain.Customer], error) {
	l := r.s.d.Customers(f, p)
	total, err := r.s.count(ctx, l.Count)
	if err != nil {
		return domain.Page[domain.Customer]{}, err
	}
	items, err := queryAll(ctx, r.s.db, l.Page, scanCustomer)
	if err != nil {
		return domain.Page[domain.Customer]{}, fmt.Errorf("list customers: %w", err)
	}
	return domain.Page[domain.Customer]{Items: items, Page: p.Page, PageSize: p.PageSize, TotalItems: total}, nil
}

func (r *customersRepo) GetCustomer(ctx context.Context, id int64) (domain.Customer, error) {
	return queryOne(ctx, r.s.db, r.s.d.CustomerByID(id), scanCustomer)
}

type ordersRepo struct{ s *Store }

func (r *ordersRepo) ListOrders(ctx context.Context, f domain.OrderFilter, p domain.PageRequest) (domain.Page[domain.Order], error) {
	l := r.s.d.Orders(f, p)
	total, err := r.s.count(ctx, l.Count)
	if err != nil {
		return domain.Page[domain.Order]{}, err
	}
	items, err := queryAll(ctx, r.s.db, l.Page, scanOrder)
	if err != nil {
		return domain.Page[domain.Order]{}, fmt.Errorf("list orders: %w", err)
	}
	return domain.Page[domain.Order]{Items: items, Page: p.Page, PageSize: p.PageSize, TotalItems: total}, nil
}

func (r *ordersRepo) GetOrder(ctx context.Context, id int64) (domain.Order, error) {
	o, err := queryOne(ctx, r.s.db, r.s.d.OrderByID(id), scanOrder)
	if err != nil {
		return domain.Order{}, err
	}

	o.Items, err = queryAll(ctx, r.s.db, r.s.d.OrderItems(id), scanOrderItem)
	if err != nil {
		return domain.Order{}, fmt.Errorf("order items: %w", err)
	}
	return o, nil
}

func scanProduct(row scanner) (domain.Product, error) {
	var p domain.Product
	err := row.Scan(&p.ID, &p.Name, &p.Category, &p.PriceCents, &p.Stock)
	return p, err
}

func scanCustomer(row scanner) (domain.Customer, error) {
	var c domain.Customer
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Country, &c.CreatedAt)
	return c, err
}

func scanOrder(row scanner) (domain.Order, error) {
	var o domain.Order
	err := row.Scan(&o.ID, &o.CustomerID, &o.Status, &o.TotalCents, &o.PlacedAt)
	return o, err
}

func scanOrderItem(row scanner) (domain.OrderItem, error) {
	var it domain.OrderItem
	err := row.Scan(&it.ProductID, &it.ProductName, &it.Quantity, &it.UnitPriceCents)
	return it, err
}
