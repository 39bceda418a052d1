// Package sqlq builds the catalog queries shared by the SQL drivers. Drivers
// differ only in placeholder style and in how a case-insensitive substring
// match is spelled.
package sqlq

import (
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/aussiebroadwan/storefront/internal/storefront/domain"
)

var (
	ProductColumns  = []string{"id", "name", "category", "price_cents", "stock"}
	CustomerColumns = []string{"id", "name", "email", "country", "created_at"}
	OrderColumns    = []string{"id", "customer_id", "status", "total_cents", "placed_at"}
	ItemColumns     = []string{"oi.product_id", "p.name", "oi.quantity", "oi.unit_price_cents"}
)

// Dialect pairs a statement builder with the dialect's substring match.
type Dialect struct {
	Builder  sq.StatementBuilderType
	Contains func(column, substr string) sq.Sqlizer
}

// SQLite's LIKE already ignores ASCII case.
var SQLite = Dialect{
	Builder: sq.StatementBuilder.PlaceholderFormat(sq.Question),
	Contains: func(column, substr string) sq.Sqlizer {
		return sq.Like{column: "%" + escapeLike(substr) + "%"}
	},
}

var Postgres = Dialect{
	Builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	Contains: func(column, substr string) sq.Sqlizer {
		return sq.ILike{column: "%" + escapeLike(substr) + "%"}
	},
}

// Listing is a count query plus the matching page query.
type Listing struct {
	Count sq.SelectBuilder
	Page  sq.SelectBuilder
}

func (d Dialect) listing(table string, columns []string, conds []sq.Sqlizer, p domain.PageRequest, orderBy ...string) Listing {
	count := d.Builder.Select("COUNT(*)").From(table)
	page := d.Builder.Select(columns...).From(table)
	for _, c := range conds {
		count = count.Where(c)
		page = page.Where(c)
	}
	page = page.OrderBy(orderBy...).Limit(uint64(p.PageSize)).Offset(p.Offset())
	return Listing{Count: count, Page: page}
}

func (d Dialect) Products(f domain.ProductFilter, p domain.PageRequest) Listing {
	var conds []sq.Sqlizer
	if f.Name != "" {
		conds = append(conds, d.Contains("name", f.Name))
	}
	if f.Category != "" {
		conds = append(conds, sq.Expr("LOWER(category) = LOWER(?)", f.Category))
	}
	if f.MinPrice != nil {
		conds = append(conds, sq.GtOrEq{"price_cents": *f.MinPrice})
	}
	if f.MaxPrice != nil {
		conds = append(conds, sq.LtOrEq{"price_cents": *f.MaxPrice})
	}
	return d.listing("products", ProductColumns, conds, p, "id")
}

func (d Dialect) Customers(f domain.CustomerFilter, p domain.PageRequest) Listing {
	var conds []sq.Sqlizer
	if f.Name != "" {
		conds = append(conds, d.Contains("name", f.Name))
	}
	if f.Country != "" {
		conds = append(conds, sq.Expr("LOWER(country) = LOWER(?)", f.Country))
	}
	return d.listing("customers", CustomerColumns, conds, p, "id")
}

// Orders lists newest first.
func (d Dialect) Orders(f domain.OrderFilter, p domain.PageRequest) Listing {
	var conds []sq.Sqlizer
	if f.CustomerID != nil {
		conds = append(conds, sq.Eq{"customer_id": *f.CustomerID})
	}
	if f.Status != "" {
		conds = append(conds, sq.Eq{"status": f.Status})
	}
	return d.listing("orders", OrderColumns, conds, p, "placed_at DESC", "id DESC")
}

func (d Dialect) ProductByID(id int64) sq.SelectBuilder {
	return d.Builder.Select(ProductColumns...).From("products").Where(sq.Eq{"id": id})
}

func (d Dialect) CustomerByID(id int64) sq.SelectBuilder {
	return d.Builder.Select(CustomerColumns...).From("customers").Where(sq.Eq{"id": id})
}

func (d Dialect) OrderByID(id int64) sq.SelectBuilder {
	return d.Builder.Select(OrderColumns...).From("orders").Where(sq.Eq{"id": id})
}

func (d Dialect) OrderItems(orderID int64) sq.SelectBuilder {
	return d.Builder.Select(ItemColumns...).
		From("order_items oi").
		Join("products p ON p.id = oi.product_id").
		Where(sq.Eq{"oi.order_id": orderID}).
		OrderBy("oi.product_id")
}

func (d Dialect) InsertProduct(p domain.Product) sq.InsertBuilder {
	return d.Builder.Insert("products").
		Columns("name", "category", "price_cents", "stock").
		Values(p.Name, p.Category, p.PriceCents, p.Stock).
		Suffix("RETURNING id")
}

func (d Dialect) UpdateProduct(p domain.Product) sq.UpdateBuilder {
	return d.Builder.Update("products").
		SetMap(map[string]any{
			"name":        p.Name,
			"category":    p.Category,
			"price_cents": p.PriceCents,
			"stock":       p.Stock,
		}).
		Where(sq.Eq{"id": p.ID})
}

func (d Dialect) ProductReferences(id int64) sq.SelectBuilder {
	return d.Builder.Select("COUNT(*)").From("order_items").Where(sq.Eq{"product_id": id})
}

func (d Dialect) DeleteProduct(id int64) sq.DeleteBuilder {
	return d.Builder.Delete("products").Where(sq.Eq{"id": id})
}

var likeWildcards = strings.NewReplacer(`%`, "", `_`, "")

// escapeLike drops LIKE wildcards from user input. SQLite has no default
// escape character, so stripping is the portable option.
func escapeLike(s string) string {
	return likeWildcards.Replace(s)
}
