package domain

import "time"

type Customer struct {
	ID        int64
	Name      string
	Email     string
	Country   string
	CreatedAt time.Time
}

type Product struct {
	ID         int64
	Name       string
	Category   string
	PriceCents int64
	Stock      int64
}

// Order statuses present in the sample dataset.
const (
	OrderStatusPending   = "pending"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

type Order struct {
	ID         int64
	CustomerID int64
	Status     string
	TotalCents int64
	PlacedAt   time.Time

	// Items is only populated when a single order is fetched.
	Items []OrderItem
}

type OrderItem struct {
	ProductID      int64
	ProductName    string
	Quantity       int64
	UnitPriceCents int64
}

// PageRequest is a 1-based page selection.
type PageRequest struct {
	Page     int
	PageSize int
}

// Offset is the number of rows to skip for this page.
func (p PageRequest) Offset() uint64 {
	if p.Page <= 1 {
		return 0
	}
	return uint64((p.Page - 1) * p.PageSize)
}

type Page[T any] struct {
	Items      []T
	Page       int
	PageSize   int
	TotalItems int64
}

// TotalPages rounds up; an empty result still has zero pages.
func (p Page[T]) TotalPages() int64 {
	if p.PageSize <= 0 {
		return 0
	}
	size := int64(p.PageSize)
	return (p.TotalItems + size - 1) / size
}

type ProductFilter struct {
	Name     string // substring, case-insensitive
	Category string
	MinPrice *int64
	MaxPrice *int64
}

type CustomerFilter struct {
	Name    string // substring, case-insensitive
	Country string
}

type OrderFilter struct {
	CustomerID *int64
	Status     string
}
