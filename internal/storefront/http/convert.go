package http

import (
	"github.com/aussiebroadwan/storefront/internal/storefront/domain"
	"github.com/aussiebroadwan/storefront/pkg/storefrontsdk"
)

func toTokenResponse(p domain.TokenPair) storefrontsdk.TokenResponse {
	return storefrontsdk.TokenResponse{
		AccessToken:  p.AccessToken,
		RefreshToken: p.RefreshToken,
		ExpiresIn:    int(p.ExpiresIn.Seconds()),
		TokenType:    p.TokenType,
	}
}

func toProduct(p domain.Product) storefrontsdk.Product {
	return storefrontsdk.Product{
		ID:         p.ID,
		Name:       p.Name,
		Category:   p.Category,
		PriceCents: p.PriceCents,
		Stock:      p.Stock,
	}
}

func fromProductInput(id int64, in storefrontsdk.ProductInput) domain.Product {
	return domain.Product{
		ID:         id,
		Name:       in.Name,
		Category:   in.Category,
		PriceCents: in.PriceCents,
		Stock:      in.Stock,
	}
}

func toCustomer(c domain.Customer) storefrontsdk.Customer {
	return storefrontsdk.Customer{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Country:   c.Country,
		CreatedAt: c.CreatedAt.UTC(),
	}
}

func toOrder(o domain.Order) storefrontsdk.Order {
	out := storefrontsdk.Order{
		ID:         o.ID,
		CustomerID: o.CustomerID,
		Status:     o.Status,
		TotalCents: o.TotalCents,
		PlacedAt:   o.PlacedAt.UTC(),
	}
	for _, it := range o.Items {
		out.Items = append(out.Items, storefrontsdk.OrderItem{
			ProductID:      it.ProductID,
			ProductName:    it.ProductName,
			Quantity:       it.Quantity,
			UnitPriceCents: it.UnitPriceCents,
		})
	}
	return out
}

func toPage[T, U any](p domain.Page[T], conv func(T) U) storefrontsdk.Page[U] {
	items := make([]U, 0, len(p.Items))
	for _, it := range p.Items {
		items = append(items, conv(it))
	}
	return storefrontsdk.Page[U]{
		Items:      items,
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalItems: p.TotalItems,
		TotalPages: p.TotalPages(),
	}
}
