package storefrontsdk

import "time"

// ============================================================================
// Error Bodies
// ============================================================================

// ErrorResponse is the body of every non-validation error.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// ValidationErrorResponse is returned with 400 when input fields are rejected.
type ValidationErrorResponse struct {
	// Code is always "validation_error".
	Code    string `json:"code"`
	Message string `json:"message"`

	// Details maps field names to what was wrong with them.
	Details map[string]string `json:"details,omitempty"`
}

// ============================================================================
// Auth
// ============================================================================

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// LogoutRequest may omit the refresh token; logout then only succeeds.
type LogoutRequest struct {
	RefreshToken string `json:"refreshToken,omitempty"`
}

// TokenResponse is returned by login and refresh.
type TokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`

	// ExpiresIn is the access token lifetime in seconds.
	ExpiresIn int `json:"expiresIn"`

	// TokenType is always "Bearer".
	TokenType string `json:"tokenType"`
}

type MeResponse struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

// ============================================================================
// Catalog
// ============================================================================

type Product struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Category   string `json:"category"`
	PriceCents int64  `json:"priceCents"`
	Stock      int64  `json:"stock"`
}

// ProductInput is the body of product create and update.
type ProductInput struct {
	Name       string `json:"name"`
	Category   string `json:"category"`
	PriceCents int64  `json:"priceCents"`
	Stock      int64  `json:"stock"`
}

type Customer struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Country   string    `json:"country"`
	CreatedAt time.Time `json:"createdAt"`
}

type Order struct {
	ID         int64       `json:"id"`
	CustomerID int64       `json:"customerId"`
	Status     string      `json:"status"`
	TotalCents int64       `json:"totalCents"`
	PlacedAt   time.Time   `json:"placedAt"`
	Items      []OrderItem `json:"items,omitempty"`
}

type OrderItem struct {
	ProductID      int64  `json:"productId"`
	ProductName    string `json:"productName"`
	Quantity       int64  `json:"quantity"`
	UnitPriceCents int64  `json:"unitPriceCents"`
}

// Page is one page of a listing.
type Page[T any] struct {
	Items      []T   `json:"items"`
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	TotalItems int64 `json:"totalItems"`
	TotalPages int64 `json:"totalPages"`
}

// ProductQuery filters GET /v1/products. Zero values are omitted.
type ProductQuery struct {
	Name     string
	Category string
	MinPrice *int64
	MaxPrice *int64
	Page     int
	PageSize int
}

type CustomerQuery struct {
	Name     string
	Country  string
	Page     int
	PageSize int
}

type OrderQuery struct {
	CustomerID int64
	Status     string
	Page       int
	PageSize   int
}

// ============================================================================
// Health
// ============================================================================

type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

type HealthChecks struct {
	Database string `json:"database"`
	Signer   string `json:"signer"`
}
