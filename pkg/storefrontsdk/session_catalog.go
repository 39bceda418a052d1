package storefrontsdk

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

func (s *Session) ListCustomers(ctx context.Context, q CustomerQuery) (*Page[Customer], error) {
	v := url.Values{}
	setString(v, "name", q.Name)
	setString(v, "country", q.Country)
	setPaging(v, q.Page, q.PageSize)

	var page Page[Customer]
	if err := s.getJSON(ctx, withQuery("/v1/customers", v), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (s *Session) GetCustomer(ctx context.Context, id int64) (*Customer, error) {
	var c Customer
	if err := s.getJSON(ctx, fmt.Sprintf("/v1/customers/%d", id), &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Session) ListCustomerOrders(ctx context.Context, customerID int64, page, pageSize int) (*Page[Order], error) {
	v := url.Values{}
	setPaging(v, page, pageSize)

	var out Page[Order]
	if err := s.getJSON(ctx, withQuery(fmt.Sprintf("/v1/customers/%d/orders", customerID), v), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) ListOrders(ctx context.Context, q OrderQuery) (*Page[Order], error) {
	v := url.Values{}
	if q.CustomerID > 0 {
		v.Set("customerId", strconv.FormatInt(q.CustomerID, 10))
	}
	setString(v, "status", q.Status)
	setPaging(v, q.Page, q.PageSize)

	var page Page[Order]
	if err := s.getJSON(ctx, withQuery("/v1/orders", v), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetOrder returns the order including its line items.
func (s *Session) GetOrder(ctx context.Context, id int64) (*Order, error) {
	var o Order
	if err := s.getJSON(ctx, fmt.Sprintf("/v1/orders/%d", id), &o); err != nil {
		return nil, err
	}
	return &o, nil
}

// CreateProduct requires the Admin role.
func (s *Session) CreateProduct(ctx context.Context, in ProductInput) (*Product, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/products", in)
	if err != nil {
		return nil, err
	}

	var p Product
	if err := decodeJSON(resp, &p, http.StatusCreated); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateProduct requires the Admin role.
func (s *Session) UpdateProduct(ctx context.Context, id int64, in ProductInput) (*Product, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPut, fmt.Sprintf("/v1/products/%d", id), in)
	if err != nil {
		return nil, err
	}

	var p Product
	if err := decodeJSON(resp, &p, http.StatusOK); err != nil {
		return nil, err
	}
	return &p, nil
}

// DeleteProduct requires the Admin role and fails with ErrConflict while
// orders reference the product.
func (s *Session) DeleteProduct(ctx context.Context, id int64) error {
	resp, err := s.doAuthRequest(ctx, http.MethodDelete, fmt.Sprintf("/v1/products/%d", id), nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

func (s *Session) getJSON(ctx context.Context, path string, target any) error {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	return decodeJSON(resp, target, http.StatusOK)
}
