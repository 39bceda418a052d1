package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/storefront/internal/storefront/domain"
	"github.com/aussiebroadwan/storefront/internal/storefront/service"
	"github.com/aussiebroadwan/storefront/pkg/httpx"
	"github.com/aussiebroadwan/storefront/pkg/slogx"
	"github.com/aussiebroadwan/storefront/pkg/storefrontsdk"
)

type CatalogHandler struct {
	Catalog *service.CatalogService
}

// params collects query and path parse failures so they can be reported
// together as one validation error.
type params struct {
	r      *http.Request
	errors map[string]string
}

func newParams(r *http.Request) *params {
	return &params{r: r, errors: map[string]string{}}
}

func (p *params) int(name string) int {
	v, err := httpx.QueryInt(p.r, name, 0)
	if err != nil {
		p.errors[name] = "must be an integer"
	}
	return v
}

func (p *params) int64Ptr(name string) *int64 {
	v, err := httpx.QueryInt64Ptr(p.r, name)
	if err != nil {
		p.errors[name] = "must be an integer"
	}
	return v
}

func (p *params) id() int64 {
	v, err := httpx.PathInt64(p.r, "id")
	if err != nil {
		p.errors["id"] = "must be a positive integer"
	}
	return v
}

func (p *params) page() domain.PageRequest {
	return domain.PageRequest{Page: p.int("page"), PageSize: p.int("pageSize")}
}

// failed writes the collected errors, if any, and reports whether it did.
func (p *params) failed(w http.ResponseWriter) bool {
	if len(p.errors) == 0 {
		return false
	}
	storefrontsdk.WriteValidationError(w, p.errors)
	return true
}

func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		storefrontsdk.WriteValidationError(w, verr.Fields)
	case errors.Is(err, service.ErrNotFound):
		storefrontsdk.ErrNotFound.WriteError(w)
	case errors.Is(err, service.ErrConflict):
		storefrontsdk.ErrConflict.WriteError(w)
	default:
		slogx.FromContext(r.Context()).Error("catalog request failed", "err", err)
		storefrontsdk.ErrServerError.WriteError(w)
	}
}

// HandleListProducts godoc
//
//	@Summary	List products
//	@Tags		Products
//	@Produce	json
//	@Param		name		query		string	false	"Substring match on name"
//	@Param		category	query		string	false	"Exact category"
//	@Param		minPrice	query		int		false	"Minimum price in cents"
//	@Param		maxPrice	query		int		false	"Maximum price in cents"
//	@Param		page		query		int		false	"Page number, from 1"
//	@Param		pageSize	query		int		false	"Page size, 1 to 100"
//	@Success	200			{object}	storefrontsdk.Page[storefrontsdk.Product]
//	@Failure	400			{object}	storefrontsdk.ValidationErrorResponse
//	@Router		/v1/products [get].
func (h *CatalogHandler) HandleListProducts(w http.ResponseWriter, r *http.Request) {
	p := newParams(r)
	q := r.URL.Query()
	f := domain.ProductFilter{
		Name:     q.Get("name"),
		Category: q.Get("category"),
		MinPrice: p.int64Ptr("minPrice"),
		MaxPrice: p.int64Ptr("maxPrice"),
	}
	page := p.page()
	if p.failed(w) {
		return
	}

	res, err := h.Catalog.ListProducts(r.Context(), f, page)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toPage(res, toProduct))
}

// HandleGetProduct godoc
//
//	@Summary	Get a product
//	@Tags		Products
//	@Produce	json
//	@Param		id	path		int	true	"Product ID"
//	@Success	200	{object}	storefrontsdk.Product
//	@Failure	404	{object}	storefrontsdk.ErrorResponse
//	@Router		/v1/products/{id} [get].
func (h *CatalogHandler) HandleGetProduct(w http.ResponseWriter, r *http.Request) {
	p := newParams(r)
	id := p.id()
	if p.failed(w) {
		return
	}

	prod, err := h.Catalog.GetProduct(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toProduct(prod))
}

// HandleCreateProduct godoc
//
//	@Summary	Create a product
//	@Tags		Products
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		storefrontsdk.ProductInput	true	"Product"
//	@Success	201		{object}	storefrontsdk.Product
//	@Failure	400		{object}	storefrontsdk.ValidationErrorResponse
//	@Failure	401		{object}	storefrontsdk.ErrorResponse
//	@Failure	403		{object}	storefrontsdk.ErrorResponse
//	@Router		/v1/products [post].
func (h *CatalogHandler) HandleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var in storefrontsdk.ProductInput
	if err := httpx.DecodeJSON(w, r, &in); err != nil {
		storefrontsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	prod, err := h.Catalog.CreateProduct(r.Context(), fromProductInput(0, in))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	slogx.FromContext(r.Context()).Info("product created", "product_id", prod.ID)
	httpx.WriteJSON(w, http.StatusCreated, toProduct(prod))
}

// HandleUpdateProduct godoc
//
//	@Summary	Replace a product
//	@Tags		Products
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		id		path		int							true	"Product ID"
//	@Param		body	body		storefrontsdk.ProductInput	true	"Product"
//	@Success	200		{object}	storefrontsdk.Product
//	@Failure	400		{object}	storefrontsdk.ValidationErrorResponse
//	@Failure	404		{object}	storefrontsdk.ErrorResponse
//	@Router		/v1/products/{id} [put].
func (h *CatalogHandler) HandleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	p := newParams(r)
	id := p.id()
	if p.failed(w) {
		return
	}

	var in storefrontsdk.ProductInput
	if err := httpx.DecodeJSON(w, r, &in); err != nil {
		storefrontsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	prod, err := h.Catalog.UpdateProduct(r.Context(), fromProductInput(id, in))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toProduct(prod))
}

// HandleDeleteProduct godoc
//
//	@Summary		Delete a product
//	@Description	Fails with 409 while any order still references the product.
//	@Tags			Products
//	@Security		BearerAuth
//	@Param			id	path	int	true	"Product ID"
//	@Success		204
//	@Failure		404	{object}	storefrontsdk.ErrorResponse
//	@Failure		409	{object}	storefrontsdk.ErrorResponse
//	@Router			/v1/products/{id} [delete].
func (h *CatalogHandler) HandleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	p := newParams(r)
	id := p.id()
	if p.failed(w) {
		return
	}

	if err := h.Catalog.DeleteProduct(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}

	slogx.FromContext(r.Context()).Info("product deleted", "product_id", id)
	w.WriteHeader(http.StatusNoContent)
}

// HandleListCustomers godoc
//
//	@Summary	List customers
//	@Tags		Customers
//	@Security	BearerAuth
//	@Produce	json
//	@Param		name		query		string	false	"Substring match on name"
//	@Param		country		query		string	false	"Exact country"
//	@Param		page		query		int		false	"Page number, from 1"
//	@Param		pageSize	query		int		false	"Page size, 1 to 100"
//	@Success	200			{object}	storefrontsdk.Page[storefrontsdk.Customer]
//	@Failure	400			{object}	storefrontsdk.ValidationErrorResponse
//	@Router		/v1/customers [get].
func (h *CatalogHandler) HandleListCustomers(w http.ResponseWriter, r *http.Request) {
	p := newParams(r)
	f := domain.CustomerFilter{
		Name:    r.URL.Query().Get("name"),
		Country: r.URL.Query().Get("country"),
	}
	page := p.page()
	if p.failed(w) {
		return
	}

	res, err := h.Catalog.ListCustomers(r.Context(), f, page)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toPage(res, toCustomer))
}

// HandleGetCustomer godoc
//
//	@Summary	Get a customer
//	@Tags		Customers
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		int	true	"Customer ID"
//	@Success	200	{object}	storefrontsdk.Customer
//	@Failure	404	{object}	storefrontsdk.ErrorResponse
//	@Router		/v1/customers/{id} [get].
func (h *CatalogHandler) HandleGetCustomer(w http.ResponseWriter, r *http.Request) {
	p := newParams(r)
	id := p.id()
	if p.failed(w) {
		return
	}

	c, err := h.Catalog.GetCustomer(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toCustomer(c))
}

// HandleListCustomerOrders godoc
//
//	@Summary	List a customer's orders
//	@Tags		Customers
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id			path		int	true	"Customer ID"
//	@Param		page		query		int	false	"Page number, from 1"
//	@Param		pageSize	query		int	false	"Page size, 1 to 100"
//	@Success	200			{object}	storefrontsdk.Page[storefrontsdk.Order]
//	@Failure	404			{object}	storefrontsdk.ErrorResponse
//	@Router		/v1/customers/{id}/orders [get].
func (h *CatalogHandler) HandleListCustomerOrders(w http.ResponseWriter, r *http.Request) {
	p := newParams(r)
	id := p.id()
	page := p.page()
	if p.failed(w) {
		return
	}

	res, err := h.Catalog.ListCustomerOrders(r.Context(), id, page)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toPage(res, toOrder))
}

// HandleListOrders godoc
//
//	@Summary	List orders
//	@Tags		Orders
//	@Security	BearerAuth
//	@Produce	json
//	@Param		customerId	query		int		false	"Owning customer"
//	@Param		status		query		string	false	"pending, shipped, delivered or cancelled"
//	@Param		page		query		int		false	"Page number, from 1"
//	@Param		pageSize	query		int		false	"Page size, 1 to 100"
//	@Success	200			{object}	storefrontsdk.Page[storefrontsdk.Order]
//	@Failure	400			{object}	storefrontsdk.ValidationErrorResponse
//	@Router		/v1/orders [get].
func (h *CatalogHandler) HandleListOrders(w http.ResponseWriter, r *http.Request) {
	p := newParams(r)
	f := domain.OrderFilter{
		CustomerID: p.int64Ptr("customerId"),
		Status:     r.URL.Query().Get("status"),
	}
	page := p.page()
	if p.failed(w) {
		return
	}

	res, err := h.Catalog.ListOrders(r.Context(), f, page)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toPage(res, toOrder))
}

// HandleGetOrder godoc
//
//	@Summary	Get an order with its items
//	@Tags		Orders
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		int	true	"Order ID"
//	@Success	200	{object}	storefrontsdk.Order
//	@Failure	404	{object}	storefrontsdk.ErrorResponse
//	@Router		/v1/orders/{id} [get].
func (h *CatalogHandler) HandleGetOrder(w http.ResponseWriter, r *http.Request) {
	p := newParams(r)
	id := p.id()
	if p.failed(w) {
		return
	}

	o, err := h.Catalog.GetOrder(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toOrder(o))
}
