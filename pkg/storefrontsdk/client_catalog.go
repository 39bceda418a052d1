package storefrontsdk

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// ListProducts is public; no session is needed.
func (c *SDKClient) ListProducts(ctx context.Context, q ProductQuery) (*Page[Product], error) {
	v := url.Values{}
	setString(v, "name", q.Name)
	setString(v, "category", q.Category)
	if q.MinPrice != nil {
		v.Set("minPrice", strconv.FormatInt(*q.MinPrice, 10))
	}
	if q.MaxPrice != nil {
		v.Set("maxPrice", strconv.FormatInt(*q.MaxPrice, 10))
	}
	setPaging(v, q.Page, q.PageSize)

	resp, err := c.doRequest(ctx, http.MethodGet, withQuery("/v1/products", v), nil)
	if err != nil {
		return nil, err
	}

	var page Page[Product]
	if err := decodeJSON(resp, &page, http.StatusOK); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *SDKClient) GetProduct(ctx context.Context, id int64) (*Product, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, fmt.Sprintf("/v1/products/%d", id), nil)
	if err != nil {
		return nil, err
	}

	var p Product
	if err := decodeJSON(resp, &p, http.StatusOK); err != nil {
		return nil, err
	}
	return &p, nil
}

func setString(v url.Values, key, value string) {
	if value != "" {
		v.Set(key, value)
	}
}

func setPaging(v url.Values, page, pageSize int) {
	if page > 0 {
		v.Set("page", strconv.Itoa(page))
	}
	if pageSize > 0 {
		v.Set("pageSize", strconv.Itoa(pageSize))
	}
}

func withQuery(path string, v url.Values) string {
	if len(v) == 0 {
		return path
	}
	return path + "?" + v.Encode()
}
