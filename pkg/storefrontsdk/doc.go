/*
Package storefrontsdk is a Go client for the storefront API.

# SDKClient vs Session

SDKClient covers the public endpoints and starts sessions:

	client := storefrontsdk.NewSDKClient("http://localhost:8080")

	health, err := client.GetReadiness(ctx)
	products, err := client.ListProducts(ctx, storefrontsdk.ProductQuery{Category: "Coffee"})

	session, err := client.Authenticate(ctx, "admin", "admin")

Session carries the token pair and refreshes the access token shortly
before it expires:

	me, err := session.Me(ctx)
	orders, err := session.ListOrders(ctx, storefrontsdk.OrderQuery{Status: "pending"})

# Refresh tokens

Refresh tokens are single use. Every refresh, automatic or explicit,
replaces the session's refresh token with a new one, and the old one is
rejected from then on. A failed refresh also consumes the token, so the
session must log in again.

# Errors

API failures are returned as *APIError and can be matched against the
predefined values with errors.Is:

	_, err := session.GetOrder(ctx, 999)
	if errors.Is(err, storefrontsdk.ErrNotFound) {
		// ...
	}

Validation failures carry per-field messages in APIError.Details.
*/
package storefrontsdk
