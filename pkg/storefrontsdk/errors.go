package storefrontsdk

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/aussiebroadwan/storefront/pkg/httpx"
)

const (
	ErrorCodeInvalidRequest      = "invalid_request"
	ErrorCodeInvalidCredentials  = "invalid_credentials"
	ErrorCodeInvalidRefreshToken = "invalid_refresh_token"
	ErrorCodeInvalidToken        = "invalid_token"
	ErrorCodeForbidden           = "forbidden"
	ErrorCodeNotFound            = "not_found"
	ErrorCodeConflict            = "conflict"
	ErrorCodeValidation          = "validation_error"
	ErrorCodeServerError         = "server_error"
)

// APIError is an error response from the API. Handlers write the predefined
// values below; the client parses responses back into APIError.
type APIError struct {
	StatusCode  int    `json:"-"`
	Code        string `json:"error"`
	Description string `json:"error_description"`

	// Details is only set for validation errors.
	Details map[string]string `json:"-"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// Is matches on status code and error code so a parsed response compares
// equal to the predefined value it was written from.
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	if !ok {
		return false
	}
	return e.StatusCode == t.StatusCode && e.Code == t.Code && e.Description == t.Description
}

// WriteError writes e as a JSON response.
func (e *APIError) WriteError(w http.ResponseWriter) {
	if e.Code == ErrorCodeInvalidToken {
		w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
	}
	httpx.WriteJSON(w, e.StatusCode, ErrorResponse{
		Error:            e.Code,
		ErrorDescription: e.Description,
	})
}

var (
	// ErrAuthenticationFailed covers every login failure. Wrong passwords and
	// unknown usernames are deliberately indistinguishable.
	ErrAuthenticationFailed = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidCredentials,
		Description: "authentication failed",
	}

	// ErrInvalidToken is what the bearer middleware sends for any missing,
	// malformed, forged or expired access token.
	ErrInvalidToken = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidToken,
		Description: "authentication failed",
	}

	ErrRefreshInvalid = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidRefreshToken,
		Description: "invalid or revoked",
	}

	ErrRefreshExpired = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidRefreshToken,
		Description: "expired, login again",
	}

	ErrRefreshUserGone = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidRefreshToken,
		Description: "user no longer exists",
	}

	ErrInvalidRequest = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "the request body is malformed",
	}

	ErrForbidden = &APIError{
		StatusCode:  http.StatusForbidden,
		Code:        ErrorCodeForbidden,
		Description: "insufficient role",
	}

	ErrNotFound = &APIError{
		StatusCode:  http.StatusNotFound,
		Code:        ErrorCodeNotFound,
		Description: "resource not found",
	}

	ErrConflict = &APIError{
		StatusCode:  http.StatusConflict,
		Code:        ErrorCodeConflict,
		Description: "resource is still referenced",
	}

	ErrServerError = &APIError{
		StatusCode:  http.StatusInternalServerError,
		Code:        ErrorCodeServerError,
		Description: "internal server error",
	}
)

// WriteValidationError writes a 400 listing the rejected fields.
func WriteValidationError(w http.ResponseWriter, details map[string]string) {
	httpx.WriteJSON(w, http.StatusBadRequest, ValidationErrorResponse{
		Code:    ErrorCodeValidation,
		Message: "one or more fields are invalid",
		Details: details,
	})
}

// parseErrorResponse turns a non-2xx response body into an *APIError.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var valErr ValidationErrorResponse
	if err := json.Unmarshal(body, &valErr); err == nil && valErr.Code != "" {
		return &APIError{
			StatusCode:  resp.StatusCode,
			Code:        valErr.Code,
			Description: valErr.Message,
			Details:     valErr.Details,
		}
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return &APIError{
			StatusCode:  resp.StatusCode,
			Code:        errResp.Error,
			Description: errResp.ErrorDescription,
		}
	}

	return &APIError{
		StatusCode:  resp.StatusCode,
		Code:        ErrorCodeServerError,
		Description: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
