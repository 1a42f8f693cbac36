// Package i18n provides internationalization support for the kitchen receipt service.
package i18n

// Error message translation keys.
const (
	// ErrKeyInvalidRequest indicates an invalid request.
	ErrKeyInvalidRequest = "error.invalid_request"
	// ErrKeyInvalidRequestBody indicates a body that is not valid JSON for the endpoint.
	ErrKeyInvalidRequestBody = "error.invalid_request_body"
	// ErrKeyInternalError indicates an internal server error.
	ErrKeyInternalError = "error.internal_error"
	// ErrKeyUnauthorized indicates missing or invalid authentication.
	ErrKeyUnauthorized = "error.unauthorized"
	// ErrKeyAPIKeyRequired indicates that an API key is required.
	ErrKeyAPIKeyRequired = "error.api_key_required"
	// ErrKeyInvalidAPIKey indicates an invalid API key.
	ErrKeyInvalidAPIKey = "error.invalid_api_key"
	// ErrKeyForbidden indicates insufficient permissions.
	ErrKeyForbidden = "error.forbidden"
	// ErrKeyNotFound indicates a resource was not found.
	ErrKeyNotFound = "error.not_found"
	// ErrKeyRateLimitExceeded indicates rate limit exceeded.
	ErrKeyRateLimitExceeded = "error.rate_limit_exceeded"
	// ErrKeyInvalidToken indicates an invalid or expired JWT token.
	ErrKeyInvalidToken = "error.invalid_token"
	// ErrKeyTimeout indicates a request timeout.
	ErrKeyTimeout = "error.timeout"
	// ErrKeyInvalidReceiptRequest indicates a receipt request that failed validation.
	ErrKeyInvalidReceiptRequest = "error.validation.receipt_request"
	// ErrKeyInvalidMenuItem indicates a menu write that failed validation.
	ErrKeyInvalidMenuItem = "error.validation.menu_item"
	// ErrKeyMenuItemNotFound indicates a menu delete for an unknown name.
	ErrKeyMenuItemNotFound = "error.menu_item_not_found"
	// ErrKeyCatalogUnavailable indicates the menu store could not be reached.
	ErrKeyCatalogUnavailable = "error.catalog_unavailable"
	// ErrKeyDatabaseNotConfigured indicates a feature that needs MongoDB.
	ErrKeyDatabaseNotConfigured = "error.database_not_configured"
	// ErrKeyIdempotencyInFlight indicates a retry arrived while the first attempt is still running.
	ErrKeyIdempotencyInFlight = "error.idempotency_in_flight"
)

// Success message translation keys.
const (
	// SuccessKeyReceiptGenerated indicates a receipt was formatted.
	SuccessKeyReceiptGenerated = "success.receipt_generated"
	// SuccessKeyMenuRefreshed indicates the catalog was refreshed.
	SuccessKeyMenuRefreshed = "success.menu_refreshed"
)
