// Package i18n provides internationalization support for the fulfillment service.
package i18n

// Error message translation keys.
const (
	// ErrKeyInvalidRequest indicates an invalid request.
	ErrKeyInvalidRequest = "error.invalid_request"
	// ErrKeyInvalidRequestBody indicates an invalid request body.
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
	// ErrKeyConflict indicates a conflict with current state.
	ErrKeyConflict = "error.conflict"
	// ErrKeyTimeout indicates a request timeout.
	ErrKeyTimeout = "error.timeout"
	// ErrKeyValidationCartItems indicates invalid cart item validation.
	ErrKeyValidationCartItems = "error.validation.cart_items"
	// ErrKeyValidationPrices indicates an invalid customer price map.
	ErrKeyValidationPrices = "error.validation.prices"
	// ErrKeyPlanningFailed indicates the planning engine could not build a plan.
	ErrKeyPlanningFailed = "error.planning_failed"
	// ErrKeyStoreNotFound indicates a referenced store does not exist.
	ErrKeyStoreNotFound = "error.store_not_found"
)

// Success message translation keys.
const (
	// SuccessKeyPlanBuilt indicates a successfully built fulfillment plan.
	SuccessKeyPlanBuilt = "success.plan_built"
)
