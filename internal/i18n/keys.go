package i18n

// Error message translation keys.
const (
	ErrKeyInvalidRequest     = "error.invalid_request"
	ErrKeyInvalidRequestBody = "error.invalid_request_body"
	ErrKeyInternalError      = "error.internal_error"
	ErrKeyUnauthorized       = "error.unauthorized"
	ErrKeyAPIKeyRequired     = "error.api_key_required"
	ErrKeyInvalidAPIKey      = "error.invalid_api_key"
	ErrKeyForbidden          = "error.forbidden"
	ErrKeyNotFound           = "error.not_found"
	ErrKeyRateLimitExceeded  = "error.rate_limit_exceeded"
	ErrKeyConflict           = "error.conflict"
	ErrKeyInvalidToken       = "error.invalid_token"
	ErrKeyTokenRequired      = "error.token_required"
	ErrKeyTimeout            = "error.timeout"
	// ErrKeySessionRequired is used when a cart route is called without a session.
	ErrKeySessionRequired = "error.session_required"

	// Pack and cart errors.
	ErrKeyInvalidQuantity      = "error.validation.quantity"
	ErrKeyInvalidConfiguration = "error.pack.invalid_configuration"
	ErrKeyComponentUnavailable = "error.pack.component_unavailable"
	ErrKeyProductNotFound      = "error.product_not_found"
	ErrKeyProductUnavailable   = "error.product_unavailable"
	ErrKeyBundleNotFound       = "error.bundle_not_found"
	ErrKeyBundleModeLocked     = "error.pack.mode_locked"
	ErrKeyUnpublishedComponent = "error.pack.unpublished_component"
	ErrKeyPublishedInBundle    = "error.product.published_in_bundle"
	ErrKeyLineNotFound         = "error.cart.line_not_found"
	ErrKeyComponentLineLocked  = "error.cart.component_line_locked"
	ErrKeyCartConflict         = "error.cart.conflict"
	ErrKeyServiceUnavailable   = "error.service_unavailable"
)
