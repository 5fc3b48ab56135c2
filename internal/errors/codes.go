package errors

// Error codes returned in the "error" field.
// Format: CATEGORY_SPECIFIC_DETAIL

const (
	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT"
	ValidationInvalidEmail = "VALIDATION_INVALID_EMAIL"
	ValidationRequired     = "VALIDATION_REQUIRED"

	// ==================== Resource (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"
	ResourceConflict      = "RESOURCE_CONFLICT"

	// ==================== Catalog (PRODUCT_) ====================
	ProductNotFound = "PRODUCT_NOT_FOUND"

	// ==================== Cart (CART_) ====================
	CartNotFound        = "CART_NOT_FOUND"
	CartEmpty           = "CART_EMPTY"
	CartInvalid         = "CART_INVALID"
	CartInvalidQuantity = "CART_INVALID_QUANTITY"

	// ==================== Payment (PAYMENT_) ====================
	PaymentSessionNotFound  = "PAYMENT_SESSION_NOT_FOUND"
	PaymentProviderError    = "PAYMENT_PROVIDER_ERROR"
	PaymentSignatureInvalid = "PAYMENT_SIGNATURE_INVALID"

	// ==================== Rate limit (RATE_) ====================
	RateLimitExceeded = "RATE_LIMIT_EXCEEDED"

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
	InternalExternalAPI   = "INTERNAL_EXTERNAL_API"
)
