package utils

// Application constants
const (
	// Application name
	AppName = "ShopSphere"

	// API version
	APIVersion = "v1"

	// Checkout session cookie name
	SessionName = "shopsphere"

	// Session key holding the JSON-encoded checkout session
	CheckoutSessionKey = "checkout"
)

// Error messages
const (
	// Authentication errors
	ErrInvalidToken = "Invalid or expired token"
	ErrUnauthorized = "Please login for access"
	ErrForbidden    = "Admin access required"

	// Request errors
	ErrInvalidRequest = "Invalid request"

	// Server errors
	ErrInternalServer = "Internal server error"
)

// Pagination limits
const (
	DefaultPaginationLimit = 10
	MaxPaginationLimit     = 100
)
