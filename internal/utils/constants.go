package utils

// Response statuses
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Common error messages
const (
	ErrValidationFailed = "Validation failed"
	ErrInternalServer   = "Internal server error"
	ErrUnauthorized     = "Authentication required"
	ErrForbidden        = "You do not have permission to perform this action"
)

// Pagination defaults
const (
	DefaultPageSize = 20
	MinPageSize     = 1
	MaxPageSize     = 100
)

// DefaultTimeZone is the canonical zone for all travel-date and expiry
// comparisons. Every "now" in the ride lifecycle is taken in this zone.
const DefaultTimeZone = "Europe/Chisinau"

// RecentRidesLimit caps the landing-page recent rides listing.
const RecentRidesLimit = 5
