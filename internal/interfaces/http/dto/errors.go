package dto

import "net/http"

// Error code constants organized by category
// Format: ERR_<CATEGORY>

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation and input error codes
const (
	// ErrCodeValidation is the base code for validation errors
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidJSON is used when JSON parsing fails
	ErrCodeInvalidJSON = "ERR_INVALID_JSON"
)

// Authentication error codes
const (
	// ErrCodeUnauthorized is used when authentication is required but missing/invalid
	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	// ErrCodeForbidden is used when the user lacks permission
	ErrCodeForbidden = "ERR_FORBIDDEN"
)

// Resource error codes
const (
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeConflict is used for resource conflicts
	ErrCodeConflict = "ERR_CONFLICT"
)

// Business rule error codes
const (
	// ErrCodeBusinessRule is used for business rule violations
	ErrCodeBusinessRule = "ERR_BUSINESS_RULE"
)

// Availability error codes
const (
	// ErrCodeRateLimited is used when rate limit is exceeded
	ErrCodeRateLimited = "ERR_RATE_LIMITED"
	// ErrCodeOverloaded is used when a background queue cannot take more work
	ErrCodeOverloaded = "ERR_OVERLOADED"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeValidation:  http.StatusBadRequest,
	ErrCodeBadRequest:  http.StatusBadRequest,
	ErrCodeInvalidJSON: http.StatusBadRequest,

	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,

	ErrCodeNotFound: http.StatusNotFound,
	ErrCodeConflict: http.StatusConflict,

	ErrCodeBusinessRule: http.StatusBadRequest,

	ErrCodeRateLimited: http.StatusTooManyRequests,
	ErrCodeOverloaded:  http.StatusServiceUnavailable,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping classifies domain error codes under the HTTP
// error taxonomy
var DomainErrorCodeMapping = map[string]string{
	"ALREADY_EXISTS":     ErrCodeConflict,
	"SHOP_CONFLICT":      ErrCodeConflict,
	"IMPORT_IN_PROGRESS": ErrCodeConflict,

	"INVALID_TOKEN":       ErrCodeUnauthorized,
	"INVALID_CREDENTIALS": ErrCodeUnauthorized,
	"ACCOUNT_INACTIVE":    ErrCodeForbidden,

	"INVALID_INPUT":             ErrCodeValidation,
	"INVALID_CONTACT":           ErrCodeBusinessRule,
	"INVALID_STATUS_TRANSITION": ErrCodeBusinessRule,
	"EMPTY_BASKET":              ErrCodeBusinessRule,
	"CONTACT_LIMIT":             ErrCodeBusinessRule,
	"ORDER_NOT_BASKET":          ErrCodeBusinessRule,
}

// NormalizeErrorCode converts a domain error code to the HTTP taxonomy.
// Unknown codes fall through as business rule violations.
func NormalizeErrorCode(code string) string {
	if mapped, ok := DomainErrorCodeMapping[code]; ok {
		return mapped
	}
	return ErrCodeBusinessRule
}
