package shared

// DomainError is a business-rule violation with a stable machine code.
// The HTTP layer maps codes to statuses; Message is safe to show to
// API clients.
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a domain error with the given code
func NewDomainError(code, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}

// Sentinel errors shared across packages. Services compare with
// errors.Is; more specific failures get their own codes at the call
// site via NewDomainError.
var (
	ErrNotFound         = NewDomainError("NOT_FOUND", "Resource not found")
	ErrImportInProgress = NewDomainError("IMPORT_IN_PROGRESS", "An import for this shop is already running")
)
