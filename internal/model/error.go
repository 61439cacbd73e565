package model

import "fmt"

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message,omitempty"`
	CorrelationID string `json:"correlationId,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON     = "INVALID_JSON"
	ErrCodeMissingField    = "MISSING_FIELD"
	ErrCodeProductNotFound = "PRODUCT_NOT_FOUND"
	ErrCodeVariantNotFound = "VARIANT_NOT_FOUND"
	ErrCodeInvalidQuantity = "INVALID_QUANTITY"
	ErrCodeMissingConfig   = "MISSING_CONFIG"
	ErrCodeInvalidEntry    = "INVALID_ENTRY"
	ErrCodeRemoteError     = "REMOTE_ERROR"
	ErrCodeUnauthorised    = "UNAUTHORIZED"
	ErrCodeInternalError   = "INTERNAL_ERROR"
)

// DomainError is a business-logic error with a stable machine-readable code.
type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError creates a new domain error.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WrapDomainError creates a domain error that wraps an underlying cause.
func WrapDomainError(code, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common domain errors
var (
	ErrProductNotFound = NewDomainError(ErrCodeProductNotFound, "Product not found")
	ErrVariantNotFound = NewDomainError(ErrCodeVariantNotFound, "Product has no such variant")
	ErrInvalidQuantity = NewDomainError(ErrCodeInvalidQuantity, "Quantity must be greater than zero")
)

// RemoteError is a failed call against the CMS delivery API. The HTTP status
// code is carried structurally so callers classify by status class instead of
// matching on message text.
type RemoteError struct {
	StatusCode int
	Message    string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("cms request failed: status %d: %s", e.StatusCode, e.Message)
}

// IsClientError reports whether the failure is a 4xx-class error. Client
// errors are permanent: retrying the same request cannot succeed.
func (e *RemoteError) IsClientError() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500
}

// ValidationError is a CMS entry that cannot be transformed into a domain
// value because a mandatory field is missing or malformed.
type ValidationError struct {
	EntryID string
	Field   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("entry %s: missing or invalid field %q", e.EntryID, e.Field)
}
