package errors

import (
	"errors"
	"fmt"
)

// CatalogError represents errors raised while talking to the vendor or reconciling its data
type CatalogError struct {
	Type       string
	Message    string
	StatusCode int
	Body       string
	Cause      error
}

func (e *CatalogError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Type, e.Message)
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (status: %d, body: %s)", msg, e.StatusCode, e.Body)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s - %v", msg, e.Cause)
	}
	return msg
}

func (e *CatalogError) Unwrap() error {
	return e.Cause
}

// Catalog error types
const (
	ErrTypeConfiguration  = "CONFIGURATION"
	ErrTypeAuthentication = "AUTHENTICATION"
	ErrTypeRemoteService  = "REMOTE_SERVICE"
	ErrTypeDownload       = "DOWNLOAD"
	ErrTypeValidation     = "VALIDATION"
)

// NewConfigurationError creates an error for missing or malformed settings
func NewConfigurationError(message string) *CatalogError {
	return &CatalogError{
		Type:    ErrTypeConfiguration,
		Message: message,
	}
}

// NewAuthenticationError creates an error for rejected credentials or tokens
func NewAuthenticationError(message string, statusCode int, body string, cause error) *CatalogError {
	return &CatalogError{
		Type:       ErrTypeAuthentication,
		Message:    message,
		StatusCode: statusCode,
		Body:       body,
		Cause:      cause,
	}
}

// NewRemoteServiceError creates an error for a non-success vendor response
func NewRemoteServiceError(method, url string, statusCode int, body string) *CatalogError {
	return &CatalogError{
		Type:       ErrTypeRemoteService,
		Message:    fmt.Sprintf("%s %s failed", method, url),
		StatusCode: statusCode,
		Body:       body,
	}
}

// NewTransportError wraps a network failure that produced no response
func NewTransportError(method, url string, cause error) *CatalogError {
	return &CatalogError{
		Type:    ErrTypeRemoteService,
		Message: fmt.Sprintf("%s %s failed", method, url),
		Cause:   cause,
	}
}

// NewInvalidResponseError wraps a vendor reply that could not be decoded
func NewInvalidResponseError(method, url string, cause error) *CatalogError {
	return &CatalogError{
		Type:    ErrTypeRemoteService,
		Message: fmt.Sprintf("%s %s returned an unreadable body", method, url),
		Cause:   cause,
	}
}

// NewDownloadError creates an error for an empty or unreadable bulk export
func NewDownloadError(message string, cause error) *CatalogError {
	return &CatalogError{
		Type:    ErrTypeDownload,
		Message: message,
		Cause:   cause,
	}
}

// NewValidationError creates an error for rejected input
func NewValidationError(message string) *CatalogError {
	return &CatalogError{
		Type:    ErrTypeValidation,
		Message: message,
	}
}

// IsType reports whether err carries a CatalogError of the given type
func IsType(err error, errType string) bool {
	var catalogErr *CatalogError
	if errors.As(err, &catalogErr) {
		return catalogErr.Type == errType
	}
	return false
}
