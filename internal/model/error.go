package model

import (
	"errors"
	"strings"
)

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON        = "invalid_json"
	ErrCodeBadRequest         = "bad_request"
	ErrCodeSendFailed         = "send_failed"
	ErrCodeRelayNotConfigured = "relay_not_configured"
	ErrCodeCatalogUnavailable = "catalog_unavailable"
	ErrCodeUnauthorised       = "unauthorized"
	ErrCodeRateLimited        = "rate_limited"
	ErrCodeInternalError      = "internal_error"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrRelayNotConfigured = NewDomainError(ErrCodeRelayNotConfigured, "notification relay is not configured")
)

// FieldError describes one invalid submission field.
type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Field error codes
const (
	FieldRequired = "required"
	FieldPhone    = "phone"
	FieldEmail    = "email"
	FieldQuantity = "quantity"
)

// ValidationError carries every invalid field of a submission, in form order.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + " " + f.Message
	}
	return strings.Join(parts, "; ")
}

// First returns the first invalid field name, or "" when there is none.
func (e *ValidationError) First() string {
	if e == nil || len(e.Fields) == 0 {
		return ""
	}
	return e.Fields[0].Field
}

// Has reports whether the named field is invalid.
func (e *ValidationError) Has(field string) bool {
	return e.Code(field) != ""
}

// Code returns the error code for the named field, or "".
func (e *ValidationError) Code(field string) string {
	if e == nil {
		return ""
	}
	for _, f := range e.Fields {
		if f.Field == field {
			return f.Code
		}
	}
	return ""
}

// Message returns the message for the named field, or "".
func (e *ValidationError) Message(field string) string {
	if e == nil {
		return ""
	}
	for _, f := range e.Fields {
		if f.Field == field {
			return f.Message
		}
	}
	return ""
}

// SendError reports that an outbound channel rejected or failed a submission.
type SendError struct {
	Channel string
	Err     error
}

func (e *SendError) Error() string {
	return e.Channel + ": " + e.Err.Error()
}

func (e *SendError) Unwrap() error {
	return e.Err
}

// AsValidationError unwraps err into a *ValidationError.
func AsValidationError(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}
