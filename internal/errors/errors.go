package errors

import (
	"fmt"
	"net/http"

	"github.com/cockroachdb/errors"
)

// Common error types that can be used across the application
var (
	ErrNotFound         = newSentinel(ErrCodeNotFound, "resource not found")
	ErrValidation       = newSentinel(ErrCodeValidation, "validation error")
	ErrInvalidOperation = newSentinel(ErrCodeInvalidOperation, "invalid operation")
	ErrHTTPClient       = newSentinel(ErrCodeHTTPClient, "http client error")
	ErrSystem           = newSentinel(ErrCodeSystemError, "system error")

	// Recoverable query conditions. The orchestrator converts each of these
	// into a structured clarification result instead of failing the request.
	ErrInvalidAmount      = newSentinel(ErrCodeInvalidAmount, "invalid spend amount")
	ErrUnresolvedCategory = newSentinel(ErrCodeUnresolvedCategory, "unresolved spend category")
	ErrUnknownChannel     = newSentinel(ErrCodeUnknownChannel, "unknown redemption channel")
	ErrAmbiguousCard      = newSentinel(ErrCodeAmbiguousCard, "ambiguous card reference")

	// maps errors to http status codes
	statusCodeMap = map[error]int{
		ErrHTTPClient:         http.StatusInternalServerError,
		ErrNotFound:           http.StatusNotFound,
		ErrValidation:         http.StatusBadRequest,
		ErrInvalidOperation:   http.StatusBadRequest,
		ErrSystem:             http.StatusInternalServerError,
		ErrInvalidAmount:      http.StatusBadRequest,
		ErrUnresolvedCategory: http.StatusBadRequest,
		ErrUnknownChannel:     http.StatusBadRequest,
		ErrAmbiguousCard:      http.StatusBadRequest,
	}
)

const (
	ErrCodeHTTPClient       = "http_client_error"
	ErrCodeSystemError      = "system_error"
	ErrCodeNotFound         = "not_found"
	ErrCodeValidation       = "validation_error"
	ErrCodeInvalidOperation = "invalid_operation"

	ErrCodeInvalidAmount      = "invalid_amount"
	ErrCodeUnresolvedCategory = "unresolved_category"
	ErrCodeUnknownChannel     = "unknown_channel"
	ErrCodeAmbiguousCard      = "ambiguous_card_reference"
)

// InternalError represents a domain error
type InternalError struct {
	Code    string // Machine-readable error code
	Message string // Human-readable error message
	Op      string // Logical operation name
	Err     error  // Underlying error
}

func (e *InternalError) Error() string {
	if e.Err == nil {
		return e.DisplayError()
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Err.Error())
}

func (e *InternalError) DisplayError() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *InternalError) Unwrap() error {
	return e.Err
}

// Is implements error matching for wrapped errors
func (e *InternalError) Is(target error) bool {
	if target == nil {
		return false
	}

	t, ok := target.(*InternalError)
	if !ok {
		return errors.Is(e.Err, target)
	}

	return e.Code == t.Code
}

func newSentinel(code string, message string) *InternalError {
	return &InternalError{
		Code:    code,
		Message: message,
	}
}

func Is(err, target error) bool {
	return errors.Is(err, target)
}

func As(err error, target any) bool {
	return errors.As(err, target)
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidation checks if an error is a validation error
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsInvalidOperation checks if an error is an invalid operation error
func IsInvalidOperation(err error) bool {
	return errors.Is(err, ErrInvalidOperation)
}

// IsHTTPClient checks if an error is an http client error
func IsHTTPClient(err error) bool {
	return errors.Is(err, ErrHTTPClient)
}

// IsInvalidAmount checks if an error is an invalid amount error
func IsInvalidAmount(err error) bool {
	return errors.Is(err, ErrInvalidAmount)
}

// IsUnresolvedCategory checks if an error is an unresolved category error
func IsUnresolvedCategory(err error) bool {
	return errors.Is(err, ErrUnresolvedCategory)
}

// IsUnknownChannel checks if an error is an unknown channel error
func IsUnknownChannel(err error) bool {
	return errors.Is(err, ErrUnknownChannel)
}

// IsAmbiguousCard checks if an error is an ambiguous card reference error
func IsAmbiguousCard(err error) bool {
	return errors.Is(err, ErrAmbiguousCard)
}

// IsClarifiable reports whether an error is one of the recoverable query
// conditions that should surface as a clarification prompt.
func IsClarifiable(err error) bool {
	return errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrUnresolvedCategory) ||
		errors.Is(err, ErrUnknownChannel) ||
		errors.Is(err, ErrAmbiguousCard)
}

// ClarificationCode returns the machine-readable code of the recoverable
// condition, or an empty string when the error is not clarifiable.
func ClarificationCode(err error) string {
	switch {
	case errors.Is(err, ErrInvalidAmount):
		return ErrCodeInvalidAmount
	case errors.Is(err, ErrUnresolvedCategory):
		return ErrCodeUnresolvedCategory
	case errors.Is(err, ErrUnknownChannel):
		return ErrCodeUnknownChannel
	case errors.Is(err, ErrAmbiguousCard):
		return ErrCodeAmbiguousCard
	default:
		return ""
	}
}

// Hint returns the first non-empty user-facing hint attached to the error,
// or an empty string when none was attached.
func Hint(err error) string {
	for _, hint := range errors.GetAllHints(err) {
		if hint != "" {
			return hint
		}
	}
	return ""
}

func HTTPStatusFromErr(err error) int {
	for e, status := range statusCodeMap {
		if errors.Is(err, e) {
			return status
		}
	}
	return http.StatusInternalServerError
}
