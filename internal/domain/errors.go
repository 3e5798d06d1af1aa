package domain

import (
	"errors"
	"fmt"
)

// DomainError represents a business rule violation
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

// Unwrap returns the underlying error for errors.Is/As support
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match any DomainError carrying the same code.
func (e *DomainError) Is(target error) bool {
	var t *DomainError
	if errors.As(target, &t) {
		return t.Code == e.Code
	}
	return false
}

const (
	ErrCodeInvalidPhone         = "INVALID_PHONE"
	ErrCodeInvalidAmount        = "INVALID_AMOUNT"
	ErrCodeMissingRequiredField = "MISSING_REQUIRED_FIELD"
	ErrCodeMalformedCallback    = "MALFORMED_CALLBACK"
)

// ErrMalformedCallback matches every callback parse failure via errors.Is.
var ErrMalformedCallback = &DomainError{Code: ErrCodeMalformedCallback, Message: "malformed callback"}

func NewInvalidPhoneError(phone string) *DomainError {
	return &DomainError{
		Code:    ErrCodeInvalidPhone,
		Message: fmt.Sprintf("invalid phone number format: %q", phone),
	}
}

func NewInvalidAmountError(amount int64) *DomainError {
	return &DomainError{
		Code:    ErrCodeInvalidAmount,
		Message: fmt.Sprintf("amount must be between %d and %d, got %d", MinAmount, MaxAmount, amount),
	}
}

func NewMissingRequiredFieldError(field string) *DomainError {
	return &DomainError{
		Code:    ErrCodeMissingRequiredField,
		Message: fmt.Sprintf("%s is required", field),
	}
}

func NewMalformedCallbackError(reason string, err error) *DomainError {
	return &DomainError{
		Code:    ErrCodeMalformedCallback,
		Message: fmt.Sprintf("malformed callback: %s", reason),
		Err:     err,
	}
}

// IsErrorCode checks if an error is a DomainError with a specific code
func IsErrorCode(err error, code string) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == code
	}
	return false
}

// IsValidationError reports whether err is a user-fixable input error.
func IsValidationError(err error) bool {
	var domainErr *DomainError
	if !errors.As(err, &domainErr) {
		return false
	}
	switch domainErr.Code {
	case ErrCodeInvalidPhone, ErrCodeInvalidAmount, ErrCodeMissingRequiredField:
		return true
	}
	return false
}
