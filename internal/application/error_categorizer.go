package application

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/vouh/Spectre-payment-server/internal/domain"
)

// ErrorCategory represents the nature of an error for logging and metrics
type ErrorCategory string

const (
	CategoryTransient      ErrorCategory = "TRANSIENT"
	CategoryPermanent      ErrorCategory = "PERMANENT"
	CategoryClientError    ErrorCategory = "CLIENT_ERROR"
	CategoryInfrastructure ErrorCategory = "INFRASTRUCTURE"
)

// CategorizeError determines the error category for logging purposes
func CategorizeError(err error) ErrorCategory {
	if err == nil {
		return ""
	}

	if IsTimeout(err) || errors.Is(err, context.Canceled) {
		return CategoryTransient
	}

	if domain.IsValidationError(err) || errors.Is(err, domain.ErrMalformedCallback) {
		return CategoryClientError
	}

	if svcErr, ok := IsServiceError(err); ok {
		switch svcErr.Code {
		case ErrCodeValidation, ErrCodeRateLimited:
			return CategoryClientError
		case ErrCodeInitiationRejected:
			return CategoryPermanent
		case ErrCodeUpstreamAuth, ErrCodeInternal:
			return CategoryInfrastructure
		case ErrCodeUpstreamUnavailable, ErrCodeTimeout:
			return CategoryTransient
		}
	}

	if upErr, ok := IsUpstreamError(err); ok {
		if upErr.IsRetryable() {
			return CategoryTransient
		}
		return CategoryPermanent
	}

	return CategoryTransient
}

// IsTimeout reports whether err is a deadline or a network timeout.
func IsTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// ToHTTPStatus maps error to appropriate HTTP status code
func ToHTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}

	if svcErr, ok := IsServiceError(err); ok {
		return svcErr.HTTPStatus
	}

	switch {
	case domain.IsValidationError(err),
		errors.Is(err, domain.ErrMalformedCallback):
		return http.StatusBadRequest
	case IsTimeout(err):
		return http.StatusGatewayTimeout
	}

	if _, ok := IsUpstreamError(err); ok {
		return http.StatusInternalServerError
	}

	return http.StatusInternalServerError
}

// ToErrorCode clear error code for API responses
func ToErrorCode(err error) string {
	if svcErr, ok := IsServiceError(err); ok {
		// Validation wraps the domain error; surface its finer code.
		if svcErr.Code == ErrCodeValidation {
			var domainErr *domain.DomainError
			if errors.As(err, &domainErr) {
				return domainErr.Code
			}
		}
		return svcErr.Code
	}

	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}

	if IsTimeout(err) {
		return ErrCodeTimeout
	}

	if _, ok := IsUpstreamError(err); ok {
		return ErrCodeUpstreamUnavailable
	}

	return ErrCodeInternal
}

// ToErrorMessage returns caller-safe text. Validation and rejection messages
// pass through; transport and auth detail stays in the logs.
func ToErrorMessage(err error) string {
	if svcErr, ok := IsServiceError(err); ok {
		return svcErr.Message
	}

	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Message
	}

	if IsTimeout(err) {
		return "Request timed out"
	}

	return "An internal error occurred"
}
