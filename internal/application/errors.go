package application

import (
	"errors"
	"fmt"
	"net/http"
)

// APPLICATION-LEVEL ERRORS (Orchestration)

type ServiceError struct {
	Code       string
	Message    string
	HTTPStatus int
	Err        error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

const (
	ErrCodeValidation          = "VALIDATION_ERROR"
	ErrCodeUpstreamAuth        = "UPSTREAM_AUTH_ERROR"
	ErrCodeInitiationRejected  = "INITIATION_REJECTED"
	ErrCodeUpstreamUnavailable = "UPSTREAM_UNAVAILABLE"
	ErrCodeTimeout             = "TIMEOUT"
	ErrCodeRateLimited         = "RATE_LIMITED"
	ErrCodeInternal            = "INTERNAL_ERROR"
)

func NewValidationError(err error) *ServiceError {
	msg := "Invalid input"
	if err != nil {
		msg = err.Error()
	}
	return &ServiceError{
		Code:       ErrCodeValidation,
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
		Err:        err,
	}
}

func NewUpstreamAuthError(err error) *ServiceError {
	return &ServiceError{
		Code:       ErrCodeUpstreamAuth,
		Message:    "Payment service temporarily unavailable",
		HTTPStatus: http.StatusServiceUnavailable,
		Err:        err,
	}
}

// NewInitiationRejectedError carries the provider's own description, which is
// safe to show to the caller.
func NewInitiationRejectedError(description string) *ServiceError {
	if description == "" {
		description = "Payment request was rejected"
	}
	return &ServiceError{
		Code:       ErrCodeInitiationRejected,
		Message:    description,
		HTTPStatus: http.StatusBadRequest,
	}
}

func NewUpstreamUnavailableError(err error) *ServiceError {
	return &ServiceError{
		Code:       ErrCodeUpstreamUnavailable,
		Message:    "Payment service temporarily unavailable",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func NewTimeoutError(err error) *ServiceError {
	return &ServiceError{
		Code:       ErrCodeTimeout,
		Message:    "Payment provider did not respond in time",
		HTTPStatus: http.StatusGatewayTimeout,
		Err:        err,
	}
}

func NewRateLimitedError() *ServiceError {
	return &ServiceError{
		Code:       ErrCodeRateLimited,
		Message:    "Too many requests. Please wait a moment and try again. Limits are counted per gateway instance.",
		HTTPStatus: http.StatusTooManyRequests,
	}
}

func NewInternalError(err error) *ServiceError {
	return &ServiceError{
		Code:       ErrCodeInternal,
		Message:    "An internal error occurred",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func IsServiceError(err error) (*ServiceError, bool) {
	var svcErr *ServiceError
	ok := errors.As(err, &svcErr)
	return svcErr, ok
}

// UpstreamError is a non-2xx response from the payment provider. Message is
// only set when the provider sent its JSON error body; Body keeps anything else.
type UpstreamError struct {
	Code       string
	Message    string
	StatusCode int
	Body       string
}

// UpstreamErrorResponse is the provider's error body.
type UpstreamErrorResponse struct {
	RequestID    string `json:"requestId"`
	ErrorCode    string `json:"errorCode"`
	ErrorMessage string `json:"errorMessage"`
}

func (e *UpstreamError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Body
	}
	return fmt.Sprintf("upstream error [%s]: %s (status: %d)", e.Code, msg, e.StatusCode)
}

func (e *UpstreamError) IsRetryable() bool {
	return e.StatusCode >= 500
}

func IsUpstreamError(err error) (*UpstreamError, bool) {
	var upErr *UpstreamError
	ok := errors.As(err, &upErr)
	return upErr, ok
}
