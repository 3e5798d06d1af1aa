package services

import (
	"context"
	"time"

	"github.com/vouh/Spectre-payment-server/internal/application"
)

// upstreamContext gives a token exchange and the call that uses it one
// shared deadline.
func upstreamContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

// classifyUpstreamError turns a push failure into the error the caller sees.
// Only a 4xx carrying the provider's own message counts as a rejection.
func classifyUpstreamError(err error) error {
	if application.IsTimeout(err) {
		return application.NewTimeoutError(err)
	}

	if upErr, ok := application.IsUpstreamError(err); ok {
		if !upErr.IsRetryable() && upErr.Message != "" {
			return application.NewInitiationRejectedError(upErr.Message)
		}
	}

	return application.NewUpstreamUnavailableError(err)
}

func intPtr(v int) *int {
	return &v
}
