package application

import (
	"context"
	"time"

	"github.com/vouh/Spectre-payment-server/internal/domain"
)

// DarajaClient is the port for the upstream payment provider.
type DarajaClient interface {
	GenerateToken(ctx context.Context) (*TokenResponse, error)
	STKPush(ctx context.Context, token string, req STKPushRequest) (*STKPushResponse, error)
	STKQuery(ctx context.Context, token string, req STKQueryRequest) (*STKQueryResponse, error)
}

// TransactionStore correlates a CheckoutRequestID with its outcome.
// A record stays visible for the retention window measured from its first Put.
type TransactionStore interface {
	Put(ctx context.Context, rec *domain.OutcomeRecord) error
	Get(ctx context.Context, correlationID string) (*domain.OutcomeRecord, bool, error)
}

// TransactionRecorder is the durable sink for initiated pushes and outcomes.
type TransactionRecorder interface {
	RecordInitiated(ctx context.Context, req *domain.PushRequest) error
	RecordOutcome(ctx context.Context, rec *domain.OutcomeRecord) error
}

// NopRecorder discards everything. Used when no database is configured.
type NopRecorder struct{}

func (NopRecorder) RecordInitiated(context.Context, *domain.PushRequest) error { return nil }
func (NopRecorder) RecordOutcome(context.Context, *domain.OutcomeRecord) error { return nil }

// RateLimiter admits or rejects a request for a client key.
type RateLimiter interface {
	Allow(clientKey string) bool
}

// CallbackParser turns a raw webhook body into an OutcomeRecord.
type CallbackParser interface {
	Parse(raw []byte, receivedAt time.Time) (*domain.OutcomeRecord, error)
}
