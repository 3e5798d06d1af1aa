package services

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/vouh/Spectre-payment-server/internal/application"
	"github.com/vouh/Spectre-payment-server/internal/config"
	"github.com/vouh/Spectre-payment-server/internal/domain"
	"github.com/vouh/Spectre-payment-server/internal/metrics"
)

// ResolutionSource tells where a status answer came from.
type ResolutionSource string

const (
	SourceCallback ResolutionSource = "callback"
	SourceQuery    ResolutionSource = "query"
)

const MessageCheckingStatus = "Checking payment status..."

type StatusResult struct {
	Status          domain.PushStatus
	ResultCode      *int
	Message         string
	ReceiptNumber   *string
	Amount          *float64
	Phone           *string
	TransactionDate *string
	Source          ResolutionSource
}

// StatusResolver answers "what happened to this push". A stored callback
// outcome wins; otherwise the provider is queried. Upstream trouble is
// reported as pending so the caller simply polls again.
type StatusResolver struct {
	store  application.TransactionStore
	client application.DarajaClient
	tokens TokenSource
	cfg    config.DarajaConfig
	now    func() time.Time
	logger *slog.Logger
}

func NewStatusResolver(
	store application.TransactionStore,
	client application.DarajaClient,
	tokens TokenSource,
	cfg config.DarajaConfig,
	now func() time.Time,
	logger *slog.Logger,
) *StatusResolver {
	if now == nil {
		now = time.Now
	}
	return &StatusResolver{
		store:  store,
		client: client,
		tokens: tokens,
		cfg:    cfg,
		now:    now,
		logger: logger,
	}
}

func (r *StatusResolver) Resolve(ctx context.Context, correlationID string) (*StatusResult, error) {
	if strings.TrimSpace(correlationID) == "" {
		return nil, application.NewValidationError(domain.NewMissingRequiredFieldError("correlationId"))
	}

	if rec, ok := r.stored(ctx, correlationID); ok {
		return r.observe(fromRecord(rec)), nil
	}

	result := r.query(ctx, correlationID)

	// The callback may have landed while the query was in flight.
	if rec, ok := r.stored(ctx, correlationID); ok {
		return r.observe(fromRecord(rec)), nil
	}

	if result.Status.IsFinal() {
		r.logger.Info("status resolved by query",
			"correlation_id", correlationID,
			"status", result.Status,
		)
	} else {
		r.logger.Debug("status still pending after query", "correlation_id", correlationID)
	}

	return r.observe(result), nil
}

// Lookup reads the store only. It never calls the provider.
func (r *StatusResolver) Lookup(ctx context.Context, correlationID string) (*domain.OutcomeRecord, bool, error) {
	if strings.TrimSpace(correlationID) == "" {
		return nil, false, application.NewValidationError(domain.NewMissingRequiredFieldError("correlationId"))
	}

	rec, ok, err := r.store.Get(ctx, correlationID)
	if err != nil {
		return nil, false, application.NewInternalError(err)
	}
	return rec, ok, nil
}

func (r *StatusResolver) stored(ctx context.Context, correlationID string) (*domain.OutcomeRecord, bool) {
	rec, ok, err := r.store.Get(ctx, correlationID)
	if err != nil {
		r.logger.Warn("transaction store lookup failed",
			"correlation_id", correlationID,
			"error", err,
		)
		return nil, false
	}
	return rec, ok
}

func (r *StatusResolver) query(ctx context.Context, correlationID string) *StatusResult {
	ctx, cancel := upstreamContext(ctx, r.cfg.Timeout)
	defer cancel()

	tok, err := r.tokens.Token(ctx)
	if err != nil {
		r.logger.Warn("status query skipped, no access token",
			"correlation_id", correlationID,
			"error", err,
		)
		return pending(MessageCheckingStatus)
	}

	password, timestamp := application.STKCredentials(r.cfg.ShortCode, r.cfg.Passkey, r.now())

	resp, err := r.client.STKQuery(ctx, tok.Value, application.STKQueryRequest{
		BusinessShortCode: r.cfg.ShortCode,
		Password:          password,
		Timestamp:         timestamp,
		CheckoutRequestID: correlationID,
	})
	if err != nil {
		if isStillProcessing(err) {
			return pending(domain.MessageStillProcessing)
		}
		r.logger.Warn("status query failed",
			"correlation_id", correlationID,
			"error", err,
		)
		return pending(MessageCheckingStatus)
	}

	if resp.ResultCode == "" {
		return pending(domain.MessageStillProcessing)
	}

	code, err := strconv.Atoi(resp.ResultCode.String())
	if err != nil {
		r.logger.Warn("status query returned non-integer result code",
			"correlation_id", correlationID,
			"result_code", resp.ResultCode.String(),
		)
		return pending(domain.MessageStillProcessing)
	}

	message := domain.DescribeResultCode(code)
	if !domain.IsKnownResultCode(code) {
		message = resp.ResultDesc
		if message == "" {
			message = domain.MessageStillProcessing
		}
	}

	return &StatusResult{
		Status:     domain.StatusForResultCode(code),
		ResultCode: intPtr(code),
		Message:    message,
		Source:     SourceQuery,
	}
}

func (r *StatusResolver) observe(res *StatusResult) *StatusResult {
	metrics.StatusResolutions.WithLabelValues(string(res.Source), string(res.Status)).Inc()
	return res
}

// isStillProcessing recognises the provider's "not finished yet" answer,
// which arrives as an error body rather than a result code.
func isStillProcessing(err error) bool {
	upErr, ok := application.IsUpstreamError(err)
	if !ok {
		return false
	}
	msg := strings.ToLower(upErr.Message)
	// e.g. 500.001.1001 "The transaction is being processed"
	return strings.Contains(msg, "process") || strings.Contains(msg, "pending")
}

func pending(message string) *StatusResult {
	return &StatusResult{
		Status:  domain.StatusPending,
		Message: message,
		Source:  SourceQuery,
	}
}

func fromRecord(rec *domain.OutcomeRecord) *StatusResult {
	return &StatusResult{
		Status:          rec.Status(),
		ResultCode:      intPtr(rec.ResultCode),
		Message:         rec.ResultDescription,
		ReceiptNumber:   rec.ReceiptNumber,
		Amount:          rec.Amount,
		Phone:           rec.Phone,
		TransactionDate: rec.TransactionTimestamp,
		Source:          SourceCallback,
	}
}
