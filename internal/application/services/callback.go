package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/vouh/Spectre-payment-server/internal/application"
	"github.com/vouh/Spectre-payment-server/internal/domain"
	"github.com/vouh/Spectre-payment-server/internal/metrics"
)

const (
	callbackProcessed  = "processed"
	callbackMalformed  = "malformed"
	callbackStoreError = "store_error"
)

// CallbackService ingests provider webhooks into the TransactionStore.
type CallbackService struct {
	parser   application.CallbackParser
	store    application.TransactionStore
	recorder application.TransactionRecorder
	now      func() time.Time
	logger   *slog.Logger
}

func NewCallbackService(
	parser application.CallbackParser,
	store application.TransactionStore,
	recorder application.TransactionRecorder,
	now func() time.Time,
	logger *slog.Logger,
) *CallbackService {
	if recorder == nil {
		recorder = application.NopRecorder{}
	}
	if now == nil {
		now = time.Now
	}
	return &CallbackService{
		parser:   parser,
		store:    store,
		recorder: recorder,
		now:      now,
		logger:   logger,
	}
}

// Handle parses and stores one delivery. Duplicate deliveries overwrite.
func (s *CallbackService) Handle(ctx context.Context, raw []byte) (*domain.OutcomeRecord, error) {
	rec, err := s.parser.Parse(raw, s.now())
	if err != nil {
		metrics.CallbacksReceived.WithLabelValues(callbackMalformed).Inc()
		return nil, err
	}

	if err := s.store.Put(ctx, rec); err != nil {
		metrics.CallbacksReceived.WithLabelValues(callbackStoreError).Inc()
		return nil, fmt.Errorf("store outcome %s: %w", rec.CorrelationID, err)
	}

	if err := s.recorder.RecordOutcome(ctx, rec); err != nil {
		s.logger.Warn("failed to record callback outcome",
			"correlation_id", rec.CorrelationID,
			"error", err,
		)
	}

	metrics.CallbacksReceived.WithLabelValues(callbackProcessed).Inc()
	s.logger.Info("callback processed",
		"correlation_id", rec.CorrelationID,
		"result_code", rec.ResultCode,
		"status", rec.Status(),
	)

	return rec, nil
}
