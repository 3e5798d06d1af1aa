package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/vouh/Spectre-payment-server/internal/application"
	"github.com/vouh/Spectre-payment-server/internal/config"
	"github.com/vouh/Spectre-payment-server/internal/domain"
	"github.com/vouh/Spectre-payment-server/internal/metrics"
)

const responseCodeAccepted = "0"

type PushService struct {
	client   application.DarajaClient
	tokens   TokenSource
	recorder application.TransactionRecorder
	cfg      config.DarajaConfig
	now      func() time.Time
	logger   *slog.Logger
}

func NewPushService(
	client application.DarajaClient,
	tokens TokenSource,
	recorder application.TransactionRecorder,
	cfg config.DarajaConfig,
	now func() time.Time,
	logger *slog.Logger,
) *PushService {
	if recorder == nil {
		recorder = application.NopRecorder{}
	}
	if now == nil {
		now = time.Now
	}
	return &PushService{
		client:   client,
		tokens:   tokens,
		recorder: recorder,
		cfg:      cfg,
		now:      now,
		logger:   logger,
	}
}

// Initiate validates the command and asks the provider to prompt the
// customer. The returned CorrelationID is what callers poll with.
func (s *PushService) Initiate(ctx context.Context, cmd PushCommand) (*PushResult, error) {
	phone, err := domain.NormalizePhone(cmd.Phone)
	if err != nil {
		metrics.PushRequests.WithLabelValues(metrics.ResultInvalid).Inc()
		return nil, application.NewValidationError(err)
	}
	if err := domain.ValidateAmount(cmd.Amount); err != nil {
		metrics.PushRequests.WithLabelValues(metrics.ResultInvalid).Inc()
		return nil, application.NewValidationError(err)
	}

	reference := domain.SanitizeReference(cmd.Reference, s.cfg.DefaultReference)
	description := domain.SanitizeDescription(cmd.Description, s.cfg.DefaultDescription)

	upstreamCtx, cancel := upstreamContext(ctx, s.cfg.Timeout)
	defer cancel()

	tok, err := s.tokens.Token(upstreamCtx)
	if err != nil {
		metrics.PushRequests.WithLabelValues(metrics.ResultError).Inc()
		return nil, err
	}

	password, timestamp := application.STKCredentials(s.cfg.ShortCode, s.cfg.Passkey, s.now())

	req := application.STKPushRequest{
		BusinessShortCode: s.cfg.ShortCode,
		Password:          password,
		Timestamp:         timestamp,
		TransactionType:   s.cfg.TransactionType,
		Amount:            cmd.Amount,
		PartyA:            phone,
		PartyB:            s.cfg.Receiver(),
		PhoneNumber:       phone,
		CallBackURL:       s.cfg.CallbackURL,
		AccountReference:  reference,
		TransactionDesc:   description,
	}

	s.logger.Debug("sending stk push",
		"amount", cmd.Amount,
		"reference", reference,
		"timestamp", timestamp,
	)

	resp, err := s.client.STKPush(upstreamCtx, tok.Value, req)
	if err != nil {
		svcErr := classifyUpstreamError(err)
		metrics.PushRequests.WithLabelValues(resultLabel(svcErr)).Inc()
		s.logger.Warn("stk push failed",
			"error", err,
			"category", application.CategorizeError(svcErr),
		)
		return nil, svcErr
	}

	if resp.ResponseCode != responseCodeAccepted {
		metrics.PushRequests.WithLabelValues(metrics.ResultRejected).Inc()
		s.logger.Warn("stk push rejected",
			"response_code", resp.ResponseCode,
			"description", resp.ResponseDescription,
		)
		return nil, application.NewInitiationRejectedError(resp.ResponseDescription)
	}

	if resp.CheckoutRequestID == "" {
		metrics.PushRequests.WithLabelValues(metrics.ResultError).Inc()
		return nil, application.NewUpstreamUnavailableError(errors.New("accepted push without CheckoutRequestID"))
	}

	metrics.PushRequests.WithLabelValues(metrics.ResultSuccess).Inc()
	s.logger.Info("stk push accepted",
		"correlation_id", resp.CheckoutRequestID,
		"peer_correlation_id", resp.MerchantRequestID,
		"amount", cmd.Amount,
	)

	pending := &domain.PushRequest{
		CorrelationID:     resp.CheckoutRequestID,
		PeerCorrelationID: resp.MerchantRequestID,
		Phone:             phone,
		Amount:            cmd.Amount,
		Reference:         reference,
		Description:       description,
		InitiatedAt:       s.now(),
	}
	if err := s.recorder.RecordInitiated(ctx, pending); err != nil {
		s.logger.Warn("failed to record initiated push",
			"correlation_id", resp.CheckoutRequestID,
			"error", err,
		)
	}

	return &PushResult{
		CorrelationID:     resp.CheckoutRequestID,
		PeerCorrelationID: resp.MerchantRequestID,
		CustomerMessage:   resp.CustomerMessage,
	}, nil
}

func resultLabel(err error) string {
	if svcErr, ok := application.IsServiceError(err); ok && svcErr.Code == application.ErrCodeInitiationRejected {
		return metrics.ResultRejected
	}
	return metrics.ResultError
}
