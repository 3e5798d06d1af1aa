package services_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/vouh/Spectre-payment-server/internal/application"
	"github.com/vouh/Spectre-payment-server/internal/application/services"
	"github.com/vouh/Spectre-payment-server/internal/config"
	"github.com/vouh/Spectre-payment-server/internal/domain"
)

var fixedNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testDarajaConfig() config.DarajaConfig {
	return config.DarajaConfig{
		ShortCode:          "174379",
		Passkey:            "passkey",
		TransactionType:    "CustomerPayBillOnline",
		CallbackURL:        "https://example.com/webhook",
		DefaultReference:   "SpectreTech",
		DefaultDescription: "Payment",
	}
}

// staticTokens always returns the same token, or the same error.
type staticTokens struct {
	err   error
	calls int
	mu    sync.Mutex
}

func (s *staticTokens) Token(context.Context) (services.AccessToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return services.AccessToken{}, s.err
	}
	return services.AccessToken{Value: "tok-1", ExpiresAt: fixedNow.Add(time.Hour)}, nil
}

type fakeRecorder struct {
	mu        sync.Mutex
	initiated []*domain.PushRequest
	outcomes  []*domain.OutcomeRecord
	err       error
}

func (r *fakeRecorder) RecordInitiated(_ context.Context, req *domain.PushRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.initiated = append(r.initiated, req)
	return r.err
}

func (r *fakeRecorder) RecordOutcome(_ context.Context, rec *domain.OutcomeRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, rec)
	return r.err
}

// scriptedStore returns records from a queue of Get answers, then the last one.
type scriptedStore struct {
	mu      sync.Mutex
	answers []*domain.OutcomeRecord
	getErr  error
	gets    int
	puts    []*domain.OutcomeRecord
	putErr  error
}

func (s *scriptedStore) Put(_ context.Context, rec *domain.OutcomeRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.putErr != nil {
		return s.putErr
	}
	s.puts = append(s.puts, rec)
	return nil
}

func (s *scriptedStore) Get(context.Context, string) (*domain.OutcomeRecord, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gets++
	if s.getErr != nil {
		return nil, false, s.getErr
	}
	if len(s.answers) == 0 {
		return nil, false, nil
	}
	rec := s.answers[0]
	if len(s.answers) > 1 {
		s.answers = s.answers[1:]
	}
	return rec, rec != nil, nil
}

var errBoom = errors.New("boom")

var _ application.TransactionStore = (*scriptedStore)(nil)
var _ application.TransactionRecorder = (*fakeRecorder)(nil)
