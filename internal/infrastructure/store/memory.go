// Package store holds TransactionStore implementations.
//
// Records are retained for a fixed window measured from the first Put for a
// correlation ID. A later Put for the same ID replaces the record but does
// not extend its lifetime.
package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/vouh/Spectre-payment-server/internal/application"
	"github.com/vouh/Spectre-payment-server/internal/domain"
	"github.com/vouh/Spectre-payment-server/internal/metrics"
)

// DefaultRetention is how long an outcome stays visible to pollers.
const DefaultRetention = 10 * time.Minute

var errNilRecord = errors.New("store: nil outcome record")

type entry struct {
	record    *domain.OutcomeRecord
	expiresAt time.Time
}

// MemoryStore is the single-process TransactionStore. Expired entries are
// hidden from Get immediately and removed by Reap.
type MemoryStore struct {
	mu        sync.RWMutex
	entries   map[string]entry
	retention time.Duration
	now       func() time.Time
}

var _ application.TransactionStore = (*MemoryStore)(nil)

func NewMemoryStore(retention time.Duration, now func() time.Time) *MemoryStore {
	if retention <= 0 {
		retention = DefaultRetention
	}
	if now == nil {
		now = time.Now
	}
	return &MemoryStore{
		entries:   make(map[string]entry),
		retention: retention,
		now:       now,
	}
}

func (s *MemoryStore) Put(_ context.Context, rec *domain.OutcomeRecord) error {
	if rec == nil {
		return errNilRecord
	}
	if rec.CorrelationID == "" {
		return domain.NewMissingRequiredFieldError("correlation ID")
	}

	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	expiresAt := now.Add(s.retention)
	if existing, ok := s.entries[rec.CorrelationID]; ok && now.Before(existing.expiresAt) {
		expiresAt = existing.expiresAt
	}
	s.entries[rec.CorrelationID] = entry{record: rec, expiresAt: expiresAt}
	metrics.StoreEntries.Set(float64(len(s.entries)))

	return nil
}

func (s *MemoryStore) Get(_ context.Context, correlationID string) (*domain.OutcomeRecord, bool, error) {
	now := s.now()

	s.mu.RLock()
	e, ok := s.entries[correlationID]
	s.mu.RUnlock()

	if !ok || !now.Before(e.expiresAt) {
		return nil, false, nil
	}
	return e.record, true, nil
}

// Reap removes expired entries and returns how many were dropped.
func (s *MemoryStore) Reap() int {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	reaped := 0
	for id, e := range s.entries {
		if !now.Before(e.expiresAt) {
			delete(s.entries, id)
			reaped++
		}
	}

	metrics.StoreEntries.Set(float64(len(s.entries)))
	metrics.StoreReaped.Add(float64(reaped))
	return reaped
}

// Len counts entries still held, expired or not.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
