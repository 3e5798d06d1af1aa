package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/vouh/Spectre-payment-server/internal/application"
	"github.com/vouh/Spectre-payment-server/internal/domain"
)

// RedisStore shares outcomes between gateway instances. Redis owns expiry,
// so there is nothing to reap.
type RedisStore struct {
	client    *redis.Client
	prefix    string
	retention time.Duration
}

var _ application.TransactionStore = (*RedisStore)(nil)

func NewRedisStore(client *redis.Client, prefix string, retention time.Duration) *RedisStore {
	if retention <= 0 {
		retention = DefaultRetention
	}
	return &RedisStore{
		client:    client,
		prefix:    prefix,
		retention: retention,
	}
}

func (s *RedisStore) key(correlationID string) string {
	return s.prefix + correlationID
}

func (s *RedisStore) Put(ctx context.Context, rec *domain.OutcomeRecord) error {
	if rec == nil {
		return errNilRecord
	}
	if rec.CorrelationID == "" {
		return domain.NewMissingRequiredFieldError("correlation ID")
	}

	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode outcome record: %w", err)
	}

	key := s.key(rec.CorrelationID)

	// A key can expire between SETNX and SET XX; one more round settles it.
	for attempt := 0; attempt < 2; attempt++ {
		created, err := s.client.SetNX(ctx, key, payload, s.retention).Result()
		if err != nil {
			return fmt.Errorf("redis setnx %s: %w", key, err)
		}
		if created {
			return nil
		}

		replaced, err := s.client.SetXX(ctx, key, payload, redis.KeepTTL).Result()
		if err != nil {
			return fmt.Errorf("redis set keepttl %s: %w", key, err)
		}
		if replaced {
			return nil
		}
	}

	return fmt.Errorf("redis put %s: key churned during write", key)
}

func (s *RedisStore) Get(ctx context.Context, correlationID string) (*domain.OutcomeRecord, bool, error) {
	payload, err := s.client.Get(ctx, s.key(correlationID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %s: %w", correlationID, err)
	}

	var rec domain.OutcomeRecord
	if err := json.Unmarshal(payload, &rec); err != nil {
		return nil, false, fmt.Errorf("decode outcome record %s: %w", correlationID, err)
	}
	return &rec, true, nil
}

// Ping checks connectivity at startup.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
