package idempotency

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"ticketing-engine/internal/pkg/config"
	"ticketing-engine/internal/pkg/errs"

	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "idempotency:"

type Status string

const (
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
)

// Record is what a key remembers: the request fingerprint and, once done, the response.
type Record struct {
	Status       Status     `json:"status"`
	RequestHash  string     `json:"request_hash"`
	ResponseCode int        `json:"response_code,omitempty"`
	ResponseBody []byte     `json:"response_body,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}

// Client is the subset of go-redis the store uses.
type Client interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisStore keeps processing records briefly and completed records for the replay window.
type RedisStore struct {
	client        Client
	ttl           time.Duration
	processingTTL time.Duration
}

func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := redisotel.InstrumentTracing(client); err != nil {
		_ = client.Close()
		return nil, errs.Wrap(err, "failed to instrument redis client")
	}
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errs.Wrap(err, "failed to ping redis")
	}
	return client, nil
}

func NewRedisStore(client Client, cfg config.RedisConfig) *RedisStore {
	ttl, processing := cfg.IdempotencyTTL, cfg.ProcessingTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if processing <= 0 {
		processing = 30 * time.Second
	}
	return &RedisStore{client: client, ttl: ttl, processingTTL: processing}
}

// Reserve claims key for a new request. When the key is already taken it returns
// the existing record and acquired=false.
func (s *RedisStore) Reserve(ctx context.Context, key, requestHash string, now time.Time) (*Record, bool, error) {
	data, err := json.Marshal(Record{Status: StatusProcessing, RequestHash: requestHash, CreatedAt: now})
	if err != nil {
		return nil, false, errs.Wrap(err, "failed to encode idempotency record")
	}
	ok, err := s.client.SetNX(ctx, keyPrefix+key, data, s.processingTTL).Result()
	if err != nil {
		return nil, false, errs.Wrap(err, "failed to reserve idempotency key")
	}
	if ok {
		return nil, true, nil
	}

	existing, err := s.get(ctx, key)
	if err != nil {
		return nil, false, err
	}
	if existing == nil {
		// Expired between SETNX and GET; the caller may retry.
		return &Record{Status: StatusProcessing, RequestHash: requestHash, CreatedAt: now}, false, nil
	}
	return existing, false, nil
}

func (s *RedisStore) Complete(ctx context.Context, key string, rec Record) error {
	rec.Status = StatusCompleted
	data, err := json.Marshal(rec)
	if err != nil {
		return errs.Wrap(err, "failed to encode idempotency record")
	}
	if err := s.client.Set(ctx, keyPrefix+key, data, s.ttl).Err(); err != nil {
		return errs.Wrap(err, "failed to store idempotency record")
	}
	return nil
}

// Release forgets key so a failed attempt can be retried with the same key.
func (s *RedisStore) Release(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, keyPrefix+key).Err(); err != nil {
		return errs.Wrap(err, "failed to release idempotency key")
	}
	return nil
}

func (s *RedisStore) get(ctx context.Context, key string) (*Record, error) {
	raw, err := s.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, errs.Wrap(err, "failed to read idempotency record")
	}
	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, errs.Wrap(err, "failed to decode idempotency record")
	}
	return &rec, nil
}
