package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"ninlookup/internal/lookup/models"
	id "ninlookup/pkg/domain"
	"ninlookup/pkg/platform/sentinel"
)

const (
	statusKeyPrefix = "lookup:status:"

	DefaultStatusCacheTTL = 10 * time.Minute
)

// RedisStatusCache keeps completed records by reference. Pending records are never
// cached, so a hit is always a terminal answer.
type RedisStatusCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewRedisStatusCache(client redis.Cmdable, ttl time.Duration) *RedisStatusCache {
	if ttl <= 0 {
		ttl = DefaultStatusCacheTTL
	}
	return &RedisStatusCache{client: client, ttl: ttl}
}

type cachedRecord struct {
	ID          string         `json:"id"`
	Ref         string         `json:"ref"`
	CreatedAt   time.Time      `json:"created_at"`
	Method      string         `json:"method"`
	Provider    string         `json:"provider"`
	Status      string         `json:"status"`
	Result      map[string]any `json:"result"`
	Error       string         `json:"error"`
	CompletedAt *time.Time     `json:"completed_at,omitempty"`
}

func statusKey(ref id.Reference) string {
	return statusKeyPrefix + ref.String()
}

// Get returns sentinel.ErrNotFound on a cache miss.
func (c *RedisStatusCache) Get(ctx context.Context, ref id.Reference) (*models.VerificationRequest, error) {
	raw, err := c.client.Get(ctx, statusKey(ref)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("get cached status: %w", err)
	}
	var cr cachedRecord
	if err := json.Unmarshal(raw, &cr); err != nil {
		return nil, fmt.Errorf("decode cached status: %w", err)
	}
	vid, err := id.ParseVerificationID(cr.ID)
	if err != nil {
		return nil, fmt.Errorf("decode cached status: %w", err)
	}
	rec := &models.VerificationRequest{
		ID:          vid,
		Ref:         id.Reference(cr.Ref),
		CreatedAt:   cr.CreatedAt,
		Method:      models.Method(cr.Method),
		Consent:     true,
		Input:       models.Payload{},
		Provider:    cr.Provider,
		Status:      cr.Status,
		Result:      cr.Result,
		Error:       cr.Error,
		CompletedAt: cr.CompletedAt,
	}
	if rec.Result == nil {
		rec.Result = map[string]any{}
	}
	return rec, nil
}

// Put stores a completed record. Identity input, client IP and user agent are not cached.
func (c *RedisStatusCache) Put(ctx context.Context, rec *models.VerificationRequest) error {
	if rec == nil || rec.IsPending() {
		return nil
	}
	raw, err := json.Marshal(cachedRecord{
		ID:          rec.ID.String(),
		Ref:         rec.Ref.String(),
		CreatedAt:   rec.CreatedAt,
		Method:      rec.Method.String(),
		Provider:    rec.Provider,
		Status:      rec.Status,
		Result:      rec.Result,
		Error:       rec.Error,
		CompletedAt: rec.CompletedAt,
	})
	if err != nil {
		return fmt.Errorf("encode cached status: %w", err)
	}
	if err := c.client.Set(ctx, statusKey(rec.Ref), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache status: %w", err)
	}
	return nil
}
