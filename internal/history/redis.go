package history

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/ANIKETSHETTY47/smart-aquaculture-monitoring-system/internal/domain"
)

const keyPrefix = "aquaculture:history:"

// RedisStore keeps each farm's window in a capped Redis list so the history
// survives ingestor restarts.
type RedisStore struct {
	client   *redis.Client
	capacity int
}

func NewRedisStore(client *redis.Client, capacity int) *RedisStore {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &RedisStore{client: client, capacity: capacity}
}

func Key(farmID string) string {
	return keyPrefix + farmID
}

func (s *RedisStore) Append(ctx context.Context, r domain.Reading) ([]domain.Reading, error) {
	payload, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("encode reading: %w", err)
	}

	key := Key(r.FarmID)
	pipe := s.client.TxPipeline()
	pipe.RPush(ctx, key, payload)
	pipe.LTrim(ctx, key, int64(-s.capacity), -1)
	values := pipe.LRange(ctx, key, 0, -1)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("append history for %s: %w", r.FarmID, err)
	}
	return decode(values.Val())
}

func (s *RedisStore) Recent(ctx context.Context, farmID string, n int) ([]domain.Reading, error) {
	if n <= 0 {
		return []domain.Reading{}, nil
	}
	values, err := s.client.LRange(ctx, Key(farmID), int64(-n), -1).Result()
	if err != nil {
		return nil, fmt.Errorf("load history for %s: %w", farmID, err)
	}
	return decode(values)
}

func decode(values []string) ([]domain.Reading, error) {
	out := make([]domain.Reading, 0, len(values))
	for _, v := range values {
		var r domain.Reading
		if err := json.Unmarshal([]byte(v), &r); err != nil {
			return nil, fmt.Errorf("decode reading: %w", err)
		}
		out = append(out, r)
	}
	return out, nil
}
