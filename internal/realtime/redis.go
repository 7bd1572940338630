// Package realtime pushes decision-cycle results to Redis pub/sub so that
// dashboards can follow a farm without polling the API.
package realtime

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/ANIKETSHETTY47/smart-aquaculture-monitoring-system/internal/domain"
)

const channelPrefix = "aquaculture:events:"

// Event is the message published on a farm channel.
type Event struct {
	Kind   string          `json:"kind"`
	FarmID string          `json:"farm_id"`
	Data   json.RawMessage `json:"data"`
}

type RedisPublisher struct {
	client *redis.Client
}

func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{client: client}
}

func Channel(farmID string) string {
	return channelPrefix + farmID
}

func (p *RedisPublisher) Name() string { return "redis" }

func (p *RedisPublisher) SaveAlerts(ctx context.Context, alerts []domain.Alert) error {
	if len(alerts) == 0 {
		return nil
	}
	return p.publish(ctx, "alerts", alerts[0].FarmID, alerts)
}

func (p *RedisPublisher) SaveFeedingRecommendation(ctx context.Context, rec domain.FeedingRecommendation) error {
	return p.publish(ctx, "feeding", rec.FarmID, rec)
}

func (p *RedisPublisher) SavePredictions(ctx context.Context, preds []domain.Prediction) error {
	if len(preds) == 0 {
		return nil
	}
	return p.publish(ctx, "predictions", preds[0].FarmID, preds)
}

func (p *RedisPublisher) publish(ctx context.Context, kind, farmID string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", kind, err)
	}
	msg, err := json.Marshal(Event{Kind: kind, FarmID: farmID, Data: data})
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	if err := p.client.Publish(ctx, Channel(farmID), msg).Err(); err != nil {
		return fmt.Errorf("publish %s for %s: %w", kind, farmID, err)
	}
	return nil
}
