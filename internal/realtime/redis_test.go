package realtime

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ANIKETSHETTY47/smart-aquaculture-monitoring-system/internal/domain"
)

func setup(t *testing.T) (*miniredis.Miniredis, *redis.Client, *RedisPublisher) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client, NewRedisPublisher(client)
}

func TestRedisPublisher_FeedingEvent(t *testing.T) {
	_, client, pub := setup(t)
	ctx := context.Background()

	sub := client.Subscribe(ctx, Channel("farm-1"))
	defer sub.Close()
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	rec := domain.FeedingRecommendation{ID: "f-1", FarmID: "farm-1", RecommendedRate: 252, Reason: "Environment stable - maintain current feeding rate"}
	require.NoError(t, pub.SaveFeedingRecommendation(ctx, rec))

	select {
	case msg := <-sub.Channel():
		var ev Event
		require.NoError(t, json.Unmarshal([]byte(msg.Payload), &ev))
		assert.Equal(t, "feeding", ev.Kind)
		assert.Equal(t, "farm-1", ev.FarmID)

		var got domain.FeedingRecommendation
		require.NoError(t, json.Unmarshal(ev.Data, &got))
		assert.Equal(t, 252.0, got.RecommendedRate)
	case <-time.After(2 * time.Second):
		t.Fatal("no event received")
	}
}

func TestRedisPublisher_EmptyBatchesAreSkipped(t *testing.T) {
	mr, _, pub := setup(t)
	mr.Close()

	ctx := context.Background()
	assert.NoError(t, pub.SaveAlerts(ctx, nil))
	assert.NoError(t, pub.SavePredictions(ctx, nil))
	assert.Error(t, pub.SaveAlerts(ctx, []domain.Alert{{ID: "a", FarmID: "farm-1"}}))
}
