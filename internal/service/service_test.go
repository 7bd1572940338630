package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ANIKETSHETTY47/smart-aquaculture-monitoring-system/internal/accel"
	"github.com/ANIKETSHETTY47/smart-aquaculture-monitoring-system/internal/domain"
	"github.com/ANIKETSHETTY47/smart-aquaculture-monitoring-system/internal/history"
	"github.com/ANIKETSHETTY47/smart-aquaculture-monitoring-system/internal/scoring"
	"github.com/ANIKETSHETTY47/smart-aquaculture-monitoring-system/internal/stats"
)

var start = time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

type recordingSink struct {
	mu          sync.Mutex
	fail        error
	block       chan struct{}
	alerts      []domain.Alert
	feeding     []domain.FeedingRecommendation
	predictions []domain.Prediction
}

func (s *recordingSink) Name() string { return "recording" }

func (s *recordingSink) SaveAlerts(_ context.Context, alerts []domain.Alert) error {
	if s.block != nil {
		<-s.block
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alerts = append(s.alerts, alerts...)
	return s.fail
}

func (s *recordingSink) SaveFeedingRecommendation(_ context.Context, rec domain.FeedingRecommendation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.feeding = append(s.feeding, rec)
	return s.fail
}

func (s *recordingSink) SavePredictions(_ context.Context, preds []domain.Prediction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.predictions = append(s.predictions, preds...)
	return s.fail
}

func (s *recordingSink) counts() (int, int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.alerts), len(s.feeding), len(s.predictions)
}

type memoryStore struct {
	mu       sync.Mutex
	readings []domain.Reading
	fail     error
}

func (m *memoryStore) InsertReading(_ context.Context, r domain.Reading) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	m.readings = append(m.readings, r)
	return nil
}

func (m *memoryStore) RecentAlerts(context.Context, string, int) ([]domain.Alert, error) {
	return nil, nil
}

func (m *memoryStore) ListFarms(context.Context) ([]domain.Farm, error) { return nil, nil }

func pondReading(farm string, i int) domain.Reading {
	return domain.Reading{
		FarmID:          farm,
		Timestamp:       start.Add(time.Duration(i) * time.Hour),
		TemperatureC:    28,
		DissolvedOxygen: 7,
		PH:              8,
		Ammonia:         0.02,
		Turbidity:       18,
		FeedingRate:     260,
		FishActivity:    0.75,
		CurrentSpeed:    0.4,
	}
}

func pondHistory(farm string, n int) []domain.Reading {
	out := make([]domain.Reading, n)
	for i := range out {
		out[i] = pondReading(farm, i)
	}
	return out
}

func TestPipeline_Process(t *testing.T) {
	p := NewPipeline(domain.DefaultThresholds(), stats.Portable{}, scoring.Portable{}, 6, nil)

	h := pondHistory("farm-1", 24)
	current := h[len(h)-1]
	current.DissolvedOxygen = 4.8

	res := p.Process(context.Background(), Cycle{FarmID: "farm-1", Reading: current, History: h})

	require.Len(t, res.Alerts, 1)
	assert.Equal(t, domain.SeverityCritical, res.Alerts[0].Severity)
	assert.Equal(t, "farm-1", res.Alerts[0].FarmID)
	assert.Equal(t, domain.AeratorTurnOn, res.Aerator.Action)
	assert.Equal(t, 95.0, res.Aerator.Confidence)
	assert.Len(t, res.Predictions, 18)
	assert.GreaterOrEqual(t, res.Feeding.RecommendedRate, 100.0)
	assert.Less(t, res.Feeding.AdjustmentPercent, 0.0)

	// the history passed in is left untouched
	assert.Equal(t, 7.0, h[len(h)-1].DissolvedOxygen)
}

func TestPipeline_AppendsCurrentReading(t *testing.T) {
	p := NewPipeline(domain.DefaultThresholds(), nil, nil, 0, nil)

	h := pondHistory("farm-1", 23)
	res := p.Process(context.Background(), Cycle{FarmID: "farm-1", Reading: pondReading("farm-1", 23), History: h})

	assert.Len(t, res.Predictions, 18)
	assert.Len(t, h, 23)
}

func TestPipeline_ShortHistory(t *testing.T) {
	p := NewPipeline(domain.DefaultThresholds(), nil, nil, 6, nil)
	r := pondReading("", 0)

	res := p.Process(context.Background(), Cycle{FarmID: "farm-9", Reading: r})
	assert.Empty(t, res.Predictions)
	assert.Empty(t, res.Alerts)
	assert.Equal(t, 1.5, res.Feeding.FeedConversionRatio)
	assert.Equal(t, 15.0, res.Feeding.FeedWasteRatio)
	assert.Equal(t, "farm-9", res.Feeding.FarmID)
}

func TestPublisher_DeliversToEverySink(t *testing.T) {
	a, b := &recordingSink{}, &recordingSink{}
	pub := NewPublisher(zerolog.Nop(), 8, a, b)
	p := NewPipeline(domain.DefaultThresholds(), nil, nil, 6, pub)

	h := pondHistory("farm-1", 24)
	h[23].Ammonia = 0.6
	p.Process(context.Background(), Cycle{FarmID: "farm-1", Reading: h[23], History: h})
	pub.Close()

	for _, s := range []*recordingSink{a, b} {
		alerts, feeding, preds := s.counts()
		assert.Equal(t, 1, alerts)
		assert.Equal(t, 1, feeding)
		assert.Equal(t, 18, preds)
	}
}

func TestPublisher_FailuresDoNotPropagate(t *testing.T) {
	failing := &recordingSink{fail: errors.New("table missing")}
	ok := &recordingSink{}
	pub := NewPublisher(zerolog.Nop(), 8, failing, ok)

	pub.Publish(context.Background(), "farm-1", Result{
		Alerts:  []domain.Alert{{ID: "a"}},
		Feeding: domain.FeedingRecommendation{ID: "f"},
	})
	pub.Close()

	alerts, feeding, _ := ok.counts()
	assert.Equal(t, 1, alerts)
	assert.Equal(t, 1, feeding)
}

func TestPublisher_NeverBlocksCaller(t *testing.T) {
	slow := &recordingSink{block: make(chan struct{})}
	pub := NewPublisher(zerolog.Nop(), 1, slow)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			pub.Publish(context.Background(), "farm-1", Result{Alerts: []domain.Alert{{ID: "a"}}})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Publish blocked on a slow sink")
	}

	close(slow.block)
	pub.Close()

	alerts, _, _ := slow.counts()
	assert.GreaterOrEqual(t, alerts, 1)
	assert.LessOrEqual(t, alerts, 2)
}

func TestPublisher_CloseIsIdempotent(t *testing.T) {
	pub := NewPublisher(zerolog.Nop(), 1, &recordingSink{})
	pub.Close()
	pub.Close()
	pub.Publish(context.Background(), "farm-1", Result{Alerts: []domain.Alert{{ID: "a"}}})
}

func newServices(t *testing.T, store ReadingStore, sinks ...Sink) *Services {
	svcs := New(Options{
		Thresholds: domain.DefaultThresholds(),
		Horizon:    6,
		Store:      store,
		History:    history.NewMemoryStore(24),
		Sinks:      sinks,
		Logger:     zerolog.Nop(),
	})
	t.Cleanup(svcs.Close)
	return svcs
}

func TestReadingService_FromMQTT(t *testing.T) {
	store := &memoryStore{}
	svcs := newServices(t, store)

	for i := 0; i < 24; i++ {
		payload, err := json.Marshal(pondReading("farm-1", i))
		require.NoError(t, err)
		require.NoError(t, svcs.Readings.FromMQTT("aquaculture/readings", payload))
	}

	assert.Len(t, store.readings, 24)
	recent, err := svcs.History.Recent(context.Background(), "farm-1", 24)
	require.NoError(t, err)
	assert.Len(t, recent, 24)

	preds, err := svcs.Forecast(context.Background(), "farm-1", 3)
	require.NoError(t, err)
	assert.Len(t, preds, 9)

	m, err := svcs.FeedingMetrics(context.Background(), "farm-1")
	require.NoError(t, err)
	assert.NotEqual(t, 1.5, m.AvgFCR)
}

func TestReadingService_FarmFromTopic(t *testing.T) {
	store := &memoryStore{}
	svcs := newServices(t, store)

	r := pondReading("", 0)
	payload, err := json.Marshal(r)
	require.NoError(t, err)

	require.NoError(t, svcs.Readings.FromMQTT("aquaculture/readings/pond-7", payload))
	require.Len(t, store.readings, 1)
	assert.Equal(t, "pond-7", store.readings[0].FarmID)

	err = svcs.Readings.FromMQTT("aquaculture/readings", payload)
	assert.ErrorIs(t, err, ErrNoFarm)
}

func TestReadingService_Errors(t *testing.T) {
	store := &memoryStore{fail: errors.New("db down")}
	svcs := newServices(t, store)

	err := svcs.Readings.FromMQTT("aquaculture/readings", []byte("{"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode reading")

	_, err = svcs.Readings.Ingest(context.Background(), pondReading("farm-1", 0))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db down")
}

func TestReadingService_TracksAeratorState(t *testing.T) {
	svcs := newServices(t, nil)
	ctx := context.Background()

	low := pondReading("farm-1", 0)
	low.DissolvedOxygen = 5
	res, err := svcs.Readings.Ingest(ctx, low)
	require.NoError(t, err)
	assert.Equal(t, domain.AeratorTurnOn, res.Aerator.Action)
	assert.True(t, svcs.Aerators.Active("farm-1"))

	rich := pondReading("farm-1", 1)
	rich.DissolvedOxygen = 7.2
	rich.TemperatureC = 26
	res, err = svcs.Readings.Ingest(ctx, rich)
	require.NoError(t, err)
	assert.Equal(t, domain.AeratorTurnOff, res.Aerator.Action)
	assert.False(t, svcs.Aerators.Active("farm-1"))
}

func TestServices_Aerator(t *testing.T) {
	svcs := newServices(t, nil)

	_, err := svcs.Aerator(context.Background(), "farm-1", false)
	assert.ErrorIs(t, err, ErrNoHistory)

	_, err = svcs.Readings.Ingest(context.Background(), pondReading("farm-1", 0))
	require.NoError(t, err)
	rec, err := svcs.Aerator(context.Background(), "farm-1", false)
	require.NoError(t, err)
	assert.Equal(t, domain.AeratorMaintain, rec.Action)
}

func TestServices_PreloadAcceleration(t *testing.T) {
	svcs := newServices(t, nil)
	assert.False(t, svcs.PreloadAcceleration(context.Background()))
	assert.ErrorIs(t, svcs.Accel.Err(), accel.ErrDisabled)
	assert.Equal(t, "portable", svcs.Accel.Implementation())
}
