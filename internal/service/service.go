package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/ANIKETSHETTY47/smart-aquaculture-monitoring-system/internal/accel"
	"github.com/ANIKETSHETTY47/smart-aquaculture-monitoring-system/internal/aerator"
	"github.com/ANIKETSHETTY47/smart-aquaculture-monitoring-system/internal/domain"
	"github.com/ANIKETSHETTY47/smart-aquaculture-monitoring-system/internal/feeding"
	"github.com/ANIKETSHETTY47/smart-aquaculture-monitoring-system/internal/history"
	"github.com/ANIKETSHETTY47/smart-aquaculture-monitoring-system/internal/metrics"
)

var (
	ErrNoFarm    = errors.New("reading has no farm id")
	ErrNoHistory = errors.New("no readings recorded for farm")
)

// ReadingStore persists raw readings and serves the query side of the API.
type ReadingStore interface {
	InsertReading(ctx context.Context, r domain.Reading) error
	RecentAlerts(ctx context.Context, farmID string, limit int) ([]domain.Alert, error)
	ListFarms(ctx context.Context) ([]domain.Farm, error)
}

type Options struct {
	Thresholds domain.ThresholdTable
	Loader     accel.Loader
	Horizon    int
	Store      ReadingStore
	History    history.Store
	Sinks      []Sink
	Logger     zerolog.Logger
}

type Services struct {
	Thresholds domain.ThresholdTable
	Accel      *accel.Dispatcher
	Pipeline   *Pipeline
	Publisher  *Publisher
	History    history.Store
	Store      ReadingStore
	Readings   *ReadingService
	Aerators   *AeratorStates
}

func New(opts Options) *Services {
	if opts.History == nil {
		opts.History = history.NewMemoryStore(history.DefaultCapacity)
	}
	dispatcher := accel.New(opts.Loader, opts.Logger)
	publisher := NewPublisher(opts.Logger, defaultQueueSize, opts.Sinks...)
	pipeline := NewPipeline(opts.Thresholds, dispatcher, dispatcher, opts.Horizon, publisher)
	aerators := NewAeratorStates()

	return &Services{
		Thresholds: opts.Thresholds,
		Accel:      dispatcher,
		Pipeline:   pipeline,
		Publisher:  publisher,
		History:    opts.History,
		Store:      opts.Store,
		Aerators:   aerators,
		Readings: &ReadingService{
			store:    opts.Store,
			history:  opts.History,
			pipeline: pipeline,
			aerators: aerators,
			logger:   opts.Logger.With().Str("component", "readings").Logger(),
		},
	}
}

// PreloadAcceleration starts loading the native kernels and reports whether
// they became available before ctx ended.
func (s *Services) PreloadAcceleration(ctx context.Context) bool {
	return s.Accel.Preload(ctx)
}

// Close flushes queued results to the sinks.
func (s *Services) Close() {
	s.Publisher.Close()
}

// Forecast projects a farm's recorded history hours ahead.
func (s *Services) Forecast(ctx context.Context, farmID string, hours int) ([]domain.Prediction, error) {
	recent, err := s.History.Recent(ctx, farmID, history.DefaultCapacity)
	if err != nil {
		return nil, err
	}
	return s.Pipeline.Forecast(recent, hours), nil
}

func (s *Services) FeedingMetrics(ctx context.Context, farmID string) (domain.FeedingMetrics, error) {
	recent, err := s.History.Recent(ctx, farmID, history.DefaultCapacity)
	if err != nil {
		return domain.FeedingMetrics{}, err
	}
	return feeding.Metrics(recent), nil
}

// Aerator recommends for the latest recorded reading of a farm.
func (s *Services) Aerator(ctx context.Context, farmID string, active bool) (domain.AeratorRecommendation, error) {
	recent, err := s.History.Recent(ctx, farmID, aerator.TrendWindow)
	if err != nil {
		return domain.AeratorRecommendation{}, err
	}
	if len(recent) == 0 {
		return domain.AeratorRecommendation{}, fmt.Errorf("%w: %s", ErrNoHistory, farmID)
	}
	return aerator.Recommend(recent[len(recent)-1], recent, active), nil
}

// AeratorStates tracks the last known aerator state per farm. The ingestor
// acts as the actuator and follows turn_on/turn_off recommendations.
type AeratorStates struct {
	mu     sync.RWMutex
	active map[string]bool
}

func NewAeratorStates() *AeratorStates {
	return &AeratorStates{active: make(map[string]bool)}
}

func (a *AeratorStates) Active(farmID string) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.active[farmID]
}

func (a *AeratorStates) Apply(farmID string, action domain.AeratorAction) {
	a.mu.Lock()
	defer a.mu.Unlock()
	switch action {
	case domain.AeratorTurnOn:
		a.active[farmID] = true
	case domain.AeratorTurnOff:
		a.active[farmID] = false
	}
}

type ReadingService struct {
	store    ReadingStore
	history  history.Store
	pipeline *Pipeline
	aerators *AeratorStates
	logger   zerolog.Logger
}

// FromMQTT decodes a JSON reading and runs it through Ingest. A payload
// without farm_id takes the farm from the last topic segment.
func (s *ReadingService) FromMQTT(topic string, payload []byte) error {
	var r domain.Reading
	if err := json.Unmarshal(payload, &r); err != nil {
		metrics.ReadingsFailed.Inc()
		return fmt.Errorf("decode reading from %s: %w", topic, err)
	}
	if r.FarmID == "" {
		r.FarmID = farmFromTopic(topic)
	}
	_, err := s.Ingest(context.Background(), r)
	return err
}

// Ingest stores the reading, appends it to the farm history and runs a cycle
// with the farm's current aerator state.
func (s *ReadingService) Ingest(ctx context.Context, r domain.Reading) (Result, error) {
	if r.FarmID == "" {
		metrics.ReadingsFailed.Inc()
		return Result{}, ErrNoFarm
	}

	if s.store != nil {
		if err := s.store.InsertReading(ctx, r); err != nil {
			metrics.ReadingsFailed.Inc()
			return Result{}, err
		}
	}

	window, err := s.history.Append(ctx, r)
	if err != nil {
		metrics.ReadingsFailed.Inc()
		return Result{}, err
	}
	metrics.ReadingsIngested.Inc()

	res := s.pipeline.Process(ctx, Cycle{
		FarmID:        r.FarmID,
		Reading:       r,
		History:       window,
		AeratorActive: s.aerators.Active(r.FarmID),
	})
	s.aerators.Apply(r.FarmID, res.Aerator.Action)

	s.logger.Debug().
		Str("farm_id", r.FarmID).
		Int("alerts", len(res.Alerts)).
		Str("aerator", string(res.Aerator.Action)).
		Float64("feed_rate", res.Feeding.RecommendedRate).
		Msg("cycle complete")
	return res, nil
}

func farmFromTopic(topic string) string {
	parts := strings.Split(strings.Trim(topic, "/"), "/")
	if len(parts) < 3 {
		return ""
	}
	return parts[len(parts)-1]
}
