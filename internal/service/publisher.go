package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/ANIKETSHETTY47/smart-aquaculture-monitoring-system/internal/domain"
	"github.com/ANIKETSHETTY47/smart-aquaculture-monitoring-system/internal/metrics"
)

// Sink receives the results of a decision cycle. Sinks only insert; a sink
// that has no use for a kind of result returns nil.
type Sink interface {
	Name() string
	SaveAlerts(ctx context.Context, alerts []domain.Alert) error
	SaveFeedingRecommendation(ctx context.Context, rec domain.FeedingRecommendation) error
	SavePredictions(ctx context.Context, preds []domain.Prediction) error
}

const (
	defaultQueueSize   = 256
	defaultSinkTimeout = 10 * time.Second
)

type delivery struct {
	farmID string
	result Result
}

// Publisher delivers results to every sink on a background goroutine. Failures
// are logged and counted, never returned to the decision cycle.
type Publisher struct {
	sinks   []Sink
	logger  zerolog.Logger
	timeout time.Duration

	queue     chan delivery
	wg        sync.WaitGroup
	closeOnce sync.Once
	mu        sync.RWMutex
	closed    bool
}

func NewPublisher(logger zerolog.Logger, queueSize int, sinks ...Sink) *Publisher {
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	p := &Publisher{
		sinks:   sinks,
		logger:  logger.With().Str("component", "publisher").Logger(),
		timeout: defaultSinkTimeout,
		queue:   make(chan delivery, queueSize),
	}
	p.wg.Add(1)
	go p.run()
	return p
}

// Publish queues a result. When the queue is full or the publisher is closed
// the result is dropped with a warning.
func (p *Publisher) Publish(_ context.Context, farmID string, res Result) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed || len(p.sinks) == 0 {
		return
	}

	select {
	case p.queue <- delivery{farmID: farmID, result: res}:
	default:
		metrics.SinkFailures.WithLabelValues("queue", "dropped").Inc()
		p.logger.Warn().Str("farm_id", farmID).Msg("publish queue full, dropping results")
	}
}

// Close stops accepting results and waits for queued ones to be delivered.
func (p *Publisher) Close() {
	p.closeOnce.Do(func() {
		p.mu.Lock()
		p.closed = true
		close(p.queue)
		p.mu.Unlock()
	})
	p.wg.Wait()
}

func (p *Publisher) run() {
	defer p.wg.Done()
	for d := range p.queue {
		for _, s := range p.sinks {
			p.deliver(s, d)
		}
	}
}

func (p *Publisher) deliver(s Sink, d delivery) {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	if len(d.result.Alerts) > 0 {
		p.report(s, d.farmID, "alerts", s.SaveAlerts(ctx, d.result.Alerts))
	}
	if d.result.Feeding.ID != "" {
		p.report(s, d.farmID, "feeding", s.SaveFeedingRecommendation(ctx, d.result.Feeding))
	}
	if len(d.result.Predictions) > 0 {
		p.report(s, d.farmID, "predictions", s.SavePredictions(ctx, d.result.Predictions))
	}
}

func (p *Publisher) report(s Sink, farmID, kind string, err error) {
	if err == nil {
		return
	}
	metrics.SinkFailures.WithLabelValues(s.Name(), kind).Inc()
	p.logger.Error().Err(err).Str("sink", s.Name()).Str("kind", kind).Str("farm_id", farmID).Msg("sink delivery failed")
}
