package service

import (
	"context"
	"slices"
	"time"

	"github.com/ANIKETSHETTY47/smart-aquaculture-monitoring-system/internal/aerator"
	"github.com/ANIKETSHETTY47/smart-aquaculture-monitoring-system/internal/alerting"
	"github.com/ANIKETSHETTY47/smart-aquaculture-monitoring-system/internal/domain"
	"github.com/ANIKETSHETTY47/smart-aquaculture-monitoring-system/internal/feeding"
	"github.com/ANIKETSHETTY47/smart-aquaculture-monitoring-system/internal/forecast"
	"github.com/ANIKETSHETTY47/smart-aquaculture-monitoring-system/internal/metrics"
	"github.com/ANIKETSHETTY47/smart-aquaculture-monitoring-system/internal/scoring"
	"github.com/ANIKETSHETTY47/smart-aquaculture-monitoring-system/internal/stats"
)

// Cycle is the input of one decision cycle. History is read only and is
// expected to end with Reading; if it does not, Reading is appended to a copy.
type Cycle struct {
	FarmID        string           `json:"farm_id"`
	Reading       domain.Reading   `json:"reading"`
	History       []domain.Reading `json:"history"`
	AeratorActive bool             `json:"aerator_active"`
}

type Result struct {
	Alerts      []domain.Alert               `json:"alerts"`
	Feeding     domain.FeedingRecommendation `json:"feeding"`
	Aerator     domain.AeratorRecommendation `json:"aerator"`
	Predictions []domain.Prediction          `json:"predictions"`
}

// Pipeline runs alerting, scoring, both recommenders and the forecaster over a
// reading. It keeps no state between cycles.
type Pipeline struct {
	alerts    *alerting.Engine
	feeding   *feeding.Recommender
	forecast  *forecast.Engine
	horizon   int
	publisher *Publisher
}

// NewPipeline wires the components. kernel and scorer are normally the
// acceleration dispatcher; publisher may be nil.
func NewPipeline(t domain.ThresholdTable, kernel stats.Kernel, scorer scoring.Scorer, horizon int, publisher *Publisher) *Pipeline {
	if horizon <= 0 {
		horizon = forecast.DefaultHorizon
	}
	return &Pipeline{
		alerts:    alerting.NewEngine(t),
		feeding:   feeding.NewRecommender(t, scorer),
		forecast:  forecast.NewEngine(kernel),
		horizon:   horizon,
		publisher: publisher,
	}
}

// Process computes every output for the cycle and hands it to the publisher
// without waiting for delivery.
func (p *Pipeline) Process(ctx context.Context, c Cycle) Result {
	start := time.Now()
	defer func() { metrics.CycleDuration.Observe(time.Since(start).Seconds()) }()

	r := c.Reading
	if r.FarmID == "" {
		r.FarmID = c.FarmID
	}
	history := withCurrent(c.History, r)

	res := Result{
		Alerts:      p.alerts.Evaluate(r),
		Feeding:     p.feeding.Recommend(r, history),
		Aerator:     aerator.Recommend(r, history, c.AeratorActive),
		Predictions: p.forecast.Predict(history, p.horizon),
	}

	if p.publisher != nil {
		p.publisher.Publish(ctx, r.FarmID, res)
	}
	return res
}

// Forecast runs only the forecaster over history.
func (p *Pipeline) Forecast(history []domain.Reading, hours int) []domain.Prediction {
	if hours <= 0 {
		hours = p.horizon
	}
	return p.forecast.Predict(history, hours)
}

func (p *Pipeline) Alerts() *alerting.Engine { return p.alerts }

func withCurrent(history []domain.Reading, r domain.Reading) []domain.Reading {
	if n := len(history); n > 0 && history[n-1].Timestamp.Equal(r.Timestamp) {
		return history
	}
	return append(slices.Clip(history), r)
}
