package aerator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ANIKETSHETTY47/smart-aquaculture-monitoring-system/internal/domain"
)

func reading(do, nh3, temp float64) domain.Reading {
	return domain.Reading{DissolvedOxygen: do, Ammonia: nh3, TemperatureC: temp, PH: 8}
}

func doHistory(values ...float64) []domain.Reading {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	out := make([]domain.Reading, len(values))
	for i, v := range values {
		out[i] = domain.Reading{Timestamp: start.Add(time.Duration(i) * time.Hour), DissolvedOxygen: v}
	}
	return out
}

func TestDOTrend(t *testing.T) {
	assert.Equal(t, 0.0, DOTrend(nil))
	assert.Equal(t, 0.0, DOTrend(doHistory(6)))
	assert.InDelta(t, -0.5, DOTrend(doHistory(6.5, 6.2, 6.0)), 1e-9)

	// only the last ten samples count
	values := []float64{1, 1, 1, 6, 6, 6, 6, 6, 6, 6, 6, 6, 7}
	assert.InDelta(t, 1.0, DOTrend(doHistory(values...)), 1e-9)
}

func TestDecide_Inactive(t *testing.T) {
	tests := []struct {
		name       string
		reading    domain.Reading
		trend      float64
		action     domain.AeratorAction
		urgency    domain.Urgency
		confidence float64
	}{
		{"critical oxygen", reading(5.0, 0.03, 27), 0, domain.AeratorTurnOn, domain.UrgencyHigh, 95},
		{"ammonia", reading(7.0, 0.12, 27), 0, domain.AeratorTurnOn, domain.UrgencyHigh, 92},
		{"declining oxygen", reading(6.0, 0.02, 27), -0.2, domain.AeratorTurnOn, domain.UrgencyMedium, 88},
		{"declining too slowly", reading(6.0, 0.02, 27), -0.1, domain.AeratorMaintain, domain.UrgencyLow, 75},
		{"sub-optimal", reading(6.3, 0.06, 27), 0, domain.AeratorTurnOn, domain.UrgencyMedium, 82},
		{"healthy", reading(7.0, 0.02, 27), 0, domain.AeratorMaintain, domain.UrgencyLow, 75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decide(tt.reading, tt.trend, tt.reading.DissolvedOxygen, false)
			assert.Equal(t, tt.action, got.Action)
			assert.Equal(t, tt.urgency, got.Urgency)
			assert.Equal(t, tt.confidence, got.Confidence)
			assert.NotEmpty(t, got.Reasoning)
		})
	}
}

func TestDecide_Active(t *testing.T) {
	tests := []struct {
		name       string
		reading    domain.Reading
		trend      float64
		action     domain.AeratorAction
		confidence float64
	}{
		{"stable and clean", reading(7.2, 0.02, 26), 0, domain.AeratorTurnOff, 88},
		{"warm but rich in oxygen", reading(7.2, 0.02, 30), 0, domain.AeratorTurnOff, 82},
		{"unstable but rich in oxygen", reading(7.5, 0.02, 26), 0.5, domain.AeratorTurnOff, 82},
		{"still needed", reading(6.2, 0.02, 26), 0, domain.AeratorMaintain, 75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decide(tt.reading, tt.trend, tt.reading.DissolvedOxygen, true)
			assert.Equal(t, tt.action, got.Action)
			assert.Equal(t, domain.UrgencyLow, got.Urgency)
			assert.Equal(t, tt.confidence, got.Confidence)
			assert.Empty(t, got.ExpectedImpact)
		})
	}
}

func TestDecide_Reasoning(t *testing.T) {
	got := Decide(reading(5.04, 0.03, 27), 0, 5.04, false)
	require.Len(t, got.Reasoning, 3)
	assert.Equal(t, "Critical DO level: 5.0 mg/L (below safe threshold of 5.5 mg/L)", got.Reasoning[0])
	assert.Equal(t, "DO will rise from 5.0 to ~6.5 mg/L", got.ExpectedImpact)

	got = Decide(reading(6.0, 0.02, 27), -0.25, 6.12, false)
	assert.Equal(t, "DO declining: 6.0 mg/L with downward trend of -0.25 mg/L", got.Reasoning[0])
	assert.Equal(t, "Average DO over last hour: 6.1 mg/L", got.Reasoning[2])

	got = Decide(reading(6.2, 0.08, 27), 0, 6.2, true)
	require.Len(t, got.Reasoning, 3)
	assert.Equal(t, "Ammonia at 0.080 mg/L - continued circulation beneficial", got.Reasoning[2])
}

func TestRecommend_UsesHistory(t *testing.T) {
	history := doHistory(6.4, 6.3, 6.2, 6.1, 6.0)
	current := reading(6.0, 0.02, 27)

	got := Recommend(current, history, false)
	assert.Equal(t, domain.AeratorTurnOn, got.Action)
	assert.Equal(t, 88.0, got.Confidence)
	assert.Equal(t, "Average DO over last hour: 6.2 mg/L", got.Reasoning[2])

	got = Recommend(current, nil, false)
	assert.Equal(t, domain.AeratorMaintain, got.Action)
}

func TestRecommend_ConfidenceInRange(t *testing.T) {
	for _, do := range []float64{3, 5.4, 6.1, 6.4, 7, 8, 10} {
		for _, nh3 := range []float64{0, 0.04, 0.07, 0.2} {
			for _, active := range []bool{true, false} {
				got := Recommend(reading(do, nh3, 28), doHistory(do+0.5, do), active)
				assert.GreaterOrEqual(t, got.Confidence, 0.0)
				assert.LessOrEqual(t, got.Confidence, 100.0)
			}
		}
	}
}
