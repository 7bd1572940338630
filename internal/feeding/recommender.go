// Package feeding turns the environment score and recent history into a
// feed-rate adjustment and the feed efficiency figures shown next to it.
package feeding

import (
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/ANIKETSHETTY47/smart-aquaculture-monitoring-system/internal/domain"
	"github.com/ANIKETSHETTY47/smart-aquaculture-monitoring-system/internal/scoring"
	"github.com/ANIKETSHETTY47/smart-aquaculture-monitoring-system/internal/stats"
)

const (
	BaselineRate = 280.0

	MinRate       = 100.0
	MaxRate       = 400.0
	MinAdjustment = -40.0
	MaxAdjustment = 15.0

	DefaultFCR        = 1.5
	DefaultWasteRatio = 15.0

	fcrWindow   = 24
	wasteWindow = 12
)

type Recommender struct {
	thresholds domain.ThresholdTable
	scorer     scoring.Scorer
}

// NewRecommender uses scorer for the environment score; nil selects the portable scorer.
func NewRecommender(t domain.ThresholdTable, scorer scoring.Scorer) *Recommender {
	if scorer == nil {
		scorer = scoring.Portable{}
	}
	return &Recommender{thresholds: t, scorer: scorer}
}

// Recommend builds the feeding recommendation for the current reading. history is
// read only; FCR and waste ratio fall back to constants when it is too short.
func (f *Recommender) Recommend(current domain.Reading, history []domain.Reading) domain.FeedingRecommendation {
	envScore := f.scorer.EnvironmentScore(current, f.thresholds)
	adjustment := Adjustment(current, envScore)
	rate := scoring.Clamp(BaselineRate*(1+adjustment/100), MinRate, MaxRate)

	return domain.FeedingRecommendation{
		ID:                  uuid.NewString(),
		FarmID:              current.FarmID,
		Timestamp:           current.Timestamp,
		RecommendedRate:     round2(rate),
		AdjustmentPercent:   round2(adjustment),
		Reason:              Reason(current, adjustment, envScore),
		EnvironmentScore:    round2(envScore),
		FeedConversionRatio: FCR(history),
		FeedWasteRatio:      WasteRatio(history),
		Applied:             false,
	}
}

// Adjustment accumulates percentage changes per condition, clamped to [-40, 15].
func Adjustment(r domain.Reading, envScore float64) float64 {
	adj := 0.0

	switch {
	case envScore < 0.5:
		adj -= 30
	case envScore < 0.7:
		adj -= 15
	case envScore > 0.9:
		adj += 5
	}

	switch {
	case r.DissolvedOxygen < 5.5:
		adj -= 20
	case r.DissolvedOxygen < 6.0:
		adj -= 10
	}

	switch {
	case r.Turbidity > 30:
		adj -= 15
	case r.Turbidity > 25:
		adj -= 8
	}

	switch {
	case r.Ammonia > 0.4:
		adj -= 20
	case r.Ammonia > 0.25:
		adj -= 10
	}

	switch {
	case r.FishActivity < 0.6:
		adj -= 12
	case r.FishActivity > 0.85:
		adj += 5
	}

	if r.TemperatureC < 24 || r.TemperatureC > 31 {
		adj -= 10
	}

	return scoring.Clamp(adj, MinAdjustment, MaxAdjustment)
}

func Reason(r domain.Reading, adjustment, envScore float64) string {
	var reasons []string
	if envScore < 0.6 {
		reasons = append(reasons, "Poor water quality conditions")
	}
	if r.DissolvedOxygen < 6.0 {
		reasons = append(reasons, "Low dissolved oxygen levels")
	}
	if r.Turbidity > 28 {
		reasons = append(reasons, "High turbidity indicating feed waste")
	}
	if r.Ammonia > 0.3 {
		reasons = append(reasons, "Elevated ammonia levels")
	}
	if r.FishActivity < 0.65 {
		reasons = append(reasons, "Reduced fish activity")
	}
	if r.TemperatureC < 24 || r.TemperatureC > 31 {
		reasons = append(reasons, "Suboptimal temperature")
	}

	if len(reasons) == 0 {
		switch {
		case adjustment > 0:
			return "Optimal feeding conditions - slight increase recommended"
		case adjustment == 0:
			return "Environment stable - maintain current feeding rate"
		default:
			return "Preventive adjustment to maintain water quality"
		}
	}

	action := "Maintain feeding"
	switch {
	case adjustment < -15:
		action = "Reduce feeding"
	case adjustment < 0:
		action = "Slightly reduce feeding"
	}
	return action + " due to: " + strings.Join(reasons, ", ")
}

// FCR estimates the feed conversion ratio from activity and water quality over
// the whole history. Fewer than 24 samples yields DefaultFCR.
func FCR(history []domain.Reading) float64 {
	if len(history) < fcrWindow {
		return DefaultFCR
	}

	avgActivity := stats.Mean(domain.Series(history, domain.ParamFishActivity))

	quality := make([]float64, len(history))
	for i, r := range history {
		doScore, phScore := 0.7, 0.8
		if r.DissolvedOxygen >= 6 {
			doScore = 1
		}
		if r.PH >= 7.5 && r.PH <= 8.5 {
			phScore = 1
		}
		quality[i] = (doScore + phScore) / 2
	}
	avgQuality := stats.Mean(quality)

	fcr := DefaultFCR - (avgActivity-0.7)*0.5 - (avgQuality-0.8)*0.3
	return scoring.Clamp(fcr, 1.1, 2.2)
}

// WasteRatio estimates the share of uneaten feed (percent). Fewer than 12
// samples yields DefaultWasteRatio.
func WasteRatio(history []domain.Reading) float64 {
	if len(history) < wasteWindow {
		return DefaultWasteRatio
	}
	avgTurbidity := stats.Mean(domain.Series(history, domain.ParamTurbidity))
	avgAmmonia := stats.Mean(domain.Series(history, domain.ParamAmmonia))

	turbidityWaste := math.Max(0, (avgTurbidity-15)*0.8)
	ammoniaWaste := math.Max(0, (avgAmmonia-0.15)*20)
	return math.Min(35, turbidityWaste+ammoniaWaste+5)
}

// Metrics derives the dashboard feed figures from history.
func Metrics(history []domain.Reading) domain.FeedingMetrics {
	fcr := FCR(history)
	waste := WasteRatio(history)
	return domain.FeedingMetrics{
		AvgFCR:          round2(fcr),
		AvgWasteRatio:   round2(waste),
		EnergyCostPerKg: round2(fcr*0.45 + (waste/100)*0.20),
		FeedEfficiency:  round2(math.Max(0, 100-waste)),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
