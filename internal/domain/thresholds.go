package domain

import (
	"errors"
	"fmt"
	"sort"
)

// ErrMissingBound is returned when the threshold configuration lacks a required bound.
var ErrMissingBound = errors.New("missing threshold bound")

type RangeBounds struct {
	Min         float64 `json:"min" mapstructure:"min"`
	Max         float64 `json:"max" mapstructure:"max"`
	CriticalMin float64 `json:"critical_min" mapstructure:"critical_min"`
	CriticalMax float64 `json:"critical_max" mapstructure:"critical_max"`
}

type UpperBounds struct {
	Max         float64 `json:"max" mapstructure:"max"`
	CriticalMax float64 `json:"critical_max" mapstructure:"critical_max"`
}

type LowerBounds struct {
	Min         float64 `json:"min" mapstructure:"min"`
	CriticalMin float64 `json:"critical_min" mapstructure:"critical_min"`
}

type FeedRange struct {
	Min float64 `json:"min" mapstructure:"min"`
	Max float64 `json:"max" mapstructure:"max"`
}

// ThresholdTable is loaded once at startup and shared read-only afterwards.
type ThresholdTable struct {
	Temperature     RangeBounds `json:"temperature_c"`
	DissolvedOxygen RangeBounds `json:"dissolved_oxygen_mgl"`
	PH              RangeBounds `json:"ph"`
	Ammonia         UpperBounds `json:"ammonia_mgl"`
	Turbidity       UpperBounds `json:"turbidity_ntu"`
	FeedingRate     FeedRange   `json:"feeding_rate_gmin"`
	FishActivity    LowerBounds `json:"fish_activity_index"`
	CurrentSpeed    LowerBounds `json:"current_speed_ms"`
}

func DefaultThresholds() ThresholdTable {
	return ThresholdTable{
		Temperature:     RangeBounds{Min: 24, Max: 31, CriticalMin: 22, CriticalMax: 33},
		DissolvedOxygen: RangeBounds{Min: 6, Max: 8, CriticalMin: 5, CriticalMax: 9},
		PH:              RangeBounds{Min: 7.5, Max: 8.5, CriticalMin: 6.5, CriticalMax: 8.8},
		Ammonia:         UpperBounds{Max: 0.25, CriticalMax: 0.5},
		Turbidity:       UpperBounds{Max: 25, CriticalMax: 30},
		FeedingRate:     FeedRange{Min: 150, Max: 350},
		FishActivity:    LowerBounds{Min: 0.6, CriticalMin: 0.5},
		CurrentSpeed:    LowerBounds{Min: 0.3, CriticalMin: 0.2},
	}
}

// DefaultThresholdMap is DefaultThresholds in the raw shape accepted by ParseThresholds.
func DefaultThresholdMap() map[string]map[string]float64 {
	t := DefaultThresholds()
	rng := func(b RangeBounds) map[string]float64 {
		return map[string]float64{"min": b.Min, "max": b.Max, "critical_min": b.CriticalMin, "critical_max": b.CriticalMax}
	}
	return map[string]map[string]float64{
		ParamTemperature:     rng(t.Temperature),
		ParamDissolvedOxygen: rng(t.DissolvedOxygen),
		ParamPH:              rng(t.PH),
		ParamAmmonia:         {"max": t.Ammonia.Max, "critical_max": t.Ammonia.CriticalMax},
		ParamTurbidity:       {"max": t.Turbidity.Max, "critical_max": t.Turbidity.CriticalMax},
		ParamFeedingRate:     {"min": t.FeedingRate.Min, "max": t.FeedingRate.Max},
		ParamFishActivity:    {"min": t.FishActivity.Min, "critical_min": t.FishActivity.CriticalMin},
		ParamCurrentSpeed:    {"min": t.CurrentSpeed.Min, "critical_min": t.CurrentSpeed.CriticalMin},
	}
}

// ParseThresholds builds a table from per-parameter bound maps. Every parameter and every
// bound it requires must be present; all problems are reported together.
func ParseThresholds(raw map[string]map[string]float64) (ThresholdTable, error) {
	var t ThresholdTable
	var missing []string

	get := func(param, bound string) float64 {
		v, ok := raw[param][bound]
		if !ok {
			missing = append(missing, param+"."+bound)
		}
		return v
	}
	rng := func(param string) RangeBounds {
		return RangeBounds{
			Min:         get(param, "min"),
			Max:         get(param, "max"),
			CriticalMin: get(param, "critical_min"),
			CriticalMax: get(param, "critical_max"),
		}
	}

	t.Temperature = rng(ParamTemperature)
	t.DissolvedOxygen = rng(ParamDissolvedOxygen)
	t.PH = rng(ParamPH)
	t.Ammonia = UpperBounds{Max: get(ParamAmmonia, "max"), CriticalMax: get(ParamAmmonia, "critical_max")}
	t.Turbidity = UpperBounds{Max: get(ParamTurbidity, "max"), CriticalMax: get(ParamTurbidity, "critical_max")}
	t.FeedingRate = FeedRange{Min: get(ParamFeedingRate, "min"), Max: get(ParamFeedingRate, "max")}
	t.FishActivity = LowerBounds{Min: get(ParamFishActivity, "min"), CriticalMin: get(ParamFishActivity, "critical_min")}
	t.CurrentSpeed = LowerBounds{Min: get(ParamCurrentSpeed, "min"), CriticalMin: get(ParamCurrentSpeed, "critical_min")}

	if len(missing) > 0 {
		sort.Strings(missing)
		return ThresholdTable{}, fmt.Errorf("%w: %v", ErrMissingBound, missing)
	}
	return t, nil
}
