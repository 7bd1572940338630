// Package scoring maps a single reading onto a normalized water-quality score.
package scoring

import "github.com/ANIKETSHETTY47/smart-aquaculture-monitoring-system/internal/domain"

// Scorer rates a reading against the threshold table. Results are in [0,1].
type Scorer interface {
	EnvironmentScore(r domain.Reading, t domain.ThresholdTable) float64
}

// Portable is the pure Go scorer and the fallback for the native module.
type Portable struct{}

// EnvironmentScore starts at 1 and subtracts penalties per parameter.
//
// Dissolved oxygen uses exclusive tiers (only the deepest applies). pH, turbidity
// and ammonia stack their normal and critical penalties. Temperature and fish
// activity have a single tier.
func (Portable) EnvironmentScore(r domain.Reading, t domain.ThresholdTable) float64 {
	score := 1.0

	switch {
	case r.DissolvedOxygen < t.DissolvedOxygen.CriticalMin:
		score -= 0.40
	case r.DissolvedOxygen < t.DissolvedOxygen.Min:
		score -= 0.25
	}

	if r.PH < t.PH.Min || r.PH > t.PH.Max {
		score -= 0.15
	}
	if r.PH < t.PH.CriticalMin || r.PH > t.PH.CriticalMax {
		score -= 0.25
	}

	if r.Turbidity > t.Turbidity.Max {
		score -= 0.15
	}
	if r.Turbidity > t.Turbidity.CriticalMax {
		score -= 0.20
	}

	if r.Ammonia > t.Ammonia.Max {
		score -= 0.20
	}
	if r.Ammonia > t.Ammonia.CriticalMax {
		score -= 0.30
	}

	if r.TemperatureC < t.Temperature.Min || r.TemperatureC > t.Temperature.Max {
		score -= 0.10
	}

	if r.FishActivity < t.FishActivity.Min {
		score -= 0.15
	}

	return Clamp(score, 0, 1)
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ThresholdVectorLen is the number of bounds exchanged with the native scorer.
const ThresholdVectorLen = 13

// ThresholdVector flattens the bounds the scorer needs in the order the native
// module expects: do_min, do_crit_min, ph_min, ph_max, ph_crit_min, ph_crit_max,
// turb_max, turb_crit_max, ammo_max, ammo_crit_max, temp_min, temp_max, activity_min.
func ThresholdVector(t domain.ThresholdTable) [ThresholdVectorLen]float64 {
	return [ThresholdVectorLen]float64{
		t.DissolvedOxygen.Min,
		t.DissolvedOxygen.CriticalMin,
		t.PH.Min,
		t.PH.Max,
		t.PH.CriticalMin,
		t.PH.CriticalMax,
		t.Turbidity.Max,
		t.Turbidity.CriticalMax,
		t.Ammonia.Max,
		t.Ammonia.CriticalMax,
		t.Temperature.Min,
		t.Temperature.Max,
		t.FishActivity.Min,
	}
}

// ReadingVector is the reading layout passed to the native scorer.
func ReadingVector(r domain.Reading) [6]float64 {
	return [6]float64{r.DissolvedOxygen, r.PH, r.Turbidity, r.Ammonia, r.TemperatureC, r.FishActivity}
}
