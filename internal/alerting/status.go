package alerting

import "github.com/ANIKETSHETTY47/smart-aquaculture-monitoring-system/internal/domain"

type Status string

const (
	StatusGood     Status = "good"
	StatusWarning  Status = "warning"
	StatusCritical Status = "critical"
)

// ParameterStatus colours a value for display. When the value raises an alert
// the colour is the alert's severity (info shows as warning). Otherwise the
// normal bounds decide between good and warning; only alerts are critical.
func (e *Engine) ParameterStatus(value float64, parameter string) Status {
	if sev, ok := e.severity(parameter, value); ok {
		if sev == domain.SeverityCritical {
			return StatusCritical
		}
		return StatusWarning
	}

	t := e.thresholds
	var outside bool
	switch parameter {
	case domain.ParamTemperature:
		outside = value < t.Temperature.Min || value > t.Temperature.Max
	case domain.ParamDissolvedOxygen:
		outside = value < t.DissolvedOxygen.Min || value > t.DissolvedOxygen.Max
	case domain.ParamPH:
		outside = value < t.PH.Min || value > t.PH.Max
	case domain.ParamAmmonia:
		outside = value > t.Ammonia.Max
	case domain.ParamTurbidity:
		outside = value > t.Turbidity.Max
	case domain.ParamFishActivity:
		outside = value < t.FishActivity.Min
	case domain.ParamCurrentSpeed:
		outside = value < t.CurrentSpeed.Min
	case domain.ParamFeedingRate:
		outside = value < t.FeedingRate.Min || value > t.FeedingRate.Max
	}
	if outside {
		return StatusWarning
	}
	return StatusGood
}
