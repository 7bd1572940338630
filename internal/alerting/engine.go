package alerting

import (
	"github.com/google/uuid"

	"github.com/ANIKETSHETTY47/smart-aquaculture-monitoring-system/internal/domain"
	"github.com/ANIKETSHETTY47/smart-aquaculture-monitoring-system/internal/metrics"
)

type check struct {
	below     bool
	bound     func(t domain.ThresholdTable) float64
	severity  domain.Severity
	alertType string
	message   string
}

// rule is an ordered list of checks on one parameter; the first match wins.
type rule struct {
	parameter string
	checks    []check
}

var rules = []rule{
	{domain.ParamDissolvedOxygen, []check{
		{true, func(t domain.ThresholdTable) float64 { return t.DissolvedOxygen.CriticalMin }, domain.SeverityCritical, "low_oxygen", "Critical low oxygen alert! Immediate action required."},
		{true, func(t domain.ThresholdTable) float64 { return t.DissolvedOxygen.Min }, domain.SeverityWarning, "low_oxygen", "Low oxygen levels detected. Monitor closely."},
	}},
	{domain.ParamDissolvedOxygen, []check{
		{false, func(t domain.ThresholdTable) float64 { return t.DissolvedOxygen.CriticalMax }, domain.SeverityWarning, "high_oxygen", "Oxygen oversaturation detected."},
	}},
	{domain.ParamPH, []check{
		{true, func(t domain.ThresholdTable) float64 { return t.PH.CriticalMin }, domain.SeverityCritical, "acidic_water", "Acidic water detected! pH critically low."},
		{false, func(t domain.ThresholdTable) float64 { return t.PH.CriticalMax }, domain.SeverityWarning, "alkaline_water", "Water pH too alkaline."},
	}},
	{domain.ParamTurbidity, []check{
		{false, func(t domain.ThresholdTable) float64 { return t.Turbidity.CriticalMax }, domain.SeverityWarning, "high_waste", "High waste detected! Elevated turbidity levels."},
	}},
	{domain.ParamAmmonia, []check{
		{false, func(t domain.ThresholdTable) float64 { return t.Ammonia.CriticalMax }, domain.SeverityCritical, "high_ammonia", "Toxic ammonia levels detected!"},
	}},
	{domain.ParamTemperature, []check{
		{true, func(t domain.ThresholdTable) float64 { return t.Temperature.CriticalMin }, domain.SeverityWarning, "low_temperature", "Water temperature critically low. Fish growth may slow."},
		{false, func(t domain.ThresholdTable) float64 { return t.Temperature.CriticalMax }, domain.SeverityCritical, "high_temperature", "Critical high temperature! Oxygen depletion risk."},
	}},
	{domain.ParamFishActivity, []check{
		{true, func(t domain.ThresholdTable) float64 { return t.FishActivity.CriticalMin }, domain.SeverityWarning, "low_activity", "Low fish activity detected. Check for stress or disease."},
	}},
	{domain.ParamCurrentSpeed, []check{
		{true, func(t domain.ThresholdTable) float64 { return t.CurrentSpeed.CriticalMin }, domain.SeverityInfo, "low_flow", "Low water flow. May affect oxygen mixing."},
	}},
}

// Engine classifies readings against a fixed threshold table. It keeps no state
// between readings: no de-duplication and no suppression window.
type Engine struct {
	thresholds domain.ThresholdTable
}

func NewEngine(t domain.ThresholdTable) *Engine {
	return &Engine{thresholds: t}
}

// Evaluate returns one alert per triggered condition, in rule order.
func (e *Engine) Evaluate(r domain.Reading) []domain.Alert {
	var alerts []domain.Alert
	for _, rl := range rules {
		value, _ := r.Value(rl.parameter)
		c, bound, ok := e.match(rl, value)
		if !ok {
			continue
		}
		alerts = append(alerts, domain.Alert{
			ID:             uuid.NewString(),
			FarmID:         r.FarmID,
			Timestamp:      r.Timestamp,
			AlertType:      c.alertType,
			Severity:       c.severity,
			Message:        c.message,
			ParameterName:  rl.parameter,
			ParameterValue: value,
			Threshold:      bound,
			Acknowledged:   false,
		})
		metrics.AlertsRaised.WithLabelValues(rl.parameter, string(c.severity)).Inc()
	}
	return alerts
}

// match returns the first check of rl that value triggers.
func (e *Engine) match(rl rule, value float64) (check, float64, bool) {
	for _, c := range rl.checks {
		bound := c.bound(e.thresholds)
		if (c.below && value < bound) || (!c.below && value > bound) {
			return c, bound, true
		}
	}
	return check{}, 0, false
}

// severity is the most severe alert value would raise for parameter.
func (e *Engine) severity(parameter string, value float64) (domain.Severity, bool) {
	var worst domain.Severity
	found := false
	for _, rl := range rules {
		if rl.parameter != parameter {
			continue
		}
		if c, _, ok := e.match(rl, value); ok {
			if !found || c.severity == domain.SeverityCritical {
				worst = c.severity
			}
			found = true
		}
	}
	return worst, found
}
