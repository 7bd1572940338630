package domain

import "time"

// Parameter names as they appear in alerts, predictions and the threshold table.
const (
	ParamTemperature     = "temperature_c"
	ParamDissolvedOxygen = "dissolved_oxygen_mgl"
	ParamPH              = "ph"
	ParamAmmonia         = "ammonia_mgl"
	ParamTurbidity       = "turbidity_ntu"
	ParamFeedingRate     = "feeding_rate_gmin"
	ParamFishActivity    = "fish_activity_index"
	ParamCurrentSpeed    = "current_speed_ms"
)

type Farm struct {
	ID   string  `db:"id" json:"id"`
	Name string  `db:"name" json:"name"`
	Lat  float64 `db:"lat" json:"lat"`
	Lng  float64 `db:"lng" json:"lng"`
}

// Reading is one sampled instant of the pond sensors.
type Reading struct {
	FarmID          string    `db:"farm_id" json:"farm_id,omitempty"`
	Timestamp       time.Time `db:"timestamp" json:"timestamp"`
	TemperatureC    float64   `db:"temperature_c" json:"temperature_c"`
	DissolvedOxygen float64   `db:"dissolved_oxygen_mgl" json:"dissolved_oxygen_mgl"`
	PH              float64   `db:"ph" json:"ph"`
	Ammonia         float64   `db:"ammonia_mgl" json:"ammonia_mgl"`
	Turbidity       float64   `db:"turbidity_ntu" json:"turbidity_ntu"`
	FeedingRate     float64   `db:"feeding_rate_gmin" json:"feeding_rate_gmin"`
	FishActivity    float64   `db:"fish_activity_index" json:"fish_activity_index"`
	CurrentSpeed    float64   `db:"current_speed_ms" json:"current_speed_ms"`
}

// Value returns the reading's value for a parameter name. Unknown names yield 0, false.
func (r Reading) Value(parameter string) (float64, bool) {
	switch parameter {
	case ParamTemperature:
		return r.TemperatureC, true
	case ParamDissolvedOxygen:
		return r.DissolvedOxygen, true
	case ParamPH:
		return r.PH, true
	case ParamAmmonia:
		return r.Ammonia, true
	case ParamTurbidity:
		return r.Turbidity, true
	case ParamFeedingRate:
		return r.FeedingRate, true
	case ParamFishActivity:
		return r.FishActivity, true
	case ParamCurrentSpeed:
		return r.CurrentSpeed, true
	}
	return 0, false
}

// Series extracts one parameter from a slice of readings, oldest first.
func Series(readings []Reading, parameter string) []float64 {
	out := make([]float64, 0, len(readings))
	for _, r := range readings {
		v, _ := r.Value(parameter)
		out = append(out, v)
	}
	return out
}

type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

type Alert struct {
	ID             string    `db:"id" json:"id"`
	FarmID         string    `db:"farm_id" json:"farm_id,omitempty"`
	Timestamp      time.Time `db:"timestamp" json:"timestamp"`
	AlertType      string    `db:"alert_type" json:"alert_type"`
	Severity       Severity  `db:"severity" json:"severity"`
	Message        string    `db:"message" json:"message"`
	ParameterName  string    `db:"parameter_name" json:"parameter_name"`
	ParameterValue float64   `db:"parameter_value" json:"parameter_value"`
	Threshold      float64   `db:"threshold" json:"threshold"`
	Acknowledged   bool      `db:"acknowledged" json:"acknowledged"`
}

type FeedingRecommendation struct {
	ID                  string    `db:"id" json:"id"`
	FarmID              string    `db:"farm_id" json:"farm_id,omitempty"`
	Timestamp           time.Time `db:"timestamp" json:"timestamp"`
	RecommendedRate     float64   `db:"recommended_rate_gmin" json:"recommended_rate_gmin"`
	AdjustmentPercent   float64   `db:"adjustment_percentage" json:"adjustment_percentage"`
	Reason              string    `db:"reason" json:"reason"`
	EnvironmentScore    float64   `db:"environment_score" json:"environment_score"`
	FeedConversionRatio float64   `db:"feed_conversion_ratio" json:"feed_conversion_ratio"`
	FeedWasteRatio      float64   `db:"feed_waste_ratio" json:"feed_waste_ratio"`
	Applied             bool      `db:"applied" json:"applied"`
}

// FeedingMetrics are display figures derived from the feeding history.
type FeedingMetrics struct {
	AvgFCR          float64 `json:"avg_fcr"`
	AvgWasteRatio   float64 `json:"avg_waste_ratio"`
	EnergyCostPerKg float64 `json:"energy_cost_per_kg"`
	FeedEfficiency  float64 `json:"feed_efficiency"`
}

type AeratorAction string

const (
	AeratorTurnOn   AeratorAction = "turn_on"
	AeratorTurnOff  AeratorAction = "turn_off"
	AeratorMaintain AeratorAction = "maintain"
)

type Urgency string

const (
	UrgencyHigh   Urgency = "high"
	UrgencyMedium Urgency = "medium"
	UrgencyLow    Urgency = "low"
)

// AeratorRecommendation is recomputed every cycle and never stored as history.
type AeratorRecommendation struct {
	Action         AeratorAction `json:"action"`
	Confidence     float64       `json:"confidence"`
	Reasoning      []string      `json:"reasoning"`
	Urgency        Urgency       `json:"urgency"`
	ExpectedImpact string        `json:"expectedImpact,omitempty"`
}

type Prediction struct {
	ID              string    `db:"id" json:"id"`
	FarmID          string    `db:"farm_id" json:"farm_id,omitempty"`
	PredictionTime  time.Time `db:"prediction_time" json:"prediction_time"`
	TargetTime      time.Time `db:"target_time" json:"target_time"`
	ParameterName   string    `db:"parameter_name" json:"parameter_name"`
	PredictedValue  float64   `db:"predicted_value" json:"predicted_value"`
	ConfidenceScore float64   `db:"confidence_score" json:"confidence_score"`
	ModelType       string    `db:"model_type" json:"model_type"`
}
