package forecast

import "github.com/ANIKETSHETTY47/smart-aquaculture-monitoring-system/internal/domain"

type FeatureImportance struct {
	Feature    string  `json:"feature"`
	Importance float64 `json:"importance"`
}

// FeatureImportances lists the input weights of the forecast models, highest first.
func FeatureImportances() []FeatureImportance {
	return []FeatureImportance{
		{Feature: domain.ParamTemperature, Importance: 0.28},
		{Feature: domain.ParamCurrentSpeed, Importance: 0.22},
		{Feature: domain.ParamTurbidity, Importance: 0.18},
		{Feature: domain.ParamFeedingRate, Importance: 0.15},
		{Feature: domain.ParamAmmonia, Importance: 0.10},
		{Feature: domain.ParamFishActivity, Importance: 0.07},
	}
}
