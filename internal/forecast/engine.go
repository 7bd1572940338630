// Package forecast projects dissolved oxygen, pH and turbidity a few hours
// ahead from the recent trend of each parameter.
package forecast

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/ANIKETSHETTY47/smart-aquaculture-monitoring-system/internal/domain"
	"github.com/ANIKETSHETTY47/smart-aquaculture-monitoring-system/internal/metrics"
	"github.com/ANIKETSHETTY47/smart-aquaculture-monitoring-system/internal/scoring"
	"github.com/ANIKETSHETTY47/smart-aquaculture-monitoring-system/internal/stats"
)

const (
	// MinHistory is the number of samples required before any forecast is made.
	MinHistory = 24
	// DefaultHorizon is the number of hours forecast when the caller does not say.
	DefaultHorizon = 6

	feedingWindow = 6

	ModelLSTM         = "LSTM"
	ModelRandomForest = "RandomForest"
)

type Engine struct {
	kernel stats.Kernel
}

// NewEngine computes trends and variances with kernel; nil selects the portable kernel.
func NewEngine(kernel stats.Kernel) *Engine {
	if kernel == nil {
		kernel = stats.Portable{}
	}
	return &Engine{kernel: kernel}
}

// window holds the per-call aggregates shared by every horizon hour.
type window struct {
	latest domain.Reading

	doTrend, phTrend, turbTrend float64
	doVar, phVar, turbVar       float64

	avgTemp, avgTurbidity, avgAmmonia float64
	avgFeeding                        float64
}

// Predict returns three predictions per hour for hours 1..horizon, ordered by
// hour and then DO, pH, turbidity. history must end with the current reading.
// Fewer than MinHistory samples yields no predictions.
func (e *Engine) Predict(history []domain.Reading, horizon int) []domain.Prediction {
	if len(history) < MinHistory || horizon <= 0 {
		return []domain.Prediction{}
	}

	w := e.summarize(stats.Last(history, MinHistory))
	predictionTime := w.latest.Timestamp
	out := make([]domain.Prediction, 0, horizon*3)

	for hour := 1; hour <= horizon; hour++ {
		target := predictionTime.Add(time.Duration(hour) * time.Hour)
		h := float64(hour)

		doValue, doConf := w.dissolvedOxygen(h)
		phValue, phConf := w.ph(h)
		turbValue, turbConf := w.turbidity(h)

		out = append(out,
			prediction(w.latest.FarmID, predictionTime, target, domain.ParamDissolvedOxygen, doValue, doConf, ModelLSTM),
			prediction(w.latest.FarmID, predictionTime, target, domain.ParamPH, phValue, phConf, ModelLSTM),
			prediction(w.latest.FarmID, predictionTime, target, domain.ParamTurbidity, turbValue, turbConf, ModelRandomForest),
		)
	}

	metrics.PredictionsGenerated.Add(float64(len(out)))
	return out
}

func (e *Engine) summarize(recent []domain.Reading) window {
	do := domain.Series(recent, domain.ParamDissolvedOxygen)
	ph := domain.Series(recent, domain.ParamPH)
	turb := domain.Series(recent, domain.ParamTurbidity)

	return window{
		latest:       recent[len(recent)-1],
		doTrend:      e.kernel.Trend(do),
		phTrend:      e.kernel.Trend(ph),
		turbTrend:    e.kernel.Trend(turb),
		doVar:        e.kernel.Variance(do),
		phVar:        e.kernel.Variance(ph),
		turbVar:      e.kernel.Variance(turb),
		avgTemp:      stats.Mean(domain.Series(recent, domain.ParamTemperature)),
		avgTurbidity: stats.Mean(turb),
		avgAmmonia:   stats.Mean(domain.Series(recent, domain.ParamAmmonia)),
		avgFeeding:   stats.Mean(domain.Series(stats.Last(recent, feedingWindow), domain.ParamFeedingRate)),
	}
}

func (w window) dissolvedOxygen(hour float64) (float64, float64) {
	tempEffect := (30 - w.avgTemp) * 0.1 * (hour / 6)
	turbidityEffect := (25 - w.avgTurbidity) * 0.03 * (hour / 6)
	value := w.latest.DissolvedOxygen + w.doTrend*hour + tempEffect + turbidityEffect

	confidence := scoring.Clamp(0.92-w.doVar*0.1-hour*0.02, 0.75, 0.95)
	return scoring.Clamp(value, 3, 10), round2(confidence)
}

func (w window) ph(hour float64) (float64, float64) {
	ammoniaEffect := 0.0
	if w.avgAmmonia > 0.3 {
		ammoniaEffect = -0.2 * (hour / 6)
	}
	value := w.latest.PH + w.phTrend*hour + ammoniaEffect

	confidence := scoring.Clamp(0.90-w.phVar*0.08-hour*0.015, 0.80, 0.95)
	return scoring.Clamp(value, 6.0, 9.5), round2(confidence)
}

func (w window) turbidity(hour float64) (float64, float64) {
	feedingEffect := (w.avgFeeding - 250) * 0.02 * (hour / 6)
	settling := -hour * 0.5
	value := w.latest.Turbidity + w.turbTrend*hour + feedingEffect + settling

	confidence := scoring.Clamp(0.88-w.turbVar*0.05-hour*0.018, 0.78, 0.92)
	return math.Max(0, value), round2(confidence)
}

func prediction(farmID string, at, target time.Time, parameter string, value, confidence float64, model string) domain.Prediction {
	return domain.Prediction{
		ID:              uuid.NewString(),
		FarmID:          farmID,
		PredictionTime:  at,
		TargetTime:      target,
		ParameterName:   parameter,
		PredictedValue:  value,
		ConfidenceScore: confidence,
		ModelType:       model,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
