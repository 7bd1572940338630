// Package repository is the Postgres side of the system: raw readings in,
// alerts, feeding recommendations and predictions out.
package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ANIKETSHETTY47/smart-aquaculture-monitoring-system/internal/domain"
)

type Repos struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Repos { return &Repos{db: db} }

func (r *Repos) Name() string { return "postgres" }

func (r *Repos) ListFarms(ctx context.Context) ([]domain.Farm, error) {
	var out []domain.Farm
	err := r.db.SelectContext(ctx, &out, `SELECT id, name, lat, lng FROM farms ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list farms: %w", err)
	}
	return out, nil
}

func (r *Repos) InsertReading(ctx context.Context, rd domain.Reading) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO sensor_readings(farm_id, timestamp, temperature_c, dissolved_oxygen_mgl, ph,
		ammonia_mgl, turbidity_ntu, feeding_rate_gmin, fish_activity_index, current_speed_ms)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		rd.FarmID, rd.Timestamp, rd.TemperatureC, rd.DissolvedOxygen, rd.PH,
		rd.Ammonia, rd.Turbidity, rd.FeedingRate, rd.FishActivity, rd.CurrentSpeed)
	if err != nil {
		return fmt.Errorf("insert reading: %w", err)
	}
	return nil
}

// RecentReadings returns up to limit readings for a farm, oldest first.
func (r *Repos) RecentReadings(ctx context.Context, farmID string, limit int) ([]domain.Reading, error) {
	var out []domain.Reading
	err := r.db.SelectContext(ctx, &out, `SELECT * FROM (
		SELECT farm_id, timestamp, temperature_c, dissolved_oxygen_mgl, ph, ammonia_mgl, turbidity_ntu,
			feeding_rate_gmin, fish_activity_index, current_speed_ms
		FROM sensor_readings WHERE farm_id = $1 ORDER BY timestamp DESC LIMIT $2
	) recent ORDER BY timestamp ASC`, farmID, limit)
	if err != nil {
		return nil, fmt.Errorf("recent readings for %s: %w", farmID, err)
	}
	return out, nil
}

// RecentAlerts returns up to limit alerts for a farm, newest first.
func (r *Repos) RecentAlerts(ctx context.Context, farmID string, limit int) ([]domain.Alert, error) {
	var out []domain.Alert
	err := r.db.SelectContext(ctx, &out, `SELECT id, farm_id, timestamp, alert_type, severity, message,
		parameter_name, parameter_value, threshold, acknowledged
		FROM alerts WHERE farm_id = $1 ORDER BY timestamp DESC LIMIT $2`, farmID, limit)
	if err != nil {
		return nil, fmt.Errorf("recent alerts for %s: %w", farmID, err)
	}
	return out, nil
}

func (r *Repos) SaveAlerts(ctx context.Context, alerts []domain.Alert) error {
	if len(alerts) == 0 {
		return nil
	}
	return r.inTx(ctx, func(tx *sqlx.Tx) error {
		for _, a := range alerts {
			_, err := tx.ExecContext(ctx, `INSERT INTO alerts(id, farm_id, timestamp, alert_type, severity, message,
				parameter_name, parameter_value, threshold, acknowledged)
				VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
				a.ID, a.FarmID, a.Timestamp, a.AlertType, string(a.Severity), a.Message,
				a.ParameterName, a.ParameterValue, a.Threshold, a.Acknowledged)
			if err != nil {
				return fmt.Errorf("insert alert %s: %w", a.ID, err)
			}
		}
		return nil
	})
}

func (r *Repos) SaveFeedingRecommendation(ctx context.Context, rec domain.FeedingRecommendation) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO feeding_recommendations(id, farm_id, timestamp, recommended_rate_gmin,
		adjustment_percentage, reason, environment_score, feed_conversion_ratio, feed_waste_ratio, applied)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		rec.ID, rec.FarmID, rec.Timestamp, rec.RecommendedRate, rec.AdjustmentPercent, rec.Reason,
		rec.EnvironmentScore, rec.FeedConversionRatio, rec.FeedWasteRatio, rec.Applied)
	if err != nil {
		return fmt.Errorf("insert feeding recommendation: %w", err)
	}
	return nil
}

func (r *Repos) SavePredictions(ctx context.Context, preds []domain.Prediction) error {
	if len(preds) == 0 {
		return nil
	}
	return r.inTx(ctx, func(tx *sqlx.Tx) error {
		for _, p := range preds {
			_, err := tx.ExecContext(ctx, `INSERT INTO predictions(id, farm_id, prediction_time, target_time,
				parameter_name, predicted_value, confidence_score, model_type)
				VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
				p.ID, p.FarmID, p.PredictionTime, p.TargetTime, p.ParameterName,
				p.PredictedValue, p.ConfidenceScore, p.ModelType)
			if err != nil {
				return fmt.Errorf("insert prediction %s: %w", p.ID, err)
			}
		}
		return nil
	})
}

func (r *Repos) inTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
