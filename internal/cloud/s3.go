package cloud

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/ANIKETSHETTY47/smart-aquaculture-monitoring-system/internal/domain"
)

type s3API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Client writes forecast and feeding snapshots to the data lake bucket for
// historical analysis.
type S3Client struct {
	svc    s3API
	bucket string
}

func NewS3Client(cfg aws.Config, bucket string) *S3Client {
	return &S3Client{svc: s3.NewFromConfig(cfg), bucket: bucket}
}

func (c *S3Client) Name() string { return "s3" }

// SnapshotKey lays objects out as <kind>/<farm>/<yyyy>/<mm>/<dd>/<unix>.json.
func SnapshotKey(kind, farmID string, at time.Time) string {
	at = at.UTC()
	return fmt.Sprintf("%s/%s/%s/%d.json", kind, farmID, at.Format("2006/01/02"), at.Unix())
}

// UploadDataFile stores a JSON document under key.
func (c *S3Client) UploadDataFile(ctx context.Context, key string, data []byte) error {
	_, err := c.svc.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("failed to upload data file: %w", err)
	}
	return nil
}

func (c *S3Client) SaveAlerts(context.Context, []domain.Alert) error {
	return nil
}

func (c *S3Client) SaveFeedingRecommendation(ctx context.Context, rec domain.FeedingRecommendation) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal feeding recommendation: %w", err)
	}
	return c.UploadDataFile(ctx, SnapshotKey("feeding", rec.FarmID, rec.Timestamp), data)
}

// SavePredictions uploads the whole forecast of one cycle as a single object.
func (c *S3Client) SavePredictions(ctx context.Context, preds []domain.Prediction) error {
	if len(preds) == 0 {
		return nil
	}
	data, err := json.Marshal(preds)
	if err != nil {
		return fmt.Errorf("failed to marshal predictions: %w", err)
	}
	return c.UploadDataFile(ctx, SnapshotKey("forecasts", preds[0].FarmID, preds[0].PredictionTime), data)
}
