package cloud

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ANIKETSHETTY47/smart-aquaculture-monitoring-system/internal/domain"
	"github.com/ANIKETSHETTY47/smart-aquaculture-monitoring-system/internal/service"
)

var (
	_ service.Sink = (*DynamoDBClient)(nil)
	_ service.Sink = (*SNSClient)(nil)
	_ service.Sink = (*S3Client)(nil)
)

var at = time.Date(2025, 3, 1, 6, 30, 0, 0, time.UTC)

type fakeDynamo struct {
	calls []*dynamodb.BatchWriteItemInput
	err   error
}

func (f *fakeDynamo) BatchWriteItem(_ context.Context, in *dynamodb.BatchWriteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error) {
	f.calls = append(f.calls, in)
	return &dynamodb.BatchWriteItemOutput{}, f.err
}

type fakeSNS struct {
	inputs []*sns.PublishInput
}

func (f *fakeSNS) Publish(_ context.Context, in *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	f.inputs = append(f.inputs, in)
	return &sns.PublishOutput{MessageId: aws.String("msg-1")}, nil
}

type fakeS3 struct {
	keys   []string
	bodies [][]byte
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.keys = append(f.keys, aws.ToString(in.Key))
	f.bodies = append(f.bodies, body)
	return &s3.PutObjectOutput{}, nil
}

func alerts(n int, severity domain.Severity) []domain.Alert {
	out := make([]domain.Alert, n)
	for i := range out {
		out[i] = domain.Alert{
			ID:             fmt.Sprintf("a-%d", i),
			FarmID:         "farm-1",
			Timestamp:      at,
			AlertType:      "low_oxygen",
			Severity:       severity,
			Message:        "Critical low oxygen alert! Immediate action required.",
			ParameterName:  domain.ParamDissolvedOxygen,
			ParameterValue: 4.8,
			Threshold:      5,
		}
	}
	return out
}

func TestDynamoDB_SaveAlertsBatches(t *testing.T) {
	fake := &fakeDynamo{}
	c := &DynamoDBClient{svc: fake, table: "AquacultureAlerts"}

	require.NoError(t, c.SaveAlerts(context.Background(), alerts(30, domain.SeverityCritical)))
	require.Len(t, fake.calls, 2)
	assert.Len(t, fake.calls[0].RequestItems["AquacultureAlerts"], 25)
	assert.Len(t, fake.calls[1].RequestItems["AquacultureAlerts"], 5)

	var stored Alert
	item := fake.calls[0].RequestItems["AquacultureAlerts"][0].PutRequest.Item
	require.NoError(t, attributevalue.UnmarshalMap(item, &stored))
	assert.Equal(t, "a-0", stored.AlertID)
	assert.Equal(t, "farm-1", stored.FarmID)
	assert.Equal(t, at.Unix(), stored.Timestamp)
	assert.Equal(t, "critical", stored.Severity)
	assert.Equal(t, 5.0, stored.Threshold)
}

func TestDynamoDB_SaveAlertsError(t *testing.T) {
	c := &DynamoDBClient{svc: &fakeDynamo{err: errors.New("throttled")}, table: "t"}
	err := c.SaveAlerts(context.Background(), alerts(1, domain.SeverityWarning))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "throttled")

	assert.NoError(t, c.SaveAlerts(context.Background(), nil))
}

func TestSNS_OnlyCriticalAlerts(t *testing.T) {
	fake := &fakeSNS{}
	c := &SNSClient{svc: fake, topicArn: "arn:aws:sns:us-east-1:000000000000:aquaculture-alerts"}

	require.NoError(t, c.SaveAlerts(context.Background(), alerts(2, domain.SeverityWarning)))
	assert.Empty(t, fake.inputs)

	batch := append(alerts(1, domain.SeverityWarning), alerts(2, domain.SeverityCritical)...)
	require.NoError(t, c.SaveAlerts(context.Background(), batch))
	require.Len(t, fake.inputs, 1)

	in := fake.inputs[0]
	assert.Equal(t, "Aquaculture Alert: 2 critical condition(s) at farm-1", aws.ToString(in.Subject))
	assert.Contains(t, aws.ToString(in.Message), "dissolved_oxygen_mgl = 4.800, threshold 5.000")
	assert.Contains(t, aws.ToString(in.Message), "2025-03-01T06:30:00Z")
	assert.Equal(t, c.topicArn, aws.ToString(in.TopicArn))
}

func TestS3_Snapshots(t *testing.T) {
	fake := &fakeS3{}
	c := &S3Client{svc: fake, bucket: "aquaculture-data-lake"}

	preds := []domain.Prediction{
		{ID: "p-1", FarmID: "farm-1", PredictionTime: at, TargetTime: at.Add(time.Hour), ParameterName: domain.ParamPH, PredictedValue: 8, ConfidenceScore: 0.88, ModelType: "LSTM"},
	}
	require.NoError(t, c.SavePredictions(context.Background(), preds))
	require.NoError(t, c.SavePredictions(context.Background(), nil))
	require.NoError(t, c.SaveFeedingRecommendation(context.Background(), domain.FeedingRecommendation{ID: "f-1", FarmID: "farm-1", Timestamp: at}))

	require.Len(t, fake.keys, 2)
	assert.Equal(t, fmt.Sprintf("forecasts/farm-1/2025/03/01/%d.json", at.Unix()), fake.keys[0])
	assert.Equal(t, fmt.Sprintf("feeding/farm-1/2025/03/01/%d.json", at.Unix()), fake.keys[1])

	var decoded []domain.Prediction
	require.NoError(t, json.Unmarshal(fake.bodies[0], &decoded))
	assert.Equal(t, preds, decoded)
}
