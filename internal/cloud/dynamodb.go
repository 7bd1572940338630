package cloud

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/ANIKETSHETTY47/smart-aquaculture-monitoring-system/internal/domain"
)

// DynamoDB batch write limit
const batchSize = 25

type dynamoAPI interface {
	BatchWriteItem(ctx context.Context, in *dynamodb.BatchWriteItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error)
}

// DynamoDBClient stores alerts in a DynamoDB table keyed by alertId.
type DynamoDBClient struct {
	svc   dynamoAPI
	table string
}

func NewDynamoDBClient(cfg aws.Config, table string) *DynamoDBClient {
	return &DynamoDBClient{svc: dynamodb.NewFromConfig(cfg), table: table}
}

// Alert represents an alert stored in DynamoDB
type Alert struct {
	AlertID      string  `dynamodbav:"alertId"`
	FarmID       string  `dynamodbav:"farmId"`
	Timestamp    int64   `dynamodbav:"timestamp"`
	Severity     string  `dynamodbav:"severity"`
	Type         string  `dynamodbav:"type"`
	Message      string  `dynamodbav:"message"`
	Parameter    string  `dynamodbav:"parameter"`
	Value        float64 `dynamodbav:"value"`
	Threshold    float64 `dynamodbav:"threshold"`
	Acknowledged bool    `dynamodbav:"acknowledged"`
}

func toItem(a domain.Alert) Alert {
	return Alert{
		AlertID:      a.ID,
		FarmID:       a.FarmID,
		Timestamp:    a.Timestamp.Unix(),
		Severity:     string(a.Severity),
		Type:         a.AlertType,
		Message:      a.Message,
		Parameter:    a.ParameterName,
		Value:        a.ParameterValue,
		Threshold:    a.Threshold,
		Acknowledged: a.Acknowledged,
	}
}

func (c *DynamoDBClient) Name() string { return "dynamodb" }

// SaveAlerts writes alerts in batches of 25.
func (c *DynamoDBClient) SaveAlerts(ctx context.Context, alerts []domain.Alert) error {
	for i := 0; i < len(alerts); i += batchSize {
		end := min(i+batchSize, len(alerts))

		batch := alerts[i:end]
		writeRequests := make([]types.WriteRequest, len(batch))
		for j, a := range batch {
			item, err := attributevalue.MarshalMap(toItem(a))
			if err != nil {
				return fmt.Errorf("failed to marshal alert %s: %w", a.ID, err)
			}
			writeRequests[j] = types.WriteRequest{PutRequest: &types.PutRequest{Item: item}}
		}

		_, err := c.svc.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
			RequestItems: map[string][]types.WriteRequest{c.table: writeRequests},
		})
		if err != nil {
			return fmt.Errorf("failed to batch write alerts: %w", err)
		}
	}
	return nil
}

func (c *DynamoDBClient) SaveFeedingRecommendation(context.Context, domain.FeedingRecommendation) error {
	return nil
}

func (c *DynamoDBClient) SavePredictions(context.Context, []domain.Prediction) error {
	return nil
}
