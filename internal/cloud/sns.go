package cloud

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"

	"github.com/ANIKETSHETTY47/smart-aquaculture-monitoring-system/internal/domain"
)

type snsAPI interface {
	Publish(ctx context.Context, in *sns.PublishInput, opts ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SNSClient notifies farm operators of critical alerts. Warning and info
// alerts are left to the dashboard.
type SNSClient struct {
	svc      snsAPI
	topicArn string
}

func NewSNSClient(cfg aws.Config, topicArn string) *SNSClient {
	return &SNSClient{svc: sns.NewFromConfig(cfg), topicArn: topicArn}
}

func (c *SNSClient) Name() string { return "sns" }

// SendAlert publishes one message to the topic.
func (c *SNSClient) SendAlert(ctx context.Context, subject, message string) error {
	_, err := c.svc.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(c.topicArn),
		Subject:  aws.String(subject),
		Message:  aws.String(message),
	})
	if err != nil {
		return fmt.Errorf("failed to publish to SNS: %w", err)
	}
	return nil
}

// SaveAlerts aggregates the critical alerts of one cycle into a single notification.
func (c *SNSClient) SaveAlerts(ctx context.Context, alerts []domain.Alert) error {
	var critical []domain.Alert
	for _, a := range alerts {
		if a.Severity == domain.SeverityCritical {
			critical = append(critical, a)
		}
	}
	if len(critical) == 0 {
		return nil
	}

	farmID := critical[0].FarmID
	subject := fmt.Sprintf("Aquaculture Alert: %d critical condition(s) at %s", len(critical), farmID)

	var b strings.Builder
	b.WriteString("Critical water quality alerts:\n\n")
	for i, a := range critical {
		fmt.Fprintf(&b, "%d. %s (%s = %.3f, threshold %.3f)\n", i+1, a.Message, a.ParameterName, a.ParameterValue, a.Threshold)
	}
	fmt.Fprintf(&b, "\nTime: %s\n\nPlease check the pond immediately.", critical[0].Timestamp.Format(time.RFC3339))

	return c.SendAlert(ctx, subject, b.String())
}

func (c *SNSClient) SaveFeedingRecommendation(context.Context, domain.FeedingRecommendation) error {
	return nil
}

func (c *SNSClient) SavePredictions(context.Context, []domain.Prediction) error {
	return nil
}
