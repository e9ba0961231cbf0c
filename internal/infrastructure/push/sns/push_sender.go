// Package sns fans notifications out to an SNS topic so mobile and email subscribers receive them.
package sns

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"peer-lending/internal/domain/notification"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
)

type Publisher interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

type pushMessage struct {
	NotificationID string `json:"notificationId"`
	RecipientID    string `json:"recipientId"`
	LoanID         string `json:"loanId,omitempty"`
	Type           string `json:"type"`
	Message        string `json:"message"`
}

type PushSender struct {
	client   Publisher
	topicARN string
	logger   *slog.Logger
}

var _ notification.PushSender = (*PushSender)(nil)

func NewPushSender(ctx context.Context, region, topicARN string, logger *slog.Logger) (*PushSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return NewPushSenderWithClient(sns.NewFromConfig(cfg), topicARN, logger), nil
}

func NewPushSenderWithClient(client Publisher, topicARN string, logger *slog.Logger) *PushSender {
	return &PushSender{
		client:   client,
		topicARN: topicARN,
		logger:   logger.With(slog.String("component", "snsPushSender")),
	}
}

// Push publishes n to the topic. Subscribers filter on the recipient_id and type attributes.
func (s *PushSender) Push(ctx context.Context, n *notification.Notification) error {
	body, err := json.Marshal(pushMessage{
		NotificationID: n.ID,
		RecipientID:    n.RecipientID,
		LoanID:         n.LoanID,
		Type:           string(n.Type),
		Message:        n.Message,
	})
	if err != nil {
		return fmt.Errorf("encode push message: %w", err)
	}

	out, err := s.client.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(s.topicARN),
		Message:  aws.String(string(body)),
		Subject:  aws.String("Loan update"),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"recipient_id": {DataType: aws.String("String"), StringValue: aws.String(n.RecipientID)},
			"type":         {DataType: aws.String("String"), StringValue: aws.String(string(n.Type))},
		},
	})
	if err != nil {
		return fmt.Errorf("sns publish: %w", err)
	}

	s.logger.DebugContext(ctx, "Push notification published",
		slog.String("notificationID", n.ID), slog.String("messageID", aws.ToString(out.MessageId)))
	return nil
}
