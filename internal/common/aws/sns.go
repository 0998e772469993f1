// internal/common/aws/sns.go
package aws

import (
	"context"
	"fmt"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

type snsAPI interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// Texter publishes direct SMS messages through SNS.
type Texter struct {
	api snsAPI
}

func NewTexter(cfg awssdk.Config) *Texter {
	return &Texter{api: sns.NewFromConfig(cfg)}
}

func (t *Texter) SendSMS(ctx context.Context, phone, message string) (string, error) {
	out, err := t.api.Publish(ctx, &sns.PublishInput{
		PhoneNumber: awssdk.String(phone),
		Message:     awssdk.String(message),
	})
	if err != nil {
		return "", fmt.Errorf("sns publish: %w", err)
	}
	return awssdk.ToString(out.MessageId), nil
}
