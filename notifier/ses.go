package notifier

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/issue-tracker/config"
	"github.com/rs/zerolog/log"
)

// EmailSender is the part of the SES client used here
type EmailSender interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// SESNotifier emails confirmations through Amazon SES
type SESNotifier struct {
	client EmailSender
	sender string
}

// NewSESNotifier builds an SES client from cfg. Static credentials are used
// when given, the default AWS chain otherwise.
func NewSESNotifier(ctx context.Context, cfg config.Email) (*SESNotifier, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS SDK config: %w", err)
	}
	return NewSESNotifierWithClient(ses.NewFromConfig(awsCfg), cfg.Sender), nil
}

// NewSESNotifierWithClient wraps an existing client
func NewSESNotifierWithClient(client EmailSender, sender string) *SESNotifier {
	return &SESNotifier{client: client, sender: sender}
}

// OrderPlaced emails the confirmation. Anonymous orders have no recipient
// and are only logged.
func (n *SESNotifier) OrderPlaced(ctx context.Context, c Confirmation) error {
	if c.Recipient == "" {
		return LogNotifier{}.OrderPlaced(ctx, c)
	}

	input := &ses.SendEmailInput{
		Source: aws.String(n.sender),
		Destination: &types.Destination{
			ToAddresses: []string{c.Recipient},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Charset: aws.String("UTF-8"),
				Data:    aws.String(c.Subject()),
			},
			Body: &types.Body{
				Text: &types.Content{
					Charset: aws.String("UTF-8"),
					Data:    aws.String(c.Text()),
				},
			},
		},
	}

	if _, err := n.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("failed to send confirmation for order %d: %w", c.OrderID, err)
	}
	log.Info().Uint("order_id", c.OrderID).Str("recipient", c.Recipient).Msg("order confirmation sent")
	return nil
}
