package ses

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"versepin/internal/port"
)

type sesSender struct {
	client          *sesv2.Client
	fromAddress     string
	fromName        string
	operatorAddress string
}

// NewSESSender creates a new SES-backed EmailSender for operator
// notifications.
func NewSESSender(region, fromAddress, fromName, operatorAddress string) (port.EmailSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	client := sesv2.NewFromConfig(cfg)
	return &sesSender{
		client:          client,
		fromAddress:     fromAddress,
		fromName:        fromName,
		operatorAddress: operatorAddress,
	}, nil
}

func (s *sesSender) SendParseFailureNotice(ctx context.Context, postID, fileName, reason string) error {
	subject := fmt.Sprintf("VersePin: could not read verse from %s", fileName)
	body := fmt.Sprintf(
		"The vision model's answer for post %s (%s) could not be normalized.\n\nReason: %s\n\nUpload a clearer photo or retry with a fresh extraction.",
		postID, fileName, reason,
	)
	return s.send(ctx, subject, body)
}

func (s *sesSender) SendPublishFailureNotice(ctx context.Context, postID, fileName, reason string) error {
	subject := fmt.Sprintf("VersePin: pin upload failed for %s", fileName)
	body := fmt.Sprintf(
		"Publishing post %s (%s) to Pinterest failed.\n\nReason: %s\n\nThe post is marked publish_failed; publish again once the cause is fixed.",
		postID, fileName, reason,
	)
	return s.send(ctx, subject, body)
}

func (s *sesSender) send(ctx context.Context, subject, textBody string) error {
	if s.operatorAddress == "" {
		return nil
	}
	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: []string{s.operatorAddress},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Text: &types.Content{Data: &textBody},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}
