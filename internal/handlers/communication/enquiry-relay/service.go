// internal/handlers/communication/enquiry-relay/service.go
package enquiryrelay

import (
	"context"
	"fmt"

	commonaws "studio-growth/internal/common/aws"
	"studio-growth/internal/common/config"
	"studio-growth/internal/common/resend"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

// Define interfaces for mocking
type SESService interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type SNSService interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// Mailer delivers the enquiry email.
type Mailer interface {
	Provider() string
	Configured() bool
	// Send returns the provider's message ID.
	Send(ctx context.Context, msg *Message) (string, error)
}

// Notifier alerts the studio about a high-fit enquiry.
type Notifier interface {
	Notify(ctx context.Context, text string) error
}

// ==========================
// Resend
// ==========================

type ResendMailer struct {
	client *resend.Client
}

func NewResendMailer(client *resend.Client) *ResendMailer {
	return &ResendMailer{client: client}
}

func (m *ResendMailer) Provider() string { return config.ProviderResend }

func (m *ResendMailer) Configured() bool {
	return m.client != nil && m.client.Configured()
}

func (m *ResendMailer) Send(ctx context.Context, msg *Message) (string, error) {
	email := &resend.Email{
		From:    msg.From,
		To:      msg.To,
		ReplyTo: msg.ReplyTo,
		Subject: msg.Subject,
		Text:    msg.Text,
	}
	if msg.Reference != "" {
		email.Headers = map[string]string{referenceHeader: msg.Reference}
	}
	return m.client.SendEmail(ctx, email)
}

// ==========================
// SES
// ==========================

type SESMailer struct {
	client SESService
	source string
}

func NewSESMailer(client SESService, source string) *SESMailer {
	return &SESMailer{client: client, source: source}
}

func (m *SESMailer) Provider() string { return config.ProviderSES }

func (m *SESMailer) Configured() bool {
	return m.client != nil && m.source != ""
}

func (m *SESMailer) Send(ctx context.Context, msg *Message) (string, error) {
	input := &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: msg.To,
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(msg.Subject), Charset: aws.String("UTF-8")},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(msg.Text), Charset: aws.String("UTF-8")},
			},
		},
		Source: aws.String(m.source),
	}
	if msg.ReplyTo != "" {
		input.ReplyToAddresses = []string{msg.ReplyTo}
	}

	out, err := m.client.SendEmail(ctx, input)
	if err != nil {
		return "", fmt.Errorf("ses send email: %w", err)
	}
	return aws.ToString(out.MessageId), nil
}

// ==========================
// SNS
// ==========================

// SNSNotifier publishes to a topic, or directly to a phone number when no
// topic is set.
type SNSNotifier struct {
	client      SNSService
	topicARN    string
	phoneNumber string
}

func NewSNSNotifier(client SNSService, topicARN, phoneNumber string) *SNSNotifier {
	return &SNSNotifier{client: client, topicARN: topicARN, phoneNumber: phoneNumber}
}

func (n *SNSNotifier) Notify(ctx context.Context, text string) error {
	input := &sns.PublishInput{
		Message: aws.String(text),
	}
	if n.topicARN != "" {
		input.TopicArn = aws.String(n.topicARN)
		input.Subject = aws.String("New Ideal Fit enquiry")
	} else {
		input.PhoneNumber = aws.String(n.phoneNumber)
	}

	if _, err := n.client.Publish(ctx, input); err != nil {
		return fmt.Errorf("sns publish: %w", err)
	}
	return nil
}

// ==========================
// Construction from config
// ==========================

// NewMailer builds the mailer for enquiry.provider.
func NewMailer(ctx context.Context, cfg *config.Config) (Mailer, error) {
	switch cfg.Enquiry.Provider {
	case config.ProviderSES:
		client, err := commonaws.NewSESClient(ctx, cfg.Integrations.AWS.Region)
		if err != nil {
			return nil, err
		}
		source := cfg.Integrations.AWS.SES.FromEmail
		if source == "" {
			source = cfg.Enquiry.From
		}
		return NewSESMailer(client, source), nil
	default:
		res := cfg.Integrations.Resend
		return NewResendMailer(resend.NewClient(res.APIKey, res.BaseURL, config.GetDuration(cfg.Enquiry.Timeout))), nil
	}
}

// NewNotifier returns nil when SNS alerts are disabled.
func NewNotifier(ctx context.Context, cfg *config.Config) (Notifier, error) {
	snsCfg := cfg.Integrations.AWS.SNS
	if !snsCfg.Enabled {
		return nil, nil
	}
	client, err := commonaws.NewSNSClient(ctx, cfg.Integrations.AWS.Region)
	if err != nil {
		return nil, err
	}
	return NewSNSNotifier(client, snsCfg.TopicARN, snsCfg.PhoneNumber), nil
}
