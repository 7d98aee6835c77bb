// internal/handlers/communication/enquiry-relay/service_test.go
package enquiryrelay

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"studio-growth/internal/common/config"
	"studio-growth/internal/common/resend"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Mock Implementations
// ==========================

type MockSESService struct {
	SendEmailFunc func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

func (m *MockSESService) SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	return m.SendEmailFunc(ctx, params, optFns...)
}

type MockSNSService struct {
	PublishFunc func(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

func (m *MockSNSService) Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
	return m.PublishFunc(ctx, params, optFns...)
}

func createTestMessage() *Message {
	return &Message{
		From:      "Sleek Studio London <onboarding@resend.dev>",
		To:        []string{"sleek.studiolondon@gmail.com"},
		ReplyTo:   "ada@example.com",
		Subject:   "New Enquiry — Sleek Studio London",
		Text:      "New enquiry received",
		Reference: "ref-0001",
	}
}

// ==========================
// Resend
// ==========================

func TestResendMailer_Send(t *testing.T) {
	var got map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/emails", r.URL.Path)
		assert.Equal(t, "Bearer re_test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"id":"4ef9a417"}`))
	}))
	defer server.Close()

	mailer := NewResendMailer(resend.NewClient("re_test", server.URL, 5*time.Second))
	require.True(t, mailer.Configured())
	assert.Equal(t, config.ProviderResend, mailer.Provider())

	id, err := mailer.Send(context.Background(), createTestMessage())
	require.NoError(t, err)
	assert.Equal(t, "4ef9a417", id)

	assert.Equal(t, "Sleek Studio London <onboarding@resend.dev>", got["from"])
	assert.Equal(t, []interface{}{"sleek.studiolondon@gmail.com"}, got["to"])
	assert.Equal(t, "ada@example.com", got["reply_to"])
	assert.Equal(t, "New Enquiry — Sleek Studio London", got["subject"])
	assert.Equal(t, map[string]interface{}{"X-Entity-Ref-ID": "ref-0001"}, got["headers"])
}

func TestResendMailer_ProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"message":"domain not verified"}`))
	}))
	defer server.Close()

	mailer := NewResendMailer(resend.NewClient("re_test", server.URL, 5*time.Second))
	_, err := mailer.Send(context.Background(), createTestMessage())
	assert.ErrorContains(t, err, "domain not verified")
}

func TestResendMailer_NotConfigured(t *testing.T) {
	assert.False(t, NewResendMailer(resend.NewClient("", "", time.Second)).Configured())
	assert.False(t, NewResendMailer(nil).Configured())
}

// ==========================
// SES
// ==========================

func TestSESMailer_Send(t *testing.T) {
	var got *ses.SendEmailInput
	mock := &MockSESService{
		SendEmailFunc: func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
			got = params
			return &ses.SendEmailOutput{MessageId: aws.String("ses-123")}, nil
		},
	}

	mailer := NewSESMailer(mock, "hello@sleekstudio.london")
	require.True(t, mailer.Configured())
	assert.Equal(t, config.ProviderSES, mailer.Provider())

	id, err := mailer.Send(context.Background(), createTestMessage())
	require.NoError(t, err)
	assert.Equal(t, "ses-123", id)

	require.NotNil(t, got)
	assert.Equal(t, "hello@sleekstudio.london", aws.ToString(got.Source))
	assert.Equal(t, []string{"sleek.studiolondon@gmail.com"}, got.Destination.ToAddresses)
	assert.Equal(t, []string{"ada@example.com"}, got.ReplyToAddresses)
	assert.Equal(t, "New Enquiry — Sleek Studio London", aws.ToString(got.Message.Subject.Data))
	assert.Equal(t, "New enquiry received", aws.ToString(got.Message.Body.Text.Data))
	assert.Nil(t, got.Message.Body.Html)
}

func TestSESMailer_Error(t *testing.T) {
	mock := &MockSESService{
		SendEmailFunc: func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
			return nil, errors.New("MessageRejected")
		},
	}

	_, err := NewSESMailer(mock, "hello@sleekstudio.london").Send(context.Background(), createTestMessage())
	assert.ErrorContains(t, err, "ses send email: MessageRejected")
}

func TestSESMailer_Configured(t *testing.T) {
	assert.False(t, NewSESMailer(&MockSESService{}, "").Configured())
	assert.False(t, NewSESMailer(nil, "hello@sleekstudio.london").Configured())
}

// ==========================
// SNS
// ==========================

func TestSNSNotifier_Notify(t *testing.T) {
	tests := []struct {
		name      string
		topicARN  string
		phone     string
		wantTopic string
		wantPhone string
	}{
		{"topic", "arn:aws:sns:eu-west-2:123456789012:enquiries", "", "arn:aws:sns:eu-west-2:123456789012:enquiries", ""},
		{"topic wins over phone", "arn:aws:sns:eu-west-2:123456789012:enquiries", "+447700900000", "arn:aws:sns:eu-west-2:123456789012:enquiries", ""},
		{"phone only", "", "+447700900000", "", "+447700900000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got *sns.PublishInput
			mock := &MockSNSService{
				PublishFunc: func(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
					got = params
					return &sns.PublishOutput{MessageId: aws.String("sns-1")}, nil
				},
			}

			err := NewSNSNotifier(mock, tt.topicARN, tt.phone).Notify(context.Background(), "New Ideal Fit enquiry")
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, "New Ideal Fit enquiry", aws.ToString(got.Message))
			assert.Equal(t, tt.wantTopic, aws.ToString(got.TopicArn))
			assert.Equal(t, tt.wantPhone, aws.ToString(got.PhoneNumber))
		})
	}
}

func TestSNSNotifier_Error(t *testing.T) {
	mock := &MockSNSService{
		PublishFunc: func(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
			return nil, errors.New("Throttling")
		},
	}
	err := NewSNSNotifier(mock, "arn:aws:sns:eu-west-2:123456789012:enquiries", "").Notify(context.Background(), "x")
	assert.ErrorContains(t, err, "sns publish: Throttling")
}

// ==========================
// Construction from config
// ==========================

func TestNewMailer_Resend(t *testing.T) {
	cfg := &config.Config{}
	cfg.Enquiry.Provider = config.ProviderResend
	cfg.Enquiry.Timeout = 1000
	cfg.Integrations.Resend.APIKey = "re_test"

	mailer, err := NewMailer(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, config.ProviderResend, mailer.Provider())
	assert.True(t, mailer.Configured())

	cfg.Integrations.Resend.APIKey = ""
	mailer, err = NewMailer(context.Background(), cfg)
	require.NoError(t, err)
	assert.False(t, mailer.Configured())
}

func TestNewNotifier_Disabled(t *testing.T) {
	notifier, err := NewNotifier(context.Background(), &config.Config{})
	require.NoError(t, err)
	assert.Nil(t, notifier)
}
