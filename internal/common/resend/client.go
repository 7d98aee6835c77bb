package resend

import (
	"context"
	"fmt"
	"strings"
	"time"

	commonhttp "studio-growth/internal/common/http"
)

const DefaultBaseURL = "https://api.resend.com"

// Client posts transactional email to the Resend API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *commonhttp.Client
}

// Email is the send-email request body.
type Email struct {
	From    string            `json:"from"`
	To      []string          `json:"to"`
	ReplyTo string            `json:"reply_to,omitempty"`
	Subject string            `json:"subject"`
	Text    string            `json:"text"`
	Headers map[string]string `json:"headers,omitempty"`
}

type SendEmailResponse struct {
	ID string `json:"id"`
}

func NewClient(apiKey, baseURL string, timeout time.Duration) *Client {
	return NewClientWithHTTP(apiKey, baseURL, commonhttp.NewClient(timeout))
}

// NewClientWithHTTP uses a caller supplied HTTP client.
func NewClientWithHTTP(apiKey, baseURL string, httpClient *commonhttp.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// Configured reports whether an API key is present.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// SendEmail sends one message and returns the provider's message ID.
func (c *Client) SendEmail(ctx context.Context, email *Email) (string, error) {
	url := fmt.Sprintf("%s/emails", c.baseURL)

	var resp SendEmailResponse
	err := c.httpClient.PostJSON(ctx, url, map[string]string{
		"Authorization": "Bearer " + c.apiKey,
	}, email, &resp)
	if err != nil {
		return "", fmt.Errorf("resend send email: %w", err)
	}
	return resp.ID, nil
}
