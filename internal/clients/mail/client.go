// Package mail carries the boost lifecycle's transactional email out through
// Resend. The email service owns the receipt and payment-failure templates;
// this client only delivers an already-rendered message.
package mail

import (
	"boost-server/internal/observability"
	"context"
	"fmt"

	"github.com/resendlabs/resend-go"
)

// ResendClient delivers rendered boost emails through the Resend API.
type ResendClient struct {
	client *resend.Client
	logger *observability.Logger
}

func NewResendClient(apiKey string, logger *observability.Logger) (*ResendClient, error) {
	client := resend.NewClient(apiKey)
	if client == nil {
		return nil, fmt.Errorf("failed to create Resend client")
	}

	return &ResendClient{
		client: client,
		logger: logger,
	}, nil
}

// SendEmail sends one HTML message to a single recipient and returns the
// provider's message id. Callers on the webhook path treat failures as
// best-effort; nothing here retries.
func (c *ResendClient) SendEmail(ctx context.Context, from, to, subject, htmlContent string) (string, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "email_to", Value: to},
		observability.Field{Key: "email_subject", Value: subject},
	)

	params := &resend.SendEmailRequest{
		From:    from,
		To:      []string{to},
		Subject: subject,
		Html:    htmlContent,
	}

	sent, err := c.client.Emails.Send(params)
	if err != nil {
		c.logger.Error(ctx, "failed to send boost email", err)
		return "", fmt.Errorf("failed to send email: %w", err)
	}

	c.logger.Info(ctx, "boost email delivered to provider")
	return sent.Id, nil
}
