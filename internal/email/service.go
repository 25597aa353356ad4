package email

import (
	"boost-server/internal/observability"
	"bytes"
	"context"
	"errors"
	"fmt"
	"text/template"
)

var (
	ErrInvalidEmailAddress = errors.New("invalid email address")
	ErrSendingEmail        = errors.New("error sending email")
	ErrEmptyTemplate       = errors.New("email template is empty")
)

// MailSender is the outbound mail capability the service needs.
type MailSender interface {
	SendEmail(ctx context.Context, from, to, subject, htmlContent string) (string, error)
}

// EmailService handles sending transactional emails
type EmailService struct {
	mailClient    MailSender
	logger        *observability.Logger
	defaultSender string
	templates     map[string]string
}

// TemplateData represents the data that can be used in templates
type TemplateData struct {
	BoostName     string
	AmountUSD     string
	DurationDays  int
	DailyUSD      string
	StartDate     string
	EndDate       string
	DashboardLink string
}

// New creates a new EmailService
func New(mailClient MailSender, defaultSender string, logger *observability.Logger) *EmailService {
	return &EmailService{
		mailClient:    mailClient,
		logger:        logger,
		defaultSender: defaultSender,
		templates: map[string]string{
			"boost_receipt": `
			<html>
				<body>
					<h1>Your boost is live!</h1>
					<p>Payment for <strong>{{.BoostName}}</strong> was confirmed and the boost is now running.</p>
					<ul>
						<li>Total charged: {{.AmountUSD}}</li>
						<li>Duration: {{.DurationDays}} days at {{.DailyUSD}}/day</li>
						<li>Runs {{.StartDate}} through {{.EndDate}}</li>
					</ul>
					<p><a href="{{.DashboardLink}}">Track performance on your dashboard</a></p>
				</body>
			</html>
			`,
			"boost_payment_failed": `
			<html>
				<body>
					<h1>Boost payment did not go through</h1>
					<p>We could not confirm payment for <strong>{{.BoostName}}</strong>, so the boost was cancelled.</p>
					<p>No charge was made. You can start a new boost from your dashboard at any time.</p>
					<p><a href="{{.DashboardLink}}">Back to your dashboard</a></p>
				</body>
			</html>
			`,
		},
	}
}

// SendBoostReceipt emails the activation receipt after a confirmed payment.
func (s *EmailService) SendBoostReceipt(ctx context.Context, to string, data TemplateData) error {
	return s.send(ctx, to, "Your boost is live", "boost_receipt", data)
}

// SendBoostPaymentFailed emails the payer after a failed or expired checkout.
func (s *EmailService) SendBoostPaymentFailed(ctx context.Context, to string, data TemplateData) error {
	return s.send(ctx, to, "Boost payment failed", "boost_payment_failed", data)
}

func (s *EmailService) send(ctx context.Context, to, subject, templateName string, data TemplateData) error {
	ctx = observability.WithFields(ctx, observability.Field{Key: "email_template", Value: templateName})

	if to == "" {
		return ErrInvalidEmailAddress
	}

	body, err := s.render(templateName, data)
	if err != nil {
		s.logger.Error(ctx, "failed to render email template", err)
		return err
	}

	if _, err := s.mailClient.SendEmail(ctx, s.defaultSender, to, subject, body); err != nil {
		s.logger.Error(ctx, "failed to send email", err)
		return ErrSendingEmail
	}
	return nil
}

func (s *EmailService) render(name string, data TemplateData) (string, error) {
	raw, ok := s.templates[name]
	if !ok || raw == "" {
		return "", ErrEmptyTemplate
	}

	tmpl, err := template.New(name).Parse(raw)
	if err != nil {
		return "", fmt.Errorf("failed to parse template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", name, err)
	}
	return buf.String(), nil
}
