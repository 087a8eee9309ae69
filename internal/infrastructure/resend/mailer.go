package resend

import (
	"context"
	"fmt"

	"github.com/Bug-Bust3rs/CARE-Community-Aid-and-Resource-Exchange/internal/config"
	resendapi "github.com/resend/resend-go/v2"
)

// Mailer sends HTML emails through the Resend API.
type Mailer struct {
	client *resendapi.Client
	from   string
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{client: resendapi.NewClient(cfg.ResendAPIKey), from: cfg.SMTPFrom}
}

func (m *Mailer) SendEmail(ctx context.Context, to, subject, htmlBody string) error {
	_, err := m.client.Emails.SendWithContext(ctx, &resendapi.SendEmailRequest{
		From:    m.from,
		To:      []string{to},
		Subject: subject,
		Html:    htmlBody,
	})
	if err != nil {
		return fmt.Errorf("resend send email: %w", err)
	}
	return nil
}
