// Package notification delivers verification links and password reset codes to account holders.
package notification

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/Bug-Bust3rs/CARE-Community-Aid-and-Resource-Exchange/internal/domain"
)

// Gateway sends account notifications. Exactly one implementation is selected at startup.
type Gateway interface {
	SendVerification(ctx context.Context, account *domain.Account, token string) error
	SendOTP(ctx context.Context, account *domain.Account, otp string) error
}

type emailSender interface {
	SendEmail(ctx context.Context, to, subject, htmlBody string) error
}

type smsSender interface {
	SendSMS(ctx context.Context, to, message string) error
}

// Settings shared by all gateway variants.
type Settings struct {
	BaseURL         string
	VerificationTTL time.Duration
	OTPTTL          time.Duration
}

// VerificationLink builds the URL the account holder follows to verify their email.
func (s Settings) VerificationLink(accountID, token string) string {
	return fmt.Sprintf("%s/v1/auth/verify/%s?token=%s", s.BaseURL, url.PathEscape(accountID), url.QueryEscape(token))
}

type emailGateway struct {
	sender   emailSender
	settings Settings
}

// NewEmailGateway returns a Gateway that renders HTML emails and hands them to sender
// (SMTP or Resend).
func NewEmailGateway(sender emailSender, settings Settings) Gateway {
	return &emailGateway{sender: sender, settings: settings}
}

func (g *emailGateway) SendVerification(ctx context.Context, account *domain.Account, token string) error {
	body, err := render(verificationTmpl, mailData{
		Name:    account.Name,
		Link:    g.settings.VerificationLink(account.AccountID, token),
		Expires: humanDuration(g.settings.VerificationTTL),
	})
	if err != nil {
		return err
	}
	if err := g.sender.SendEmail(ctx, account.Email, subjectVerification, body); err != nil {
		return fmt.Errorf("send verification email: %w", err)
	}
	return nil
}

func (g *emailGateway) SendOTP(ctx context.Context, account *domain.Account, otp string) error {
	body, err := render(otpTmpl, mailData{
		Name:    account.Name,
		OTP:     otp,
		Expires: humanDuration(g.settings.OTPTTL),
	})
	if err != nil {
		return err
	}
	if err := g.sender.SendEmail(ctx, account.Email, subjectOTP, body); err != nil {
		return fmt.Errorf("send otp email: %w", err)
	}
	return nil
}

type smsGateway struct {
	sender   smsSender
	settings Settings
}

// NewSMSGateway returns a Gateway that texts the account's phone number through SNS.
func NewSMSGateway(sender smsSender, settings Settings) Gateway {
	return &smsGateway{sender: sender, settings: settings}
}

func (g *smsGateway) SendVerification(ctx context.Context, account *domain.Account, token string) error {
	msg := fmt.Sprintf("CARE: verify your email within %s: %s",
		humanDuration(g.settings.VerificationTTL), g.settings.VerificationLink(account.AccountID, token))
	if err := g.sender.SendSMS(ctx, account.Phone, msg); err != nil {
		return fmt.Errorf("send verification sms: %w", err)
	}
	return nil
}

func (g *smsGateway) SendOTP(ctx context.Context, account *domain.Account, otp string) error {
	msg := fmt.Sprintf("CARE: your password reset code is %s. It expires in %s.", otp, humanDuration(g.settings.OTPTTL))
	if err := g.sender.SendSMS(ctx, account.Phone, msg); err != nil {
		return fmt.Errorf("send otp sms: %w", err)
	}
	return nil
}

func humanDuration(d time.Duration) string {
	switch {
	case d >= time.Hour && d%time.Hour == 0:
		h := int(d / time.Hour)
		if h == 1 {
			return "1 hour"
		}
		return fmt.Sprintf("%d hours", h)
	case d >= time.Minute && d%time.Minute == 0:
		m := int(d / time.Minute)
		if m == 1 {
			return "1 minute"
		}
		return fmt.Sprintf("%d minutes", m)
	default:
		return d.String()
	}
}
