package smtp

import (
	"context"
	"testing"

	"github.com/Bug-Bust3rs/CARE-Community-Aid-and-Resource-Exchange/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestBuildMessage_HTMLHeaders(t *testing.T) {
	msg := buildMessage("noreply@care.local", "a@b.com", "Verify", "<p>hi</p>")
	assert.Contains(t, msg, "From: noreply@care.local\r\n")
	assert.Contains(t, msg, "To: a@b.com\r\n")
	assert.Contains(t, msg, "Subject: Verify\r\n")
	assert.Contains(t, msg, "Content-Type: text/html; charset=\"UTF-8\"\r\n")
	assert.Contains(t, msg, "\r\n\r\n<p>hi</p>")
}

func TestSendEmail_CancelledContext(t *testing.T) {
	m := NewMailer(&config.Config{SMTPHost: "127.0.0.1", SMTPPort: "1"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := m.SendEmail(ctx, "a@b.com", "s", "b")
	assert.ErrorContains(t, err, "dial smtp")
}
