package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Bug-Bust3rs/CARE-Community-Aid-and-Resource-Exchange/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockEmailSender struct{ mock.Mock }

func (m *mockEmailSender) SendEmail(ctx context.Context, to, subject, htmlBody string) error {
	return m.Called(ctx, to, subject, htmlBody).Error(0)
}

type mockSMSSender struct{ mock.Mock }

func (m *mockSMSSender) SendSMS(ctx context.Context, to, message string) error {
	return m.Called(ctx, to, message).Error(0)
}

var testSettings = Settings{
	BaseURL:         "https://care.example",
	VerificationTTL: 24 * time.Hour,
	OTPTTL:          10 * time.Minute,
}

func testAccount() *domain.Account {
	return &domain.Account{AccountID: "01ACC", Name: "Ana <b>", Email: "ana@example.com", Phone: "+8801700000000"}
}

func TestVerificationLink(t *testing.T) {
	link := testSettings.VerificationLink("01ACC", "abc123")
	assert.Equal(t, "https://care.example/v1/auth/verify/01ACC?token=abc123", link)
}

func TestEmailGateway_SendVerification(t *testing.T) {
	sender := &mockEmailSender{}
	sender.On("SendEmail", mock.Anything, "ana@example.com", subjectVerification,
		mock.MatchedBy(func(body string) bool {
			return assert.Contains(t, body, "https://care.example/v1/auth/verify/01ACC?token=tok") &&
				assert.Contains(t, body, "24 hours") &&
				assert.Contains(t, body, "Ana &lt;b&gt;")
		})).Return(nil)

	err := NewEmailGateway(sender, testSettings).SendVerification(context.Background(), testAccount(), "tok")
	require.NoError(t, err)
	sender.AssertExpectations(t)
}

func TestEmailGateway_SendOTP(t *testing.T) {
	sender := &mockEmailSender{}
	sender.On("SendEmail", mock.Anything, "ana@example.com", subjectOTP,
		mock.MatchedBy(func(body string) bool {
			return assert.Contains(t, body, "<strong>123456</strong>") && assert.Contains(t, body, "10 minutes")
		})).Return(nil)

	err := NewEmailGateway(sender, testSettings).SendOTP(context.Background(), testAccount(), "123456")
	require.NoError(t, err)
	sender.AssertExpectations(t)
}

func TestEmailGateway_SenderError(t *testing.T) {
	sender := &mockEmailSender{}
	sender.On("SendEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("smtp down"))

	err := NewEmailGateway(sender, testSettings).SendOTP(context.Background(), testAccount(), "123456")
	assert.ErrorContains(t, err, "smtp down")
}

func TestSMSGateway_SendOTP(t *testing.T) {
	sender := &mockSMSSender{}
	sender.On("SendSMS", mock.Anything, "+8801700000000", "CARE: your password reset code is 654321. It expires in 10 minutes.").Return(nil)

	err := NewSMSGateway(sender, testSettings).SendOTP(context.Background(), testAccount(), "654321")
	require.NoError(t, err)
	sender.AssertExpectations(t)
}

func TestSMSGateway_SendVerification(t *testing.T) {
	sender := &mockSMSSender{}
	sender.On("SendSMS", mock.Anything, "+8801700000000",
		mock.MatchedBy(func(msg string) bool {
			return assert.Contains(t, msg, "/v1/auth/verify/01ACC?token=tok")
		})).Return(nil)

	err := NewSMSGateway(sender, testSettings).SendVerification(context.Background(), testAccount(), "tok")
	require.NoError(t, err)
	sender.AssertExpectations(t)
}

func TestHumanDuration(t *testing.T) {
	assert.Equal(t, "1 hour", humanDuration(time.Hour))
	assert.Equal(t, "24 hours", humanDuration(24*time.Hour))
	assert.Equal(t, "1 minute", humanDuration(time.Minute))
	assert.Equal(t, "90 minutes", humanDuration(90*time.Minute))
	assert.Equal(t, "30s", humanDuration(30*time.Second))
}
