package domain

import "time"

type TokenPurpose string

const (
	PurposeEmailVerify      TokenPurpose = "EMAIL_VERIFY"
	PurposePasswordResetOTP TokenPurpose = "PASSWORD_RESET_OTP"
)

// VerificationToken stores email verification tokens and password reset OTPs.
// PK: account_id, SK: purpose, so an account holds at most one token per purpose.
// Only the SHA-256 of the raw value is stored. ExpiresAt is a Unix timestamp used as DynamoDB TTL.
type VerificationToken struct {
	AccountID string       `json:"account_id" dynamodbav:"account_id"`
	Purpose   TokenPurpose `json:"purpose" dynamodbav:"purpose"`
	TokenHash string       `json:"-" dynamodbav:"token_hash"`
	ExpiresAt int64        `json:"expires_at" dynamodbav:"expires_at"`
	Attempts  int          `json:"-" dynamodbav:"attempts"`
	CreatedAt time.Time    `json:"created" dynamodbav:"created_at"`
}

// Expired reports whether the token is past its expiry at now.
// DynamoDB TTL deletion is lazy, so this must be checked on every read.
func (t *VerificationToken) Expired(now time.Time) bool {
	return now.Unix() >= t.ExpiresAt
}
