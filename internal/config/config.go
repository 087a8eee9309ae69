package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Notification transports selectable through EMAIL_SERVICE.
const (
	EmailServiceSMTP   = "SMTP"
	EmailServiceResend = "RESEND"
	EmailServiceSNS    = "SNS"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort    string
	AppEnv     string
	AppBaseURL string

	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string
	DynamoTables   DynamoTables
	S3BucketName   string

	JWTPrivateKeyPath string
	JWTPublicKeyPath  string
	JWTExpiry         time.Duration
	BcryptCost        int

	EmailVerificationTTL time.Duration
	PasswordResetOTPTTL  time.Duration
	TokenSweepInterval   time.Duration

	EmailService string
	SMTPHost     string
	SMTPPort     string
	SMTPFrom     string
	SMTPUsername string
	SMTPPassword string
	ResendAPIKey string
	SNSRegion    string

	AllowedOrigins []string // CORS allowed origins
	TrustProxy     bool     // take the client IP from X-Forwarded-For / X-Real-IP
}

// DynamoTables holds the DynamoDB table name for each entity.
type DynamoTables struct {
	Accounts           string
	AccountEmails      string
	VerificationTokens string
	DonationPosts      string
	PetPosts           string
	Profiles           string
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort:    getEnv("APP_PORT", "3000"),
		AppEnv:     getEnv("APP_ENV", "development"),
		AppBaseURL: strings.TrimRight(getEnv("APP_BASE_URL", "http://localhost:3000"), "/"),

		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),
		DynamoTables: DynamoTables{
			Accounts:           getEnv("DYNAMO_TABLE_ACCOUNTS", "accounts"),
			AccountEmails:      getEnv("DYNAMO_TABLE_ACCOUNT_EMAILS", "account_emails"),
			VerificationTokens: getEnv("DYNAMO_TABLE_VERIFICATION_TOKENS", "verification_tokens"),
			DonationPosts:      getEnv("DYNAMO_TABLE_DONATION_POSTS", "donation_posts"),
			PetPosts:           getEnv("DYNAMO_TABLE_PET_POSTS", "pet_posts"),
			Profiles:           getEnv("DYNAMO_TABLE_PROFILES", "profiles"),
		},
		S3BucketName: getEnv("S3_BUCKET_NAME", "care-images"),

		JWTPrivateKeyPath: getEnv("JWT_PRIVATE_KEY_PATH", "./private_key.pem"),
		JWTPublicKeyPath:  getEnv("JWT_PUBLIC_KEY_PATH", "./public_key.pem"),
		JWTExpiry:         getEnvDuration("JWT_EXPIRY", 72*time.Hour),
		BcryptCost:        getEnvInt("BCRYPT_COST", 10),

		EmailVerificationTTL: getEnvDuration("EMAIL_VERIFICATION_TTL", 24*time.Hour),
		PasswordResetOTPTTL:  getEnvDuration("PASSWORD_RESET_OTP_TTL", 10*time.Minute),
		TokenSweepInterval:   getEnvDuration("TOKEN_SWEEP_INTERVAL", 15*time.Minute),

		EmailService: strings.ToUpper(getEnv("EMAIL_SERVICE", EmailServiceSMTP)),
		SMTPHost:     getEnv("SMTP_HOST", "localhost"),
		SMTPPort:     getEnv("SMTP_PORT", "1025"),
		SMTPFrom:     getEnv("SMTP_FROM", "noreply@care.local"),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		ResendAPIKey: getEnv("RESEND_API_KEY", ""),
		SNSRegion:    getEnv("SNS_REGION", "us-east-1"),

		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
		TrustProxy:     getEnvBool("TRUST_PROXY", false),
	}
}

// Validate reports settings that are missing for the selected notification transport.
func (c *Config) Validate() error {
	switch c.EmailService {
	case EmailServiceSMTP:
		if c.SMTPHost == "" || c.SMTPPort == "" {
			return fmt.Errorf("SMTP_HOST and SMTP_PORT are required when EMAIL_SERVICE=%s", EmailServiceSMTP)
		}
	case EmailServiceResend:
		if c.ResendAPIKey == "" {
			return fmt.Errorf("RESEND_API_KEY is required when EMAIL_SERVICE=%s", EmailServiceResend)
		}
	case EmailServiceSNS:
		if c.SNSRegion == "" {
			return fmt.Errorf("SNS_REGION is required when EMAIL_SERVICE=%s", EmailServiceSNS)
		}
	default:
		return fmt.Errorf("unknown EMAIL_SERVICE %q", c.EmailService)
	}
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		return fmt.Errorf("BCRYPT_COST must be between 4 and 31, got %d", c.BcryptCost)
	}
	for _, d := range []struct {
		name  string
		value time.Duration
	}{
		{"JWT_EXPIRY", c.JWTExpiry},
		{"EMAIL_VERIFICATION_TTL", c.EmailVerificationTTL},
		{"PASSWORD_RESET_OTP_TTL", c.PasswordResetOTPTTL},
		{"TOKEN_SWEEP_INTERVAL", c.TokenSweepInterval},
	} {
		if d.value <= 0 {
			return fmt.Errorf("%s must be positive, got %s", d.name, d.value)
		}
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
