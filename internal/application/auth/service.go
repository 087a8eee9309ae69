package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Bug-Bust3rs/CARE-Community-Aid-and-Resource-Exchange/internal/application/credential"
	"github.com/Bug-Bust3rs/CARE-Community-Aid-and-Resource-Exchange/internal/application/notification"
	"github.com/Bug-Bust3rs/CARE-Community-Aid-and-Resource-Exchange/internal/domain"
	"github.com/Bug-Bust3rs/CARE-Community-Aid-and-Resource-Exchange/internal/pkg/id"
	pkgtoken "github.com/Bug-Bust3rs/CARE-Community-Aid-and-Resource-Exchange/internal/pkg/token"
	"github.com/Bug-Bust3rs/CARE-Community-Aid-and-Resource-Exchange/internal/pkg/validate"
)

// bcrypt only looks at the first 72 bytes.
const maxPasswordBytes = 72

const verificationTokenBytes = 32

// A reset OTP is burned after this many wrong guesses.
const maxOTPAttempts = 5

// LoginResult is either a session (verified account, correct password) or a
// verification-required notice (pending account). It is never both.
type LoginResult struct {
	VerificationRequired bool
	Session              *credential.SessionToken
	Account              *domain.Account
}

type Service interface {
	Register(ctx context.Context, req domain.RegisterRequest) (*domain.Account, error)
	VerifyEmail(ctx context.Context, accountID, token string) error
	Login(ctx context.Context, req domain.LoginRequest) (*LoginResult, error)
	ResendVerification(ctx context.Context, req domain.EmailRequest) error
	RequestPasswordReset(ctx context.Context, req domain.EmailRequest) error
	ConsumeOtpAndResetPassword(ctx context.Context, req domain.ResetPasswordRequest) error
	Me(ctx context.Context, accountID string) (*domain.Account, error)
}

type accountStore interface {
	CreateWithToken(ctx context.Context, a *domain.Account, t *domain.VerificationToken) error
	Get(ctx context.Context, accountID string) (*domain.Account, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	MarkVerified(ctx context.Context, accountID, tokenHash string) error
	ResetPassword(ctx context.Context, accountID, passwordHash, otpHash string) error
}

type tokenStore interface {
	Put(ctx context.Context, t *domain.VerificationToken) error
	Get(ctx context.Context, accountID string, purpose domain.TokenPurpose) (*domain.VerificationToken, error)
	GetByHash(ctx context.Context, tokenHash string, purpose domain.TokenPurpose) (*domain.VerificationToken, error)
	Delete(ctx context.Context, accountID string, purpose domain.TokenPurpose, tokenHash string) error
	RecordFailedAttempt(ctx context.Context, accountID string, purpose domain.TokenPurpose, tokenHash string) (int, error)
}

type service struct {
	accounts        accountStore
	tokens          tokenStore
	credentials     credential.Service
	gateway         notification.Gateway
	verificationTTL time.Duration
	otpTTL          time.Duration
	now             func() time.Time
}

type ServiceDeps struct {
	AccountRepo     accountStore
	TokenRepo       tokenStore
	Credentials     credential.Service
	Gateway         notification.Gateway
	VerificationTTL time.Duration
	OTPTTL          time.Duration
	Now             func() time.Time // defaults to time.Now
}

func NewService(deps ServiceDeps) Service {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		accounts:        deps.AccountRepo,
		tokens:          deps.TokenRepo,
		credentials:     deps.Credentials,
		gateway:         deps.Gateway,
		verificationTTL: deps.VerificationTTL,
		otpTTL:          deps.OTPTTL,
		now:             now,
	}
}

func (s *service) Register(ctx context.Context, req domain.RegisterRequest) (*domain.Account, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = normalizeEmail(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	if err := checkPasswordLength(req.Password); err != nil {
		return nil, err
	}

	// Fast path for the common duplicate; the transaction below is authoritative.
	if _, err := s.accounts.GetByEmail(ctx, req.Email); err == nil {
		return nil, fmt.Errorf("email already registered: %w", domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	hash, err := s.credentials.Hash(req.Password)
	if err != nil {
		return nil, err
	}
	raw, err := pkgtoken.NewOpaque(verificationTokenBytes)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	a := &domain.Account{
		AccountID:    id.New(),
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: hash,
		IsVerified:   false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	t := newToken(a.AccountID, domain.PurposeEmailVerify, raw, now, s.verificationTTL)
	if err := s.accounts.CreateWithToken(ctx, a, t); err != nil {
		return nil, err
	}

	s.dispatch(ctx, "verification", a, func(ctx context.Context) error {
		return s.gateway.SendVerification(ctx, a, raw)
	})
	return a, nil
}

func (s *service) VerifyEmail(ctx context.Context, accountID, token string) error {
	if token == "" {
		return fmt.Errorf("token is required: %w", domain.ErrValidation)
	}
	t, err := s.tokens.GetByHash(ctx, pkgtoken.Hash(token), domain.PurposeEmailVerify)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("invalid verification token: %w", domain.ErrNotFound)
		}
		return err
	}
	if t.Expired(s.now()) {
		if err := s.tokens.Delete(ctx, t.AccountID, t.Purpose, t.TokenHash); err != nil {
			slog.Warn("failed to delete expired verification token", "account_id", t.AccountID, "err", err)
		}
		return fmt.Errorf("verification token expired: %w", domain.ErrExpired)
	}
	if t.AccountID != accountID {
		return fmt.Errorf("verification token belongs to another account: %w", domain.ErrForbidden)
	}
	if err := s.accounts.MarkVerified(ctx, accountID, t.TokenHash); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return fmt.Errorf("invalid verification token: %w", domain.ErrNotFound)
		}
		return err
	}
	return nil
}

func (s *service) Login(ctx context.Context, req domain.LoginRequest) (*LoginResult, error) {
	req.Email = normalizeEmail(req.Email)
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	a, err := s.accounts.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !a.IsVerified {
		if err := s.issueVerification(ctx, a); err != nil {
			return nil, err
		}
		return &LoginResult{VerificationRequired: true}, nil
	}

	if !s.credentials.Verify(req.Password, a.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}
	sess, err := s.credentials.IssueSessionToken(a.AccountID)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Session: &sess, Account: a}, nil
}

// ResendVerification answers the same way whether or not the email belongs to a pending account.
func (s *service) ResendVerification(ctx context.Context, req domain.EmailRequest) error {
	req.Email = normalizeEmail(req.Email)
	if err := validate.Struct(req); err != nil {
		return err
	}
	a, err := s.accounts.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return err
	}
	if a.IsVerified {
		return nil
	}
	return s.issueVerification(ctx, a)
}

// RequestPasswordReset answers the same way whether or not the email is registered.
func (s *service) RequestPasswordReset(ctx context.Context, req domain.EmailRequest) error {
	req.Email = normalizeEmail(req.Email)
	if err := validate.Struct(req); err != nil {
		return err
	}
	a, err := s.accounts.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return err
	}

	otp, err := pkgtoken.NewOTP()
	if err != nil {
		return err
	}
	t := newToken(a.AccountID, domain.PurposePasswordResetOTP, otp, s.now().UTC(), s.otpTTL)
	if err := s.tokens.Put(ctx, t); err != nil {
		return fmt.Errorf("store reset otp: %w", err)
	}

	s.dispatch(ctx, "otp", a, func(ctx context.Context) error {
		return s.gateway.SendOTP(ctx, a, otp)
	})
	return nil
}

func (s *service) ConsumeOtpAndResetPassword(ctx context.Context, req domain.ResetPasswordRequest) error {
	req.Email = normalizeEmail(req.Email)
	if err := validate.Struct(req); err != nil {
		return err
	}
	if err := checkPasswordLength(req.NewPassword); err != nil {
		return err
	}

	a, err := s.accounts.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrInvalidOTP
		}
		return err
	}
	t, err := s.tokens.Get(ctx, a.AccountID, domain.PurposePasswordResetOTP)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrInvalidOTP
		}
		return err
	}
	if t.Expired(s.now()) {
		if err := s.tokens.Delete(ctx, t.AccountID, t.Purpose, t.TokenHash); err != nil {
			slog.Warn("failed to delete expired reset otp", "account_id", t.AccountID, "err", err)
		}
		return domain.ErrInvalidOTP
	}
	if t.Attempts >= maxOTPAttempts {
		return domain.ErrInvalidOTP
	}
	if !pkgtoken.Equal(pkgtoken.Hash(req.OTP), t.TokenHash) {
		if err := s.recordFailedOTP(ctx, t); err != nil {
			return err
		}
		return domain.ErrInvalidOTP
	}

	hash, err := s.credentials.Hash(req.NewPassword)
	if err != nil {
		return err
	}
	if err := s.accounts.ResetPassword(ctx, a.AccountID, hash, t.TokenHash); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return domain.ErrInvalidOTP
		}
		return err
	}
	return nil
}

// recordFailedOTP counts a wrong guess against the live OTP and deletes it once the
// limit is reached. A token superseded or consumed meanwhile is left alone.
func (s *service) recordFailedOTP(ctx context.Context, t *domain.VerificationToken) error {
	n, err := s.tokens.RecordFailedAttempt(ctx, t.AccountID, t.Purpose, t.TokenHash)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("record failed otp attempt: %w", err)
	}
	if n >= maxOTPAttempts {
		if err := s.tokens.Delete(ctx, t.AccountID, t.Purpose, t.TokenHash); err != nil {
			slog.Warn("failed to delete exhausted reset otp", "account_id", t.AccountID, "err", err)
		}
	}
	return nil
}

func (s *service) Me(ctx context.Context, accountID string) (*domain.Account, error) {
	return s.accounts.Get(ctx, accountID)
}

// issueVerification stores a fresh EMAIL_VERIFY token, superseding any previous one, and sends it.
func (s *service) issueVerification(ctx context.Context, a *domain.Account) error {
	raw, err := pkgtoken.NewOpaque(verificationTokenBytes)
	if err != nil {
		return err
	}
	t := newToken(a.AccountID, domain.PurposeEmailVerify, raw, s.now().UTC(), s.verificationTTL)
	if err := s.tokens.Put(ctx, t); err != nil {
		return fmt.Errorf("store verification token: %w", err)
	}
	s.dispatch(ctx, "verification", a, func(ctx context.Context) error {
		return s.gateway.SendVerification(ctx, a, raw)
	})
	return nil
}

// dispatch is best-effort: a failed notification is logged and never fails the caller.
func (s *service) dispatch(ctx context.Context, kind string, a *domain.Account, send func(context.Context) error) {
	if err := send(ctx); err != nil {
		slog.Warn("failed to send notification", "kind", kind, "account_id", a.AccountID, "err", err)
	}
}

func newToken(accountID string, purpose domain.TokenPurpose, raw string, now time.Time, ttl time.Duration) *domain.VerificationToken {
	return &domain.VerificationToken{
		AccountID: accountID,
		Purpose:   purpose,
		TokenHash: pkgtoken.Hash(raw),
		ExpiresAt: now.Add(ttl).Unix(),
		CreatedAt: now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func checkPasswordLength(password string) error {
	if len(password) > maxPasswordBytes {
		return fmt.Errorf("password must be at most %d bytes: %w", maxPasswordBytes, domain.ErrValidation)
	}
	return nil
}
