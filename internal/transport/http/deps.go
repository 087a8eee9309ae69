package http

import (
	"context"
	"io"
	"time"

	"github.com/Bug-Bust3rs/CARE-Community-Aid-and-Resource-Exchange/internal/application/notification"
	"github.com/Bug-Bust3rs/CARE-Community-Aid-and-Resource-Exchange/internal/domain"
	jwtinfra "github.com/Bug-Bust3rs/CARE-Community-Aid-and-Resource-Exchange/internal/infrastructure/jwt"
)

// AccountRepository is the minimal interface the router requires from an account store.
type AccountRepository interface {
	CreateWithToken(ctx context.Context, a *domain.Account, t *domain.VerificationToken) error
	Get(ctx context.Context, accountID string) (*domain.Account, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	// MarkVerified and ResetPassword consume the token identified by its hash
	// in the same transaction as the account update.
	MarkVerified(ctx context.Context, accountID, tokenHash string) error
	ResetPassword(ctx context.Context, accountID, passwordHash, otpHash string) error
}

// TokenRepository is the minimal interface the router requires from a verification token store.
type TokenRepository interface {
	Put(ctx context.Context, t *domain.VerificationToken) error
	Get(ctx context.Context, accountID string, purpose domain.TokenPurpose) (*domain.VerificationToken, error)
	GetByHash(ctx context.Context, tokenHash string, purpose domain.TokenPurpose) (*domain.VerificationToken, error)
	Delete(ctx context.Context, accountID string, purpose domain.TokenPurpose, tokenHash string) error
	RecordFailedAttempt(ctx context.Context, accountID string, purpose domain.TokenPurpose, tokenHash string) (int, error)
}

// DonationPostRepository is the minimal interface the router requires from a donation post store.
type DonationPostRepository interface {
	Put(ctx context.Context, p *domain.DonationPost) error
	Get(ctx context.Context, postID string) (*domain.DonationPost, error)
	Update(ctx context.Context, postID string, updates map[string]interface{}) error
	Delete(ctx context.Context, postID string) error
	ScanPage(ctx context.Context, limit int32, cursor string) ([]domain.DonationPost, string, error)
	ListByAuthor(ctx context.Context, authorID string) ([]domain.DonationPost, error)
}

// PetPostRepository is the minimal interface the router requires from a pet post store.
type PetPostRepository interface {
	Put(ctx context.Context, p *domain.PetPost) error
	Get(ctx context.Context, postID string) (*domain.PetPost, error)
	Update(ctx context.Context, postID string, updates map[string]interface{}) error
	Delete(ctx context.Context, postID string) error
	ScanPage(ctx context.Context, limit int32, cursor string) ([]domain.PetPost, string, error)
	ListByAuthor(ctx context.Context, authorID string) ([]domain.PetPost, error)
}

// ProfileRepository is the minimal interface the router requires from a profile store.
type ProfileRepository interface {
	Put(ctx context.Context, p *domain.Profile) error
	Get(ctx context.Context, accountID string) (*domain.Profile, error)
	ScanPage(ctx context.Context, limit int32, cursor string) ([]domain.Profile, string, error)
}

// ObjectStore is the minimal interface the router requires from an object storage backend.
type ObjectStore interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
}

// TokenProvider signs and verifies session JWTs.
type TokenProvider interface {
	Sign(accountID string) (string, time.Time, error)
	Verify(tokenStr string) (*jwtinfra.Claims, error)
}

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	AccountRepo      AccountRepository
	TokenRepo        TokenRepository
	DonationPostRepo DonationPostRepository
	PetPostRepo      PetPostRepository
	ProfileRepo      ProfileRepository
	ObjectStore      ObjectStore
	Gateway          notification.Gateway
	JWTProvider      TokenProvider
}
