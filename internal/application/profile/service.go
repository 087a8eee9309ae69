package profile

import (
	"context"
	"errors"
	"time"

	"github.com/Bug-Bust3rs/CARE-Community-Aid-and-Resource-Exchange/internal/domain"
	"github.com/Bug-Bust3rs/CARE-Community-Aid-and-Resource-Exchange/internal/pkg/validate"
)

const defaultPageSize = 50

type Service interface {
	List(ctx context.Context, limit int, cursor string) ([]domain.Profile, string, error)
	Get(ctx context.Context, accountID string) (*domain.Profile, error)
	Upsert(ctx context.Context, accountID string, req domain.UpsertProfileRequest) (*domain.Profile, error)
}

type profileStore interface {
	Put(ctx context.Context, p *domain.Profile) error
	Get(ctx context.Context, accountID string) (*domain.Profile, error)
	ScanPage(ctx context.Context, limit int32, cursor string) ([]domain.Profile, string, error)
}

type accountReader interface {
	Get(ctx context.Context, accountID string) (*domain.Account, error)
}

type service struct {
	repo     profileStore
	accounts accountReader
}

type ServiceDeps struct {
	ProfileRepo profileStore
	AccountRepo accountReader
}

func NewService(deps ServiceDeps) Service {
	return &service{repo: deps.ProfileRepo, accounts: deps.AccountRepo}
}

func (s *service) List(ctx context.Context, limit int, cursor string) ([]domain.Profile, string, error) {
	if limit < 1 {
		limit = defaultPageSize
	}
	return s.repo.ScanPage(ctx, int32(limit), cursor)
}

func (s *service) Get(ctx context.Context, accountID string) (*domain.Profile, error) {
	return s.repo.Get(ctx, accountID)
}

// Upsert creates the caller's profile on first use and replaces the editable fields afterwards.
// The display name always follows the account.
func (s *service) Upsert(ctx context.Context, accountID string, req domain.UpsertProfileRequest) (*domain.Profile, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	a, err := s.accounts.Get(ctx, accountID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	p, err := s.repo.Get(ctx, accountID)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrNotFound):
		p = &domain.Profile{AccountID: accountID, CreatedAt: now}
	default:
		return nil, err
	}

	p.Name = a.Name
	p.Bio = req.Bio
	p.AvatarURL = req.AvatarURL
	p.Location = req.Location
	p.UpdatedAt = now
	if err := s.repo.Put(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}
