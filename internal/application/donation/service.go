package donation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Bug-Bust3rs/CARE-Community-Aid-and-Resource-Exchange/internal/domain"
	"github.com/Bug-Bust3rs/CARE-Community-Aid-and-Resource-Exchange/internal/pkg/id"
	"github.com/Bug-Bust3rs/CARE-Community-Aid-and-Resource-Exchange/internal/pkg/validate"
)

// DynamoDB attribute names used in partial update maps.
const (
	fieldDonationType  = "donation_type"
	fieldDonationImage = "donation_image"
	fieldLocation      = "location"
	fieldStatus        = "status"
	fieldFixerID       = "fixer_id"
)

const defaultPageSize = 50

type Service interface {
	List(ctx context.Context, limit int, cursor string) ([]domain.DonationPost, string, error)
	ListByAuthor(ctx context.Context, authorID string) ([]domain.DonationPost, error)
	Get(ctx context.Context, postID string) (*domain.DonationPost, error)
	Create(ctx context.Context, authorID string, req domain.CreateDonationPostRequest) (*domain.DonationPost, error)
	Update(ctx context.Context, authorID, postID string, req domain.UpdateDonationPostRequest) (*domain.DonationPost, error)
	Delete(ctx context.Context, authorID, postID string) error
}

type postStore interface {
	Put(ctx context.Context, p *domain.DonationPost) error
	Get(ctx context.Context, postID string) (*domain.DonationPost, error)
	Update(ctx context.Context, postID string, updates map[string]interface{}) error
	Delete(ctx context.Context, postID string) error
	ScanPage(ctx context.Context, limit int32, cursor string) ([]domain.DonationPost, string, error)
	ListByAuthor(ctx context.Context, authorID string) ([]domain.DonationPost, error)
}

type service struct {
	repo postStore
}

func NewService(repo postStore) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context, limit int, cursor string) ([]domain.DonationPost, string, error) {
	if limit < 1 {
		limit = defaultPageSize
	}
	return s.repo.ScanPage(ctx, int32(limit), cursor)
}

func (s *service) ListByAuthor(ctx context.Context, authorID string) ([]domain.DonationPost, error) {
	return s.repo.ListByAuthor(ctx, authorID)
}

func (s *service) Get(ctx context.Context, postID string) (*domain.DonationPost, error) {
	return s.repo.Get(ctx, postID)
}

func (s *service) Create(ctx context.Context, authorID string, req domain.CreateDonationPostRequest) (*domain.DonationPost, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	status := strings.TrimSpace(req.Status)
	if status == "" {
		status = domain.PostStatusOpen
	}
	now := time.Now().UTC()
	p := &domain.DonationPost{
		PostID:        id.New(),
		DonationType:  req.DonationType,
		DonationImage: req.DonationImage,
		AuthorID:      authorID,
		Location:      req.Location,
		Status:        status,
		FixerID:       req.FixerID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.repo.Put(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) Update(ctx context.Context, authorID, postID string, req domain.UpdateDonationPostRequest) (*domain.DonationPost, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	p, err := s.ownedPost(ctx, authorID, postID)
	if err != nil {
		return nil, err
	}
	updates := map[string]interface{}{}
	if req.DonationType != nil {
		updates[fieldDonationType] = *req.DonationType
	}
	if req.DonationImage != nil {
		updates[fieldDonationImage] = *req.DonationImage
	}
	if req.Location != nil {
		updates[fieldLocation] = *req.Location
	}
	if req.Status != nil {
		updates[fieldStatus] = *req.Status
	}
	if req.FixerID != nil {
		updates[fieldFixerID] = *req.FixerID
	}
	if len(updates) == 0 {
		return p, nil
	}
	if err := s.repo.Update(ctx, postID, updates); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, postID)
}

func (s *service) Delete(ctx context.Context, authorID, postID string) error {
	if _, err := s.ownedPost(ctx, authorID, postID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, postID)
}

func (s *service) ownedPost(ctx context.Context, authorID, postID string) (*domain.DonationPost, error) {
	p, err := s.repo.Get(ctx, postID)
	if err != nil {
		return nil, err
	}
	if p.AuthorID != authorID {
		return nil, fmt.Errorf("only the author can modify this post: %w", domain.ErrForbidden)
	}
	return p, nil
}
