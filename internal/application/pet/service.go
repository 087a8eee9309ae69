package pet

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
	fieldPetName     = "pet_name"
	fieldSpecies     = "species"
	fieldBreed       = "breed"
	fieldAge         = "age"
	fieldDescription = "description"
	fieldPetImage    = "pet_image"
	fieldLocation    = "location"
	fieldStatus      = "status"
	fieldAdopterID   = "adopter_id"
)

const defaultPageSize = 50

type Service interface {
	List(ctx context.Context, limit int, cursor string) ([]domain.PetPost, string, error)
	ListByAuthor(ctx context.Context, authorID string) ([]domain.PetPost, error)
	Get(ctx context.Context, postID string) (*domain.PetPost, error)
	Create(ctx context.Context, authorID string, req domain.CreatePetPostRequest) (*domain.PetPost, error)
	Update(ctx context.Context, authorID, postID string, req domain.UpdatePetPostRequest) (*domain.PetPost, error)
	Delete(ctx context.Context, authorID, postID string) error
}

type postStore interface {
	Put(ctx context.Context, p *domain.PetPost) error
	Get(ctx context.Context, postID string) (*domain.PetPost, error)
	Update(ctx context.Context, postID string, updates map[string]interface{}) error
	Delete(ctx context.Context, postID string) error
	ScanPage(ctx context.Context, limit int32, cursor string) ([]domain.PetPost, string, error)
	ListByAuthor(ctx context.Context, authorID string) ([]domain.PetPost, error)
}

type service struct {
	repo postStore
}

func NewService(repo postStore) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context, limit int, cursor string) ([]domain.PetPost, string, error) {
	if limit < 1 {
		limit = defaultPageSize
	}
	return s.repo.ScanPage(ctx, int32(limit), cursor)
}

func (s *service) ListByAuthor(ctx context.Context, authorID string) ([]domain.PetPost, error) {
	return s.repo.ListByAuthor(ctx, authorID)
}

func (s *service) Get(ctx context.Context, postID string) (*domain.PetPost, error) {
	return s.repo.Get(ctx, postID)
}

func (s *service) Create(ctx context.Context, authorID string, req domain.CreatePetPostRequest) (*domain.PetPost, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	status := strings.TrimSpace(req.Status)
	if status == "" {
		status = domain.PostStatusOpen
	}
	now := time.Now().UTC()
	p := &domain.PetPost{
		PostID:      id.New(),
		PetName:     req.PetName,
		Species:     req.Species,
		Breed:       req.Breed,
		Age:         req.Age,
		Description: req.Description,
		PetImage:    req.PetImage,
		AuthorID:    authorID,
		Location:    req.Location,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Put(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) Update(ctx context.Context, authorID, postID string, req domain.UpdatePetPostRequest) (*domain.PetPost, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	p, err := s.repo.Get(ctx, postID)
	if err != nil {
		return nil, err
	}
	if p.AuthorID != authorID {
		return nil, fmt.Errorf("only the author can modify this post: %w", domain.ErrForbidden)
	}
	updates := map[string]interface{}{}
	if req.PetName != nil {
		updates[fieldPetName] = *req.PetName
	}
	if req.Species != nil {
		updates[fieldSpecies] = *req.Species
	}
	if req.Breed != nil {
		updates[fieldBreed] = *req.Breed
	}
	if req.Age != nil {
		updates[fieldAge] = *req.Age
	}
	if req.Description != nil {
		updates[fieldDescription] = *req.Description
	}
	if req.PetImage != nil {
		updates[fieldPetImage] = *req.PetImage
	}
	if req.Location != nil {
		updates[fieldLocation] = *req.Location
	}
	if req.Status != nil {
		updates[fieldStatus] = *req.Status
	}
	if req.AdopterID != nil {
		updates[fieldAdopterID] = *req.AdopterID
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
	p, err := s.repo.Get(ctx, postID)
	if err != nil {
		return err
	}
	if p.AuthorID != authorID {
		return fmt.Errorf("only the author can delete this post: %w", domain.ErrForbidden)
	}
	return s.repo.Delete(ctx, postID)
}
