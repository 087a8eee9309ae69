package dynamo

import (
	"context"

	"github.com/Bug-Bust3rs/CARE-Community-Aid-and-Resource-Exchange/internal/domain"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// DonationPostRepo provides typed DynamoDB operations for the donation_posts table.
type DonationPostRepo struct {
	t table[domain.DonationPost]
}

func NewDonationPostRepo(client *dynamodb.Client, tableName string) *DonationPostRepo {
	return &DonationPostRepo{t: table[domain.DonationPost]{client: client, name: tableName, pk: fieldPostID, entity: "donation post"}}
}

func (r *DonationPostRepo) Put(ctx context.Context, p *domain.DonationPost) error {
	return r.t.put(ctx, p)
}

func (r *DonationPostRepo) Get(ctx context.Context, postID string) (*domain.DonationPost, error) {
	return r.t.get(ctx, postID)
}

func (r *DonationPostRepo) Update(ctx context.Context, postID string, updates map[string]interface{}) error {
	return r.t.update(ctx, postID, updates)
}

func (r *DonationPostRepo) Delete(ctx context.Context, postID string) error {
	return r.t.delete(ctx, postID)
}

func (r *DonationPostRepo) ScanPage(ctx context.Context, limit int32, cursor string) ([]domain.DonationPost, string, error) {
	return r.t.scanPage(ctx, limit, cursor)
}

func (r *DonationPostRepo) ListByAuthor(ctx context.Context, authorID string) ([]domain.DonationPost, error) {
	return r.t.queryIndex(ctx, indexAuthorID, fieldAuthorID, authorID)
}

// PetPostRepo provides typed DynamoDB operations for the pet_posts table.
type PetPostRepo struct {
	t table[domain.PetPost]
}

func NewPetPostRepo(client *dynamodb.Client, tableName string) *PetPostRepo {
	return &PetPostRepo{t: table[domain.PetPost]{client: client, name: tableName, pk: fieldPostID, entity: "pet post"}}
}

func (r *PetPostRepo) Put(ctx context.Context, p *domain.PetPost) error {
	return r.t.put(ctx, p)
}

func (r *PetPostRepo) Get(ctx context.Context, postID string) (*domain.PetPost, error) {
	return r.t.get(ctx, postID)
}

func (r *PetPostRepo) Update(ctx context.Context, postID string, updates map[string]interface{}) error {
	return r.t.update(ctx, postID, updates)
}

func (r *PetPostRepo) Delete(ctx context.Context, postID string) error {
	return r.t.delete(ctx, postID)
}

func (r *PetPostRepo) ScanPage(ctx context.Context, limit int32, cursor string) ([]domain.PetPost, string, error) {
	return r.t.scanPage(ctx, limit, cursor)
}

func (r *PetPostRepo) ListByAuthor(ctx context.Context, authorID string) ([]domain.PetPost, error) {
	return r.t.queryIndex(ctx, indexAuthorID, fieldAuthorID, authorID)
}
