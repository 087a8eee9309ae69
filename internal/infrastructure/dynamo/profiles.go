package dynamo

import (
	"context"

	"github.com/Bug-Bust3rs/CARE-Community-Aid-and-Resource-Exchange/internal/domain"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// ProfileRepo provides typed DynamoDB operations for the profiles table. PK: account_id.
type ProfileRepo struct {
	t table[domain.Profile]
}

func NewProfileRepo(client *dynamodb.Client, tableName string) *ProfileRepo {
	return &ProfileRepo{t: table[domain.Profile]{client: client, name: tableName, pk: fieldAccountID, entity: "profile"}}
}

// Put creates or replaces the profile.
func (r *ProfileRepo) Put(ctx context.Context, p *domain.Profile) error {
	return r.t.put(ctx, p)
}

func (r *ProfileRepo) Get(ctx context.Context, accountID string) (*domain.Profile, error) {
	return r.t.get(ctx, accountID)
}

func (r *ProfileRepo) ScanPage(ctx context.Context, limit int32, cursor string) ([]domain.Profile, string, error) {
	return r.t.scanPage(ctx, limit, cursor)
}
