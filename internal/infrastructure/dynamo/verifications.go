package dynamo

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Bug-Bust3rs/CARE-Community-Aid-and-Resource-Exchange/internal/domain"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// VerificationRepo manages email verification tokens and password reset OTPs.
// PK: account_id, SK: purpose ("EMAIL_VERIFY" | "PASSWORD_RESET_OTP")
type VerificationRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewVerificationRepo(client *dynamodb.Client, tableName string) *VerificationRepo {
	return &VerificationRepo{client: client, tableName: tableName}
}

// Put creates the token, superseding any previous token of the same purpose for the account.
func (r *VerificationRepo) Put(ctx context.Context, t *domain.VerificationToken) error {
	item, err := attributevalue.MarshalMap(t)
	if err != nil {
		return fmt.Errorf("marshal verification token: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *VerificationRepo) Get(ctx context.Context, accountID string, purpose domain.TokenPurpose) (*domain.VerificationToken, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            tokenKey(accountID, purpose),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("verification token not found: %w", domain.ErrNotFound)
	}
	var t domain.VerificationToken
	if err := attributevalue.UnmarshalMap(out.Item, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// GetByHash finds a token of the given purpose by the hash of its raw value.
func (r *VerificationRepo) GetByHash(ctx context.Context, tokenHash string, purpose domain.TokenPurpose) (*domain.VerificationToken, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(indexTokenHash),
		KeyConditionExpression: aws.String("#h = :h"),
		FilterExpression:       aws.String("#p = :p"),
		ExpressionAttributeNames: map[string]string{
			"#h": fieldTokenHash,
			"#p": fieldPurpose,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":h": &types.AttributeValueMemberS{Value: tokenHash},
			":p": &types.AttributeValueMemberS{Value: string(purpose)},
		},
	})
	if err != nil {
		return nil, err
	}
	if len(out.Items) == 0 {
		return nil, fmt.Errorf("verification token not found: %w", domain.ErrNotFound)
	}
	var t domain.VerificationToken
	if err := attributevalue.UnmarshalMap(out.Items[0], &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// Delete removes the token only if it still carries tokenHash, so a token that was
// superseded in the meantime survives. A missing or superseded token is not an error.
func (r *VerificationRepo) Delete(ctx context.Context, accountID string, purpose domain.TokenPurpose, tokenHash string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:                aws.String(r.tableName),
		Key:                      tokenKey(accountID, purpose),
		ConditionExpression:      aws.String("#th = :th"),
		ExpressionAttributeNames: map[string]string{"#th": fieldTokenHash},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":th": &types.AttributeValueMemberS{Value: tokenHash},
		},
	})
	if err != nil && !conditionFailed(err) {
		return err
	}
	return nil
}

// RecordFailedAttempt atomically increments the attempt counter of the token that still
// carries tokenHash and returns the new count. A missing or superseded token yields domain.ErrNotFound.
func (r *VerificationRepo) RecordFailedAttempt(ctx context.Context, accountID string, purpose domain.TokenPurpose, tokenHash string) (int, error) {
	out, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 tokenKey(accountID, purpose),
		UpdateExpression:    aws.String("ADD #n :one"),
		ConditionExpression: aws.String("#th = :th"),
		ExpressionAttributeNames: map[string]string{
			"#n":  fieldAttempts,
			"#th": fieldTokenHash,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":one": &types.AttributeValueMemberN{Value: "1"},
			":th":  &types.AttributeValueMemberS{Value: tokenHash},
		},
		ReturnValues: types.ReturnValueUpdatedNew,
	})
	if err != nil {
		if conditionFailed(err) {
			return 0, fmt.Errorf("verification token not found: %w", domain.ErrNotFound)
		}
		return 0, err
	}
	var updated struct {
		Attempts int `dynamodbav:"attempts"`
	}
	if err := attributevalue.UnmarshalMap(out.Attributes, &updated); err != nil {
		return 0, err
	}
	return updated.Attempts, nil
}

// PurgeExpired deletes every token whose expires_at is at or before now and returns how many were removed.
// Each delete is conditioned on the expiry so a token refreshed mid-sweep is kept.
func (r *VerificationRepo) PurgeExpired(ctx context.Context, now time.Time) (int, error) {
	cutoff := &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", now.Unix())}
	paginator := dynamodb.NewScanPaginator(r.client, &dynamodb.ScanInput{
		TableName:                aws.String(r.tableName),
		FilterExpression:         aws.String("#e <= :now"),
		ProjectionExpression:     aws.String("#a, #p"),
		ExpressionAttributeNames: map[string]string{"#e": fieldExpiresAt, "#a": fieldAccountID, "#p": fieldPurpose},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":now": cutoff,
		},
	})

	purged := 0
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return purged, fmt.Errorf("scan expired tokens: %w", err)
		}
		var keys []domain.VerificationToken
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &keys); err != nil {
			return purged, err
		}
		for _, k := range keys {
			_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
				TableName:                aws.String(r.tableName),
				Key:                      tokenKey(k.AccountID, k.Purpose),
				ConditionExpression:      aws.String("#e <= :now"),
				ExpressionAttributeNames: map[string]string{"#e": fieldExpiresAt},
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":now": cutoff,
				},
			})
			if err != nil {
				if conditionFailed(err) {
					continue
				}
				slog.Warn("could not delete expired token", "account_id", k.AccountID, "purpose", k.Purpose, "err", err)
				continue
			}
			purged++
		}
	}
	return purged, nil
}
