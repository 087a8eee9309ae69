package dynamo

import (
	"context"
	"fmt"
	"time"

	"github.com/Bug-Bust3rs/CARE-Community-Aid-and-Resource-Exchange/internal/domain"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// AccountRepo provides typed DynamoDB operations for accounts and their email markers.
// Writes that touch more than one item go through TransactWriteItems so the
// account, its email marker and its verification token never disagree.
type AccountRepo struct {
	client      *dynamodb.Client
	accounts    string
	emails      string
	tokensTable string
}

func NewAccountRepo(client *dynamodb.Client, accountsTable, emailsTable, tokensTable string) *AccountRepo {
	return &AccountRepo{client: client, accounts: accountsTable, emails: emailsTable, tokensTable: tokensTable}
}

// CreateWithToken writes the account, its email marker and its first verification token atomically.
// Returns domain.ErrConflict when the email (or account id) is already taken.
func (r *AccountRepo) CreateWithToken(ctx context.Context, a *domain.Account, t *domain.VerificationToken) error {
	accountItem, err := attributevalue.MarshalMap(a)
	if err != nil {
		return fmt.Errorf("marshal account: %w", err)
	}
	emailItem, err := attributevalue.MarshalMap(domain.AccountEmail{Email: a.Email, AccountID: a.AccountID})
	if err != nil {
		return fmt.Errorf("marshal account email: %w", err)
	}
	tokenItem, err := attributevalue.MarshalMap(t)
	if err != nil {
		return fmt.Errorf("marshal verification token: %w", err)
	}

	_, err = r.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Put: &types.Put{
				TableName:           aws.String(r.accounts),
				Item:                accountItem,
				ConditionExpression: aws.String("attribute_not_exists(" + fieldAccountID + ")"),
			}},
			{Put: &types.Put{
				TableName:           aws.String(r.emails),
				Item:                emailItem,
				ConditionExpression: aws.String("attribute_not_exists(" + fieldEmail + ")"),
			}},
			{Put: &types.Put{
				TableName: aws.String(r.tokensTable),
				Item:      tokenItem,
			}},
		},
	})
	if err != nil {
		if conditionFailed(err) {
			return fmt.Errorf("email already registered: %w", domain.ErrConflict)
		}
		return fmt.Errorf("create account: %w", err)
	}
	return nil
}

func (r *AccountRepo) Get(ctx context.Context, accountID string) (*domain.Account, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.accounts),
		Key:            strKey(fieldAccountID, accountID),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("account not found: %w", domain.ErrNotFound)
	}
	var a domain.Account
	if err := attributevalue.UnmarshalMap(out.Item, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// GetByEmail resolves the email marker and then the account, both with strongly consistent reads.
// email must already be normalized.
func (r *AccountRepo) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.emails),
		Key:            strKey(fieldEmail, email),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("account not found: %w", domain.ErrNotFound)
	}
	var marker domain.AccountEmail
	if err := attributevalue.UnmarshalMap(out.Item, &marker); err != nil {
		return nil, err
	}
	return r.Get(ctx, marker.AccountID)
}

// MarkVerified flips is_verified and consumes the EMAIL_VERIFY token in one transaction.
// Returns domain.ErrConflict if the token was consumed or superseded concurrently.
func (r *AccountRepo) MarkVerified(ctx context.Context, accountID, tokenHash string) error {
	return r.updateAndConsume(ctx, accountID, domain.PurposeEmailVerify, tokenHash, map[string]interface{}{
		fieldIsVerified: true,
	})
}

// ResetPassword stores the new password hash and consumes the reset OTP in one transaction.
// Returns domain.ErrConflict if the OTP was consumed or superseded concurrently.
func (r *AccountRepo) ResetPassword(ctx context.Context, accountID, passwordHash, otpHash string) error {
	return r.updateAndConsume(ctx, accountID, domain.PurposePasswordResetOTP, otpHash, map[string]interface{}{
		fieldPasswordHash: passwordHash,
	})
}

func (r *AccountRepo) updateAndConsume(ctx context.Context, accountID string, purpose domain.TokenPurpose, tokenHash string, updates map[string]interface{}) error {
	updates[fieldUpdatedAt] = time.Now().UTC()
	ue, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}

	_, err = r.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Update: &types.Update{
				TableName:                 aws.String(r.accounts),
				Key:                       strKey(fieldAccountID, accountID),
				UpdateExpression:          aws.String(ue.Expr),
				ConditionExpression:       aws.String("attribute_exists(" + fieldAccountID + ")"),
				ExpressionAttributeNames:  ue.Names,
				ExpressionAttributeValues: ue.Values,
			}},
			{Delete: &types.Delete{
				TableName:                aws.String(r.tokensTable),
				Key:                      tokenKey(accountID, purpose),
				ConditionExpression:      aws.String("#th = :th"),
				ExpressionAttributeNames: map[string]string{"#th": fieldTokenHash},
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":th": &types.AttributeValueMemberS{Value: tokenHash},
				},
			}},
		},
	})
	if err != nil {
		if conditionFailed(err) {
			return fmt.Errorf("token already consumed: %w", domain.ErrConflict)
		}
		return fmt.Errorf("consume %s token: %w", purpose, err)
	}
	return nil
}
