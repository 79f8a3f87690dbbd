package dynamo

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/vsbank-api/internal/domain"
)

// RegistrationRepo persists users created through registration.
type RegistrationRepo struct {
	client    API
	tableName string
}

func NewRegistrationRepo(client API, tableName string) *RegistrationRepo {
	return &RegistrationRepo{client: client, tableName: tableName}
}

// Put stores u. It fails with domain.ErrConflict if the user ID already exists;
// e-mail and taxpayer ID uniqueness is checked by the caller through the GSIs.
func (r *RegistrationRepo) Put(ctx context.Context, u *domain.RegisteredUser) error {
	item, err := attributevalue.MarshalMap(u)
	if err != nil {
		return fmt.Errorf("marshal registration: %w", err)
	}
	cond, names := notExists(fieldUserID)
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                aws.String(r.tableName),
		Item:                     item,
		ConditionExpression:      cond,
		ExpressionAttributeNames: names,
	})
	var ccf *types.ConditionalCheckFailedException
	if errors.As(err, &ccf) {
		return fmt.Errorf("registration %s exists: %w", u.UserID, domain.ErrConflict)
	}
	return err
}

func (r *RegistrationRepo) GetByEmail(ctx context.Context, email string) (*domain.RegisteredUser, error) {
	return r.queryGSI(ctx, indexEmail, fieldEmail, email)
}

func (r *RegistrationRepo) GetByTaxpayerID(ctx context.Context, taxpayerID string) (*domain.RegisteredUser, error) {
	return r.queryGSI(ctx, indexTaxpayerID, fieldTaxpayerID, taxpayerID)
}

// GetByIdentifier matches identifier against e-mail first, then taxpayer ID.
func (r *RegistrationRepo) GetByIdentifier(ctx context.Context, identifier string) (*domain.RegisteredUser, error) {
	u, err := r.GetByEmail(ctx, identifier)
	if errors.Is(err, domain.ErrNotFound) {
		return r.GetByTaxpayerID(ctx, identifier)
	}
	return u, err
}

func (r *RegistrationRepo) queryGSI(ctx context.Context, index, attr, value string) (*domain.RegisteredUser, error) {
	out, err := r.client.Query(ctx, eqQuery(r.tableName, index, attr, value))
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", index, err)
	}
	if len(out.Items) == 0 {
		return nil, fmt.Errorf("registration not found: %w", domain.ErrNotFound)
	}
	if _, err := stringAttr(out.Items[0], fieldUserID); err != nil {
		return nil, err
	}
	var u domain.RegisteredUser
	if err := attributevalue.UnmarshalMap(out.Items[0], &u); err != nil {
		return nil, err
	}
	return &u, nil
}
