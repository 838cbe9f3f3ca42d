package dynamo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shop-access-core/internal/domain"
)

// CodeRepo is the durable verification code backend. PK: email, so PutItem
// naturally replaces any live code for the same address, and the conditional
// DeleteItem in VerifyAndConsume makes the redeem atomic per email even
// across multiple application instances.
type CodeRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewCodeRepo(client *dynamodb.Client, tableName string) *CodeRepo {
	return &CodeRepo{client: client, tableName: tableName}
}

func (r *CodeRepo) Put(ctx context.Context, email, code string, ttl time.Duration) error {
	now := time.Now()
	item, err := attributevalue.MarshalMap(&domain.VerificationCode{
		Email:     email,
		Code:      code,
		CreatedAt: now.Unix(),
		ExpiresAt: now.Add(ttl).Unix(),
	})
	if err != nil {
		return fmt.Errorf("marshal verification code: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

// VerifyAndConsume deletes the item only if the supplied code matches and the
// expiry has not passed. The condition failing covers all three rejection
// cases — no code, expired, wrong guess — and a wrong guess leaves the item
// in place for further attempts. Expired items are reclaimed by table TTL.
func (r *CodeRepo) VerifyAndConsume(ctx context.Context, email, supplied string) (bool, error) {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 strKey("email", email),
		ConditionExpression: aws.String("code = :code AND expires_at > :now"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":code": &types.AttributeValueMemberS{Value: supplied},
			":now":  &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", time.Now().Unix())},
		},
	})
	if err != nil {
		var failed *types.ConditionalCheckFailedException
		if errors.As(err, &failed) {
			return false, nil
		}
		return false, fmt.Errorf("consume verification code: %w", err)
	}
	return true, nil
}
