package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/CapitalOne-RedFlags/BlueFlag/internal/config"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoDBAPI is the subset of the DynamoDB client the ledger uses.
type DynamoDBAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

// DynamoDBClient wraps the AWS SDK client
type DynamoDBClient struct {
	Client    DynamoDBAPI
	TableName string
}

func NewDynamoDBClient(client DynamoDBAPI, tableName string) *DynamoDBClient {
	return &DynamoDBClient{
		Client:    client,
		TableName: tableName,
	}
}

// PutItem inserts an item, rejecting duplicates on the configured keys.
func (d *DynamoDBClient) PutItem(ctx context.Context, item map[string]types.AttributeValue) (*dynamodb.PutItemOutput, error) {
	output, err := d.Client.PutItem(ctx, &dynamodb.PutItemInput{
		Item:      item,
		TableName: aws.String(d.TableName),
		ConditionExpression: aws.String(fmt.Sprintf(
			"attribute_not_exists(%s) AND attribute_not_exists(%s)",
			config.LedgerConfig.Keys.PartitionKey,
			config.LedgerConfig.Keys.SortKey,
		)),
	})

	// Handle duplicate record error
	var conditionCheckErr *types.ConditionalCheckFailedException
	if err != nil {
		if errors.As(err, &conditionCheckErr) {
			return nil, fmt.Errorf("ledger record already exists")
		}
		return nil, fmt.Errorf("failed to put item: %w", err)
	}

	return output, nil
}

// QueryByPartitionKey returns every item under one partition key value.
func (d *DynamoDBClient) QueryByPartitionKey(ctx context.Context, value string) ([]map[string]types.AttributeValue, error) {
	keyCond := expression.Key(config.LedgerConfig.Keys.PartitionKey).Equal(expression.Value(value))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build query expression: %w", err)
	}

	var items []map[string]types.AttributeValue
	var lastKey map[string]types.AttributeValue

	for {
		result, err := d.Client.Query(ctx, &dynamodb.QueryInput{
			TableName:                 aws.String(d.TableName),
			KeyConditionExpression:    expr.KeyCondition(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
			ExclusiveStartKey:         lastKey,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to query items: %w", err)
		}

		items = append(items, result.Items...)

		if result.LastEvaluatedKey == nil {
			break
		}
		lastKey = result.LastEvaluatedKey
	}

	return items, nil
}

func (d *DynamoDBClient) DeleteItem(ctx context.Context, key map[string]types.AttributeValue) (*dynamodb.DeleteItemOutput, error) {
	result, err := d.Client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: &d.TableName,
		Key:       key,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to delete item from DynamoDB: %w", err)
	}
	return result, nil
}
