package db

import (
	"context"
	"fmt"
	"log"
	"slices"

	"github.com/CapitalOne-RedFlags/BlueFlag/internal/config"
	"github.com/CapitalOne-RedFlags/BlueFlag/internal/models"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// LedgerRepository is the data access layer for the provisioning ledger.
// Every resource a run creates is recorded so teardown knows what exists
// without re-listing the whole account.
type LedgerRepository interface {
	RecordResource(ctx context.Context, resource *models.ProvisionedResource) error
	ListRunResources(ctx context.Context, runID string) ([]*models.ProvisionedResource, error)
	DeleteResourceRecord(ctx context.Context, runID, resourceKey string) error
}

type DynamoLedgerRepository struct {
	DB *DynamoDBClient
}

// NewLedgerRepository initializes a new repository instance.
func NewLedgerRepository(db *DynamoDBClient) LedgerRepository {
	return &DynamoLedgerRepository{DB: db}
}

// RecordResource writes one ledger row for a freshly created resource.
func (r *DynamoLedgerRepository) RecordResource(ctx context.Context, resource *models.ProvisionedResource) error {
	item, err := resource.MarshalDynamoDB()
	if err != nil {
		return fmt.Errorf("failed to marshal ledger record: %w", err)
	}

	if _, err := r.DB.PutItem(ctx, item); err != nil {
		return fmt.Errorf("failed to record %s %s: %w", resource.Kind, resource.Name, err)
	}

	log.Printf("Ledger: recorded %s %s", resource.Kind, resource.ResourceKey)
	return nil
}

// ListRunResources returns every resource a run created, sorted into
// teardown order (versions before containers, rules before models).
func (r *DynamoLedgerRepository) ListRunResources(ctx context.Context, runID string) ([]*models.ProvisionedResource, error) {
	if runID == "" {
		return nil, fmt.Errorf("%s cannot be empty", config.LedgerConfig.Keys.PartitionKey)
	}

	items, err := r.DB.QueryByPartitionKey(ctx, runID)
	if err != nil {
		return nil, err
	}

	var resources []*models.ProvisionedResource
	for _, item := range items {
		resource, err := models.UnmarshalLedgerItem(item)
		if err != nil {
			return nil, fmt.Errorf("failed to unmarshal ledger record: %w", err)
		}
		resources = append(resources, resource)
	}

	slices.SortStableFunc(resources, func(a, b *models.ProvisionedResource) int {
		return slices.Index(models.TeardownOrder, a.Kind) - slices.Index(models.TeardownOrder, b.Kind)
	})

	return resources, nil
}

// DeleteResourceRecord removes a ledger row once its resource is torn down.
func (r *DynamoLedgerRepository) DeleteResourceRecord(ctx context.Context, runID, resourceKey string) error {
	if runID == "" {
		return fmt.Errorf("%s cannot be empty", config.LedgerConfig.Keys.PartitionKey)
	}
	if resourceKey == "" {
		return fmt.Errorf("%s cannot be empty", config.LedgerConfig.Keys.SortKey)
	}

	key := map[string]types.AttributeValue{
		config.LedgerConfig.Keys.PartitionKey: &types.AttributeValueMemberS{Value: runID},
		config.LedgerConfig.Keys.SortKey:      &types.AttributeValueMemberS{Value: resourceKey},
	}

	if _, err := r.DB.DeleteItem(ctx, key); err != nil {
		return err
	}

	return nil
}
