package db

import (
	"context"
	"strings"
	"testing"

	"github.com/CapitalOne-RedFlags/BlueFlag/internal/config"
	"github.com/CapitalOne-RedFlags/BlueFlag/internal/models"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockDynamoDBAPI struct {
	mock.Mock
}

func (m *MockDynamoDBAPI) PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dynamodb.PutItemOutput), args.Error(1)
}

func (m *MockDynamoDBAPI) Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dynamodb.QueryOutput), args.Error(1)
}

func (m *MockDynamoDBAPI) DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dynamodb.DeleteItemOutput), args.Error(1)
}

func ledgerItem(t *testing.T, runID, kind, name, version string) map[string]types.AttributeValue {
	t.Helper()
	resource := models.NewProvisionedResource(runID, kind, name, version, "2025-12-01T00:00:00Z")
	item, err := resource.MarshalDynamoDB()
	assert.NoError(t, err)
	return item
}

type LedgerRepositoryTestSuite struct {
	suite.Suite
	mockDB     *MockDynamoDBAPI
	repository LedgerRepository
}

func (suite *LedgerRepositoryTestSuite) SetupTest() {
	config.LedgerConfig.TableName = "FraudProvisioningLedger"
	config.LedgerConfig.Keys = struct {
		PartitionKey string
		SortKey      string
	}{
		PartitionKey: "RunID",
		SortKey:      "ResourceKey",
	}

	suite.mockDB = new(MockDynamoDBAPI)
	suite.repository = NewLedgerRepository(NewDynamoDBClient(suite.mockDB, config.LedgerConfig.TableName))
}

func (suite *LedgerRepositoryTestSuite) TestRecordResourceRejectsDuplicates() {
	// Arrange
	suite.mockDB.On("PutItem", mock.Anything, mock.MatchedBy(func(input *dynamodb.PutItemInput) bool {
		return strings.Contains(*input.ConditionExpression, "attribute_not_exists(RunID)") &&
			strings.Contains(*input.ConditionExpression, "attribute_not_exists(ResourceKey)")
	})).Return(&dynamodb.PutItemOutput{}, nil).Once()

	resource := models.NewProvisionedResource("test-run", models.KindVariable, "ip_address", "", "2025-12-01T00:00:00Z")

	// Act
	err := suite.repository.RecordResource(context.Background(), resource)

	// Assert
	assert.NoError(suite.T(), err)
	suite.mockDB.AssertExpectations(suite.T())
}

func (suite *LedgerRepositoryTestSuite) TestRecordResourceSurfacesConditionFailure() {
	// Arrange
	suite.mockDB.On("PutItem", mock.Anything, mock.Anything).
		Return(nil, &types.ConditionalCheckFailedException{}).Once()

	resource := models.NewProvisionedResource("test-run", models.KindVariable, "ip_address", "", "2025-12-01T00:00:00Z")

	// Act
	err := suite.repository.RecordResource(context.Background(), resource)

	// Assert
	assert.Error(suite.T(), err)
	assert.Contains(suite.T(), err.Error(), "already exists")
}

func (suite *LedgerRepositoryTestSuite) TestListRunResourcesSortsIntoTeardownOrder() {
	// Arrange: rows come back in creation order; teardown needs the
	// reverse dependency order.
	suite.mockDB.On("Query", mock.Anything, mock.Anything).Return(&dynamodb.QueryOutput{
		Items: []map[string]types.AttributeValue{
			ledgerItem(suite.T(), "test-run", models.KindVariable, "ip_address", ""),
			ledgerItem(suite.T(), "test-run", models.KindModelVersion, "transaction_model", "1.0"),
			ledgerItem(suite.T(), "test-run", models.KindRule, "high_fraud_risk", "1"),
			ledgerItem(suite.T(), "test-run", models.KindDetectorVersion, "transaction_detector", "1"),
			ledgerItem(suite.T(), "test-run", models.KindDetector, "transaction_detector", ""),
		},
	}, nil).Once()

	// Act
	resources, err := suite.repository.ListRunResources(context.Background(), "test-run")

	// Assert
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), resources, 5)

	kinds := make([]string, 0, len(resources))
	for _, resource := range resources {
		kinds = append(kinds, resource.Kind)
	}
	assert.Equal(suite.T(), []string{
		models.KindDetectorVersion,
		models.KindRule,
		models.KindDetector,
		models.KindModelVersion,
		models.KindVariable,
	}, kinds)
}

func (suite *LedgerRepositoryTestSuite) TestListRunResourcesFollowsPagination() {
	// Arrange
	lastKey := map[string]types.AttributeValue{
		"RunID": &types.AttributeValueMemberS{Value: "test-run"},
	}

	suite.mockDB.On("Query", mock.Anything, mock.MatchedBy(func(input *dynamodb.QueryInput) bool {
		return input.ExclusiveStartKey == nil
	})).Return(&dynamodb.QueryOutput{
		Items:            []map[string]types.AttributeValue{ledgerItem(suite.T(), "test-run", models.KindLabel, "fraud", "")},
		LastEvaluatedKey: lastKey,
	}, nil).Once()
	suite.mockDB.On("Query", mock.Anything, mock.MatchedBy(func(input *dynamodb.QueryInput) bool {
		return input.ExclusiveStartKey != nil
	})).Return(&dynamodb.QueryOutput{
		Items: []map[string]types.AttributeValue{ledgerItem(suite.T(), "test-run", models.KindLabel, "legit", "")},
	}, nil).Once()

	// Act
	resources, err := suite.repository.ListRunResources(context.Background(), "test-run")

	// Assert
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), resources, 2)
	suite.mockDB.AssertExpectations(suite.T())
}

func (suite *LedgerRepositoryTestSuite) TestListRunResourcesRequiresRunID() {
	// Act
	_, err := suite.repository.ListRunResources(context.Background(), "")

	// Assert
	assert.Error(suite.T(), err)
	suite.mockDB.AssertNotCalled(suite.T(), "Query", mock.Anything, mock.Anything)
}

func (suite *LedgerRepositoryTestSuite) TestDeleteResourceRecord() {
	// Arrange
	suite.mockDB.On("DeleteItem", mock.Anything, mock.MatchedBy(func(input *dynamodb.DeleteItemInput) bool {
		key := input.Key["ResourceKey"].(*types.AttributeValueMemberS)
		return key.Value == "VARIABLE#ip_address"
	})).Return(&dynamodb.DeleteItemOutput{}, nil).Once()

	// Act
	err := suite.repository.DeleteResourceRecord(context.Background(), "test-run", "VARIABLE#ip_address")

	// Assert
	assert.NoError(suite.T(), err)
	suite.mockDB.AssertExpectations(suite.T())
}

func (suite *LedgerRepositoryTestSuite) TestDeleteResourceRecordRequiresKeys() {
	// Act
	err := suite.repository.DeleteResourceRecord(context.Background(), "test-run", "")

	// Assert
	assert.Error(suite.T(), err)
	suite.mockDB.AssertNotCalled(suite.T(), "DeleteItem", mock.Anything, mock.Anything)
}

func TestLedgerRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerRepositoryTestSuite))
}
