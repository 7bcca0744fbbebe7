package dataset

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockS3Client struct {
	mock.Mock
}

func (m *MockS3Client) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.GetObjectOutput), args.Error(1)
}

func (m *MockS3Client) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.PutObjectOutput), args.Error(1)
}

func (m *MockS3Client) HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.HeadObjectOutput), args.Error(1)
}

const sampleCSV = `EVENT_TIMESTAMP,ip_address,email_address,EVENT_LABEL,LABEL_TIMESTAMP
2025-11-30T10:00:00Z,192.0.2.10,alice@example.com,legit,2025-12-01T00:00:00Z
2025-11-30T11:00:00Z,192.0.2.11,bob@example.com,legit,2025-12-01T00:00:00Z
2025-11-30T12:00:00Z,198.51.100.7,mallory@example.com,fraud,2025-12-01T00:00:00Z
`

type DatasetServiceTestSuite struct {
	suite.Suite
	mockS3  *MockS3Client
	service *BfDatasetService
}

func (suite *DatasetServiceTestSuite) SetupTest() {
	suite.mockS3 = new(MockS3Client)
	suite.service = NewBfDatasetService(suite.mockS3, "training-bucket", "training/data.csv")
}

func (suite *DatasetServiceTestSuite) TestDataLocation() {
	assert.Equal(suite.T(), "s3://training-bucket/training/data.csv", suite.service.DataLocation())
}

func (suite *DatasetServiceTestSuite) TestEnsureUploadedSkipsExistingObject() {
	// Arrange
	suite.mockS3.On("HeadObject", mock.Anything, mock.Anything).
		Return(&s3.HeadObjectOutput{}, nil).Once()

	// Act
	err := suite.service.EnsureUploaded(context.Background(), "")

	// Assert
	assert.NoError(suite.T(), err)
	suite.mockS3.AssertNotCalled(suite.T(), "PutObject", mock.Anything, mock.Anything)
}

func (suite *DatasetServiceTestSuite) TestEnsureUploadedFailsWithoutLocalFallback() {
	// Arrange
	suite.mockS3.On("HeadObject", mock.Anything, mock.Anything).
		Return(nil, errors.New("not found")).Once()

	// Act
	err := suite.service.EnsureUploaded(context.Background(), "")

	// Assert
	assert.Error(suite.T(), err)
	suite.mockS3.AssertNotCalled(suite.T(), "PutObject", mock.Anything, mock.Anything)
}

func (suite *DatasetServiceTestSuite) TestFetchProfileReadsObject() {
	// Arrange
	suite.mockS3.On("GetObject", mock.Anything, mock.MatchedBy(func(input *s3.GetObjectInput) bool {
		return *input.Bucket == "training-bucket" && *input.Key == "training/data.csv"
	})).Return(&s3.GetObjectOutput{
		Body: io.NopCloser(strings.NewReader(sampleCSV)),
	}, nil).Once()

	// Act
	profile, err := suite.service.FetchProfile(context.Background())

	// Assert
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 3, profile.RowCount)
	assert.Equal(suite.T(), 2, profile.LabelCounts["legit"])
	assert.Equal(suite.T(), 1, profile.LabelCounts["fraud"])
}

func TestDatasetServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DatasetServiceTestSuite))
}

func TestBuildProfileCountsRowsAndLabels(t *testing.T) {
	profile, err := BuildProfile(strings.NewReader(sampleCSV))

	assert.NoError(t, err)
	assert.Equal(t, 3, profile.RowCount)
	assert.Equal(t, map[string]int{"legit": 2, "fraud": 1}, profile.LabelCounts)
	assert.Equal(t, []string{"EVENT_TIMESTAMP", "ip_address", "email_address", "EVENT_LABEL", "LABEL_TIMESTAMP"}, profile.Headers)
}

func TestBuildProfileRejectsEmptyInput(t *testing.T) {
	_, err := BuildProfile(strings.NewReader(""))

	assert.Error(t, err)
}

func TestVariableHeadersStripReservedColumns(t *testing.T) {
	profile := &Profile{
		Headers: []string{"EVENT_TIMESTAMP", "ip_address", "email_address", "EVENT_LABEL", "LABEL_TIMESTAMP", "ENTITY_ID"},
	}

	assert.Equal(t, []string{"ip_address", "email_address"}, profile.VariableHeaders())
}

func TestValidateHeaders(t *testing.T) {
	headers := []string{"EVENT_TIMESTAMP", "ip_address", "email_address", "EVENT_LABEL"}

	err := ValidateHeaders(headers, []string{"ip_address", "email_address"})

	assert.NoError(t, err)
}

func TestValidateHeadersRequiresTimestampColumn(t *testing.T) {
	headers := []string{"ip_address", "EVENT_LABEL"}

	err := ValidateHeaders(headers, []string{"ip_address"})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "EVENT_TIMESTAMP")
}

func TestValidateHeadersRequiresLabelColumn(t *testing.T) {
	headers := []string{"EVENT_TIMESTAMP", "ip_address"}

	err := ValidateHeaders(headers, []string{"ip_address"})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "EVENT_LABEL")
}

func TestValidateHeadersRejectsUnregisteredColumn(t *testing.T) {
	headers := []string{"EVENT_TIMESTAMP", "ip_address", "billing_zip", "EVENT_LABEL"}

	err := ValidateHeaders(headers, []string{"ip_address"})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "billing_zip")
}
