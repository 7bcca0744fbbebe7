package events

import (
	"errors"
	"testing"

	"github.com/CapitalOne-RedFlags/BlueFlag/internal/models"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockSNSMessenger struct {
	mock.Mock
}

func (m *MockSNSMessenger) SendEmailAlert(event models.EventRecord, result models.PredictionResult) (*sns.PublishOutput, error) {
	args := m.Called(event, result)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sns.PublishOutput), args.Error(1)
}

func (m *MockSNSMessenger) SendTextAlert(event models.EventRecord, result models.PredictionResult, phoneNumber string) error {
	args := m.Called(event, result, phoneNumber)
	return args.Error(0)
}

type EventDispatcherTestSuite struct {
	suite.Suite
	mockMessenger *MockSNSMessenger
	event         models.EventRecord
	result        models.PredictionResult
}

func (suite *EventDispatcherTestSuite) SetupTest() {
	suite.mockMessenger = new(MockSNSMessenger)
	suite.event = models.EventRecord{
		EventID:        "evt-1",
		EventTimestamp: "2025-11-30T10:00:00Z",
		EntityID:       "cust-42",
		EntityType:     "customer",
		Variables:      map[string]string{"ip_address": "198.51.100.7"},
	}
	suite.result = models.PredictionResult{
		EventID:  "evt-1",
		Score:    912,
		Outcomes: []string{"verify_customer"},
	}
}

func (suite *EventDispatcherTestSuite) TestDispatchPublishesAndTextsReviewer() {
	// Arrange
	suite.mockMessenger.On("SendEmailAlert", suite.event, suite.result).
		Return(&sns.PublishOutput{}, nil).Once()
	suite.mockMessenger.On("SendTextAlert", suite.event, suite.result, "+16085550123").
		Return(nil).Once()

	dispatcher := NewBfEventDispatcher(suite.mockMessenger, "+16085550123")

	// Act
	err := dispatcher.DispatchFraudAlertEvent(suite.event, suite.result)

	// Assert
	assert.NoError(suite.T(), err)
	suite.mockMessenger.AssertExpectations(suite.T())
}

func (suite *EventDispatcherTestSuite) TestDispatchSkipsTextWithoutReviewerNumber() {
	// Arrange
	suite.mockMessenger.On("SendEmailAlert", suite.event, suite.result).
		Return(&sns.PublishOutput{}, nil).Once()

	dispatcher := NewBfEventDispatcher(suite.mockMessenger, "")

	// Act
	err := dispatcher.DispatchFraudAlertEvent(suite.event, suite.result)

	// Assert
	assert.NoError(suite.T(), err)
	suite.mockMessenger.AssertNotCalled(suite.T(), "SendTextAlert", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *EventDispatcherTestSuite) TestDispatchSurfacesPublishFailure() {
	// Arrange
	suite.mockMessenger.On("SendEmailAlert", suite.event, suite.result).
		Return(nil, errors.New("topic unavailable")).Once()

	dispatcher := NewBfEventDispatcher(suite.mockMessenger, "+16085550123")

	// Act
	err := dispatcher.DispatchFraudAlertEvent(suite.event, suite.result)

	// Assert
	assert.Error(suite.T(), err)
	suite.mockMessenger.AssertNotCalled(suite.T(), "SendTextAlert", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *EventDispatcherTestSuite) TestDispatchSurfacesTextFailure() {
	// Arrange
	suite.mockMessenger.On("SendEmailAlert", suite.event, suite.result).
		Return(&sns.PublishOutput{}, nil).Once()
	suite.mockMessenger.On("SendTextAlert", suite.event, suite.result, "+16085550123").
		Return(errors.New("sms gateway down")).Once()

	dispatcher := NewBfEventDispatcher(suite.mockMessenger, "+16085550123")

	// Act
	err := dispatcher.DispatchFraudAlertEvent(suite.event, suite.result)

	// Assert
	assert.Error(suite.T(), err)
}

func TestEventDispatcherTestSuite(t *testing.T) {
	suite.Run(t, new(EventDispatcherTestSuite))
}
