// Package fdtest provides a testify mock of the fraud detector API surface
// shared by the service tests.
package fdtest

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/frauddetector"
	"github.com/stretchr/testify/mock"
)

type MockFraudDetectorAPI struct {
	mock.Mock
}

func (m *MockFraudDetectorAPI) GetVariables(ctx context.Context, params *frauddetector.GetVariablesInput, optFns ...func(*frauddetector.Options)) (*frauddetector.GetVariablesOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*frauddetector.GetVariablesOutput), args.Error(1)
}

func (m *MockFraudDetectorAPI) CreateVariable(ctx context.Context, params *frauddetector.CreateVariableInput, optFns ...func(*frauddetector.Options)) (*frauddetector.CreateVariableOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*frauddetector.CreateVariableOutput), args.Error(1)
}

func (m *MockFraudDetectorAPI) GetLabels(ctx context.Context, params *frauddetector.GetLabelsInput, optFns ...func(*frauddetector.Options)) (*frauddetector.GetLabelsOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*frauddetector.GetLabelsOutput), args.Error(1)
}

func (m *MockFraudDetectorAPI) PutLabel(ctx context.Context, params *frauddetector.PutLabelInput, optFns ...func(*frauddetector.Options)) (*frauddetector.PutLabelOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*frauddetector.PutLabelOutput), args.Error(1)
}

func (m *MockFraudDetectorAPI) GetEntityTypes(ctx context.Context, params *frauddetector.GetEntityTypesInput, optFns ...func(*frauddetector.Options)) (*frauddetector.GetEntityTypesOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*frauddetector.GetEntityTypesOutput), args.Error(1)
}

func (m *MockFraudDetectorAPI) PutEntityType(ctx context.Context, params *frauddetector.PutEntityTypeInput, optFns ...func(*frauddetector.Options)) (*frauddetector.PutEntityTypeOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*frauddetector.PutEntityTypeOutput), args.Error(1)
}

func (m *MockFraudDetectorAPI) GetEventTypes(ctx context.Context, params *frauddetector.GetEventTypesInput, optFns ...func(*frauddetector.Options)) (*frauddetector.GetEventTypesOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*frauddetector.GetEventTypesOutput), args.Error(1)
}

func (m *MockFraudDetectorAPI) PutEventType(ctx context.Context, params *frauddetector.PutEventTypeInput, optFns ...func(*frauddetector.Options)) (*frauddetector.PutEventTypeOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*frauddetector.PutEventTypeOutput), args.Error(1)
}

func (m *MockFraudDetectorAPI) GetOutcomes(ctx context.Context, params *frauddetector.GetOutcomesInput, optFns ...func(*frauddetector.Options)) (*frauddetector.GetOutcomesOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*frauddetector.GetOutcomesOutput), args.Error(1)
}

func (m *MockFraudDetectorAPI) PutOutcome(ctx context.Context, params *frauddetector.PutOutcomeInput, optFns ...func(*frauddetector.Options)) (*frauddetector.PutOutcomeOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*frauddetector.PutOutcomeOutput), args.Error(1)
}

func (m *MockFraudDetectorAPI) GetModels(ctx context.Context, params *frauddetector.GetModelsInput, optFns ...func(*frauddetector.Options)) (*frauddetector.GetModelsOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*frauddetector.GetModelsOutput), args.Error(1)
}

func (m *MockFraudDetectorAPI) CreateModel(ctx context.Context, params *frauddetector.CreateModelInput, optFns ...func(*frauddetector.Options)) (*frauddetector.CreateModelOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*frauddetector.CreateModelOutput), args.Error(1)
}

func (m *MockFraudDetectorAPI) CreateModelVersion(ctx context.Context, params *frauddetector.CreateModelVersionInput, optFns ...func(*frauddetector.Options)) (*frauddetector.CreateModelVersionOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*frauddetector.CreateModelVersionOutput), args.Error(1)
}

func (m *MockFraudDetectorAPI) GetModelVersion(ctx context.Context, params *frauddetector.GetModelVersionInput, optFns ...func(*frauddetector.Options)) (*frauddetector.GetModelVersionOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*frauddetector.GetModelVersionOutput), args.Error(1)
}

func (m *MockFraudDetectorAPI) UpdateModelVersionStatus(ctx context.Context, params *frauddetector.UpdateModelVersionStatusInput, optFns ...func(*frauddetector.Options)) (*frauddetector.UpdateModelVersionStatusOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*frauddetector.UpdateModelVersionStatusOutput), args.Error(1)
}

func (m *MockFraudDetectorAPI) DescribeModelVersions(ctx context.Context, params *frauddetector.DescribeModelVersionsInput, optFns ...func(*frauddetector.Options)) (*frauddetector.DescribeModelVersionsOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*frauddetector.DescribeModelVersionsOutput), args.Error(1)
}

func (m *MockFraudDetectorAPI) GetDetectors(ctx context.Context, params *frauddetector.GetDetectorsInput, optFns ...func(*frauddetector.Options)) (*frauddetector.GetDetectorsOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*frauddetector.GetDetectorsOutput), args.Error(1)
}

func (m *MockFraudDetectorAPI) PutDetector(ctx context.Context, params *frauddetector.PutDetectorInput, optFns ...func(*frauddetector.Options)) (*frauddetector.PutDetectorOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*frauddetector.PutDetectorOutput), args.Error(1)
}

func (m *MockFraudDetectorAPI) DescribeDetector(ctx context.Context, params *frauddetector.DescribeDetectorInput, optFns ...func(*frauddetector.Options)) (*frauddetector.DescribeDetectorOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*frauddetector.DescribeDetectorOutput), args.Error(1)
}

func (m *MockFraudDetectorAPI) GetRules(ctx context.Context, params *frauddetector.GetRulesInput, optFns ...func(*frauddetector.Options)) (*frauddetector.GetRulesOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*frauddetector.GetRulesOutput), args.Error(1)
}

func (m *MockFraudDetectorAPI) CreateRule(ctx context.Context, params *frauddetector.CreateRuleInput, optFns ...func(*frauddetector.Options)) (*frauddetector.CreateRuleOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*frauddetector.CreateRuleOutput), args.Error(1)
}

func (m *MockFraudDetectorAPI) UpdateRuleVersion(ctx context.Context, params *frauddetector.UpdateRuleVersionInput, optFns ...func(*frauddetector.Options)) (*frauddetector.UpdateRuleVersionOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*frauddetector.UpdateRuleVersionOutput), args.Error(1)
}

func (m *MockFraudDetectorAPI) DeleteRule(ctx context.Context, params *frauddetector.DeleteRuleInput, optFns ...func(*frauddetector.Options)) (*frauddetector.DeleteRuleOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*frauddetector.DeleteRuleOutput), args.Error(1)
}

func (m *MockFraudDetectorAPI) CreateDetectorVersion(ctx context.Context, params *frauddetector.CreateDetectorVersionInput, optFns ...func(*frauddetector.Options)) (*frauddetector.CreateDetectorVersionOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*frauddetector.CreateDetectorVersionOutput), args.Error(1)
}

func (m *MockFraudDetectorAPI) UpdateDetectorVersionStatus(ctx context.Context, params *frauddetector.UpdateDetectorVersionStatusInput, optFns ...func(*frauddetector.Options)) (*frauddetector.UpdateDetectorVersionStatusOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*frauddetector.UpdateDetectorVersionStatusOutput), args.Error(1)
}

func (m *MockFraudDetectorAPI) DeleteDetectorVersion(ctx context.Context, params *frauddetector.DeleteDetectorVersionInput, optFns ...func(*frauddetector.Options)) (*frauddetector.DeleteDetectorVersionOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*frauddetector.DeleteDetectorVersionOutput), args.Error(1)
}

func (m *MockFraudDetectorAPI) DeleteDetector(ctx context.Context, params *frauddetector.DeleteDetectorInput, optFns ...func(*frauddetector.Options)) (*frauddetector.DeleteDetectorOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*frauddetector.DeleteDetectorOutput), args.Error(1)
}

func (m *MockFraudDetectorAPI) GetEventPrediction(ctx context.Context, params *frauddetector.GetEventPredictionInput, optFns ...func(*frauddetector.Options)) (*frauddetector.GetEventPredictionOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*frauddetector.GetEventPredictionOutput), args.Error(1)
}
