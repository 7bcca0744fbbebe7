package frauddetector

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/frauddetector"
)

// FraudDetectorAPI is the subset of the Amazon Fraud Detector client this
// tool drives. Services depend on the interface so tests can mock the
// remote service entirely.
type FraudDetectorAPI interface {
	GetVariables(ctx context.Context, params *frauddetector.GetVariablesInput, optFns ...func(*frauddetector.Options)) (*frauddetector.GetVariablesOutput, error)
	CreateVariable(ctx context.Context, params *frauddetector.CreateVariableInput, optFns ...func(*frauddetector.Options)) (*frauddetector.CreateVariableOutput, error)

	GetLabels(ctx context.Context, params *frauddetector.GetLabelsInput, optFns ...func(*frauddetector.Options)) (*frauddetector.GetLabelsOutput, error)
	PutLabel(ctx context.Context, params *frauddetector.PutLabelInput, optFns ...func(*frauddetector.Options)) (*frauddetector.PutLabelOutput, error)

	GetEntityTypes(ctx context.Context, params *frauddetector.GetEntityTypesInput, optFns ...func(*frauddetector.Options)) (*frauddetector.GetEntityTypesOutput, error)
	PutEntityType(ctx context.Context, params *frauddetector.PutEntityTypeInput, optFns ...func(*frauddetector.Options)) (*frauddetector.PutEntityTypeOutput, error)

	GetEventTypes(ctx context.Context, params *frauddetector.GetEventTypesInput, optFns ...func(*frauddetector.Options)) (*frauddetector.GetEventTypesOutput, error)
	PutEventType(ctx context.Context, params *frauddetector.PutEventTypeInput, optFns ...func(*frauddetector.Options)) (*frauddetector.PutEventTypeOutput, error)

	GetOutcomes(ctx context.Context, params *frauddetector.GetOutcomesInput, optFns ...func(*frauddetector.Options)) (*frauddetector.GetOutcomesOutput, error)
	PutOutcome(ctx context.Context, params *frauddetector.PutOutcomeInput, optFns ...func(*frauddetector.Options)) (*frauddetector.PutOutcomeOutput, error)

	GetModels(ctx context.Context, params *frauddetector.GetModelsInput, optFns ...func(*frauddetector.Options)) (*frauddetector.GetModelsOutput, error)
	CreateModel(ctx context.Context, params *frauddetector.CreateModelInput, optFns ...func(*frauddetector.Options)) (*frauddetector.CreateModelOutput, error)
	CreateModelVersion(ctx context.Context, params *frauddetector.CreateModelVersionInput, optFns ...func(*frauddetector.Options)) (*frauddetector.CreateModelVersionOutput, error)
	GetModelVersion(ctx context.Context, params *frauddetector.GetModelVersionInput, optFns ...func(*frauddetector.Options)) (*frauddetector.GetModelVersionOutput, error)
	UpdateModelVersionStatus(ctx context.Context, params *frauddetector.UpdateModelVersionStatusInput, optFns ...func(*frauddetector.Options)) (*frauddetector.UpdateModelVersionStatusOutput, error)
	DescribeModelVersions(ctx context.Context, params *frauddetector.DescribeModelVersionsInput, optFns ...func(*frauddetector.Options)) (*frauddetector.DescribeModelVersionsOutput, error)

	GetDetectors(ctx context.Context, params *frauddetector.GetDetectorsInput, optFns ...func(*frauddetector.Options)) (*frauddetector.GetDetectorsOutput, error)
	PutDetector(ctx context.Context, params *frauddetector.PutDetectorInput, optFns ...func(*frauddetector.Options)) (*frauddetector.PutDetectorOutput, error)
	DescribeDetector(ctx context.Context, params *frauddetector.DescribeDetectorInput, optFns ...func(*frauddetector.Options)) (*frauddetector.DescribeDetectorOutput, error)

	GetRules(ctx context.Context, params *frauddetector.GetRulesInput, optFns ...func(*frauddetector.Options)) (*frauddetector.GetRulesOutput, error)
	CreateRule(ctx context.Context, params *frauddetector.CreateRuleInput, optFns ...func(*frauddetector.Options)) (*frauddetector.CreateRuleOutput, error)
	UpdateRuleVersion(ctx context.Context, params *frauddetector.UpdateRuleVersionInput, optFns ...func(*frauddetector.Options)) (*frauddetector.UpdateRuleVersionOutput, error)
	DeleteRule(ctx context.Context, params *frauddetector.DeleteRuleInput, optFns ...func(*frauddetector.Options)) (*frauddetector.DeleteRuleOutput, error)

	CreateDetectorVersion(ctx context.Context, params *frauddetector.CreateDetectorVersionInput, optFns ...func(*frauddetector.Options)) (*frauddetector.CreateDetectorVersionOutput, error)
	UpdateDetectorVersionStatus(ctx context.Context, params *frauddetector.UpdateDetectorVersionStatusInput, optFns ...func(*frauddetector.Options)) (*frauddetector.UpdateDetectorVersionStatusOutput, error)
	DeleteDetectorVersion(ctx context.Context, params *frauddetector.DeleteDetectorVersionInput, optFns ...func(*frauddetector.Options)) (*frauddetector.DeleteDetectorVersionOutput, error)
	DeleteDetector(ctx context.Context, params *frauddetector.DeleteDetectorInput, optFns ...func(*frauddetector.Options)) (*frauddetector.DeleteDetectorOutput, error)

	GetEventPrediction(ctx context.Context, params *frauddetector.GetEventPredictionInput, optFns ...func(*frauddetector.Options)) (*frauddetector.GetEventPredictionOutput, error)
}

var _ FraudDetectorAPI = (*frauddetector.Client)(nil)
