package training

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/CapitalOne-RedFlags/BlueFlag/internal/db"
	fdclient "github.com/CapitalOne-RedFlags/BlueFlag/internal/frauddetector"
	"github.com/CapitalOne-RedFlags/BlueFlag/internal/models"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/frauddetector"
	"github.com/aws/aws-sdk-go-v2/service/frauddetector/types"
	"github.com/cenkalti/backoff/v4"
)

// ErrTrainingFailed marks a model version that reached a terminal failure
// status. It will never progress, so polling stops immediately.
var ErrTrainingFailed = errors.New("model training failed")

// PollSettings bounds a status wait: exponential backoff between fetches,
// capped per interval and in total elapsed time.
type PollSettings struct {
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxElapsedTime  time.Duration
}

func (s PollSettings) newBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = s.InitialInterval
	b.MaxInterval = s.MaxInterval
	b.MaxElapsedTime = s.MaxElapsedTime
	return b
}

// ModelTrainer provisions the model container, runs managed training from
// the external CSV source and drives the version through its lifecycle.
type ModelTrainer interface {
	EnsureModel(ctx context.Context, plan *models.ModelPlan) (bool, error)
	StartTrainingRun(ctx context.Context, plan *models.ModelPlan, dataLocation, dataAccessRoleArn string) (string, error)
	WaitForModelStatus(ctx context.Context, plan *models.ModelPlan, versionNumber, target string) error
	ActivateModelVersion(ctx context.Context, plan *models.ModelPlan, versionNumber string) error
	DeactivateModelVersion(ctx context.Context, plan *models.ModelPlan, versionNumber string) error
	TrainingAUC(ctx context.Context, plan *models.ModelPlan, versionNumber string) (float32, error)
}

type BfModelTrainer struct {
	Client  fdclient.FraudDetectorAPI
	Ledger  db.LedgerRepository
	RunID   string
	Polling PollSettings
}

func NewBfModelTrainer(client fdclient.FraudDetectorAPI, ledger db.LedgerRepository, runID string, polling PollSettings) *BfModelTrainer {
	return &BfModelTrainer{
		Client:  client,
		Ledger:  ledger,
		RunID:   runID,
		Polling: polling,
	}
}

// EnsureModel creates the model container unless it already exists.
func (t *BfModelTrainer) EnsureModel(ctx context.Context, plan *models.ModelPlan) (bool, error) {
	if err := plan.Validate(); err != nil {
		return false, fmt.Errorf("invalid model plan: %w", err)
	}

	var nextToken *string
	for {
		output, err := t.Client.GetModels(ctx, &frauddetector.GetModelsInput{
			NextToken: nextToken,
		})
		if err != nil {
			return false, fmt.Errorf("failed to list models: %w", err)
		}
		for _, model := range output.Models {
			if aws.ToString(model.ModelId) == plan.ModelID {
				log.Printf("Model %s already exists, skipping", plan.ModelID)
				return false, nil
			}
		}
		if output.NextToken == nil {
			break
		}
		nextToken = output.NextToken
	}

	_, err := t.Client.CreateModel(ctx, &frauddetector.CreateModelInput{
		ModelId:       aws.String(plan.ModelID),
		ModelType:     types.ModelTypeEnum(plan.ModelType),
		EventTypeName: aws.String(plan.EventTypeName),
	})
	if err != nil {
		return false, fmt.Errorf("failed to create model %s: %w", plan.ModelID, err)
	}

	return true, t.record(ctx, models.KindModel, plan.ModelID, "")
}

// StartTrainingRun kicks off managed training of a new model version from
// the external events CSV and returns the version number assigned.
func (t *BfModelTrainer) StartTrainingRun(ctx context.Context, plan *models.ModelPlan, dataLocation, dataAccessRoleArn string) (string, error) {
	output, err := t.Client.CreateModelVersion(ctx, &frauddetector.CreateModelVersionInput{
		ModelId:            aws.String(plan.ModelID),
		ModelType:          types.ModelTypeEnum(plan.ModelType),
		TrainingDataSource: types.TrainingDataSourceEnumExternalEvents,
		TrainingDataSchema: &types.TrainingDataSchema{
			ModelVariables: plan.VariableNames,
			LabelSchema: &types.LabelSchema{
				LabelMapper: plan.LabelMapper(),
			},
		},
		ExternalEventsDetail: &types.ExternalEventsDetail{
			DataLocation:      aws.String(dataLocation),
			DataAccessRoleArn: aws.String(dataAccessRoleArn),
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to start training for model %s: %w", plan.ModelID, err)
	}

	versionNumber := aws.ToString(output.ModelVersionNumber)
	log.Printf("Training started: model %s version %s", plan.ModelID, versionNumber)

	return versionNumber, t.record(ctx, models.KindModelVersion, plan.ModelID, versionNumber)
}

// WaitForModelStatus polls the model version until it reaches the target
// status. It stops early on a terminal failure status or when the backoff
// budget or context runs out; it never sleeps when the first observation
// already matches.
func (t *BfModelTrainer) WaitForModelStatus(ctx context.Context, plan *models.ModelPlan, versionNumber, target string) error {
	operation := func() error {
		output, err := t.Client.GetModelVersion(ctx, &frauddetector.GetModelVersionInput{
			ModelId:            aws.String(plan.ModelID),
			ModelType:          types.ModelTypeEnum(plan.ModelType),
			ModelVersionNumber: aws.String(versionNumber),
		})
		if err != nil {
			return backoff.Permanent(fmt.Errorf("failed to get model version %s/%s: %w", plan.ModelID, versionNumber, err))
		}

		status := aws.ToString(output.Status)
		if status == target {
			return nil
		}
		if models.IsTerminalFailureStatus(status) {
			return backoff.Permanent(fmt.Errorf("%w: model %s version %s reported %s", ErrTrainingFailed, plan.ModelID, versionNumber, status))
		}

		log.Printf("Model %s version %s: %s, waiting for %s", plan.ModelID, versionNumber, status, target)
		return fmt.Errorf("model %s version %s still %s", plan.ModelID, versionNumber, status)
	}

	if err := backoff.Retry(operation, backoff.WithContext(t.Polling.newBackOff(), ctx)); err != nil {
		return err
	}

	log.Printf("Model %s version %s reached %s", plan.ModelID, versionNumber, target)
	return nil
}

// ActivateModelVersion requests activation of a trained version.
func (t *BfModelTrainer) ActivateModelVersion(ctx context.Context, plan *models.ModelPlan, versionNumber string) error {
	return t.updateStatus(ctx, plan, versionNumber, types.ModelVersionStatusActive)
}

// DeactivateModelVersion requests deactivation. Model versions cannot be
// deleted; inactive is their terminal teardown state.
func (t *BfModelTrainer) DeactivateModelVersion(ctx context.Context, plan *models.ModelPlan, versionNumber string) error {
	return t.updateStatus(ctx, plan, versionNumber, types.ModelVersionStatusInactive)
}

func (t *BfModelTrainer) updateStatus(ctx context.Context, plan *models.ModelPlan, versionNumber string, status types.ModelVersionStatus) error {
	_, err := t.Client.UpdateModelVersionStatus(ctx, &frauddetector.UpdateModelVersionStatusInput{
		ModelId:            aws.String(plan.ModelID),
		ModelType:          types.ModelTypeEnum(plan.ModelType),
		ModelVersionNumber: aws.String(versionNumber),
		Status:             status,
	})
	if err != nil {
		return fmt.Errorf("failed to update model %s version %s to %s: %w", plan.ModelID, versionNumber, status, err)
	}
	return nil
}

// TrainingAUC fetches the quality metric of a trained model version.
func (t *BfModelTrainer) TrainingAUC(ctx context.Context, plan *models.ModelPlan, versionNumber string) (float32, error) {
	output, err := t.Client.DescribeModelVersions(ctx, &frauddetector.DescribeModelVersionsInput{
		ModelId:            aws.String(plan.ModelID),
		ModelType:          types.ModelTypeEnum(plan.ModelType),
		ModelVersionNumber: aws.String(versionNumber),
	})
	if err != nil {
		return 0, fmt.Errorf("failed to describe model version %s/%s: %w", plan.ModelID, versionNumber, err)
	}

	for _, detail := range output.ModelVersionDetails {
		if detail.TrainingResult != nil && detail.TrainingResult.TrainingMetrics != nil {
			return aws.ToFloat32(detail.TrainingResult.TrainingMetrics.Auc), nil
		}
	}

	return 0, fmt.Errorf("no training metrics available for model %s version %s", plan.ModelID, versionNumber)
}

func (t *BfModelTrainer) record(ctx context.Context, kind, name, version string) error {
	resource := models.NewProvisionedResource(t.RunID, kind, name, version, time.Now().UTC().Format(time.RFC3339))
	return t.Ledger.RecordResource(ctx, resource)
}
