package setup

import (
	"context"
	"fmt"
	"log"

	"github.com/CapitalOne-RedFlags/BlueFlag/internal/dataset"
	"github.com/CapitalOne-RedFlags/BlueFlag/internal/detector"
	"github.com/CapitalOne-RedFlags/BlueFlag/internal/models"
	"github.com/CapitalOne-RedFlags/BlueFlag/internal/registry"
	"github.com/CapitalOne-RedFlags/BlueFlag/internal/rules"
	"github.com/CapitalOne-RedFlags/BlueFlag/internal/training"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/frauddetector/types"
)

// RuleBand maps one score band to its rule id and business outcome,
// ordered highest risk first.
type RuleBand struct {
	RuleID      string
	Outcome     models.OutcomeDefinition
	Description string
}

// SetupPlan is everything one bootstrap run provisions.
type SetupPlan struct {
	Variables         []models.VariableDefinition
	Labels            []models.LabelDefinition
	EntityType        models.EntityTypeDefinition
	EventType         models.EventTypeDefinition
	Model             models.ModelPlan
	RuleBands         [3]RuleBand
	ScoreVariable     string
	HighThreshold     int
	LowThreshold      int
	ExecutionMode     string
	DetectorDesc      string
	DataAccessRoleArn string
	LocalCSVPath      string
}

// RunSummary reports what a bootstrap run produced.
type RunSummary struct {
	ModelVersionNumber string
	TrainingAUC        float32
	DetectorVersionID  string
	ResourcesCreated   int
}

// BfSetupPipeline runs the full provisioning sequence: metadata
// registration, dataset validation, managed training, rule and detector
// assembly, activation. Every step is idempotent by precheck, so a rerun
// after partial failure picks up where the last run stopped.
type BfSetupPipeline struct {
	Registry registry.ResourceRegistry
	Dataset  *dataset.BfDatasetService
	Trainer  training.ModelTrainer
	Rules    rules.RuleService
	Detector detector.DetectorService
}

func NewBfSetupPipeline(reg registry.ResourceRegistry, ds *dataset.BfDatasetService,
	trainer training.ModelTrainer, ruleService rules.RuleService, detectorService detector.DetectorService) *BfSetupPipeline {
	return &BfSetupPipeline{
		Registry: reg,
		Dataset:  ds,
		Trainer:  trainer,
		Rules:    ruleService,
		Detector: detectorService,
	}
}

func (p *BfSetupPipeline) Run(ctx context.Context, plan *SetupPlan) (*RunSummary, error) {
	summary := &RunSummary{}

	if err := p.registerMetadata(ctx, plan, summary); err != nil {
		return nil, err
	}

	if err := p.validateDataset(ctx, plan); err != nil {
		return nil, err
	}

	if err := p.trainModel(ctx, plan, summary); err != nil {
		return nil, err
	}

	detectorRules, err := p.assembleRules(ctx, plan, summary)
	if err != nil {
		return nil, err
	}

	if err := p.assembleDetector(ctx, plan, detectorRules, summary); err != nil {
		return nil, err
	}

	log.Printf("Bootstrap complete: detector version %s active, model version %s (AUC %.3f), %d resources created",
		summary.DetectorVersionID, summary.ModelVersionNumber, summary.TrainingAUC, summary.ResourcesCreated)

	return summary, nil
}

func (p *BfSetupPipeline) registerMetadata(ctx context.Context, plan *SetupPlan, summary *RunSummary) error {
	for i := range plan.Variables {
		created, err := p.Registry.EnsureVariable(ctx, &plan.Variables[i])
		if err != nil {
			return err
		}
		if created {
			summary.ResourcesCreated++
		}
	}

	for i := range plan.Labels {
		created, err := p.Registry.EnsureLabel(ctx, &plan.Labels[i])
		if err != nil {
			return err
		}
		if created {
			summary.ResourcesCreated++
		}
	}

	created, err := p.Registry.EnsureEntityType(ctx, &plan.EntityType)
	if err != nil {
		return err
	}
	if created {
		summary.ResourcesCreated++
	}

	created, err = p.Registry.EnsureEventType(ctx, &plan.EventType)
	if err != nil {
		return err
	}
	if created {
		summary.ResourcesCreated++
	}

	return nil
}

func (p *BfSetupPipeline) validateDataset(ctx context.Context, plan *SetupPlan) error {
	if err := p.Dataset.EnsureUploaded(ctx, plan.LocalCSVPath); err != nil {
		return err
	}

	profile, err := p.Dataset.FetchProfile(ctx)
	if err != nil {
		return err
	}

	variableNames := make([]string, 0, len(plan.Variables))
	for _, variable := range plan.Variables {
		variableNames = append(variableNames, variable.Name)
	}

	if err := dataset.ValidateHeaders(profile.Headers, variableNames); err != nil {
		return fmt.Errorf("training data does not match registered variables: %w", err)
	}

	log.Printf("Training data: %d rows", profile.RowCount)
	for label, count := range profile.LabelCounts {
		log.Printf("  label %s: %d rows", label, count)
	}

	return nil
}

func (p *BfSetupPipeline) trainModel(ctx context.Context, plan *SetupPlan, summary *RunSummary) error {
	created, err := p.Trainer.EnsureModel(ctx, &plan.Model)
	if err != nil {
		return err
	}
	if created {
		summary.ResourcesCreated++
	}

	versionNumber, err := p.Trainer.StartTrainingRun(ctx, &plan.Model, p.Dataset.DataLocation(), plan.DataAccessRoleArn)
	if err != nil {
		return err
	}
	summary.ResourcesCreated++
	summary.ModelVersionNumber = versionNumber

	if err := p.Trainer.WaitForModelStatus(ctx, &plan.Model, versionNumber, models.ModelStatusTrainingComplete); err != nil {
		return err
	}

	auc, err := p.Trainer.TrainingAUC(ctx, &plan.Model, versionNumber)
	if err != nil {
		log.Printf("Warning: could not fetch training metrics: %v", err)
	} else {
		summary.TrainingAUC = auc
		log.Printf("Model %s version %s trained with AUC %.3f", plan.Model.ModelID, versionNumber, auc)
	}

	if err := p.Trainer.ActivateModelVersion(ctx, &plan.Model, versionNumber); err != nil {
		return err
	}

	return p.Trainer.WaitForModelStatus(ctx, &plan.Model, versionNumber, models.ModelStatusActive)
}

func (p *BfSetupPipeline) assembleRules(ctx context.Context, plan *SetupPlan, summary *RunSummary) ([]types.Rule, error) {
	expressions, err := rules.ScoreBandExpressions("$"+plan.ScoreVariable, plan.HighThreshold, plan.LowThreshold)
	if err != nil {
		return nil, err
	}

	var detectorRules []types.Rule
	for i, band := range plan.RuleBands {
		created, err := p.Registry.EnsureOutcome(ctx, &band.Outcome)
		if err != nil {
			return nil, err
		}
		if created {
			summary.ResourcesCreated++
		}

		rule, err := p.Rules.EnsureRule(ctx, &models.RuleDefinition{
			RuleID:      band.RuleID,
			Expression:  expressions[i],
			Outcomes:    []string{band.Outcome.Name},
			Description: band.Description,
		})
		if err != nil {
			return nil, err
		}
		summary.ResourcesCreated++
		detectorRules = append(detectorRules, *rule)
	}

	return detectorRules, nil
}

func (p *BfSetupPipeline) assembleDetector(ctx context.Context, plan *SetupPlan, detectorRules []types.Rule, summary *RunSummary) error {
	created, err := p.Detector.EnsureDetector(ctx, plan.EventType.Name, plan.DetectorDesc)
	if err != nil {
		return err
	}
	if created {
		summary.ResourcesCreated++
	}

	modelVersions := []types.ModelVersion{
		{
			ModelId:            aws.String(plan.Model.ModelID),
			ModelType:          types.ModelTypeEnum(plan.Model.ModelType),
			ModelVersionNumber: aws.String(summary.ModelVersionNumber),
		},
	}

	versionID, err := p.Detector.CreateVersion(ctx, detectorRules, modelVersions, plan.ExecutionMode)
	if err != nil {
		return err
	}
	summary.ResourcesCreated++
	summary.DetectorVersionID = versionID

	return p.Detector.ActivateVersion(ctx, versionID)
}
