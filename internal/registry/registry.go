package registry

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/CapitalOne-RedFlags/BlueFlag/internal/db"
	fdclient "github.com/CapitalOne-RedFlags/BlueFlag/internal/frauddetector"
	"github.com/CapitalOne-RedFlags/BlueFlag/internal/models"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/frauddetector"
	"github.com/aws/aws-sdk-go-v2/service/frauddetector/types"
)

// ResourceRegistry registers event metadata with the fraud detector
// service. Every Ensure method lists the existing resources of its kind
// first and only issues a create when the name is absent, so re-running a
// bootstrap is safe. The precheck is not atomic; a concurrent run can still
// hit a naming conflict, which surfaces as a wrapped error.
type ResourceRegistry interface {
	EnsureVariable(ctx context.Context, def *models.VariableDefinition) (bool, error)
	EnsureLabel(ctx context.Context, def *models.LabelDefinition) (bool, error)
	EnsureEntityType(ctx context.Context, def *models.EntityTypeDefinition) (bool, error)
	EnsureEventType(ctx context.Context, def *models.EventTypeDefinition) (bool, error)
	EnsureOutcome(ctx context.Context, def *models.OutcomeDefinition) (bool, error)
}

type BfResourceRegistry struct {
	Client fdclient.FraudDetectorAPI
	Ledger db.LedgerRepository
	RunID  string
}

func NewBfResourceRegistry(client fdclient.FraudDetectorAPI, ledger db.LedgerRepository, runID string) *BfResourceRegistry {
	return &BfResourceRegistry{
		Client: client,
		Ledger: ledger,
		RunID:  runID,
	}
}

// EnsureVariable registers an event variable unless one with the same name
// already exists. Variables are immutable, so an existing one is left alone.
func (r *BfResourceRegistry) EnsureVariable(ctx context.Context, def *models.VariableDefinition) (bool, error) {
	exists, err := r.variableExists(ctx, def.Name)
	if err != nil {
		return false, err
	}
	if exists {
		log.Printf("Variable %s already exists, skipping", def.Name)
		return false, nil
	}

	_, err = r.Client.CreateVariable(ctx, &frauddetector.CreateVariableInput{
		Name:         aws.String(def.Name),
		DataType:     types.DataType(def.DataType),
		DataSource:   types.DataSourceEvent,
		DefaultValue: aws.String(def.DefaultValue),
		VariableType: aws.String(def.VariableType),
		Description:  aws.String(def.Description),
	})
	if err != nil {
		return false, fmt.Errorf("failed to create variable %s: %w", def.Name, err)
	}

	return true, r.record(ctx, models.KindVariable, def.Name, "")
}

// EnsureLabel registers a ground-truth label if absent.
func (r *BfResourceRegistry) EnsureLabel(ctx context.Context, def *models.LabelDefinition) (bool, error) {
	exists, err := r.labelExists(ctx, def.Name)
	if err != nil {
		return false, err
	}
	if exists {
		log.Printf("Label %s already exists, skipping", def.Name)
		return false, nil
	}

	_, err = r.Client.PutLabel(ctx, &frauddetector.PutLabelInput{
		Name:        aws.String(def.Name),
		Description: aws.String(def.Description),
	})
	if err != nil {
		return false, fmt.Errorf("failed to create label %s: %w", def.Name, err)
	}

	return true, r.record(ctx, models.KindLabel, def.Name, "")
}

// EnsureEntityType registers the entity type performing events if absent.
func (r *BfResourceRegistry) EnsureEntityType(ctx context.Context, def *models.EntityTypeDefinition) (bool, error) {
	output, err := r.Client.GetEntityTypes(ctx, &frauddetector.GetEntityTypesInput{})
	if err != nil {
		return false, fmt.Errorf("failed to list entity types: %w", err)
	}
	for _, entityType := range output.EntityTypes {
		if aws.ToString(entityType.Name) == def.Name {
			log.Printf("Entity type %s already exists, skipping", def.Name)
			return false, nil
		}
	}

	_, err = r.Client.PutEntityType(ctx, &frauddetector.PutEntityTypeInput{
		Name:        aws.String(def.Name),
		Description: aws.String(def.Description),
	})
	if err != nil {
		return false, fmt.Errorf("failed to create entity type %s: %w", def.Name, err)
	}

	return true, r.record(ctx, models.KindEntityType, def.Name, "")
}

// EnsureEventType registers the event type binding variables, labels and
// entity types, if absent.
func (r *BfResourceRegistry) EnsureEventType(ctx context.Context, def *models.EventTypeDefinition) (bool, error) {
	output, err := r.Client.GetEventTypes(ctx, &frauddetector.GetEventTypesInput{})
	if err != nil {
		return false, fmt.Errorf("failed to list event types: %w", err)
	}
	for _, eventType := range output.EventTypes {
		if aws.ToString(eventType.Name) == def.Name {
			log.Printf("Event type %s already exists, skipping", def.Name)
			return false, nil
		}
	}

	_, err = r.Client.PutEventType(ctx, &frauddetector.PutEventTypeInput{
		Name:           aws.String(def.Name),
		EventVariables: def.Variables,
		Labels:         def.Labels,
		EntityTypes:    def.EntityTypes,
		Description:    aws.String(def.Description),
	})
	if err != nil {
		return false, fmt.Errorf("failed to create event type %s: %w", def.Name, err)
	}

	return true, r.record(ctx, models.KindEventType, def.Name, "")
}

// EnsureOutcome registers a rule outcome if absent.
func (r *BfResourceRegistry) EnsureOutcome(ctx context.Context, def *models.OutcomeDefinition) (bool, error) {
	output, err := r.Client.GetOutcomes(ctx, &frauddetector.GetOutcomesInput{})
	if err != nil {
		return false, fmt.Errorf("failed to list outcomes: %w", err)
	}
	for _, outcome := range output.Outcomes {
		if aws.ToString(outcome.Name) == def.Name {
			log.Printf("Outcome %s already exists, skipping", def.Name)
			return false, nil
		}
	}

	_, err = r.Client.PutOutcome(ctx, &frauddetector.PutOutcomeInput{
		Name:        aws.String(def.Name),
		Description: aws.String(def.Description),
	})
	if err != nil {
		return false, fmt.Errorf("failed to create outcome %s: %w", def.Name, err)
	}

	return true, r.record(ctx, models.KindOutcome, def.Name, "")
}

func (r *BfResourceRegistry) variableExists(ctx context.Context, name string) (bool, error) {
	var nextToken *string
	for {
		output, err := r.Client.GetVariables(ctx, &frauddetector.GetVariablesInput{
			NextToken: nextToken,
		})
		if err != nil {
			return false, fmt.Errorf("failed to list variables: %w", err)
		}
		for _, variable := range output.Variables {
			if aws.ToString(variable.Name) == name {
				return true, nil
			}
		}
		if output.NextToken == nil {
			return false, nil
		}
		nextToken = output.NextToken
	}
}

func (r *BfResourceRegistry) labelExists(ctx context.Context, name string) (bool, error) {
	output, err := r.Client.GetLabels(ctx, &frauddetector.GetLabelsInput{})
	if err != nil {
		return false, fmt.Errorf("failed to list labels: %w", err)
	}
	for _, label := range output.Labels {
		if aws.ToString(label.Name) == name {
			return true, nil
		}
	}
	return false, nil
}

func (r *BfResourceRegistry) record(ctx context.Context, kind, name, version string) error {
	resource := models.NewProvisionedResource(r.RunID, kind, name, version, time.Now().UTC().Format(time.RFC3339))
	return r.Ledger.RecordResource(ctx, resource)
}
