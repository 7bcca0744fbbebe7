package models

import (
	"github.com/go-playground/validator"
)

// Model version lifecycle statuses reported by Amazon Fraud Detector.
const (
	ModelStatusTrainingInProgress  = "TRAINING_IN_PROGRESS"
	ModelStatusTrainingComplete    = "TRAINING_COMPLETE"
	ModelStatusActivateRequested   = "ACTIVATE_REQUESTED"
	ModelStatusActivateInProgress  = "ACTIVATE_IN_PROGRESS"
	ModelStatusActive              = "ACTIVE"
	ModelStatusInactivateRequested = "INACTIVATE_REQUESTED"
	ModelStatusInactive            = "INACTIVE"
	ModelStatusError               = "ERROR"
	ModelStatusTrainingCancelled   = "TRAINING_CANCELLED"
)

// Detector version lifecycle statuses.
const (
	DetectorStatusDraft    = "DRAFT"
	DetectorStatusActive   = "ACTIVE"
	DetectorStatusInactive = "INACTIVE"
)

// IsTerminalFailureStatus reports whether a model version status can never
// progress to the requested target. Polling must stop on these instead of
// waiting out the budget.
func IsTerminalFailureStatus(status string) bool {
	return status == ModelStatusError || status == ModelStatusTrainingCancelled
}

// VariableDefinition describes an event variable registered with the fraud
// detector service. Variables are immutable once created.
type VariableDefinition struct {
	Name         string `json:"name" validate:"required"`
	VariableType string `json:"variableType" validate:"required"`
	DataType     string `json:"dataType" validate:"required"`
	DefaultValue string `json:"defaultValue"`
	Description  string `json:"description"`
}

// LabelDefinition maps a ground-truth class in the training data.
type LabelDefinition struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

// EntityTypeDefinition describes who performs an event.
type EntityTypeDefinition struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

// EventTypeDefinition binds variables, labels and entity types into the
// event shape evaluated by models and rules.
type EventTypeDefinition struct {
	Name        string   `json:"name" validate:"required"`
	Variables   []string `json:"variables" validate:"required,min=1"`
	Labels      []string `json:"labels" validate:"required,min=1"`
	EntityTypes []string `json:"entityTypes" validate:"required,min=1"`
	Description string   `json:"description"`
}

// OutcomeDefinition is the business action attached to a matching rule.
type OutcomeDefinition struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

// RuleDefinition holds one rule of a detector. Updating the expression of
// an existing rule produces a new immutable rule version on the service.
type RuleDefinition struct {
	RuleID      string   `json:"ruleId" validate:"required"`
	Expression  string   `json:"expression" validate:"required"`
	Outcomes    []string `json:"outcomes" validate:"required,min=1"`
	Description string   `json:"description"`
}

// ModelPlan describes the model container and training run to provision.
type ModelPlan struct {
	ModelID       string   `json:"modelId" validate:"required"`
	ModelType     string   `json:"modelType" validate:"required"`
	EventTypeName string   `json:"eventTypeName" validate:"required"`
	VariableNames []string `json:"variableNames" validate:"required,min=1"`
	FraudLabels   []string `json:"fraudLabels" validate:"required,min=1"`
	LegitLabels   []string `json:"legitLabels" validate:"required,min=1"`
}

// LabelMapper builds the fraud/legit class mapping the training schema expects.
func (p *ModelPlan) LabelMapper() map[string][]string {
	return map[string][]string{
		"FRAUD": p.FraudLabels,
		"LEGIT": p.LegitLabels,
	}
}

// Validate checks a model plan before any remote call is issued.
func (p *ModelPlan) Validate() error {
	validate := validator.New()
	return validate.Struct(p)
}

// Validate checks a rule definition before submission.
func (r *RuleDefinition) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
