package models

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Resource kinds recorded in the provisioning ledger. Teardown walks kinds
// in dependency order, so the constants double as ordering keys.
const (
	KindDetectorVersion = "DETECTOR_VERSION"
	KindRule            = "RULE"
	KindDetector        = "DETECTOR"
	KindModelVersion    = "MODEL_VERSION"
	KindModel           = "MODEL"
	KindOutcome         = "OUTCOME"
	KindEventType       = "EVENT_TYPE"
	KindEntityType      = "ENTITY_TYPE"
	KindLabel           = "LABEL"
	KindVariable        = "VARIABLE"
)

// TeardownOrder lists resource kinds in the order deletion must proceed:
// a rule may only go once no detector version references it, and containers
// go after their versions. Model versions are deactivated, never deleted.
var TeardownOrder = []string{
	KindDetectorVersion,
	KindRule,
	KindDetector,
	KindModelVersion,
	KindModel,
	KindOutcome,
	KindEventType,
	KindEntityType,
	KindLabel,
	KindVariable,
}

// ProvisionedResource is one ledger row recording a resource a run created.
type ProvisionedResource struct {
	RunID       string `json:"runId" dynamodbav:"RunID" validate:"required"`
	ResourceKey string `json:"resourceKey" dynamodbav:"ResourceKey" validate:"required"`
	Kind        string `json:"kind" dynamodbav:"Kind" validate:"required"`
	Name        string `json:"name" dynamodbav:"Name" validate:"required"`
	Version     string `json:"version" dynamodbav:"Version"`
	CreatedAt   string `json:"createdAt" dynamodbav:"CreatedAt"`
}

// NewProvisionedResource builds a ledger row with its composite sort key.
func NewProvisionedResource(runID, kind, name, version, createdAt string) *ProvisionedResource {
	key := fmt.Sprintf("%s#%s", kind, name)
	if version != "" {
		key = fmt.Sprintf("%s#%s", key, version)
	}

	return &ProvisionedResource{
		RunID:       runID,
		ResourceKey: key,
		Kind:        kind,
		Name:        name,
		Version:     version,
		CreatedAt:   createdAt,
	}
}

// MarshalDynamoDB marshals a ledger row into a DynamoDB attribute map.
func (r *ProvisionedResource) MarshalDynamoDB() (map[string]types.AttributeValue, error) {
	return attributevalue.MarshalMap(r)
}

// UnmarshalLedgerItem unmarshals a DynamoDB attribute map into a ledger row.
func UnmarshalLedgerItem(av map[string]types.AttributeValue) (*ProvisionedResource, error) {
	var resource ProvisionedResource
	if err := attributevalue.UnmarshalMap(av, &resource); err != nil {
		return nil, err
	}
	return &resource, nil
}
