package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseEventRecord(t *testing.T) {
	colMap := map[string]int{
		"EVENT_TIMESTAMP": 0,
		"ip_address":      1,
		"email_address":   2,
		"EVENT_LABEL":     3,
		"ENTITY_ID":       4,
	}
	record := []string{"2025-11-30T10:00:00Z", "192.0.2.10", "alice@example.com", "legit", "cust-42"}

	event, err := ParseEventRecord(record, colMap, "customer")

	assert.NoError(t, err)
	assert.Equal(t, "2025-11-30T10:00:00Z", event.EventTimestamp)
	assert.Equal(t, "cust-42", event.EntityID)
	assert.Equal(t, "customer", event.EntityType)
	assert.Equal(t, "legit", event.Label)
	assert.Equal(t, map[string]string{
		"ip_address":    "192.0.2.10",
		"email_address": "alice@example.com",
	}, event.Variables)
}

func TestParseEventRecordRequiresTimestampColumn(t *testing.T) {
	colMap := map[string]int{"ip_address": 0}

	_, err := ParseEventRecord([]string{"192.0.2.10"}, colMap, "customer")

	assert.Error(t, err)
}

func TestParseEventRecordRejectsShortRecord(t *testing.T) {
	colMap := map[string]int{
		"EVENT_TIMESTAMP": 0,
		"ip_address":      1,
	}

	_, err := ParseEventRecord([]string{"2025-11-30T10:00:00Z"}, colMap, "customer")

	assert.Error(t, err)
}

func TestValidateEventRecord(t *testing.T) {
	event := &EventRecord{
		EventID:        "evt-1",
		EventTimestamp: "2025-11-30T10:00:00Z",
		EntityID:       "cust-42",
		EntityType:     "customer",
		Variables:      map[string]string{"ip_address": "192.0.2.10"},
	}

	assert.NoError(t, event.ValidateEventRecord())
}

func TestValidateEventRecordRequiresVariables(t *testing.T) {
	event := &EventRecord{
		EventID:        "evt-1",
		EventTimestamp: "2025-11-30T10:00:00Z",
		EntityID:       "cust-42",
		EntityType:     "customer",
	}

	assert.Error(t, event.ValidateEventRecord())
}

func TestIsTerminalFailureStatus(t *testing.T) {
	assert.True(t, IsTerminalFailureStatus(ModelStatusError))
	assert.True(t, IsTerminalFailureStatus(ModelStatusTrainingCancelled))
	assert.False(t, IsTerminalFailureStatus(ModelStatusTrainingInProgress))
	assert.False(t, IsTerminalFailureStatus(ModelStatusTrainingComplete))
	assert.False(t, IsTerminalFailureStatus(ModelStatusActive))
}

func TestModelPlanLabelMapper(t *testing.T) {
	plan := &ModelPlan{FraudLabels: []string{"fraud"}, LegitLabels: []string{"legit"}}

	mapper := plan.LabelMapper()

	assert.Equal(t, []string{"fraud"}, mapper["FRAUD"])
	assert.Equal(t, []string{"legit"}, mapper["LEGIT"])
}

func TestModelPlanValidate(t *testing.T) {
	plan := &ModelPlan{
		ModelID:       "transaction_model",
		ModelType:     "ONLINE_FRAUD_INSIGHTS",
		EventTypeName: "transaction_event",
		VariableNames: []string{"ip_address"},
		FraudLabels:   []string{"fraud"},
		LegitLabels:   []string{"legit"},
	}
	assert.NoError(t, plan.Validate())

	assert.Error(t, (&ModelPlan{ModelID: "incomplete"}).Validate())
}

func TestNewProvisionedResourceKey(t *testing.T) {
	versioned := NewProvisionedResource("run-1", KindModelVersion, "transaction_model", "1.0", "2025-12-01T00:00:00Z")
	assert.Equal(t, "MODEL_VERSION#transaction_model#1.0", versioned.ResourceKey)

	unversioned := NewProvisionedResource("run-1", KindVariable, "ip_address", "", "2025-12-01T00:00:00Z")
	assert.Equal(t, "VARIABLE#ip_address", unversioned.ResourceKey)
}

func TestLedgerRoundTrip(t *testing.T) {
	resource := NewProvisionedResource("run-1", KindRule, "high_fraud_risk", "1", "2025-12-01T00:00:00Z")

	item, err := resource.MarshalDynamoDB()
	assert.NoError(t, err)

	decoded, err := UnmarshalLedgerItem(item)
	assert.NoError(t, err)
	assert.Equal(t, resource, decoded)
}

func TestTeardownOrderCoversEveryRecordedKind(t *testing.T) {
	recorded := []string{
		KindDetectorVersion, KindRule, KindDetector, KindModelVersion,
		KindModel, KindOutcome, KindEventType, KindEntityType, KindLabel, KindVariable,
	}

	assert.ElementsMatch(t, recorded, TeardownOrder)
}

func TestTeardownOrderDeletesVersionsBeforeRules(t *testing.T) {
	indexOf := func(kind string) int {
		for i, k := range TeardownOrder {
			if k == kind {
				return i
			}
		}
		return -1
	}

	assert.Less(t, indexOf(KindDetectorVersion), indexOf(KindRule))
	assert.Less(t, indexOf(KindRule), indexOf(KindDetector))
	assert.Less(t, indexOf(KindModelVersion), indexOf(KindModel))
}
