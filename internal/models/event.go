package models

import (
	"fmt"

	"github.com/go-playground/validator"
)

// Reserved training CSV headers. Every other column is an event variable and
// must exactly match a variable name registered with the service.
const (
	HeaderEventTimestamp = "EVENT_TIMESTAMP"
	HeaderEventLabel     = "EVENT_LABEL"
	HeaderLabelTimestamp = "LABEL_TIMESTAMP"
	HeaderEntityID       = "ENTITY_ID"
)

// EventRecord is one event submitted for a real-time prediction.
type EventRecord struct {
	EventID        string            `json:"eventId" validate:"required"`
	EventTimestamp string            `json:"eventTimestamp" validate:"required"`
	EntityID       string            `json:"entityId" validate:"required"`
	EntityType     string            `json:"entityType" validate:"required"`
	Label          string            `json:"label"`
	LabelTimestamp string            `json:"labelTimestamp"`
	Variables      map[string]string `json:"variables" validate:"required,min=1"`
}

// ParseEventRecord converts a CSV row into an EventRecord using the header
// column map. Reserved columns populate the envelope fields; the remainder
// become event variables keyed by their header name.
func ParseEventRecord(record []string, colMap map[string]int, entityType string) (*EventRecord, error) {
	timestampIdx, ok := colMap[HeaderEventTimestamp]
	if !ok {
		return nil, fmt.Errorf("missing required column %s", HeaderEventTimestamp)
	}

	event := &EventRecord{
		EventTimestamp: record[timestampIdx],
		EntityType:     entityType,
		Variables:      make(map[string]string),
	}

	for column, idx := range colMap {
		if idx >= len(record) {
			return nil, fmt.Errorf("record has no value for column %s", column)
		}
		switch column {
		case HeaderEventTimestamp:
			// already captured
		case HeaderEventLabel:
			event.Label = record[idx]
		case HeaderLabelTimestamp:
			event.LabelTimestamp = record[idx]
		case HeaderEntityID:
			event.EntityID = record[idx]
		default:
			event.Variables[column] = record[idx]
		}
	}

	return event, nil
}

// ValidateEventRecord validates an event before it is sent for prediction.
func (e *EventRecord) ValidateEventRecord() error {
	validate := validator.New()
	return validate.Struct(e)
}

// Get subject, message for a fraud alert on a high-risk prediction
func (e *EventRecord) GetFraudAlertContent(score float32, outcome string) (string, string) {
	return "Suspicious Registration Event", fmt.Sprintf(
		`"BLUEFLAG: Event %s for entity %s scored %.0f and matched outcome %s.
Review the event in the fraud console before approving the account."`,
		e.EventID, e.EntityID, score, outcome)
}
