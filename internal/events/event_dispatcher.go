package events

import (
	"fmt"

	"github.com/CapitalOne-RedFlags/BlueFlag/internal/messaging"
	"github.com/CapitalOne-RedFlags/BlueFlag/internal/models"
)

type EventDispatcher interface {
	DispatchFraudAlertEvent(event models.EventRecord, result models.PredictionResult) error
}

type BfEventDispatcher struct {
	SNSMessenger   messaging.SNSMessenger
	ReviewerNumber string
}

func NewBfEventDispatcher(snsMessenger messaging.SNSMessenger, reviewerNumber string) *BfEventDispatcher {
	return &BfEventDispatcher{
		SNSMessenger:   snsMessenger,
		ReviewerNumber: reviewerNumber,
	}
}

// DispatchFraudAlertEvent fans a high-risk prediction out to the alert
// topic and texts the on-call reviewer.
func (dispatcher *BfEventDispatcher) DispatchFraudAlertEvent(event models.EventRecord, result models.PredictionResult) error {
	if _, err := dispatcher.SNSMessenger.SendEmailAlert(event, result); err != nil {
		return fmt.Errorf("error publishing fraud alert for event %s: %w", event.EventID, err)
	}

	if dispatcher.ReviewerNumber != "" {
		if err := dispatcher.SNSMessenger.SendTextAlert(event, result, dispatcher.ReviewerNumber); err != nil {
			return fmt.Errorf("error sending text message for event %s: %w", event.EventID, err)
		}
	}

	fmt.Printf("High-risk event %s dispatched for review\n", event.EventID)

	return nil
}
