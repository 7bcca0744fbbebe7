package prediction

import (
	"context"
	"fmt"
	"sync"

	"github.com/CapitalOne-RedFlags/BlueFlag/internal/events"
	fdclient "github.com/CapitalOne-RedFlags/BlueFlag/internal/frauddetector"
	"github.com/CapitalOne-RedFlags/BlueFlag/internal/messaging"
	"github.com/CapitalOne-RedFlags/BlueFlag/internal/middleware"
	"github.com/CapitalOne-RedFlags/BlueFlag/internal/models"
	"github.com/CapitalOne-RedFlags/BlueFlag/internal/observability"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/frauddetector"
	"github.com/aws/aws-sdk-go-v2/service/frauddetector/types"
	"github.com/aws/aws-xray-sdk-go/xray"
)

// PredictionService issues real-time predictions against the hosted
// detector and fans results out to alerting and the results queue.
type PredictionService interface {
	PredictEvent(ctx context.Context, event models.EventRecord) (*models.PredictionResult, error)
	PredictBatch(ctx context.Context, records []models.EventRecord) ([]models.PredictionResult, []models.PredictionResult, error)
}

type BfPredictionService struct {
	Client            fdclient.FraudDetectorAPI
	EventDispatcher   events.EventDispatcher
	Results           *messaging.SQSHandler
	DetectorID        string
	DetectorVersionID string
	EventTypeName     string
	ScoreVariableName string
	HighRiskOutcome   string
}

func NewBfPredictionService(client fdclient.FraudDetectorAPI, dispatcher events.EventDispatcher, results *messaging.SQSHandler,
	detectorID, detectorVersionID, eventTypeName, scoreVariableName, highRiskOutcome string) *BfPredictionService {
	return &BfPredictionService{
		Client:            client,
		EventDispatcher:   dispatcher,
		Results:           results,
		DetectorID:        detectorID,
		DetectorVersionID: detectorVersionID,
		EventTypeName:     eventTypeName,
		ScoreVariableName: scoreVariableName,
		HighRiskOutcome:   highRiskOutcome,
	}
}

// PredictEvent scores one event against the active detector version.
func (ps *BfPredictionService) PredictEvent(ctx context.Context, event models.EventRecord) (*models.PredictionResult, error) {
	if err := event.ValidateEventRecord(); err != nil {
		return nil, fmt.Errorf("invalid event %s: %w", event.EventID, err)
	}

	input := &frauddetector.GetEventPredictionInput{
		DetectorId:        aws.String(ps.DetectorID),
		DetectorVersionId: aws.String(ps.DetectorVersionID),
		EventId:           aws.String(event.EventID),
		EventTypeName:     aws.String(ps.EventTypeName),
		EventTimestamp:    aws.String(event.EventTimestamp),
		Entities: []types.Entity{
			{
				EntityType: aws.String(event.EntityType),
				EntityId:   aws.String(event.EntityID),
			},
		},
		EventVariables: event.Variables,
	}

	output, err := ps.Client.GetEventPrediction(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to get prediction for event %s: %w", event.EventID, err)
	}

	result := &models.PredictionResult{EventID: event.EventID}

	for _, modelScore := range output.ModelScores {
		if modelScore.ModelVersion != nil {
			result.ModelVersion = aws.ToString(modelScore.ModelVersion.ModelVersionNumber)
		}
		if score, exists := modelScore.Scores[ps.ScoreVariableName]; exists {
			result.Score = score
		}
	}

	for _, ruleResult := range output.RuleResults {
		if len(ruleResult.Outcomes) == 0 {
			continue
		}
		result.MatchedRuleIDs = append(result.MatchedRuleIDs, aws.ToString(ruleResult.RuleId))
		result.Outcomes = append(result.Outcomes, ruleResult.Outcomes...)
	}

	return result, nil
}

// PredictBatch scores events concurrently, dispatches alerts for high-risk
// outcomes and forwards every result downstream. It returns the high-risk
// and cleared results separately.
func (ps *BfPredictionService) PredictBatch(ctx context.Context, records []models.EventRecord) ([]models.PredictionResult, []models.PredictionResult, error) {
	ctx, seg := xray.BeginSegment(ctx, "PredictBatch")
	defer seg.Close(nil)

	observability.SafeAddMetadata(seg, observability.KeyEventRecordsCount, len(records))

	var wg sync.WaitGroup
	errorResults := make(chan error, len(records))
	highRiskResults := make(chan models.PredictionResult, len(records))
	clearedResults := make(chan models.PredictionResult, len(records))

	for _, event := range records {
		wg.Add(1)
		go func(event models.EventRecord) {
			defer wg.Done()

			result, err := ps.PredictEvent(ctx, event)
			if err != nil {
				errorResults <- err
				return
			}

			if ps.Results != nil {
				if err := ps.Results.SendPredictionResult(ctx, result); err != nil {
					errorResults <- fmt.Errorf("failed to forward result for event %s: %w", event.EventID, err)
					return
				}
			}

			if result.HasOutcome(ps.HighRiskOutcome) {
				if err := ps.EventDispatcher.DispatchFraudAlertEvent(event, *result); err != nil {
					errorResults <- fmt.Errorf("failed to dispatch alert for event %s: %w", event.EventID, err)
					return
				}
				highRiskResults <- *result
			} else {
				clearedResults <- *result
			}
		}(event)
	}

	wg.Wait()
	close(errorResults)
	close(highRiskResults)
	close(clearedResults)

	var highRisk []models.PredictionResult
	for result := range highRiskResults {
		highRisk = append(highRisk, result)
	}

	var cleared []models.PredictionResult
	for result := range clearedResults {
		cleared = append(cleared, result)
	}

	if len(highRisk) > 0 {
		var eventIDs []string
		for _, result := range highRisk {
			eventIDs = append(eventIDs, result.EventID)
		}
		observability.SafeAddMetadata(seg, observability.KeyHighRiskDetected, true)
		observability.SafeAddMetadata(seg, observability.KeyHighRiskCount, len(highRisk))
		observability.SafeAddMetadata(seg, observability.KeyHighRiskEventIDs, eventIDs)
	} else {
		observability.SafeAddMetadata(seg, observability.KeyHighRiskDetected, false)
		observability.SafeAddMetadata(seg, observability.KeyHighRiskCount, 0)
	}

	return highRisk, cleared, middleware.MergeErrors(errorResults)
}
