package detector

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/CapitalOne-RedFlags/BlueFlag/internal/db"
	fdclient "github.com/CapitalOne-RedFlags/BlueFlag/internal/frauddetector"
	"github.com/CapitalOne-RedFlags/BlueFlag/internal/middleware"
	"github.com/CapitalOne-RedFlags/BlueFlag/internal/models"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/frauddetector"
	"github.com/aws/aws-sdk-go-v2/service/frauddetector/types"
)

// DetectorService assembles rules and model versions into detector
// versions and tears the whole detector down in dependency order.
type DetectorService interface {
	EnsureDetector(ctx context.Context, eventTypeName, description string) (bool, error)
	CreateVersion(ctx context.Context, detectorRules []types.Rule, modelVersions []types.ModelVersion, executionMode string) (string, error)
	ActivateVersion(ctx context.Context, versionID string) error
	Teardown(ctx context.Context) error
}

type BfDetectorService struct {
	Client     fdclient.FraudDetectorAPI
	Ledger     db.LedgerRepository
	RunID      string
	DetectorID string
}

func NewBfDetectorService(client fdclient.FraudDetectorAPI, ledger db.LedgerRepository, runID, detectorID string) *BfDetectorService {
	return &BfDetectorService{
		Client:     client,
		Ledger:     ledger,
		RunID:      runID,
		DetectorID: detectorID,
	}
}

// EnsureDetector creates the detector container unless it already exists.
func (s *BfDetectorService) EnsureDetector(ctx context.Context, eventTypeName, description string) (bool, error) {
	output, err := s.Client.GetDetectors(ctx, &frauddetector.GetDetectorsInput{})
	if err != nil {
		return false, fmt.Errorf("failed to list detectors: %w", err)
	}
	for _, detector := range output.Detectors {
		if aws.ToString(detector.DetectorId) == s.DetectorID {
			log.Printf("Detector %s already exists, skipping", s.DetectorID)
			return false, nil
		}
	}

	_, err = s.Client.PutDetector(ctx, &frauddetector.PutDetectorInput{
		DetectorId:    aws.String(s.DetectorID),
		EventTypeName: aws.String(eventTypeName),
		Description:   aws.String(description),
	})
	if err != nil {
		return false, fmt.Errorf("failed to create detector %s: %w", s.DetectorID, err)
	}

	return true, s.record(ctx, models.KindDetector, s.DetectorID, "")
}

// CreateVersion binds the rule versions and model versions into a new
// detector version and returns its id. The version starts in DRAFT.
func (s *BfDetectorService) CreateVersion(ctx context.Context, detectorRules []types.Rule, modelVersions []types.ModelVersion, executionMode string) (string, error) {
	output, err := s.Client.CreateDetectorVersion(ctx, &frauddetector.CreateDetectorVersionInput{
		DetectorId:        aws.String(s.DetectorID),
		Rules:             detectorRules,
		ModelVersions:     modelVersions,
		RuleExecutionMode: types.RuleExecutionMode(executionMode),
	})
	if err != nil {
		return "", fmt.Errorf("failed to create detector version for %s: %w", s.DetectorID, err)
	}

	versionID := aws.ToString(output.DetectorVersionId)
	log.Printf("Created detector %s version %s (%s)", s.DetectorID, versionID, executionMode)

	return versionID, s.record(ctx, models.KindDetectorVersion, s.DetectorID, versionID)
}

// ActivateVersion promotes a detector version to ACTIVE. The service
// permits at most one active version per detector.
func (s *BfDetectorService) ActivateVersion(ctx context.Context, versionID string) error {
	return s.updateVersionStatus(ctx, versionID, types.DetectorVersionStatusActive)
}

// Teardown removes the detector and everything under it. Ordering matters:
// the service rejects deleting a rule referenced by a surviving detector
// version, so versions are deactivated and deleted before any rule, and
// the container goes last.
func (s *BfDetectorService) Teardown(ctx context.Context) error {
	summaries, err := s.listVersionSummaries(ctx)
	if err != nil {
		if middleware.IsResourceNotFound(err) {
			log.Printf("Detector %s already gone", s.DetectorID)
			return nil
		}
		return err
	}

	// Deactivate any active version first; active versions cannot be deleted.
	for _, summary := range summaries {
		if summary.Status != types.DetectorVersionStatusActive {
			continue
		}
		if err := s.updateVersionStatus(ctx, aws.ToString(summary.DetectorVersionId), types.DetectorVersionStatusInactive); err != nil {
			return err
		}
	}

	for _, summary := range summaries {
		versionID := aws.ToString(summary.DetectorVersionId)
		_, err := s.Client.DeleteDetectorVersion(ctx, &frauddetector.DeleteDetectorVersionInput{
			DetectorId:        aws.String(s.DetectorID),
			DetectorVersionId: aws.String(versionID),
		})
		if err != nil && !middleware.IsResourceNotFound(err) {
			return fmt.Errorf("failed to delete detector version %s/%s: %w", s.DetectorID, versionID, err)
		}
		log.Printf("Deleted detector version %s/%s", s.DetectorID, versionID)
	}

	if err := s.deleteAllRules(ctx); err != nil {
		return err
	}

	_, err = s.Client.DeleteDetector(ctx, &frauddetector.DeleteDetectorInput{
		DetectorId: aws.String(s.DetectorID),
	})
	if err != nil && !middleware.IsResourceNotFound(err) {
		return fmt.Errorf("failed to delete detector %s: %w", s.DetectorID, err)
	}

	log.Printf("Deleted detector %s", s.DetectorID)
	return nil
}

func (s *BfDetectorService) deleteAllRules(ctx context.Context) error {
	var nextToken *string
	for {
		output, err := s.Client.GetRules(ctx, &frauddetector.GetRulesInput{
			DetectorId: aws.String(s.DetectorID),
			NextToken:  nextToken,
		})
		if err != nil {
			if middleware.IsResourceNotFound(err) {
				return nil
			}
			return fmt.Errorf("failed to list rules for detector %s: %w", s.DetectorID, err)
		}

		for _, detail := range output.RuleDetails {
			_, err := s.Client.DeleteRule(ctx, &frauddetector.DeleteRuleInput{
				Rule: &types.Rule{
					DetectorId:  aws.String(s.DetectorID),
					RuleId:      detail.RuleId,
					RuleVersion: detail.RuleVersion,
				},
			})
			if err != nil && !middleware.IsResourceNotFound(err) {
				return fmt.Errorf("failed to delete rule %s version %s: %w",
					aws.ToString(detail.RuleId), aws.ToString(detail.RuleVersion), err)
			}
			log.Printf("Deleted rule %s version %s", aws.ToString(detail.RuleId), aws.ToString(detail.RuleVersion))
		}

		if output.NextToken == nil {
			return nil
		}
		nextToken = output.NextToken
	}
}

func (s *BfDetectorService) listVersionSummaries(ctx context.Context) ([]types.DetectorVersionSummary, error) {
	var summaries []types.DetectorVersionSummary
	var nextToken *string

	for {
		output, err := s.Client.DescribeDetector(ctx, &frauddetector.DescribeDetectorInput{
			DetectorId: aws.String(s.DetectorID),
			NextToken:  nextToken,
		})
		if err != nil {
			return nil, err
		}

		summaries = append(summaries, output.DetectorVersionSummaries...)

		if output.NextToken == nil {
			return summaries, nil
		}
		nextToken = output.NextToken
	}
}

func (s *BfDetectorService) updateVersionStatus(ctx context.Context, versionID string, status types.DetectorVersionStatus) error {
	_, err := s.Client.UpdateDetectorVersionStatus(ctx, &frauddetector.UpdateDetectorVersionStatusInput{
		DetectorId:        aws.String(s.DetectorID),
		DetectorVersionId: aws.String(versionID),
		Status:            status,
	})
	if err != nil {
		return fmt.Errorf("failed to update detector version %s/%s to %s: %w", s.DetectorID, versionID, status, err)
	}

	log.Printf("Detector version %s/%s is now %s", s.DetectorID, versionID, status)
	return nil
}

func (s *BfDetectorService) record(ctx context.Context, kind, name, version string) error {
	resource := models.NewProvisionedResource(s.RunID, kind, name, version, time.Now().UTC().Format(time.RFC3339))
	return s.Ledger.RecordResource(ctx, resource)
}
