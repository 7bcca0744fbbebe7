package rules

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/CapitalOne-RedFlags/BlueFlag/internal/db"
	fdclient "github.com/CapitalOne-RedFlags/BlueFlag/internal/frauddetector"
	"github.com/CapitalOne-RedFlags/BlueFlag/internal/middleware"
	"github.com/CapitalOne-RedFlags/BlueFlag/internal/models"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/frauddetector"
	"github.com/aws/aws-sdk-go-v2/service/frauddetector/types"
)

// RuleService manages the rules of one detector. A rule whose expression
// changed gets a new immutable rule version; an unchanged rule is reused.
type RuleService interface {
	EnsureRule(ctx context.Context, def *models.RuleDefinition) (*types.Rule, error)
	DeleteRuleVersions(ctx context.Context, ruleID string) error
}

type BfRuleService struct {
	Client     fdclient.FraudDetectorAPI
	Ledger     db.LedgerRepository
	RunID      string
	DetectorID string
}

func NewBfRuleService(client fdclient.FraudDetectorAPI, ledger db.LedgerRepository, runID, detectorID string) *BfRuleService {
	return &BfRuleService{
		Client:     client,
		Ledger:     ledger,
		RunID:      runID,
		DetectorID: detectorID,
	}
}

// EnsureRule creates the rule if absent, creates a new version when the
// expression or outcomes changed, and otherwise returns the latest
// existing version untouched.
func (s *BfRuleService) EnsureRule(ctx context.Context, def *models.RuleDefinition) (*types.Rule, error) {
	if err := def.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rule definition: %w", err)
	}

	latest, err := s.latestRuleVersion(ctx, def.RuleID)
	if err != nil {
		return nil, err
	}

	if latest == nil {
		output, err := s.Client.CreateRule(ctx, &frauddetector.CreateRuleInput{
			DetectorId:  aws.String(s.DetectorID),
			RuleId:      aws.String(def.RuleID),
			Expression:  aws.String(def.Expression),
			Language:    types.LanguageDetectorpl,
			Outcomes:    def.Outcomes,
			Description: aws.String(def.Description),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create rule %s: %w", def.RuleID, err)
		}

		rule := output.Rule
		if err := s.record(ctx, def.RuleID, aws.ToString(rule.RuleVersion)); err != nil {
			return nil, err
		}

		log.Printf("Created rule %s version %s", def.RuleID, aws.ToString(rule.RuleVersion))
		return rule, nil
	}

	if aws.ToString(latest.Expression) == def.Expression {
		log.Printf("Rule %s version %s unchanged, reusing", def.RuleID, aws.ToString(latest.RuleVersion))
		return &types.Rule{
			DetectorId:  aws.String(s.DetectorID),
			RuleId:      aws.String(def.RuleID),
			RuleVersion: latest.RuleVersion,
		}, nil
	}

	output, err := s.Client.UpdateRuleVersion(ctx, &frauddetector.UpdateRuleVersionInput{
		Rule: &types.Rule{
			DetectorId:  aws.String(s.DetectorID),
			RuleId:      aws.String(def.RuleID),
			RuleVersion: latest.RuleVersion,
		},
		Expression:  aws.String(def.Expression),
		Language:    types.LanguageDetectorpl,
		Outcomes:    def.Outcomes,
		Description: aws.String(def.Description),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update rule %s: %w", def.RuleID, err)
	}

	rule := output.Rule
	if err := s.record(ctx, def.RuleID, aws.ToString(rule.RuleVersion)); err != nil {
		return nil, err
	}

	log.Printf("Updated rule %s to version %s", def.RuleID, aws.ToString(rule.RuleVersion))
	return rule, nil
}

// DeleteRuleVersions deletes every version of a rule. Callers must only
// invoke this once no detector version references the rule.
func (s *BfRuleService) DeleteRuleVersions(ctx context.Context, ruleID string) error {
	output, err := s.Client.GetRules(ctx, &frauddetector.GetRulesInput{
		DetectorId: aws.String(s.DetectorID),
		RuleId:     aws.String(ruleID),
	})
	if err != nil {
		if middleware.IsResourceNotFound(err) {
			return nil
		}
		return fmt.Errorf("failed to list versions of rule %s: %w", ruleID, err)
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
			return fmt.Errorf("failed to delete rule %s version %s: %w", ruleID, aws.ToString(detail.RuleVersion), err)
		}
		log.Printf("Deleted rule %s version %s", ruleID, aws.ToString(detail.RuleVersion))
	}

	return nil
}

// latestRuleVersion returns the highest-numbered version of a rule, or nil
// when the rule does not exist yet.
func (s *BfRuleService) latestRuleVersion(ctx context.Context, ruleID string) (*types.RuleDetail, error) {
	output, err := s.Client.GetRules(ctx, &frauddetector.GetRulesInput{
		DetectorId: aws.String(s.DetectorID),
		RuleId:     aws.String(ruleID),
	})
	if err != nil {
		if middleware.IsResourceNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list rules for detector %s: %w", s.DetectorID, err)
	}

	var latest *types.RuleDetail
	var latestVersion int
	for i := range output.RuleDetails {
		detail := &output.RuleDetails[i]
		version, err := strconv.Atoi(aws.ToString(detail.RuleVersion))
		if err != nil {
			continue
		}
		if latest == nil || version > latestVersion {
			latest = detail
			latestVersion = version
		}
	}

	return latest, nil
}

func (s *BfRuleService) record(ctx context.Context, ruleID, version string) error {
	resource := models.NewProvisionedResource(s.RunID, models.KindRule, ruleID, version, time.Now().UTC().Format(time.RFC3339))
	return s.Ledger.RecordResource(ctx, resource)
}
