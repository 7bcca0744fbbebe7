package main

import (
	"context"
	"log"

	internalConfig "github.com/CapitalOne-RedFlags/BlueFlag/internal/config"
	"github.com/CapitalOne-RedFlags/BlueFlag/internal/dataset"
	"github.com/CapitalOne-RedFlags/BlueFlag/internal/db"
	"github.com/CapitalOne-RedFlags/BlueFlag/internal/detector"
	"github.com/CapitalOne-RedFlags/BlueFlag/internal/models"
	"github.com/CapitalOne-RedFlags/BlueFlag/internal/registry"
	"github.com/CapitalOne-RedFlags/BlueFlag/internal/rules"
	"github.com/CapitalOne-RedFlags/BlueFlag/internal/setup"
	"github.com/CapitalOne-RedFlags/BlueFlag/internal/training"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/frauddetector"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

func main() {
	internalConfig.InitializeConfig()
	ctx := context.Background()

	awsConfig, err := internalConfig.LoadAWSConfig(ctx)
	if err != nil {
		log.Fatalf("Unable to load AWS config: %v", err)
	}

	// A stable RUN_ID lets teardown find this run's ledger entries.
	runID := internalConfig.GetEnv("RUN_ID", uuid.New().String())
	log.Printf("Bootstrap run %s", runID)

	fdClient := frauddetector.NewFromConfig(awsConfig.Config)
	s3Client := s3.NewFromConfig(awsConfig.Config)
	dynamoClient := dynamodb.NewFromConfig(awsConfig.Config)

	ledger := db.NewLedgerRepository(db.NewDynamoDBClient(dynamoClient, internalConfig.LedgerConfig.TableName))

	fraudCfg := internalConfig.FraudConfig
	datasetCfg := internalConfig.DatasetConfig
	pollingCfg := internalConfig.PollingConfig

	pipeline := setup.NewBfSetupPipeline(
		registry.NewBfResourceRegistry(fdClient, ledger, runID),
		dataset.NewBfDatasetService(s3Client, datasetCfg.S3Bucket, datasetCfg.S3Key),
		training.NewBfModelTrainer(fdClient, ledger, runID, training.PollSettings{
			InitialInterval: pollingCfg.InitialInterval,
			MaxInterval:     pollingCfg.MaxInterval,
			MaxElapsedTime:  pollingCfg.MaxElapsedTime,
		}),
		rules.NewBfRuleService(fdClient, ledger, runID, fraudCfg.DetectorID),
		detector.NewBfDetectorService(fdClient, ledger, runID, fraudCfg.DetectorID),
	)

	summary, err := pipeline.Run(ctx, buildPlan())
	if err != nil {
		log.Fatalf("Bootstrap failed: %v", err)
	}

	log.Printf("Detector %s version %s is live (run %s)", fraudCfg.DetectorID, summary.DetectorVersionID, runID)
}

// buildPlan assembles the provisioning plan for the registration fraud
// detector: two event variables, fraud/legit labels, one customer entity
// and three score-band rules.
func buildPlan() *setup.SetupPlan {
	fraudCfg := internalConfig.FraudConfig
	datasetCfg := internalConfig.DatasetConfig

	variables := []models.VariableDefinition{
		{
			Name:         "ip_address",
			VariableType: "IP_ADDRESS",
			DataType:     "STRING",
			DefaultValue: "<unknown>",
			Description:  "Registration source IP",
		},
		{
			Name:         "email_address",
			VariableType: "EMAIL_ADDRESS",
			DataType:     "STRING",
			DefaultValue: "<unknown>",
			Description:  "Registration email",
		},
	}

	labels := []models.LabelDefinition{
		{Name: "fraud", Description: "Registration confirmed fraudulent"},
		{Name: "legit", Description: "Registration confirmed legitimate"},
	}

	variableNames := make([]string, 0, len(variables))
	for _, variable := range variables {
		variableNames = append(variableNames, variable.Name)
	}

	labelNames := make([]string, 0, len(labels))
	for _, label := range labels {
		labelNames = append(labelNames, label.Name)
	}

	return &setup.SetupPlan{
		Variables: variables,
		Labels:    labels,
		EntityType: models.EntityTypeDefinition{
			Name:        fraudCfg.EntityTypeName,
			Description: "Customer performing the event",
		},
		EventType: models.EventTypeDefinition{
			Name:        fraudCfg.EventTypeName,
			Variables:   variableNames,
			Labels:      labelNames,
			EntityTypes: []string{fraudCfg.EntityTypeName},
			Description: "Account registration event",
		},
		Model: models.ModelPlan{
			ModelID:       fraudCfg.ModelID,
			ModelType:     fraudCfg.ModelType,
			EventTypeName: fraudCfg.EventTypeName,
			VariableNames: variableNames,
			FraudLabels:   []string{"fraud"},
			LegitLabels:   []string{"legit"},
		},
		RuleBands: [3]setup.RuleBand{
			{
				RuleID:      "high_fraud_risk",
				Outcome:     models.OutcomeDefinition{Name: "verify_customer", Description: "Hold the account pending identity verification"},
				Description: "Score above the high threshold",
			},
			{
				RuleID:      "medium_fraud_risk",
				Outcome:     models.OutcomeDefinition{Name: "review", Description: "Queue the event for manual review"},
				Description: "Score between the thresholds",
			},
			{
				RuleID:      "low_fraud_risk",
				Outcome:     models.OutcomeDefinition{Name: "approve", Description: "Approve the event"},
				Description: "Score at or below the low threshold",
			},
		},
		ScoreVariable:     fraudCfg.ScoreVariableName,
		HighThreshold:     fraudCfg.HighScoreThreshold,
		LowThreshold:      fraudCfg.LowScoreThreshold,
		ExecutionMode:     fraudCfg.RuleExecutionMode,
		DetectorDesc:      fraudCfg.DetectorDescription,
		DataAccessRoleArn: datasetCfg.DataAccessRoleArn,
		LocalCSVPath:      datasetCfg.LocalCSVPath,
	}
}
