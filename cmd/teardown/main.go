package main

import (
	"context"
	"log"

	internalConfig "github.com/CapitalOne-RedFlags/BlueFlag/internal/config"
	"github.com/CapitalOne-RedFlags/BlueFlag/internal/db"
	"github.com/CapitalOne-RedFlags/BlueFlag/internal/detector"
	"github.com/CapitalOne-RedFlags/BlueFlag/internal/models"
	"github.com/CapitalOne-RedFlags/BlueFlag/internal/training"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/frauddetector"
)

// Teardown order mirrors the service's referential constraints: detector
// versions first (deactivated, then deleted), then rules, then the
// detector container. Model versions cannot be deleted, only deactivated.
func main() {
	internalConfig.InitializeConfig()
	ctx := context.Background()

	runID := internalConfig.GetEnv("RUN_ID", "")
	if runID == "" {
		log.Fatal("RUN_ID is required to tear down a bootstrap run")
	}

	awsConfig, err := internalConfig.LoadAWSConfig(ctx)
	if err != nil {
		log.Fatalf("Unable to load AWS config: %v", err)
	}

	fdClient := frauddetector.NewFromConfig(awsConfig.Config)
	dynamoClient := dynamodb.NewFromConfig(awsConfig.Config)

	ledger := db.NewLedgerRepository(db.NewDynamoDBClient(dynamoClient, internalConfig.LedgerConfig.TableName))

	fraudCfg := internalConfig.FraudConfig
	pollingCfg := internalConfig.PollingConfig

	detectorService := detector.NewBfDetectorService(fdClient, ledger, runID, fraudCfg.DetectorID)
	trainer := training.NewBfModelTrainer(fdClient, ledger, runID, training.PollSettings{
		InitialInterval: pollingCfg.InitialInterval,
		MaxInterval:     pollingCfg.MaxInterval,
		MaxElapsedTime:  pollingCfg.MaxElapsedTime,
	})

	if err := detectorService.Teardown(ctx); err != nil {
		log.Fatalf("Teardown failed: %v", err)
	}

	resources, err := ledger.ListRunResources(ctx, runID)
	if err != nil {
		log.Fatalf("Unable to list ledger records for run %s: %v", runID, err)
	}

	for _, resource := range resources {
		if resource.Kind == models.KindModelVersion {
			plan := &models.ModelPlan{
				ModelID:   resource.Name,
				ModelType: fraudCfg.ModelType,
			}
			if err := trainer.DeactivateModelVersion(ctx, plan, resource.Version); err != nil {
				log.Printf("Warning: could not deactivate model version %s/%s: %v", resource.Name, resource.Version, err)
				continue
			}
			log.Printf("Deactivated model version %s/%s", resource.Name, resource.Version)
		}

		if err := ledger.DeleteResourceRecord(ctx, runID, resource.ResourceKey); err != nil {
			log.Printf("Warning: could not delete ledger record %s: %v", resource.ResourceKey, err)
		}
	}

	log.Printf("Teardown of run %s complete (%d ledger records cleared)", runID, len(resources))
}
