package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	internalConfig "github.com/CapitalOne-RedFlags/BlueFlag/internal/config"
	"github.com/CapitalOne-RedFlags/BlueFlag/internal/events"
	"github.com/CapitalOne-RedFlags/BlueFlag/internal/messaging"
	"github.com/CapitalOne-RedFlags/BlueFlag/internal/middleware"
	"github.com/CapitalOne-RedFlags/BlueFlag/internal/models"
	"github.com/CapitalOne-RedFlags/BlueFlag/internal/observability"
	"github.com/CapitalOne-RedFlags/BlueFlag/internal/prediction"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/frauddetector"
	fdtypes "github.com/aws/aws-sdk-go-v2/service/frauddetector/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/google/uuid"
)

// ProcessingState tracks which events have been scored
type ProcessingState struct {
	LastProcessedIndex int       `json:"lastProcessedIndex"`
	LastRunTime        time.Time `json:"lastRunTime"`
}

func main() {
	internalConfig.InitializeConfig()
	ctx := context.Background()

	shutdown := observability.InitTracer("blueflag-predict", "1.0.0")
	defer func() {
		if err := shutdown(ctx); err != nil {
			log.Printf("Error shutting down tracer: %v", err)
		}
	}()

	batchSize, err := strconv.Atoi(os.Getenv("BATCH_SIZE"))
	if err != nil || batchSize <= 0 {
		batchSize = 10 // Default batch size if not specified or invalid
		log.Printf("Using default batch size: %d", batchSize)
	} else {
		log.Printf("Using configured batch size: %d", batchSize)
	}

	awsConfig, err := internalConfig.LoadAWSConfig(ctx)
	if err != nil {
		log.Fatalf("Unable to load AWS config: %v", err)
	}

	fraudCfg := internalConfig.FraudConfig
	fdClient := frauddetector.NewFromConfig(awsConfig.Config)

	versionID := internalConfig.GetEnv("DETECTOR_VERSION_ID", "")
	if versionID == "" {
		versionID, err = activeDetectorVersion(ctx, fdClient, fraudCfg.DetectorID)
		if err != nil {
			log.Fatalf("Unable to resolve active detector version: %v", err)
		}
	}
	log.Printf("Scoring against detector %s version %s", fraudCfg.DetectorID, versionID)

	snsCfg := internalConfig.SNSMessengerConfig
	messenger := messaging.NewBfSNSMessenger(sns.NewFromConfig(awsConfig.Config),
		snsCfg.TopicName, snsCfg.TopicArn, snsCfg.TwilioUsername, snsCfg.TwilioPassword)
	dispatcher := events.NewBfEventDispatcher(messenger, internalConfig.GetEnv("REVIEWER_PHONE_NUMBER", ""))

	var results *messaging.SQSHandler
	if internalConfig.SQSConfig.ResultsQueueURL != "" {
		results = messaging.NewSQSHandler(sqs.NewFromConfig(awsConfig.Config), internalConfig.SQSConfig.ResultsQueueURL)
	}

	service := prediction.NewBfPredictionService(fdClient, dispatcher, results,
		fraudCfg.DetectorID, versionID, fraudCfg.EventTypeName,
		fraudCfg.ScoreVariableName, internalConfig.GetEnv("HIGH_RISK_OUTCOME", "verify_customer"))

	csvFilePath := internalConfig.GetEnv("EVENTS_CSV_PATH", "registration_events.csv")
	log.Printf("Using events CSV: %s", csvFilePath)

	statePath := filepath.Join(filepath.Dir(csvFilePath), "."+filepath.Base(csvFilePath)+".state")

	state, err := loadOrCreateState(statePath)
	if err != nil {
		log.Fatalf("Failed to load or create state: %v", err)
	}

	file, err := os.Open(csvFilePath)
	if err != nil {
		log.Fatalf("Unable to open events CSV: %v", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)

	header, err := reader.Read()
	if err != nil {
		log.Fatalf("Error reading CSV header: %v", err)
	}

	colMap := make(map[string]int)
	for i, col := range header {
		colMap[col] = i
	}

	// Skip to last processed index
	currentIndex := 0
	for currentIndex < state.LastProcessedIndex {
		if _, err := reader.Read(); err == io.EOF {
			log.Printf("Reached end of file while skipping to last processed index")
			return
		} else if err != nil {
			log.Fatalf("Error skipping records: %v", err)
		}
		currentIndex++
	}

	var batchCount int
	var totalScored int
	var totalHighRisk int
	var currentBatch []models.EventRecord

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Printf("Error reading record: %v", err)
			continue
		}

		currentIndex++

		event, err := models.ParseEventRecord(record, colMap, fraudCfg.EntityTypeName)
		if err != nil {
			log.Printf("Error parsing event at index %d: %v", currentIndex, err)
			continue
		}
		event.EventID = uuid.New().String()
		if event.EntityID == "" {
			event.EntityID = "unknown"
		}

		currentBatch = append(currentBatch, *event)

		if len(currentBatch) >= batchSize {
			highRisk := scoreBatch(ctx, service, currentBatch, batchCount+1)
			totalHighRisk += highRisk
			totalScored += len(currentBatch)
			batchCount++

			state.LastProcessedIndex = currentIndex
			if err := saveState(state, statePath); err != nil {
				log.Printf("Error saving state: %v", err)
			}

			currentBatch = nil
		}
	}

	if len(currentBatch) > 0 {
		highRisk := scoreBatch(ctx, service, currentBatch, batchCount+1)
		totalHighRisk += highRisk
		totalScored += len(currentBatch)
		batchCount++

		state.LastProcessedIndex = currentIndex
		if err := saveState(state, statePath); err != nil {
			log.Printf("Error saving state: %v", err)
		}
	}

	state.LastRunTime = time.Now()
	if err := saveState(state, statePath); err != nil {
		log.Printf("Error saving final state: %v", err)
	}

	log.Printf("Scoring complete. %d events in %d batches, %d flagged high risk", totalScored, batchCount, totalHighRisk)
}

// scoreBatch scores one batch and returns how many events came back high risk
func scoreBatch(ctx context.Context, service *prediction.BfPredictionService, batch []models.EventRecord, batchNumber int) int {
	startTime := time.Now()

	highRisk, cleared, err := service.PredictBatch(ctx, batch)
	if err != nil {
		log.Printf("Batch %d completed with errors: %v", batchNumber, err)
	}

	for _, result := range highRisk {
		fmt.Printf("Event %s: score %.0f, outcomes %v\n", result.EventID, result.Score, result.Outcomes)
	}

	log.Printf("Batch %d: %d/%d scored (%d high risk) in %v",
		batchNumber, len(highRisk)+len(cleared), len(batch), len(highRisk), time.Since(startTime))

	return len(highRisk)
}

// activeDetectorVersion finds the single ACTIVE version of the detector.
func activeDetectorVersion(ctx context.Context, client *frauddetector.Client, detectorID string) (string, error) {
	var nextToken *string
	for {
		output, err := client.DescribeDetector(ctx, &frauddetector.DescribeDetectorInput{
			DetectorId: aws.String(detectorID),
			NextToken:  nextToken,
		})
		if err != nil {
			if middleware.IsResourceNotFound(err) {
				return "", fmt.Errorf("detector %s does not exist; run bootstrap first", detectorID)
			}
			return "", err
		}

		for _, summary := range output.DetectorVersionSummaries {
			if summary.Status == fdtypes.DetectorVersionStatusActive {
				return aws.ToString(summary.DetectorVersionId), nil
			}
		}

		if output.NextToken == nil {
			return "", fmt.Errorf("detector %s has no active version", detectorID)
		}
		nextToken = output.NextToken
	}
}

// loadOrCreateState loads the processing state or creates a new one
func loadOrCreateState(statePath string) (*ProcessingState, error) {
	state := &ProcessingState{
		LastProcessedIndex: 0,
		LastRunTime:        time.Time{},
	}

	if _, err := os.Stat(statePath); err == nil {
		stateFile, err := os.Open(statePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open state file: %w", err)
		}
		defer stateFile.Close()

		if err := json.NewDecoder(stateFile).Decode(state); err != nil {
			return nil, fmt.Errorf("failed to decode state: %w", err)
		}

		return state, nil
	}

	return state, nil
}

// saveState saves the processing state to disk
func saveState(state *ProcessingState, statePath string) error {
	tempFile, err := os.CreateTemp(filepath.Dir(statePath), ".tmp-state")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tempPath := tempFile.Name()

	if err := json.NewEncoder(tempFile).Encode(state); err != nil {
		tempFile.Close()
		os.Remove(tempPath)
		return fmt.Errorf("failed to encode state: %w", err)
	}

	tempFile.Close()

	if err := os.Rename(tempPath, statePath); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to replace state file: %w", err)
	}

	return nil
}
