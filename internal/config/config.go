package config

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"regexp"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/joho/godotenv"
)

const projectDirName = "BlueFlag" // Your project name

type TwilioSecrets struct {
	Username string `json:"TWILIO_USERNAME"`
	Password string `json:"TWILIO_PASSWORD"`
}

// LoadEnv loads environment variables from a .env file
func LoadEnv() {
	// Find project root directory dynamically
	projectName := regexp.MustCompile(`^(.*` + projectDirName + `)`)
	currentWorkDirectory, _ := os.Getwd()
	rootPath := projectName.Find([]byte(currentWorkDirectory))

	// Try to load .env from project root
	err := godotenv.Load(string(rootPath) + `/.env`)
	if err != nil {
		log.Printf("Warning: Could not load .env file from project root: %v", err)

		// Fallback to current directory
		if err := godotenv.Load(); err != nil {
			log.Println("Warning: No .env file found in current directory")
		}
	} else {
		log.Printf("Loaded environment from %s/.env", string(rootPath))
	}
}

// FraudConfig stores the detector resources this tool provisions.
var FraudConfig = &struct {
	DetectorID          string
	DetectorDescription string
	EventTypeName       string
	EntityTypeName      string
	ModelID             string
	ModelType           string
	ScoreVariableName   string
	HighScoreThreshold  int
	LowScoreThreshold   int
	RuleExecutionMode   string
}{}

// DatasetConfig stores the training data location.
var DatasetConfig = &struct {
	S3Bucket          string
	S3Key             string
	DataAccessRoleArn string
	LocalCSVPath      string
}{}

// PollingConfig bounds the wait loops for model training and activation.
var PollingConfig = &struct {
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxElapsedTime  time.Duration
}{}

// LedgerConfig stores the provisioning ledger table settings.
var LedgerConfig = &struct {
	TableName string
	Keys      struct {
		PartitionKey string
		SortKey      string
	}
}{}

// SQSConfig stores SQS-specific configurations
var SQSConfig = &struct {
	ResultsQueueURL string
}{}

var SNSMessengerConfig = &struct {
	TopicName      string
	TopicArn       string
	TwilioUsername string
	TwilioPassword string
}{}

// AWSConfig stores AWS-specific configurations
type AWSConfig struct {
	Region      string
	Credentials aws.Credentials
	Config      aws.Config
}

// GetEnv retrieves an environment variable or returns a default value
func GetEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// GetEnvInt retrieves an integer environment variable or returns a default value
func GetEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
		log.Printf("Warning: %s is not an integer, using default %d", key, fallback)
	}
	return fallback
}

// GetEnvDuration retrieves a duration environment variable or returns a default value
func GetEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
		log.Printf("Warning: %s is not a duration, using default %s", key, fallback)
	}
	return fallback
}

// LoadAWSConfig initializes and returns a new AWSConfig instance
func LoadAWSConfig(ctx context.Context) (*AWSConfig, error) {
	region := GetEnv("AWS_REGION", "us-east-1")

	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.StaticCredentialsProvider{
			Value: aws.Credentials{
				AccessKeyID:     GetEnv("AWS_ACCESS_KEY_ID", ""),
				SecretAccessKey: GetEnv("AWS_SECRET_ACCESS_KEY", ""),
				SessionToken:    GetEnv("AWS_SESSION_TOKEN", ""),
			},
		}),
	)

	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	creds, err := cfg.Credentials.Retrieve(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve AWS credentials: %w", err)
	}

	return &AWSConfig{
		Region:      region,
		Credentials: creds,
		Config:      cfg,
	}, nil
}

// InitializeConfig initializes the configuration by loading environment variables
func InitializeConfig() {
	LoadEnv() // Load .env variables

	FraudConfig.DetectorID = GetEnv("DETECTOR_ID", "transaction_detector")
	FraudConfig.DetectorDescription = GetEnv("DETECTOR_DESCRIPTION", "Detector over new account registration events")
	FraudConfig.EventTypeName = GetEnv("EVENT_TYPE_NAME", "transaction_event")
	FraudConfig.EntityTypeName = GetEnv("ENTITY_TYPE_NAME", "customer")
	FraudConfig.ModelID = GetEnv("MODEL_ID", "transaction_model")
	FraudConfig.ModelType = GetEnv("MODEL_TYPE", "ONLINE_FRAUD_INSIGHTS")
	FraudConfig.ScoreVariableName = GetEnv("SCORE_VARIABLE_NAME", FraudConfig.ModelID+"_insightscore")
	FraudConfig.HighScoreThreshold = GetEnvInt("HIGH_SCORE_THRESHOLD", 800)
	FraudConfig.LowScoreThreshold = GetEnvInt("LOW_SCORE_THRESHOLD", 500)
	FraudConfig.RuleExecutionMode = GetEnv("RULE_EXECUTION_MODE", "FIRST_MATCHED")

	DatasetConfig.S3Bucket = GetEnv("TRAINING_DATA_BUCKET", "")
	DatasetConfig.S3Key = GetEnv("TRAINING_DATA_KEY", "training/registration_data_20K_minimum.csv")
	DatasetConfig.DataAccessRoleArn = GetEnv("DATA_ACCESS_ROLE_ARN", "")
	DatasetConfig.LocalCSVPath = GetEnv("TRAINING_DATA_LOCAL_PATH", "")

	PollingConfig.InitialInterval = GetEnvDuration("POLL_INITIAL_INTERVAL", 30*time.Second)
	PollingConfig.MaxInterval = GetEnvDuration("POLL_MAX_INTERVAL", 5*time.Minute)
	PollingConfig.MaxElapsedTime = GetEnvDuration("POLL_MAX_ELAPSED", 2*time.Hour)

	LedgerConfig.TableName = GetEnv("LEDGER_TABLE_NAME", "FraudProvisioningLedger")
	LedgerConfig.Keys = struct {
		PartitionKey string
		SortKey      string
	}{
		PartitionKey: "RunID",
		SortKey:      "ResourceKey",
	}

	// Initialize SQS config
	SQSConfig.ResultsQueueURL = GetEnv("RESULTS_QUEUE_URL", "")

	// Initialize SNS config
	SNSMessengerConfig.TopicName = GetEnv("SNS_TOPIC", "FraudAlerts")
	SNSMessengerConfig.TopicArn = GetEnv("SNS_TOPIC_ARN", "")
	secrets, err := LoadTwilioSecrets("blueflag/twilio")
	if err != nil {
		log.Printf("Warning: could not load Twilio secrets: %v", err)
	} else {
		SNSMessengerConfig.TwilioUsername = secrets.Username
		SNSMessengerConfig.TwilioPassword = secrets.Password
	}

	log.Printf("Detector ID: %s", FraudConfig.DetectorID)
	log.Printf("Event Type: %s", FraudConfig.EventTypeName)
	log.Printf("Model ID: %s", FraudConfig.ModelID)
	log.Printf("Training Data: s3://%s/%s", DatasetConfig.S3Bucket, DatasetConfig.S3Key)
	log.Printf("Ledger Table: %s", LedgerConfig.TableName)
	log.Printf("AWS Region: %s", GetEnv("AWS_REGION", "us-east-1"))
}

func IsCI() bool {
	return GetEnv("CI", "false") == "true"
}

func LoadTwilioSecrets(secretName string) (*TwilioSecrets, error) {
	region := GetEnv("AWS_REGION", "us-east-1")

	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS config: %w", err)
	}

	svc := secretsmanager.NewFromConfig(cfg)

	input := &secretsmanager.GetSecretValueInput{
		SecretId:     aws.String(secretName),
		VersionStage: aws.String("AWSCURRENT"), // default stage
	}

	result, err := svc.GetSecretValue(context.TODO(), input)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve secret: %w", err)
	}

	var twilio TwilioSecrets
	if err := json.Unmarshal([]byte(*result.SecretString), &twilio); err != nil {
		return nil, fmt.Errorf("failed to parse secret JSON: %w", err)
	}

	return &twilio, nil
}
