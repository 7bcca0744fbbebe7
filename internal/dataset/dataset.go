package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"slices"

	"github.com/CapitalOne-RedFlags/BlueFlag/internal/models"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3API is the subset of the S3 client the dataset service uses.
type S3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
}

// Profile summarizes a training CSV: row count, per-label counts and the
// header row. The model's training schema is derived from it.
type Profile struct {
	Headers     []string
	RowCount    int
	LabelCounts map[string]int
}

// VariableHeaders returns the feature columns, with the reserved envelope
// columns stripped, in header order.
func (p *Profile) VariableHeaders() []string {
	var variables []string
	for _, header := range p.Headers {
		switch header {
		case models.HeaderEventTimestamp, models.HeaderEventLabel,
			models.HeaderLabelTimestamp, models.HeaderEntityID:
			continue
		}
		variables = append(variables, header)
	}
	return variables
}

type BfDatasetService struct {
	S3     S3API
	Bucket string
	Key    string
}

func NewBfDatasetService(client S3API, bucket, key string) *BfDatasetService {
	return &BfDatasetService{
		S3:     client,
		Bucket: bucket,
		Key:    key,
	}
}

// DataLocation is the S3 URI handed to the training run.
func (s *BfDatasetService) DataLocation() string {
	return fmt.Sprintf("s3://%s/%s", s.Bucket, s.Key)
}

// EnsureUploaded uploads the local training CSV when the object is absent.
// An existing object is never overwritten.
func (s *BfDatasetService) EnsureUploaded(ctx context.Context, localPath string) error {
	_, err := s.S3.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(s.Key),
	})
	if err == nil {
		log.Printf("Training data already present at %s", s.DataLocation())
		return nil
	}

	if localPath == "" {
		return fmt.Errorf("training data missing at %s and no local CSV configured", s.DataLocation())
	}

	file, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("unable to open training CSV %s: %w", localPath, err)
	}
	defer file.Close()

	_, err = s.S3.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(s.Key),
		Body:   file,
	})
	if err != nil {
		return fmt.Errorf("failed to upload training CSV to %s: %w", s.DataLocation(), err)
	}

	log.Printf("Uploaded %s to %s", localPath, s.DataLocation())
	return nil
}

// FetchProfile downloads the training CSV and profiles it.
func (s *BfDatasetService) FetchProfile(ctx context.Context) (*Profile, error) {
	output, err := s.S3.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(s.Key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch training CSV from %s: %w", s.DataLocation(), err)
	}
	defer output.Body.Close()

	return BuildProfile(output.Body)
}

// BuildProfile reads a training CSV and summarizes it.
func BuildProfile(r io.Reader) (*Profile, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("error reading CSV header: %w", err)
	}

	labelIdx := slices.Index(header, models.HeaderEventLabel)

	profile := &Profile{
		Headers:     header,
		LabelCounts: make(map[string]int),
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV record: %w", err)
		}

		profile.RowCount++
		if labelIdx >= 0 && labelIdx < len(record) {
			profile.LabelCounts[record[labelIdx]]++
		}
	}

	return profile, nil
}

// ValidateHeaders checks the training CSV header row against the variables
// registered with the service: the two mandatory envelope columns must be
// present, and every feature column must exactly match a variable name.
func ValidateHeaders(headers []string, variableNames []string) error {
	if !slices.Contains(headers, models.HeaderEventTimestamp) {
		return fmt.Errorf("training CSV is missing required column %s", models.HeaderEventTimestamp)
	}
	if !slices.Contains(headers, models.HeaderEventLabel) {
		return fmt.Errorf("training CSV is missing required column %s", models.HeaderEventLabel)
	}

	for _, header := range headers {
		switch header {
		case models.HeaderEventTimestamp, models.HeaderEventLabel,
			models.HeaderLabelTimestamp, models.HeaderEntityID:
			continue
		}
		if !slices.Contains(variableNames, header) {
			return fmt.Errorf("column %s does not match any registered variable", header)
		}
	}

	return nil
}
