package messaging

import (
	"context"
	"encoding/json"
	"log"

	"github.com/CapitalOne-RedFlags/BlueFlag/internal/models"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

// SQSAPI is the subset of the SQS client the result forwarder uses.
type SQSAPI interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

type SQSHandler struct {
	client   SQSAPI
	queueURL string
}

func NewSQSHandler(client SQSAPI, queueURL string) *SQSHandler {
	return &SQSHandler{
		client:   client,
		queueURL: queueURL,
	}
}

// SendPredictionResult forwards a scored event to the downstream results queue
func (h *SQSHandler) SendPredictionResult(ctx context.Context, result *models.PredictionResult) error {
	jsonData, err := json.Marshal(result)
	if err != nil {
		return err
	}

	log.Printf("Sending prediction result to SQS: %s", string(jsonData))

	_, err = h.client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(h.queueURL),
		MessageBody: aws.String(string(jsonData)),
	})
	return err
}
