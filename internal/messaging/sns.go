package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/CapitalOne-RedFlags/BlueFlag/internal/models"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
	"github.com/twilio/twilio-go"
	api "github.com/twilio/twilio-go/rest/api/v2010"
)

type SNSMessenger interface {
	SendEmailAlert(event models.EventRecord, result models.PredictionResult) (*sns.PublishOutput, error)
	SendTextAlert(event models.EventRecord, result models.PredictionResult, phoneNumber string) error
}

type BfSNSMessenger struct {
	Client         *sns.Client
	TopicName      string
	TopicArn       string
	TwilioUsername string
	TwilioPassword string
}

func NewBfSNSMessenger(snsClient *sns.Client, topicName string, topicArn string, twilioUsername string, twilioPassword string) *BfSNSMessenger {
	return &BfSNSMessenger{
		Client:         snsClient,
		TopicName:      topicName,
		TopicArn:       topicArn,
		TwilioUsername: twilioUsername,
		TwilioPassword: twilioPassword,
	}
}

func CreateTopic(client *sns.Client, topicName string) (string, error) {
	input := &sns.CreateTopicInput{
		Name: aws.String(topicName),
	}

	result, err := client.CreateTopic(context.TODO(), input)
	if err != nil {
		return "", fmt.Errorf("failed to create SNS topic: %v", err)
	}

	return *result.TopicArn, nil
}

// SendEmailAlert publishes a high-risk prediction to the alert topic.
func (messenger *BfSNSMessenger) SendEmailAlert(event models.EventRecord, result models.PredictionResult) (*sns.PublishOutput, error) {
	outcome := ""
	if len(result.Outcomes) > 0 {
		outcome = result.Outcomes[0]
	}
	subject, message := event.GetFraudAlertContent(result.Score, outcome)

	input := &sns.PublishInput{
		Message:           aws.String(message),
		Subject:           aws.String(subject),
		TopicArn:          aws.String(messenger.TopicArn),
		MessageAttributes: GetMessageAttributes(event),
	}

	publishOutput, err := messenger.Client.Publish(context.TODO(), input)
	if err != nil {
		return nil, fmt.Errorf("failed to publish fraud alert for event %s: %v", event.EventID, err)
	}

	return publishOutput, nil
}

func (messenger *BfSNSMessenger) SubscribeToSNSTopic(protocol string, endpoint string) (*sns.SubscribeOutput, error) {
	input := &sns.SubscribeInput{
		TopicArn:              aws.String(messenger.TopicArn),
		Protocol:              aws.String(protocol), // "email", "sms", "lambda", etc.
		Endpoint:              aws.String(endpoint), // email address or phone number
		ReturnSubscriptionArn: true,
	}

	subscribeOutput, err := messenger.Client.Subscribe(context.TODO(), input)
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to SNS topic: %v", err)
	}

	return subscribeOutput, nil
}

func GetMessageAttributes(event models.EventRecord) map[string]types.MessageAttributeValue {
	return map[string]types.MessageAttributeValue{
		"EntityID": NewMessageAttributeValue("String", event.EntityID),
	}
}

func GetFilterPolicy(entityID string) (*string, error) {
	filterPolicy := map[string][]string{
		"EntityID": {entityID},
	}

	policy, err := json.Marshal(filterPolicy)
	if err != nil {
		return nil, fmt.Errorf("failed to get message filter policy: %s", err)
	}

	policyString := string(policy)

	return &policyString, nil
}

func NewMessageAttributeValue(dataType string, stringValue string) types.MessageAttributeValue {
	return types.MessageAttributeValue{
		DataType:    aws.String(dataType),
		StringValue: aws.String(stringValue),
	}
}

// SendTextAlert texts the on-call reviewer about a high-risk event.
func (messenger *BfSNSMessenger) SendTextAlert(event models.EventRecord, result models.PredictionResult, phoneNumber string) error {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: messenger.TwilioUsername,
		Password: messenger.TwilioPassword,
	})

	outcome := ""
	if len(result.Outcomes) > 0 {
		outcome = result.Outcomes[0]
	}
	_, body := event.GetFraudAlertContent(result.Score, outcome)

	params := &api.CreateMessageParams{}
	params.SetBody(body)

	//ASSIGNED TWILIO PHONE NUMBER
	params.SetFrom("+18333981458")
	params.SetTo(phoneNumber)

	_, err := client.Api.CreateMessage(params)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}
	return nil
}
