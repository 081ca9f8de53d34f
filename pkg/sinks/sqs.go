package sinks

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/firetruck-io/firetruck-go/pkg/firetruck"
)

// sqsAPI is the part of *sqs.Client the sink calls.
type sqsAPI interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

// sqsSink enqueues each event on an SQS queue.
type sqsSink struct {
	id       string
	queueURL string
	api      sqsAPI
	log      firetruck.Logger
}

func checkSQS(cfg SinkConfig) error {
	if cfg.Region == "" {
		return errors.New("region is required for sqs")
	}
	return nil
}

func newSQSSink(ctx context.Context, cfg SinkConfig, log firetruck.Logger) (Sink, error) {
	awsCfg, err := loadAWSConfig(ctx, cfg.Region, cfg.Credentials)
	if err != nil {
		return nil, err
	}
	return &sqsSink{
		id:       cfg.ID,
		queueURL: cfg.Target,
		api:      sqs.NewFromConfig(awsCfg),
		log:      firetruck.OrDiscard(log),
	}, nil
}

func (s *sqsSink) ID() string   { return s.id }
func (s *sqsSink) Type() string { return TypeSQS }

// Send enqueues evt with its method, outcome and status as message attributes.
func (s *sqsSink) Send(ctx context.Context, evt Event) error {
	payload, err := evt.encode()
	if err != nil {
		return err
	}

	attrs := make(map[string]types.MessageAttributeValue)
	for name, value := range evt.attributes() {
		attrs[name] = types.MessageAttributeValue{
			DataType:    aws.String(awsDataType(name)),
			StringValue: aws.String(value),
		}
	}

	out, err := s.api.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:          aws.String(s.queueURL),
		MessageBody:       aws.String(string(payload)),
		MessageAttributes: attrs,
	})
	if err != nil {
		return fmt.Errorf("sqs send message: %w", err)
	}
	s.log.DebugObj("sqs delivered event", "sink_delivery", map[string]any{
		"sink_id":    s.id,
		"message_id": aws.ToString(out.MessageId),
	})
	return nil
}
