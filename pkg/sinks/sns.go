package sinks

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
	"github.com/firetruck-io/firetruck-go/pkg/firetruck"
)

// snsAPI is the part of *sns.Client the sink calls.
type snsAPI interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// snsSink publishes each event to an SNS topic.
type snsSink struct {
	id       string
	topicARN string
	api      snsAPI
	log      firetruck.Logger
}

func checkSNS(cfg SinkConfig) error {
	if cfg.Region == "" && arnRegion(cfg.Target) == "" {
		return errors.New("target must be a topic ARN or region must be set for sns")
	}
	return nil
}

func newSNSSink(ctx context.Context, cfg SinkConfig, log firetruck.Logger) (Sink, error) {
	region := cfg.Region
	if region == "" {
		region = arnRegion(cfg.Target)
	}
	awsCfg, err := loadAWSConfig(ctx, region, cfg.Credentials)
	if err != nil {
		return nil, err
	}
	return &snsSink{
		id:       cfg.ID,
		topicARN: cfg.Target,
		api:      sns.NewFromConfig(awsCfg),
		log:      firetruck.OrDiscard(log),
	}, nil
}

func (s *snsSink) ID() string   { return s.id }
func (s *snsSink) Type() string { return TypeSNS }

// Send publishes evt. The attributes allow SNS subscription filter policies
// such as {"outcome": ["response_error"]}.
func (s *snsSink) Send(ctx context.Context, evt Event) error {
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

	out, err := s.api.Publish(ctx, &sns.PublishInput{
		TopicArn:          aws.String(s.topicARN),
		Message:           aws.String(string(payload)),
		Subject:           aws.String(snsSubject(evt)),
		MessageAttributes: attrs,
	})
	if err != nil {
		return fmt.Errorf("sns publish: %w", err)
	}
	s.log.DebugObj("sns delivered event", "sink_delivery", map[string]any{
		"sink_id":    s.id,
		"message_id": aws.ToString(out.MessageId),
	})
	return nil
}

// snsSubject is the email subject for topic subscribers, capped at the SNS limit.
func snsSubject(evt Event) string {
	const max = 100
	subject := fmt.Sprintf("%s %s: %s", evt.Method, evt.Path, evt.Outcome)
	if len(subject) > max {
		subject = subject[:max]
	}
	return subject
}
