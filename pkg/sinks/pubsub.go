package sinks

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/pubsub"
	"github.com/firetruck-io/firetruck-go/pkg/firetruck"
	"google.golang.org/api/option"
)

// pubsubTopic is the part of a Pub/Sub topic the sink calls.
type pubsubTopic interface {
	Publish(ctx context.Context, data []byte, attrs map[string]string) (string, error)
	Close() error
}

// clientTopic owns a Pub/Sub client and one of its topics.
type clientTopic struct {
	client *pubsub.Client
	topic  *pubsub.Topic
}

func (t *clientTopic) Publish(ctx context.Context, data []byte, attrs map[string]string) (string, error) {
	return t.topic.Publish(ctx, &pubsub.Message{Data: data, Attributes: attrs}).Get(ctx)
}

func (t *clientTopic) Close() error {
	t.topic.Stop()
	return t.client.Close()
}

// pubsubSink publishes each event to a Pub/Sub topic.
type pubsubSink struct {
	id    string
	topic pubsubTopic
	log   firetruck.Logger
}

func checkPubSub(cfg SinkConfig) error {
	if cfg.Project == "" {
		return errors.New("project is required for pubsub")
	}
	return nil
}

// newPubSubSink connects to cfg.Project. PUBSUB_EMULATOR_HOST is honored by the client library.
func newPubSubSink(ctx context.Context, cfg SinkConfig, log firetruck.Logger) (Sink, error) {
	var opts []option.ClientOption
	if cfg.Credentials.File != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.Credentials.File))
	}
	client, err := pubsub.NewClient(ctx, cfg.Project, opts...)
	if err != nil {
		return nil, fmt.Errorf("create pubsub client: %w", err)
	}
	return &pubsubSink{
		id:    cfg.ID,
		topic: &clientTopic{client: client, topic: client.Topic(cfg.Target)},
		log:   firetruck.OrDiscard(log),
	}, nil
}

func (p *pubsubSink) ID() string   { return p.id }
func (p *pubsubSink) Type() string { return TypePubSub }

// Send publishes evt and waits for the server to acknowledge it.
func (p *pubsubSink) Send(ctx context.Context, evt Event) error {
	payload, err := evt.encode()
	if err != nil {
		return err
	}
	id, err := p.topic.Publish(ctx, payload, evt.attributes())
	if err != nil {
		return fmt.Errorf("pubsub publish: %w", err)
	}
	p.log.DebugObj("pubsub delivered event", "sink_delivery", map[string]any{
		"sink_id":    p.id,
		"message_id": id,
	})
	return nil
}

// Close stops the topic and closes the client.
func (p *pubsubSink) Close() error {
	return p.topic.Close()
}
