// Package sinks forwards the outcome of FireTruck API calls to downstream
// destinations: webhooks, SQS queues, SNS topics and Pub/Sub topics.
//
// Sinks are declared in a YAML or JSON file (see LoadFile), checked and
// constructed by Kinds.Open, and driven through a Fanout.
package sinks

import "context"

// Supported sink types.
const (
	TypeHTTP   = "http"
	TypeSQS    = "sqs"
	TypeSNS    = "sns"
	TypePubSub = "pubsub"
)

// Sink delivers call events to one destination.
type Sink interface {
	ID() string
	Type() string
	Send(ctx context.Context, evt Event) error
}
