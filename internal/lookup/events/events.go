// Package events publishes lookup-completed notifications for downstream consumers.
package events

import (
	"context"
	"encoding/json"
	"fmt"

	"ninlookup/internal/lookup/models"
	"ninlookup/internal/platform/kafka/producer"
)

const (
	DefaultTopic = "ninlookup.lookups"

	EventTypeLookupCompleted = "lookup.completed"

	headerEventType = "event_type"
	headerRequestID = "request_id"
)

// Producer is the subset of the Kafka producer used for publishing.
type Producer interface {
	Produce(ctx context.Context, msg *producer.Message) error
}

// KafkaPublisher writes one record per completed lookup, keyed by reference.
type KafkaPublisher struct {
	producer Producer
	topic    string
}

func NewKafkaPublisher(p Producer, topic string) *KafkaPublisher {
	if topic == "" {
		topic = DefaultTopic
	}
	return &KafkaPublisher{producer: p, topic: topic}
}

func (p *KafkaPublisher) Publish(ctx context.Context, e models.LookupCompleted) error {
	value, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode lookup event: %w", err)
	}
	headers := map[string]string{headerEventType: EventTypeLookupCompleted}
	if e.RequestID != "" {
		headers[headerRequestID] = e.RequestID
	}
	if err := p.producer.Produce(ctx, &producer.Message{
		Topic:   p.topic,
		Key:     []byte(e.Ref),
		Value:   value,
		Headers: headers,
	}); err != nil {
		return fmt.Errorf("publish lookup event: %w", err)
	}
	return nil
}

// NoopPublisher discards events; used when no brokers are configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, models.LookupCompleted) error { return nil }
