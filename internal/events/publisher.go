// Package events publishes prediction events to Kafka.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"energypredictor/internal/model"

	"github.com/segmentio/kafka-go"
)

// MessageWriter is the subset of *kafka.Writer used by the publisher
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes one JSON message per prediction, keyed by prediction id
type KafkaPublisher struct {
	writer MessageWriter
	topic  string
}

// NewKafkaPublisher creates a publisher writing to topic on brokers
func NewKafkaPublisher(brokers []string, topic string, writeTimeout time.Duration) *KafkaPublisher {
	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		WriteTimeout: writeTimeout,
		Async:        false,
	}
	return &KafkaPublisher{writer: w, topic: topic}
}

// NewPublisherWithWriter wraps an existing writer
func NewPublisherWithWriter(w MessageWriter, topic string) *KafkaPublisher {
	return &KafkaPublisher{writer: w, topic: topic}
}

// Publish sends the event
func (p *KafkaPublisher) Publish(ctx context.Context, ev *model.PredictionEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to encode prediction event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(ev.ID),
		Value: payload,
		Time:  ev.CreatedAt,
		Headers: []kafka.Header{
			{Key: "schema", Value: []byte(ev.Schema)},
			{Key: "model", Value: []byte(ev.Model)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish prediction %s to %s: %w", ev.ID, p.topic, err)
	}
	return nil
}

// Close flushes and closes the writer
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
