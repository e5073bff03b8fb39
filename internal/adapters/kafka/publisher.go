// Package kafka publishes campaign events to a Kafka topic for dashboards.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/segmentio/kafka-go"

	"reactivation/internal/ports"
)

var _ ports.EventPublisher = (*Publisher)(nil)

// Envelope is the value written for every event; the message key is the
// subject (phone, batch id or experiment id).
type Envelope struct {
	Kind    string          `json:"kind"`
	Key     string          `json:"key"`
	At      time.Time       `json:"at"`
	Payload json.RawMessage `json:"payload"`
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Publisher struct {
	writer messageWriter
	clock  clockwork.Clock
}

func NewPublisher(brokers []string, topic string, clock clockwork.Clock) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
		},
		clock: clock,
	}
}

func (p *Publisher) Publish(ctx context.Context, kind, key string, payload any) error {
	msg, err := encode(kind, key, p.clock.Now(), payload)
	if err != nil {
		return err
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish %s: %w", kind, err)
	}
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

func encode(kind, key string, at time.Time, payload any) (kafka.Message, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("encode %s payload: %w", kind, err)
	}
	value, err := json.Marshal(Envelope{Kind: kind, Key: key, At: at.UTC(), Payload: body})
	if err != nil {
		return kafka.Message{}, fmt.Errorf("encode %s envelope: %w", kind, err)
	}
	return kafka.Message{
		Key:     []byte(key),
		Value:   value,
		Headers: []kafka.Header{{Key: "kind", Value: []byte(kind)}},
	}, nil
}
