package kafka

import (
	"context"
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	kafkaGo "github.com/segmentio/kafka-go"

	"storefront/internal/messaging"
)

type publisher struct {
	writer *kafkaGo.Writer
}

// NewPublisher crea un publisher con un único Writer compartido. El tópico
// va en cada mensaje.
func NewPublisher(brokers []string) messaging.Publisher {
	return &publisher{writer: &kafkaGo.Writer{
		Addr:                   kafkaGo.TCP(brokers...),
		Balancer:               &kafkaGo.Hash{},
		AllowAutoTopicCreation: true,
		BatchTimeout:           10 * time.Millisecond,
	}}
}

func (p *publisher) PublishEvent(ctx context.Context, topic string, key string, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	return p.writer.WriteMessages(ctx, kafkaGo.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: payload,
	})
}

func (p *publisher) Close() error {
	return p.writer.Close()
}
