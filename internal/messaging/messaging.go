// Package messaging publica los eventos de dominio de la tienda.
package messaging

import (
	"context"
	"time"
)

// Tópicos de eventos
const (
	TopicProductCreated = "products.created"
	TopicProductUpdated = "products.updated"
	TopicProductDeleted = "products.deleted"
	TopicOrderCreated   = "orders.created"
)

// Publisher publica un evento en un tópico. key agrupa los eventos de una
// misma entidad.
type Publisher interface {
	PublishEvent(ctx context.Context, topic string, key string, event any) error
	Close() error
}

// Event es el sobre de todos los eventos publicados
type Event struct {
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurredAt"`
	Data       any       `json:"data"`
}

func NewEvent(topic string, data any) Event {
	return Event{Type: topic, OccurredAt: time.Now().UTC(), Data: data}
}

// Nop descarta los eventos; se usa cuando no hay brokers configurados
type Nop struct{}

func (Nop) PublishEvent(context.Context, string, string, any) error { return nil }
func (Nop) Close() error                                            { return nil }
