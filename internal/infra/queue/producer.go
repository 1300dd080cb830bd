package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/landing/contacto-api/internal/entity"
)

const EventLeadCreated = "lead.created"

type LeadCreatedPayload struct {
	Event      string      `json:"event"`
	Lead       entity.Lead `json:"lead"`
	OccurredAt time.Time   `json:"occurred_at"`
}

type publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// Producer hands new leads to the notification worker through RabbitMQ.
type Producer struct {
	mu sync.Mutex
	ch publisher
}

func NewProducer(ch *amqp.Channel) *Producer {
	return &Producer{ch: ch}
}

func (p *Producer) NotifyNewLead(ctx context.Context, lead *entity.Lead) error {
	body, err := json.Marshal(LeadCreatedPayload{
		Event:      EventLeadCreated,
		Lead:       *lead,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("encode lead event: %w", err)
	}

	// amqp channels are not safe for concurrent publishing
	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			MessageId:    uuid.NewString(),
			Timestamp:    time.Now(),
			Type:         EventLeadCreated,
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("publish lead event: %w", err)
	}
	return nil
}
