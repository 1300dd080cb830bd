package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/landing/contacto-api/internal/entity"
)

type LeadNotifier interface {
	NotifyNewLead(ctx context.Context, lead *entity.Lead) error
}

type consumer interface {
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
}

type Worker struct {
	ch       consumer
	notifier LeadNotifier
}

func NewWorker(ch *amqp.Channel, notifier LeadNotifier) *Worker {
	return &Worker{ch: ch, notifier: notifier}
}

// Start consumes until ctx is cancelled or the channel closes. Failed
// deliveries are rejected without requeue and end up in the DLQ.
func (w *Worker) Start(ctx context.Context, queueName string) error {
	msgs, err := w.ch.Consume(queueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("register consumer: %w", err)
	}

	slog.Info("notification worker listening", "queue", queueName)

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return errors.New("delivery channel closed")
			}
			w.handle(ctx, d)
		}
	}
}

func (w *Worker) handle(ctx context.Context, d amqp.Delivery) {
	var payload LeadCreatedPayload
	if err := json.Unmarshal(d.Body, &payload); err != nil {
		slog.Error("malformed lead event", "message_id", d.MessageId, "error", err)
		_ = d.Nack(false, false)
		return
	}

	if err := w.notifier.NotifyNewLead(ctx, &payload.Lead); err != nil {
		slog.Error("lead notification failed", "lead_id", payload.Lead.ID, "message_id", d.MessageId, "error", err)
		_ = d.Nack(false, false)
		return
	}

	slog.Info("lead notification delivered", "lead_id", payload.Lead.ID)
	_ = d.Ack(false)
}
