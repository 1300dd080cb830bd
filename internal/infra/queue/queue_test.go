package queue

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/landing/contacto-api/internal/entity"
)

type fakePublisher struct {
	exchange string
	key      string
	msg      amqp.Publishing
	err      error
}

func (f *fakePublisher) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	f.exchange, f.key, f.msg = exchange, key, msg
	return f.err
}

type fakeAcknowledger struct {
	acked   bool
	nacked  bool
	requeue bool
}

func (f *fakeAcknowledger) Ack(uint64, bool) error {
	f.acked = true
	return nil
}

func (f *fakeAcknowledger) Nack(_ uint64, _ bool, requeue bool) error {
	f.nacked, f.requeue = true, requeue
	return nil
}

func (f *fakeAcknowledger) Reject(_ uint64, requeue bool) error {
	f.nacked, f.requeue = true, requeue
	return nil
}

type fakeConsumer struct {
	deliveries chan amqp.Delivery
}

func (f *fakeConsumer) Consume(string, string, bool, bool, bool, bool, amqp.Table) (<-chan amqp.Delivery, error) {
	return f.deliveries, nil
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyNewLead(ctx context.Context, lead *entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func leadEvent(t *testing.T, lead entity.Lead) []byte {
	t.Helper()
	body, err := json.Marshal(LeadCreatedPayload{Event: EventLeadCreated, Lead: lead, OccurredAt: time.Now()})
	require.NoError(t, err)
	return body
}

func TestProducerPublishesPersistentEvent(t *testing.T) {
	pub := &fakePublisher{}
	p := &Producer{ch: pub}

	err := p.NotifyNewLead(context.Background(), &entity.Lead{ID: 11, Nombre: "Ana", Estado: entity.EstadoNuevo})

	require.NoError(t, err)
	assert.Equal(t, ExchangeName, pub.exchange)
	assert.Equal(t, RoutingKey, pub.key)
	assert.Equal(t, amqp.Persistent, pub.msg.DeliveryMode)
	assert.NotEmpty(t, pub.msg.MessageId)

	var payload LeadCreatedPayload
	require.NoError(t, json.Unmarshal(pub.msg.Body, &payload))
	assert.Equal(t, EventLeadCreated, payload.Event)
	assert.Equal(t, int64(11), payload.Lead.ID)
	assert.Equal(t, "Ana", payload.Lead.Nombre)
}

func TestProducerPublishError(t *testing.T) {
	p := &Producer{ch: &fakePublisher{err: amqp.ErrClosed}}

	err := p.NotifyNewLead(context.Background(), &entity.Lead{ID: 1})

	assert.ErrorIs(t, err, amqp.ErrClosed)
}

func TestWorkerHandle(t *testing.T) {
	t.Run("delivered lead is acked", func(t *testing.T) {
		notifier := new(MockNotifier)
		notifier.On("NotifyNewLead", mock.Anything, mock.MatchedBy(func(l *entity.Lead) bool {
			return l.ID == 4 && l.Correo == "a@b.com"
		})).Return(nil)
		ack := &fakeAcknowledger{}

		w := &Worker{notifier: notifier}
		w.handle(context.Background(), amqp.Delivery{
			Acknowledger: ack,
			DeliveryTag:  1,
			Body:         leadEvent(t, entity.Lead{ID: 4, Correo: "a@b.com"}),
		})

		assert.True(t, ack.acked)
		assert.False(t, ack.nacked)
		notifier.AssertExpectations(t)
	})

	t.Run("notifier failure goes to dead letter", func(t *testing.T) {
		notifier := new(MockNotifier)
		notifier.On("NotifyNewLead", mock.Anything, mock.Anything).Return(errors.New("smtp down"))
		ack := &fakeAcknowledger{}

		w := &Worker{notifier: notifier}
		w.handle(context.Background(), amqp.Delivery{Acknowledger: ack, Body: leadEvent(t, entity.Lead{ID: 5})})

		assert.True(t, ack.nacked)
		assert.False(t, ack.requeue)
		assert.False(t, ack.acked)
	})

	t.Run("malformed body is rejected", func(t *testing.T) {
		notifier := new(MockNotifier)
		ack := &fakeAcknowledger{}

		w := &Worker{notifier: notifier}
		w.handle(context.Background(), amqp.Delivery{Acknowledger: ack, Body: []byte("{not json")})

		assert.True(t, ack.nacked)
		assert.False(t, ack.requeue)
		notifier.AssertNotCalled(t, "NotifyNewLead", mock.Anything, mock.Anything)
	})
}

func TestWorkerStartStopsOnContextAndClose(t *testing.T) {
	t.Run("context cancel", func(t *testing.T) {
		w := &Worker{ch: &fakeConsumer{deliveries: make(chan amqp.Delivery)}, notifier: new(MockNotifier)}
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		assert.NoError(t, w.Start(ctx, QueueName))
	})

	t.Run("channel closed", func(t *testing.T) {
		deliveries := make(chan amqp.Delivery)
		close(deliveries)
		w := &Worker{ch: &fakeConsumer{deliveries: deliveries}, notifier: new(MockNotifier)}

		assert.Error(t, w.Start(context.Background(), QueueName))
	})
}
