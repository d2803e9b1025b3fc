package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/coastlinevibe/eubiosis/internal/usecase"
)

const (
	exchangeName  = "order.events"
	createdKey    = "order.created"
	createdQueue  = "order.created.q"
	mailSentKey   = "mail.sent"
	mailSentQueue = "mail.sent.q"
)

// RabbitProducer publishes order.created events for the mailer service.
type RabbitProducer struct {
	ch *amqp.Channel
}

// NewRabbitProducer declares the exchange, both queues, and their bindings
// once at startup, and enables publisher confirms.
func NewRabbitProducer(ch *amqp.Channel) (*RabbitProducer, error) {
	if err := ch.ExchangeDeclare(
		exchangeName,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	for q, key := range map[string]string{
		createdQueue:  createdKey,
		mailSentQueue: mailSentKey,
	} {
		queue, err := ch.QueueDeclare(q, true, false, false, false, nil)
		if err != nil {
			return nil, fmt.Errorf("declare queue %s: %w", q, err)
		}
		if err := ch.QueueBind(queue.Name, key, exchangeName, false, nil); err != nil {
			return nil, fmt.Errorf("bind queue %s: %w", q, err)
		}
	}

	if err := ch.Confirm(false); err != nil {
		return nil, fmt.Errorf("enable confirm mode: %w", err)
	}
	return &RabbitProducer{ch: ch}, nil
}

// PublishCreated sends an order.created event. Messages are persistent so a
// broker restart does not lose a confirmation mail.
func (p *RabbitProducer) PublishCreated(ctx context.Context, msg usecase.CreatedMsg) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}
	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	}
	if err := p.ch.PublishWithContext(ctx, exchangeName, createdKey, false, false, pub); err != nil {
		return fmt.Errorf("publish: %w", err)
	}
	return nil
}

var _ usecase.OrderEventPublisher = (*RabbitProducer)(nil)
