// Package rabbitmq publishes assignment events to a RabbitMQ topic exchange.
package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"dispatch/internal/core/ports"

	amqp "github.com/rabbitmq/amqp091-go"
)

// PartnerAssignedRoutingKey is the routing key of partner-assigned events.
const PartnerAssignedRoutingKey = "partner.assigned"

// Channel is the part of *amqp.Channel the publisher needs.
type Channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Publisher implements ports.AssignmentEventPublisher.
type Publisher struct {
	conn     *amqp.Connection
	ch       Channel
	exchange string
	mu       sync.Mutex
}

// Dial connects to url, opens a channel and declares exchange as a durable topic exchange.
func Dial(url, exchange string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open rabbitmq channel: %w", err)
	}

	p, err := NewPublisher(ch, exchange)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}
	p.conn = conn
	return p, nil
}

// NewPublisher declares the exchange on an already open channel.
func NewPublisher(ch Channel, exchange string) (*Publisher, error) {
	if exchange == "" {
		return nil, errors.New("rabbitmq exchange name is empty")
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("declare exchange %q: %w", exchange, err)
	}
	return &Publisher{ch: ch, exchange: exchange}, nil
}

type partnerAssignedMessage struct {
	OrderID    string    `json:"order_id"`
	PartnerID  string    `json:"partner_id"`
	AssignedAt time.Time `json:"assigned_at"`
}

// PublishPartnerAssigned sends one persistent JSON message with the order id as message id.
// Publishes on the shared channel are serialized.
func (p *Publisher) PublishPartnerAssigned(ctx context.Context, event ports.PartnerAssigned) error {
	body, err := json.Marshal(partnerAssignedMessage{
		OrderID:    event.OrderID.String(),
		PartnerID:  event.PartnerID.String(),
		AssignedAt: event.AssignedAt.UTC(),
	})
	if err != nil {
		return fmt.Errorf("marshal partner assigned event: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.ch.PublishWithContext(ctx, p.exchange, PartnerAssignedRoutingKey, false, false, amqp.Publishing{
		DeliveryMode:  amqp.Persistent,
		ContentType:   "application/json",
		MessageId:     event.OrderID.String(),
		CorrelationId: event.OrderID.String(),
		Timestamp:     event.AssignedAt.UTC(),
		Headers:       amqp.Table{"x-source": "dispatch"},
		Body:          body,
	})
	if err != nil {
		return fmt.Errorf("publish partner assigned event: %w", err)
	}
	return nil
}

// Close closes the channel and, when the publisher dialed it, the connection.
func (p *Publisher) Close() error {
	err := p.ch.Close()
	if p.conn != nil {
		err = errors.Join(err, p.conn.Close())
	}
	return err
}

// NopPublisher drops every event. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishPartnerAssigned(context.Context, ports.PartnerAssigned) error {
	return nil
}

func (NopPublisher) Close() error {
	return nil
}
