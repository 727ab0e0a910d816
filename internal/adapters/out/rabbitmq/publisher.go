// Package rabbitmq publishes domain events to a topic exchange. The routing key
// of every message is the event name, e.g. "order.delivery_confirmed".
package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"montarota/internal/core/domain/events"
	"montarota/internal/core/ports"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	DefaultExchange = "montarota.events"

	publishTimeout = 3 * time.Second
)

var ErrPublisherClosed = errors.New("amqp publisher is closed")

// channel is the subset of *amqp.Channel used for publishing.
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	IsClosed() bool
	Close() error
}

// Envelope is the message body. Payload is the event itself.
type Envelope struct {
	Name        string          `json:"name"`
	AggregateID string          `json:"aggregate_id"`
	OccurredAt  time.Time       `json:"occurred_at"`
	Payload     json.RawMessage `json:"payload"`
}

type Publisher struct {
	url      string
	exchange string
	logger   *slog.Logger

	mu     sync.Mutex
	conn   *amqp.Connection
	ch     channel
	closed bool
}

var _ ports.EventPublisher = (*Publisher)(nil)

// NewPublisher dials the broker and declares a durable topic exchange.
func NewPublisher(url, exchange string, logger *slog.Logger) (*Publisher, error) {
	if exchange == "" {
		exchange = DefaultExchange
	}
	if logger == nil {
		logger = slog.Default()
	}
	p := &Publisher{
		url:      url,
		exchange: exchange,
		logger:   logger.With("component", "rabbitmq"),
	}
	if err := p.connect(); err != nil {
		return nil, fmt.Errorf("rabbit connect: %w", err)
	}
	return p, nil
}

func (p *Publisher) connect() error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		return err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return err
	}
	if err = ch.ExchangeDeclare(p.exchange, "topic", true, false, false, false, nil); err != nil {
		_ = conn.Close()
		return fmt.Errorf("declare exchange: %w", err)
	}
	p.conn = conn
	p.ch = ch
	return nil
}

// Publish sends each event as a persistent JSON message. A closed channel is
// reopened once before giving up.
func (p *Publisher) Publish(ctx context.Context, evts ...events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrPublisherClosed
	}
	if p.ch == nil || p.ch.IsClosed() {
		p.logger.WarnContext(ctx, "amqp channel closed, reconnecting")
		if err := p.connect(); err != nil {
			return fmt.Errorf("rabbit reconnect: %w", err)
		}
	}

	var errList []error
	for _, evt := range evts {
		msg, err := Encode(evt)
		if err != nil {
			errList = append(errList, err)
			continue
		}
		if err = p.send(ctx, evt.Name(), msg); err != nil {
			errList = append(errList, fmt.Errorf("publish %s: %w", evt.Name(), err))
		}
	}
	return errors.Join(errList...)
}

func (p *Publisher) send(ctx context.Context, routingKey string, msg amqp.Publishing) error {
	pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()
	return p.ch.PublishWithContext(pubCtx, p.exchange, routingKey, false, false, msg)
}

// Encode wraps evt into an Envelope publishing.
func Encode(evt events.Event) (amqp.Publishing, error) {
	payload, err := json.Marshal(evt)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("marshal %s: %w", evt.Name(), err)
	}
	body, err := json.Marshal(Envelope{
		Name:        evt.Name(),
		AggregateID: evt.AggregateID(),
		OccurredAt:  evt.OccurredAt().UTC(),
		Payload:     payload,
	})
	if err != nil {
		return amqp.Publishing{}, err
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Type:         evt.Name(),
		Timestamp:    evt.OccurredAt().UTC(),
		Body:         body,
	}, nil
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true

	var errList []error
	if p.ch != nil {
		errList = append(errList, p.ch.Close())
	}
	if p.conn != nil {
		errList = append(errList, p.conn.Close())
	}
	return errors.Join(errList...)
}
