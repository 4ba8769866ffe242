package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"

	"github.com/guttosm/pack-pricing-service/internal/domain/model"
	"github.com/guttosm/pack-pricing-service/internal/metrics"
)

const publishTimeout = 3 * time.Second

// channel is the subset of *amqp.Channel the publisher uses.
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Publisher sends CartUpdated events to a durable queue on the default exchange.
type Publisher struct {
	conn  *amqp.Connection
	ch    channel
	queue string
	now   func() time.Time
}

// Dial connects to RabbitMQ and declares queue.
func Dial(url, queue string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("declare %s: %w", queue, err)
	}

	p := newPublisher(ch, queue)
	p.conn = conn
	return p, nil
}

func newPublisher(ch channel, queue string) *Publisher {
	return &Publisher{ch: ch, queue: queue, now: time.Now}
}

// PublishCartUpdated publishes the state of cart after action.
func (p *Publisher) PublishCartUpdated(ctx context.Context, cart *model.Cart, action string) error {
	body, err := json.Marshal(NewCartUpdated(cart, action, p.now()))
	if err != nil {
		metrics.RecordEventPublished("error")
		return fmt.Errorf("marshal CartUpdated: %w", err)
	}

	pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = p.ch.PublishWithContext(pubCtx, "", p.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Type:         CartUpdatedEventType,
		Timestamp:    p.now().UTC(),
		Body:         body,
	})
	if err != nil {
		metrics.RecordEventPublished("error")
		return fmt.Errorf("publish to %s: %w", p.queue, err)
	}
	metrics.RecordEventPublished("success")
	return nil
}

// Close closes the channel and the connection.
func (p *Publisher) Close() error {
	err := p.ch.Close()
	if p.conn != nil {
		if cerr := p.conn.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	if err != nil {
		log.Warn().Err(err).Msg("Closing RabbitMQ publisher failed")
	}
	return err
}

// NoopPublisher drops every event. It is used when RabbitMQ is disabled.
type NoopPublisher struct{}

func (NoopPublisher) PublishCartUpdated(context.Context, *model.Cart, string) error { return nil }

func (NoopPublisher) Close() error { return nil }
