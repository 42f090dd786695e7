package rabbitmq

import (
	"context"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Config describes an AMQP connection and the exchange it declares.
type Config struct {
	URL          string
	Exchange     string
	ExchangeType string
	ConnTimeout  time.Duration
}

func (c Config) exchangeType() string {
	if c.ExchangeType == "" {
		return amqp.ExchangeTopic
	}
	return c.ExchangeType
}

type amqpPublisher struct {
	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

// Dial connects, opens a channel and declares cfg.Exchange when set. Call
// cleanup to close both.
func Dial(cfg Config) (Publisher, func(), error) {
	if cfg.URL == "" {
		return nil, nil, fmt.Errorf("%w: rabbitmq url required", ErrPublishFailed)
	}

	conn, err := amqp.DialConfig(cfg.URL, amqp.Config{
		Locale:     "en_US",
		Properties: amqp.Table{"product": "heysync"},
		Dial:       amqp.DefaultDial(cfg.ConnTimeout),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("%w: rabbitmq dial: %w", ErrPublishFailed, err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("%w: rabbitmq channel: %w", ErrPublishFailed, err)
	}
	if cfg.Exchange != "" {
		if err := ch.ExchangeDeclare(cfg.Exchange, cfg.exchangeType(), true, false, false, false, nil); err != nil {
			_ = ch.Close()
			_ = conn.Close()
			return nil, nil, fmt.Errorf("%w: rabbitmq exchange declare: %w", ErrPublishFailed, err)
		}
	}

	p := &amqpPublisher{conn: conn, ch: ch}
	return p, p.close, nil
}

func (p *amqpPublisher) Publish(ctx context.Context, m Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ch == nil {
		return fmt.Errorf("%w: rabbitmq not connected", ErrPublishFailed)
	}

	var h amqp.Table
	if len(m.Headers) > 0 {
		h = amqp.Table{}
		for k, v := range m.Headers {
			h[k] = v
		}
	}

	return p.ch.PublishWithContext(ctx, m.Exchange, m.RoutingKey, false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		Headers:      h,
		ContentType:  m.ContentType,
		Body:         m.Body,
	})
}

func (p *amqpPublisher) close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
}
