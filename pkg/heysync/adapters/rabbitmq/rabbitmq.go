// Package rabbitmq publishes heysync payloads to an AMQP exchange.
package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fotap/heysync/pkg/heysync"
	"github.com/fotap/heysync/pkg/heysync/adapters"
)

// ErrPublishFailed wraps every transport failure reported by this adapter.
var ErrPublishFailed = errors.New("heysync/rabbitmq: publish failed")

// DefaultPublishTimeout bounds a single publish when no timeout is configured.
const DefaultPublishTimeout = 5 * time.Second

// Message is one AMQP publishing.
type Message struct {
	Exchange    string
	RoutingKey  string
	ContentType string
	Headers     map[string]string
	Body        []byte
}

// Publisher sends a Message.
type Publisher interface {
	Publish(ctx context.Context, m Message) error
}

// Channel publishes every payload to exchange with one routing key.
type Channel struct {
	pub        Publisher
	exchange   string
	routingKey string
	timeout    time.Duration
	opts       adapters.Options
}

var _ heysync.Channel = (*Channel)(nil)

// New creates a channel publishing to exchange with routingKey.
func New(p Publisher, exchange, routingKey string, opts ...adapters.Option) *Channel {
	return &Channel{
		pub:        p,
		exchange:   exchange,
		routingKey: routingKey,
		timeout:    DefaultPublishTimeout,
		opts:       adapters.Apply("rabbitmq", opts...),
	}
}

// WithTimeout returns a copy of c with a different publish timeout.
func (c *Channel) WithTimeout(d time.Duration) *Channel {
	cp := *c
	if d > 0 {
		cp.timeout = d
	}
	return &cp
}

func (c *Channel) target() string { return c.exchange + "/" + c.routingKey }

func (c *Channel) Publish(payload any) {
	if c.pub == nil {
		c.opts.OnError(c.target(), fmt.Errorf("%w: no publisher", ErrPublishFailed))
		return
	}

	body, headers, err := c.opts.Encode(payload)
	if err != nil {
		c.opts.OnError(c.target(), fmt.Errorf("%w: encode: %w", ErrPublishFailed, err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	err = c.pub.Publish(ctx, Message{
		Exchange:    c.exchange,
		RoutingKey:  c.routingKey,
		ContentType: c.opts.Codec.Name(),
		Headers:     headers,
		Body:        body,
	})
	if err != nil {
		c.opts.OnError(c.target(), fmt.Errorf("%w: %w", ErrPublishFailed, err))
	}
}

// ChannelsFor returns one channel per method of class, routed with keys
// prefix.<Method> on exchange.
func ChannelsFor(p Publisher, exchange, prefix string, class *heysync.Class, opts ...adapters.Option) []heysync.Channel {
	keys := adapters.Targets(prefix, class)
	channels := make([]heysync.Channel, len(keys))
	for i, key := range keys {
		channels[i] = New(p, exchange, key, opts...)
	}
	return channels
}
