// Package kafka publishes heysync payloads as Kafka records.
package kafka

import (
	"errors"
	"fmt"

	"github.com/fotap/heysync/pkg/heysync"
	"github.com/fotap/heysync/pkg/heysync/adapters"
)

// ErrPublishFailed wraps every transport failure reported by this adapter.
var ErrPublishFailed = errors.New("heysync/kafka: publish failed")

// Writer produces one record synchronously.
type Writer interface {
	Write(topic string, key, value []byte, headers map[string]string) error
}

// Channel writes every payload to one topic. Records carry a fixed key when
// one is configured, so all calls of a method land on the same partition.
type Channel struct {
	w     Writer
	topic string
	key   []byte
	opts  adapters.Options
}

var _ heysync.Channel = (*Channel)(nil)

// New creates a channel for topic.
func New(w Writer, topic string, opts ...adapters.Option) *Channel {
	return &Channel{w: w, topic: topic, opts: adapters.Apply("kafka", opts...)}
}

// WithKey returns a copy of c that keys its records with key.
func (c *Channel) WithKey(key string) *Channel {
	cp := *c
	cp.key = []byte(key)
	return &cp
}

// Topic returns the destination topic.
func (c *Channel) Topic() string { return c.topic }

func (c *Channel) Publish(payload any) {
	if c.w == nil {
		c.opts.OnError(c.topic, fmt.Errorf("%w: no writer", ErrPublishFailed))
		return
	}

	value, headers, err := c.opts.Encode(payload)
	if err != nil {
		c.opts.OnError(c.topic, fmt.Errorf("%w: encode: %w", ErrPublishFailed, err))
		return
	}

	if err := c.w.Write(c.topic, c.key, value, headers); err != nil {
		c.opts.OnError(c.topic, fmt.Errorf("%w: kafka publish to %q: %w", ErrPublishFailed, c.topic, err))
	}
}

// ChannelsFor returns one channel per method of class, on topics
// prefix.<Method>. Each record is keyed by the method name.
func ChannelsFor(w Writer, prefix string, class *heysync.Class, opts ...adapters.Option) []heysync.Channel {
	topics := adapters.Targets(prefix, class)
	channels := make([]heysync.Channel, len(topics))
	for i, topic := range topics {
		channels[i] = New(w, topic, opts...).WithKey(class.Methods[i].Name)
	}
	return channels
}
