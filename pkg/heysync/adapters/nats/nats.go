// Package nats publishes heysync payloads to NATS subjects.
package nats

import (
	"errors"
	"fmt"

	"github.com/fotap/heysync/pkg/heysync"
	"github.com/fotap/heysync/pkg/heysync/adapters"
)

// ErrPublishFailed wraps every transport failure reported by this adapter.
var ErrPublishFailed = errors.New("heysync/nats: publish failed")

// Client is the slice of a NATS connection the adapter needs.
type Client interface {
	Publish(subject string, data []byte, headers map[string]string) error
}

// Channel publishes every payload to one subject.
type Channel struct {
	client  Client
	subject string
	opts    adapters.Options
}

var _ heysync.Channel = (*Channel)(nil)

// New creates a channel for subject.
func New(c Client, subject string, opts ...adapters.Option) *Channel {
	return &Channel{
		client:  c,
		subject: subject,
		opts:    adapters.Apply("nats", opts...),
	}
}

// Subject returns the destination subject.
func (c *Channel) Subject() string { return c.subject }

func (c *Channel) Publish(payload any) {
	if c.client == nil {
		c.opts.OnError(c.subject, fmt.Errorf("%w: no client", ErrPublishFailed))
		return
	}

	body, headers, err := c.opts.Encode(payload)
	if err != nil {
		c.opts.OnError(c.subject, fmt.Errorf("%w: encode: %w", ErrPublishFailed, err))
		return
	}

	if err := c.client.Publish(c.subject, body, headers); err != nil {
		c.opts.OnError(c.subject, fmt.Errorf("%w: %w", ErrPublishFailed, err))
	}
}

// ChannelsFor returns one channel per method of class, on subjects
// prefix.<Method>, ready to pass to Instantiate.
func ChannelsFor(c Client, prefix string, class *heysync.Class, opts ...adapters.Option) []heysync.Channel {
	subjects := adapters.Targets(prefix, class)
	channels := make([]heysync.Channel, len(subjects))
	for i, subject := range subjects {
		channels[i] = New(c, subject, opts...)
	}
	return channels
}
