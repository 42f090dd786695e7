package nats

import (
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
)

// Config describes a real NATS connection.
type Config struct {
	URL           string
	Name          string
	ConnTimeout   time.Duration
	MaxReconnects int
}

// Conn is a NATS connection that satisfies Client.
type Conn struct{ nc *nats.Conn }

var _ Client = (*Conn)(nil)

// Connect dials NATS.
func Connect(cfg Config) (*Conn, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("%w: nats url required", ErrPublishFailed)
	}

	opts := []nats.Option{}
	if cfg.Name != "" {
		opts = append(opts, nats.Name(cfg.Name))
	}
	if cfg.ConnTimeout > 0 {
		opts = append(opts, nats.Timeout(cfg.ConnTimeout))
	}
	if cfg.MaxReconnects != 0 {
		opts = append(opts, nats.MaxReconnects(cfg.MaxReconnects))
	}

	nc, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: nats connect: %w", ErrPublishFailed, err)
	}
	return &Conn{nc: nc}, nil
}

func (c *Conn) Publish(subject string, data []byte, headers map[string]string) error {
	msg := &nats.Msg{Subject: subject, Data: data}
	if len(headers) > 0 {
		msg.Header = nats.Header{}
		for k, v := range headers {
			msg.Header.Add(k, v)
		}
	}
	return c.nc.PublishMsg(msg)
}

// Close drains pending messages and closes the connection.
func (c *Conn) Close() {
	if c.nc != nil && !c.nc.IsClosed() {
		_ = c.nc.Drain() //nolint:errcheck // best-effort shutdown
		c.nc.Close()
	}
}
