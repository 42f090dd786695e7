// Package adapters holds the options shared by the broker-backed channels in
// its sub-packages.
package adapters

import (
	"log/slog"

	"github.com/fotap/heysync/pkg/heysync"
	"github.com/fotap/heysync/pkg/heysync/codec"
)

// ErrorHandler receives transport failures. Publish has no return value, so
// this is the only place an adapter can report them.
type ErrorHandler func(target string, err error)

// Options configures a broker channel.
type Options struct {
	Codec   codec.Codec
	OnError ErrorHandler
	Headers map[string]string
}

// Option mutates Options.
type Option func(*Options)

// WithCodec selects the payload encoding. JSON is the default.
func WithCodec(c codec.Codec) Option {
	return func(o *Options) {
		if c != nil {
			o.Codec = c
		}
	}
}

// WithErrorHandler replaces the default slog error handler.
func WithErrorHandler(h ErrorHandler) Option {
	return func(o *Options) {
		if h != nil {
			o.OnError = h
		}
	}
}

// WithHeaders adds static headers to every message.
func WithHeaders(headers map[string]string) Option {
	return func(o *Options) {
		for k, v := range headers {
			o.Headers[k] = v
		}
	}
}

// Apply builds Options for the named adapter.
func Apply(adapter string, opts ...Option) Options {
	o := Options{
		Codec:   codec.JSON,
		OnError: LogErrors(adapter, slog.Default()),
		Headers: make(map[string]string),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// LogErrors returns an ErrorHandler that writes an error record to logger.
func LogErrors(adapter string, logger *slog.Logger) ErrorHandler {
	return func(target string, err error) {
		logger.Error("heysync: publish failed",
			slog.String("channel", adapter),
			slog.String("target", target),
			slog.Any("error", err),
		)
	}
}

// Encode marshals payload with the configured codec and returns the headers
// to send with it, including the content type.
func (o Options) Encode(payload any) ([]byte, map[string]string, error) {
	body, err := o.Codec.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}

	headers := make(map[string]string, len(o.Headers)+1)
	for k, v := range o.Headers {
		headers[k] = v
	}
	headers["content-type"] = o.Codec.Name()
	return body, headers, nil
}

// Targets derives one broker target per method of class, in constructor
// order: prefix + "." + method name.
func Targets(prefix string, class *heysync.Class) []string {
	targets := make([]string, len(class.Methods))
	for i, m := range class.Methods {
		if prefix == "" {
			targets[i] = m.Name
			continue
		}
		targets[i] = prefix + "." + m.Name
	}
	return targets
}
