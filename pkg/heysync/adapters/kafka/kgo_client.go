package kafka

import (
	"context"
	"crypto/tls"
	"fmt"

	"github.com/twmb/franz-go/pkg/kgo"
)

// Config describes a franz-go producer. A nil Acks keeps the client default
// (all in-sync replicas); idempotent writes require that default.
type Config struct {
	Brokers     []string
	TLS         *tls.Config
	Acks        *kgo.Acks
	Idempotent  bool
	ClientID    string
	Compression []kgo.CompressionCodec // in order of preference
}

type kgoWriter struct{ cl *kgo.Client }

func (w kgoWriter) Write(topic string, key, value []byte, headers map[string]string) error {
	rec := &kgo.Record{Topic: topic, Key: key, Value: value}
	if len(headers) > 0 {
		rec.Headers = make([]kgo.RecordHeader, 0, len(headers))
		for k, v := range headers {
			rec.Headers = append(rec.Headers, kgo.RecordHeader{Key: k, Value: []byte(v)})
		}
	}
	return w.cl.ProduceSync(context.Background(), rec).FirstErr()
}

// NewWriter builds a franz-go backed Writer. Call cleanup to close the client.
func NewWriter(cfg Config) (Writer, func(), error) {
	opts, err := clientOpts(cfg)
	if err != nil {
		return nil, nil, err
	}
	cl, err := kgo.NewClient(opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: kafka client init: %w", ErrPublishFailed, err)
	}
	return kgoWriter{cl: cl}, cl.Close, nil
}

func clientOpts(cfg Config) ([]kgo.Opt, error) {
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("%w: kafka brokers required", ErrPublishFailed)
	}
	opts := []kgo.Opt{kgo.SeedBrokers(cfg.Brokers...)}
	if cfg.ClientID != "" {
		opts = append(opts, kgo.ClientID(cfg.ClientID))
	}
	if cfg.TLS != nil {
		opts = append(opts, kgo.DialTLSConfig(cfg.TLS))
	}
	if len(cfg.Compression) > 0 {
		opts = append(opts, kgo.ProducerBatchCompression(cfg.Compression...))
	}
	if !cfg.Idempotent {
		opts = append(opts, kgo.DisableIdempotentWrite())
	}
	if cfg.Acks != nil {
		if cfg.Idempotent && *cfg.Acks != kgo.AllISRAcks() {
			return nil, fmt.Errorf("%w: idempotent kafka writes require acks from all in-sync replicas", ErrPublishFailed)
		}
		opts = append(opts, kgo.RequiredAcks(*cfg.Acks))
	}
	return opts, nil
}
