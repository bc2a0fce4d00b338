package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
)

// NATSPublisher publishes events to JetStream.
type NATSPublisher struct {
	conn   *nats.Conn
	js     nats.JetStreamContext
	prefix string
}

// NewNATSPublisher connects to url and prepares a JetStream context.
func NewNATSPublisher(url, prefix string, opts ...nats.Option) (*NATSPublisher, error) {
	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to nats: %w", err)
	}

	js, err := nc.JetStream()
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to open jetstream: %w", err)
	}

	return &NATSPublisher{conn: nc, js: js, prefix: prefix}, nil
}

// Subject returns the subject an event is published on.
func Subject(prefix string, e Event) string {
	if prefix == "" {
		return e.EventName()
	}
	return prefix + "." + e.EventName()
}

// Publish encodes e as JSON and publishes it.
func (p *NATSPublisher) Publish(ctx context.Context, e Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", e.EventName(), err)
	}

	if _, err := p.js.Publish(Subject(p.prefix, e), data, nats.Context(ctx)); err != nil {
		return fmt.Errorf("failed to publish %s: %w", e.EventName(), err)
	}
	return nil
}

// Close drains the connection.
func (p *NATSPublisher) Close() {
	if p == nil || p.conn == nil {
		return
	}
	if err := p.conn.Drain(); err != nil {
		p.conn.Close()
	}
}
