package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
)

// natsConn is the part of *nats.Conn the publisher needs
type natsConn interface {
	Publish(subject string, data []byte) error
	Drain() error
}

// NATSPublisher publishes events on "<prefix>.<type>.<user id>"
type NATSPublisher struct {
	conn   natsConn
	prefix string
}

// NewNATSPublisher connects to natsURL and keeps reconnecting in the background
func NewNATSPublisher(natsURL, prefix string) (*NATSPublisher, error) {
	nc, err := nats.Connect(natsURL,
		nats.Name("acquaint-api"),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to nats: %w", err)
	}

	return newNATSPublisher(nc, prefix), nil
}

func newNATSPublisher(conn natsConn, prefix string) *NATSPublisher {
	return &NATSPublisher{conn: conn, prefix: prefix}
}

// Subject returns the subject an event is published on
func (p *NATSPublisher) Subject(event Event) string {
	return fmt.Sprintf("%s.%s.%s", p.prefix, event.Type, event.UserID)
}

func (p *NATSPublisher) Publish(ctx context.Context, event Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	if err := p.conn.Publish(p.Subject(event), data); err != nil {
		return fmt.Errorf("publish %s: %w", event.Type, err)
	}
	return nil
}

// Close flushes pending messages and closes the connection
func (p *NATSPublisher) Close() error {
	return p.conn.Drain()
}
