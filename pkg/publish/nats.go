// Package publish provides optional external sinks for accepted events.
package publish

import (
	"log"

	"github.com/nats-io/nats.go"
)

// DefaultSubject is the NATS subject events are published on.
const DefaultSubject = "killfeed.events"

// NATSPublisher mirrors each accepted event onto a NATS subject.
type NATSPublisher struct {
	nc      *nats.Conn
	subject string
}

// NewNATSPublisher connects to a NATS server. subject defaults to
// DefaultSubject if empty.
func NewNATSPublisher(url, subject string) (*NATSPublisher, error) {
	if subject == "" {
		subject = DefaultSubject
	}
	nc, err := nats.Connect(url,
		nats.Name("killfeed"),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, err
	}
	return &NATSPublisher{nc: nc, subject: subject}, nil
}

// Publish sends one serialized event.
func (p *NATSPublisher) Publish(data []byte) error {
	return p.nc.Publish(p.subject, data)
}

// Close drains and closes the connection.
func (p *NATSPublisher) Close() {
	if err := p.nc.Drain(); err != nil {
		log.Printf("[NATS] drain: %v", err)
	}
}
