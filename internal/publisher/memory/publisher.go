// Package memory implements an in-memory run-event publisher for tests and
// local runs without a message bus.
package memory

import (
	"context"
	"sync"

	"github.com/techjobs/harvester/internal/harvest"
)

// Publisher records published events in order.
type Publisher struct {
	mu     sync.Mutex
	events []harvest.RunEvent
}

// New returns an empty Publisher.
func New() *Publisher {
	return &Publisher{}
}

// Publish appends the event.
func (p *Publisher) Publish(_ context.Context, event harvest.RunEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

// Events returns a copy of everything published so far.
func (p *Publisher) Events() []harvest.RunEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]harvest.RunEvent(nil), p.events...)
}
