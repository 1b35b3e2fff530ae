// Package publisher defines how completed harvest runs are announced to
// downstream consumers. The abstraction keeps the harvester independent of a
// specific message bus.
package publisher

import (
	"context"

	"github.com/techjobs/harvester/internal/harvest"
)

// NoOp discards every event. It is the default when no bus is configured.
type NoOp struct{}

// Publish for NoOp does nothing and returns nil.
func (NoOp) Publish(_ context.Context, _ harvest.RunEvent) error { return nil }
