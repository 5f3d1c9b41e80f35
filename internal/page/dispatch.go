package page

import (
	"context"
	"fmt"
	"sync"

	"github.com/csg33k/salesproj/internal/domain"
)

// EventKind names a page interaction.
type EventKind string

const (
	EventLoad   EventKind = "load"
	EventSelect EventKind = "select"
	EventSubmit EventKind = "submit"
)

// Event is one page interaction. RepresentativeID is set for EventSelect,
// Form for EventSubmit.
type Event struct {
	Kind             EventKind
	RepresentativeID string
	Form             domain.FormValues
}

type HandlerFunc func(ctx context.Context, ev Event) error

// Dispatcher routes events to the handler registered for their kind.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[EventKind]HandlerFunc
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: map[EventKind]HandlerFunc{}}
}

// Handle registers fn for kind, replacing any earlier registration.
func (d *Dispatcher) Handle(kind EventKind, fn HandlerFunc) {
	d.mu.Lock()
	d.handlers[kind] = fn
	d.mu.Unlock()
}

func (d *Dispatcher) Dispatch(ctx context.Context, ev Event) error {
	d.mu.RLock()
	fn, ok := d.handlers[ev.Kind]
	d.mu.RUnlock()
	if !ok {
		return fmt.Errorf("no handler for %q event", ev.Kind)
	}
	return fn(ctx, ev)
}
