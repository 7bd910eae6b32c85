// Package events fans committed domain events out to several publishers.
package events

import (
	"context"
	"errors"
	"log/slog"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/ports"
	"pizzeria/internal/pkg/errs"
)

var _ ports.EventPublisher = (*Dispatcher)(nil)

// Dispatcher hands every event to all publishers in order. A failing
// publisher does not stop the rest; failures are joined.
type Dispatcher struct {
	publishers []ports.EventPublisher
	logger     *slog.Logger
}

func NewDispatcher(logger *slog.Logger, publishers ...ports.EventPublisher) (*Dispatcher, error) {
	if logger == nil {
		return nil, errs.NewValueIsRequiredError("logger")
	}
	active := make([]ports.EventPublisher, 0, len(publishers))
	for _, p := range publishers {
		if p != nil {
			active = append(active, p)
		}
	}
	return &Dispatcher{publishers: active, logger: logger.With("component", "event-dispatcher")}, nil
}

func (d *Dispatcher) Publish(ctx context.Context, event kernel.DomainEvent) error {
	var joined error
	for _, p := range d.publishers {
		if err := p.Publish(ctx, event); err != nil {
			d.logger.WarnContext(ctx, "event publisher failed", "event", event.EventName(), "error", err)
			joined = errors.Join(joined, err)
		}
	}
	return joined
}
