// Package eventbus routes committed domain events to their consumers: the
// broker, the live tracking hub and the log.
package eventbus

import (
	"context"
	"errors"
	"log/slog"

	"montarota/internal/core/domain/events"
	"montarota/internal/core/ports"
)

// Fanout hands every batch to all publishers. A failing publisher does not stop the others.
type Fanout struct {
	publishers []ports.EventPublisher
}

var _ ports.EventPublisher = (*Fanout)(nil)

func NewFanout(publishers ...ports.EventPublisher) *Fanout {
	kept := make([]ports.EventPublisher, 0, len(publishers))
	for _, p := range publishers {
		if p != nil {
			kept = append(kept, p)
		}
	}
	return &Fanout{publishers: kept}
}

func (f *Fanout) Publish(ctx context.Context, evts ...events.Event) error {
	if len(evts) == 0 {
		return nil
	}
	var errList []error
	for _, p := range f.publishers {
		if err := p.Publish(ctx, evts...); err != nil {
			errList = append(errList, err)
		}
	}
	return errors.Join(errList...)
}

// LogPublisher writes one debug line per event. It stands in for the broker
// when AMQP_URL is not set.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogPublisher{logger: logger.With("component", "events")}
}

func (p *LogPublisher) Publish(ctx context.Context, evts ...events.Event) error {
	for _, evt := range evts {
		p.logger.DebugContext(ctx, "event published",
			"name", evt.Name(),
			"aggregate_id", evt.AggregateID(),
			"occurred_at", evt.OccurredAt(),
		)
	}
	return nil
}
