package metrics

import (
	"context"

	"github.com/osse101/MathCatch_Go/internal/event"
	"github.com/osse101/MathCatch_Go/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all game events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	eventTypes := []event.Type{
		event.SpawnActivated,
		event.SpawnExpired,
		event.ItemCaught,
		event.NearMiss,
		event.CatchPersistFailed,
		event.RuleChanged,
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}

	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch evt.Type {
	case event.SpawnActivated:
		p, err := event.DecodePayload[event.SpawnActivatedPayloadV1](evt.Payload)
		if err != nil {
			return e.decodeFailed(ctx, evt, err)
		}
		SpawnsTotal.WithLabelValues(p.Trigger).Inc()

	case event.SpawnExpired:
		SpawnsExpired.Inc()

	case event.ItemCaught:
		p, err := event.DecodePayload[event.ItemCaughtPayloadV1](evt.Payload)
		if err != nil {
			return e.decodeFailed(ctx, evt, err)
		}
		CatchesTotal.WithLabelValues(p.ItemKey).Inc()

	case event.NearMiss:
		NearMissesTotal.Inc()

	case event.CatchPersistFailed:
		CatchPersistFailures.Inc()

	case event.RuleChanged:
		p, err := event.DecodePayload[event.RuleChangedPayloadV1](evt.Payload)
		if err != nil {
			return e.decodeFailed(ctx, evt, err)
		}
		action := ActionSet
		if p.Removed {
			action = ActionRemove
		}
		RuleChangesTotal.WithLabelValues(action).Inc()
	}

	return nil
}

func (e *EventMetricsCollector) decodeFailed(ctx context.Context, evt event.Event, err error) error {
	EventHandlerErrors.WithLabelValues(string(evt.Type)).Inc()
	logger.FromContext(ctx).Debug(LogMsgEventDecodeFailed, "type", evt.Type, "error", err)
	return err
}
