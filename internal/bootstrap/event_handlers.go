package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/osse101/MathCatch_Go/internal/event"
	"github.com/osse101/MathCatch_Go/internal/metrics"
)

// EventHandlerDependencies holds the dependencies needed for event handler registration.
type EventHandlerDependencies struct {
	EventBus   event.Bus
	DeadLetter *event.DeadLetterWriter
	Registerer prometheus.Registerer
	// ActiveSpawns and IntervalTimers are read at scrape time
	ActiveSpawns   func() int
	IntervalTimers func() int
}

// RegisterEventHandlers sets up the event subscribers that are not part of the game itself:
// - Metrics collector (for event-based metrics) and state gauges
// - Dead-letter writer (catches that could not be recorded)
func RegisterEventHandlers(deps EventHandlerDependencies) error {
	metricsCollector := metrics.NewEventMetricsCollector()
	if err := metricsCollector.Register(deps.EventBus); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedRegisterMetrics, err)
	}

	reg := deps.Registerer
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if err := metrics.RegisterStateGauges(reg,
		func() float64 { return float64(deps.ActiveSpawns()) },
		func() float64 { return float64(deps.IntervalTimers()) },
	); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedRegisterGauges, err)
	}
	slog.Info(LogMsgMetricsCollectorRegistered)

	if deps.DeadLetter != nil {
		deps.DeadLetter.Subscribe(deps.EventBus)
		slog.Info(LogMsgDeadLetterSubscribed)
	}

	return nil
}
