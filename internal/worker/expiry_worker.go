package worker

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/MathCatch_Go/internal/clock"
	"github.com/osse101/MathCatch_Go/internal/domain"
	"github.com/osse101/MathCatch_Go/internal/event"
	"github.com/osse101/MathCatch_Go/internal/logger"
)

// SpawnExpirer removes a specific spawn from its channel if it is still active
type SpawnExpirer interface {
	Expire(channelID, spawnID string) bool
	Peek(channelID string) (domain.ActiveSpawn, bool)
}

// ExpiryWorker removes uncaught spawns once their expiry passes
type ExpiryWorker struct {
	timers timerSet[uuid.UUID]
	table  SpawnExpirer
	bus    event.Bus
	clock  clock.Clock
}

// NewExpiryWorker creates a new ExpiryWorker
func NewExpiryWorker(table SpawnExpirer, bus event.Bus, clk clock.Clock) *ExpiryWorker {
	if clk == nil {
		clk = clock.NewRealClock()
	}
	return &ExpiryWorker{table: table, bus: bus, clock: clk}
}

// Subscribe arms a timer for each activated spawn and disarms it when the spawn is caught
func (w *ExpiryWorker) Subscribe(bus event.Bus) {
	bus.Subscribe(event.SpawnActivated, w.handleSpawnActivated)
	bus.Subscribe(event.ItemCaught, w.handleItemCaught)
}

func (w *ExpiryWorker) handleSpawnActivated(ctx context.Context, e event.Event) error {
	payload, err := event.DecodePayload[event.SpawnActivatedPayloadV1](e.Payload)
	if err != nil {
		return err
	}
	if payload.ExpiresAt == nil {
		return nil
	}
	return w.ScheduleExpiry(ctx, payload.ChannelID, payload.SpawnID, payload.ItemKey, *payload.ExpiresAt)
}

func (w *ExpiryWorker) handleItemCaught(_ context.Context, e event.Event) error {
	payload, err := event.DecodePayload[event.ItemCaughtPayloadV1](e.Payload)
	if err != nil {
		return err
	}
	if id, err := uuid.Parse(payload.SpawnID); err == nil {
		w.timers.disarm(id)
	}
	return nil
}

// ScheduleExpiry arranges for the spawn to be removed at expiresAt
func (w *ExpiryWorker) ScheduleExpiry(ctx context.Context, channelID, spawnID, itemKey string, expiresAt time.Time) error {
	id, err := uuid.Parse(spawnID)
	if err != nil {
		return err
	}

	d := w.clock.Until(expiresAt)
	logger.FromContext(ctx).Debug(LogMsgSchedulingSpawnExpiry, "channelID", channelID, "spawnID", spawnID, "in", d)

	if d <= 0 {
		w.expire(channelID, spawnID, itemKey)
		return nil
	}

	// A catch can land before spawn.activated reaches us; its disarm then
	// ran first, so check the table on both sides of arming.
	if !w.active(channelID, spawnID) {
		logger.FromContext(ctx).Debug(LogMsgSpawnGoneBeforeArm, "channelID", channelID, "spawnID", spawnID)
		return nil
	}
	w.timers.arm(id, d, func() {
		w.expire(channelID, spawnID, itemKey)
	})
	if !w.active(channelID, spawnID) {
		w.timers.disarm(id)
	}
	return nil
}

func (w *ExpiryWorker) active(channelID, spawnID string) bool {
	s, ok := w.table.Peek(channelID)
	return ok && s.ID == spawnID
}

func (w *ExpiryWorker) expire(channelID, spawnID, itemKey string) {
	if !w.table.Expire(channelID, spawnID) {
		return
	}

	ctx := context.Background()
	logger.FromContext(ctx).Info(LogMsgSpawnExpired, "channelID", channelID, "item", itemKey)

	if w.bus == nil {
		return
	}
	s := domain.ActiveSpawn{ID: spawnID, ChannelID: channelID, Item: domain.Item{Key: itemKey}}
	if err := w.bus.Publish(ctx, event.NewSpawnExpiredEvent(s, w.clock.Now())); err != nil {
		logger.FromContext(ctx).Warn(LogMsgPublishFailed, "event", event.SpawnExpired, "error", err)
	}
}

// Pending returns the number of armed expiry timers
func (w *ExpiryWorker) Pending() int {
	return w.timers.len()
}

// Shutdown cancels every pending expiry and waits for running ones
func (w *ExpiryWorker) Shutdown(ctx context.Context) error {
	return w.timers.close(ctx, WorkerNameExpiry)
}
