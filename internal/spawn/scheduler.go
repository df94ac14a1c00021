package spawn

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/MathCatch_Go/internal/catalog"
	"github.com/osse101/MathCatch_Go/internal/clock"
	"github.com/osse101/MathCatch_Go/internal/domain"
	"github.com/osse101/MathCatch_Go/internal/event"
	"github.com/osse101/MathCatch_Go/internal/logger"
	"github.com/osse101/MathCatch_Go/internal/utils"
	"github.com/osse101/MathCatch_Go/internal/worker"
)

// RuleSource provides a consistent view of the channel rules
type RuleSource interface {
	Get(channelID string) (domain.SpawnRule, bool)
	List(guildID string) []domain.SpawnRule
}

// Timers is a keyed set of recurring jobs
type Timers interface {
	Schedule(key string, interval time.Duration, job worker.Job) bool
	Cancel(key string) bool
	Interval(key string) (time.Duration, bool)
	NextRun(key string) (time.Time, bool)
	Stop()
}

// Notifier sends plain text to a channel
type Notifier interface {
	Notify(ctx context.Context, channelID, text string) error
}

// Options configures a Scheduler
type Options struct {
	// FallbackChance is the per-message drop chance in channels without a rule. 0 disables.
	FallbackChance float64
	// AllowedChannels limits the fallback path. Empty allows every channel.
	AllowedChannels []string
	Rand            utils.Rand
	Clock           clock.Clock
}

// Scheduler decides when items become active in a channel and which item appears
type Scheduler struct {
	table    *Table
	rules    RuleSource
	catalog  catalog.Catalog
	timers   Timers
	notifier Notifier
	bus      event.Bus
	rng      utils.Rand
	clock    clock.Clock

	fallbackChance float64
	allowed        map[string]struct{}

	lastSpawn sync.Map // channelID -> time.Time
}

// NewScheduler creates a spawn scheduler. notifier and bus may be nil.
func NewScheduler(table *Table, rules RuleSource, cat catalog.Catalog, timers Timers, notifier Notifier, bus event.Bus, opts Options) *Scheduler {
	s := &Scheduler{
		table:          table,
		rules:          rules,
		catalog:        cat,
		timers:         timers,
		notifier:       notifier,
		bus:            bus,
		rng:            opts.Rand,
		clock:          opts.Clock,
		fallbackChance: opts.FallbackChance,
	}
	if s.rng == nil {
		s.rng = utils.DefaultRand()
	}
	if s.clock == nil {
		s.clock = clock.NewRealClock()
	}
	if len(opts.AllowedChannels) > 0 {
		s.allowed = make(map[string]struct{}, len(opts.AllowedChannels))
		for _, id := range opts.AllowedChannels {
			s.allowed[id] = struct{}{}
		}
	}
	return s
}

// Table returns the active spawn table
func (s *Scheduler) Table() *Table {
	return s.table
}

// Start arms an interval timer for every stored rule that has one
func (s *Scheduler) Start(ctx context.Context) {
	armed := 0
	for _, rule := range s.rules.List("") {
		if s.SyncRule(ctx, rule) {
			armed++
		}
	}
	logger.FromContext(ctx).Info(LogMsgTimersArmed, "count", armed)
}

// Stop cancels every interval timer
func (s *Scheduler) Stop() {
	s.timers.Stop()
}

// Subscribe keeps interval timers in step with rule changes
func (s *Scheduler) Subscribe(bus event.Bus) {
	bus.Subscribe(event.RuleChanged, s.handleRuleChanged)
}

func (s *Scheduler) handleRuleChanged(ctx context.Context, e event.Event) error {
	payload, err := event.DecodePayload[event.RuleChangedPayloadV1](e.Payload)
	if err != nil {
		logger.FromContext(ctx).Error(LogMsgRuleEventDecodeErr, "error", err)
		return err
	}
	if payload.Removed {
		s.CancelRule(ctx, payload.ChannelID)
		return nil
	}
	s.SyncRule(ctx, domain.SpawnRule{
		ChannelID:   payload.ChannelID,
		GuildID:     payload.GuildID,
		Probability: payload.Probability,
		Interval:    payload.Interval,
	})
	return nil
}

// SyncRule makes the channel's timer match the rule. A timer whose interval is unchanged keeps running.
// It returns true if a timer is armed for the channel afterwards.
func (s *Scheduler) SyncRule(ctx context.Context, rule domain.SpawnRule) bool {
	if !rule.HasInterval() {
		s.CancelRule(ctx, rule.ChannelID)
		return false
	}

	d := rule.IntervalDuration()
	if current, ok := s.timers.Interval(rule.ChannelID); ok && current == d {
		return true
	}

	channelID := rule.ChannelID
	ok := s.timers.Schedule(channelID, d, worker.JobFunc(func(ctx context.Context) error {
		s.FireInterval(ctx, channelID)
		return nil
	}))
	if ok {
		logger.FromContext(ctx).Info(LogMsgIntervalArmed, "channelID", channelID, "interval", d)
	}
	return ok
}

// CancelRule stops the channel's interval timer
func (s *Scheduler) CancelRule(ctx context.Context, channelID string) {
	if s.timers.Cancel(channelID) {
		logger.FromContext(ctx).Info(LogMsgIntervalCancelled, "channelID", channelID)
	}
}

// OnMessage runs the probability path for an inbound message.
// It only draws when the channel is idle; a rule-less channel uses the fallback chance.
func (s *Scheduler) OnMessage(ctx context.Context, channelID string) (domain.ActiveSpawn, bool) {
	p, trigger := s.chanceFor(channelID)
	if p <= 0 {
		return domain.ActiveSpawn{}, false
	}
	if s.table.Occupied(channelID) {
		return domain.ActiveSpawn{}, false
	}
	if s.rng.Float64() >= p {
		return domain.ActiveSpawn{}, false
	}
	return s.spawnRandom(ctx, channelID, trigger)
}

func (s *Scheduler) chanceFor(channelID string) (float64, domain.SpawnTrigger) {
	if rule, ok := s.rules.Get(channelID); ok {
		return rule.Probability, domain.TriggerProbability
	}
	if s.fallbackChance <= 0 {
		return 0, domain.TriggerFallback
	}
	if s.allowed != nil {
		if _, ok := s.allowed[channelID]; !ok {
			return 0, domain.TriggerFallback
		}
	}
	return s.fallbackChance, domain.TriggerFallback
}

// FireInterval handles one interval timer firing. An occupied channel makes it a no-op.
func (s *Scheduler) FireInterval(ctx context.Context, channelID string) (domain.ActiveSpawn, bool) {
	if s.table.Occupied(channelID) {
		logger.FromContext(ctx).Debug(LogMsgIntervalSkipped, "channelID", channelID)
		return domain.ActiveSpawn{}, false
	}
	return s.spawnRandom(ctx, channelID, domain.TriggerInterval)
}

func (s *Scheduler) spawnRandom(ctx context.Context, channelID string, trigger domain.SpawnTrigger) (domain.ActiveSpawn, bool) {
	item, ok := s.RandomItem()
	if !ok {
		logger.FromContext(ctx).Warn(LogMsgEmptyCatalog, "channelID", channelID)
		return domain.ActiveSpawn{}, false
	}
	return s.Activate(ctx, channelID, item, trigger)
}

// RandomItem picks uniformly from the whole catalog
func (s *Scheduler) RandomItem() (domain.Item, bool) {
	items := s.catalog.All()
	return PickUniform(items, s.rng)
}

// PickUniform returns a uniformly chosen element of items
func PickUniform(items []domain.Item, rng utils.Rand) (domain.Item, bool) {
	if len(items) == 0 {
		return domain.Item{}, false
	}
	return items[rng.IntN(len(items))], true
}

// Activate puts item into the channel if it is idle, then announces it.
// Losing the race to another trigger is silent.
func (s *Scheduler) Activate(ctx context.Context, channelID string, item domain.Item, trigger domain.SpawnTrigger) (domain.ActiveSpawn, bool) {
	spawned, ok := s.table.TryActivate(channelID, item, trigger)
	if !ok {
		return domain.ActiveSpawn{}, false
	}
	s.lastSpawn.Store(channelID, spawned.ActivatedAt)

	log := logger.FromContext(ctx)
	log.Info(LogMsgSpawnActivated, "channelID", channelID, "item", item.Key, "trigger", trigger)

	if s.bus != nil {
		if err := s.bus.Publish(ctx, event.NewSpawnActivatedEvent(spawned)); err != nil {
			log.Warn(LogMsgPublishFailed, "error", err)
		}
	}
	if s.notifier != nil {
		if err := s.notifier.Notify(ctx, channelID, fmt.Sprintf(MsgSpawnAnnouncement, item.Key)); err != nil {
			log.Warn(LogMsgAnnounceFailed, "channelID", channelID, "error", err)
		}
	}
	return spawned, true
}

// LastSpawn returns when the channel last received a spawn
func (s *Scheduler) LastSpawn(channelID string) (time.Time, bool) {
	v, ok := s.lastSpawn.Load(channelID)
	if !ok {
		return time.Time{}, false
	}
	return v.(time.Time), true
}

// NextInterval returns when the channel's interval timer fires next
func (s *Scheduler) NextInterval(channelID string) (time.Time, bool) {
	return s.timers.NextRun(channelID)
}

// Status is a diagnostic view of one channel
type Status struct {
	Rule         *domain.SpawnRule   `json:"rule,omitempty"`
	Active       *domain.ActiveSpawn `json:"active,omitempty"`
	LastSpawn    *time.Time          `json:"last_spawn,omitempty"`
	NextInterval *time.Time          `json:"next_interval,omitempty"`
}

// Status reports the channel's rule, active spawn and timer state. The result may be stale.
func (s *Scheduler) Status(channelID string) Status {
	var st Status
	if rule, ok := s.rules.Get(channelID); ok {
		st.Rule = &rule
	}
	if active, ok := s.table.Peek(channelID); ok {
		st.Active = &active
	}
	if last, ok := s.LastSpawn(channelID); ok {
		st.LastSpawn = &last
	}
	if next, ok := s.NextInterval(channelID); ok {
		st.NextInterval = &next
	}
	return st
}
