package spawn

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/MathCatch_Go/internal/catalog"
	"github.com/osse101/MathCatch_Go/internal/domain"
	"github.com/osse101/MathCatch_Go/internal/event"
	"github.com/osse101/MathCatch_Go/internal/scheduler"
)

type staticRules struct {
	mu    sync.RWMutex
	rules map[string]domain.SpawnRule
}

func newStaticRules(rules ...domain.SpawnRule) *staticRules {
	r := &staticRules{rules: make(map[string]domain.SpawnRule)}
	for _, rule := range rules {
		r.rules[rule.ChannelID] = rule
	}
	return r
}

func (r *staticRules) Get(channelID string) (domain.SpawnRule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rule, ok := r.rules[channelID]
	return rule, ok
}

func (r *staticRules) List(string) []domain.SpawnRule {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.SpawnRule, 0, len(r.rules))
	for _, rule := range r.rules {
		out = append(out, rule)
	}
	return out
}

// fixedRand returns f for every Float64 draw and the first index for IntN
type fixedRand struct{ f float64 }

func (r fixedRand) Float64() float64 { return r.f }
func (r fixedRand) IntN(int) int     { return 0 }

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, channelID, text string) error {
	args := m.Called(ctx, channelID, text)
	return args.Error(0)
}

func newTestScheduler(t *testing.T, rules *staticRules, rng fixedRand, opts Options) (*Scheduler, *MockNotifier) {
	t.Helper()
	notifier := &MockNotifier{}
	notifier.On("Notify", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	timers := scheduler.New(nil)
	t.Cleanup(timers.Stop)

	opts.Rand = rng
	s := NewScheduler(NewTable(0, nil), rules, catalog.New([]domain.Item{itemSin, itemCos}), timers, notifier, nil, opts)
	return s, notifier
}

func TestScheduler_ProbabilityPath(t *testing.T) {
	ctx := context.Background()

	t.Run("p=1 spawns once per idle window", func(t *testing.T) {
		s, notifier := newTestScheduler(t, newStaticRules(domain.SpawnRule{ChannelID: "c1", Probability: 1.0}), fixedRand{f: 0.999}, Options{})

		spawned, ok := s.OnMessage(ctx, "c1")
		require.True(t, ok)
		assert.Equal(t, "cos", spawned.Item.Key, "catalog order is by key")
		assert.Equal(t, domain.TriggerProbability, spawned.Trigger)

		for i := 0; i < 5; i++ {
			_, ok = s.OnMessage(ctx, "c1")
			assert.False(t, ok)
		}
		notifier.AssertNumberOfCalls(t, "Notify", 1)
		notifier.AssertCalled(t, "Notify", mock.Anything, "c1", "A new Math object dropped! `cos`. Catch it by saying its name!")

		_, ok = s.Table().TryClaim("c1")
		require.True(t, ok)
		_, ok = s.OnMessage(ctx, "c1")
		assert.True(t, ok, "idle again after the claim")
	})

	t.Run("draw at or above p does not spawn", func(t *testing.T) {
		s, notifier := newTestScheduler(t, newStaticRules(domain.SpawnRule{ChannelID: "c1", Probability: 0.5}), fixedRand{f: 0.5}, Options{})
		_, ok := s.OnMessage(ctx, "c1")
		assert.False(t, ok)
		notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("interval-only rule never spawns on messages", func(t *testing.T) {
		s, _ := newTestScheduler(t, newStaticRules(domain.SpawnRule{ChannelID: "c1", Interval: 60}), fixedRand{f: 0}, Options{FallbackChance: 1})
		_, ok := s.OnMessage(ctx, "c1")
		assert.False(t, ok)
	})
}

func TestScheduler_FallbackPath(t *testing.T) {
	ctx := context.Background()

	t.Run("disabled", func(t *testing.T) {
		s, _ := newTestScheduler(t, newStaticRules(), fixedRand{f: 0}, Options{})
		_, ok := s.OnMessage(ctx, "c9")
		assert.False(t, ok)
	})

	t.Run("any channel when allow-list empty", func(t *testing.T) {
		s, _ := newTestScheduler(t, newStaticRules(), fixedRand{f: 0.01}, Options{FallbackChance: 0.02})
		spawned, ok := s.OnMessage(ctx, "c9")
		require.True(t, ok)
		assert.Equal(t, domain.TriggerFallback, spawned.Trigger)
	})

	t.Run("allow-list", func(t *testing.T) {
		s, _ := newTestScheduler(t, newStaticRules(), fixedRand{f: 0.01}, Options{FallbackChance: 0.02, AllowedChannels: []string{"c1"}})
		_, ok := s.OnMessage(ctx, "c9")
		assert.False(t, ok)
		_, ok = s.OnMessage(ctx, "c1")
		assert.True(t, ok)
	})

	t.Run("draw above chance", func(t *testing.T) {
		s, _ := newTestScheduler(t, newStaticRules(), fixedRand{f: 0.03}, Options{FallbackChance: 0.02})
		_, ok := s.OnMessage(ctx, "c9")
		assert.False(t, ok)
	})
}

func TestScheduler_IntervalOccupiedIsNoop(t *testing.T) {
	ctx := context.Background()
	s, notifier := newTestScheduler(t, newStaticRules(domain.SpawnRule{ChannelID: "c1", Interval: 60}), fixedRand{}, Options{})

	// Three firings while never claimed: only the first spawns
	_, ok := s.FireInterval(ctx, "c1")
	require.True(t, ok)
	_, ok = s.FireInterval(ctx, "c1")
	assert.False(t, ok)
	_, ok = s.FireInterval(ctx, "c1")
	assert.False(t, ok)
	notifier.AssertNumberOfCalls(t, "Notify", 1)

	_, ok = s.Table().TryClaim("c1")
	require.True(t, ok)

	spawned, ok := s.FireInterval(ctx, "c1")
	require.True(t, ok)
	assert.Equal(t, domain.TriggerInterval, spawned.Trigger)
	_, ok = s.LastSpawn("c1")
	assert.True(t, ok)
}

func TestScheduler_TimerLifecycle(t *testing.T) {
	ctx := context.Background()
	rules := newStaticRules(
		domain.SpawnRule{ChannelID: "c1", Interval: 60},
		domain.SpawnRule{ChannelID: "c2", Probability: 0.5},
	)
	timers := scheduler.New(nil)
	defer timers.Stop()

	s := NewScheduler(NewTable(0, nil), rules, catalog.New([]domain.Item{itemSin}), timers, nil, nil, Options{})
	s.Start(ctx)

	assert.Equal(t, 1, timers.Len())
	first, ok := s.NextInterval("c1")
	require.True(t, ok)

	// Unchanged interval keeps the running timer
	assert.True(t, s.SyncRule(ctx, domain.SpawnRule{ChannelID: "c1", Probability: 0.3, Interval: 60}))
	same, _ := s.NextInterval("c1")
	assert.Equal(t, first, same)

	// Changed interval recreates it
	assert.True(t, s.SyncRule(ctx, domain.SpawnRule{ChannelID: "c1", Interval: 30}))
	d, _ := timers.Interval("c1")
	assert.Equal(t, 30*time.Second, d)

	// Interval set to 0 cancels it
	assert.False(t, s.SyncRule(ctx, domain.SpawnRule{ChannelID: "c1", Probability: 0.3}))
	assert.Equal(t, 0, timers.Len())
}

func TestScheduler_RuleChangedEvents(t *testing.T) {
	ctx := context.Background()
	bus := event.NewMemoryBus()
	timers := scheduler.New(nil)
	defer timers.Stop()

	s := NewScheduler(NewTable(0, nil), newStaticRules(), catalog.New([]domain.Item{itemSin}), timers, nil, bus, Options{})
	s.Subscribe(bus)

	rule := domain.SpawnRule{ChannelID: "c1", GuildID: "g1", Interval: 120}
	require.NoError(t, bus.Publish(ctx, event.NewRuleChangedEvent(rule, false)))
	assert.True(t, timers.Has("c1"))

	require.NoError(t, bus.Publish(ctx, event.NewRuleChangedEvent(rule, true)))
	assert.False(t, timers.Has("c1"))
}

func TestScheduler_ActivatePublishesEvent(t *testing.T) {
	ctx := context.Background()
	bus := event.NewMemoryBus()

	var got []event.SpawnActivatedPayloadV1
	bus.Subscribe(event.SpawnActivated, func(_ context.Context, e event.Event) error {
		p, err := event.DecodePayload[event.SpawnActivatedPayloadV1](e.Payload)
		got = append(got, p)
		return err
	})

	timers := scheduler.New(nil)
	defer timers.Stop()
	s := NewScheduler(NewTable(0, nil), newStaticRules(), catalog.New([]domain.Item{itemSin}), timers, nil, bus, Options{})

	spawned, ok := s.Activate(ctx, "c1", itemSin, domain.TriggerSummon)
	require.True(t, ok)
	_, ok = s.Activate(ctx, "c1", itemCos, domain.TriggerSummon)
	assert.False(t, ok)

	require.Len(t, got, 1)
	assert.Equal(t, spawned.ID, got[0].SpawnID)
	assert.Equal(t, "summon", got[0].Trigger)

	st := s.Status("c1")
	require.NotNil(t, st.Active)
	assert.Equal(t, "sin", st.Active.Item.Key)
	assert.Nil(t, st.Rule)
	assert.Nil(t, st.NextInterval)
}

func TestScheduler_EmptyCatalog(t *testing.T) {
	timers := scheduler.New(nil)
	defer timers.Stop()
	s := NewScheduler(NewTable(0, nil), newStaticRules(domain.SpawnRule{ChannelID: "c1", Probability: 1}), catalog.New(nil), timers, nil, nil, Options{Rand: fixedRand{}})

	_, ok := s.OnMessage(context.Background(), "c1")
	assert.False(t, ok)
}

func TestPickUniform(t *testing.T) {
	_, ok := PickUniform(nil, fixedRand{})
	assert.False(t, ok)

	item, ok := PickUniform([]domain.Item{itemSin, itemCos}, fixedRand{})
	require.True(t, ok)
	assert.Equal(t, "sin", item.Key)
}
