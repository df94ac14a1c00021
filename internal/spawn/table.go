package spawn

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/MathCatch_Go/internal/clock"
	"github.com/osse101/MathCatch_Go/internal/domain"
)

// Table holds at most one active spawn per channel.
// Every mutation is a single atomic operation on that channel's slot; there is no table-wide lock.
type Table struct {
	slots  sync.Map // channelID -> *domain.ActiveSpawn
	ttl    time.Duration
	clock  clock.Clock
	active atomic.Int64
}

// NewTable creates a table whose spawns expire after ttl (0 = never)
func NewTable(ttl time.Duration, clk clock.Clock) *Table {
	if clk == nil {
		clk = clock.NewRealClock()
	}
	return &Table{ttl: ttl, clock: clk}
}

// TTL returns the configured spawn lifetime
func (t *Table) TTL() time.Duration {
	return t.ttl
}

// TryActivate puts item into the channel's slot if the slot is empty (or holds an expired spawn).
// It returns the new spawn and true on success; false means another spawn is already active.
func (t *Table) TryActivate(channelID string, item domain.Item, trigger domain.SpawnTrigger) (domain.ActiveSpawn, bool) {
	now := t.clock.Now()
	s := &domain.ActiveSpawn{
		ID:          uuid.NewString(),
		ChannelID:   channelID,
		Item:        item,
		Trigger:     trigger,
		ActivatedAt: now,
	}
	if t.ttl > 0 {
		exp := now.Add(t.ttl)
		s.ExpiresAt = &exp
	}

	for {
		actual, loaded := t.slots.LoadOrStore(channelID, s)
		if !loaded {
			t.active.Add(1)
			return *s, true
		}
		cur := actual.(*domain.ActiveSpawn)
		if !cur.Expired(now) {
			return domain.ActiveSpawn{}, false
		}
		if t.slots.CompareAndSwap(channelID, cur, s) {
			return *s, true
		}
	}
}

// TryClaim removes and returns whatever spawn is active in the channel
func (t *Table) TryClaim(channelID string) (domain.ActiveSpawn, bool) {
	v, ok := t.slots.LoadAndDelete(channelID)
	if !ok {
		return domain.ActiveSpawn{}, false
	}
	t.active.Add(-1)
	s := v.(*domain.ActiveSpawn)
	if s.Expired(t.clock.Now()) {
		return domain.ActiveSpawn{}, false
	}
	return *s, true
}

// Claim removes the channel's spawn only if it is still the spawn identified by spawnID.
// Callers that matched a message against a peeked spawn use this so they never take a newer one.
func (t *Table) Claim(channelID, spawnID string) (domain.ActiveSpawn, bool) {
	v, ok := t.slots.Load(channelID)
	if !ok {
		return domain.ActiveSpawn{}, false
	}
	s := v.(*domain.ActiveSpawn)
	if s.ID != spawnID || s.Expired(t.clock.Now()) {
		return domain.ActiveSpawn{}, false
	}
	if !t.slots.CompareAndDelete(channelID, s) {
		return domain.ActiveSpawn{}, false
	}
	t.active.Add(-1)
	return *s, true
}

// Expire removes the identified spawn if it is still active. Used by expiry timers.
func (t *Table) Expire(channelID, spawnID string) bool {
	v, ok := t.slots.Load(channelID)
	if !ok {
		return false
	}
	s := v.(*domain.ActiveSpawn)
	if s.ID != spawnID {
		return false
	}
	if !t.slots.CompareAndDelete(channelID, s) {
		return false
	}
	t.active.Add(-1)
	return true
}

// Peek returns the channel's unexpired spawn without removing it. The result may be stale.
func (t *Table) Peek(channelID string) (domain.ActiveSpawn, bool) {
	v, ok := t.slots.Load(channelID)
	if !ok {
		return domain.ActiveSpawn{}, false
	}
	s := v.(*domain.ActiveSpawn)
	if s.Expired(t.clock.Now()) {
		return domain.ActiveSpawn{}, false
	}
	return *s, true
}

// Occupied reports whether the channel holds an unexpired spawn
func (t *Table) Occupied(channelID string) bool {
	_, ok := t.Peek(channelID)
	return ok
}

// Len returns the number of stored spawns, including expired ones not yet removed
func (t *Table) Len() int {
	return int(t.active.Load())
}

// Snapshot returns all unexpired spawns ordered by channel
func (t *Table) Snapshot() []domain.ActiveSpawn {
	now := t.clock.Now()
	var out []domain.ActiveSpawn
	t.slots.Range(func(_, v any) bool {
		s := v.(*domain.ActiveSpawn)
		if !s.Expired(now) {
			out = append(out, *s)
		}
		return true
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ChannelID < out[j].ChannelID })
	return out
}
