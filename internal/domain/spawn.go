package domain

import "time"

// Spawn rule bounds
const (
	MinSpawnInterval = 1
	MaxSpawnInterval = 604800 // one week, in seconds
)

// SpawnRule configures how items appear in one channel.
// A zero Probability or Interval disables that mechanism; at least one must be enabled.
type SpawnRule struct {
	ChannelID   string  `json:"channel_id"`
	GuildID     string  `json:"guild_id"`
	Probability float64 `json:"probability"`
	Interval    int     `json:"interval"` // seconds
}

// HasProbability reports whether the per-message path is enabled
func (r SpawnRule) HasProbability() bool {
	return r.Probability > 0
}

// HasInterval reports whether the timer path is enabled
func (r SpawnRule) HasInterval() bool {
	return r.Interval > 0
}

// IntervalDuration returns the interval as a time.Duration
func (r SpawnRule) IntervalDuration() time.Duration {
	return time.Duration(r.Interval) * time.Second
}

// SpawnTrigger identifies what caused a spawn
type SpawnTrigger string

const (
	TriggerProbability SpawnTrigger = "probability"
	TriggerInterval    SpawnTrigger = "interval"
	TriggerFallback    SpawnTrigger = "fallback"
	TriggerSummon      SpawnTrigger = "summon"
)

// ActiveSpawn is the item currently catchable in a channel
type ActiveSpawn struct {
	ID          string       `json:"id"`
	ChannelID   string       `json:"channel_id"`
	Item        Item         `json:"item"`
	Trigger     SpawnTrigger `json:"trigger"`
	ActivatedAt time.Time    `json:"activated_at"`
	ExpiresAt   *time.Time   `json:"expires_at,omitempty"`
}

// Expired reports whether the spawn has passed its expiry at now
func (s ActiveSpawn) Expired(now time.Time) bool {
	return s.ExpiresAt != nil && !now.Before(*s.ExpiresAt)
}
