package cooldown

import (
	"time"

	"github.com/osse101/MathCatch_Go/internal/clock"
)

// Config is shared by both backends.
type Config struct {
	// Cooldowns overrides the per-action defaults, e.g. SUMMON_COOLDOWN.
	Cooldowns map[string]time.Duration
	Clock     clock.Clock
}

func (c *Config) GetCooldownDuration(action string) time.Duration {
	if d, ok := c.Cooldowns[action]; ok {
		return d
	}
	if action == ActionSummon {
		return DefaultSummonCooldown
	}
	return DefaultCooldownDuration
}

// longest is the TTL the memory backend needs so no active entry is evicted early.
func (c *Config) longest() time.Duration {
	ttl := max(DefaultCooldownDuration, DefaultSummonCooldown)
	for _, d := range c.Cooldowns {
		ttl = max(ttl, d)
	}
	return ttl
}

func (c *Config) clock() clock.Clock {
	if c.Clock != nil {
		return c.Clock
	}
	return clock.NewRealClock()
}
