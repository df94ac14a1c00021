package cooldown

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHashUserAction(t *testing.T) {
	t.Run("stable and non-negative", func(t *testing.T) {
		for _, userID := range []string{"184729301", "", "guild-9:member-3"} {
			h := hashUserAction(userID, ActionSummon)
			assert.Equal(t, h, hashUserAction(userID, ActionSummon))
			assert.GreaterOrEqual(t, h, int64(0))
		}
	})

	t.Run("user and action both feed the key", func(t *testing.T) {
		base := hashUserAction("184729301", ActionSummon)
		assert.NotEqual(t, base, hashUserAction("184729302", ActionSummon))
		assert.NotEqual(t, base, hashUserAction("184729301", "spawn"))
	})
}

func TestRemainingCooldown(t *testing.T) {
	summonedAt := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	at := func(d time.Duration) *time.Time {
		ts := summonedAt.Add(d)
		return &ts
	}

	t.Run("never used", func(t *testing.T) {
		on, left := remainingCooldown(summonedAt, nil, DefaultSummonCooldown)
		assert.False(t, on)
		assert.Zero(t, left)
	})

	cases := []struct {
		name     string
		lastUsed *time.Time
		on       bool
		left     time.Duration
	}{
		{"summoned a quarter hour ago", at(-15 * time.Minute), true, 45 * time.Minute},
		{"one second short of an hour", at(-time.Hour + time.Second), true, time.Second},
		{"exactly an hour", at(-time.Hour), false, 0},
		{"yesterday", at(-24 * time.Hour), false, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			on, left := remainingCooldown(summonedAt, tc.lastUsed, DefaultSummonCooldown)
			assert.Equal(t, tc.on, on)
			assert.Equal(t, tc.left, left)
		})
	}
}
