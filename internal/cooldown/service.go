// Package cooldown rate-limits per-user actions such as forcing a spawn.
package cooldown

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/MathCatch_Go/internal/domain"
)

// Service tracks when each user last performed an action.
type Service interface {
	// CheckCooldown reports whether action is still cooling down and for how long.
	CheckCooldown(ctx context.Context, userID, action string) (bool, time.Duration, error)

	// EnforceCooldown runs fn only when action is not cooling down. The
	// timestamp is recorded only if fn returns nil, so a summon that finds
	// no eligible channel does not cost the user their hour.
	EnforceCooldown(ctx context.Context, userID, action string, fn func() error) error

	ResetCooldown(ctx context.Context, userID, action string) error

	// GetLastUsed is nil when the user never performed action.
	GetLastUsed(ctx context.Context, userID, action string) (*time.Time, error)
}

// ErrOnCooldown carries the wait left; it matches domain.ErrOnCooldown under errors.Is.
type ErrOnCooldown struct {
	Action    string
	Remaining time.Duration
}

func (e ErrOnCooldown) Error() string {
	total := int(e.Remaining / time.Second)
	if m := total / SecondsPerMinute; m > 0 {
		return fmt.Sprintf(ErrFmtCooldownWithMinutes, e.Action, m, total%SecondsPerMinute)
	}
	return fmt.Sprintf(ErrFmtCooldownSecondsOnly, e.Action, total)
}

func (e ErrOnCooldown) Is(target error) bool {
	switch target.(type) {
	case ErrOnCooldown, *ErrOnCooldown:
		return true
	}
	return target == domain.ErrOnCooldown
}

func remainingCooldown(now time.Time, lastUsed *time.Time, duration time.Duration) (bool, time.Duration) {
	if lastUsed == nil {
		return false, 0
	}
	if left := duration - now.Sub(*lastUsed); left > 0 {
		return true, left
	}
	return false, 0
}
