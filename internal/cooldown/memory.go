package cooldown

import (
	"context"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/MathCatch_Go/internal/logger"
)

// memoryBackend implements Service in process memory.
// Entries expire with the longest configured cooldown, so the cache never forgets an active one.
type memoryBackend struct {
	mu     sync.Mutex
	config Config
	lru    *expirable.LRU[string, time.Time]
}

// NewMemoryService creates a cooldown service that keeps state in memory.
// Cooldowns do not survive a restart.
func NewMemoryService(config Config) Service {
	return &memoryBackend{
		config: config,
		lru:    expirable.NewLRU[string, time.Time](MemoryCacheSize, nil, config.longest()),
	}
}

func memoryKey(userID, action string) string {
	return userID + HashSeparator + action
}

func (b *memoryBackend) CheckCooldown(_ context.Context, userID, action string) (bool, time.Duration, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	onCooldown, remaining := b.check(userID, action)
	return onCooldown, remaining, nil
}

func (b *memoryBackend) check(userID, action string) (bool, time.Duration) {
	lastUsed, ok := b.lru.Get(memoryKey(userID, action))
	if !ok {
		return false, 0
	}
	return remainingCooldown(b.config.clock().Now(), &lastUsed, b.config.GetCooldownDuration(action))
}

func (b *memoryBackend) EnforceCooldown(ctx context.Context, userID, action string, fn func() error) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if onCooldown, remaining := b.check(userID, action); onCooldown {
		return ErrOnCooldown{Action: action, Remaining: remaining}
	}

	if err := fn(); err != nil {
		return err
	}

	b.lru.Add(memoryKey(userID, action), b.config.clock().Now())
	logger.FromContext(ctx).Debug(LogMsgCooldownEnforced, "action", action, "userID", userID)
	return nil
}

func (b *memoryBackend) ResetCooldown(_ context.Context, userID, action string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lru.Remove(memoryKey(userID, action))
	return nil
}

func (b *memoryBackend) GetLastUsed(_ context.Context, userID, action string) (*time.Time, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	lastUsed, ok := b.lru.Get(memoryKey(userID, action))
	if !ok {
		return nil, nil
	}
	return &lastUsed, nil
}
