package spawnrule

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/osse101/MathCatch_Go/internal/domain"
	"github.com/osse101/MathCatch_Go/internal/event"
	"github.com/osse101/MathCatch_Go/internal/logger"
	"github.com/osse101/MathCatch_Go/internal/repository"
)

// Registry holds the per-channel spawn rules in memory and writes every change through to storage.
// Reads never touch storage and always return a copy.
type Registry struct {
	repo  repository.SpawnRule
	bus   event.Bus
	mu    sync.RWMutex
	rules map[string]domain.SpawnRule
}

// NewRegistry creates an empty registry. Call Load to hydrate it from storage. bus may be nil.
func NewRegistry(repo repository.SpawnRule, bus event.Bus) *Registry {
	return &Registry{
		repo:  repo,
		bus:   bus,
		rules: make(map[string]domain.SpawnRule),
	}
}

// Load replaces the in-memory rules with the stored ones
func (r *Registry) Load(ctx context.Context) error {
	rules, err := r.repo.ListSpawnRules(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrStorageUnavailable, err)
	}

	loaded := make(map[string]domain.SpawnRule, len(rules))
	for _, rule := range rules {
		loaded[rule.ChannelID] = rule
	}

	r.mu.Lock()
	r.rules = loaded
	r.mu.Unlock()

	logger.FromContext(ctx).Info(LogMsgRulesLoaded, "count", len(loaded))
	return nil
}

// Get returns the channel's rule
func (r *Registry) Get(channelID string) (domain.SpawnRule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rule, ok := r.rules[channelID]
	return rule, ok
}

// List returns the rules of one guild, or every rule when guildID is empty, ordered by channel
func (r *Registry) List(guildID string) []domain.SpawnRule {
	r.mu.RLock()
	out := make([]domain.SpawnRule, 0, len(r.rules))
	for _, rule := range r.rules {
		if guildID == "" || rule.GuildID == guildID {
			out = append(out, rule)
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ChannelID < out[j].ChannelID })
	return out
}

// Set stores the rule for a channel. A zero probability or interval disables that mechanism;
// disabling both is rejected with ErrInvalidRule and leaves the current rule untouched.
func (r *Registry) Set(ctx context.Context, rule domain.SpawnRule) (domain.SpawnRule, error) {
	if err := Validate(rule); err != nil {
		return domain.SpawnRule{}, err
	}

	if err := r.repo.UpsertSpawnRule(ctx, rule); err != nil {
		logger.FromContext(ctx).Error(LogMsgRuleWriteFailed, "channelID", rule.ChannelID, "error", err)
		return domain.SpawnRule{}, fmt.Errorf("%w: %w", domain.ErrStorageUnavailable, err)
	}

	r.mu.Lock()
	r.rules[rule.ChannelID] = rule
	r.mu.Unlock()

	logger.FromContext(ctx).Info(LogMsgRuleSet, "channelID", rule.ChannelID, "probability", rule.Probability, "interval", rule.Interval)
	r.publish(ctx, rule, false)
	return rule, nil
}

// Update applies fn to the channel's current rule (zero rule if none) and stores the result.
// A result with both mechanisms disabled removes the rule.
func (r *Registry) Update(ctx context.Context, channelID, guildID string, fn func(*domain.SpawnRule)) (domain.SpawnRule, bool, error) {
	rule, ok := r.Get(channelID)
	if !ok {
		rule = domain.SpawnRule{ChannelID: channelID}
	}
	if guildID != "" {
		rule.GuildID = guildID
	}
	fn(&rule)

	if !rule.HasProbability() && !rule.HasInterval() {
		if !ok {
			return domain.SpawnRule{}, false, fmt.Errorf("%w: %s", domain.ErrInvalidRule, ErrMsgNothingEnabled)
		}
		_, err := r.Remove(ctx, channelID)
		return domain.SpawnRule{}, false, err
	}

	stored, err := r.Set(ctx, rule)
	return stored, err == nil, err
}

// Remove deletes the channel's rule. It reports whether a rule existed.
func (r *Registry) Remove(ctx context.Context, channelID string) (bool, error) {
	existing, ok := r.Get(channelID)
	if !ok {
		return false, nil
	}

	if err := r.repo.DeleteSpawnRule(ctx, channelID); err != nil {
		logger.FromContext(ctx).Error(LogMsgRuleWriteFailed, "channelID", channelID, "error", err)
		return false, fmt.Errorf("%w: %w", domain.ErrStorageUnavailable, err)
	}

	r.mu.Lock()
	delete(r.rules, channelID)
	r.mu.Unlock()

	logger.FromContext(ctx).Info(LogMsgRuleRemoved, "channelID", channelID)
	r.publish(ctx, existing, true)
	return true, nil
}

func (r *Registry) publish(ctx context.Context, rule domain.SpawnRule, removed bool) {
	if r.bus == nil {
		return
	}
	if err := r.bus.Publish(ctx, event.NewRuleChangedEvent(rule, removed)); err != nil {
		logger.FromContext(ctx).Warn(LogMsgPublishFailed, "channelID", rule.ChannelID, "error", err)
	}
}

// Validate checks a rule's bounds
func Validate(rule domain.SpawnRule) error {
	if rule.ChannelID == "" {
		return fmt.Errorf("%w: %s", domain.ErrInvalidRule, ErrMsgMissingChannel)
	}
	if rule.Probability < 0 || rule.Interval < 0 {
		return fmt.Errorf("%w: %s", domain.ErrInvalidRule, ErrMsgNegativeValue)
	}
	if !rule.HasProbability() && !rule.HasInterval() {
		return fmt.Errorf("%w: %s", domain.ErrInvalidRule, ErrMsgNothingEnabled)
	}
	if rule.HasProbability() && rule.Probability > 1 {
		return fmt.Errorf("%w: "+ErrMsgProbabilityRangeFmt, domain.ErrInvalidRule, rule.Probability)
	}
	if rule.HasInterval() && (rule.Interval < domain.MinSpawnInterval || rule.Interval > domain.MaxSpawnInterval) {
		return fmt.Errorf("%w: "+ErrMsgIntervalRangeFmt, domain.ErrInvalidRule, domain.MinSpawnInterval, domain.MaxSpawnInterval, rule.Interval)
	}
	return nil
}
