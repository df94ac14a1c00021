package game

import (
	"context"
	"fmt"
	"strings"

	"github.com/osse101/MathCatch_Go/internal/catalog"
	"github.com/osse101/MathCatch_Go/internal/catching"
	"github.com/osse101/MathCatch_Go/internal/cooldown"
	"github.com/osse101/MathCatch_Go/internal/domain"
	"github.com/osse101/MathCatch_Go/internal/inventory"
	"github.com/osse101/MathCatch_Go/internal/logger"
	"github.com/osse101/MathCatch_Go/internal/permission"
	"github.com/osse101/MathCatch_Go/internal/spawn"
	"github.com/osse101/MathCatch_Go/internal/spawnrule"
	"github.com/osse101/MathCatch_Go/internal/utils"
)

// Engine is the entry point for chat traffic and game commands
type Engine struct {
	catalog   catalog.Catalog
	spawner   *spawn.Scheduler
	resolver  *catching.Resolver
	inventory *inventory.Service
	rules     *spawnrule.Registry
	perms     *permission.Checker
	cooldowns cooldown.Service
	rng       utils.Rand
	prefix    string
}

// Deps bundles the Engine's collaborators
type Deps struct {
	Catalog   catalog.Catalog
	Spawner   *spawn.Scheduler
	Resolver  *catching.Resolver
	Inventory *inventory.Service
	Rules     *spawnrule.Registry
	Perms     *permission.Checker
	Cooldowns cooldown.Service
	Rand      utils.Rand
	// CommandPrefix marks text commands that never count as catches or spawn triggers
	CommandPrefix string
}

// NewEngine creates a game engine
func NewEngine(d Deps) *Engine {
	rng := d.Rand
	if rng == nil {
		rng = utils.DefaultRand()
	}
	return &Engine{
		catalog:   d.Catalog,
		spawner:   d.Spawner,
		resolver:  d.Resolver,
		inventory: d.Inventory,
		rules:     d.Rules,
		perms:     d.Perms,
		cooldowns: d.Cooldowns,
		rng:       rng,
		prefix:    d.CommandPrefix,
	}
}

// MessageResult reports what one inbound message caused
type MessageResult struct {
	Catch catching.Result
	// Spawned is set when the message triggered a new spawn
	Spawned *domain.ActiveSpawn
}

// HandleMessage resolves a catch attempt and otherwise runs the probability path.
// It never blocks on anything slower than the storage write of a won catch.
func (e *Engine) HandleMessage(ctx context.Context, msg domain.Message) MessageResult {
	if msg.IsBot {
		return MessageResult{}
	}
	if e.prefix != "" && strings.HasPrefix(strings.TrimSpace(msg.Text), e.prefix) {
		logger.FromContext(ctx).Debug(LogMsgIgnoredCommand, "channelID", msg.ChannelID)
		return MessageResult{}
	}

	res := MessageResult{Catch: e.resolver.Resolve(ctx, msg)}
	if res.Catch.Outcome == domain.OutcomeCaught {
		if res.Catch.Err != nil {
			logger.FromContext(ctx).Error(LogMsgCatchPersistFailed, "userID", msg.AuthorID, "item", res.Catch.Spawn.Item.Key, "error", res.Catch.Err)
		}
		return res
	}

	if spawned, ok := e.spawner.OnMessage(ctx, msg.ChannelID); ok {
		res.Spawned = &spawned
	}
	return res
}

// AuthorizeAdmin returns ErrNotPermitted unless the user may administer spawns
func (e *Engine) AuthorizeAdmin(ctx context.Context, userID string, guildAdmin bool) error {
	ok, err := e.perms.IsAdmin(ctx, userID, guildAdmin)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotPermitted
	}
	return nil
}

// Summon forces a spawn in the channel. Admins skip the cooldown; everyone else is limited by it.
// A summon into an occupied channel fails with ErrChannelActive and does not use up the cooldown.
func (e *Engine) Summon(ctx context.Context, channelID, userID string, guildAdmin bool) (domain.ActiveSpawn, error) {
	if e.spawner.Table().Occupied(channelID) {
		return domain.ActiveSpawn{}, domain.ErrChannelActive
	}

	admin, err := e.perms.IsAdmin(ctx, userID, guildAdmin)
	if err != nil {
		return domain.ActiveSpawn{}, err
	}

	var spawned domain.ActiveSpawn
	activate := func() error {
		item, ok := e.pickForUser(ctx, userID)
		if !ok {
			return domain.ErrEmptyCatalog
		}
		s, ok := e.spawner.Activate(ctx, channelID, item, domain.TriggerSummon)
		if !ok {
			return domain.ErrChannelActive
		}
		spawned = s
		return nil
	}

	if admin {
		err = activate()
	} else {
		err = e.cooldowns.EnforceCooldown(ctx, userID, cooldown.ActionSummon, activate)
	}
	if err != nil {
		return domain.ActiveSpawn{}, err
	}

	logger.FromContext(ctx).Info(LogMsgSummoned, "channelID", channelID, "userID", userID, "item", spawned.Item.Key, "admin", admin)
	return spawned, nil
}

func (e *Engine) pickForUser(ctx context.Context, userID string) (domain.Item, bool) {
	items := e.catalog.All()
	owned, err := e.inventory.Owned(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgOwnedLookupFailed, "userID", userID, "error", err)
		return spawn.PickUniform(items, e.rng)
	}
	return PickFavoringNew(items, owned, e.rng)
}

// PickFavoringNew prefers items the user does not own yet. The chance of a new item is the
// unowned share of the catalog, never below MinNewItemChance.
func PickFavoringNew(items []domain.Item, owned map[string]int, rng utils.Rand) (domain.Item, bool) {
	if len(items) == 0 {
		return domain.Item{}, false
	}

	var fresh, dupes []domain.Item
	for _, it := range items {
		if _, ok := owned[it.Key]; ok {
			dupes = append(dupes, it)
		} else {
			fresh = append(fresh, it)
		}
	}

	switch {
	case len(fresh) == 0:
		return spawn.PickUniform(items, rng)
	case len(dupes) == 0:
		return spawn.PickUniform(fresh, rng)
	}

	chance := float64(len(fresh)) / float64(len(items))
	if chance < MinNewItemChance {
		chance = MinNewItemChance
	}
	if rng.Float64() < chance {
		return spawn.PickUniform(fresh, rng)
	}
	return spawn.PickUniform(dupes, rng)
}

// SetRule replaces the channel's rule
func (e *Engine) SetRule(ctx context.Context, rule domain.SpawnRule) (domain.SpawnRule, error) {
	return e.rules.Set(ctx, rule)
}

// SetProbability changes only the probability of the channel's rule.
// Disabling the last enabled mechanism removes the rule; the bool reports whether a rule remains.
func (e *Engine) SetProbability(ctx context.Context, channelID, guildID string, p float64) (domain.SpawnRule, bool, error) {
	if p < 0 || p > 1 {
		return domain.SpawnRule{}, false, fmt.Errorf("%w: probability must be in [0, 1]", domain.ErrInvalidRule)
	}
	return e.rules.Update(ctx, channelID, guildID, func(r *domain.SpawnRule) { r.Probability = p })
}

// SetInterval changes only the interval of the channel's rule, in seconds. 0 disables it.
func (e *Engine) SetInterval(ctx context.Context, channelID, guildID string, seconds int) (domain.SpawnRule, bool, error) {
	if seconds < 0 || seconds > domain.MaxSpawnInterval {
		return domain.SpawnRule{}, false, fmt.Errorf("%w: interval must be in [0, %d]", domain.ErrInvalidRule, domain.MaxSpawnInterval)
	}
	return e.rules.Update(ctx, channelID, guildID, func(r *domain.SpawnRule) { r.Interval = seconds })
}

// RemoveRule deletes the channel's rule and stops its timer
func (e *Engine) RemoveRule(ctx context.Context, channelID string) (bool, error) {
	return e.rules.Remove(ctx, channelID)
}

// ListRules returns the guild's rules, or all rules when guildID is empty
func (e *Engine) ListRules(guildID string) []domain.SpawnRule {
	return e.rules.List(guildID)
}

// Status reports a channel's rule, active spawn and next interval firing
func (e *Engine) Status(channelID string) spawn.Status {
	return e.spawner.Status(channelID)
}

// ActiveSpawns returns every active spawn
func (e *Engine) ActiveSpawns() []domain.ActiveSpawn {
	return e.spawner.Table().Snapshot()
}

// Inventory exposes the collection views
func (e *Engine) Inventory() *inventory.Service {
	return e.inventory
}

// Permissions exposes role management
func (e *Engine) Permissions() *permission.Checker {
	return e.perms
}
