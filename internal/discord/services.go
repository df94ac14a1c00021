package discord

import (
	"context"

	"github.com/osse101/MathCatch_Go/internal/domain"
	"github.com/osse101/MathCatch_Go/internal/game"
	"github.com/osse101/MathCatch_Go/internal/inventory"
	"github.com/osse101/MathCatch_Go/internal/spawn"
)

// Game is the part of the game engine the bot drives
type Game interface {
	HandleMessage(ctx context.Context, msg domain.Message) game.MessageResult
	AuthorizeAdmin(ctx context.Context, userID string, guildAdmin bool) error
	Summon(ctx context.Context, channelID, userID string, guildAdmin bool) (domain.ActiveSpawn, error)
	SetProbability(ctx context.Context, channelID, guildID string, p float64) (domain.SpawnRule, bool, error)
	SetInterval(ctx context.Context, channelID, guildID string, seconds int) (domain.SpawnRule, bool, error)
	RemoveRule(ctx context.Context, channelID string) (bool, error)
	ListRules(guildID string) []domain.SpawnRule
	Status(channelID string) spawn.Status
}

// Collection answers inventory and ranking queries
type Collection interface {
	Inventory(ctx context.Context, userID, lang string) (*inventory.View, error)
	Completion(ctx context.Context, userID string) (inventory.Completion, error)
	Remaining(ctx context.Context, userID string) ([]domain.Item, error)
	Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error)
	CountObjects() int
}

// Roles manages stored bot roles
type Roles interface {
	Grant(ctx context.Context, actorID, userID string, role domain.Role) error
	Revoke(ctx context.Context, actorID, userID string, role domain.Role) error
	List(ctx context.Context, actorID string) (map[domain.Role][]string, error)
	Reset(ctx context.Context, actorID string) error
}

// Services bundles what command handlers call into
type Services struct {
	Game       Game
	Collection Collection
	Roles      Roles
}
