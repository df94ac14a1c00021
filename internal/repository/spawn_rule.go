package repository

import (
	"context"

	"github.com/osse101/MathCatch_Go/internal/domain"
)

// SpawnRule defines the interface for per-channel spawn rule storage
type SpawnRule interface {
	ListSpawnRules(ctx context.Context) ([]domain.SpawnRule, error)
	UpsertSpawnRule(ctx context.Context, rule domain.SpawnRule) error
	DeleteSpawnRule(ctx context.Context, channelID string) error
}
