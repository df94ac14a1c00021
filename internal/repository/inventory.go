package repository

import (
	"context"

	"github.com/osse101/MathCatch_Go/internal/domain"
)

// Inventory defines the interface for catch count storage
type Inventory interface {
	// AddItem adds quantity to the (user, item) count, creating the row if needed
	AddItem(ctx context.Context, userID, itemKey string, quantity int) error
	GetInventory(ctx context.Context, userID string) ([]domain.InventoryEntry, error)
	GetLeaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error)
	// PruneItems deletes rows whose item key is not in keep and returns the number removed
	PruneItems(ctx context.Context, keep []string) (int64, error)
}
