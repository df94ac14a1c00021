package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/MathCatch_Go/internal/domain"
	"github.com/osse101/MathCatch_Go/internal/repository"
)

// InventoryRepository implements repository.Inventory for PostgreSQL
type InventoryRepository struct {
	db *pgxpool.Pool
}

// NewInventoryRepository creates a new InventoryRepository
func NewInventoryRepository(db *pgxpool.Pool) *InventoryRepository {
	return &InventoryRepository{db: db}
}

var _ repository.Inventory = (*InventoryRepository)(nil)

// AddItem increments the (user, item) count in a single upsert, so concurrent catches never lose updates
func (r *InventoryRepository) AddItem(ctx context.Context, userID, itemKey string, quantity int) error {
	if _, err := r.db.Exec(ctx, SQLAddItem, userID, itemKey, quantity); err != nil {
		return fmt.Errorf(ErrMsgAddItem, err)
	}
	return nil
}

// GetInventory returns the user's non-zero counts ordered by item key
func (r *InventoryRepository) GetInventory(ctx context.Context, userID string) ([]domain.InventoryEntry, error) {
	rows, err := r.db.Query(ctx, SQLGetInventory, userID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetInventory, err)
	}

	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.InventoryEntry, error) {
		var e domain.InventoryEntry
		err := row.Scan(&e.UserID, &e.ItemKey, &e.Quantity)
		return e, err
	})
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetInventory, err)
	}
	return entries, nil
}

// GetLeaderboard ranks users by distinct items owned
func (r *InventoryRepository) GetLeaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	rows, err := r.db.Query(ctx, SQLGetLeaderboard, limit)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetLeaderboard, err)
	}

	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.LeaderboardEntry, error) {
		var e domain.LeaderboardEntry
		err := row.Scan(&e.UserID, &e.Distinct)
		return e, err
	})
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetLeaderboard, err)
	}
	return entries, nil
}

// PruneItems deletes rows for items outside keep
func (r *InventoryRepository) PruneItems(ctx context.Context, keep []string) (int64, error) {
	tag, err := r.db.Exec(ctx, SQLPruneItems, keep)
	if err != nil {
		return 0, fmt.Errorf(ErrMsgPruneItems, err)
	}
	return tag.RowsAffected(), nil
}
