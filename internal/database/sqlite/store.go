// Package sqlite implements the repositories on a single-file database for one-host deployments.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/osse101/MathCatch_Go/internal/domain"
	"github.com/osse101/MathCatch_Go/internal/repository"
)

// Store implements every repository over one *sql.DB opened by database.OpenSQLite
type Store struct {
	db *sql.DB
}

// NewStore wraps an open, migrated database
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

var (
	_ repository.SpawnRule = (*Store)(nil)
	_ repository.Inventory = (*Store)(nil)
	_ repository.Role      = (*Store)(nil)
)

// ---- Spawn rules ----

func (s *Store) ListSpawnRules(ctx context.Context) ([]domain.SpawnRule, error) {
	rows, err := s.db.QueryContext(ctx, SQLListSpawnRules)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgListSpawnRules, err)
	}
	defer rows.Close()

	var rules []domain.SpawnRule
	for rows.Next() {
		var rule domain.SpawnRule
		if err := rows.Scan(&rule.ChannelID, &rule.GuildID, &rule.Probability, &rule.Interval); err != nil {
			return nil, fmt.Errorf(ErrMsgListSpawnRules, err)
		}
		rules = append(rules, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf(ErrMsgListSpawnRules, err)
	}
	return rules, nil
}

func (s *Store) UpsertSpawnRule(ctx context.Context, rule domain.SpawnRule) error {
	_, err := s.db.ExecContext(ctx, SQLUpsertSpawnRule, rule.ChannelID, rule.GuildID, rule.Probability, rule.Interval)
	if err != nil {
		return fmt.Errorf(ErrMsgUpsertSpawnRule, err)
	}
	return nil
}

func (s *Store) DeleteSpawnRule(ctx context.Context, channelID string) error {
	if _, err := s.db.ExecContext(ctx, SQLDeleteSpawnRule, channelID); err != nil {
		return fmt.Errorf(ErrMsgDeleteSpawnRule, err)
	}
	return nil
}

// ---- Inventory ----

func (s *Store) AddItem(ctx context.Context, userID, itemKey string, quantity int) error {
	if _, err := s.db.ExecContext(ctx, SQLAddItem, userID, itemKey, quantity); err != nil {
		return fmt.Errorf(ErrMsgAddItem, err)
	}
	return nil
}

func (s *Store) GetInventory(ctx context.Context, userID string) ([]domain.InventoryEntry, error) {
	rows, err := s.db.QueryContext(ctx, SQLGetInventory, userID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetInventory, err)
	}
	defer rows.Close()

	var entries []domain.InventoryEntry
	for rows.Next() {
		var e domain.InventoryEntry
		if err := rows.Scan(&e.UserID, &e.ItemKey, &e.Quantity); err != nil {
			return nil, fmt.Errorf(ErrMsgGetInventory, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf(ErrMsgGetInventory, err)
	}
	return entries, nil
}

func (s *Store) GetLeaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	rows, err := s.db.QueryContext(ctx, SQLGetLeaderboard, limit)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetLeaderboard, err)
	}
	defer rows.Close()

	var entries []domain.LeaderboardEntry
	for rows.Next() {
		var e domain.LeaderboardEntry
		if err := rows.Scan(&e.UserID, &e.Distinct); err != nil {
			return nil, fmt.Errorf(ErrMsgGetLeaderboard, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf(ErrMsgGetLeaderboard, err)
	}
	return entries, nil
}

func (s *Store) PruneItems(ctx context.Context, keep []string) (int64, error) {
	keepJSON, err := json.Marshal(keep)
	if err != nil {
		return 0, fmt.Errorf(ErrMsgPruneItems, err)
	}

	res, err := s.db.ExecContext(ctx, SQLPruneItems, string(keepJSON))
	if err != nil {
		return 0, fmt.Errorf(ErrMsgPruneItems, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf(ErrMsgPruneItems, err)
	}
	return n, nil
}

// ---- Roles ----

func (s *Store) ListRoles(ctx context.Context) ([]domain.RoleAssignment, error) {
	rows, err := s.db.QueryContext(ctx, SQLListRoles)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgListRoles, err)
	}
	defer rows.Close()

	var out []domain.RoleAssignment
	for rows.Next() {
		var (
			a    domain.RoleAssignment
			role string
		)
		if err := rows.Scan(&a.UserID, &role); err != nil {
			return nil, fmt.Errorf(ErrMsgListRoles, err)
		}
		a.Role = domain.Role(role)
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf(ErrMsgListRoles, err)
	}
	return out, nil
}

func (s *Store) GetUserRoles(ctx context.Context, userID string) ([]domain.Role, error) {
	rows, err := s.db.QueryContext(ctx, SQLGetUserRoles, userID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetUserRoles, err)
	}
	defer rows.Close()

	var roles []domain.Role
	for rows.Next() {
		var role string
		if err := rows.Scan(&role); err != nil {
			return nil, fmt.Errorf(ErrMsgGetUserRoles, err)
		}
		roles = append(roles, domain.Role(role))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf(ErrMsgGetUserRoles, err)
	}
	return roles, nil
}

func (s *Store) AddRole(ctx context.Context, userID string, role domain.Role) error {
	if _, err := s.db.ExecContext(ctx, SQLAddRole, userID, string(role)); err != nil {
		return fmt.Errorf(ErrMsgAddRole, err)
	}
	return nil
}

func (s *Store) RemoveRole(ctx context.Context, userID string, role domain.Role) error {
	if _, err := s.db.ExecContext(ctx, SQLRemoveRole, userID, string(role)); err != nil {
		return fmt.Errorf(ErrMsgRemoveRole, err)
	}
	return nil
}
