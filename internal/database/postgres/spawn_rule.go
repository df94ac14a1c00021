package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/MathCatch_Go/internal/domain"
	"github.com/osse101/MathCatch_Go/internal/repository"
)

// SpawnRuleRepository implements repository.SpawnRule for PostgreSQL
type SpawnRuleRepository struct {
	db *pgxpool.Pool
}

// NewSpawnRuleRepository creates a new SpawnRuleRepository
func NewSpawnRuleRepository(db *pgxpool.Pool) *SpawnRuleRepository {
	return &SpawnRuleRepository{db: db}
}

var _ repository.SpawnRule = (*SpawnRuleRepository)(nil)

// ListSpawnRules returns every stored rule ordered by channel
func (r *SpawnRuleRepository) ListSpawnRules(ctx context.Context) ([]domain.SpawnRule, error) {
	rows, err := r.db.Query(ctx, SQLListSpawnRules)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgListSpawnRules, err)
	}
	defer rows.Close()

	var rules []domain.SpawnRule
	for rows.Next() {
		var rule domain.SpawnRule
		if err := rows.Scan(&rule.ChannelID, &rule.GuildID, &rule.Probability, &rule.Interval); err != nil {
			return nil, fmt.Errorf(ErrMsgScanRow, err)
		}
		rules = append(rules, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf(ErrMsgListSpawnRules, err)
	}
	return rules, nil
}

// UpsertSpawnRule creates or replaces the rule for rule.ChannelID
func (r *SpawnRuleRepository) UpsertSpawnRule(ctx context.Context, rule domain.SpawnRule) error {
	_, err := r.db.Exec(ctx, SQLUpsertSpawnRule, rule.ChannelID, rule.GuildID, rule.Probability, rule.Interval)
	if err != nil {
		return fmt.Errorf(ErrMsgUpsertSpawnRule, err)
	}
	return nil
}

// DeleteSpawnRule removes a channel's rule; deleting a missing rule is not an error
func (r *SpawnRuleRepository) DeleteSpawnRule(ctx context.Context, channelID string) error {
	if _, err := r.db.Exec(ctx, SQLDeleteSpawnRule, channelID); err != nil {
		return fmt.Errorf(ErrMsgDeleteSpawnRule, err)
	}
	return nil
}
