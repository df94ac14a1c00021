package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/MathCatch_Go/internal/domain"
	"github.com/osse101/MathCatch_Go/internal/repository"
)

// RoleRepository implements repository.Role for PostgreSQL
type RoleRepository struct {
	db *pgxpool.Pool
}

// NewRoleRepository creates a new RoleRepository
func NewRoleRepository(db *pgxpool.Pool) *RoleRepository {
	return &RoleRepository{db: db}
}

var _ repository.Role = (*RoleRepository)(nil)

func (r *RoleRepository) ListRoles(ctx context.Context) ([]domain.RoleAssignment, error) {
	rows, err := r.db.Query(ctx, SQLListRoles)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgListRoles, err)
	}

	assignments, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.RoleAssignment, error) {
		var a domain.RoleAssignment
		err := row.Scan(&a.UserID, &a.Role)
		return a, err
	})
	if err != nil {
		return nil, fmt.Errorf(ErrMsgListRoles, err)
	}
	return assignments, nil
}

func (r *RoleRepository) GetUserRoles(ctx context.Context, userID string) ([]domain.Role, error) {
	rows, err := r.db.Query(ctx, SQLGetUserRoles, userID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetUserRoles, err)
	}

	roles, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Role, error) {
		var role domain.Role
		err := row.Scan(&role)
		return role, err
	})
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetUserRoles, err)
	}
	return roles, nil
}

// AddRole grants role; granting an existing role is a no-op
func (r *RoleRepository) AddRole(ctx context.Context, userID string, role domain.Role) error {
	if _, err := r.db.Exec(ctx, SQLAddRole, userID, string(role)); err != nil {
		return fmt.Errorf(ErrMsgAddRole, err)
	}
	return nil
}

func (r *RoleRepository) RemoveRole(ctx context.Context, userID string, role domain.Role) error {
	if _, err := r.db.Exec(ctx, SQLRemoveRole, userID, string(role)); err != nil {
		return fmt.Errorf(ErrMsgRemoveRole, err)
	}
	return nil
}
