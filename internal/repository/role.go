package repository

import (
	"context"

	"github.com/osse101/MathCatch_Go/internal/domain"
)

// Role defines the interface for bot-wide role assignments
type Role interface {
	ListRoles(ctx context.Context) ([]domain.RoleAssignment, error)
	GetUserRoles(ctx context.Context, userID string) ([]domain.Role, error)
	AddRole(ctx context.Context, userID string, role domain.Role) error
	RemoveRole(ctx context.Context, userID string, role domain.Role) error
}
