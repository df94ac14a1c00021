package permission

import (
	"context"
	"fmt"
	"sort"

	"github.com/osse101/MathCatch_Go/internal/domain"
	"github.com/osse101/MathCatch_Go/internal/logger"
	"github.com/osse101/MathCatch_Go/internal/repository"
)

// Checker answers owner and admin questions.
// Configured admin IDs are treated as owners and cannot be revoked.
type Checker struct {
	adminIDs map[string]struct{}
	roles    repository.Role
}

// NewChecker creates a permission checker
func NewChecker(adminIDs []string, roles repository.Role) *Checker {
	c := &Checker{adminIDs: make(map[string]struct{}, len(adminIDs)), roles: roles}
	for _, id := range adminIDs {
		c.adminIDs[id] = struct{}{}
	}
	return c
}

func (c *Checker) userRoles(ctx context.Context, userID string) ([]domain.Role, error) {
	roles, err := c.roles.GetUserRoles(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgRoleLookupFail, "userID", userID, "error", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrStorageUnavailable, err)
	}
	return roles, nil
}

// IsOwner reports whether the user is a configured admin or holds the owner role
func (c *Checker) IsOwner(ctx context.Context, userID string) (bool, error) {
	if _, ok := c.adminIDs[userID]; ok {
		return true, nil
	}
	roles, err := c.userRoles(ctx, userID)
	if err != nil {
		return false, err
	}
	for _, r := range roles {
		if r == domain.RoleOwner {
			return true, nil
		}
	}
	return false, nil
}

// IsAdmin reports whether the user may administer spawns.
// guildAdmin is the platform's Administrator flag for the member in the current guild.
func (c *Checker) IsAdmin(ctx context.Context, userID string, guildAdmin bool) (bool, error) {
	if _, ok := c.adminIDs[userID]; ok {
		return true, nil
	}
	if guildAdmin {
		return true, nil
	}
	roles, err := c.userRoles(ctx, userID)
	if err != nil {
		return false, err
	}
	for _, r := range roles {
		if r == domain.RoleOwner || r == domain.RoleGlobalAdmin {
			return true, nil
		}
	}
	return false, nil
}

func (c *Checker) requireOwner(ctx context.Context, actorID string) error {
	ok, err := c.IsOwner(ctx, actorID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrNotPermitted, ErrMsgOwnerOnly)
	}
	return nil
}

// Grant gives userID the role. Only owners may grant roles.
func (c *Checker) Grant(ctx context.Context, actorID, userID string, role domain.Role) error {
	if !role.IsValid() {
		return fmt.Errorf("%w: %s", domain.ErrInvalidRole, role)
	}
	if err := c.requireOwner(ctx, actorID); err != nil {
		return err
	}
	if err := c.roles.AddRole(ctx, userID, role); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrStorageUnavailable, err)
	}
	logger.FromContext(ctx).Info(LogMsgRoleGranted, "actorID", actorID, "userID", userID, "role", role)
	return nil
}

// Revoke removes the role from userID. Only owners may revoke roles.
func (c *Checker) Revoke(ctx context.Context, actorID, userID string, role domain.Role) error {
	if !role.IsValid() {
		return fmt.Errorf("%w: %s", domain.ErrInvalidRole, role)
	}
	if err := c.requireOwner(ctx, actorID); err != nil {
		return err
	}
	if err := c.roles.RemoveRole(ctx, userID, role); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrStorageUnavailable, err)
	}
	logger.FromContext(ctx).Info(LogMsgRoleRevoked, "actorID", actorID, "userID", userID, "role", role)
	return nil
}

// List returns role holders grouped by role, user IDs sorted. Only owners may list roles.
func (c *Checker) List(ctx context.Context, actorID string) (map[domain.Role][]string, error) {
	if err := c.requireOwner(ctx, actorID); err != nil {
		return nil, err
	}
	assignments, err := c.roles.ListRoles(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStorageUnavailable, err)
	}

	out := map[domain.Role][]string{domain.RoleOwner: {}, domain.RoleGlobalAdmin: {}}
	for _, a := range assignments {
		out[a.Role] = append(out[a.Role], a.UserID)
	}
	for role := range out {
		sort.Strings(out[role])
	}
	return out, nil
}

// Reset clears every stored role. Configured admin IDs keep their access.
func (c *Checker) Reset(ctx context.Context, actorID string) error {
	if err := c.requireOwner(ctx, actorID); err != nil {
		return err
	}
	assignments, err := c.roles.ListRoles(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrStorageUnavailable, err)
	}
	for _, a := range assignments {
		if err := c.roles.RemoveRole(ctx, a.UserID, a.Role); err != nil {
			return fmt.Errorf("%w: %w", domain.ErrStorageUnavailable, err)
		}
	}
	logger.FromContext(ctx).Info(LogMsgRolesReset, "actorID", actorID, "removed", len(assignments))
	return nil
}
