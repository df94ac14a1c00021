package permission

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/MathCatch_Go/internal/domain"
)

type MockRoleRepository struct {
	mock.Mock
}

func (m *MockRoleRepository) ListRoles(ctx context.Context) ([]domain.RoleAssignment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RoleAssignment), args.Error(1)
}

func (m *MockRoleRepository) GetUserRoles(ctx context.Context, userID string) ([]domain.Role, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Role), args.Error(1)
}

func (m *MockRoleRepository) AddRole(ctx context.Context, userID string, role domain.Role) error {
	args := m.Called(ctx, userID, role)
	return args.Error(0)
}

func (m *MockRoleRepository) RemoveRole(ctx context.Context, userID string, role domain.Role) error {
	args := m.Called(ctx, userID, role)
	return args.Error(0)
}

func TestChecker_IsAdmin(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRoleRepository)
	repo.On("GetUserRoles", ctx, "owner").Return([]domain.Role{domain.RoleOwner}, nil)
	repo.On("GetUserRoles", ctx, "global").Return([]domain.Role{domain.RoleGlobalAdmin}, nil)
	repo.On("GetUserRoles", ctx, "nobody").Return([]domain.Role{}, nil)
	repo.On("GetUserRoles", ctx, "broken").Return(nil, errors.New("db down"))

	c := NewChecker([]string{"cfg"}, repo)

	tests := []struct {
		name       string
		userID     string
		guildAdmin bool
		want       bool
		wantErr    bool
	}{
		{"configured admin", "cfg", false, true, false},
		{"owner role", "owner", false, true, false},
		{"global admin role", "global", false, true, false},
		{"guild administrator", "nobody", true, true, false},
		{"regular user", "nobody", false, false, false},
		{"storage failure", "broken", false, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.IsAdmin(ctx, tt.userID, tt.guildAdmin)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	// Configured admins never hit storage
	repo.AssertNotCalled(t, "GetUserRoles", ctx, "cfg")
}

func TestChecker_IsOwner(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRoleRepository)
	repo.On("GetUserRoles", ctx, "global").Return([]domain.Role{domain.RoleGlobalAdmin}, nil)
	c := NewChecker([]string{"cfg"}, repo)

	ok, err := c.IsOwner(ctx, "cfg")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = c.IsOwner(ctx, "global")
	require.NoError(t, err)
	assert.False(t, ok, "global admins are not owners")
}

func TestChecker_GrantRevoke(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRoleRepository)
	repo.On("GetUserRoles", ctx, "global").Return([]domain.Role{domain.RoleGlobalAdmin}, nil)
	repo.On("AddRole", ctx, "u1", domain.RoleGlobalAdmin).Return(nil)
	repo.On("RemoveRole", ctx, "u1", domain.RoleGlobalAdmin).Return(nil)
	c := NewChecker([]string{"cfg"}, repo)

	require.NoError(t, c.Grant(ctx, "cfg", "u1", domain.RoleGlobalAdmin))
	require.NoError(t, c.Revoke(ctx, "cfg", "u1", domain.RoleGlobalAdmin))

	err := c.Grant(ctx, "global", "u2", domain.RoleOwner)
	assert.ErrorIs(t, err, domain.ErrNotPermitted)

	err = c.Grant(ctx, "cfg", "u2", domain.Role("moderator"))
	assert.ErrorIs(t, err, domain.ErrInvalidRole)

	repo.AssertNumberOfCalls(t, "AddRole", 1)
}

func TestChecker_ListAndReset(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRoleRepository)
	repo.On("ListRoles", ctx).Return([]domain.RoleAssignment{
		{UserID: "b", Role: domain.RoleOwner},
		{UserID: "a", Role: domain.RoleOwner},
		{UserID: "c", Role: domain.RoleGlobalAdmin},
	}, nil)
	repo.On("RemoveRole", ctx, mock.Anything, mock.Anything).Return(nil)
	c := NewChecker([]string{"cfg"}, repo)

	roles, err := c.List(ctx, "cfg")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, roles[domain.RoleOwner])
	assert.Equal(t, []string{"c"}, roles[domain.RoleGlobalAdmin])

	require.NoError(t, c.Reset(ctx, "cfg"))
	repo.AssertNumberOfCalls(t, "RemoveRole", 3)
}
