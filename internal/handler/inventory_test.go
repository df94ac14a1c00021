package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/MathCatch_Go/internal/domain"
	"github.com/osse101/MathCatch_Go/internal/inventory"
)

type MockCollection struct {
	mock.Mock
}

func (m *MockCollection) Inventory(ctx context.Context, userID, lang string) (*inventory.View, error) {
	args := m.Called(ctx, userID, lang)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.View), args.Error(1)
}

func (m *MockCollection) Completion(ctx context.Context, userID string) (inventory.Completion, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(inventory.Completion), args.Error(1)
}

func (m *MockCollection) Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LeaderboardEntry), args.Error(1)
}

func newInventoryRouter(c Collection) http.Handler {
	h := NewInventoryHandler(c)
	r := chi.NewRouter()
	r.Get("/inventory/{userID}", h.HandleGetInventory)
	r.Get("/leaderboard", h.HandleGetLeaderboard)
	return r
}

func TestInventoryHandler_GetInventory(t *testing.T) {
	t.Run("combines view and completion", func(t *testing.T) {
		c := &MockCollection{}
		c.On("Inventory", mock.Anything, "42", "de").Return(&inventory.View{
			UserID: "42",
			Sections: []inventory.Section{{
				Category: domain.CategoryFunctions,
				Items:    []inventory.OwnedItem{{Item: domain.Item{Key: "sin"}, Name: "Sinus", Quantity: 2}},
			}},
			Total: 2,
		}, nil)
		c.On("Completion", mock.Anything, "42").Return(inventory.Completion{UserID: "42", Owned: 1, Total: 4, Percent: 25}, nil)

		w := serve(newInventoryRouter(c), http.MethodGet, "/inventory/42?lang=de", "")
		require.Equal(t, http.StatusOK, w.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, float64(2), resp["total"])
		assert.Equal(t, float64(25), resp["completion"].(map[string]any)["percent"])
	})

	t.Run("default language", func(t *testing.T) {
		c := &MockCollection{}
		c.On("Inventory", mock.Anything, "42", domain.DefaultLanguage).Return(&inventory.View{UserID: "42"}, nil)
		c.On("Completion", mock.Anything, "42").Return(inventory.Completion{UserID: "42"}, nil)

		w := serve(newInventoryRouter(c), http.MethodGet, "/inventory/42", "")
		assert.Equal(t, http.StatusOK, w.Code)
		c.AssertExpectations(t)
	})

	t.Run("storage unavailable", func(t *testing.T) {
		c := &MockCollection{}
		c.On("Inventory", mock.Anything, "42", mock.Anything).Return(nil, domain.ErrStorageUnavailable)

		w := serve(newInventoryRouter(c), http.MethodGet, "/inventory/42", "")
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestInventoryHandler_Leaderboard(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantLimit int
		wantCode  int
	}{
		{"default limit", "", DefaultLeaderboardLimit, http.StatusOK},
		{"explicit limit", "?limit=3", 3, http.StatusOK},
		{"clamped", "?limit=1000", MaxLeaderboardLimit, http.StatusOK},
		{"zero", "?limit=0", 0, http.StatusBadRequest},
		{"garbage", "?limit=abc", 0, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &MockCollection{}
			if tt.wantCode == http.StatusOK {
				c.On("Leaderboard", mock.Anything, tt.wantLimit).Return([]domain.LeaderboardEntry{{UserID: "1", Distinct: 5}}, nil)
			}

			w := serve(newInventoryRouter(c), http.MethodGet, "/leaderboard"+tt.query, "")
			assert.Equal(t, tt.wantCode, w.Code)
			c.AssertExpectations(t)
		})
	}
}
