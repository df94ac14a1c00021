package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/osse101/MathCatch_Go/internal/domain"
	"github.com/osse101/MathCatch_Go/internal/inventory"
	"github.com/osse101/MathCatch_Go/internal/spawn"
)

type fakePool struct{}

func (fakePool) Ping(context.Context) error { return nil }
func (fakePool) Close()                     {}

type fakeRules struct{}

func (fakeRules) ListRules(string) []domain.SpawnRule {
	return []domain.SpawnRule{{ChannelID: "1", GuildID: "9", Probability: 0.5}}
}
func (fakeRules) SetRule(_ context.Context, r domain.SpawnRule) (domain.SpawnRule, error) {
	return r, nil
}
func (fakeRules) RemoveRule(context.Context, string) (bool, error) { return false, nil }
func (fakeRules) Status(string) spawn.Status                       { return spawn.Status{} }
func (fakeRules) ActiveSpawns() []domain.ActiveSpawn               { return nil }

type fakeCollection struct{}

func (fakeCollection) Inventory(_ context.Context, userID, _ string) (*inventory.View, error) {
	return &inventory.View{UserID: userID}, nil
}
func (fakeCollection) Completion(_ context.Context, userID string) (inventory.Completion, error) {
	return inventory.Completion{UserID: userID}, nil
}
func (fakeCollection) Leaderboard(context.Context, int) ([]domain.LeaderboardEntry, error) {
	return nil, nil
}

func TestRouter(t *testing.T) {
	const key = "k"
	router := NewRouter(Options{APIKey: key}, fakePool{}, fakeRules{}, fakeCollection{})

	tests := []struct {
		name   string
		method string
		path   string
		auth   bool
		want   int
	}{
		{"healthz is public", http.MethodGet, "/healthz", false, http.StatusOK},
		{"readyz is public", http.MethodGet, "/readyz", false, http.StatusOK},
		{"rules require key", http.MethodGet, "/api/v1/rules", false, http.StatusUnauthorized},
		{"rules list", http.MethodGet, "/api/v1/rules", true, http.StatusOK},
		{"spawn status", http.MethodGet, "/api/v1/spawns/123", true, http.StatusOK},
		{"remove missing rule", http.MethodDelete, "/api/v1/rules/123", true, http.StatusNotFound},
		{"inventory", http.MethodGet, "/api/v1/inventory/42", true, http.StatusOK},
		{"leaderboard", http.MethodGet, "/api/v1/leaderboard?limit=5", true, http.StatusOK},
		{"unknown route", http.MethodGet, "/api/v1/nope", true, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.auth {
				req.Header.Set(HeaderAPIKey, key)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
			assert.Equal(t, HeaderValueNoSniff, rec.Header().Get(HeaderContentType))
		})
	}
}
