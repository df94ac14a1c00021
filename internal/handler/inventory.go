package handler

import (
	"context"
	"net/http"

	"github.com/osse101/MathCatch_Go/internal/domain"
	"github.com/osse101/MathCatch_Go/internal/inventory"
)

// Collection is the read side of the inventory service
type Collection interface {
	Inventory(ctx context.Context, userID, lang string) (*inventory.View, error)
	Completion(ctx context.Context, userID string) (inventory.Completion, error)
	Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error)
}

// InventoryResponse combines a user's items with their completion
type InventoryResponse struct {
	*inventory.View
	Completion inventory.Completion `json:"completion"`
}

// LeaderboardResponse ranks users by distinct items caught
type LeaderboardResponse struct {
	Entries []domain.LeaderboardEntry `json:"entries"`
}

// InventoryHandler serves collection views
type InventoryHandler struct {
	collection Collection
}

// NewInventoryHandler creates an InventoryHandler
func NewInventoryHandler(c Collection) *InventoryHandler {
	return &InventoryHandler{collection: c}
}

// HandleGetInventory returns a user's items grouped by category
// @Summary User inventory
// @Tags inventory
// @Produce json
// @Param userID path string true "User id"
// @Param lang query string false "Language for item names" default(en)
// @Success 200 {object} InventoryResponse
// @Failure 503 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/inventory/{userID} [get]
func (h *InventoryHandler) HandleGetInventory(w http.ResponseWriter, r *http.Request) {
	userID, ok := idParam(w, r, URLParamUserID, ErrMsgInvalidUserID)
	if !ok {
		return
	}
	lang := GetOptionalQueryParam(r, QueryParamLanguage, domain.DefaultLanguage)

	view, err := h.collection.Inventory(r.Context(), userID, lang)
	if err != nil {
		respondServiceError(w, r, "get inventory", err)
		return
	}
	completion, err := h.collection.Completion(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, "get completion", err)
		return
	}

	respondJSON(w, http.StatusOK, InventoryResponse{View: view, Completion: completion})
}

// HandleGetLeaderboard ranks users by distinct items caught
// @Summary Leaderboard
// @Tags inventory
// @Produce json
// @Param limit query int false "Number of entries (1-100)" default(10)
// @Success 200 {object} LeaderboardResponse
// @Failure 400 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/leaderboard [get]
func (h *InventoryHandler) HandleGetLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit, ok := parseLimit(r)
	if !ok {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidLimit)
		return
	}

	entries, err := h.collection.Leaderboard(r.Context(), limit)
	if err != nil {
		respondServiceError(w, r, "get leaderboard", err)
		return
	}
	if entries == nil {
		entries = []domain.LeaderboardEntry{}
	}
	respondJSON(w, http.StatusOK, LeaderboardResponse{Entries: entries})
}
