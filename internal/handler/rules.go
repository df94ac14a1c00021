package handler

import (
	"context"
	"net/http"

	"github.com/osse101/MathCatch_Go/internal/domain"
	"github.com/osse101/MathCatch_Go/internal/logger"
	"github.com/osse101/MathCatch_Go/internal/spawn"
)

// RuleAdmin is the slice of the game engine the rules API drives
type RuleAdmin interface {
	ListRules(guildID string) []domain.SpawnRule
	SetRule(ctx context.Context, rule domain.SpawnRule) (domain.SpawnRule, error)
	RemoveRule(ctx context.Context, channelID string) (bool, error)
	Status(channelID string) spawn.Status
	ActiveSpawns() []domain.ActiveSpawn
}

// SetRuleRequest is the body of PUT /api/v1/rules/{channelID}
type SetRuleRequest struct {
	GuildID     string  `json:"guild_id" validate:"snowflake"`
	Probability float64 `json:"probability" validate:"gte=0,lte=1"`
	Interval    int     `json:"interval" validate:"gte=0,lte=604800"`
}

// RulesResponse lists spawn rules
type RulesResponse struct {
	Rules []domain.SpawnRule `json:"rules"`
}

// RulesHandler serves the spawn rule admin API
type RulesHandler struct {
	admin RuleAdmin
}

// NewRulesHandler creates a RulesHandler
func NewRulesHandler(admin RuleAdmin) *RulesHandler {
	return &RulesHandler{admin: admin}
}

// HandleList lists rules, optionally for one guild
// @Summary List spawn rules
// @Tags rules
// @Produce json
// @Param guild_id query string false "Guild id"
// @Success 200 {object} RulesResponse
// @Security ApiKeyAuth
// @Router /api/v1/rules [get]
func (h *RulesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	guildID := GetOptionalQueryParam(r, QueryParamGuildID, "")
	rules := h.admin.ListRules(guildID)
	if rules == nil {
		rules = []domain.SpawnRule{}
	}
	respondJSON(w, http.StatusOK, RulesResponse{Rules: rules})
}

// HandlePut replaces a channel's rule
// @Summary Set a channel's spawn rule
// @Description Both probability and interval 0 is rejected; use DELETE to disable spawning.
// @Tags rules
// @Accept json
// @Produce json
// @Param channelID path string true "Channel id"
// @Param request body SetRuleRequest true "Rule"
// @Success 200 {object} domain.SpawnRule
// @Failure 400 {object} ValidationErrorResponse
// @Failure 503 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/rules/{channelID} [put]
func (h *RulesHandler) HandlePut(w http.ResponseWriter, r *http.Request) {
	channelID, ok := idParam(w, r, URLParamChannelID, ErrMsgInvalidChannelID)
	if !ok {
		return
	}

	var req SetRuleRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Set spawn rule"); err != nil {
		return
	}

	rule, err := h.admin.SetRule(r.Context(), domain.SpawnRule{
		ChannelID:   channelID,
		GuildID:     req.GuildID,
		Probability: req.Probability,
		Interval:    req.Interval,
	})
	if err != nil {
		respondServiceError(w, r, "set rule", err)
		return
	}

	logger.FromContext(r.Context()).Info(LogMsgRuleSetViaAPI,
		"channelID", channelID, "probability", rule.Probability, "interval", rule.Interval)
	respondJSON(w, http.StatusOK, rule)
}

// HandleDelete removes a channel's rule and stops its timer
// @Summary Remove a channel's spawn rule
// @Tags rules
// @Produce json
// @Param channelID path string true "Channel id"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/rules/{channelID} [delete]
func (h *RulesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	channelID, ok := idParam(w, r, URLParamChannelID, ErrMsgInvalidChannelID)
	if !ok {
		return
	}

	removed, err := h.admin.RemoveRule(r.Context(), channelID)
	if err != nil {
		respondServiceError(w, r, "remove rule", err)
		return
	}
	if !removed {
		respondError(w, http.StatusNotFound, ErrMsgRuleNotFound)
		return
	}

	logger.FromContext(r.Context()).Info(LogMsgRuleRemovedViaAPI, "channelID", channelID)
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgRuleRemoved})
}

// SpawnsResponse lists active spawns
type SpawnsResponse struct {
	Spawns []domain.ActiveSpawn `json:"spawns"`
}

// HandleListSpawns lists every active spawn
// @Summary List active spawns
// @Tags spawns
// @Produce json
// @Success 200 {object} SpawnsResponse
// @Security ApiKeyAuth
// @Router /api/v1/spawns [get]
func (h *RulesHandler) HandleListSpawns(w http.ResponseWriter, r *http.Request) {
	spawns := h.admin.ActiveSpawns()
	if spawns == nil {
		spawns = []domain.ActiveSpawn{}
	}
	respondJSON(w, http.StatusOK, SpawnsResponse{Spawns: spawns})
}

// HandleGetSpawn reports a channel's rule, active spawn and next interval firing
// @Summary Channel spawn status
// @Tags spawns
// @Produce json
// @Param channelID path string true "Channel id"
// @Success 200 {object} spawn.Status
// @Security ApiKeyAuth
// @Router /api/v1/spawns/{channelID} [get]
func (h *RulesHandler) HandleGetSpawn(w http.ResponseWriter, r *http.Request) {
	channelID, ok := idParam(w, r, URLParamChannelID, ErrMsgInvalidChannelID)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, h.admin.Status(channelID))
}
