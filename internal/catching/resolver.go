package catching

import (
	"context"
	"fmt"

	"github.com/osse101/MathCatch_Go/internal/clock"
	"github.com/osse101/MathCatch_Go/internal/domain"
	"github.com/osse101/MathCatch_Go/internal/event"
	"github.com/osse101/MathCatch_Go/internal/logger"
)

// SpawnTable is the part of the active spawn table the resolver needs
type SpawnTable interface {
	Peek(channelID string) (domain.ActiveSpawn, bool)
	Claim(channelID, spawnID string) (domain.ActiveSpawn, bool)
}

// Recorder durably credits a catch
type Recorder interface {
	Record(ctx context.Context, rec domain.CatchRecord) error
}

// Replier answers an inbound message in its channel
type Replier interface {
	Reply(ctx context.Context, msg domain.Message, text string) error
}

// Result describes what a message did to its channel's active spawn
type Result struct {
	Outcome     domain.CatchOutcome
	Spawn       domain.ActiveSpawn
	MatchedName string
	// Err is set when a catch was won but could not be recorded. The catch still stands.
	Err error
}

// Resolver judges messages against the active spawn and awards the first correct one
type Resolver struct {
	table    SpawnTable
	matcher  *Matcher
	recorder Recorder
	replier  Replier
	bus      event.Bus
	clock    clock.Clock
}

// NewResolver creates a catch resolver. replier, bus and clk may be nil.
func NewResolver(table SpawnTable, matcher *Matcher, recorder Recorder, replier Replier, bus event.Bus, clk clock.Clock) *Resolver {
	if clk == nil {
		clk = clock.NewRealClock()
	}
	return &Resolver{
		table:    table,
		matcher:  matcher,
		recorder: recorder,
		replier:  replier,
		bus:      bus,
		clock:    clk,
	}
}

// Resolve matches msg against the channel's active spawn.
// No active spawn, no match, and losing the claim race all yield OutcomeNone.
func (r *Resolver) Resolve(ctx context.Context, msg domain.Message) Result {
	active, ok := r.table.Peek(msg.ChannelID)
	if !ok {
		return Result{Outcome: domain.OutcomeNone}
	}

	matched, ok := r.matcher.Match(msg.Text, active.Item)
	if !ok {
		if r.matcher.HasCatchIntent(msg.Text) {
			r.nearMiss(ctx, msg, active)
			return Result{Outcome: domain.OutcomeNearMiss, Spawn: active}
		}
		return Result{Outcome: domain.OutcomeNone}
	}

	claimed, ok := r.table.Claim(msg.ChannelID, active.ID)
	if !ok {
		logger.FromContext(ctx).Debug(LogMsgLostRace, "channelID", msg.ChannelID, "userID", msg.AuthorID)
		return Result{Outcome: domain.OutcomeNone}
	}

	return r.award(ctx, msg, claimed, matched)
}

func (r *Resolver) award(ctx context.Context, msg domain.Message, claimed domain.ActiveSpawn, matched string) Result {
	log := logger.FromContext(ctx)
	now := r.clock.Now()
	log.Info(LogMsgCaught, "channelID", msg.ChannelID, "userID", msg.AuthorID, "item", claimed.Item.Key, "matched", matched)

	res := Result{Outcome: domain.OutcomeCaught, Spawn: claimed, MatchedName: matched}

	// The spawn is gone whatever happens to the write
	rec := domain.CatchRecord{UserID: msg.AuthorID, ItemKey: claimed.Item.Key, ChannelID: msg.ChannelID, CaughtAt: now}
	if err := r.recorder.Record(ctx, rec); err != nil {
		log.Error(LogMsgRecordFailed, "userID", msg.AuthorID, "item", claimed.Item.Key, "error", err)
		res.Err = err
	}

	r.publish(ctx, event.NewItemCaughtEvent(claimed, msg.AuthorID, matched, now))
	r.reply(ctx, msg, fmt.Sprintf(MsgCaughtFmt, claimed.Item.Key, matched))
	return res
}

func (r *Resolver) nearMiss(ctx context.Context, msg domain.Message, active domain.ActiveSpawn) {
	logger.FromContext(ctx).Debug(LogMsgNearMiss, "channelID", msg.ChannelID, "userID", msg.AuthorID, "item", active.Item.Key)
	r.publish(ctx, event.NewNearMissEvent(msg.ChannelID, msg.AuthorID, active.Item.Key, r.clock.Now()))
	r.reply(ctx, msg, MsgNearMiss)
}

func (r *Resolver) publish(ctx context.Context, e event.Event) {
	if r.bus == nil {
		return
	}
	if err := r.bus.Publish(ctx, e); err != nil {
		logger.FromContext(ctx).Warn(LogMsgPublishFailed, "event", e.Type, "error", err)
	}
}

func (r *Resolver) reply(ctx context.Context, msg domain.Message, text string) {
	if r.replier == nil {
		return
	}
	if err := r.replier.Reply(ctx, msg, text); err != nil {
		logger.FromContext(ctx).Warn(LogMsgReplyFailed, "channelID", msg.ChannelID, "error", err)
	}
}
