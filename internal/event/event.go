package event

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/MathCatch_Go/internal/domain"
	"github.com/osse101/MathCatch_Go/internal/logger"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata map[string]interface{}

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata,omitempty"`
}

// GetMetadataValue extracts a value from the event metadata safely
func (e Event) GetMetadataValue(key string) interface{} {
	if e.Metadata == nil {
		return nil
	}
	return e.Metadata[key]
}

// Game event types
const (
	SpawnActivated     Type = domain.EventSpawnActivated
	SpawnExpired       Type = domain.EventSpawnExpired
	ItemCaught         Type = domain.EventItemCaught
	NearMiss           Type = domain.EventNearMiss
	CatchPersistFailed Type = domain.EventCatchPersistFailed
	RuleChanged        Type = domain.EventRuleChanged
)

// NewSpawnActivatedEvent creates a spawn activated event
func NewSpawnActivatedEvent(s domain.ActiveSpawn) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    SpawnActivated,
		Payload: SpawnActivatedPayloadV1{
			SpawnID:   s.ID,
			ChannelID: s.ChannelID,
			ItemKey:   s.Item.Key,
			Trigger:   string(s.Trigger),
			ExpiresAt: s.ExpiresAt,
			Timestamp: s.ActivatedAt.Unix(),
		},
	}
}

// NewSpawnExpiredEvent creates a spawn expired event
func NewSpawnExpiredEvent(s domain.ActiveSpawn, at time.Time) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    SpawnExpired,
		Payload: SpawnExpiredPayloadV1{
			SpawnID:   s.ID,
			ChannelID: s.ChannelID,
			ItemKey:   s.Item.Key,
			Timestamp: at.Unix(),
		},
	}
}

// NewItemCaughtEvent creates a catch event
func NewItemCaughtEvent(s domain.ActiveSpawn, userID, matchedName string, at time.Time) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    ItemCaught,
		Payload: ItemCaughtPayloadV1{
			SpawnID:     s.ID,
			ChannelID:   s.ChannelID,
			UserID:      userID,
			ItemKey:     s.Item.Key,
			MatchedName: matchedName,
			Timestamp:   at.Unix(),
		},
	}
}

// NewNearMissEvent creates a near miss event
func NewNearMissEvent(channelID, userID, itemKey string, at time.Time) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    NearMiss,
		Payload: NearMissPayloadV1{
			ChannelID: channelID,
			UserID:    userID,
			ItemKey:   itemKey,
			Timestamp: at.Unix(),
		},
	}
}

// NewCatchPersistFailedEvent creates a persistence failure event
func NewCatchPersistFailedEvent(rec domain.CatchRecord, err error) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    CatchPersistFailed,
		Payload: CatchPersistFailedPayloadV1{
			ChannelID: rec.ChannelID,
			UserID:    rec.UserID,
			ItemKey:   rec.ItemKey,
			Error:     err.Error(),
			Timestamp: rec.CaughtAt.Unix(),
		},
	}
}

// NewRuleChangedEvent creates a rule change event
func NewRuleChangedEvent(rule domain.SpawnRule, removed bool) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    RuleChanged,
		Payload: RuleChangedPayloadV1{
			ChannelID:   rule.ChannelID,
			GuildID:     rule.GuildID,
			Probability: rule.Probability,
			Interval:    rule.Interval,
			Removed:     removed,
		},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish runs every subscriber for the event type synchronously, collecting their errors.
// The context's request id is copied into the event metadata.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	if id, ok := logger.RequestIDFromContext(ctx); ok && event.GetMetadataValue(MetadataKeyRequestID) == nil {
		md := make(Metadata, len(event.Metadata)+1)
		for k, v := range event.Metadata {
			md[k] = v
		}
		md[MetadataKeyRequestID] = id
		event.Metadata = md
	}

	b.mu.RLock()
	handlers := b.handlers[event.Type]
	b.mu.RUnlock()

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errors.Join(errs...))
	}

	return nil
}

// Subscribe registers a handler for an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
