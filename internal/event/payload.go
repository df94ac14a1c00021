package event

import (
	"encoding/json"
	"fmt"
	"time"
)

// SpawnActivatedPayloadV1 is published when an item becomes catchable in a channel
type SpawnActivatedPayloadV1 struct {
	SpawnID   string     `json:"spawn_id"`
	ChannelID string     `json:"channel_id"`
	ItemKey   string     `json:"item_key"`
	Trigger   string     `json:"trigger"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	Timestamp int64      `json:"timestamp"`
}

// SpawnExpiredPayloadV1 is published when an uncaught spawn times out
type SpawnExpiredPayloadV1 struct {
	SpawnID   string `json:"spawn_id"`
	ChannelID string `json:"channel_id"`
	ItemKey   string `json:"item_key"`
	Timestamp int64  `json:"timestamp"`
}

// ItemCaughtPayloadV1 is published once per successful claim
type ItemCaughtPayloadV1 struct {
	SpawnID     string `json:"spawn_id"`
	ChannelID   string `json:"channel_id"`
	UserID      string `json:"user_id"`
	ItemKey     string `json:"item_key"`
	MatchedName string `json:"matched_name"`
	Timestamp   int64  `json:"timestamp"`
}

// NearMissPayloadV1 is published when a catch attempt names the wrong item
type NearMissPayloadV1 struct {
	ChannelID string `json:"channel_id"`
	UserID    string `json:"user_id"`
	ItemKey   string `json:"item_key"`
	Timestamp int64  `json:"timestamp"`
}

// CatchPersistFailedPayloadV1 records a catch that happened but could not be stored
type CatchPersistFailedPayloadV1 struct {
	ChannelID string `json:"channel_id"`
	UserID    string `json:"user_id"`
	ItemKey   string `json:"item_key"`
	Error     string `json:"error"`
	Timestamp int64  `json:"timestamp"`
}

// RuleChangedPayloadV1 is published when a channel's rule is set or removed
type RuleChangedPayloadV1 struct {
	ChannelID   string  `json:"channel_id"`
	GuildID     string  `json:"guild_id"`
	Probability float64 `json:"probability"`
	Interval    int     `json:"interval"`
	Removed     bool    `json:"removed"`
}

// DecodePayload extracts a T from an event payload. In-process publishers
// hand over T or *T directly; dead-letter lines replayed from disk decode to
// map[string]any and go through a JSON round trip.
func DecodePayload[T any](payload any) (T, error) {
	var out T
	switch v := payload.(type) {
	case T:
		return v, nil
	case *T:
		if v == nil {
			return out, fmt.Errorf("decode %T: nil payload", out)
		}
		return *v, nil
	case nil:
		return out, fmt.Errorf("decode %T: nil payload", out)
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return out, fmt.Errorf("decode %T: %w", out, err)
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("decode %T: %w", out, err)
	}
	return out, nil
}
