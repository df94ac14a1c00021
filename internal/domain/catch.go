package domain

import "time"

// Message is an inbound chat message as seen by the game
type Message struct {
	ID        string
	ChannelID string
	GuildID   string
	AuthorID  string
	Author    string
	Text      string
	IsBot     bool
	Timestamp time.Time
}

// CatchRecord is a single successful catch
type CatchRecord struct {
	UserID    string    `json:"user_id"`
	ItemKey   string    `json:"item_key"`
	ChannelID string    `json:"channel_id"`
	CaughtAt  time.Time `json:"caught_at"`
}

// InventoryEntry is the aggregated count for one (user, item) pair
type InventoryEntry struct {
	UserID   string `json:"user_id"`
	ItemKey  string `json:"item_key"`
	Quantity int    `json:"quantity"`
}

// LeaderboardEntry ranks a user by distinct items caught
type LeaderboardEntry struct {
	UserID   string `json:"user_id"`
	Distinct int    `json:"distinct"`
}

// CatchOutcome is the result of resolving one message against a channel
type CatchOutcome int

const (
	OutcomeNone CatchOutcome = iota
	OutcomeCaught
	OutcomeNearMiss
)
