package discord

import (
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"
)

// HealthStatus represents the bot's health status
type HealthStatus struct {
	Status           string     `json:"status"`
	Uptime           string     `json:"uptime"`
	Connected        bool       `json:"connected"`
	CommandsReceived int64      `json:"commands_received"`
	LastCommandTime  *time.Time `json:"last_command_time,omitempty"`
}

var (
	startTime       = time.Now()
	commandCounter  atomic.Int64
	lastCommandTime atomic.Int64
)

// RecordCommand increments the command counter
func RecordCommand() {
	commandCounter.Add(1)
	lastCommandTime.Store(time.Now().UnixNano())
}

// Health reports the gateway connection and command counters
func (b *Bot) Health() HealthStatus {
	connected := b.Session != nil && b.Session.DataReady

	h := HealthStatus{
		Status:           "healthy",
		Uptime:           time.Since(startTime).Round(time.Second).String(),
		Connected:        connected,
		CommandsReceived: commandCounter.Load(),
	}
	if !connected {
		h.Status = "degraded"
	}
	if ns := lastCommandTime.Load(); ns != 0 {
		t := time.Unix(0, ns)
		h.LastCommandTime = &t
	}
	return h
}

// HandleHealth serves Health as JSON, 503 while disconnected
func (b *Bot) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	health := b.Health()

	w.Header().Set("Content-Type", "application/json")
	if !health.Connected {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	// headers are already sent, nothing useful to do on failure
	_ = json.NewEncoder(w).Encode(health)
}
