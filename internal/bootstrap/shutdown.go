package bootstrap

import (
	"context"
	"log/slog"
)

// Stopper stops background work synchronously
type Stopper interface {
	Stop()
}

// ShutdownComponents holds all components that need graceful shutdown.
// Nil fields are skipped.
type ShutdownComponents struct {
	Server interface {
		Stop(ctx context.Context) error
	}
	Bot interface {
		Stop() error
	}
	// Spawner stops interval timers, then Workers drains queued firings
	Spawner      Stopper
	Workers      Stopper
	ExpiryWorker interface {
		Shutdown(ctx context.Context) error
	}
	DeadLetter interface {
		Close() error
	}
	Storage *Storage
}

// GracefulShutdown performs graceful shutdown of all application components.
// It shuts down in order:
// 1. HTTP server and Discord session (stop accepting new traffic)
// 2. Spawn timers and the worker pool (no new spawns)
// 3. Expiry timers
// 4. Dead-letter file and storage
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, c ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if c.Server != nil {
		if err := c.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if c.Bot != nil {
		slog.Info(LogMsgShuttingDownBot)
		if err := c.Bot.Stop(); err != nil {
			slog.Error(LogMsgBotCloseFailed, "error", err)
		}
	}

	slog.Info(LogMsgStoppingTimers)
	if c.Spawner != nil {
		c.Spawner.Stop()
	}
	if c.Workers != nil {
		c.Workers.Stop()
	}

	if c.ExpiryWorker != nil {
		if err := c.ExpiryWorker.Shutdown(ctx); err != nil {
			slog.Error(LogMsgExpiryShutdownFailed, "error", err)
		}
	}

	if c.DeadLetter != nil {
		if err := c.DeadLetter.Close(); err != nil {
			slog.Error(LogMsgDeadLetterCloseFail, "error", err)
		}
	}

	if c.Storage != nil {
		c.Storage.Close()
	}

	slog.Info(LogMsgServerStopped)
}
