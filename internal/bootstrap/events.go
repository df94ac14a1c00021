package bootstrap

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/osse101/MathCatch_Go/internal/event"
)

// InitializeEventSystem creates the in-process event bus and the dead-letter writer
// that keeps catches which could not be persisted.
// Returns the event bus, the dead-letter writer (caller must close) and any error encountered.
func InitializeEventSystem(deadLetterPath string) (*event.MemoryBus, *event.DeadLetterWriter, error) {
	eventBus := event.NewMemoryBus()

	if err := os.MkdirAll(filepath.Dir(deadLetterPath), DirPermission); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", LogMsgFailedCreateDeadLetterDir, err)
	}

	deadLetter, err := event.NewDeadLetterWriter(deadLetterPath)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", LogMsgFailedOpenDeadLetter, err)
	}

	slog.Info(LogMsgEventSystemInitialized, "deadletter_path", deadLetterPath)

	return eventBus, deadLetter, nil
}
