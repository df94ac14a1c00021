package event

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/osse101/MathCatch_Go/internal/logger"
)

// DeadLetterSchemaVersion is bumped whenever DeadLetterEntry changes shape.
const DeadLetterSchemaVersion = "1.0"

// DeadLetterEntry is one JSON line of the dead-letter file.
type DeadLetterEntry struct {
	SchemaVersion string    `json:"schema_version"`
	Timestamp     time.Time `json:"timestamp"`
	Event         Event     `json:"event"`
	LastError     string    `json:"last_error,omitempty"`
}

// DeadLetterWriter appends catches that could not be persisted. Nothing
// replays them; operators read the file with `migrate dead-letters`.
type DeadLetterWriter struct {
	mu  sync.Mutex
	w   io.Writer
	now func() time.Time
}

// NewDeadLetterWriter opens path for appending, creating it if needed.
func NewDeadLetterWriter(path string) (*DeadLetterWriter, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, DeadLetterFilePermissions)
	if err != nil {
		return nil, fmt.Errorf("open dead-letter file: %w", err)
	}
	return &DeadLetterWriter{w: f, now: time.Now}, nil
}

// Write appends e together with the error that sent it here.
func (d *DeadLetterWriter) Write(ctx context.Context, e Event, cause error) error {
	entry := DeadLetterEntry{
		SchemaVersion: DeadLetterSchemaVersion,
		Timestamp:     d.now(),
		Event:         e,
	}
	if cause != nil {
		entry.LastError = cause.Error()
	}

	line, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode dead letter: %w", err)
	}

	logger.FromContext(ctx).Warn(LogMsgDeadLettered,
		"event_type", e.Type,
		MetadataKeyRequestID, e.GetMetadataValue(MetadataKeyRequestID),
		"error", entry.LastError)

	d.mu.Lock()
	defer d.mu.Unlock()
	_, err = d.w.Write(append(line, '\n'))
	return err
}

// Subscribe routes CatchPersistFailed events on bus into the file.
func (d *DeadLetterWriter) Subscribe(bus Bus) {
	bus.Subscribe(CatchPersistFailed, func(ctx context.Context, e Event) error {
		p, err := DecodePayload[CatchPersistFailedPayloadV1](e.Payload)
		if err != nil {
			logger.FromContext(ctx).Error(LogMsgDeadLetterDecodeFail, "error", err)
			return err
		}
		return d.Write(ctx, e, errors.New(p.Error))
	})
}

func (d *DeadLetterWriter) Close() error {
	if c, ok := d.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// ReadDeadLetters parses a dead-letter stream. Blank lines are skipped;
// a malformed line fails with its line number.
func ReadDeadLetters(r io.Reader) ([]DeadLetterEntry, error) {
	var entries []DeadLetterEntry
	sc := bufio.NewScanner(r)
	for n := 1; sc.Scan(); n++ {
		if len(sc.Bytes()) == 0 {
			continue
		}
		var entry DeadLetterEntry
		if err := json.Unmarshal(sc.Bytes(), &entry); err != nil {
			return entries, fmt.Errorf("dead-letter line %d: %w", n, err)
		}
		entries = append(entries, entry)
	}
	return entries, sc.Err()
}
