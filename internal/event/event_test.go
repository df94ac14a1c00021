package event

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/MathCatch_Go/internal/logger"
)

func TestMemoryBus_Publish(t *testing.T) {
	t.Run("only subscribers of the type run, in order", func(t *testing.T) {
		bus := NewMemoryBus()
		var calls []string
		bus.Subscribe(ItemCaught, func(_ context.Context, e Event) error {
			p, err := DecodePayload[ItemCaughtPayloadV1](e.Payload)
			require.NoError(t, err)
			calls = append(calls, "inventory:"+p.ItemKey)
			return nil
		})
		bus.Subscribe(ItemCaught, func(context.Context, Event) error {
			calls = append(calls, "metrics")
			return nil
		})
		bus.Subscribe(SpawnExpired, func(context.Context, Event) error {
			calls = append(calls, "expired")
			return nil
		})

		e := NewItemCaughtEvent(testSpawn(), "u1", "sine", time.Unix(10, 0))
		require.NoError(t, bus.Publish(context.Background(), e))
		assert.Equal(t, []string{"inventory:sin", "metrics"}, calls)
	})

	t.Run("handler errors are joined and wrapped", func(t *testing.T) {
		bus := NewMemoryBus()
		errStore := errors.New("store down")
		ran := 0
		bus.Subscribe(NearMiss, func(context.Context, Event) error { ran++; return errStore })
		bus.Subscribe(NearMiss, func(context.Context, Event) error { ran++; return nil })

		err := bus.Publish(context.Background(), NewNearMissEvent("c1", "u1", "pi", time.Now()))
		require.Error(t, err)
		assert.ErrorIs(t, err, errStore)
		assert.Contains(t, err.Error(), "1 handler(s) failed")
		assert.Equal(t, 2, ran, "a failing handler must not stop the rest")
	})

	t.Run("no subscribers", func(t *testing.T) {
		assert.NoError(t, NewMemoryBus().Publish(context.Background(), Event{Type: RuleChanged}))
	})
}

func TestMemoryBus_RequestIDMetadata(t *testing.T) {
	bus := NewMemoryBus()
	var got Event
	bus.Subscribe(SpawnActivated, func(_ context.Context, e Event) error {
		got = e
		return nil
	})

	ctx := logger.WithRequestID(context.Background(), "req-42")
	original := NewSpawnActivatedEvent(testSpawn())
	original.Metadata = Metadata{"source": "summon"}
	require.NoError(t, bus.Publish(ctx, original))

	assert.Equal(t, "req-42", got.GetMetadataValue(MetadataKeyRequestID))
	assert.Equal(t, "summon", got.GetMetadataValue("source"))
	assert.Nil(t, original.GetMetadataValue(MetadataKeyRequestID), "caller's map must stay untouched")

	t.Run("existing id is kept", func(t *testing.T) {
		e := NewSpawnActivatedEvent(testSpawn())
		e.Metadata = Metadata{MetadataKeyRequestID: "upstream"}
		require.NoError(t, bus.Publish(ctx, e))
		assert.Equal(t, "upstream", got.GetMetadataValue(MetadataKeyRequestID))
	})

	t.Run("no id in context", func(t *testing.T) {
		require.NoError(t, bus.Publish(context.Background(), NewSpawnActivatedEvent(testSpawn())))
		assert.Nil(t, got.Metadata)
	})
}
