package spawn

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/MathCatch_Go/internal/clock"
	"github.com/osse101/MathCatch_Go/internal/domain"
)

var (
	itemSin = domain.Item{Key: "sin", Category: domain.CategoryFunctions, Names: map[string]string{"en": "sine", "fr": "sinus"}}
	itemCos = domain.Item{Key: "cos", Category: domain.CategoryFunctions, Names: map[string]string{"en": "cosine"}}
)

func TestTable_ActivateClaim(t *testing.T) {
	table := NewTable(0, nil)

	s, ok := table.TryActivate("c1", itemSin, domain.TriggerProbability)
	require.True(t, ok)
	assert.NotEmpty(t, s.ID)
	assert.Nil(t, s.ExpiresAt)
	assert.Equal(t, 1, table.Len())

	_, ok = table.TryActivate("c1", itemCos, domain.TriggerInterval)
	assert.False(t, ok, "second activation must be discarded")

	peeked, ok := table.Peek("c1")
	require.True(t, ok)
	assert.Equal(t, "sin", peeked.Item.Key)

	claimed, ok := table.TryClaim("c1")
	require.True(t, ok)
	assert.Equal(t, s.ID, claimed.ID)

	_, ok = table.TryClaim("c1")
	assert.False(t, ok)
	assert.Equal(t, 0, table.Len())
	assert.False(t, table.Occupied("c1"))
}

func TestTable_ChannelsAreIndependent(t *testing.T) {
	table := NewTable(0, nil)

	_, ok := table.TryActivate("c1", itemSin, domain.TriggerProbability)
	require.True(t, ok)
	_, ok = table.TryActivate("c2", itemSin, domain.TriggerProbability)
	require.True(t, ok)

	snap := table.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, "c1", snap[0].ChannelID)
	assert.Equal(t, "c2", snap[1].ChannelID)
}

func TestTable_ClaimByID(t *testing.T) {
	table := NewTable(0, nil)

	old, _ := table.TryActivate("c1", itemSin, domain.TriggerProbability)
	_, ok := table.TryClaim("c1")
	require.True(t, ok)

	newer, ok := table.TryActivate("c1", itemCos, domain.TriggerInterval)
	require.True(t, ok)

	_, ok = table.Claim("c1", old.ID)
	assert.False(t, ok, "a stale spawn ID must not claim the newer spawn")
	assert.True(t, table.Occupied("c1"))

	got, ok := table.Claim("c1", newer.ID)
	require.True(t, ok)
	assert.Equal(t, "cos", got.Item.Key)
}

func TestTable_Expiry(t *testing.T) {
	clk := clock.NewSimulatedClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	table := NewTable(time.Minute, clk)

	s, ok := table.TryActivate("c1", itemSin, domain.TriggerProbability)
	require.True(t, ok)
	require.NotNil(t, s.ExpiresAt)
	assert.Equal(t, clk.Now().Add(time.Minute), *s.ExpiresAt)

	clk.Advance(59 * time.Second)
	assert.True(t, table.Occupied("c1"))

	clk.Advance(time.Second)
	assert.False(t, table.Occupied("c1"))
	_, ok = table.Claim("c1", s.ID)
	assert.False(t, ok, "expired spawn cannot be claimed")
	assert.Empty(t, table.Snapshot())

	// An expired slot can be reused
	next, ok := table.TryActivate("c1", itemCos, domain.TriggerInterval)
	require.True(t, ok)
	assert.Equal(t, 1, table.Len())

	assert.False(t, table.Expire("c1", s.ID))
	assert.True(t, table.Expire("c1", next.ID))
	assert.Equal(t, 0, table.Len())
}

func TestTable_ExpiredTryClaim(t *testing.T) {
	clk := clock.NewSimulatedClock(time.Now())
	table := NewTable(time.Second, clk)

	table.TryActivate("c1", itemSin, domain.TriggerProbability)
	clk.Advance(2 * time.Second)

	_, ok := table.TryClaim("c1")
	assert.False(t, ok)
	assert.Equal(t, 0, table.Len())
}

func TestTable_ConcurrentActivateExactlyOne(t *testing.T) {
	table := NewTable(0, nil)
	const goroutines = 64

	var wins atomic.Int32
	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			if _, ok := table.TryActivate("c1", itemSin, domain.TriggerProbability); ok {
				wins.Add(1)
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, int32(1), wins.Load())
	assert.Equal(t, 1, table.Len())
}

func TestTable_ConcurrentClaimExactlyOne(t *testing.T) {
	for round := 0; round < 20; round++ {
		table := NewTable(0, nil)
		s, ok := table.TryActivate("c1", itemSin, domain.TriggerProbability)
		require.True(t, ok)

		const goroutines = 32
		var wins atomic.Int32
		var wg sync.WaitGroup
		start := make(chan struct{})
		for i := 0; i < goroutines; i++ {
			wg.Add(1)
			go func(byID bool) {
				defer wg.Done()
				<-start
				var won bool
				if byID {
					_, won = table.Claim("c1", s.ID)
				} else {
					_, won = table.TryClaim("c1")
				}
				if won {
					wins.Add(1)
				}
			}(i%2 == 0)
		}
		close(start)
		wg.Wait()

		require.Equal(t, int32(1), wins.Load(), "round %d", round)
		assert.Equal(t, 0, table.Len())
	}
}
