package discord

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/MathCatch_Go/internal/cooldown"
	"github.com/osse101/MathCatch_Go/internal/domain"
)

func TestCommandRegistry(t *testing.T) {
	registry := NewCommandRegistry()

	cmd := &discordgo.ApplicationCommand{Name: "test", Description: "Test command"}
	called := false
	registry.Register(cmd, func(_ context.Context, _ *discordgo.Session, _ *discordgo.InteractionCreate, _ *Services) {
		called = true
	})

	require.NotNil(t, registry.Commands["test"])
	require.NotNil(t, registry.Handlers["test"])

	t.Run("dispatches application commands", func(t *testing.T) {
		before := commandCounter.Load()
		registry.Handle(nil, createTestInteraction("test"), nil)
		assert.True(t, called)
		assert.Equal(t, before+1, commandCounter.Load())
	})

	t.Run("ignores other interaction types", func(t *testing.T) {
		called = false
		i := createTestInteraction("test")
		i.Type = discordgo.InteractionMessageComponent
		registry.Handle(nil, i, nil)
		assert.False(t, called)
	})

	t.Run("unknown command is a no-op", func(t *testing.T) {
		assert.NotPanics(t, func() { registry.Handle(nil, createTestInteraction("nope"), nil) })
	})
}

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()
	for _, name := range []string{CmdPing, CmdSpawnRules, CmdSummon, CmdInventory, CmdCompletion, CmdRemaining, CmdLeaderboard, CmdCountObjects, CmdRole} {
		assert.Contains(t, r.Commands, name)
		assert.Contains(t, r.Handlers, name)
	}
}

func TestCommandsEqual(t *testing.T) {
	build := func() []*discordgo.ApplicationCommand {
		cmd, _ := SpawnRulesCommand()
		ping, _ := PingCommand()
		return []*discordgo.ApplicationCommand{cmd, ping}
	}

	t.Run("identical sets", func(t *testing.T) {
		assert.True(t, commandsEqual(build(), build()))
	})

	t.Run("order independent", func(t *testing.T) {
		a := build()
		b := []*discordgo.ApplicationCommand{a[1], a[0]}
		assert.True(t, commandsEqual(build(), b))
	})

	t.Run("nested option change detected", func(t *testing.T) {
		changed := build()
		changed[0].Options[0].Options[0].Description = "different"
		assert.False(t, commandsEqual(build(), changed))
	})

	t.Run("count mismatch", func(t *testing.T) {
		assert.False(t, commandsEqual(build(), build()[:1]))
	})
}

func TestFormatFriendlyError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"not permitted", fmt.Errorf("wrapped: %w", domain.ErrNotPermitted), MsgNotPermitted},
		{"channel active", domain.ErrChannelActive, MsgChannelActive},
		{"empty catalog", domain.ErrEmptyCatalog, MsgEmptyCatalog},
		{"invalid rule", fmt.Errorf("%w: probability", domain.ErrInvalidRule), MsgInvalidRule},
		{"invalid role", domain.ErrInvalidRole, MsgInvalidRole},
		{"storage", fmt.Errorf("%w: boom", domain.ErrStorageUnavailable), MsgUnavailable},
		{"plain cooldown", domain.ErrOnCooldown, MsgCooldownActive},
		{"generic", errors.New("some random error"), MsgGenericError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatFriendlyError(tt.err))
		})
	}

	t.Run("cooldown with remaining time", func(t *testing.T) {
		err := cooldown.ErrOnCooldown{Action: cooldown.ActionSummon, Remaining: 4*time.Minute + 3*time.Second + 400*time.Millisecond}
		got := formatFriendlyError(err)
		assert.Contains(t, got, MsgCooldownActive)
		assert.Contains(t, got, "Wait for: **4m3s**")
	})
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))

	long := strings.Repeat("line\n", 300)
	got := truncate(long, 100)
	assert.LessOrEqual(t, len(got), 100)
	assert.True(t, strings.HasSuffix(got, MsgTruncated))
}

func TestInteractionHelpers(t *testing.T) {
	t.Run("dm user", func(t *testing.T) {
		i := createTestInteraction(CmdPing)
		i.Member = nil
		i.User = &discordgo.User{ID: "dm"}
		assert.Equal(t, "dm", getInteractionUser(i).ID)
		assert.False(t, isGuildAdmin(i))
	})

	t.Run("guild admin", func(t *testing.T) {
		i := createTestInteraction(CmdPing)
		assert.False(t, isGuildAdmin(i))
		i.Member.Permissions = discordgo.PermissionAdministrator
		assert.True(t, isGuildAdmin(i))
	})

	t.Run("language from locale", func(t *testing.T) {
		i := createTestInteraction(CmdPing)
		assert.Equal(t, "de", interactionLanguage(i))
		i.Locale = discordgo.EnglishUS
		assert.Equal(t, "en", interactionLanguage(i))
		i.Locale = ""
		assert.Equal(t, domain.DefaultLanguage, interactionLanguage(i))
	})

	t.Run("target user", func(t *testing.T) {
		assert.Equal(t, "u1", targetUserID(createTestInteraction(CmdInventory)))
		assert.Equal(t, "u9", targetUserID(createTestInteraction(CmdInventory, userOpt("u9"))))
	})
}

func TestPingCommand(t *testing.T) {
	tr := run(t, newTestServices().Services, createTestInteraction(CmdPing))
	resp := tr.lastResponse(t)
	require.NotNil(t, resp.Data)
	assert.Equal(t, MsgPong, resp.Data.Content)
}
