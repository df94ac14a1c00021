package discord

import (
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/MathCatch_Go/internal/domain"
	"github.com/osse101/MathCatch_Go/internal/game"
)

func TestToDomainMessage(t *testing.T) {
	ts := time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)
	m := &discordgo.MessageCreate{Message: &discordgo.Message{
		ID:        "m1",
		ChannelID: "c1",
		GuildID:   "g1",
		Content:   "catch pi",
		Timestamp: ts,
		Author:    &discordgo.User{ID: "u1", Username: "alice", Bot: true},
	}}

	msg, ok := toDomainMessage(m)
	require.True(t, ok)
	assert.Equal(t, domain.Message{
		ID: "m1", ChannelID: "c1", GuildID: "g1", AuthorID: "u1", Author: "alice",
		Text: "catch pi", IsBot: true, Timestamp: ts,
	}, msg)

	t.Run("no author", func(t *testing.T) {
		_, ok := toDomainMessage(&discordgo.MessageCreate{Message: &discordgo.Message{ID: "m2"}})
		assert.False(t, ok)
	})
}

func TestMessageCreateFeedsEngine(t *testing.T) {
	svc := newTestServices()
	svc.game.On("HandleMessage", mock.Anything, mock.MatchedBy(func(m domain.Message) bool {
		return m.Text == "catch pi" && m.ChannelID == "c1"
	})).Return(game.MessageResult{})

	s, _ := newTestSession(t)
	bot := New(s, Config{AppID: "app"}, svc.Services)
	bot.messageCreate(s, &discordgo.MessageCreate{Message: &discordgo.Message{
		ID: "m1", ChannelID: "c1", Content: "catch pi", Author: &discordgo.User{ID: "u1"},
	}})

	svc.game.AssertExpectations(t)
}
