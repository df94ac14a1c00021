package discord

import (
	"github.com/bwmarrin/discordgo"

	"github.com/osse101/MathCatch_Go/internal/domain"
)

// toDomainMessage converts a gateway message. System messages without an author are dropped.
func toDomainMessage(m *discordgo.MessageCreate) (domain.Message, bool) {
	if m == nil || m.Message == nil || m.Author == nil {
		return domain.Message{}, false
	}
	return domain.Message{
		ID:        m.ID,
		ChannelID: m.ChannelID,
		GuildID:   m.GuildID,
		AuthorID:  m.Author.ID,
		Author:    m.Author.Username,
		Text:      m.Content,
		IsBot:     m.Author.Bot,
		Timestamp: m.Timestamp,
	}, true
}
