package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/MathCatch_Go/internal/domain"
)

// Notifier posts spawn announcements and catch replies to Discord
type Notifier struct {
	session *discordgo.Session
}

// NewNotifier creates a Notifier on the given session
func NewNotifier(s *discordgo.Session) *Notifier {
	return &Notifier{session: s}
}

// Notify posts text to a channel
func (n *Notifier) Notify(ctx context.Context, channelID, text string) error {
	if _, err := n.session.ChannelMessageSend(channelID, text, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("send to channel %s: %w", channelID, err)
	}
	return nil
}

// Reply answers msg in its channel, referencing it
func (n *Notifier) Reply(ctx context.Context, msg domain.Message, text string) error {
	ref := &discordgo.MessageReference{
		MessageID: msg.ID,
		ChannelID: msg.ChannelID,
		GuildID:   msg.GuildID,
	}
	if _, err := n.session.ChannelMessageSendReply(msg.ChannelID, text, ref, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("reply in channel %s: %w", msg.ChannelID, err)
	}
	return nil
}
