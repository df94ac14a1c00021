package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"
)

// SummonCommand forces a spawn in the invoking channel.
// The announcement itself is posted by the spawn scheduler.
func SummonCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        CmdSummon,
		Description: "Summon a Math object into this channel",
	}

	handler := func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, svc *Services) {
		if !deferResponse(s, i) {
			return
		}

		user := getInteractionUser(i)
		if _, err := svc.Game.Summon(ctx, i.ChannelID, user.ID, isGuildAdmin(i)); err != nil {
			respondFriendlyError(ctx, s, i, err)
			return
		}

		respondError(s, i, MsgSummoned)
	}

	return cmd, handler
}
