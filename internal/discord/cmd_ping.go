package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"
)

// PingCommand returns the ping command definition and handler
func PingCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        CmdPing,
		Description: "Check if the bot is alive",
	}

	handler := func(_ context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, _ *Services) {
		respondText(s, i, MsgPong)
	}

	return cmd, handler
}
