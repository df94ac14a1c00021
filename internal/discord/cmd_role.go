package discord

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/MathCatch_Go/internal/domain"
)

func roleOptions() []*discordgo.ApplicationCommandOption {
	return []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        OptUser,
			Description: "Target user",
			Required:    true,
		},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        OptRole,
			Description: "Role",
			Required:    true,
			Choices: []*discordgo.ApplicationCommandOptionChoice{
				{Name: "Owner", Value: string(domain.RoleOwner)},
				{Name: "Global admin", Value: string(domain.RoleGlobalAdmin)},
			},
		},
	}
}

// RoleCommand manages bot roles. Only owners may use it.
func RoleCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        CmdRole,
		Description: "[OWNER] Manage bot roles",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        SubAdd,
				Description: "Grant a role",
				Options:     roleOptions(),
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        SubRemove,
				Description: "Revoke a role",
				Options:     roleOptions(),
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        SubList,
				Description: "List role holders",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        SubReset,
				Description: "Clear every stored role",
			},
		},
	}

	handler := func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, svc *Services) {
		opts := getOptions(i)
		if len(opts) == 0 {
			return
		}
		sub := opts[0]

		if !deferResponse(s, i) {
			return
		}

		actor := getInteractionUser(i).ID
		args := optionMap(sub.Options)

		var (
			msg string
			err error
		)
		switch sub.Name {
		case SubAdd, SubRemove:
			target, _ := args[OptUser].Value.(string)
			role := domain.Role(args[OptRole].StringValue())
			if sub.Name == SubAdd {
				err = svc.Roles.Grant(ctx, actor, target, role)
				msg = fmt.Sprintf(MsgRoleGrantedFmt, role, target)
			} else {
				err = svc.Roles.Revoke(ctx, actor, target, role)
				msg = fmt.Sprintf(MsgRoleRevokedFmt, role, target)
			}
		case SubList:
			var holders map[domain.Role][]string
			holders, err = svc.Roles.List(ctx, actor)
			msg = formatRoleHolders(holders)
		case SubReset:
			err = svc.Roles.Reset(ctx, actor)
			msg = MsgRolesReset
		}
		if err != nil {
			respondFriendlyError(ctx, s, i, err)
			return
		}

		sendEmbed(s, i, createEmbed("🛡️ Roles", msg, ColorSuccess, FooterMathCatchAdmin))
	}

	return cmd, handler
}

func formatRoleHolders(holders map[domain.Role][]string) string {
	var b strings.Builder
	for _, role := range []domain.Role{domain.RoleOwner, domain.RoleGlobalAdmin} {
		fmt.Fprintf(&b, "**%s**: ", role)
		ids := holders[role]
		if len(ids) == 0 {
			b.WriteString("none\n")
			continue
		}
		mentions := make([]string, 0, len(ids))
		for _, id := range ids {
			mentions = append(mentions, "<@"+id+">")
		}
		b.WriteString(strings.Join(mentions, ", ") + "\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}
