package discord

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/MathCatch_Go/internal/domain"
	"github.com/osse101/MathCatch_Go/internal/spawn"
)

var minZero = 0.0

// SpawnRulesCommand returns the /spawnrules command. Mutations are admin only.
func SpawnRulesCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        CmdSpawnRules,
		Description: "Configure when Math objects appear in this channel",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        SubProbability,
				Description: "Chance that a message spawns an object (0 disables)",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionNumber,
						Name:        OptValue,
						Description: "Probability between 0 and 1",
						Required:    true,
						MinValue:    &minZero,
						MaxValue:    1,
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        SubTime,
				Description: "Spawn an object every N seconds (0 disables)",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        OptSeconds,
						Description: "Interval in seconds",
						Required:    true,
						MinValue:    &minZero,
						MaxValue:    domain.MaxSpawnInterval,
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        SubRemove,
				Description: "Remove this channel's spawn rule",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        SubList,
				Description: "List spawn rules in this server",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        SubStatus,
				Description: "Show this channel's rule and active object",
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

		switch sub.Name {
		case SubList:
			sendEmbed(s, i, createEmbed("📜 Spawn Rules", formatRuleList(svc.Game.ListRules(i.GuildID)), ColorInfo, ""))
			return
		case SubStatus:
			sendEmbed(s, i, createEmbed("📡 Spawn Status", formatStatus(svc.Game.Status(i.ChannelID), time.Now()), ColorInfo, ""))
			return
		}

		user := getInteractionUser(i)
		if err := svc.Game.AuthorizeAdmin(ctx, user.ID, isGuildAdmin(i)); err != nil {
			respondFriendlyError(ctx, s, i, err)
			return
		}

		var (
			msg string
			err error
		)
		args := optionMap(sub.Options)
		switch sub.Name {
		case SubProbability:
			p := args[OptValue].FloatValue()
			var kept bool
			_, kept, err = svc.Game.SetProbability(ctx, i.ChannelID, i.GuildID, p)
			msg = ruleUpdateMessage(kept, fmt.Sprintf(MsgProbabilitySetFmt, p, i.ChannelID))
		case SubTime:
			secs := int(args[OptSeconds].IntValue())
			var kept bool
			_, kept, err = svc.Game.SetInterval(ctx, i.ChannelID, i.GuildID, secs)
			msg = ruleUpdateMessage(kept, fmt.Sprintf(MsgIntervalSetFmt, secs, i.ChannelID))
		case SubRemove:
			var removed bool
			removed, err = svc.Game.RemoveRule(ctx, i.ChannelID)
			msg = MsgNoRule
			if removed {
				msg = MsgRuleRemoved
			}
		}
		if err != nil {
			respondFriendlyError(ctx, s, i, err)
			return
		}

		sendEmbed(s, i, createEmbed("⚙️ Spawn Rule Updated", msg, ColorSuccess, FooterMathCatchAdmin))
	}

	return cmd, handler
}

func ruleUpdateMessage(kept bool, setMsg string) string {
	if !kept {
		return MsgRuleRemoved
	}
	return setMsg
}

func formatRule(r domain.SpawnRule) string {
	var parts []string
	if r.Probability > 0 {
		parts = append(parts, fmt.Sprintf("probability **%g**", r.Probability))
	}
	if r.Interval > 0 {
		parts = append(parts, fmt.Sprintf("every **%ds**", r.Interval))
	}
	return strings.Join(parts, ", ")
}

func formatRuleList(rules []domain.SpawnRule) string {
	if len(rules) == 0 {
		return MsgNoRules
	}
	lines := make([]string, 0, len(rules))
	for _, r := range rules {
		lines = append(lines, fmt.Sprintf("<#%s>: %s", r.ChannelID, formatRule(r)))
	}
	return strings.Join(lines, "\n")
}

func formatStatus(st spawn.Status, now time.Time) string {
	var lines []string
	if st.Rule == nil {
		lines = append(lines, MsgNoRule)
	} else {
		lines = append(lines, "Rule: "+formatRule(*st.Rule))
	}

	if st.Active != nil {
		lines = append(lines, fmt.Sprintf("Active object: `%s` (%s)", st.Active.Item.Key, st.Active.Trigger))
	} else {
		lines = append(lines, "No active object.")
	}

	if st.NextInterval != nil {
		wait := st.NextInterval.Sub(now)
		if wait < 0 {
			wait = 0
		}
		lines = append(lines, fmt.Sprintf("Next interval spawn in **%ds**", int(wait.Round(time.Second).Seconds())))
	}
	if st.LastSpawn != nil {
		lines = append(lines, fmt.Sprintf("Last spawn <t:%d:R>", st.LastSpawn.Unix()))
	}
	return strings.Join(lines, "\n")
}
