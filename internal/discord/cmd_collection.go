package discord

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/osse101/MathCatch_Go/internal/domain"
	"github.com/osse101/MathCatch_Go/internal/inventory"
)

var printer = message.NewPrinter(language.English)

func userOption(desc string) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionUser,
		Name:        OptUser,
		Description: desc,
	}
}

// InventoryCommand shows a user's caught objects by category
func InventoryCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        CmdInventory,
		Description: "View caught Math objects",
		Options:     []*discordgo.ApplicationCommandOption{userOption("Whose inventory to show")},
	}

	handler := func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, svc *Services) {
		if !deferResponse(s, i) {
			return
		}

		userID := targetUserID(i)
		view, err := svc.Collection.Inventory(ctx, userID, interactionLanguage(i))
		if err != nil {
			respondFriendlyError(ctx, s, i, err)
			return
		}

		sendEmbed(s, i, inventoryEmbed(userID, view))
	}

	return cmd, handler
}

func inventoryEmbed(userID string, view *inventory.View) *discordgo.MessageEmbed {
	embed := createEmbed("🎒 Inventory", fmt.Sprintf("<@%s>", userID), ColorPurple, "")
	if len(view.Sections) == 0 {
		embed.Description += "\n" + MsgInventoryEmpty
		return embed
	}

	for _, sec := range view.Sections {
		if len(embed.Fields) == MaxEmbedFields {
			break
		}
		lines := make([]string, 0, len(sec.Items))
		for _, it := range sec.Items {
			lines = append(lines, fmt.Sprintf("%s x%d", it.Name, it.Quantity))
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   string(sec.Category),
			Value:  truncate(strings.Join(lines, "\n"), MaxEmbedFieldValue),
			Inline: true,
		})
	}
	embed.Footer.Text = fmt.Sprintf("%s • %s caught", FooterMathCatch, printer.Sprintf("%d", view.Total))
	return embed
}

// CompletionCommand shows how much of the catalog a user has caught
func CompletionCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        CmdCompletion,
		Description: "Show collection progress",
		Options:     []*discordgo.ApplicationCommandOption{userOption("Whose progress to show")},
	}

	handler := func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, svc *Services) {
		if !deferResponse(s, i) {
			return
		}

		userID := targetUserID(i)
		c, err := svc.Collection.Completion(ctx, userID)
		if err != nil {
			respondFriendlyError(ctx, s, i, err)
			return
		}

		sendEmbed(s, i, createEmbed("📈 Completion", formatCompletion(c), ColorInfo, ""))
	}

	return cmd, handler
}

func formatCompletion(c inventory.Completion) string {
	return fmt.Sprintf(MsgCompletionFmt, c.UserID, printer.Sprintf("%d", c.Owned), printer.Sprintf("%d", c.Total), c.Percent)
}

// RemainingCommand lists the objects the invoker has not caught yet
func RemainingCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        CmdRemaining,
		Description: "List Math objects you have not caught yet",
	}

	handler := func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, svc *Services) {
		if !deferResponse(s, i) {
			return
		}

		items, err := svc.Collection.Remaining(ctx, getInteractionUser(i).ID)
		if err != nil {
			respondFriendlyError(ctx, s, i, err)
			return
		}

		sendEmbed(s, i, createEmbed("🧭 Remaining", formatRemaining(items, interactionLanguage(i)), ColorInfo, ""))
	}

	return cmd, handler
}

func formatRemaining(items []domain.Item, lang string) string {
	if len(items) == 0 {
		return MsgNothingRemaining
	}
	names := make([]string, 0, len(items))
	for _, it := range items {
		names = append(names, it.DisplayName(lang))
	}
	return fmt.Sprintf("**%s** left: %s", printer.Sprintf("%d", len(items)), strings.Join(names, ", "))
}

// LeaderboardCommand ranks users by distinct objects caught
func LeaderboardCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	minLimit := 1.0
	cmd := &discordgo.ApplicationCommand{
		Name:        CmdLeaderboard,
		Description: "Top collectors by distinct Math objects",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        OptLimit,
				Description: "How many users to show",
				MinValue:    &minLimit,
				MaxValue:    25,
			},
		},
	}

	handler := func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, svc *Services) {
		if !deferResponse(s, i) {
			return
		}

		limit := DefaultLeaderboardSize
		if opt, ok := optionMap(getOptions(i))[OptLimit]; ok {
			limit = int(opt.IntValue())
		}

		entries, err := svc.Collection.Leaderboard(ctx, limit)
		if err != nil {
			respondFriendlyError(ctx, s, i, err)
			return
		}

		sendEmbed(s, i, createEmbed("🏆 Leaderboard", formatLeaderboard(entries), ColorWarn, ""))
	}

	return cmd, handler
}

func formatLeaderboard(entries []domain.LeaderboardEntry) string {
	if len(entries) == 0 {
		return MsgLeaderboardEmpty
	}
	lines := make([]string, 0, len(entries))
	for n, e := range entries {
		lines = append(lines, fmt.Sprintf("%d. <@%s> - %s", n+1, e.UserID, printer.Sprintf("%d", e.Distinct)))
	}
	return strings.Join(lines, "\n")
}

// CountObjectsCommand reports the catalog size
func CountObjectsCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        CmdCountObjects,
		Description: "How many Math objects exist",
	}

	handler := func(_ context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, svc *Services) {
		respondText(s, i, fmt.Sprintf(MsgCountObjectsFmt, printer.Sprintf("%d", svc.Collection.CountObjects())))
	}

	return cmd, handler
}
