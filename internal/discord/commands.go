package discord

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/text/language"

	"github.com/osse101/MathCatch_Go/internal/cooldown"
	"github.com/osse101/MathCatch_Go/internal/domain"
	"github.com/osse101/MathCatch_Go/internal/logger"
)

// CommandHandler handles a slash command
type CommandHandler func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, svc *Services)

// CommandRegistry holds the registered commands
type CommandRegistry struct {
	Commands map[string]*discordgo.ApplicationCommand
	Handlers map[string]CommandHandler
}

// NewCommandRegistry creates a new registry
func NewCommandRegistry() *CommandRegistry {
	return &CommandRegistry{
		Commands: make(map[string]*discordgo.ApplicationCommand),
		Handlers: make(map[string]CommandHandler),
	}
}

// Register adds a command to the registry
func (r *CommandRegistry) Register(cmd *discordgo.ApplicationCommand, handler CommandHandler) {
	r.Commands[cmd.Name] = cmd
	r.Handlers[cmd.Name] = handler
}

// DefaultRegistry returns a registry with every game command
func DefaultRegistry() *CommandRegistry {
	r := NewCommandRegistry()
	for _, c := range []func() (*discordgo.ApplicationCommand, CommandHandler){
		PingCommand,
		SpawnRulesCommand,
		SummonCommand,
		InventoryCommand,
		CompletionCommand,
		RemainingCommand,
		LeaderboardCommand,
		CountObjectsCommand,
		RoleCommand,
	} {
		r.Register(c())
	}
	return r
}

// Handle processes an interaction
func (r *CommandRegistry) Handle(s *discordgo.Session, i *discordgo.InteractionCreate, svc *Services) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	name := i.ApplicationCommandData().Name
	h, ok := r.Handlers[name]
	if !ok {
		slog.Warn(LogMsgUnknownCommand, "command", name)
		return
	}

	RecordCommand()
	ctx := logger.WithRequestID(context.Background(), logger.GenerateRequestID())
	h(ctx, s, i, svc)
}

// RegisterCommands intelligently registers/updates commands with Discord
// Only performs updates if commands have changed to avoid rate limits
func (b *Bot) RegisterCommands(registry *CommandRegistry, forceUpdate bool) error {
	slog.Info(LogMsgCommandsChecking)

	existingCmds, err := b.Session.ApplicationCommands(b.AppID, "")
	if err != nil {
		return fmt.Errorf("failed to fetch existing commands: %w", err)
	}

	desiredCmds := make([]*discordgo.ApplicationCommand, 0, len(registry.Commands))
	for _, cmd := range registry.Commands {
		desiredCmds = append(desiredCmds, cmd)
	}

	if forceUpdate {
		slog.Info(LogMsgCommandsForced, "count", len(desiredCmds))
		if _, err := b.Session.ApplicationCommandBulkOverwrite(b.AppID, "", desiredCmds); err != nil {
			return fmt.Errorf("failed to bulk overwrite commands: %w", err)
		}
		return nil
	}

	if commandsEqual(existingCmds, desiredCmds) {
		slog.Info(LogMsgCommandsUnchanged, "count", len(existingCmds))
		return nil
	}

	slog.Info(LogMsgCommandsChanged,
		"existing", len(existingCmds),
		"desired", len(desiredCmds))

	if _, err := b.Session.ApplicationCommandBulkOverwrite(b.AppID, "", desiredCmds); err != nil {
		return fmt.Errorf("failed to update commands: %w", err)
	}

	slog.Info(LogMsgCommandsUpdated, "count", len(desiredCmds))
	return nil
}

// commandsEqual checks if two command sets are equivalent
func commandsEqual(existing, desired []*discordgo.ApplicationCommand) bool {
	if len(existing) != len(desired) {
		return false
	}

	existingMap := make(map[string]*discordgo.ApplicationCommand, len(existing))
	for _, cmd := range existing {
		existingMap[cmd.Name] = cmd
	}

	for _, d := range desired {
		e, ok := existingMap[d.Name]
		if !ok || !commandEqual(e, d) {
			return false
		}
	}
	return true
}

// commandEqual checks if two commands are equivalent
func commandEqual(a, b *discordgo.ApplicationCommand) bool {
	if a.Name != b.Name || a.Description != b.Description {
		return false
	}

	if (a.DefaultMemberPermissions == nil) != (b.DefaultMemberPermissions == nil) {
		return false
	}
	if a.DefaultMemberPermissions != nil && *a.DefaultMemberPermissions != *b.DefaultMemberPermissions {
		return false
	}

	return optionsEqual(a.Options, b.Options)
}

func optionsEqual(a, b []*discordgo.ApplicationCommandOption) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !optionEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

// optionEqual checks if two command options are equivalent, subcommand options included
func optionEqual(a, b *discordgo.ApplicationCommandOption) bool {
	if a.Type != b.Type || a.Name != b.Name || a.Description != b.Description || a.Required != b.Required {
		return false
	}

	if len(a.Choices) != len(b.Choices) {
		return false
	}
	for i := range a.Choices {
		if a.Choices[i].Name != b.Choices[i].Name || fmt.Sprint(a.Choices[i].Value) != fmt.Sprint(b.Choices[i].Value) {
			return false
		}
	}

	return optionsEqual(a.Options, b.Options)
}

// deferResponse acknowledges an interaction with a deferred message.
// Returns false if deferral failed (should return early from handler).
func deferResponse(s *discordgo.Session, i *discordgo.InteractionCreate) bool {
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	}); err != nil {
		slog.Error(LogMsgDeferFailed, "error", err)
		return false
	}
	return true
}

// respondText answers an interaction immediately
func respondText(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Content: content},
	}); err != nil {
		slog.Error(LogMsgRespondFailed, "error", err)
	}
}

// respondError replaces a deferred response with a plain message
func respondError(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Content: &message,
	}); err != nil {
		slog.Error(LogMsgEditFailed, "error", err)
	}
}

// respondFriendlyError logs err and answers with a message users can act on
func respondFriendlyError(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, err error) {
	logger.FromContext(ctx).Warn(LogMsgCommandFailed, "command", i.ApplicationCommandData().Name, "error", err)
	respondError(s, i, formatFriendlyError(err))
}

// formatFriendlyError maps domain errors to user-facing messages
func formatFriendlyError(err error) string {
	var cd cooldown.ErrOnCooldown
	switch {
	case errors.As(err, &cd):
		return fmt.Sprintf(MsgWaitForFmt, MsgCooldownActive, cd.Remaining.Round(time.Second))
	case errors.Is(err, domain.ErrOnCooldown):
		return MsgCooldownActive
	case errors.Is(err, domain.ErrNotPermitted):
		return MsgNotPermitted
	case errors.Is(err, domain.ErrChannelActive):
		return MsgChannelActive
	case errors.Is(err, domain.ErrEmptyCatalog):
		return MsgEmptyCatalog
	case errors.Is(err, domain.ErrInvalidRule):
		return MsgInvalidRule
	case errors.Is(err, domain.ErrInvalidRole):
		return MsgInvalidRole
	case errors.Is(err, domain.ErrStorageUnavailable):
		return MsgUnavailable
	default:
		return MsgGenericError
	}
}

// sendEmbed replaces a deferred response with an embed
func sendEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) {
	if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Embeds: &[]*discordgo.MessageEmbed{embed},
	}); err != nil {
		slog.Error(LogMsgEditFailed, "error", err)
	}
}

// createEmbed creates a standard embed. An empty footer defaults to FooterMathCatch.
func createEmbed(title, description string, color int, footerText string) *discordgo.MessageEmbed {
	if footerText == "" {
		footerText = FooterMathCatch
	}
	return &discordgo.MessageEmbed{
		Title:       title,
		Description: truncate(description, MaxEmbedDescription),
		Color:       color,
		Footer: &discordgo.MessageEmbedFooter{
			Text: footerText,
		},
	}
}

// truncate cuts s to at most limit bytes on a line boundary where possible
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := s[:limit-len(MsgTruncated)]
	if idx := strings.LastIndexByte(cut, '\n'); idx > 0 {
		cut = cut[:idx]
	}
	return strings.ToValidUTF8(cut, "") + MsgTruncated
}

// getInteractionUser extracts the user from an interaction.
// Handles both guild (i.Member.User) and DM (i.User) contexts.
func getInteractionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}

// isGuildAdmin reports whether the invoking member has the Administrator permission
func isGuildAdmin(i *discordgo.InteractionCreate) bool {
	return i.Member != nil && i.Member.Permissions&discordgo.PermissionAdministrator != 0
}

// getOptions extracts top-level command options from an interaction
func getOptions(i *discordgo.InteractionCreate) []*discordgo.ApplicationCommandInteractionDataOption {
	return i.ApplicationCommandData().Options
}

// optionMap indexes options by name
func optionMap(opts []*discordgo.ApplicationCommandInteractionDataOption) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	m := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(opts))
	for _, o := range opts {
		m[o.Name] = o
	}
	return m
}

// targetUserID returns the optional user option's ID, or the invoker's
func targetUserID(i *discordgo.InteractionCreate) string {
	if opt, ok := optionMap(getOptions(i))[OptUser]; ok {
		if id, ok := opt.Value.(string); ok && id != "" {
			return id
		}
	}
	return getInteractionUser(i).ID
}

// interactionLanguage maps the client's locale to a catalog language, e.g. "de" for "de-DE"
func interactionLanguage(i *discordgo.InteractionCreate) string {
	tag, err := language.Parse(string(i.Locale))
	if err != nil {
		return domain.DefaultLanguage
	}
	base, _ := tag.Base()
	return base.String()
}
