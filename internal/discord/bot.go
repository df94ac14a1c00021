package discord

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/MathCatch_Go/internal/logger"
)

// Bot represents the Discord bot
type Bot struct {
	Session     *discordgo.Session
	AppID       string
	Registry    *CommandRegistry
	Services    *Services
	forceUpdate bool
}

// Config holds the bot configuration
type Config struct {
	Token       string
	AppID       string
	ForceUpdate bool
}

// NewSession creates a gateway session with the intents the game needs.
// The session is created before the bot so the notifier can be handed to the engine.
func NewSession(token string) (*discordgo.Session, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("error creating Discord session: %w", err)
	}
	s.Identify.Intents = Intents
	return s, nil
}

// New creates a new Discord bot on an existing session
func New(s *discordgo.Session, cfg Config, svc *Services) *Bot {
	return &Bot{
		Session:     s,
		AppID:       cfg.AppID,
		Registry:    DefaultRegistry(),
		Services:    svc,
		forceUpdate: cfg.ForceUpdate,
	}
}

// Start opens the gateway and syncs slash commands
func (b *Bot) Start() error {
	b.Session.AddHandler(b.ready)
	b.Session.AddHandler(b.interactionCreate)
	b.Session.AddHandler(b.messageCreate)

	if err := b.Session.Open(); err != nil {
		return fmt.Errorf("error opening connection: %w", err)
	}

	if err := b.RegisterCommands(b.Registry, b.forceUpdate); err != nil {
		return err
	}

	slog.Info(LogMsgBotRunning)
	return nil
}

// Stop stops the bot
func (b *Bot) Stop() error {
	return b.Session.Close()
}

func (b *Bot) ready(s *discordgo.Session, r *discordgo.Ready) {
	slog.Info(LogMsgBotReady, "user", r.User.Username, "guilds", len(r.Guilds))
}

func (b *Bot) interactionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	b.Registry.Handle(s, i, b.Services)
}

// messageCreate feeds every channel message to the game. discordgo runs each event
// in its own goroutine, so concurrent catch attempts reach the engine concurrently.
func (b *Bot) messageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	msg, ok := toDomainMessage(m)
	if !ok {
		return
	}
	ctx := logger.WithRequestID(context.Background(), logger.GenerateRequestID())
	b.Services.Game.HandleMessage(ctx, msg)
}
