package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/osse101/MathCatch_Go/internal/bootstrap"
	"github.com/osse101/MathCatch_Go/internal/catching"
	"github.com/osse101/MathCatch_Go/internal/clock"
	"github.com/osse101/MathCatch_Go/internal/config"
	"github.com/osse101/MathCatch_Go/internal/discord"
	"github.com/osse101/MathCatch_Go/internal/game"
	"github.com/osse101/MathCatch_Go/internal/inventory"
	"github.com/osse101/MathCatch_Go/internal/permission"
	"github.com/osse101/MathCatch_Go/internal/scheduler"
	"github.com/osse101/MathCatch_Go/internal/server"
	"github.com/osse101/MathCatch_Go/internal/spawn"
	"github.com/osse101/MathCatch_Go/internal/spawnrule"
	"github.com/osse101/MathCatch_Go/internal/worker"
)

// shutdownTimeout bounds graceful shutdown
const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("MathCatch failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	warnings, err := config.CheckEnv()
	if err != nil {
		return fmt.Errorf("environment: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		return err
	}
	defer logFile.Close()
	for _, w := range warnings {
		slog.Warn("Environment check", "warning", w)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cat, err := bootstrap.LoadCatalog(cfg.ItemsPath)
	if err != nil {
		return err
	}

	st, err := bootstrap.OpenStorage(ctx, cfg)
	if err != nil {
		return err
	}

	bus, deadLetter, err := bootstrap.InitializeEventSystem(cfg.DeadLetterPath)
	if err != nil {
		st.Close()
		return err
	}

	clk := clock.NewRealClock()

	rules := spawnrule.NewRegistry(st.Rules, bus)
	if err := rules.Load(ctx); err != nil {
		st.Close()
		return err
	}

	session, err := discord.NewSession(cfg.DiscordToken)
	if err != nil {
		st.Close()
		return err
	}
	notifier := discord.NewNotifier(session)

	// Interval firings run on the worker pool, one ticker per channel feeds it
	pool := worker.NewPool(cfg.WorkerCount, cfg.WorkerQueueSize)
	pool.Start()
	timers := scheduler.New(pool)

	table := spawn.NewTable(cfg.SpawnExpiry, clk)
	spawner := spawn.NewScheduler(table, rules, cat, timers, notifier, bus, spawn.Options{
		FallbackChance:  cfg.FallbackDropChance,
		AllowedChannels: cfg.AllowedChannels,
		Clock:           clk,
	})
	spawner.Subscribe(bus)

	expiry := worker.NewExpiryWorker(table, bus, clk)
	expiry.Subscribe(bus)

	inv := inventory.NewService(st.Inventory, cat, bus)
	resolver := catching.NewResolver(table, catching.NewMatcher(cfg.CatchKeywords, cfg.FuzzyMatching), inv, notifier, bus, clk)
	perms := permission.NewChecker(cfg.AdminIDs, st.Roles)

	engine := game.NewEngine(game.Deps{
		Catalog:       cat,
		Spawner:       spawner,
		Resolver:      resolver,
		Inventory:     inv,
		Rules:         rules,
		Perms:         perms,
		Cooldowns:     st.Cooldowns,
		CommandPrefix: cfg.CommandPrefix,
	})

	if err := bootstrap.RegisterEventHandlers(bootstrap.EventHandlerDependencies{
		EventBus:       bus,
		DeadLetter:     deadLetter,
		ActiveSpawns:   table.Len,
		IntervalTimers: timers.Len,
	}); err != nil {
		st.Close()
		return err
	}

	spawner.Start(ctx)

	bot := discord.New(session, discord.Config{
		Token:       cfg.DiscordToken,
		AppID:       cfg.DiscordAppID,
		ForceUpdate: cfg.DiscordForceUpdate,
	}, &discord.Services{Game: engine, Collection: inv, Roles: perms})

	srv := server.NewServer(server.Options{
		Port:           cfg.Port,
		APIKey:         cfg.APIKey,
		TrustedProxies: cfg.TrustedProxies,
		Clock:          clk,
		DiscordHealth:  bot.HandleHealth,
	}, st.Pool, engine, inv)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Start()
	}()

	components := bootstrap.ShutdownComponents{
		Server:       srv,
		Spawner:      spawner,
		Workers:      pool,
		ExpiryWorker: expiry,
		DeadLetter:   deadLetter,
		Storage:      st,
	}

	if err := bot.Start(); err != nil {
		shutdown(components)
		return err
	}
	components.Bot = bot

	select {
	case <-ctx.Done():
	case err = <-serverErr:
		if err == nil {
			err = errors.New("http server exited")
		}
	}

	shutdown(components)
	return err
}

func shutdown(c bootstrap.ShutdownComponents) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	bootstrap.GracefulShutdown(ctx, c)
}
