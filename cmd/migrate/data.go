package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/osse101/MathCatch_Go/internal/bootstrap"
	"github.com/osse101/MathCatch_Go/internal/config"
	"github.com/osse101/MathCatch_Go/internal/event"
	"github.com/osse101/MathCatch_Go/internal/inventory"
	"github.com/osse101/MathCatch_Go/internal/spawnrule"
)

// openStorage opens the repositories and brings the schema up to date first
func openStorage(ctx context.Context) (*config.Config, *bootstrap.Storage, error) {
	cfg, err := config.LoadStorage()
	if err != nil {
		return nil, nil, err
	}
	cfg.MigrateOnStartup = true

	store, err := bootstrap.OpenStorage(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, store, nil
}

// ImportRulesCommand loads spawn rules from a JSON rule file
type ImportRulesCommand struct{ out io.Writer }

func (c *ImportRulesCommand) Name() string { return "import-rules" }
func (c *ImportRulesCommand) Description() string {
	return "Import spawn rules from a JSON file (import-rules <file>)"
}

func (c *ImportRulesCommand) Run(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errors.New(errMsgFileNeeded)
	}

	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	rules, err := spawnrule.ImportJSON(f)
	if err != nil {
		return err
	}

	_, store, err := openStorage(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	registry := spawnrule.NewRegistry(store.Rules, nil)
	for _, rule := range rules {
		if _, err := registry.Set(ctx, rule); err != nil {
			return fmt.Errorf("channel %s: %w", rule.ChannelID, err)
		}
	}
	printSuccess(c.out, "imported %d rules", len(rules))
	return nil
}

// PruneCommand removes inventory rows for items no longer in the catalog
type PruneCommand struct{ out io.Writer }

func (c *PruneCommand) Name() string { return "prune" }
func (c *PruneCommand) Description() string {
	return "Delete caught items that are missing from the catalog"
}

func (c *PruneCommand) Run(ctx context.Context, _ []string) error {
	cfg, store, err := openStorage(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	cat, err := bootstrap.LoadCatalog(cfg.ItemsPath)
	if err != nil {
		return err
	}

	removed, err := bootstrap.PruneInventory(ctx, inventory.NewService(store.Inventory, cat, nil))
	if err != nil {
		return err
	}
	printSuccess(c.out, "pruned %d rows", removed)
	return nil
}

// DeadLettersCommand lists catches that were awarded but never stored
type DeadLettersCommand struct{ out io.Writer }

func (c *DeadLettersCommand) Name() string { return "dead-letters" }
func (c *DeadLettersCommand) Description() string {
	return "List catches that failed to persist (dead-letters [file])"
}

func (c *DeadLettersCommand) Run(_ context.Context, args []string) error {
	path := os.Getenv("DEAD_LETTER_PATH")
	if len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		path = config.DefaultDeadLetterPath
	}

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		printInfo(c.out, "no dead letters at %s", path)
		return nil
	}
	if err != nil {
		return err
	}
	defer f.Close()

	entries, err := event.ReadDeadLetters(f)
	if err != nil {
		return err
	}
	for _, e := range entries {
		p, err := event.DecodePayload[event.CatchPersistFailedPayloadV1](e.Event.Payload)
		if err != nil {
			printError(c.out, "%s  %s  undecodable payload: %v", e.Timestamp.Format(timestampLayout), e.Event.Type, err)
			continue
		}
		fmt.Fprintf(c.out, "%s  user=%s item=%s channel=%s  %s\n",
			e.Timestamp.Format(timestampLayout), p.UserID, p.ItemKey, p.ChannelID, e.LastError)
	}
	printSuccess(c.out, "%d dead letters", len(entries))
	return nil
}
