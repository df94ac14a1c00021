package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/osse101/MathCatch_Go/internal/catalog"
)

// LoadCatalog loads the item catalog from path. An empty catalog is an error:
// nothing could ever spawn.
func LoadCatalog(path string) (*catalog.Static, error) {
	cat, err := catalog.LoadCSV(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgLoadCatalog, err)
	}
	if cat.Len() == 0 {
		return nil, errors.New(ErrMsgCatalogEmpty)
	}

	counts := make(map[string]int)
	for category, items := range cat.ByCategory() {
		counts[string(category)] = len(items)
	}
	slog.Info(LogMsgCatalogLoaded, "path", path, "items", cat.Len(), "categories", counts)
	return cat, nil
}

// Pruner removes inventory rows for items that left the catalog
type Pruner interface {
	Prune(ctx context.Context) (int64, error)
}

// PruneInventory runs p and logs how many rows went away
func PruneInventory(ctx context.Context, p Pruner) (int64, error) {
	removed, err := p.Prune(ctx)
	if err != nil {
		return 0, err
	}
	slog.Info(LogMsgInventoryPruned, "rows", removed)
	return removed, nil
}
