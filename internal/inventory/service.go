package inventory

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/osse101/MathCatch_Go/internal/catalog"
	"github.com/osse101/MathCatch_Go/internal/domain"
	"github.com/osse101/MathCatch_Go/internal/event"
	"github.com/osse101/MathCatch_Go/internal/logger"
	"github.com/osse101/MathCatch_Go/internal/repository"
)

// OwnedItem is one inventory line
type OwnedItem struct {
	Item     domain.Item `json:"item"`
	Name     string      `json:"name"`
	Quantity int         `json:"quantity"`
}

// Section groups owned items of one category
type Section struct {
	Category domain.Category `json:"category"`
	Items    []OwnedItem     `json:"items"`
}

// View is a user's inventory grouped by category in catalog display order
type View struct {
	UserID   string    `json:"user_id"`
	Sections []Section `json:"sections"`
	Total    int       `json:"total"`
}

// Completion is a user's progress through the catalog
type Completion struct {
	UserID  string  `json:"user_id"`
	Owned   int     `json:"owned"`
	Total   int     `json:"total"`
	Percent float64 `json:"percent"`
}

// Service records catches and answers collection queries
type Service struct {
	repo    repository.Inventory
	catalog catalog.Catalog
	bus     event.Bus
	cache   *ownedCache
}

// NewService creates an inventory service. bus may be nil.
func NewService(repo repository.Inventory, cat catalog.Catalog, bus event.Bus) *Service {
	return &Service{
		repo:    repo,
		catalog: cat,
		bus:     bus,
		cache:   newOwnedCache(OwnedCacheSize, OwnedCacheTTL),
	}
}

// Record credits one catch. Every call increments the count, so repeated catches of the same item add up.
// A failed write is reported and published for operators; it is never retried.
func (s *Service) Record(ctx context.Context, rec domain.CatchRecord) error {
	log := logger.FromContext(ctx)
	defer s.cache.Invalidate(rec.UserID)

	if err := s.repo.AddItem(ctx, rec.UserID, rec.ItemKey, CatchQuantity); err != nil {
		wrapped := fmt.Errorf("%w: %w", domain.ErrStorageUnavailable, err)
		log.Error(LogMsgPersistFailed, "userID", rec.UserID, "item", rec.ItemKey, "error", err)
		if s.bus != nil {
			if pubErr := s.bus.Publish(ctx, event.NewCatchPersistFailedEvent(rec, wrapped)); pubErr != nil {
				log.Warn(LogMsgPublishFailed, "error", pubErr)
			}
		}
		return wrapped
	}

	log.Debug(LogMsgCatchRecorded, "userID", rec.UserID, "item", rec.ItemKey)
	return nil
}

// Owned returns the user's item counts keyed by item
func (s *Service) Owned(ctx context.Context, userID string) (map[string]int, error) {
	if counts, ok := s.cache.Get(userID); ok {
		return counts, nil
	}

	gen := s.cache.Generation()
	entries, err := s.repo.GetInventory(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStorageUnavailable, err)
	}
	counts := make(map[string]int, len(entries))
	for _, e := range entries {
		if e.Quantity > 0 {
			counts[e.ItemKey] = e.Quantity
		}
	}
	s.cache.SetIfCurrent(userID, gen, counts)
	return counts, nil
}

// Inventory returns the user's items grouped by category, names rendered in lang
func (s *Service) Inventory(ctx context.Context, userID, lang string) (*View, error) {
	counts, err := s.Owned(ctx, userID)
	if err != nil {
		return nil, err
	}

	byCategory := make(map[domain.Category][]OwnedItem)
	view := &View{UserID: userID}
	for key, qty := range counts {
		item, ok := s.catalog.Lookup(key)
		if !ok {
			logger.FromContext(ctx).Debug(LogMsgUnknownInvItem, "userID", userID, "item", key)
			continue
		}
		byCategory[item.Category] = append(byCategory[item.Category], OwnedItem{
			Item:     item,
			Name:     item.DisplayName(lang),
			Quantity: qty,
		})
		view.Total += qty
	}

	for _, cat := range domain.Categories {
		items := byCategory[cat]
		if len(items) == 0 {
			continue
		}
		sort.Slice(items, func(i, j int) bool { return items[i].Item.Key < items[j].Item.Key })
		view.Sections = append(view.Sections, Section{Category: cat, Items: items})
	}
	return view, nil
}

// Completion returns how much of the catalog the user has caught, percent rounded to two places
func (s *Service) Completion(ctx context.Context, userID string) (Completion, error) {
	counts, err := s.Owned(ctx, userID)
	if err != nil {
		return Completion{}, err
	}

	c := Completion{UserID: userID, Total: s.CountObjects()}
	for key := range counts {
		if _, ok := s.catalog.Lookup(key); ok {
			c.Owned++
		}
	}
	if c.Total > 0 {
		c.Percent = math.Round(float64(c.Owned)*10000/float64(c.Total)) / 100
	}
	return c, nil
}

// Remaining returns the catalog items the user has not caught, ordered by key
func (s *Service) Remaining(ctx context.Context, userID string) ([]domain.Item, error) {
	counts, err := s.Owned(ctx, userID)
	if err != nil {
		return nil, err
	}

	var out []domain.Item
	for _, item := range s.catalog.All() {
		if _, owned := counts[item.Key]; !owned {
			out = append(out, item)
		}
	}
	return out, nil
}

// Leaderboard ranks users by distinct items caught
func (s *Service) Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}
	entries, err := s.repo.GetLeaderboard(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStorageUnavailable, err)
	}
	return entries, nil
}

// CountObjects returns the catalog size
func (s *Service) CountObjects() int {
	return len(s.catalog.All())
}

// Prune deletes inventory rows whose item is no longer in the catalog
func (s *Service) Prune(ctx context.Context) (int64, error) {
	items := s.catalog.All()
	keep := make([]string, 0, len(items))
	for _, item := range items {
		keep = append(keep, item.Key)
	}
	if len(keep) == 0 {
		return 0, domain.ErrEmptyCatalog
	}

	removed, err := s.repo.PruneItems(ctx, keep)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", domain.ErrStorageUnavailable, err)
	}
	s.cache.Clear()
	logger.FromContext(ctx).Info(LogMsgPruned, "removed", removed)
	return removed, nil
}
