package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ldessaigne/comptoir/internal/domain"
)

// CategoryIndex is a read-through cache over the categories collection.
// Categories drive promotions and listing filters everywhere downstream, so a
// store failure here propagates instead of degrading to an empty set.
type CategoryIndex struct {
	store      domain.RecordStore
	collection string
	ttl        time.Duration
	now        func() time.Time

	mu      sync.RWMutex
	all     []domain.Category
	byID    map[string]domain.Category
	bySlug  map[string]domain.Category
	expires time.Time
}

func NewCategoryIndex(store domain.RecordStore, collection string, ttl time.Duration) *CategoryIndex {
	return &CategoryIndex{
		store:      store,
		collection: collection,
		ttl:        ttl,
		now:        time.Now,
	}
}

// LoadAll returns every category, refreshing the cache when the TTL elapsed.
// Refreshes are last-writer-wins; staleness within the TTL is tolerated.
func (ix *CategoryIndex) LoadAll(ctx context.Context) ([]domain.Category, error) {
	ix.mu.RLock()
	if ix.all != nil && ix.now().Before(ix.expires) {
		cached := ix.all
		ix.mu.RUnlock()
		return cached, nil
	}
	ix.mu.RUnlock()

	recs, err := ix.store.GetFullList(ctx, ix.collection, 0, domain.ListOptions{Sort: "name"})
	if err != nil {
		return nil, err
	}
	all := make([]domain.Category, 0, len(recs))
	byID := make(map[string]domain.Category, len(recs))
	bySlug := make(map[string]domain.Category, len(recs))
	for _, rec := range recs {
		cat, err := domain.CategoryFromRecord(rec)
		if err != nil {
			log.Warn().Err(err).Msg("skipping malformed category record")
			continue
		}
		all = append(all, *cat)
		byID[cat.ID] = *cat
		bySlug[cat.Slug] = *cat
	}

	ix.mu.Lock()
	ix.all = all
	ix.byID = byID
	ix.bySlug = bySlug
	ix.expires = ix.now().Add(ix.ttl)
	ix.mu.Unlock()
	return all, nil
}

// ByID returns the id → category map backing price resolution.
func (ix *CategoryIndex) ByID(ctx context.Context) (map[string]domain.Category, error) {
	if _, err := ix.LoadAll(ctx); err != nil {
		return nil, err
	}
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.byID, nil
}

func (ix *CategoryIndex) FindBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	if _, err := ix.LoadAll(ctx); err != nil {
		return nil, err
	}
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	if cat, ok := ix.bySlug[slug]; ok {
		return &cat, nil
	}
	return nil, domain.ErrNotFound
}

// ChildrenOf returns the direct children of a category. One level only: the
// store does not guarantee the parent graph is acyclic, so traversal depth is
// bounded here rather than trusting the data.
func (ix *CategoryIndex) ChildrenOf(ctx context.Context, id string) ([]domain.Category, error) {
	all, err := ix.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	var children []domain.Category
	for _, cat := range all {
		if cat.ID != id && cat.HasParent(id) {
			children = append(children, cat)
		}
	}
	return children, nil
}
