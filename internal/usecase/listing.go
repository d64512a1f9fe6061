package usecase

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/ldessaigne/comptoir/internal/domain"
	"github.com/ldessaigne/comptoir/internal/storefilter"
)

// QueryStrategy is one rung of a fallback ladder: a named, ready-to-send
// filter string. Strategies are alternatives for the same goal and are always
// tried strictly in order.
type QueryStrategy struct {
	Name   string
	Filter string
}

// ListingComposer translates a normalized listing request into store query
// strategies. The category relation field has been named both "categories"
// and "category" across schema versions, so category-filtered listings carry
// one strategy per spelling plus a final rung with no category condition at
// all: a drifted schema degrades the filter, never the page.
type ListingComposer struct {
	index *CategoryIndex
}

func NewListingComposer(index *CategoryIndex) *ListingComposer {
	return &ListingComposer{index: index}
}

func (lc *ListingComposer) Compose(ctx context.Context, q domain.ListingQuery) ([]QueryStrategy, string, error) {
	base := lc.baseFilter(q)

	categoryIDs, err := lc.categoryClosure(ctx, q.CategorySlug)
	if err != nil {
		return nil, "", err
	}
	sort := sortSyntax(q.Sort)
	if len(categoryIDs) == 0 {
		return []QueryStrategy{{Name: "base", Filter: base}}, sort, nil
	}
	return []QueryStrategy{
		{Name: "categories", Filter: storefilter.And(base, membership("categories", categoryIDs))},
		{Name: "category", Filter: storefilter.And(base, membership("category", categoryIDs))},
		{Name: "base", Filter: base},
	}, sort, nil
}

func (lc *ListingComposer) baseFilter(q domain.ListingQuery) string {
	parts := []string{
		storefilter.Eq("active", true),
		storefilter.Ne("inView", false),
	}
	if q.Query != "" {
		parts = append(parts, storefilter.Or(
			storefilter.Contains("name", q.Query),
			storefilter.Contains("sku", q.Query),
		))
	}
	if q.PromotionsOnly {
		// Store-level approximation: the filter language cannot see
		// category-driven overrides, only the product's own promo field.
		parts = append(parts, storefilter.Gt("promoPrice", 0))
	}
	if q.NewArrivalsOnly {
		parts = append(parts, storefilter.Eq("isNew", true))
	}
	return storefilter.And(parts...)
}

// categoryClosure resolves a slug to the category plus its direct children.
// One level deep, matching the shallow hierarchy the UI exposes. An unknown
// slug yields no condition rather than an empty listing.
func (lc *ListingComposer) categoryClosure(ctx context.Context, slug string) ([]string, error) {
	if slug == "" {
		return nil, nil
	}
	cat, err := lc.index.FindBySlug(ctx, slug)
	if errors.Is(err, domain.ErrNotFound) {
		log.Warn().Str("slug", slug).Msg("unknown category slug, listing unfiltered")
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	ids := []string{cat.ID}
	children, err := lc.index.ChildrenOf(ctx, cat.ID)
	if err != nil {
		return nil, err
	}
	for _, child := range children {
		ids = append(ids, child.ID)
	}
	return ids, nil
}

func membership(field string, ids []string) string {
	conds := make([]string, 0, len(ids))
	for _, id := range ids {
		conds = append(conds, storefilter.Contains(field, id))
	}
	return storefilter.Or(conds...)
}

func sortSyntax(key domain.SortKey) string {
	switch key {
	case domain.SortPriceAsc:
		return "price"
	case domain.SortPriceDesc:
		return "-price"
	case domain.SortLatest:
		return "-created"
	default:
		return "name"
	}
}

// runStrategies executes ladder rungs sequentially and returns the first
// success. Each attempt must finish before the next begins; a failure is
// "try the next rung", and only exhaustion surfaces the last error.
func runStrategies(ctx context.Context, store domain.RecordStore, collection string, page, perPage int, sort string, strategies []QueryStrategy) (domain.RecordPage, error) {
	var lastErr error
	for _, st := range strategies {
		rp, err := store.GetList(ctx, collection, page, perPage, domain.ListOptions{Filter: st.Filter, Sort: sort})
		if err != nil {
			log.Warn().Err(err).Str("strategy", st.Name).Msg("listing strategy failed, trying next")
			lastErr = err
			continue
		}
		return rp, nil
	}
	return domain.RecordPage{}, lastErr
}
