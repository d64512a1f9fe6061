package usecase

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/ldessaigne/comptoir/internal/domain"
	"github.com/ldessaigne/comptoir/internal/storefilter"
)

// Recommender selects related products with a three-tier fallback: shared
// category through the plural relation field, same through the singular
// spelling, then simply the latest products. Accumulation only ever grows and
// is deduplicated by id, so a tier can never displace an earlier pick. Fewer
// than limit results is normal on a small catalog, not an error.
type Recommender struct {
	store      domain.RecordStore
	collection string
}

func NewRecommender(store domain.RecordStore, collection string) *Recommender {
	return &Recommender{store: store, collection: collection}
}

func (r *Recommender) Recommend(ctx context.Context, current *domain.Product, limit int) []domain.Product {
	if limit <= 0 {
		return nil
	}
	var picked []domain.Product
	seen := map[string]struct{}{current.ID: {}}

	for _, tier := range r.tiers(current, &picked) {
		if len(picked) >= limit {
			break
		}
		filter := tier()
		rp, err := r.store.GetList(ctx, r.collection, 1, limit-len(picked), domain.ListOptions{Filter: filter, Sort: "-created"})
		if err != nil {
			log.Warn().Err(err).Msg("recommendation tier failed, trying next")
			continue
		}
		for _, rec := range rp.Items {
			p, err := domain.ProductFromRecord(rec)
			if err != nil {
				log.Warn().Err(err).Msg("skipping malformed recommendation record")
				continue
			}
			if _, dup := seen[p.ID]; dup {
				continue
			}
			seen[p.ID] = struct{}{}
			picked = append(picked, *p)
			if len(picked) >= limit {
				break
			}
		}
	}
	return picked
}

// tiers returns filter builders rather than filters: exclusions must reflect
// what earlier tiers already collected at the moment a tier runs.
func (r *Recommender) tiers(current *domain.Product, picked *[]domain.Product) []func() string {
	var out []func() string
	if len(current.CategoryIDs) > 0 {
		for _, field := range []string{"categories", "category"} {
			field := field
			out = append(out, func() string {
				return storefilter.And(
					r.baseFilter(current, *picked),
					membership(field, current.CategoryIDs),
				)
			})
		}
	}
	out = append(out, func() string {
		return r.baseFilter(current, *picked)
	})
	return out
}

func (r *Recommender) baseFilter(current *domain.Product, picked []domain.Product) string {
	parts := []string{
		storefilter.Eq("active", true),
		storefilter.Ne("inView", false),
		storefilter.Ne("id", current.ID),
	}
	for _, p := range picked {
		parts = append(parts, storefilter.Ne("id", p.ID))
	}
	return storefilter.And(parts...)
}
