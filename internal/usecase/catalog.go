package usecase

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/ldessaigne/comptoir/internal/domain"
	"github.com/ldessaigne/comptoir/internal/storefilter"
)

// Catalog is the resolution engine's front door: it turns raw store records
// into priced, variant-aware product views for listings, detail pages and
// recommendation widgets.
type Catalog struct {
	store       domain.RecordStore
	products    string
	index       *CategoryIndex
	variables   *VariableCatalog
	variants    *VariantResolver
	composer    *ListingComposer
	recommender *Recommender
}

func NewCatalog(store domain.RecordStore, productsCollection string, index *CategoryIndex, variables *VariableCatalog, variants *VariantResolver, composer *ListingComposer, recommender *Recommender) *Catalog {
	return &Catalog{
		store:       store,
		products:    productsCollection,
		index:       index,
		variables:   variables,
		variants:    variants,
		composer:    composer,
		recommender: recommender,
	}
}

// List resolves a listing page. Individual malformed records are skipped with
// a warning; the page always renders with whatever could be resolved.
func (c *Catalog) List(ctx context.Context, q domain.ListingQuery) (*domain.ListingResult, error) {
	q = q.Clamped()

	strategies, sort, err := c.composer.Compose(ctx, q)
	if err != nil {
		return nil, err
	}
	byID, err := c.index.ByID(ctx)
	if err != nil {
		return nil, err
	}
	rp, err := runStrategies(ctx, c.store, c.products, q.Page, q.PerPage, sort, strategies)
	if err != nil {
		return nil, err
	}

	items := make([]domain.ProductView, 0, len(rp.Items))
	for _, rec := range rp.Items {
		p, err := domain.ProductFromRecord(rec)
		if err != nil {
			log.Warn().Err(err).Msg("skipping malformed product record")
			continue
		}
		items = append(items, c.materialize(*p, byID))
	}
	return &domain.ListingResult{
		Items:      items,
		Page:       rp.Page,
		PerPage:    rp.PerPage,
		TotalItems: rp.TotalItems,
		TotalPages: rp.TotalPages,
	}, nil
}

// GetBySlug resolves a single product for the detail page, variant family
// included. A product that cannot be resolved is a distinct not-found, never a
// partially built view.
func (c *Catalog) GetBySlug(ctx context.Context, slug string) (*domain.ProductView, *domain.VariantInfo, error) {
	var (
		product *domain.Product
		byID    map[string]domain.Category
	)

	// The three fetches have no data dependency on each other.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := c.fetchBySlug(gctx, slug)
		if err != nil {
			return err
		}
		product = p
		return nil
	})
	g.Go(func() error {
		m, err := c.index.ByID(gctx)
		if err != nil {
			return err
		}
		byID = m
		return nil
	})
	g.Go(func() error {
		// Best effort: variable resolution has its own fallbacks.
		if err := c.variables.Warm(gctx); err != nil {
			log.Warn().Err(err).Msg("variable prefetch failed")
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	view := c.materialize(*product, byID)
	info, err := c.variants.Resolve(ctx, product)
	if err != nil {
		return nil, nil, err
	}
	return &view, info, nil
}

// Related returns up to limit recommendations. Failures degrade to an empty
// list; a broken widget must not take the page down with it.
func (c *Catalog) Related(ctx context.Context, current *domain.ProductView, limit int) []domain.ProductView {
	byID, err := c.index.ByID(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("recommendations degraded: category index unavailable")
		byID = map[string]domain.Category{}
	}
	picks := c.recommender.Recommend(ctx, &current.Product, limit)
	views := make([]domain.ProductView, 0, len(picks))
	for _, p := range picks {
		views = append(views, c.materialize(p, byID))
	}
	return views
}

func (c *Catalog) fetchBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	filter := storefilter.And(
		storefilter.Eq("slug", slug),
		storefilter.Eq("active", true),
		storefilter.Ne("inView", false),
	)
	rp, err := c.store.GetList(ctx, c.products, 1, 1, domain.ListOptions{Filter: filter})
	if err != nil {
		return nil, err
	}
	if len(rp.Items) == 0 {
		return nil, domain.ErrNotFound
	}
	p, err := domain.ProductFromRecord(rp.Items[0])
	if err != nil {
		log.Warn().Err(err).Str("slug", slug).Msg("product record failed validation")
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (c *Catalog) materialize(p domain.Product, byID map[string]domain.Category) domain.ProductView {
	view := domain.ProductView{
		Product: p,
		InStock: p.Stock > 0,
	}
	view.EffectivePromo, view.HasPromo = ResolvePromoPrice(p.Price, p.PromoPrice, p.CategoryIDs, byID)
	for _, img := range p.Images {
		if img == "" {
			continue
		}
		if strings.Contains(img, "://") {
			view.ImageURLs = append(view.ImageURLs, img)
			continue
		}
		view.ImageURLs = append(view.ImageURLs, c.store.FileURL(c.products, p.ID, img))
	}
	return view
}
