package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ldessaigne/comptoir/internal/domain"
)

func newTestCatalog(store *stubStore) *Catalog {
	index := NewCategoryIndex(store, "categories", time.Minute)
	variables := NewVariableCatalog(store, "variables", "/img/placeholder.png", time.Minute)
	variants := NewVariantResolver(store, "products", variables, func(slug string) string {
		return "/product/" + slug
	})
	return NewCatalog(store, "products", index, variables, variants,
		NewListingComposer(index), NewRecommender(store, "products"))
}

func catalogStore() *stubStore {
	promoted := productRecord("p1", "tele-lux", 100)
	promoted["promoPrice"] = float64(80)
	promoted["categories"] = []any{"c1"}
	promoted["images"] = []any{"tv.png", "https://cdn.example.com/tv-hero.jpg"}

	plain := productRecord("p2", "cable-hdmi", 12.5)
	plain["stock"] = float64(0)

	return &stubStore{
		getFullList: func(collection string, _ int, _ domain.ListOptions) ([]domain.Record, error) {
			switch collection {
			case "categories":
				return []domain.Record{categoryRecord("c1", "televisions", nil, 30, true)}, nil
			case "variables":
				return nil, nil
			}
			return nil, nil
		},
		getList: func(_ string, page, perPage int, opts domain.ListOptions) (domain.RecordPage, error) {
			if strings.Contains(opts.Filter, `slug = "tele-lux"`) {
				return pageOf(promoted), nil
			}
			if strings.Contains(opts.Filter, `slug = `) {
				return domain.RecordPage{Page: 1, PerPage: 1}, nil
			}
			return domain.RecordPage{
				Items:      []domain.Record{promoted, plain, {"name": "sans-id"}},
				Page:       page,
				PerPage:    perPage,
				TotalItems: 3,
				TotalPages: 1,
			}, nil
		},
	}
}

func TestCatalog_List(t *testing.T) {
	c := newTestCatalog(catalogStore())

	result, err := c.List(context.Background(), domain.ListingQuery{Page: 1, PerPage: 24, Sort: domain.SortName})
	require.NoError(t, err)

	// The malformed record is skipped, never fails the listing.
	require.Len(t, result.Items, 2)
	assert.Equal(t, 3, result.TotalItems)

	promoted := result.Items[0]
	assert.Equal(t, "tele-lux", promoted.Slug)
	require.True(t, promoted.HasPromo)
	assert.Equal(t, 70.0, promoted.EffectivePromo, "category campaign wins over own promo")
	assert.True(t, promoted.InStock)
	require.Len(t, promoted.ImageURLs, 2)
	assert.Equal(t, "https://store.test/api/files/products/p1/tv.png", promoted.ImageURLs[0])
	assert.Equal(t, "https://cdn.example.com/tv-hero.jpg", promoted.ImageURLs[1], "absolute URLs pass through")

	plain := result.Items[1]
	assert.False(t, plain.HasPromo)
	assert.False(t, plain.InStock)
}

func TestCatalog_ListClampsPagination(t *testing.T) {
	store := catalogStore()
	c := newTestCatalog(store)

	_, err := c.List(context.Background(), domain.ListingQuery{Page: -3, PerPage: 500})
	require.NoError(t, err)
}

func TestCatalog_GetBySlug(t *testing.T) {
	c := newTestCatalog(catalogStore())

	t.Run("resolved view", func(t *testing.T) {
		view, variants, err := c.GetBySlug(context.Background(), "tele-lux")
		require.NoError(t, err)
		assert.Equal(t, 70.0, view.EffectivePromo)
		assert.Nil(t, variants, "no variant family on this product")
	})

	t.Run("unknown slug is a distinct not found", func(t *testing.T) {
		_, _, err := c.GetBySlug(context.Background(), "fantome")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestCatalog_GetBySlug_StoreDownPropagates(t *testing.T) {
	store := catalogStore()
	store.getList = func(string, int, int, domain.ListOptions) (domain.RecordPage, error) {
		return domain.RecordPage{}, domain.ErrStoreUnavailable
	}
	c := newTestCatalog(store)

	_, _, err := c.GetBySlug(context.Background(), "tele-lux")
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}

func TestCatalog_Related(t *testing.T) {
	store := catalogStore()
	c := newTestCatalog(store)

	current := &domain.ProductView{Product: domain.Product{ID: "p9", Slug: "actuel", CategoryIDs: []string{"c1"}}}
	views := c.Related(context.Background(), current, 2)
	require.Len(t, views, 2)
	for _, v := range views {
		assert.NotEqual(t, "p9", v.ID)
	}
	assert.True(t, views[0].HasPromo, "recommendations are fully materialized")
}

func TestCatalog_RelatedDegradesToEmpty(t *testing.T) {
	store := catalogStore()
	store.getList = func(string, int, int, domain.ListOptions) (domain.RecordPage, error) {
		return domain.RecordPage{}, domain.ErrStoreUnavailable
	}
	c := newTestCatalog(store)

	current := &domain.ProductView{Product: domain.Product{ID: "p9", CategoryIDs: []string{"c1"}}}
	assert.Empty(t, c.Related(context.Background(), current, 4))
}
