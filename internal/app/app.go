package app

import (
	"net/http"
	"strings"

	"github.com/ldessaigne/comptoir/internal/adapters/httpserver"
	"github.com/ldessaigne/comptoir/internal/adapters/recordstore"
	"github.com/ldessaigne/comptoir/internal/config"
	"github.com/ldessaigne/comptoir/internal/usecase"
)

type App struct {
	Catalog *usecase.Catalog
	Index   *usecase.CategoryIndex
}

func NewApp(cfg config.Config) *App {
	store := recordstore.New(cfg.StoreBaseURL, cfg.StoreTimeout)

	index := usecase.NewCategoryIndex(store, cfg.CategoriesCollection, cfg.CategoryCacheTTL)
	variables := usecase.NewVariableCatalog(store, cfg.VariablesCollection, cfg.PlaceholderImageURL, cfg.VariableCacheTTL)

	publicBase := strings.TrimRight(cfg.PublicBaseURL, "/")
	productURL := func(slug string) string { return publicBase + "/product/" + slug }

	variants := usecase.NewVariantResolver(store, cfg.ProductsCollection, variables, productURL)
	composer := usecase.NewListingComposer(index)
	recommender := usecase.NewRecommender(store, cfg.ProductsCollection)

	catalog := usecase.NewCatalog(store, cfg.ProductsCollection, index, variables, variants, composer, recommender)

	return &App{Catalog: catalog, Index: index}
}

func (a *App) HTTPHandler() http.Handler {
	return httpserver.New(a.Catalog, a.Index)
}
