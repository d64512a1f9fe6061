package config

import (
	"os"
	"strconv"
	"time"
)

// Config carries everything the resolution engine needs from the environment.
// It is built once in main and passed down explicitly so tests can supply
// fixtures instead of patching env vars.
type Config struct {
	StoreBaseURL  string
	PublicBaseURL string
	StoreTimeout  time.Duration

	ProductsCollection   string
	CategoriesCollection string
	VariablesCollection  string

	CategoryCacheTTL time.Duration
	VariableCacheTTL time.Duration

	PlaceholderImageURL string
	Port                string
}

func FromEnv() Config {
	return Config{
		StoreBaseURL:         getenv("STORE_URL", "http://localhost:8090"),
		PublicBaseURL:        getenv("BASE_URL", "http://localhost:8080"),
		StoreTimeout:         getDuration("STORE_TIMEOUT_SECONDS", 10*time.Second),
		ProductsCollection:   getenv("STORE_PRODUCTS_COLLECTION", "products"),
		CategoriesCollection: getenv("STORE_CATEGORIES_COLLECTION", "categories"),
		VariablesCollection:  getenv("STORE_VARIABLES_COLLECTION", "variables"),
		CategoryCacheTTL:     getDuration("CATEGORY_CACHE_TTL_SECONDS", 5*time.Minute),
		VariableCacheTTL:     getDuration("VARIABLE_CACHE_TTL_SECONDS", 5*time.Minute),
		PlaceholderImageURL:  getenv("PLACEHOLDER_IMAGE_URL", "/public/assets/img/placeholder.png"),
		Port:                 getenv("PORT", "8080"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return time.Duration(n) * time.Second
		}
	}
	return fallback
}
