package recordstore

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ldessaigne/comptoir/internal/domain"
)

func TestClient_GetList(t *testing.T) {
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/collections/products/records", r.URL.Path)
		gotQuery = map[string]string{}
		for k := range r.URL.Query() {
			gotQuery[k] = r.URL.Query().Get(k)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"page": 2, "perPage": 24, "totalItems": 30, "totalPages": 2,
			"items": []map[string]any{{"id": "p1", "name": "Lampe"}},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	rp, err := c.GetList(context.Background(), "products", 2, 24, domain.ListOptions{
		Filter: `active = true`,
		Sort:   "-created",
	})
	require.NoError(t, err)

	assert.Equal(t, "2", gotQuery["page"])
	assert.Equal(t, "24", gotQuery["perPage"])
	assert.Equal(t, `active = true`, gotQuery["filter"])
	assert.Equal(t, "-created", gotQuery["sort"])

	assert.Equal(t, 2, rp.Page)
	assert.Equal(t, 30, rp.TotalItems)
	assert.Equal(t, 2, rp.TotalPages)
	require.Len(t, rp.Items, 1)
	assert.Equal(t, "p1", rp.Items[0]["id"])
}

func TestClient_GetOne(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/collections/products/records/p1" {
			_ = json.NewEncoder(w).Encode(map[string]any{"id": "p1"})
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)

	rec, err := c.GetOne(context.Background(), "products", "p1", domain.ListOptions{})
	require.NoError(t, err)
	assert.Equal(t, "p1", rec["id"])

	_, err = c.GetOne(context.Background(), "products", "ghost", domain.ListOptions{})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = c.GetOne(context.Background(), "products", "", domain.ListOptions{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestClient_ErrorTaxonomy(t *testing.T) {
	t.Run("4xx is a query error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"message":"unknown field categories"}`, 400)
		}))
		defer srv.Close()

		c := New(srv.URL, time.Second)
		_, err := c.GetList(context.Background(), "products", 1, 24, domain.ListOptions{Filter: `categories ~ "x"`})
		require.Error(t, err)
		assert.True(t, domain.IsQueryError(err))
		assert.NotErrorIs(t, err, domain.ErrStoreUnavailable)
	})

	t.Run("5xx means unavailable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", 500)
		}))
		defer srv.Close()

		c := New(srv.URL, time.Second)
		_, err := c.GetList(context.Background(), "products", 1, 24, domain.ListOptions{})
		assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	})

	t.Run("network failure means unavailable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		srv.Close()

		c := New(srv.URL, time.Second)
		_, err := c.GetList(context.Background(), "products", 1, 24, domain.ListOptions{})
		assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	})
}

func TestClient_GetFullList(t *testing.T) {
	t.Run("stops at limit", func(t *testing.T) {
		var askedPerPage string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			askedPerPage = r.URL.Query().Get("perPage")
			_ = json.NewEncoder(w).Encode(map[string]any{
				"page": 1, "perPage": 3, "totalItems": 3, "totalPages": 1,
				"items": []map[string]any{{"id": "a"}, {"id": "b"}, {"id": "c"}},
			})
		}))
		defer srv.Close()

		c := New(srv.URL, time.Second)
		recs, err := c.GetFullList(context.Background(), "products", 3, domain.ListOptions{})
		require.NoError(t, err)
		assert.Len(t, recs, 3)
		assert.Equal(t, "3", askedPerPage)
	})

	t.Run("walks every page", func(t *testing.T) {
		calls := 0
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			items := make([]map[string]any, 0, 200)
			count := 200
			if calls == 2 {
				count = 1
			}
			for i := 0; i < count; i++ {
				items = append(items, map[string]any{"id": "x"})
			}
			_ = json.NewEncoder(w).Encode(map[string]any{
				"page": calls, "perPage": 200, "totalItems": 201, "totalPages": 2,
				"items": items,
			})
		}))
		defer srv.Close()

		c := New(srv.URL, time.Second)
		recs, err := c.GetFullList(context.Background(), "products", 0, domain.ListOptions{})
		require.NoError(t, err)
		assert.Len(t, recs, 201)
		assert.Equal(t, 2, calls)
	})
}

func TestClient_FileURL(t *testing.T) {
	c := New("https://store.example.com/", time.Second)

	assert.Equal(t,
		"https://store.example.com/api/files/products/p1/photo%20produit.jpg",
		c.FileURL("products", "p1", "photo produit.jpg"))

	assert.Equal(t,
		"https://store.example.com/api/files/variables/v2/chene.png",
		c.FileURL("variables", "v2", "chene.png"))
}
