package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/ldessaigne/comptoir/internal/domain"
	"github.com/ldessaigne/comptoir/internal/usecase"
)

const (
	maxQueryLen    = 80
	maxSlugLen     = 80
	defaultRelated = 4
	maxRelated     = 12
)

type Server struct {
	mux     *http.ServeMux
	catalog *usecase.Catalog
	index   *usecase.CategoryIndex
}

func New(catalog *usecase.Catalog, index *usecase.CategoryIndex) http.Handler {
	s := &Server{mux: http.NewServeMux(), catalog: catalog, index: index}
	s.routes()
	return Chain(s.mux,
		Recovery,
		Logging,
		RequestID,
	)
}

func (s *Server) routes() {
	s.mux.HandleFunc("/health", s.handleHealth)
	s.mux.HandleFunc("/api/products", s.handleListing)
	s.mux.HandleFunc("/api/products/", s.handleProduct)
	s.mux.HandleFunc("/api/categories", s.handleCategories)
	s.mux.HandleFunc("/api/catalog/export", s.handleExport)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, 200, map[string]string{"status": "ok"})
}

// handleListing is the listing request surface. Everything is validated or
// clamped here; nothing reaches the store filter unsanitized.
func (s *Server) handleListing(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method", 405)
		return
	}
	q, err := parseListingQuery(r)
	if err != nil {
		writeJSON(w, 400, map[string]string{"error": err.Error()})
		return
	}
	result, err := s.catalog.List(r.Context(), q)
	if err != nil {
		s.storeError(w, err)
		return
	}
	writeJSON(w, 200, result)
}

func parseListingQuery(r *http.Request) (domain.ListingQuery, error) {
	qv := r.URL.Query()
	var q domain.ListingQuery

	q.Page, _ = strconv.Atoi(qv.Get("page"))
	if q.Page < 1 {
		q.Page = 1
	}
	q.PerPage = domain.DefaultPerPage
	if raw := qv.Get("perPage"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return q, fmt.Errorf("perPage invalide")
		}
		if n < 1 {
			n = 1
		}
		if n > domain.MaxPerPage {
			n = domain.MaxPerPage
		}
		q.PerPage = n
	}

	q.Query = strings.TrimSpace(qv.Get("query"))
	if len(q.Query) > maxQueryLen {
		return q, fmt.Errorf("query trop longue")
	}
	q.CategorySlug = strings.TrimSpace(qv.Get("category"))
	if len(q.CategorySlug) > maxSlugLen {
		return q, fmt.Errorf("category trop longue")
	}

	var err error
	if q.PromotionsOnly, err = parseFlag(qv.Get("promotions")); err != nil {
		return q, fmt.Errorf("promotions invalide")
	}
	if q.NewArrivalsOnly, err = parseFlag(qv.Get("nouveautes")); err != nil {
		return q, fmt.Errorf("nouveautes invalide")
	}

	switch sort := qv.Get("sort"); sort {
	case "":
		q.Sort = domain.SortName
	case "name", "priceAsc", "priceDesc", "latest":
		q.Sort = domain.SortKey(sort)
	default:
		return q, fmt.Errorf("sort invalide")
	}
	return q, nil
}

func parseFlag(raw string) (bool, error) {
	switch raw {
	case "", "0":
		return false, nil
	case "1":
		return true, nil
	}
	return false, fmt.Errorf("flag invalide")
}

// handleProduct serves /api/products/{slug} and /api/products/{slug}/related.
func (s *Server) handleProduct(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method", 405)
		return
	}
	rest := strings.TrimPrefix(r.URL.Path, "/api/products/")
	if slug, ok := strings.CutSuffix(rest, "/related"); ok {
		s.handleRelated(w, r, slug)
		return
	}
	slug := rest
	if slug == "" || strings.Contains(slug, "/") || len(slug) > maxSlugLen {
		http.NotFound(w, r)
		return
	}
	view, variants, err := s.catalog.GetBySlug(r.Context(), slug)
	if errors.Is(err, domain.ErrNotFound) {
		writeJSON(w, 404, map[string]string{"error": "produit introuvable"})
		return
	}
	if err != nil {
		s.storeError(w, err)
		return
	}
	writeJSON(w, 200, map[string]any{"product": view, "variants": variants})
}

func (s *Server) handleRelated(w http.ResponseWriter, r *http.Request, slug string) {
	if slug == "" || len(slug) > maxSlugLen {
		http.NotFound(w, r)
		return
	}
	limit := defaultRelated
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 1 {
			limit = n
		}
	}
	if limit > maxRelated {
		limit = maxRelated
	}
	view, _, err := s.catalog.GetBySlug(r.Context(), slug)
	if errors.Is(err, domain.ErrNotFound) {
		writeJSON(w, 404, map[string]string{"error": "produit introuvable"})
		return
	}
	if err != nil {
		s.storeError(w, err)
		return
	}
	writeJSON(w, 200, map[string]any{"items": s.catalog.Related(r.Context(), view, limit)})
}

type categoryNode struct {
	domain.Category
	Children []domain.Category `json:"children,omitempty"`
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method", 405)
		return
	}
	all, err := s.index.LoadAll(r.Context())
	if err != nil {
		s.storeError(w, err)
		return
	}
	var roots []categoryNode
	for _, cat := range all {
		if !cat.IsRoot() {
			continue
		}
		children, err := s.index.ChildrenOf(r.Context(), cat.ID)
		if err != nil {
			s.storeError(w, err)
			return
		}
		roots = append(roots, categoryNode{Category: cat, Children: children})
	}
	writeJSON(w, 200, map[string]any{"items": roots})
}

func (s *Server) storeError(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrStoreUnavailable) {
		writeJSON(w, 502, map[string]string{"error": "boutique momentanément indisponible"})
		return
	}
	writeJSON(w, 500, map[string]string{"error": "erreur interne"})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
