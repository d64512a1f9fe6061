package domain

type SortKey string

const (
	SortName      SortKey = "name"
	SortPriceAsc  SortKey = "priceAsc"
	SortPriceDesc SortKey = "priceDesc"
	SortLatest    SortKey = "latest"
)

const (
	DefaultPerPage = 24
	MaxPerPage     = 48
)

// ListingQuery is built once per incoming request, after boundary validation,
// and is never mutated afterwards.
type ListingQuery struct {
	Page            int
	PerPage         int
	Query           string
	CategorySlug    string
	PromotionsOnly  bool
	NewArrivalsOnly bool
	Sort            SortKey
}

// Clamped returns a copy with pagination forced into bounds. The web boundary
// already validates; this keeps other callers honest.
func (q ListingQuery) Clamped() ListingQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PerPage < 1 {
		q.PerPage = DefaultPerPage
	}
	if q.PerPage > MaxPerPage {
		q.PerPage = MaxPerPage
	}
	if q.Sort == "" {
		q.Sort = SortName
	}
	return q
}

type ListingResult struct {
	Items      []ProductView `json:"items"`
	Page       int           `json:"page"`
	PerPage    int           `json:"per_page"`
	TotalItems int           `json:"total_items"`
	TotalPages int           `json:"total_pages"`
}
