package domain

import "time"

type Detail struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type Product struct {
	ID          string            `json:"id"`
	SKU         string            `json:"sku"`
	Name        string            `json:"name"`
	Slug        string            `json:"slug"`
	Price       float64           `json:"price"`
	PromoPrice  float64           `json:"promo_price,omitempty"`
	Active      bool              `json:"active"`
	InView      bool              `json:"in_view"`
	Images      []string          `json:"images,omitempty"`
	Currency    string            `json:"currency"`
	CategoryIDs []string          `json:"category_ids,omitempty"`
	IsParent    bool              `json:"is_parent"`
	ParentID    string            `json:"parent_id,omitempty"`
	VariantKey  map[string]string `json:"variant_key,omitempty"`
	Stock       int               `json:"stock"`
	IsNew       bool              `json:"is_new"`
	Details     []Detail          `json:"details,omitempty"`
	Created     time.Time         `json:"created"`
}

// ProductView is what listing and detail pages render. Computed fresh on every
// resolution call; promotions and stock can change between requests.
type ProductView struct {
	Product
	EffectivePromo float64  `json:"effective_promo,omitempty"`
	HasPromo       bool     `json:"has_promo"`
	ImageURLs      []string `json:"image_urls,omitempty"`
	InStock        bool     `json:"in_stock"`
}

// AxisValue is one selectable value on a variant axis, already resolved for
// presentation.
type AxisValue struct {
	ProductID string     `json:"product_id"`
	Raw       string     `json:"raw"`
	Resolved  VariantRef `json:"resolved"`
}

// VariantInfo carries everything the UI needs to move between siblings of a
// variant family without extra round trips.
type VariantInfo struct {
	Axes           []string               `json:"axes"`
	Values         map[string][]AxisValue `json:"values"`
	URLBySignature map[string]string      `json:"url_by_signature"`
}
