package domain

type Category struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Slug              string   `json:"slug"`
	ParentIDs         []string `json:"parent_ids,omitempty"`
	Description       string   `json:"description,omitempty"`
	PromoPercent      float64  `json:"promo_percent,omitempty"`
	PromoAppliesToAll bool     `json:"promo_applies_to_all"`
}

// IsRoot reports whether the category has no parent.
func (c Category) IsRoot() bool { return len(c.ParentIDs) == 0 }

// HasParent reports whether id is among the category's parents. The store
// stores parent as either a single id or a list depending on schema version.
func (c Category) HasParent(id string) bool {
	for _, p := range c.ParentIDs {
		if p == id {
			return true
		}
	}
	return false
}
