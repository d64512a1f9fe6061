package usecase

import (
	"github.com/shopspring/decimal"

	"github.com/ldessaigne/comptoir/internal/domain"
)

// ResolvePromoPrice computes the single effective promotional price for a
// product, or reports none. Category promotions flagged apply-to-all are
// store-wide campaigns and win over the product's own discount; among several
// overriding categories the deepest valid discount is kept.
func ResolvePromoPrice(price, ownPromo float64, categoryIDs []string, byID map[string]domain.Category) (float64, bool) {
	if price <= 0 {
		return 0, false
	}

	var overriding []domain.Category
	for _, id := range categoryIDs {
		if cat, ok := byID[id]; ok && cat.PromoAppliesToAll {
			overriding = append(overriding, cat)
		}
	}

	if len(overriding) == 0 {
		if ownPromo > 0 && ownPromo < price {
			return ownPromo, true
		}
		return 0, false
	}

	// Own promo is ignored from here on, even when no category candidate
	// survives validation.
	best := 0.0
	found := false
	for _, cat := range overriding {
		p := cat.PromoPercent
		if p <= 0 {
			continue
		}
		if p > 100 {
			p = 100
		}
		candidate := applyPercent(price, p)
		if candidate <= 0 || candidate >= price {
			continue
		}
		if !found || candidate < best {
			best = candidate
			found = true
		}
	}
	return best, found
}

// applyPercent returns price reduced by percent, rounded to 2 decimals,
// half away from zero.
func applyPercent(price, percent float64) float64 {
	d := decimal.NewFromFloat(price).
		Mul(decimal.NewFromFloat(100 - percent)).
		Div(decimal.NewFromInt(100)).
		Round(2)
	f, _ := d.Float64()
	return f
}
