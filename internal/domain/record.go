package domain

import (
	"fmt"
	"strconv"
	"time"
)

// The store is loosely typed: numbers arrive as float64 or string, booleans as
// bool or "true", relations as a single id or a list. Everything below
// coerces what it can and rejects what it can't, so the rest of the engine
// only ever sees well-formed domain values.

func recString(rec Record, keys ...string) string {
	for _, k := range keys {
		if v, ok := rec[k]; ok {
			if s := asString(v); s != "" {
				return s
			}
		}
	}
	return ""
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case string:
		if n == "" {
			return 0, true
		}
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	case nil:
		return 0, true
	}
	return 0, false
}

func asBool(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		return b == "true" || b == "1"
	case float64:
		return b != 0
	}
	return false
}

func asStringSlice(v any) []string {
	switch s := v.(type) {
	case []string:
		return s
	case string:
		if s == "" {
			return nil
		}
		return []string{s}
	case []any:
		out := make([]string, 0, len(s))
		for _, e := range s {
			if str := asString(e); str != "" {
				out = append(out, str)
			}
		}
		return out
	}
	return nil
}

func asStringMap(v any) map[string]string {
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, e := range m {
		out[k] = fmt.Sprint(e)
	}
	return out
}

var createdLayouts = []string{
	"2006-01-02 15:04:05.000Z",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

func asTime(v any) time.Time {
	s := asString(v)
	for _, layout := range createdLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// ProductFromRecord validates and converts a raw store record. A failure means
// the record is skipped with a warning, never that a whole listing fails.
func ProductFromRecord(rec Record) (*Product, error) {
	id := recString(rec, "id")
	if id == "" {
		return nil, fmt.Errorf("product record without id")
	}
	name := recString(rec, "name")
	slug := recString(rec, "slug")
	if name == "" || slug == "" {
		return nil, fmt.Errorf("product %s: missing name or slug", id)
	}
	price, ok := asFloat(rec["price"])
	if !ok || price < 0 {
		return nil, fmt.Errorf("product %s: bad price %v", id, rec["price"])
	}
	promo, ok := asFloat(rec["promoPrice"])
	if !ok {
		return nil, fmt.Errorf("product %s: bad promoPrice %v", id, rec["promoPrice"])
	}
	stock, _ := asFloat(rec["stock"])

	p := &Product{
		ID:          id,
		SKU:         recString(rec, "sku"),
		Name:        name,
		Slug:        slug,
		Price:       price,
		PromoPrice:  promo,
		Active:      asBool(rec["active"]),
		InView:      inViewOrUnset(rec),
		Images:      asStringSlice(rec["images"]),
		Currency:    recString(rec, "currency"),
		CategoryIDs: asStringSlice(relationValue(rec)),
		IsParent:    asBool(rec["isParent"]),
		ParentID:    asString(rec["parent"]),
		VariantKey:  asStringMap(rec["variantKey"]),
		Stock:       int(stock),
		IsNew:       asBool(rec["isNew"]),
		Created:     asTime(rec["created"]),
	}
	if details, ok := rec["details"].([]any); ok {
		for _, d := range details {
			dm, ok := d.(map[string]any)
			if !ok {
				continue
			}
			p.Details = append(p.Details, Detail{
				Label: asString(dm["label"]),
				Value: asString(dm["value"]),
			})
		}
	}
	return p, nil
}

// relationValue tolerates both names the category relation has carried across
// schema versions.
func relationValue(rec Record) any {
	if v, ok := rec["categories"]; ok {
		return v
	}
	return rec["category"]
}

// inViewOrUnset treats an absent visibility field as visible; only an explicit
// false hides a product.
func inViewOrUnset(rec Record) bool {
	v, ok := rec["inView"]
	if !ok || v == nil || v == "" {
		return true
	}
	return asBool(v)
}

func CategoryFromRecord(rec Record) (*Category, error) {
	id := recString(rec, "id")
	if id == "" {
		return nil, fmt.Errorf("category record without id")
	}
	name := recString(rec, "name")
	slug := recString(rec, "slug")
	if name == "" || slug == "" {
		return nil, fmt.Errorf("category %s: missing name or slug", id)
	}
	percent, ok := asFloat(rec["promotionPercent"])
	if !ok {
		return nil, fmt.Errorf("category %s: bad promotionPercent %v", id, rec["promotionPercent"])
	}
	return &Category{
		ID:                id,
		Name:              name,
		Slug:              slug,
		ParentIDs:         asStringSlice(rec["parent"]),
		Description:       recString(rec, "description"),
		PromoPercent:      percent,
		PromoAppliesToAll: asBool(rec["promotionAppliesToAll"]),
	}, nil
}

func VariableFromRecord(rec Record) (*Variable, error) {
	id := recString(rec, "id")
	if id == "" {
		return nil, fmt.Errorf("variable record without id")
	}
	typ := VariableType(recString(rec, "type"))
	if typ != VariableColor && typ != VariableImage {
		return nil, fmt.Errorf("variable %s: unknown type %q", id, typ)
	}
	return &Variable{
		ID:        id,
		Name:      recString(rec, "name"),
		Type:      typ,
		Color:     recString(rec, "color"),
		ImageFile: recString(rec, "imageFile", "image"),
	}, nil
}
