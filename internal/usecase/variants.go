package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/ldessaigne/comptoir/internal/domain"
	"github.com/ldessaigne/comptoir/internal/storefilter"
)

// VariantSignature encodes a full variant key as a canonical string. Axes are
// sorted by name so two keys with the same pairs in different insertion order
// produce the identical signature.
func VariantSignature(key map[string]string) string {
	axes := make([]string, 0, len(key))
	for axis := range key {
		axes = append(axes, axis)
	}
	sort.Strings(axes)
	parts := make([]string, 0, len(axes))
	for _, axis := range axes {
		parts = append(parts, axis+":"+key[axis])
	}
	return strings.Join(parts, "|")
}

// VariantResolver discovers a product's variant family and produces the
// navigation maps and per-axis value lists for the detail page.
type VariantResolver struct {
	store      domain.RecordStore
	collection string
	variables  *VariableCatalog
	productURL func(slug string) string
}

func NewVariantResolver(store domain.RecordStore, collection string, variables *VariableCatalog, productURL func(slug string) string) *VariantResolver {
	return &VariantResolver{
		store:      store,
		collection: collection,
		variables:  variables,
		productURL: productURL,
	}
}

// Resolve returns nil for products outside any variant family.
func (vr *VariantResolver) Resolve(ctx context.Context, p *domain.Product) (*domain.VariantInfo, error) {
	if !p.IsParent && p.ParentID == "" {
		return nil, nil
	}
	siblings, err := vr.siblings(ctx, p)
	if err != nil {
		return nil, err
	}
	if len(siblings) == 0 {
		return nil, nil
	}

	info := &domain.VariantInfo{
		Values:         map[string][]domain.AxisValue{},
		URLBySignature: map[string]string{},
	}

	// Axis set comes from the first sibling carrying a variant key (the parent
	// record itself often has none). A sibling missing an axis simply
	// contributes no value for it.
	for _, sib := range siblings {
		if len(sib.VariantKey) == 0 {
			continue
		}
		for axis := range sib.VariantKey {
			info.Axes = append(info.Axes, axis)
		}
		break
	}
	sort.Strings(info.Axes)

	for _, axis := range info.Axes {
		seen := map[string]struct{}{}
		for _, sib := range siblings {
			raw, ok := sib.VariantKey[axis]
			if !ok || raw == "" {
				continue
			}
			if _, dup := seen[raw]; dup {
				continue
			}
			seen[raw] = struct{}{}
			info.Values[axis] = append(info.Values[axis], domain.AxisValue{
				ProductID: sib.ID,
				Raw:       raw,
				Resolved:  vr.variables.Resolve(ctx, raw),
			})
		}
	}

	for _, sib := range siblings {
		if len(sib.VariantKey) == 0 {
			continue
		}
		info.URLBySignature[VariantSignature(sib.VariantKey)] = vr.productURL(sib.Slug)
	}
	return info, nil
}

// siblings returns the full family, parent first.
func (vr *VariantResolver) siblings(ctx context.Context, p *domain.Product) ([]domain.Product, error) {
	parent := p
	if !p.IsParent {
		rec, err := vr.store.GetOne(ctx, vr.collection, p.ParentID, domain.ListOptions{})
		if err != nil {
			return nil, fmt.Errorf("fetch variant parent %s: %w", p.ParentID, err)
		}
		parsed, err := domain.ProductFromRecord(rec)
		if err != nil {
			return nil, err
		}
		parent = parsed
	}

	children, err := vr.children(ctx, parent.ID)
	if err != nil {
		return nil, err
	}
	return append([]domain.Product{*parent}, children...), nil
}

func (vr *VariantResolver) children(ctx context.Context, parentID string) ([]domain.Product, error) {
	filter := storefilter.And(
		storefilter.Eq("active", true),
		storefilter.Ne("inView", false),
		storefilter.Eq("parent", parentID),
	)
	recs, err := vr.store.GetFullList(ctx, vr.collection, 0, domain.ListOptions{Filter: filter, Sort: "created"})
	if err != nil {
		return nil, err
	}
	out := make([]domain.Product, 0, len(recs))
	for _, rec := range recs {
		child, err := domain.ProductFromRecord(rec)
		if err != nil {
			log.Warn().Err(err).Msg("skipping malformed variant child")
			continue
		}
		out = append(out, *child)
	}
	return out, nil
}
