package usecase

import (
	"context"
	"regexp"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ldessaigne/comptoir/internal/domain"
)

var (
	colorRefRe = regexp.MustCompile(`^isColor\((.+)\)$`)
	imageRefRe = regexp.MustCompile(`^isImage\((.+)\)$`)
)

const fallbackColor = "#000000"

// ParseVariantRef turns a raw variant-key value into its tagged form. Anything
// that is not an isColor(...)/isImage(...) reference is literal text.
func ParseVariantRef(raw string) domain.VariantRef {
	if m := colorRefRe.FindStringSubmatch(raw); m != nil {
		return domain.VariantRef{Kind: domain.RefColor, ID: m[1]}
	}
	if m := imageRefRe.FindStringSubmatch(raw); m != nil {
		return domain.VariantRef{Kind: domain.RefImage, ID: m[1]}
	}
	return domain.VariantRef{Kind: domain.RefText, Value: raw}
}

// VariableCatalog resolves variant-attribute references into presentation
// values. Unknown ids fall back to safe defaults; a missing asset must not
// break the page.
type VariableCatalog struct {
	store          domain.RecordStore
	collection     string
	placeholderURL string
	ttl            time.Duration
	now            func() time.Time

	mu      sync.RWMutex
	byID    map[string]domain.Variable
	expires time.Time
}

func NewVariableCatalog(store domain.RecordStore, collection, placeholderURL string, ttl time.Duration) *VariableCatalog {
	return &VariableCatalog{
		store:          store,
		collection:     collection,
		placeholderURL: placeholderURL,
		ttl:            ttl,
		now:            time.Now,
	}
}

// Warm preloads the variables table. Callers that know they are about to
// resolve many references issue it concurrently with their other fetches.
func (vc *VariableCatalog) Warm(ctx context.Context) error {
	_, err := vc.load(ctx)
	return err
}

// Resolve fills in the presentation value for a raw variant-key value.
func (vc *VariableCatalog) Resolve(ctx context.Context, raw string) domain.VariantRef {
	ref := ParseVariantRef(raw)
	switch ref.Kind {
	case domain.RefText:
		return ref
	case domain.RefColor:
		ref.Value = fallbackColor
		if v, ok := vc.lookup(ctx, ref.ID); ok && v.Type == domain.VariableColor && v.Color != "" {
			ref.Value = v.Color
		}
		return ref
	default:
		ref.Value = vc.placeholderURL
		if v, ok := vc.lookup(ctx, ref.ID); ok && v.Type == domain.VariableImage && v.ImageFile != "" {
			ref.Value = vc.store.FileURL(vc.collection, v.ID, v.ImageFile)
		}
		return ref
	}
}

func (vc *VariableCatalog) lookup(ctx context.Context, id string) (domain.Variable, bool) {
	byID, err := vc.load(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("variables table unavailable, using fallbacks")
		return domain.Variable{}, false
	}
	v, ok := byID[id]
	return v, ok
}

func (vc *VariableCatalog) load(ctx context.Context) (map[string]domain.Variable, error) {
	vc.mu.RLock()
	if vc.byID != nil && vc.now().Before(vc.expires) {
		cached := vc.byID
		vc.mu.RUnlock()
		return cached, nil
	}
	vc.mu.RUnlock()

	recs, err := vc.store.GetFullList(ctx, vc.collection, 0, domain.ListOptions{})
	if err != nil {
		return nil, err
	}
	byID := make(map[string]domain.Variable, len(recs))
	for _, rec := range recs {
		v, err := domain.VariableFromRecord(rec)
		if err != nil {
			log.Warn().Err(err).Msg("skipping malformed variable record")
			continue
		}
		byID[v.ID] = *v
	}

	vc.mu.Lock()
	vc.byID = byID
	vc.expires = vc.now().Add(vc.ttl)
	vc.mu.Unlock()
	return byID, nil
}
