package usecase

import (
	"context"

	"github.com/ldessaigne/comptoir/internal/domain"
)

// stubStore is a scriptable domain.RecordStore for engine tests.
type stubStore struct {
	getOne      func(collection, id string) (domain.Record, error)
	getList     func(collection string, page, perPage int, opts domain.ListOptions) (domain.RecordPage, error)
	getFullList func(collection string, limit int, opts domain.ListOptions) ([]domain.Record, error)

	listCalls []domain.ListOptions
	fullCalls int
}

func (s *stubStore) GetOne(_ context.Context, collection, id string, _ domain.ListOptions) (domain.Record, error) {
	if s.getOne == nil {
		return nil, domain.ErrNotFound
	}
	return s.getOne(collection, id)
}

func (s *stubStore) GetList(_ context.Context, collection string, page, perPage int, opts domain.ListOptions) (domain.RecordPage, error) {
	s.listCalls = append(s.listCalls, opts)
	if s.getList == nil {
		return domain.RecordPage{Page: page, PerPage: perPage}, nil
	}
	return s.getList(collection, page, perPage, opts)
}

func (s *stubStore) GetFullList(_ context.Context, collection string, limit int, opts domain.ListOptions) ([]domain.Record, error) {
	s.fullCalls++
	if s.getFullList == nil {
		return nil, nil
	}
	return s.getFullList(collection, limit, opts)
}

func (s *stubStore) FileURL(collection, recordID, filename string) string {
	return "https://store.test/api/files/" + collection + "/" + recordID + "/" + filename
}

func pageOf(recs ...domain.Record) domain.RecordPage {
	return domain.RecordPage{
		Items:      recs,
		Page:       1,
		PerPage:    len(recs),
		TotalItems: len(recs),
		TotalPages: 1,
	}
}

func categoryRecord(id, slug string, parent any, percent float64, all bool) domain.Record {
	rec := domain.Record{
		"id": id, "name": slug, "slug": slug,
		"promotionPercent": percent, "promotionAppliesToAll": all,
	}
	if parent != nil {
		rec["parent"] = parent
	}
	return rec
}

func productRecord(id, slug string, price float64) domain.Record {
	return domain.Record{
		"id": id, "name": slug, "slug": slug, "sku": "SKU-" + id,
		"price": price, "active": true, "inView": true, "currency": "EUR",
		"stock": float64(2),
	}
}
