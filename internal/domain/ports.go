package domain

import "context"

// Record is a raw store record. The store gives no shape guarantees; records
// pass through the From*Record gates before anything else touches them.
type Record map[string]any

type ListOptions struct {
	Filter string
	Sort   string
	Fields string
}

type RecordPage struct {
	Items      []Record
	Page       int
	PerPage    int
	TotalItems int
	TotalPages int
}

// RecordStore is the read-only query surface of the external record store.
type RecordStore interface {
	GetOne(ctx context.Context, collection, id string, opts ListOptions) (Record, error)
	GetList(ctx context.Context, collection string, page, perPage int, opts ListOptions) (RecordPage, error)
	GetFullList(ctx context.Context, collection string, limit int, opts ListOptions) ([]Record, error)
	FileURL(collection, recordID, filename string) string
}
