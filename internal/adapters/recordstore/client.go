// Package recordstore implements domain.RecordStore against the external
// record store's REST API. The store is the source of truth and may be
// eventually consistent; this client only ever reads.
package recordstore

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ldessaigne/comptoir/internal/domain"
)

const fullListBatch = 200

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) GetOne(ctx context.Context, collection, id string, opts domain.ListOptions) (domain.Record, error) {
	if id == "" {
		return nil, domain.ErrNotFound
	}
	endpoint := c.baseURL + "/api/collections/" + url.PathEscape(collection) + "/records/" + url.PathEscape(id)
	q := url.Values{}
	if opts.Fields != "" {
		q.Set("fields", opts.Fields)
	}
	var rec domain.Record
	if err := c.getJSON(ctx, endpoint, q, &rec); err != nil {
		return nil, err
	}
	return rec, nil
}

type listResponse struct {
	Page       int             `json:"page"`
	PerPage    int             `json:"perPage"`
	TotalItems int             `json:"totalItems"`
	TotalPages int             `json:"totalPages"`
	Items      []domain.Record `json:"items"`
}

func (c *Client) GetList(ctx context.Context, collection string, page, perPage int, opts domain.ListOptions) (domain.RecordPage, error) {
	endpoint := c.baseURL + "/api/collections/" + url.PathEscape(collection) + "/records"
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("perPage", strconv.Itoa(perPage))
	if opts.Filter != "" {
		q.Set("filter", opts.Filter)
	}
	if opts.Sort != "" {
		q.Set("sort", opts.Sort)
	}
	if opts.Fields != "" {
		q.Set("fields", opts.Fields)
	}
	var resp listResponse
	if err := c.getJSON(ctx, endpoint, q, &resp); err != nil {
		return domain.RecordPage{}, err
	}
	return domain.RecordPage{
		Items:      resp.Items,
		Page:       resp.Page,
		PerPage:    resp.PerPage,
		TotalItems: resp.TotalItems,
		TotalPages: resp.TotalPages,
	}, nil
}

// GetFullList pages through the collection until it is exhausted or limit
// records have been collected. limit <= 0 means no cap.
func (c *Client) GetFullList(ctx context.Context, collection string, limit int, opts domain.ListOptions) ([]domain.Record, error) {
	var out []domain.Record
	for page := 1; ; page++ {
		batch := fullListBatch
		if limit > 0 && limit-len(out) < batch {
			batch = limit - len(out)
		}
		if batch <= 0 {
			break
		}
		rp, err := c.GetList(ctx, collection, page, batch, opts)
		if err != nil {
			return nil, err
		}
		out = append(out, rp.Items...)
		if len(rp.Items) < batch || (rp.TotalPages > 0 && page >= rp.TotalPages) {
			break
		}
	}
	return out, nil
}

// FileURL builds the stable public URL for a stored file. Every image shown in
// listings, variants and recommendations goes through this convention.
func (c *Client) FileURL(collection, recordID, filename string) string {
	return c.baseURL + "/api/files/" +
		url.PathEscape(collection) + "/" +
		url.PathEscape(recordID) + "/" +
		url.PathEscape(filename)
}

func (c *Client) getJSON(ctx context.Context, endpoint string, q url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		return json.NewDecoder(resp.Body).Decode(out)
	case resp.StatusCode == http.StatusNotFound:
		return domain.ErrNotFound
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &domain.QueryError{Status: resp.StatusCode, Message: strings.TrimSpace(string(body))}
	default:
		return fmt.Errorf("%w: status %d", domain.ErrStoreUnavailable, resp.StatusCode)
	}
}
