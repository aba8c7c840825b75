package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"alfredoptarigan/cv-warehouse/internal/models"
)

// ListEntries returns stored profiles, filtered server-side when query is
// not empty.
func (c *Client) ListEntries(ctx context.Context, query string) ([]models.WarehouseEntry, error) {
	path := "/cvs"
	if query != "" {
		path += "?" + url.Values{"q": {query}}.Encode()
	}

	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var out []models.WarehouseEntry
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Normalize()
	}
	return out, nil
}

func (c *Client) GetEntry(ctx context.Context, id string) (*models.WarehouseEntry, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/cvs/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}

	var out models.WarehouseEntry
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	if out.ID == "" {
		return nil, fmt.Errorf("%w: entry without id", ErrMalformedPayload)
	}
	out.Normalize()
	return &out, nil
}

func (c *Client) DeleteEntry(ctx context.Context, id string) error {
	req, err := c.newRequest(ctx, http.MethodDelete, "/cvs/"+url.PathEscape(id), nil)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}
