package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"alfredoptarigan/cv-warehouse/internal/models"
)

// SmartSearch asks the ranking collaborator for matches to a free-text query.
func (c *Client) SmartSearch(ctx context.Context, query string) ([]models.MatchResult, error) {
	data, err := json.Marshal(models.SmartSearchRequest{Query: query})
	if err != nil {
		return nil, fmt.Errorf("failed to encode query: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/search/smart", bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	var out models.SmartSearchResponse
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	for i := range out.Results {
		out.Results[i].CV.Normalize()
	}
	return out.Results, nil
}
