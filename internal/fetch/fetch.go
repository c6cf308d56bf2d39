// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch queries the vendor SDS document search API one page at a
// time and extracts document links from the response.
package fetch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/pdiddy/sds-collector/internal/httputil"
	"github.com/pdiddy/sds-collector/pkg/types"
)

// retryPolicy governs rate-limit retries on search requests. Declared as a
// var so tests can shrink the backoff.
var retryPolicy = httputil.DefaultPolicy

// pageRequest is the search request body. The vendor API expects every
// field present, including the empty ones.
type pageRequest struct {
	Query       string   `json:"query"`
	PageSize    int      `json:"pageSize"`
	CurrentPage int      `json:"currentPage"`
	Filters     []string `json:"filters"`
	Sorting     string   `json:"sorting"`
}

// searchResponse captures the fields we need from a search result page.
type searchResponse struct {
	Items []documentItem `json:"items"`
}

// documentItem is one search result. Only the link field is consumed;
// everything else in the record is ignored.
type documentItem struct {
	Link string `json:"link"`
}

// Page fetches one result page (1-based) and returns the raw response body.
// Non-2xx statuses are errors. Rate-limit responses are retried inside the
// call; other failures propagate to the caller.
func Page(ctx context.Context, client *http.Client, page int, cfg types.FetchConfig) ([]byte, error) {
	body, err := json.Marshal(pageRequest{
		Query:       "",
		PageSize:    cfg.PageSize,
		CurrentPage: page,
		Filters:     []string{},
		Sorting:     "",
	})
	if err != nil {
		return nil, fmt.Errorf("encoding page request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", cfg.UserAgent)
	if cfg.APIKey != "" {
		req.Header.Set("X-Api-Key", cfg.APIKey)
	}

	resp, err := httputil.Do(client, req, retryPolicy)
	if err != nil {
		return nil, fmt.Errorf("search API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("search API returned HTTP %d for page %d", resp.StatusCode, page)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	return data, nil
}

// ExtractLinks parses a search response and returns the ordered document
// links. A missing items array yields an empty slice; items without a link
// are skipped. Malformed JSON is an error.
func ExtractLinks(body []byte) ([]string, error) {
	var sr searchResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return nil, fmt.Errorf("parsing search response: %w", err)
	}

	var links []string
	for _, item := range sr.Items {
		if item.Link != "" {
			links = append(links, item.Link)
		}
	}
	return links, nil
}
