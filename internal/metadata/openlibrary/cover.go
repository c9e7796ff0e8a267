package openlibrary

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// coverURLFormat renders a cover ID as a large cover image URL.
const coverURLFormat = "https://covers.openlibrary.org/b/id/%d-L.jpg"

// Search queries the search API with "title author" and returns the first
// matching document, or nil when nothing matches.
func (c *Client) Search(ctx context.Context, title, author string) (*searchDoc, error) {
	if err := c.wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	query := strings.TrimSpace(title)
	if author != "" {
		query = query + " " + strings.TrimSpace(author)
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("limit", "1")

	searchURL := c.baseURL + "/search.json?" + params.Encode()

	c.logger.Debug("searching Open Library",
		"query", query,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search failed: status %d", resp.StatusCode)
	}

	var searchResp searchResponse
	if err := json.UnmarshalRead(resp.Body, &searchResp); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	if len(searchResp.Docs) == 0 {
		return nil, nil
	}
	return &searchResp.Docs[0], nil
}

// CoverURL looks up a cover image URL for the given title and author.
// Failures are soft: network or parse errors are logged and the fixed
// placeholder URL is returned. This method never returns an error.
func (c *Client) CoverURL(ctx context.Context, title, author string) string {
	doc, err := c.Search(ctx, title, author)
	if err != nil {
		c.logger.Warn("cover lookup failed, using placeholder",
			"title", title,
			"author", author,
			"error", err,
		)
		return PlaceholderCoverURL
	}

	if doc == nil || doc.CoverID == 0 {
		return PlaceholderCoverURL
	}

	return fmt.Sprintf(coverURLFormat, doc.CoverID)
}
