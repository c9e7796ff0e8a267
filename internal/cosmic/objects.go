package cosmic

import (
	"bytes"
	"context"
	"encoding/json/v2"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// Query selects objects from the bucket.
type Query struct {
	Type   string         // Object type slug, e.g. "book-analysis-sessions"
	Filter map[string]any // Additional query fields, e.g. "metadata.session": id
	Props  []string       // Fields to return; empty means all
	Depth  int            // Reference expansion depth
	Limit  int            // Max objects; 0 means server default
	Sort   string         // Server-side sort, e.g. "-created_at"
}

// buildQueryJSON renders the query document sent in the "query" parameter.
func (q Query) buildQueryJSON() (string, error) {
	doc := make(map[string]any, len(q.Filter)+1)
	doc["type"] = q.Type
	for k, v := range q.Filter {
		doc[k] = v
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("marshal query: %w", err)
	}
	return string(raw), nil
}

// Find returns all objects matching the query, decoded with metadata type M.
// Returns ErrNotFound when the bucket has no matching objects.
func Find[M any](ctx context.Context, c *Client, q Query) ([]Object[M], error) {
	if err := c.wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	queryJSON, err := q.buildQueryJSON()
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("read_key", c.cfg.ReadKey)
	params.Set("query", queryJSON)
	if len(q.Props) > 0 {
		params.Set("props", strings.Join(q.Props, ","))
	}
	if q.Depth > 0 {
		params.Set("depth", strconv.Itoa(q.Depth))
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Sort != "" {
		params.Set("sort", q.Sort)
	}

	reqURL := c.objectsURL() + "?" + params.Encode()

	c.logger.Debug("cosmic find",
		"type", q.Type,
		"filter", q.Filter,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("find request: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var decoded objectsResponse[M]
	if err := json.UnmarshalRead(resp.Body, &decoded); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	return decoded.Objects, nil
}

// FindOne returns the first object matching the query, or ErrNotFound.
func FindOne[M any](ctx context.Context, c *Client, q Query) (*Object[M], error) {
	q.Limit = 1
	objects, err := Find[M](ctx, c, q)
	if err != nil {
		return nil, err
	}
	if len(objects) == 0 {
		return nil, ErrNotFound
	}
	return &objects[0], nil
}

// InsertRequest creates a new object in the bucket.
type InsertRequest struct {
	Title    string `json:"title"`
	Type     string `json:"type"`
	Status   string `json:"status"`
	Metadata any    `json:"metadata"`
}

// Insert creates an object and returns the created record decoded with
// metadata type M.
func Insert[M any](ctx context.Context, c *Client, req InsertRequest) (*Object[M], error) {
	if err := c.wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	if req.Status == "" {
		req.Status = "published"
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal object: %w", err)
	}

	c.logger.Debug("cosmic insert",
		"type", req.Type,
		"title", req.Title,
	)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.objectsURL(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.cfg.WriteKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("insert request: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var decoded objectResponse[M]
	if err := json.UnmarshalRead(resp.Body, &decoded); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	return &decoded.Object, nil
}

// UpdateMetadata patches an object's metadata. Only the provided fields are
// changed; the bucket merges them into the existing metadata.
func (c *Client) UpdateMetadata(ctx context.Context, objectID string, metadata any) error {
	if err := c.wait(ctx); err != nil {
		return fmt.Errorf("rate limit: %w", err)
	}

	body, err := json.Marshal(map[string]any{"metadata": metadata})
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}

	c.logger.Debug("cosmic update",
		"object_id", objectID,
	)

	reqURL := c.objectsURL() + "/" + url.PathEscape(objectID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPatch, reqURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.cfg.WriteKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("update request: %w", err)
	}
	defer resp.Body.Close()

	return checkStatus(resp)
}

// checkStatus maps non-2xx responses to errors. 404 becomes ErrNotFound;
// anything else surfaces the API's message when one is present.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var apiErr apiError
	if err := json.Unmarshal(raw, &apiErr); err == nil && apiErr.Message != "" {
		return fmt.Errorf("cosmic: status %d: %s", resp.StatusCode, apiErr.Message)
	}
	return fmt.Errorf("cosmic: status %d", resp.StatusCode)
}
