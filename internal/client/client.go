// Package client provides a typed HTTP client for the shopping list API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Item mirrors the API's item JSON shape.
type Item struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Quantity  int64  `json:"quantity"`
	Purchased bool   `json:"purchased"`
}

// UpdateRequest carries a partial update. Omitted fields are left
// untouched by the server; a false Purchased pointer still applies.
type UpdateRequest struct {
	Name      *string `json:"name,omitempty"`
	Quantity  *int64  `json:"quantity,omitempty"`
	Purchased *bool   `json:"purchased,omitempty"`
}

// APIError is a response the server completed with a non-2xx status.
// Transport failures are returned as-is and are never an APIError.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: %d %s", e.StatusCode, e.Message)
}

// Client talks to a shopping list API at a fixed base URL.
type Client struct {
	baseURL string
	hc      *http.Client
}

// New creates a client for the API rooted at baseURL (e.g.
// "http://localhost:3000/api").
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		hc:      &http.Client{Timeout: 10 * time.Second},
	}
}

// List fetches all items.
func (c *Client) List(ctx context.Context) ([]Item, error) {
	var items []Item
	if err := c.do(ctx, http.MethodGet, "/items", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Get fetches a single item by ID.
func (c *Client) Get(ctx context.Context, id int64) (*Item, error) {
	var item Item
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/items/%d", id), nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Create adds a new, not-yet-purchased item.
func (c *Client) Create(ctx context.Context, name string, quantity int64) (*Item, error) {
	body := map[string]any{"name": name, "quantity": quantity, "purchased": false}
	var item Item
	if err := c.do(ctx, http.MethodPost, "/items", body, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Update applies a partial update and returns the full updated record.
func (c *Client) Update(ctx context.Context, id int64, req UpdateRequest) (*Item, error) {
	var item Item
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/items/%d", id), req, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Delete removes an item and returns the record the server removed.
func (c *Client) Delete(ctx context.Context, id int64) (*Item, error) {
	var resp struct {
		Message string `json:"message"`
		Item    Item   `json:"item"`
	}
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/items/%d", id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Item, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var payload *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		payload = bytes.NewReader(encoded)
	} else {
		payload = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errBody struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&errBody)
		return &APIError{StatusCode: resp.StatusCode, Message: errBody.Message}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
