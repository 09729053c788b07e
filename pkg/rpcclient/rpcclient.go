// Package rpcclient provides the shared HTTP/JSON transport that
// metaclient and allocclient build on: a base URL, a *http.Client, an
// optional bearer token, and a Do that marshals the request body, executes
// the call, and decodes either the result or an APIError.
//
// Every call here takes a context.Context — the metadata and allocation
// services sit on the Adaptor's hot write/read path, so callers need to
// cancel or time out an in-flight RPC the same way they would a block
// Upload/Download.
package rpcclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client is a minimal JSON-over-HTTP RPC client shared by metaclient and
// allocclient.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

// New constructs a Client against baseURL with a 30s default timeout.
func New(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// WithHTTPClient overrides the default *http.Client, for callers that need
// custom transport settings or want to inject a fake in tests.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// WithToken sets the bearer token sent with every request.
func (c *Client) WithToken(token string) *Client {
	c.token = token
	return c
}

// APIError represents a non-2xx response from the metadata or allocation
// service.
type APIError struct {
	StatusCode int    `json:"-"`
	Code       string `json:"code,omitempty"`
	Message    string `json:"message"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("rpcclient: %s (%s)", e.Message, e.Code)
	}
	return fmt.Sprintf("rpcclient: %s (status %d)", e.Message, e.StatusCode)
}

// Do performs a POST to path with body marshaled as JSON, decoding the
// response into result on success or returning an *APIError on a non-2xx
// status.
func (c *Client) Do(ctx context.Context, path string, body, result any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("rpcclient: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("rpcclient: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("rpcclient: request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("rpcclient: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr APIError
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Message != "" {
			apiErr.StatusCode = resp.StatusCode
			return &apiErr
		}
		return &APIError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("rpcclient: decode response: %w", err)
		}
	}

	return nil
}
