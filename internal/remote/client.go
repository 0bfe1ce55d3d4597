// Package remote is the JSON-over-HTTP client for the El Buen Sabor API,
// the external system that owns catalog, promotions, orders and reports.
// Responses are parsed through explicit validation functions; nothing here
// assumes well-formed input.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/elbuensabor/storefront-backend/config"
)

var (
	// ErrNotFound is returned when the remote API answers 404
	ErrNotFound = errors.New("remote resource not found")

	// ErrRemoteUnavailable is returned on transport failures
	ErrRemoteUnavailable = errors.New("remote API unavailable")

	// ErrRemoteRejected is returned when the remote API answers 4xx
	ErrRemoteRejected = errors.New("remote API rejected the request")

	// ErrRemoteFailed is returned when the remote API answers 5xx
	ErrRemoteFailed = errors.New("remote API request failed")
)

// Client talks to the remote El Buen Sabor REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(cfg config.RemoteAPIConfig) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

func (c *Client) post(ctx context.Context, path string, payload interface{}) ([]byte, error) {
	return c.do(ctx, http.MethodPost, path, payload)
}

func (c *Client) put(ctx context.Context, path string, payload interface{}) ([]byte, error) {
	return c.do(ctx, http.MethodPut, path, payload)
}

func (c *Client) delete(ctx context.Context, path string) ([]byte, error) {
	return c.do(ctx, http.MethodDelete, path, nil)
}

func (c *Client) do(ctx context.Context, method, path string, payload interface{}) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		body = bytes.NewBuffer(encoded)
	}

	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return respBody, nil
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s %s", ErrNotFound, method, path)
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return nil, fmt.Errorf("%w: %s %s: status %d, body: %s",
			ErrRemoteRejected, method, path, resp.StatusCode, string(respBody))
	default:
		return nil, fmt.Errorf("%w: %s %s: status %d",
			ErrRemoteFailed, method, path, resp.StatusCode)
	}
}
