package mercadopago

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client represents a Mercado Pago checkout API client
type Client struct {
	config     Config
	httpClient *http.Client
}

// NewClient creates a new Mercado Pago client with the given configuration
func NewClient(config Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	httpClient := &http.Client{
		Timeout: 30 * time.Second,
	}

	return &Client{
		config:     config,
		httpClient: httpClient,
	}, nil
}

// GetConfig returns the client configuration
func (c *Client) GetConfig() Config {
	return c.config
}

// CreatePreference registers a pending charge and returns the preference id
// plus the init-point URL the browser must be redirected to.
func (c *Client) CreatePreference(ctx context.Context, req PreferenceRequest) (*PreferenceResponse, error) {
	// Use back URLs from request if provided, otherwise use config defaults
	if req.BackURLs.Success == "" {
		req.BackURLs.Success = c.config.SuccessURL
	}
	if req.BackURLs.Failure == "" {
		req.BackURLs.Failure = c.config.FailureURL
	}
	if req.BackURLs.Pending == "" {
		req.BackURLs.Pending = c.config.PendingURL
	}

	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: preference needs at least one item", ErrInvalidRequest)
	}

	resp, err := c.doRequest(ctx, "preferences", req)
	if err != nil {
		return nil, fmt.Errorf("failed to make preference request: %w", err)
	}

	var prefResp PreferenceResponse
	if err := json.Unmarshal(resp, &prefResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal preference response: %w", err)
	}

	if prefResp.ID == "" || prefResp.InitPoint == "" {
		return nil, fmt.Errorf("%w: response missing id or init_point", ErrPreferenceFailed)
	}

	return &prefResp, nil
}

// doRequest performs an HTTP request to the Mercado Pago API
func (c *Client) doRequest(ctx context.Context, endpoint string, payload interface{}) ([]byte, error) {
	reqBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	url := fmt.Sprintf("%s/%s", c.config.BaseURL, endpoint)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.config.AccessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetworkError, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		var errResp ErrorResponse
		if err := json.Unmarshal(body, &errResp); err != nil {
			return nil, fmt.Errorf("unexpected status code: %d, body: %s", resp.StatusCode, string(body))
		}

		errorMsg := fmt.Sprintf("Mercado Pago API error - Status: %d, Error: %s, Message: %s",
			resp.StatusCode, errResp.Error, errResp.Message)

		switch resp.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return nil, fmt.Errorf("%w: %s", ErrUnauthorized, errorMsg)
		case http.StatusBadRequest:
			return nil, fmt.Errorf("%w: %s", ErrInvalidRequest, errorMsg)
		default:
			return nil, fmt.Errorf("%w: %s", ErrPreferenceFailed, errorMsg)
		}
	}

	return body, nil
}
