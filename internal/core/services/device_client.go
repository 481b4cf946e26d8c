package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"membership-hub/internal/core/domain"
)

// deviceClient is the shared HTTP plumbing for the external device services.
// Stateless; base URL is fixed at construction.
type deviceClient struct {
	baseURL string
	client  *http.Client
}

func newDeviceClient(baseURL string) deviceClient {
	return deviceClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// postJSON posts a JSON payload and decodes the JSON response.
// An empty response body decodes to an empty map.
func (c *deviceClient) postJSON(ctx context.Context, path string, payload map[string]interface{}) (map[string]interface{}, error) {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+path, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDeviceUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDeviceUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s returned %d: %s", domain.ErrDeviceUnavailable, path, resp.StatusCode, string(body))
	}

	return decodeResult(body)
}

// getJSON fetches a JSON document
func (c *deviceClient) getJSON(ctx context.Context, path string) (map[string]interface{}, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDeviceUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDeviceUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s returned %d: %s", domain.ErrDeviceUnavailable, path, resp.StatusCode, string(body))
	}

	return decodeResult(body)
}

func decodeResult(body []byte) (map[string]interface{}, error) {
	result := map[string]interface{}{}
	if len(body) == 0 {
		return result, nil
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, err
	}
	return result, nil
}
