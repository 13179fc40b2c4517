package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/NoahWolk1/SongNote/internal/config"
	"github.com/NoahWolk1/SongNote/internal/model"
)

// MelodyExtractor defines the interface for melody extraction operations
type MelodyExtractor interface {
	Extract(ctx context.Context, req *model.MelodyExtractRequest) (*model.MelodyExtractResponse, error)
	HealthCheck(ctx context.Context) error
	IsConfigured() bool
}

// MelodyClient implements MelodyExtractor for the pitch-detection microservice
type MelodyClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewMelodyClient creates a new melody extraction client
func NewMelodyClient(cfg *config.MelodyConfig) *MelodyClient {
	return &MelodyClient{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
		baseURL: cfg.ServiceURL,
	}
}

// Extract sends audio to the extraction endpoint
func (c *MelodyClient) Extract(ctx context.Context, req *model.MelodyExtractRequest) (*model.MelodyExtractResponse, error) {
	var result model.MelodyExtractResponse
	if err := c.post(ctx, "/extract", req, &result); err != nil {
		return nil, err
	}
	result.Source = "service"
	return &result, nil
}

// HealthCheck checks if the melody service is available
func (c *MelodyClient) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("melody service unhealthy: status %d", resp.StatusCode)
	}

	return nil
}

// post sends a POST request with JSON body and parses the response
func (c *MelodyClient) post(ctx context.Context, endpoint string, body interface{}, result interface{}) error {
	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("melody service error (status %d): %s", resp.StatusCode, string(respBody))
	}

	if err := json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return nil
}

// IsConfigured returns true if the client has valid configuration
func (c *MelodyClient) IsConfigured() bool {
	return c.baseURL != ""
}
