package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/NoahWolk1/SongNote/internal/audio"
	"github.com/NoahWolk1/SongNote/internal/config"
)

// HTTPProvider calls an external speech-synthesis sidecar that accepts text
// and returns a WAV body.
type HTTPProvider struct {
	httpClient *http.Client
	baseURL    string
}

type synthesizeRequest struct {
	Text string `json:"text"`
}

// NewHTTPProvider creates a provider for the configured TTS sidecar.
func NewHTTPProvider(cfg *config.TTSConfig) *HTTPProvider {
	return &HTTPProvider{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
		baseURL: cfg.ServiceURL,
	}
}

func (p *HTTPProvider) Name() string {
	return "http"
}

// IsConfigured returns true if the provider has valid configuration
func (p *HTTPProvider) IsConfigured() bool {
	return p.baseURL != ""
}

// Synthesize posts the text to the sidecar and decodes the WAV response.
func (p *HTTPProvider) Synthesize(ctx context.Context, text string) (audio.Buffer, error) {
	if !p.IsConfigured() {
		return nil, fmt.Errorf("tts service not configured")
	}

	bodyBytes, err := json.Marshal(synthesizeRequest{Text: text})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/synthesize", bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/wav")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("tts service error (status %d): %s", resp.StatusCode, string(respBody))
	}

	speech, err := audio.DecodeWAV(respBody)
	if err != nil {
		return nil, fmt.Errorf("failed to decode tts response: %w", err)
	}
	return speech, nil
}

// HealthCheck checks if the TTS sidecar is available
func (p *HTTPProvider) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("tts service unhealthy: status %d", resp.StatusCode)
	}

	return nil
}
