package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Fawaz-asif/Email-spam-detector/internal/domain/entity"
)

// PredictRequest is the body of POST /predict
type PredictRequest struct {
	Text string `json:"text"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status     string            `json:"status"`
	Model      string            `json:"model"`
	Version    string            `json:"version"`
	Components map[string]string `json:"components"`
}

// APIError is a non-200 answer from the service
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("spam detector returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("spam detector returned status %d: %s", e.StatusCode, e.Message)
}

// SpamClient is an HTTP client for a running spam detector
type SpamClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewSpamClient creates a new spam detector client
func NewSpamClient(baseURL string, timeout time.Duration) *SpamClient {
	return &SpamClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Predict sends a single text for classification
func (c *SpamClient) Predict(ctx context.Context, text, requestID string) (*entity.PredictionResult, error) {
	body, err := json.Marshal(PredictRequest{Text: text})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if requestID != "" {
		req.Header.Set("X-Request-ID", requestID)
	}

	var result entity.PredictionResult
	if err := c.do(req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Health checks the service health
func (c *SpamClient) Health(ctx context.Context) (*HealthResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	var result HealthResponse
	if err := c.do(req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ModelInfo returns the service's model metadata document
func (c *SpamClient) ModelInfo(ctx context.Context) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/model-info", http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	var result json.RawMessage
	if err := c.do(req, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// Ready checks if the service is ready
func (c *SpamClient) Ready(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/ready", http.NoBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("spam detector not ready: status %d", resp.StatusCode)
	}

	return nil
}

func (c *SpamClient) do(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &APIError{StatusCode: resp.StatusCode, Message: errorMessage(resp.Body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// errorMessage reads {"error": "..."} bodies and falls back to the raw text
func errorMessage(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, 64<<10))
	if err != nil {
		return ""
	}
	var body struct {
		Error json.RawMessage `json:"error"`
	}
	if json.Unmarshal(data, &body) == nil && len(body.Error) > 0 {
		var msg string
		if json.Unmarshal(body.Error, &msg) == nil {
			return msg
		}
		var info struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(body.Error, &info) == nil && info.Message != "" {
			return info.Message
		}
	}
	return strings.TrimSpace(string(data))
}
