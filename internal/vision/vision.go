// Package vision identifies Pokemon from still images.
//
// The heavy lifting happens in a remote multimodal model: we send a
// JPEG-encoded frame plus a natural-language prompt and get free text
// back. One request in flight at a time is sufficient for the camera
// flow, so Describe serializes callers.
package vision

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/abelbrown/pokedex/internal/logging"
)

const defaultEndpoint = "https://api.anthropic.com/v1/messages"

// DefaultPrompt asks the model for a Pokedex-style identification.
const DefaultPrompt = "Identify the Pokemon in this image. Reply with its name and a one-sentence Pokedex-style description."

// Classifier sends images to a Claude-compatible messages endpoint.
type Classifier struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client

	mu sync.Mutex // one request in flight at a time
}

// NewClassifier creates a Classifier. An empty model selects a default.
func NewClassifier(apiKey, model string) *Classifier {
	if model == "" {
		model = "claude-sonnet-4-5-20250929"
	}
	return &Classifier{
		apiKey:   apiKey,
		model:    model,
		endpoint: defaultEndpoint,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// SetEndpoint overrides the API endpoint (for testing).
func (c *Classifier) SetEndpoint(url string) {
	c.endpoint = url
}

// Available returns true if the classifier is configured and ready
func (c *Classifier) Available() bool {
	return c.apiKey != ""
}

// Describe sends a JPEG frame and a prompt, returning the model's free
// text response. Callers are serialized - a second Describe blocks until
// the first returns.
func (c *Classifier) Describe(ctx context.Context, jpeg []byte, prompt string) (string, error) {
	if !c.Available() {
		return "", fmt.Errorf("vision classifier not configured")
	}
	if prompt == "" {
		prompt = DefaultPrompt
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	logging.Debug("Vision request starting", "model", c.model, "image_bytes", len(jpeg))

	body := map[string]interface{}{
		"model":      c.model,
		"max_tokens": 512,
		"messages": []map[string]interface{}{
			{
				"role": "user",
				"content": []map[string]interface{}{
					{
						"type": "image",
						"source": map[string]string{
							"type":       "base64",
							"media_type": "image/jpeg",
							"data":       base64.StdEncoding.EncodeToString(jpeg),
						},
					},
					{
						"type": "text",
						"text": prompt,
					},
				},
			},
		},
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", c.apiKey)
	httpReq.Header.Set("anthropic-version", "2023-06-01")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		logging.Error("Vision API error", "status", resp.StatusCode, "body", string(respBody))
		return "", fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var result struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text,omitempty"`
		} `json:"content"`
		Model string `json:"model"`
	}

	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	var text string
	for _, block := range result.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}

	logging.Debug("Vision response parsed", "model", result.Model, "chars", len(text))
	return text, nil
}
