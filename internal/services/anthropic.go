// Anthropic messages API implementation of [Extractor]
//
// Request/response types based on https://docs.anthropic.com/en/api/messages
package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/desertthunder/lineup/internal/shared"
)

const (
	anthropicBaseURL = "https://api.anthropic.com"
	anthropicVersion = "2023-06-01"

	defaultModel     = "claude-sonnet-4-20250514"
	defaultMaxTokens = 4096
)

// imageSource is a base64 image payload within a content block.
type imageSource struct {
	Type      string `json:"type"`
	MediaType string `json:"media_type"`
	Data      string `json:"data"`
}

// contentBlock is a single block in a message; either an image or text.
type contentBlock struct {
	Type   string       `json:"type"`
	Text   string       `json:"text,omitempty"`
	Source *imageSource `json:"source,omitempty"`
}

type anthropicMessage struct {
	Role    string         `json:"role"`
	Content []contentBlock `json:"content"`
}

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type anthropicResponse struct {
	Content []contentBlock  `json:"content"`
	Error   *anthropicError `json:"error"`
}

// AnthropicService implements [Extractor] against the Anthropic messages endpoint.
type AnthropicService struct {
	apiKey     string
	model      string
	maxTokens  int
	baseURL    string
	httpClient *http.Client
}

// NewAnthropicService creates an Anthropic extractor from credentials config.
//
// Model, token limit, and base URL fall back to package defaults when unset.
// The client defaults to [http.DefaultClient]; no timeout is applied beyond
// whatever the injected client enforces.
func NewAnthropicService(config shared.AnthropicConfig, client *http.Client) *AnthropicService {
	if config.Model == "" {
		config.Model = defaultModel
	}
	if config.MaxTokens <= 0 {
		config.MaxTokens = defaultMaxTokens
	}
	if config.BaseURL == "" {
		config.BaseURL = anthropicBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &AnthropicService{
		apiKey:     config.APIKey,
		model:      config.Model,
		maxTokens:  config.MaxTokens,
		baseURL:    config.BaseURL,
		httpClient: client,
	}
}

// Name returns the provider name.
func (a *AnthropicService) Name() string { return "Anthropic" }

// ExtractText encodes the image as base64 and issues a single synchronous
// messages call with the fixed extraction prompt.
//
// Returns the first text content block of the response. Any transport or API
// failure is returned as-is for the caller to classify.
func (a *AnthropicService) ExtractText(ctx context.Context, image []byte, mediaType string) (string, error) {
	if a.apiKey == "" {
		return "", fmt.Errorf("%w: anthropic api key not configured", shared.ErrMissingCredentials)
	}

	payload := anthropicRequest{
		Model:     a.model,
		MaxTokens: a.maxTokens,
		Messages: []anthropicMessage{
			{
				Role: "user",
				Content: []contentBlock{
					{
						Type: "image",
						Source: &imageSource{
							Type:      "base64",
							MediaType: mediaType,
							Data:      base64.StdEncoding.EncodeToString(image),
						},
					},
					{
						Type: "text",
						Text: ExtractionPrompt,
					},
				},
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", a.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	var parsed anthropicResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse response (status %d): %w", resp.StatusCode, err)
	}

	if resp.StatusCode != http.StatusOK {
		if parsed.Error != nil {
			return "", fmt.Errorf("anthropic API error (status %d): %s", resp.StatusCode, parsed.Error.Message)
		}
		return "", fmt.Errorf("anthropic API error: status %d", resp.StatusCode)
	}

	for _, block := range parsed.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}

	return "", fmt.Errorf("response contained no text content")
}
