package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client errors
var (
	ErrMissingAPIKey = errors.New("generative language API key is not configured")
	ErrEmptyResponse = errors.New("generative language API returned no text")
)

// DefaultBaseURL is the production endpoint of the generative language API.
const DefaultBaseURL = "https://generativelanguage.googleapis.com"

// Part is a single text fragment of a content turn.
type Part struct {
	Text string `json:"text"`
}

// Content is one turn of the conversation sent to the model. Role is either
// "user" or "model" and the sequence must begin with a user turn.
type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

type generationConfig struct {
	Temperature float64 `json:"temperature"`
}

type generateContentRequest struct {
	SystemInstruction *Content          `json:"system_instruction,omitempty"`
	Contents          []Content         `json:"contents"`
	GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content struct {
			Parts []Part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// Config holds client settings.
type Config struct {
	// BaseURL overrides the API endpoint (tests point it at a local server).
	BaseURL string
	// APIKey authenticates the request; required for any call.
	APIKey string
	// Model is the model identifier, e.g. "gemini-3-flash-preview".
	Model string
	// Temperature is passed through to the generation config.
	Temperature float64
	// HTTPClient overrides the default client.
	HTTPClient *http.Client
}

// Client is a thin wrapper around the generateContent REST endpoint.
type Client struct {
	baseURL     string
	apiKey      string
	model       string
	temperature float64
	http        *http.Client
}

// NewClient creates a generative language client.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		baseURL:     cfg.BaseURL,
		apiKey:      cfg.APIKey,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		http:        cfg.HTTPClient,
	}
}

// GenerateContent sends the conversation to the model and returns the
// first candidate's text. A single attempt, no retry.
func (c *Client) GenerateContent(ctx context.Context, systemInstruction string, contents []Content) (string, error) {
	if c.apiKey == "" {
		return "", ErrMissingAPIKey
	}

	reqBody := generateContentRequest{
		Contents: contents,
		GenerationConfig: &generationConfig{
			Temperature: c.temperature,
		},
	}
	if systemInstruction != "" {
		reqBody.SystemInstruction = &Content{Parts: []Part{{Text: systemInstruction}}}
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("generateContent request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	var parsed generateContentResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if parsed.Error != nil {
			return "", fmt.Errorf("generateContent API error %d: %s", parsed.Error.Code, parsed.Error.Message)
		}
		return "", fmt.Errorf("generateContent API returned status %d", resp.StatusCode)
	}

	for _, candidate := range parsed.Candidates {
		for _, part := range candidate.Content.Parts {
			if part.Text != "" {
				return part.Text, nil
			}
		}
	}

	return "", ErrEmptyResponse
}
