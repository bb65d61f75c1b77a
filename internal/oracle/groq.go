package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// GroqProvider calls an OpenAI-compatible /chat/completions endpoint in
// JSON-object mode. Groq is the default backend; any endpoint speaking the
// same protocol works.
type GroqProvider struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewGroqProvider creates a provider targeting the given OpenAI-compatible
// base URL (e.g. https://api.groq.com/openai/v1).
func NewGroqProvider(baseURL, apiKey string, httpClient *http.Client) *GroqProvider {
	return &GroqProvider{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: httpClient,
	}
}

// chatRequest mirrors the OpenAI /v1/chat/completions request body.
type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	Temperature    float64        `json:"temperature"`
	MaxTokens      int            `json:"max_tokens"`
	ResponseFormat responseFormat `json:"response_format"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

// chatResponse mirrors the relevant fields of the response.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// Complete sends the request and returns the raw completion text. The
// json_object response format guarantees the content is a single JSON
// object, so callers can unmarshal it directly.
func (p *GroqProvider) Complete(ctx context.Context, cr ChatRequest) (string, error) {
	reqBody := chatRequest{
		Model: cr.Model,
		Messages: []chatMessage{
			{Role: "system", Content: cr.System},
			{Role: "user", Content: cr.User},
		},
		Temperature:    cr.Temperature,
		MaxTokens:      cr.MaxTokens,
		ResponseFormat: responseFormat{Type: "json_object"},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal oracle request: %w", err)
	}

	url := p.baseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create oracle request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("oracle request: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read oracle response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("oracle returned HTTP %d: %s", resp.StatusCode, string(respBytes))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBytes, &chatResp); err != nil {
		return "", fmt.Errorf("parse oracle response: %w", err)
	}

	if chatResp.Error != nil {
		return "", fmt.Errorf("oracle error (%s): %s", chatResp.Error.Type, chatResp.Error.Message)
	}

	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("oracle returned no choices")
	}

	return chatResp.Choices[0].Message.Content, nil
}
