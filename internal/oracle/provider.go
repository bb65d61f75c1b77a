package oracle

import "context"

// ChatRequest is a single chat completion request. The response is required
// to be one JSON object, enforced via the provider's response format.
type ChatRequest struct {
	System      string
	User        string
	Model       string
	Temperature float64
	MaxTokens   int
}

// ChatProvider sends one chat request to the generation backend and returns
// the raw response text. Tests substitute a deterministic stub.
type ChatProvider interface {
	Complete(ctx context.Context, req ChatRequest) (string, error)
}
