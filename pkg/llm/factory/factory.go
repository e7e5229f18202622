package factory

import (
	"fmt"
	"time"

	"museum-itinerary-be/pkg/llm"
	"museum-itinerary-be/pkg/llm/ollama"
	"museum-itinerary-be/pkg/llm/openaiapi"
)

// NewProvider selects the completion backend by configuration string.
// Supported: "ollama" (local server) and "openai" (hosted compatible API).
func NewProvider(providerType, model, baseURL, apiKey string, timeout time.Duration) (llm.Provider, error) {
	switch providerType {
	case "ollama":
		return ollama.NewOllamaProvider(baseURL, model, timeout), nil
	case "openai", "huggingface":
		return openaiapi.NewHostedProvider(apiKey, baseURL, model, timeout), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
