package extraction

import (
	"context"
	"sync"
)

// AIClient defines the interface for language-model backed extraction services.
// This abstraction allows the extraction logic to be tested independently of
// external API calls and provides flexibility in choosing AI providers.
type AIClient interface {
	// GenerateJSON sends the prompts to the model and returns the raw JSON document it
	// produced. Implementations must honour ctx cancellation.
	GenerateJSON(ctx context.Context, systemPrompt, userPrompt string) ([]byte, error)
	// Name identifies the backing model for logging.
	Name() string
}

// MockAIClient implements AIClient for tests. Responses are returned in order; the last
// one is repeated once the list is exhausted.
type MockAIClient struct {
	mu        sync.Mutex
	Responses []string
	Err       error
	Prompts   []string
}

// NewMockAIClient creates a MockAIClient returning the given responses.
func NewMockAIClient(responses ...string) *MockAIClient {
	return &MockAIClient{Responses: responses}
}

// GenerateJSON records the user prompt and returns the next canned response.
func (m *MockAIClient) GenerateJSON(ctx context.Context, _, userPrompt string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Prompts = append(m.Prompts, userPrompt)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.Err != nil {
		return nil, m.Err
	}
	if len(m.Responses) == 0 {
		return []byte("{}"), nil
	}
	idx := len(m.Prompts) - 1
	if idx >= len(m.Responses) {
		idx = len(m.Responses) - 1
	}
	return []byte(m.Responses[idx]), nil
}

// Name returns "mock".
func (m *MockAIClient) Name() string {
	return "mock"
}
