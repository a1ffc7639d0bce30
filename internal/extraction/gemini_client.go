package extraction

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fjacquet/lease-audit/internal/auditerror"
	"fjacquet/lease-audit/internal/logging"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.0-flash"

// GeminiClient implements AIClient on top of the Google Gemini API.
type GeminiClient struct {
	client  *genai.Client
	model   *genai.GenerativeModel
	name    string
	timeout time.Duration
	logger  logging.Logger
}

// NewGeminiClient creates a client for modelName. timeout bounds each request; zero
// disables the per-request deadline.
func NewGeminiClient(ctx context.Context, apiKey, modelName string, timeout time.Duration, logger logging.Logger) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, auditerror.ErrNoAPIKey
	}
	if modelName == "" {
		modelName = DefaultModel
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	model := client.GenerativeModel(modelName)
	model.SetTemperature(0)
	return &GeminiClient{
		client:  client,
		model:   model,
		name:    modelName,
		timeout: timeout,
		logger:  logging.OrDefault(logger),
	}, nil
}

// Name returns the configured model name.
func (c *GeminiClient) Name() string {
	return c.name
}

// GenerateJSON sends the system and user prompts as one request and returns the text of
// the first candidate.
func (c *GeminiClient) GenerateJSON(ctx context.Context, systemPrompt, userPrompt string) ([]byte, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := c.model.GenerateContent(ctx, genai.Text(systemPrompt), genai.Text(userPrompt))
	if err != nil {
		return nil, fmt.Errorf("gemini API error: %w", err)
	}
	c.logger.Debug("Gemini response received",
		logging.F(logging.FieldModel, c.name),
		logging.F(logging.FieldDuration, time.Since(start).Milliseconds()))

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("no response from Gemini API")
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	if strings.TrimSpace(b.String()) == "" {
		return nil, fmt.Errorf("empty response from Gemini API")
	}
	return []byte(b.String()), nil
}

// Close releases the underlying connection.
func (c *GeminiClient) Close() error {
	return c.client.Close()
}
