package quizgen

import (
	"context"
	"fmt"

	"github.com/arga1212/smartnote/internal/llm"
)

// Config controls the behavior of the Generator.
type Config struct {
	// MaxTokens is the token budget for the LLM response.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64
}

// DefaultConfig returns the recommended generation settings.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   2000,
		Temperature: 0.7,
	}
}

// Generator produces validated quizzes using an LLM provider.
type Generator struct {
	provider llm.Provider
	config   Config
}

// New creates a Generator with the given provider and config.
func New(provider llm.Provider, cfg Config) *Generator {
	return &Generator{provider: provider, config: cfg}
}

// Generate asks the provider for count questions about the material and
// validates the response into a Quiz. Transient provider failures are
// retried by the provider middleware; a response that survives transport
// but violates the contract surfaces as *SchemaError, and the caller
// decides whether to regenerate.
func (g *Generator) Generate(ctx context.Context, material string, difficulty Difficulty, count int) (*Quiz, error) {
	if count < 1 {
		return nil, fmt.Errorf("question count must be >= 1, got %d", count)
	}

	ctx = llm.WithPurpose(ctx, "quiz-gen")

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(material, difficulty, count)},
		},
		Schema:      QuizSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("quiz generation: %w", err)
	}

	return ParseQuiz(resp.Text(), count)
}
