// Package material turns recorded lectures into study material: a short
// summary of the important points, and a full structured module suitable
// for segmentation and PDF export.
package material

import (
	"context"
	"fmt"

	"github.com/arga1212/smartnote/internal/llm"
)

// Config controls generation budgets per operation.
type Config struct {
	// SummaryMaxTokens bounds the summary response.
	SummaryMaxTokens int

	// ModuleMaxTokens bounds the module response. Modules are long-form
	// by design, so this is large.
	ModuleMaxTokens int

	// ModuleTemperature adds slight variation to module prose. Summaries
	// always run deterministic.
	ModuleTemperature float64
}

// DefaultConfig returns the recommended generation settings.
func DefaultConfig() Config {
	return Config{
		SummaryMaxTokens:  2048,
		ModuleMaxTokens:   300000,
		ModuleTemperature: 0.2,
	}
}

// Service generates study material from lecture audio.
type Service struct {
	provider llm.Provider
	config   Config
}

// NewService creates a material generation service.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, config: cfg}
}

const summarizePrompt = `Summarize this lecture recording and list the key points a student must know. Answer in the language spoken in the recording.`

const modulePrompt = `Write a complete, structured study module based on this lecture recording.

Requirements:
- Use a textbook writing style, in the language spoken in the recording.
- Use this outline structure:
  1 Pendahuluan
  2 Materi
    2.1 Bab 1
    2.2 Bab 2
    ...
- Use long paragraphs with in-depth explanations.
- Do not summarize; explain in detail.
- Start directly with the first heading, no opening remarks.`

// Summarize produces a short summary of the lecture audio.
func (s *Service) Summarize(ctx context.Context, audio llm.Media) (string, error) {
	ctx = llm.WithPurpose(ctx, "summarize")

	resp, err := s.provider.Generate(ctx, llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: summarizePrompt},
		},
		Media:     []llm.Media{audio},
		MaxTokens: s.config.SummaryMaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("summarize lecture: %w", err)
	}

	return resp.Text(), nil
}

// BuildModule produces full module text from the lecture audio. The
// prompt demands the numeric/"Bab" outline style the document segmenter
// classifies headings by.
func (s *Service) BuildModule(ctx context.Context, audio llm.Media) (string, error) {
	ctx = llm.WithPurpose(ctx, "module")

	resp, err := s.provider.Generate(ctx, llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: modulePrompt},
		},
		Media:       []llm.Media{audio},
		MaxTokens:   s.config.ModuleMaxTokens,
		Temperature: s.config.ModuleTemperature,
	})
	if err != nil {
		return "", fmt.Errorf("build module: %w", err)
	}

	return resp.Text(), nil
}
