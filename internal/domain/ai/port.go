package ai

import "context"

// Provider enum
type Provider string

const (
	ProviderGemini   Provider = "gemini"
	ProviderOpenAI   Provider = "openai"
	ProviderDeepSeek Provider = "deepseek"
)

// Known reports whether p is one of the enumerated providers.
func Known(p Provider) bool {
	switch p {
	case ProviderGemini, ProviderOpenAI, ProviderDeepSeek:
		return true
	}
	return false
}

// Analyzer is the uniform call contract over interchangeable model
// backends: prompt in, raw narrative JSON text out.
type Analyzer interface {
	Analyze(ctx context.Context, prompt string) (string, error)
}
