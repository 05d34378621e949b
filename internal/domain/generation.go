package domain

import "fmt"

// GenerationRequest is what the orchestrator hands to the text generator.
type GenerationRequest struct {
	Prompt      string
	Model       string
	MaxTokens   int
	Temperature float32
}

// TokenUsage mirrors the collaborator's accounting.
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Completion is the collaborator's answer.
type Completion struct {
	Text  string     `json:"message"`
	Model string     `json:"model"`
	Usage TokenUsage `json:"usage"`
}

// CollaboratorError wraps a text-generation failure with the request context
// that was being processed.
type CollaboratorError struct {
	Operation string
	Date      string
	Category  Category
	Err       error
}

func (e *CollaboratorError) Error() string {
	if e.Date == "" {
		return fmt.Sprintf("%s (category %s): text generation failed: %v", e.Operation, e.Category, e.Err)
	}
	return fmt.Sprintf("%s %s (category %s): text generation failed: %v", e.Operation, e.Date, e.Category, e.Err)
}

func (e *CollaboratorError) Unwrap() error {
	return e.Err
}
