package adaptors

import "context"

type CompletionOptions struct {
	Temperature float64
	MaxTokens   int
}

var (
	// AuditCompletion is used for the first model call.
	AuditCompletion = CompletionOptions{Temperature: 0.2, MaxTokens: 1200}
	// RepairCompletion is used for the single repair call.
	RepairCompletion = CompletionOptions{Temperature: 0, MaxTokens: 1000}
)

// ModelGateway performs one chat completion and returns its text.
// Non-success upstream responses come back as *errors.ModelError.
type ModelGateway interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string, opts CompletionOptions) (string, error)
	Provider() string
}
