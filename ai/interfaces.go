package ai

import "context"

// QueryParser extracts structured search parameters from a natural-language
// building-code question. Implementations must be thread-safe for concurrent use.
type QueryParser interface {
	// ParseQuery analyzes the question and returns the extracted fields.
	// Fields the question does not mention are left empty; defaulting is
	// the caller's concern.
	// Returns an error wrapping ErrUnavailable if the backend cannot be
	// reached, or ErrMalformedResponse if the model output cannot be parsed.
	ParseQuery(ctx context.Context, text string) (*ParsedFields, error)

	// PromptVersion identifies the prompt/schema revision the parser uses.
	// Cached interpretations are keyed by it, so bumping the revision
	// invalidates prior cache entries.
	PromptVersion() string

	// Model identifies the underlying model, for cache provenance.
	Model() string
}
