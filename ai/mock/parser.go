package mock

import (
	"context"
	"strings"

	"github.com/poiesic/codechronicle/ai"
	"github.com/poiesic/codechronicle/vocab"
)

// MockQueryParser is a test double for ai.QueryParser.
// It allows custom behavior injection via function fields.
type MockQueryParser struct {
	// ParseQueryFunc is called by ParseQuery if set.
	// If nil, uses default vocabulary-based word extraction.
	ParseQueryFunc func(ctx context.Context, text string) (*ai.ParsedFields, error)

	callCount int
}

// NewMockQueryParser creates a mock query parser with default behavior.
// Note: Returns concrete type to allow test assertions via CallCount().
func NewMockQueryParser() *MockQueryParser {
	return &MockQueryParser{}
}

// ParseQuery extracts mock fields from text.
// Default behavior: keeps the words of the question that appear in the
// controlled vocabulary, with no date, building type, or province.
func (m *MockQueryParser) ParseQuery(ctx context.Context, text string) (*ai.ParsedFields, error) {
	m.callCount++

	if m.ParseQueryFunc != nil {
		return m.ParseQueryFunc(ctx, text)
	}

	words := strings.Fields(strings.ToLower(text))
	return &ai.ParsedFields{
		Keywords: vocab.Filter(words),
	}, nil
}

// PromptVersion returns a stable mock revision identifier.
func (m *MockQueryParser) PromptVersion() string {
	return "mock-v1"
}

// Model returns the mock model identifier.
func (m *MockQueryParser) Model() string {
	return "mock"
}

// CallCount returns the number of times ParseQuery was called.
func (m *MockQueryParser) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *MockQueryParser) Reset() {
	m.callCount = 0
	m.ParseQueryFunc = nil
}
