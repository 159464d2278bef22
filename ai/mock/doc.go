// Package mock provides a test double implementation of the ai.QueryParser
// interface.
//
// The mock allows tests to run without an external AI service and enables
// controlled, deterministic behavior.
//
// # Usage in Tests
//
//	// Basic usage with default behavior
//	parser := mock.NewMockQueryParser()
//	fields, err := parser.ParseQuery(ctx, "fire doors in ontario")
//
//	// Custom behavior injection
//	parser.ParseQueryFunc = func(ctx context.Context, text string) (*ai.ParsedFields, error) {
//	    return &ai.ParsedFields{Keywords: []string{"fire"}, Province: "ON"}, nil
//	}
//
//	// Check call counts
//	count := parser.CallCount()
//
// # Default Behavior
//
// MockQueryParser keeps the words of the question that appear in the
// controlled vocabulary and leaves date, building type, and province empty.
package mock
