package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRatioMatcher(t *testing.T) {
	matcher := NewRatioMatcher()

	assert.Equal(t, 100.0, matcher.Ratio("doors", "doors"))
	assert.Equal(t, 100.0, matcher.Ratio("", ""))
	assert.Equal(t, 0.0, matcher.Ratio("", "doors"))

	// One deletion out of nine total characters.
	assert.InDelta(t, 88.9, matcher.Ratio("doors", "dors"), 0.1)
	assert.Equal(t, matcher.Ratio("doors", "dors"), matcher.Ratio("dors", "doors"))

	// Unrelated strings score low.
	assert.Less(t, matcher.Ratio("plumbing", "skylight"), 50.0)
}
