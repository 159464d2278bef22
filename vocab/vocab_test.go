package vocab

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValid(t *testing.T) {
	assert.True(t, Valid("fire"))
	assert.True(t, Valid("FIRE"))
	assert.True(t, Valid("separations"))
	assert.False(t, Valid("unknown_very_weird_keyword"))
	assert.False(t, Valid(""))
}

func TestFilter(t *testing.T) {
	t.Run("keeps only vocabulary terms", func(t *testing.T) {
		kept := Filter([]string{"fire", "zeppelin", "doors"})
		assert.Equal(t, []string{"fire", "doors"}, kept)
	})

	t.Run("lowercases", func(t *testing.T) {
		kept := Filter([]string{"Fire", "SAFETY"})
		assert.Equal(t, []string{"fire", "safety"}, kept)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, Filter(nil))
	})
}

func TestExpand(t *testing.T) {
	terms := map[string]struct{}{"exit": {}}
	expanded := Expand(terms)

	assert.Contains(t, expanded, "exit")
	assert.Contains(t, expanded, "egress")
	assert.Contains(t, expanded, "doors")

	t.Run("term without synonyms maps to itself", func(t *testing.T) {
		expanded := Expand(map[string]struct{}{"masonry": {}})
		assert.Len(t, expanded, 1)
		assert.Contains(t, expanded, "masonry")
	})
}
