package registry

import (
	"testing"
	"time"

	"github.com/poiesic/codechronicle/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveOntario2026(t *testing.T) {
	resolver := NewResolver(DefaultRegistry())

	codes := resolver.Resolve("ON", day(2026, time.February, 5))

	assert.Contains(t, codes, "OBC_2024")
	assert.Contains(t, codes, "NBC_2025")
	// Provincial edition leads, nationals follow in fixed family order.
	require.NotEmpty(t, codes)
	assert.Equal(t, "OBC_2024", codes[0])
	assert.Equal(t, []string{"OBC_2024", "NBC_2025", "NFC_2025", "NPC_2025", "NECB_2025"}, codes)
}

func TestResolveNoCoverage(t *testing.T) {
	resolver := NewResolver(DefaultRegistry())

	t.Run("date before any edition", func(t *testing.T) {
		codes := resolver.Resolve("ON", day(1950, time.January, 1))
		assert.Empty(t, codes)
	})

	t.Run("unknown province still gets national codes", func(t *testing.T) {
		codes := resolver.Resolve("MB", day(2026, time.January, 1))
		assert.Equal(t, []string{"NBC_2025", "NFC_2025", "NPC_2025", "NECB_2025"}, codes)
	})

	t.Run("empty registry resolves to empty list", func(t *testing.T) {
		resolver := NewResolver(NewMemoryRegistry())
		assert.Empty(t, resolver.Resolve("ON", day(2026, time.January, 1)))
	})
}

func TestResolveIntervalBoundaries(t *testing.T) {
	resolver := NewResolver(DefaultRegistry())

	t.Run("effective date is inclusive", func(t *testing.T) {
		codes := resolver.Resolve("ON", day(2020, time.January, 1))
		assert.Contains(t, codes, "NBC_2020")
	})

	t.Run("superseded date is exclusive", func(t *testing.T) {
		codes := resolver.Resolve("ON", day(2025, time.January, 1))
		assert.NotContains(t, codes, "NBC_2020")
		assert.Contains(t, codes, "NBC_2025")
	})

	t.Run("one edition per family", func(t *testing.T) {
		codes := resolver.Resolve("ON", day(2021, time.June, 1))
		nbc := 0
		for _, code := range codes {
			if code == "NBC_2015" || code == "NBC_2020" || code == "NBC_2025" {
				nbc++
			}
		}
		assert.Equal(t, 1, nbc)
	})
}

func TestResolvePrefersLatestEffective(t *testing.T) {
	// Two open-ended editions: the resolver must pick the newer one.
	reg := NewMemoryRegistry()
	reg.AddFamily(core.CodeFamily{Code: "NBC", DisplayName: "National Building Code", National: true})
	require.NoError(t, reg.AddEdition(core.CodeEdition{
		Family: "NBC", EditionID: "2020", Effective: day(2020, time.January, 1),
	}))
	require.NoError(t, reg.AddEdition(core.CodeEdition{
		Family: "NBC", EditionID: "2025", Effective: day(2025, time.January, 1),
	}))

	resolver := NewResolver(reg)
	codes := resolver.Resolve("ON", day(2026, time.January, 1))
	assert.Equal(t, []string{"NBC_2025"}, codes)
}

func TestResolveToleratesGaps(t *testing.T) {
	reg := NewMemoryRegistry()
	reg.AddFamily(core.CodeFamily{Code: "OBC", DisplayName: "Ontario Building Code"})
	reg.MapProvince("ON", "OBC")

	gapEnd := day(2010, time.January, 1)
	require.NoError(t, reg.AddEdition(core.CodeEdition{
		Family: "OBC", EditionID: "2006", Effective: day(2006, time.January, 1), Superseded: &gapEnd,
	}))
	require.NoError(t, reg.AddEdition(core.CodeEdition{
		Family: "OBC", EditionID: "2012", Effective: day(2012, time.January, 1),
	}))

	resolver := NewResolver(reg)
	assert.Empty(t, resolver.Resolve("ON", day(2011, time.June, 1)))
	assert.Equal(t, []string{"OBC_2006"}, resolver.Resolve("ON", day(2008, time.June, 1)))
	assert.Equal(t, []string{"OBC_2012"}, resolver.Resolve("ON", day(2013, time.June, 1)))
}
