package codechronicle

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/poiesic/codechronicle/ai"
	"github.com/poiesic/codechronicle/ai/mock"
	"github.com/poiesic/codechronicle/core"
	"github.com/poiesic/codechronicle/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ontarioRegistry builds a one-family registry with a current Ontario edition
// carrying PDF provenance, so display formatting has something to show.
func ontarioRegistry(t *testing.T) *registry.MemoryRegistry {
	t.Helper()
	reg := registry.NewMemoryRegistry()
	reg.AddFamily(core.CodeFamily{Code: "OBC", DisplayName: "Ontario Building Code"})
	reg.MapProvince("ON", "OBC")
	require.NoError(t, reg.AddEdition(core.CodeEdition{
		Family:    "OBC",
		EditionID: "2024",
		Year:      2024,
		MapCodes:  []string{"OBC_2024_v1"},
		Effective: time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
		PDFFiles:  map[string]string{"OBC_2024_v1": "obc-2024-vol1.pdf"},
		SourceURL: "https://www.ontario.ca/laws/regulation/r24163",
	}))
	return reg
}

func newTestService(t *testing.T, parser ai.QueryParser) *Service {
	t.Helper()
	service, err := NewService("",
		WithInMemory(),
		WithQueryParser(parser),
		WithRegistry(ontarioRegistry(t)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { service.Close() })

	ctx := context.Background()
	require.NoError(t, service.SectionRepository().PutSections(ctx, "OBC_2024_v1",
		&core.Section{
			ID:       "3.1.8.1",
			Title:    "Fire Separations",
			Page:     120,
			Keywords: []string{"fire", "separation"},
			HTML:     "<p>Fire separations shall be provided.</p>",
		},
		&core.Section{
			ID:       "9.9.9.1",
			Title:    "Exits",
			Page:     512,
			Keywords: []string{"fire", "exit"},
			HTML:     "<p>Exits shall be provided.</p>",
		},
	))
	return service
}

func TestRunSearchEndToEnd(t *testing.T) {
	service := newTestService(t, mock.NewMockQueryParser())
	ctx := context.Background()

	response := service.RunSearch(ctx, "fire separation requirements", &SearchOptions{
		IPAddress: "203.0.113.7",
	})

	require.True(t, response.Success, "unexpected error: %s", response.Error)
	assert.Equal(t, []string{"OBC_2024"}, response.ApplicableCodes)

	require.NotNil(t, response.ParsedParams)
	assert.Equal(t, []string{"fire", "separation"}, response.ParsedParams.Keywords)
	assert.Equal(t, "ON", response.ParsedParams.Province)

	// Both sections match on the "fire" keyword; the one covering both query
	// terms sorts first.
	require.Len(t, response.Results, 2)
	top := response.Results[0]
	assert.Equal(t, "3.1.8.1", top.ID)
	assert.Equal(t, "Fire Separations", top.Title)
	assert.Equal(t, "OBC_2024", top.Code)
	assert.Equal(t, "Ontario Building Code 2024", top.CodeDisplayName)
	assert.Equal(t, "obc-2024-vol1.pdf", top.PDFFilename)
	assert.Equal(t, "https://www.ontario.ca/laws/regulation/r24163", top.SourceURL)
	assert.Equal(t, "<p>Fire separations shall be provided.</p>", top.HTML)
	assert.Greater(t, top.Score, response.Results[1].Score)

	require.NotEmpty(t, response.TopResults)
	assert.Equal(t, "OBC_2024", response.TopResults[0].Code)
	assert.Equal(t, "3.1.8.1", response.TopResults[0].SectionID)

	// The search is recorded: anonymous actor, tracked by client IP.
	entries, err := service.HistoryRepository().Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "fire separation requirements", entries[0].Query)
	assert.Equal(t, "anonymous", entries[0].Actor)
	assert.Equal(t, "203.0.113.7", entries[0].IPAddress)
	assert.Equal(t, 2, entries[0].ResultCount)
	assert.Equal(t, response.TopResults, entries[0].TopResults)
}

func TestRunSearchNamedActorOmitsIP(t *testing.T) {
	service := newTestService(t, mock.NewMockQueryParser())
	ctx := context.Background()

	response := service.RunSearch(ctx, "fire rating", &SearchOptions{
		Actor:     "inspector.gadget",
		IPAddress: "203.0.113.7",
	})
	require.True(t, response.Success)

	entries, err := service.HistoryRepository().Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "inspector.gadget", entries[0].Actor)
	assert.Empty(t, entries[0].IPAddress)
}

func TestRunSearchDateOverride(t *testing.T) {
	service := newTestService(t, mock.NewMockQueryParser())

	response := service.RunSearch(context.Background(), "fire separations", &SearchOptions{
		DateOverride: "1950-01-01",
	})
	assert.False(t, response.Success)
	assert.Equal(t, "No building codes found for ON on 1950-01-01", response.Error)
}

func TestRunSearchProvinceOverride(t *testing.T) {
	service := newTestService(t, mock.NewMockQueryParser())

	// Lower-cased input is normalized; BC has no coverage in this registry.
	response := service.RunSearch(context.Background(), "fire separations", &SearchOptions{
		ProvinceOverride: "bc",
	})
	assert.False(t, response.Success)
	assert.Contains(t, response.Error, "for BC on")
}

func TestRunSearchMalformedDateOverrideIgnored(t *testing.T) {
	service := newTestService(t, mock.NewMockQueryParser())

	response := service.RunSearch(context.Background(), "fire separations", &SearchOptions{
		DateOverride: "last tuesday",
	})
	assert.True(t, response.Success)
}

func TestRunSearchUserErrors(t *testing.T) {
	service := newTestService(t, mock.NewMockQueryParser())

	t.Run("no recognized terms", func(t *testing.T) {
		response := service.RunSearch(context.Background(), "hello there", nil)
		assert.False(t, response.Success)
		assert.Contains(t, response.Error, "No recognized search terms")
		assert.Contains(t, response.Error, "Try terms like")
	})

	t.Run("empty query", func(t *testing.T) {
		response := service.RunSearch(context.Background(), "   ", nil)
		assert.False(t, response.Success)
		assert.Equal(t, "Query is empty", response.Error)
	})

	t.Run("failures are not recorded", func(t *testing.T) {
		entries, err := service.HistoryRepository().Recent(context.Background(), 10)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}

func TestRunSearchBackendFailuresAreSanitized(t *testing.T) {
	parser := mock.NewMockQueryParser()
	service := newTestService(t, parser)

	t.Run("unavailable", func(t *testing.T) {
		parser.ParseQueryFunc = func(ctx context.Context, text string) (*ai.ParsedFields, error) {
			return nil, fmt.Errorf("%w: connection refused", ai.ErrUnavailable)
		}
		response := service.RunSearch(context.Background(), "fire separations", nil)
		assert.False(t, response.Success)
		assert.Equal(t, "Search engine unavailable. Please try again later.", response.Error)
	})

	t.Run("authentication", func(t *testing.T) {
		parser.ParseQueryFunc = func(ctx context.Context, text string) (*ai.ParsedFields, error) {
			return nil, fmt.Errorf("%w: status 401", ai.ErrAuthentication)
		}
		response := service.RunSearch(context.Background(), "fire separations", nil)
		assert.False(t, response.Success)
		assert.Equal(t, "Search engine authentication failure. Please check the API token configuration.", response.Error)
	})
}

func TestRunSearchReferenceOnlyQuery(t *testing.T) {
	parser := mock.NewMockQueryParser()
	service := newTestService(t, parser)

	response := service.RunSearch(context.Background(), "3.1.8.1", nil)
	require.True(t, response.Success, "unexpected error: %s", response.Error)
	require.Len(t, response.Results, 1)
	assert.Equal(t, "3.1.8.1", response.Results[0].ID)
	assert.Equal(t, "section_ref", response.Results[0].Match)

	// Reference lookups never consult the language model.
	assert.Equal(t, 0, parser.CallCount())
}
