package interpret

import (
	"context"
	"testing"
	"time"

	"github.com/poiesic/codechronicle/ai"
	"github.com/poiesic/codechronicle/ai/mock"
	"github.com/poiesic/codechronicle/core"
	"github.com/poiesic/codechronicle/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testToday = time.Date(2026, time.August, 28, 0, 0, 0, 0, time.UTC)

func fixedClock() time.Time {
	return time.Date(2026, time.August, 28, 15, 4, 5, 0, time.UTC)
}

func newTestInterpreter(t *testing.T, parser ai.QueryParser) *Interpreter {
	t.Helper()
	_, cache, _, backend, err := badger.NewMemoryStores()
	require.NoError(t, err)
	t.Cleanup(func() { cache.Close(); backend.Close() })
	return NewInterpreter(parser, cache, WithClock(fixedClock))
}

func TestInterpretEmptyQuery(t *testing.T) {
	interpreter := newTestInterpreter(t, mock.NewMockQueryParser())
	_, err := interpreter.Interpret(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyQuery)
}

func TestInterpretRefsOnlySkipsModel(t *testing.T) {
	parser := mock.NewMockQueryParser()
	interpreter := newTestInterpreter(t, parser)

	params, err := interpreter.Interpret(context.Background(), "3.1.8.5")
	require.NoError(t, err)

	assert.Equal(t, 0, parser.CallCount())
	assert.Equal(t, []string{"3.1.8.5"}, params.SectionRefs)
	assert.Empty(t, params.Keywords)
	assert.Equal(t, DefaultProvince, params.Province)
	assert.True(t, params.Date.Equal(testToday))
}

func TestInterpretParsesAndCaches(t *testing.T) {
	parser := mock.NewMockQueryParser()
	parser.ParseQueryFunc = func(ctx context.Context, text string) (*ai.ParsedFields, error) {
		return &ai.ParsedFields{
			Date:     "2019",
			Keywords: []string{"fire", "doors", "flibbertigibbet"},
			Province: "BC",
		}, nil
	}
	interpreter := newTestInterpreter(t, parser)
	ctx := context.Background()

	params, err := interpreter.Interpret(ctx, "fire doors in BC in 2019")
	require.NoError(t, err)
	assert.Equal(t, 1, parser.CallCount())
	// Vocabulary validation drops unrecognized terms.
	assert.Equal(t, []string{"fire", "doors"}, params.Keywords)
	assert.Equal(t, "BC", params.Province)
	// Bare year resolves to January 1.
	assert.True(t, params.Date.Equal(time.Date(2019, time.January, 1, 0, 0, 0, 0, time.UTC)))

	// Second interpretation is served from cache; the model is not consulted.
	again, err := interpreter.Interpret(ctx, "fire doors in BC in 2019")
	require.NoError(t, err)
	assert.Equal(t, 1, parser.CallCount())
	assert.Equal(t, params.Keywords, again.Keywords)
	assert.True(t, again.Date.Equal(params.Date))
}

func TestInterpretDateAndProvinceDefaults(t *testing.T) {
	parser := mock.NewMockQueryParser()
	parser.ParseQueryFunc = func(ctx context.Context, text string) (*ai.ParsedFields, error) {
		return &ai.ParsedFields{Keywords: []string{"plumbing"}}, nil
	}
	interpreter := newTestInterpreter(t, parser)

	params, err := interpreter.Interpret(context.Background(), "backflow rules")
	require.NoError(t, err)
	assert.True(t, params.Date.Equal(testToday))
	assert.Equal(t, DefaultProvince, params.Province)
}

func TestInterpretRefsOverlaidNotCached(t *testing.T) {
	parser := mock.NewMockQueryParser()
	parser.ParseQueryFunc = func(ctx context.Context, text string) (*ai.ParsedFields, error) {
		return &ai.ParsedFields{Keywords: []string{"doors"}}, nil
	}

	_, cache, _, backend, err := badger.NewMemoryStores()
	require.NoError(t, err)
	t.Cleanup(func() { cache.Close(); backend.Close() })
	interpreter := NewInterpreter(parser, cache, WithClock(fixedClock))
	ctx := context.Background()

	params, err := interpreter.Interpret(ctx, "doors near 3.1.8.5")
	require.NoError(t, err)
	assert.Equal(t, []string{"3.1.8.5"}, params.SectionRefs)

	// The cached value carries keywords only, no references.
	queryHash := core.IDFromContent("doors near 3.1.8.5")
	promptHash := core.IDFromContent(parser.PromptVersion())
	cached, err := cache.Get(ctx, queryHash, promptHash)
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.Empty(t, cached.Params.SectionRefs)
	assert.Equal(t, []string{"doors"}, cached.Params.Keywords)
}

func TestInterpretBackendReceivesResidualText(t *testing.T) {
	var received string
	parser := mock.NewMockQueryParser()
	parser.ParseQueryFunc = func(ctx context.Context, text string) (*ai.ParsedFields, error) {
		received = text
		return &ai.ParsedFields{Keywords: []string{"fire", "doors"}}, nil
	}
	interpreter := newTestInterpreter(t, parser)

	params, err := interpreter.Interpret(context.Background(), "fire doors near 9.10.14.5")
	require.NoError(t, err)

	// The model never sees the section reference; it is extracted lexically
	// and overlaid on the result.
	assert.Equal(t, "fire doors near", received)
	assert.Equal(t, []string{"9.10.14.5"}, params.SectionRefs)
}

func TestInterpretCachesRefRescuedEmptyKeywords(t *testing.T) {
	parser := mock.NewMockQueryParser()
	parser.ParseQueryFunc = func(ctx context.Context, text string) (*ai.ParsedFields, error) {
		return &ai.ParsedFields{}, nil
	}

	_, cache, _, backend, err := badger.NewMemoryStores()
	require.NoError(t, err)
	t.Cleanup(func() { cache.Close(); backend.Close() })
	interpreter := NewInterpreter(parser, cache, WithClock(fixedClock))
	ctx := context.Background()

	params, err := interpreter.Interpret(ctx, "please show 9.10.14.5 thanks")
	require.NoError(t, err)
	assert.Empty(t, params.Keywords)
	assert.Equal(t, []string{"9.10.14.5"}, params.SectionRefs)

	// A repeat of the same question is served from cache even though the
	// residual text yielded no vocabulary keywords.
	_, err = interpreter.Interpret(ctx, "please show 9.10.14.5 thanks")
	require.NoError(t, err)
	assert.Equal(t, 1, parser.CallCount())

	// References are overlaid per call, never part of the cached payload.
	cached, err := cache.Get(ctx,
		core.IDFromContent("please show 9.10.14.5 thanks"),
		core.IDFromContent(parser.PromptVersion()))
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.Empty(t, cached.Params.Keywords)
	assert.Empty(t, cached.Params.SectionRefs)
}

func TestInterpretNoRecognizedTerms(t *testing.T) {
	parser := mock.NewMockQueryParser()
	parser.ParseQueryFunc = func(ctx context.Context, text string) (*ai.ParsedFields, error) {
		return &ai.ParsedFields{Keywords: []string{"zamboni"}}, nil
	}
	interpreter := newTestInterpreter(t, parser)

	_, err := interpreter.Interpret(context.Background(), "zamboni parking rules")
	assert.ErrorIs(t, err, ErrNoRecognizedTerms)
}

func TestInterpretCacheHitIncrementsCounter(t *testing.T) {
	parser := mock.NewMockQueryParser()
	parser.ParseQueryFunc = func(ctx context.Context, text string) (*ai.ParsedFields, error) {
		return &ai.ParsedFields{Keywords: []string{"fire"}}, nil
	}

	_, cache, _, backend, err := badger.NewMemoryStores()
	require.NoError(t, err)
	t.Cleanup(func() { cache.Close(); backend.Close() })
	interpreter := NewInterpreter(parser, cache, WithClock(fixedClock))
	ctx := context.Background()

	_, err = interpreter.Interpret(ctx, "fire rules")
	require.NoError(t, err)
	_, err = interpreter.Interpret(ctx, "FIRE rules")
	require.NoError(t, err)

	// Same query modulo case; one parse, one hit.
	assert.Equal(t, 1, parser.CallCount())
	cached, err := cache.Get(ctx, core.IDFromContent("fire rules"), core.IDFromContent(parser.PromptVersion()))
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.Equal(t, int64(1), cached.Hits)
}
