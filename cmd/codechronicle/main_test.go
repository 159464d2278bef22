package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func TestSetupLogger(t *testing.T) {
	newApp := func() *cli.App {
		return &cli.App{
			Name: "test",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "log-level",
					Value: "info",
				},
			},
			Before: setupLogger,
			Action: func(c *cli.Context) error { return nil },
		}
	}

	t.Run("valid log levels", func(t *testing.T) {
		for _, level := range []string{"debug", "info", "warn", "error"} {
			t.Run(level, func(t *testing.T) {
				err := newApp().Run([]string{"test", "--log-level", level})
				require.NoError(t, err)
			})
		}
	})

	t.Run("case insensitive log levels", func(t *testing.T) {
		for _, level := range []string{"DEBUG", "Info", "WaRn", "ERROR"} {
			t.Run(level, func(t *testing.T) {
				err := newApp().Run([]string{"test", "--log-level", level})
				require.NoError(t, err)
			})
		}
	})

	t.Run("invalid log level returns error", func(t *testing.T) {
		err := newApp().Run([]string{"test", "--log-level", "invalid"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
	})
}

func TestLoadConfig(t *testing.T) {
	t.Run("missing file yields defaults", func(t *testing.T) {
		cfg, err := loadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
		require.NoError(t, err)
		assert.Empty(t, cfg.DB)
		assert.Empty(t, cfg.AI.Host)
	})

	t.Run("yaml values load", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte(
			"db: /var/lib/codechronicle\nai:\n  host: http://llm.internal:8080/v1\n  model: qwen2.5:7b\n"), 0o644))

		cfg, err := loadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "/var/lib/codechronicle", cfg.DB)
		assert.Equal(t, "http://llm.internal:8080/v1", cfg.AI.Host)
		assert.Equal(t, "qwen2.5:7b", cfg.AI.Model)
	})

	t.Run("environment overrides the file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("ai:\n  model: qwen2.5:7b\n"), 0o644))
		t.Setenv("CODECHRONICLE_AI_MODEL", "gpt-4o-mini")
		t.Setenv("CODECHRONICLE_DB", "/tmp/db")

		cfg, err := loadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "gpt-4o-mini", cfg.AI.Model)
		assert.Equal(t, "/tmp/db", cfg.DB)
	})
}

func TestResolveSetting(t *testing.T) {
	run := func(t *testing.T, args []string, configured, expected string) {
		t.Helper()
		app := &cli.App{
			Name: "test",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "ai-model", Value: "qwen2.5:3b"},
			},
			Action: func(c *cli.Context) error {
				assert.Equal(t, expected, resolveSetting(c, "ai-model", configured))
				return nil
			},
		}
		require.NoError(t, app.Run(args))
	}

	t.Run("explicit flag wins over config", func(t *testing.T) {
		run(t, []string{"test", "--ai-model", "gpt-4o-mini"}, "qwen2.5:7b", "gpt-4o-mini")
	})

	t.Run("config wins over flag default", func(t *testing.T) {
		run(t, []string{"test"}, "qwen2.5:7b", "qwen2.5:7b")
	})

	t.Run("flag default when nothing configured", func(t *testing.T) {
		run(t, []string{"test"}, "", "qwen2.5:3b")
	})
}

func TestConvertEntries(t *testing.T) {
	entries := []mapEntry{
		{ID: "3.1.8.1", Title: "Fire Separations", Page: 120, Keywords: []string{"fire"}, BBox: []float64{1, 2, 3, 4}},
		{ID: "", Title: "orphan"},
		{ID: "3.1.8.1", Title: "Duplicate"},
		{ID: "t-9.10.3.1", Title: "Fire-Resistance Ratings", BBox: []float64{1, 2}},
	}

	sections := convertEntries(entries)
	require.Len(t, sections, 2)

	assert.Equal(t, "3.1.8.1", sections[0].ID)
	assert.Equal(t, "Fire Separations", sections[0].Title)
	require.NotNil(t, sections[0].BBox)
	assert.Equal(t, 3.0, sections[0].BBox.X1)

	// Truncated bbox is dropped rather than guessed at.
	assert.Equal(t, "t-9.10.3.1", sections[1].ID)
	assert.Nil(t, sections[1].BBox)
}

func TestSearchCommandRequiresQuery(t *testing.T) {
	app := &cli.App{
		Name: "codechronicle",
		Commands: []*cli.Command{
			{
				Name:   "search",
				Action: searchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "db"},
					&cli.StringFlag{Name: "config"},
				},
			},
		},
	}

	err := app.Run([]string{"codechronicle", "search"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "query argument is required")
}

func TestLoadCommandRequiresFile(t *testing.T) {
	app := &cli.App{
		Name: "codechronicle",
		Commands: []*cli.Command{
			{
				Name:   "load",
				Action: loadCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "db", Required: true},
					&cli.StringFlag{Name: "map-code"},
				},
			},
		},
	}

	err := app.Run([]string{"codechronicle", "load", "--db", t.TempDir()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "map JSON file argument is required")
}
