// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/poiesic/codechronicle"
	"github.com/poiesic/codechronicle/ai"
	"github.com/poiesic/codechronicle/registry"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "codechronicle",
		Usage: "Historical Canadian building code search",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "search",
				Usage:     "Answer a natural-language building code question",
				ArgsUsage: "\"query\"",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "db",
						Aliases: []string{"d"},
						Usage:   "Path to BadgerDB database directory",
					},
					&cli.StringFlag{
						Name:  "config",
						Usage: "Path to YAML configuration file",
					},
					&cli.StringFlag{
						Name:  "date",
						Usage: "Override the interpreted date (YYYY-MM-DD)",
					},
					&cli.StringFlag{
						Name:  "province",
						Usage: "Override the interpreted province code",
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Per-document result limit",
					},
					&cli.StringFlag{
						Name:  "ai-host",
						Usage: "Chat completion host URL",
					},
					&cli.StringFlag{
						Name:  "ai-model",
						Usage: "Query-parsing model name",
					},
					&cli.StringFlag{
						Name:  "ai-token",
						Usage: "API token for the chat completion host",
					},
					&cli.StringFlag{
						Name:  "regulations",
						Usage: "Path to a regulations.json file of historical editions",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Print the full response as JSON",
					},
				},
			},
			{
				Name:   "editions",
				Usage:  "List the code editions in force for a province and date",
				Action: editionsCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "province",
						Usage: "Two-letter province abbreviation",
						Value: "ON",
					},
					&cli.StringFlag{
						Name:  "date",
						Usage: "As-of date (YYYY-MM-DD), defaults to today",
					},
					&cli.StringFlag{
						Name:  "regulations",
						Usage: "Path to a regulations.json file of historical editions",
					},
				},
			},
			{
				Name:      "load",
				Usage:     "Import a sectioned map JSON file into the section store",
				ArgsUsage: "file.json",
				Action:    loadCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "map-code",
						Usage: "Document identifier, defaults to the file name stem",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func searchCommand(c *cli.Context) error {
	ctx := context.Background()

	query := strings.TrimSpace(c.Args().First())
	if query == "" {
		return fmt.Errorf("a query argument is required")
	}

	cfg, err := loadConfig(c.String("config"))
	if err != nil {
		return err
	}

	dbPath := resolveSetting(c, "db", cfg.DB)
	if dbPath == "" {
		return fmt.Errorf("database path is required (--db or config)")
	}

	aiConfig := ai.NewConfig()
	if host := resolveSetting(c, "ai-host", cfg.AI.Host); host != "" {
		aiConfig.Host = host
	}
	if model := resolveSetting(c, "ai-model", cfg.AI.Model); model != "" {
		aiConfig.Model = model
	}
	if token := resolveSetting(c, "ai-token", cfg.AI.Token); token != "" {
		aiConfig.Token = token
	}
	if err := aiConfig.Validate(); err != nil {
		return fmt.Errorf("invalid AI configuration: %w", err)
	}

	options := []codechronicle.ServiceOption{
		codechronicle.WithAIConfig(aiConfig),
	}
	if regulations := resolveSetting(c, "regulations", cfg.Regulations); regulations != "" {
		options = append(options, codechronicle.WithRegulations(regulations))
	}

	service, err := codechronicle.NewService(dbPath, options...)
	if err != nil {
		return fmt.Errorf("failed to open service: %w", err)
	}
	defer service.Close()

	response := service.RunSearch(ctx, query, &codechronicle.SearchOptions{
		DateOverride:     c.String("date"),
		ProvinceOverride: c.String("province"),
		Limit:            c.Int("limit"),
	})

	if c.Bool("json") {
		return printJSON(response)
	}
	return printResponse(response)
}

func printResponse(response *codechronicle.SearchResponse) error {
	if !response.Success {
		return cli.Exit(response.Error, 1)
	}

	if len(response.ApplicableCodes) > 0 {
		fmt.Printf("Applicable codes: %s\n", strings.Join(response.ApplicableCodes, ", "))
	}
	if response.Message != "" {
		fmt.Println(response.Message)
	}
	for _, result := range response.Results {
		location := ""
		if result.Page > 0 {
			location = fmt.Sprintf(", p.%d", result.Page)
		}
		fmt.Printf("%.3f  %-12s %s (%s%s)\n",
			result.Score, result.ID, result.Title, result.CodeDisplayName, location)
	}
	if len(response.Results) == 0 && response.Message == "" {
		fmt.Println("No results.")
	}
	return nil
}

func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func editionsCommand(c *cli.Context) error {
	reg := registry.DefaultRegistry()
	if path := c.String("regulations"); path != "" {
		if err := registry.LoadRegulations(reg, path, slog.Default()); err != nil {
			return err
		}
	}

	asOf := time.Now().UTC()
	if value := c.String("date"); value != "" {
		parsed, err := time.Parse("2006-01-02", value)
		if err != nil {
			return fmt.Errorf("invalid date %q: expected YYYY-MM-DD", value)
		}
		asOf = parsed
	}
	province := strings.ToUpper(strings.TrimSpace(c.String("province")))

	resolver := registry.NewResolver(reg)
	names := resolver.Resolve(province, asOf)
	if len(names) == 0 {
		return cli.Exit(fmt.Sprintf("no building codes found for %s on %s", province, asOf.Format("2006-01-02")), 1)
	}

	for _, name := range names {
		edition, ok := reg.Edition(name)
		if !ok {
			continue
		}
		until := "current"
		if edition.Superseded != nil {
			until = edition.Superseded.Format("2006-01-02")
		}
		fmt.Printf("%-16s %s (%s to %s, %d documents)\n",
			name,
			reg.DisplayName(edition.Family),
			edition.Effective.Format("2006-01-02"),
			until,
			len(edition.MapCodes))
	}
	return nil
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
