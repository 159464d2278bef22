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
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/urfave/cli/v2"
)

// cliConfig is the YAML configuration file shape. Every value can also come
// from a CODECHRONICLE_* environment variable (CODECHRONICLE_AI_HOST, ...) or
// be overridden by a command-line flag.
type cliConfig struct {
	DB          string `koanf:"db"`
	Regulations string `koanf:"regulations"`
	AI          struct {
		Host  string `koanf:"host"`
		Model string `koanf:"model"`
		Token string `koanf:"token"`
	} `koanf:"ai"`
}

// loadConfig reads the YAML file (when given and present), then overlays
// CODECHRONICLE_* environment variables. A missing file is not an error.
func loadConfig(path string) (*cliConfig, error) {
	k := koanf.New(".")

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	// CODECHRONICLE_AI_HOST -> ai.host, CODECHRONICLE_DB -> db, etc.
	if err := k.Load(env.Provider("CODECHRONICLE_", ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, "CODECHRONICLE_")), "_", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	cfg := &cliConfig{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	return cfg, nil
}

// resolveSetting applies the precedence flag > config file/env > flag default.
func resolveSetting(c *cli.Context, flagName, configured string) string {
	if c.IsSet(flagName) || configured == "" {
		return c.String(flagName)
	}
	return configured
}
