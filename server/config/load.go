// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"fmt"
	"gopkg.in/yaml.v3"
	"os"
)

// DefaultPath is read if it exists and no path is given.
const DefaultPath = "./swell.yaml"

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	path := ConfigPath()
	if path == "" {
		if _, err := os.Stat(DefaultPath); err == nil {
			path = DefaultPath
		}
	}

	cfg, err := LoadFile(path)
	if err != nil {
		return nil, err
	}

	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadFile merges the YAML file at path over the defaults. An empty path
// returns the defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading config from %s: %w", path, err)
	}

	// Lists in the file replace the default lists.
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// UnmarshalYAML decodes a body over DefaultBody.
func (body *BodyConfig) UnmarshalYAML(value *yaml.Node) error {
	type plain BodyConfig
	decoded := plain(DefaultBody())
	if err := value.Decode(&decoded); err != nil {
		return err
	}
	*body = BodyConfig(decoded)
	return nil
}

// Save writes cfg as YAML.
func (cfg *Config) Save(path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
