// Copyright 2025 walteh LLC
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

package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/renamerc/pkg/rules"
	"gitlab.com/tozd/go/errors"
)

// Collision suffix styles
const (
	SuffixClock = "clock"
	SuffixUUID  = "uuid"
)

// DefaultUnwantedExtensions are deleted in delete mode unless configured otherwise.
var DefaultUnwantedExtensions = []string{".nfo", ".txt"}

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 🔄 Replacement is an inline rule, applied after the rule file's rules
type Replacement struct {
	Old string `yaml:"old"`
	New string `yaml:"new"`
}

// 📚 Config represents the complete configuration
type Config struct {
	RulesFile          string        `yaml:"rules_file,omitempty"`
	Flatten            bool          `yaml:"flatten,omitempty"`
	Delete             bool          `yaml:"delete,omitempty"`
	Verbose            bool          `yaml:"verbose,omitempty"`
	Suffix             string        `yaml:"suffix,omitempty"`
	UnwantedExtensions []string      `yaml:"unwanted_extensions,omitempty"`
	IgnorePatterns     []string      `yaml:"ignore_patterns,omitempty"`
	Replacements       []Replacement `yaml:"replacements,omitempty"`

	location string
}

// 🏭 Default returns the configuration used when no file is given
func Default() *Config {
	cfg := &Config{}
	if err := cfg.Validate(); err != nil {
		panic(err)
	}
	return cfg
}

// 🎯 Load loads the configuration from a file
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	// Read config file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	// Get parser
	p := GetParser(strings.ToLower(path))
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	// Parse config
	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	// Relative rule files are found next to the config file
	if cfg.RulesFile != "" && !filepath.IsAbs(cfg.RulesFile) {
		cfg.RulesFile = filepath.Join(filepath.Dir(path), cfg.RulesFile)
	}
	cfg.location = path

	return cfg, nil
}

// 🔍 Validate checks the configuration and fills in defaults
func (cfg *Config) Validate() error {
	switch strings.ToLower(cfg.Suffix) {
	case "":
		cfg.Suffix = SuffixClock
	case SuffixClock, SuffixUUID:
		cfg.Suffix = strings.ToLower(cfg.Suffix)
	default:
		return errors.Errorf("suffix must be %q or %q, got %q", SuffixClock, SuffixUUID, cfg.Suffix)
	}

	if len(cfg.UnwantedExtensions) == 0 {
		cfg.UnwantedExtensions = append([]string(nil), DefaultUnwantedExtensions...)
	}
	for i, ext := range cfg.UnwantedExtensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" || ext == "." {
			return errors.Errorf("unwanted_extensions[%d] is empty", i)
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if strings.Count(ext, ".") > 1 {
			return errors.Errorf("unwanted_extensions[%d]: %q has more than one period", i, ext)
		}
		cfg.UnwantedExtensions[i] = ext
	}

	for i, pattern := range cfg.IgnorePatterns {
		if !doublestar.ValidatePattern(pattern) {
			return errors.Errorf("ignore_patterns[%d]: invalid pattern %q", i, pattern)
		}
	}

	for i, r := range cfg.Replacements {
		if r.Old == "" {
			return errors.Errorf("replacements[%d]: old is required", i)
		}
	}

	return nil
}

// 📜 InlineRules converts the configured replacements into rules
func (cfg *Config) InlineRules() (rules.RuleSet, error) {
	rs := make(rules.RuleSet, 0, len(cfg.Replacements))
	for i, r := range cfg.Replacements {
		rule, err := rules.New(r.Old, r.New)
		if err != nil {
			return nil, errors.Errorf("replacement %d: %w", i, err)
		}
		rs = append(rs, rule)
	}
	return rs, nil
}

// Location returns the file the configuration was loaded from, if any.
func (cfg *Config) Location() string {
	return cfg.location
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	rulesFile := cfg.RulesFile
	if rulesFile == "" {
		rulesFile = rules.DefaultFile
	}
	return fmt.Sprintf("rules=%s flatten=%t delete=%t suffix=%s unwanted=%s",
		rulesFile, cfg.Flatten, cfg.Delete, cfg.Suffix, strings.Join(cfg.UnwantedExtensions, ","))
}
