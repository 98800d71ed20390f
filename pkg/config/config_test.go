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
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		config      string
		wantErr     bool
		errContains string
		check       func(t *testing.T, dir string, cfg *Config)
	}{
		{
			name:     "valid_yaml",
			filename: "renamerc.yaml",
			config: `
rules_file: rules/replace.txt
flatten: true
delete: true
suffix: UUID
unwanted_extensions: [".NFO", "sfv"]
ignore_patterns:
  - "**/*.partial"
replacements:
  - old: 1080p
    new: ""
  - old: colour
    new: color
`,
			check: func(t *testing.T, dir string, cfg *Config) {
				assert.Equal(t, filepath.Join(dir, "rules", "replace.txt"), cfg.RulesFile, "rules file should be relative to config")
				assert.True(t, cfg.Flatten, "flatten should be true")
				assert.True(t, cfg.Delete, "delete should be true")
				assert.False(t, cfg.Verbose, "verbose should default to false")
				assert.Equal(t, SuffixUUID, cfg.Suffix, "suffix should be normalized")
				assert.Equal(t, []string{".nfo", ".sfv"}, cfg.UnwantedExtensions, "extensions should be normalized")
				assert.Equal(t, []string{"**/*.partial"}, cfg.IgnorePatterns)
				require.Len(t, cfg.Replacements, 2, "should have 2 replacements")
				assert.Equal(t, Replacement{Old: "1080p", New: ""}, cfg.Replacements[0])
				assert.Equal(t, Replacement{Old: "colour", New: "color"}, cfg.Replacements[1])
			},
		},
		{
			name:     "empty_yaml_uses_defaults",
			filename: "renamerc.yml",
			config:   "",
			check: func(t *testing.T, dir string, cfg *Config) {
				assert.Equal(t, "", cfg.RulesFile)
				assert.Equal(t, SuffixClock, cfg.Suffix)
				assert.Equal(t, DefaultUnwantedExtensions, cfg.UnwantedExtensions)
			},
		},
		{
			name:     "valid_hcl",
			filename: "renamerc.hcl",
			config: `
rules_file = "/etc/renamerc/replace.txt"
flatten = true
unwanted_extensions = [".nfo"]
ignore_patterns = ["Extras/**"]

replacement {
  old = "WEBRip"
}

replacement {
  old = "x264"
  new = "H264"
}
`,
			check: func(t *testing.T, dir string, cfg *Config) {
				assert.Equal(t, "/etc/renamerc/replace.txt", cfg.RulesFile, "absolute rules file is kept")
				assert.True(t, cfg.Flatten)
				assert.False(t, cfg.Delete)
				assert.Equal(t, []string{".nfo"}, cfg.UnwantedExtensions)
				assert.Equal(t, []string{"Extras/**"}, cfg.IgnorePatterns)
				require.Len(t, cfg.Replacements, 2)
				assert.Equal(t, Replacement{Old: "WEBRip"}, cfg.Replacements[0])
				assert.Equal(t, Replacement{Old: "x264", New: "H264"}, cfg.Replacements[1])
			},
		},
		{
			name:        "unknown_yaml_field",
			filename:    "renamerc.yaml",
			config:      "flattn: true\n",
			wantErr:     true,
			errContains: "parsing YAML",
		},
		{
			name:        "bad_suffix",
			filename:    "renamerc.yaml",
			config:      "suffix: random\n",
			wantErr:     true,
			errContains: "suffix must be",
		},
		{
			name:        "bad_ignore_pattern",
			filename:    "renamerc.yaml",
			config:      "ignore_patterns: [\"[abc\"]\n",
			wantErr:     true,
			errContains: "invalid pattern",
		},
		{
			name:        "empty_replacement_old",
			filename:    "renamerc.yaml",
			config:      "replacements:\n  - new: x\n",
			wantErr:     true,
			errContains: "old is required",
		},
		{
			name:        "double_extension",
			filename:    "renamerc.yaml",
			config:      "unwanted_extensions: [\".tar.gz\"]\n",
			wantErr:     true,
			errContains: "more than one period",
		},
		{
			name:        "invalid_hcl",
			filename:    "renamerc.hcl",
			config:      "flatten = \n",
			wantErr:     true,
			errContains: "parsing HCL",
		},
		{
			name:        "unsupported_extension",
			filename:    "renamerc.toml",
			config:      "flatten = true\n",
			wantErr:     true,
			errContains: "no parser found",
		},
	}

	ctx := zerolog.New(os.Stderr).WithContext(context.Background())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Create temporary config file
			tmpDir := t.TempDir()
			configPath := filepath.Join(tmpDir, tt.filename)
			err := os.WriteFile(configPath, []byte(tt.config), 0644)
			require.NoError(t, err, "writing config file should succeed")

			// Load config
			cfg, err := Load(ctx, configPath)
			if tt.wantErr {
				require.Error(t, err, "Load should return error")
				assert.Contains(t, err.Error(), tt.errContains, "error should contain expected message")
				return
			}

			require.NoError(t, err, "Load should succeed")
			assert.Equal(t, configPath, cfg.Location())
			if tt.check != nil {
				tt.check(t, tmpDir, cfg)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	ctx := zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
	_, err := Load(ctx, filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, SuffixClock, cfg.Suffix)
	assert.Equal(t, []string{".nfo", ".txt"}, cfg.UnwantedExtensions)

	cfg.UnwantedExtensions[0] = ".changed"
	assert.Equal(t, ".nfo", DefaultUnwantedExtensions[0], "defaults must not be shared")
}

func TestInlineRules(t *testing.T) {
	cfg := &Config{Replacements: []Replacement{{Old: "a", New: "b"}, {Old: "b", New: "c"}}}
	rs, err := cfg.InlineRules()
	require.NoError(t, err)
	require.Len(t, rs, 2)
	assert.Equal(t, "c", rs.Apply("A"))

	_, err = (&Config{Replacements: []Replacement{{New: "x"}}}).InlineRules()
	assert.Error(t, err)
}

func TestConfigString(t *testing.T) {
	tests := []struct {
		name string
		cfg  *Config
		want string
	}{
		{
			name: "defaults",
			cfg:  Default(),
			want: "rules=replace.txt flatten=false delete=false suffix=clock unwanted=.nfo,.txt",
		},
		{
			name: "full_config",
			cfg: &Config{
				RulesFile:          "/tmp/rules.txt",
				Flatten:            true,
				Delete:             true,
				Suffix:             SuffixUUID,
				UnwantedExtensions: []string{".nfo"},
			},
			want: "rules=/tmp/rules.txt flatten=true delete=true suffix=uuid unwanted=.nfo",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.cfg.String()
			assert.Equal(t, tt.want, got, "String() should match")
		})
	}
}

// docExample returns the indented example following heading in the package
// documentation, with one level of indentation removed.
func docExample(t *testing.T, heading string) string {
	t.Helper()
	f, err := parser.ParseFile(token.NewFileSet(), "doc.go", nil, parser.ParseComments|parser.PackageClauseOnly)
	require.NoError(t, err, "doc.go should parse")
	require.NotNil(t, f.Doc, "package documentation should be attached")

	_, after, found := strings.Cut(f.Doc.Text(), heading)
	require.True(t, found, "heading %q should be documented", heading)

	var lines []string
	for _, line := range strings.Split(after, "\n") {
		if line != "" && !strings.HasPrefix(line, "\t") {
			break
		}
		lines = append(lines, strings.TrimPrefix(line, "\t"))
	}
	return strings.TrimSpace(strings.Join(lines, "\n")) + "\n"
}

func TestDocExamples(t *testing.T) {
	tests := []struct {
		name     string
		heading  string
		filename string
		check    func(t *testing.T, cfg *Config)
	}{
		{
			name:     "yaml",
			heading:  "Example (YAML):",
			filename: "renamerc.yaml",
			check: func(t *testing.T, cfg *Config) {
				assert.True(t, cfg.Flatten)
				assert.Equal(t, SuffixUUID, cfg.Suffix)
				assert.Equal(t, []string{"*.partial", "Extras/**"}, cfg.IgnorePatterns)
				require.Len(t, cfg.Replacements, 1)
			},
		},
		{
			name:     "hcl",
			heading:  "Example (HCL):",
			filename: "renamerc.hcl",
			check: func(t *testing.T, cfg *Config) {
				assert.True(t, cfg.Flatten)
				assert.Equal(t, SuffixClock, cfg.Suffix)
				require.Len(t, cfg.Replacements, 1)
				assert.Equal(t, "1080p", cfg.Replacements[0].Old)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.filename)
			require.NoError(t, os.WriteFile(path, []byte(docExample(t, tt.heading)), 0644))

			ctx := zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
			cfg, err := Load(ctx, path)
			require.NoError(t, err, "documented example should load")
			tt.check(t, cfg)
		})
	}
}
