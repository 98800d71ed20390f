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

package rules

import (
	"bufio"
	"context"
	"io"
	"io/fs"
	"os"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// DefaultFile is the rule file loaded when none is given.
const DefaultFile = "replace.txt"

var (
	// "search" "replacement", both segments taken verbatim
	quotedLine = regexp.MustCompile(`^"([^"]*)"\s+"([^"]*)"$`)

	firstSpaceRun = regexp.MustCompile(`\s+`)
)

// 🎯 Load reads the rule file at path. It never fails the run: a missing or
// unreadable file yields an empty RuleSet and a warning.
func Load(ctx context.Context, path string) RuleSet {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading rules")

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Warn().Str("path", path).Msg("rule file not found, continuing without rules")
		} else {
			logger.Warn().Err(err).Str("path", path).Msg("rule file unreadable, continuing without rules")
		}
		return RuleSet{}
	}
	defer f.Close()

	return Parse(ctx, f)
}

// 📝 Parse reads rules line by line from r, in order. Malformed lines are
// skipped with a warning.
func Parse(ctx context.Context, r io.Reader) RuleSet {
	logger := zerolog.Ctx(ctx)

	rs := RuleSet{}
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if lineNo == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}

		rule, ok, err := parseLine(line)
		if err != nil {
			logger.Warn().Err(err).Int("line", lineNo).Str("text", line).Msg("skipping malformed rule")
			continue
		}
		if !ok {
			continue
		}

		rule.Line = lineNo
		rs = append(rs, rule)
		logger.Debug().
			Int("line", lineNo).
			Str("search", rule.Search).
			Str("replace", rule.Replace).
			Msg("rule loaded")
	}

	if err := scanner.Err(); err != nil {
		logger.Warn().Err(err).Int("line", lineNo+1).Msg("stopped reading rules early")
	}

	return rs
}

// parseLine returns ok=false for blank and comment lines.
func parseLine(line string) (Rule, bool, error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return Rule{}, false, nil
	}

	var search, replace string
	if m := quotedLine.FindStringSubmatch(line); m != nil {
		search, replace = m[1], m[2]
	} else {
		parts := firstSpaceRun.Split(line, 2)
		search = parts[0]
		if len(parts) == 2 {
			replace = strings.TrimSpace(parts[1])
		}
		if search == `""` {
			search = ""
		}
	}

	rule, err := New(search, replace)
	if err != nil {
		return Rule{}, false, errors.Errorf("parsing rule: %w", err)
	}
	return rule, true, nil
}
