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
	"regexp"

	"gitlab.com/tozd/go/errors"
)

// ErrEmptySearch is returned when a rule has nothing to search for.
var ErrEmptySearch = errors.Base("rule search text is empty")

// 🔄 Rule is a single literal, case-insensitive substitution
type Rule struct {
	Search  string // Text to find, matched literally ignoring case
	Replace string // Text inserted verbatim for every match
	Line    int    // Source line in the rule file, 0 for inline rules

	matcher *regexp.Regexp
}

// 🏭 New creates a rule and compiles its matcher
func New(search, replace string) (Rule, error) {
	if search == "" {
		return Rule{}, ErrEmptySearch
	}
	return Rule{
		Search:  search,
		Replace: replace,
		matcher: compile(search),
	}, nil
}

// compile never fails: QuoteMeta output is always a valid pattern.
func compile(search string) *regexp.Regexp {
	return regexp.MustCompile("(?i)" + regexp.QuoteMeta(search))
}

// 🎯 Apply replaces every occurrence of the search text in s and reports how
// many occurrences were replaced
func (r Rule) Apply(s string) (string, int) {
	if r.Search == "" {
		return s, 0
	}

	m := r.matcher
	if m == nil {
		m = compile(r.Search)
	}

	count := len(m.FindAllStringIndex(s, -1))
	if count == 0 {
		return s, 0
	}
	return m.ReplaceAllLiteralString(s, r.Replace), count
}

// String returns the rule in quoted rule-file form.
func (r Rule) String() string {
	return `"` + r.Search + `" "` + r.Replace + `"`
}

// 📚 RuleSet is an ordered list of rules, applied first to last
type RuleSet []Rule

// Apply runs every rule in order, each on the output of the previous one.
func (rs RuleSet) Apply(s string) string {
	for _, r := range rs {
		s, _ = r.Apply(s)
	}
	return s
}
