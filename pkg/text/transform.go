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

package text

import (
	"regexp"
	"strings"

	"github.com/walteh/renamerc/pkg/rules"
)

// Fallback is used when nothing is left of a base name.
const Fallback = "file"

var spaceRun = regexp.MustCompile(` {2,}`)

// separators become spaces in the base name
var separators = strings.NewReplacer("-", " ", "_", " ")

// 📦 Stage names one step of the transformation
type Stage string

const (
	StageSplit      Stage = "split"
	StageSeparators Stage = "separators"
	StagePeriods    Stage = "periods"
	StageRule       Stage = "rule"
	StageCollapse   Stage = "collapse"
	StageFallback   Stage = "fallback"
)

// 📝 Step records the base name after a stage changed it
type Step struct {
	Stage Stage
	Base  string
	Rule  *rules.Rule // Set for StageRule
	Count int         // Matches replaced by Rule
}

// 🎯 Result contains the outcome of transforming one filename
type Result struct {
	Original         string
	Name             string
	Parts            Parts
	Steps            []Step
	ReplacementCount int
}

// Changed reports whether the new name differs from the original.
func (r *Result) Changed() bool {
	return r.Name != r.Original
}

// 🔄 Transform returns the normalized form of name
func Transform(name string, rs rules.RuleSet) string {
	return Trace(name, rs).Name
}

// 🔍 Trace transforms name and records every stage that changed the base.
// Only the base is ever modified; the extension is carried through as is.
func Trace(name string, rs rules.RuleSet) *Result {
	parts := SplitName(name)
	res := &Result{Original: name, Parts: parts}
	res.Steps = append(res.Steps, Step{Stage: StageSplit, Base: parts.Base})

	base := parts.Base
	record := func(stage Stage, next string) {
		if next != base {
			res.Steps = append(res.Steps, Step{Stage: stage, Base: next})
		}
		base = next
	}

	record(StageSeparators, separators.Replace(base))
	record(StagePeriods, strings.ReplaceAll(base, ".", " "))

	for i := range rs {
		next, count := rs[i].Apply(base)
		if count > 0 {
			res.ReplacementCount += count
			res.Steps = append(res.Steps, Step{Stage: StageRule, Base: next, Rule: &rs[i], Count: count})
		}
		base = next
	}

	record(StageCollapse, strings.Trim(spaceRun.ReplaceAllString(base, " "), " "))

	if base == "" {
		record(StageFallback, Fallback)
	}

	res.Name = base + parts.Ext
	return res
}
