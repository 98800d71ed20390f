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

package status

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// 🎨 Display configuration
const (
	fileIndent  = 4  // spaces to indent file entries
	nameWidth   = 40 // Base width for the original path
	statusWidth = 10 // Width for status text
)

// 🎯 FormatOperation formats a file operation for display
func FormatOperation(op Operation) string {
	var prefix string
	var statusColor *color.Color
	switch op.Status {
	case StatusRenamed:
		prefix = color.YellowString("⟳")
		statusColor = color.New(color.FgYellow)
	case StatusMoved:
		prefix = color.BlueString("↳")
		statusColor = color.New(color.FgBlue)
	case StatusDeleted:
		prefix = color.RedString("✗")
		statusColor = color.New(color.FgRed)
	case StatusFailed:
		prefix = color.New(color.FgRed, color.Bold).Sprint("!")
		statusColor = color.New(color.FgRed, color.Bold)
	case StatusSkipped:
		prefix = color.CyanString("•")
		statusColor = color.New(color.FgCyan)
	default:
		prefix = color.HiBlackString("-")
		statusColor = color.New(color.FgHiBlack)
	}

	line := fmt.Sprintf("%s%s %s %-*s",
		strings.Repeat(" ", fileIndent),
		prefix,
		statusColor.Sprintf("%-*s", statusWidth, op.Status),
		nameWidth, op.Path,
	)

	if op.Target != "" && op.Target != op.Path {
		line += " → " + color.New(color.Bold).Sprint(op.Target)
	}
	if op.Detail != "" {
		line += " " + color.New(color.Faint).Sprintf("(%s)", op.Detail)
	}
	if op.Err != nil {
		line += " " + color.RedString("%v", op.Err)
	}
	return strings.TrimRight(line, " ")
}
