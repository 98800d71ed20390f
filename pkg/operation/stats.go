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

package operation

import (
	"strconv"

	"github.com/walteh/renamerc/pkg/status"
)

// 📊 Stats counts what happened under one root
type Stats struct {
	Root       string
	Scanned    int
	Deleted    int
	Renamed    int
	Unchanged  int
	Moved      int
	Skipped    int
	Failed     int
	PrunedDirs int
}

// Record counts one file outcome.
func (s *Stats) Record(st status.FileStatus) {
	switch st {
	case status.StatusDeleted:
		s.Deleted++
	case status.StatusRenamed:
		s.Renamed++
	case status.StatusUnchanged:
		s.Unchanged++
	case status.StatusMoved:
		s.Moved++
	case status.StatusSkipped:
		s.Skipped++
	case status.StatusFailed:
		s.Failed++
	}
}

// Add sums other into s.
func (s *Stats) Add(other Stats) {
	s.Scanned += other.Scanned
	s.Deleted += other.Deleted
	s.Renamed += other.Renamed
	s.Unchanged += other.Unchanged
	s.Moved += other.Moved
	s.Skipped += other.Skipped
	s.Failed += other.Failed
	s.PrunedDirs += other.PrunedDirs
}

func (s Stats) row(name string) []string {
	cells := []string{name}
	for _, n := range []int{s.Scanned, s.Renamed, s.Unchanged, s.Deleted, s.Moved, s.Skipped, s.Failed, s.PrunedDirs} {
		cells = append(cells, strconv.Itoa(n))
	}
	return cells
}

// 📊 RunStats holds the per-root stats of a run and their totals
type RunStats struct {
	Roots        []*Stats
	Total        Stats
	InvalidRoots []string
}

// 📋 Rows renders the stats as table rows, header first and totals last
func (r *RunStats) Rows() [][]string {
	rows := [][]string{
		{"root", "scanned", "renamed", "unchanged", "deleted", "moved", "skipped", "failed", "pruned"},
	}
	for _, s := range r.Roots {
		rows = append(rows, s.row(s.Root))
	}
	if len(r.Roots) > 1 {
		rows = append(rows, r.Total.row("total"))
	}
	return rows
}
