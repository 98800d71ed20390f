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

// 📊 FileStatus is the outcome of processing one file
type FileStatus int

const (
	StatusUnknown   FileStatus = iota
	StatusUnchanged            // Name already normalized
	StatusRenamed              // Renamed in place
	StatusMoved                // Moved into the root by flatten
	StatusDeleted              // Removed as unwanted
	StatusSkipped              // Matched an ignore pattern
	StatusFailed               // Operation failed, file left as it was
)

// String returns a string representation of FileStatus
func (s FileStatus) String() string {
	switch s {
	case StatusUnchanged:
		return "unchanged"
	case StatusRenamed:
		return "renamed"
	case StatusMoved:
		return "moved"
	case StatusDeleted:
		return "deleted"
	case StatusSkipped:
		return "skipped"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// 📄 Entry is a file or directory found under a root
type Entry struct {
	Path  string // Absolute or root-joined path
	Rel   string // Path relative to the root
	Name  string // Base name
	Depth int    // 1 for entries directly inside the root
	IsDir bool
}

// Dir returns the directory holding the entry.
func (e Entry) Dir() string {
	return dirOf(e.Path)
}

// 📝 Operation describes what happened to one file
type Operation struct {
	Status FileStatus
	Path   string // Path relative to the root before the operation
	Target string // Path relative to the root afterwards, if it moved
	Detail string // Extra context, e.g. the collision that was avoided
	Err    error
}
