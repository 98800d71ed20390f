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
	"context"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/renamerc/pkg/collision"
	"github.com/walteh/renamerc/pkg/log"
	"github.com/walteh/renamerc/pkg/rules"
	"github.com/walteh/renamerc/pkg/status"
	"github.com/walteh/renamerc/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// ErrInvalidRoot is reported for an input that is not an existing directory.
var ErrInvalidRoot = errors.Base("not an existing directory")

// 🎯 Operation is one phase over one root directory
type Operation interface {
	Execute(ctx context.Context) error
}

// 🔍 Resolver picks a name that does not exist yet in a directory
type Resolver interface {
	Resolve(ctx context.Context, dir, proposed string) (string, error)
}

var _ Resolver = (*collision.Resolver)(nil)

// 🔧 Options contains configuration for a run
type Options struct {
	// Rules are applied to every base name, in order
	Rules rules.RuleSet
	// Flatten moves files from subdirectories into their root
	Flatten bool
	// Delete removes files whose extension is in UnwantedExtensions
	Delete bool
	// UnwantedExtensions are compared case-insensitively, leading dot included
	UnwantedExtensions []string
	// IgnorePatterns are doublestar globs matched against root-relative paths
	IgnorePatterns []string
	// Resolver avoids collisions, collision.New() when nil
	Resolver Resolver
	// Files performs all mutations, status.NewManager() when nil
	Files status.FileManager
}

func (o *Options) validate() error {
	for i, pattern := range o.IgnorePatterns {
		if !doublestar.ValidatePattern(pattern) {
			return errors.Errorf("ignore pattern %d: invalid pattern %q", i, pattern)
		}
	}
	if o.Resolver == nil {
		o.Resolver = collision.New()
	}
	if o.Files == nil {
		o.Files = status.NewManager()
	}
	return nil
}

// pendingRename is consumed by the resolver as soon as it is built.
type pendingRename struct {
	src      string // current path
	dir      string // directory the file ends up in
	proposed string // name before collision resolution
}

// 📦 BaseOperation holds what every phase over a root shares
type BaseOperation struct {
	Options
	Root  string
	Stats *Stats
}

// 🏭 NewBaseOperation creates the shared state for one phase over root
func NewBaseOperation(opts Options, root string, stats *Stats) BaseOperation {
	return BaseOperation{
		Options: opts,
		Root:    root,
		Stats:   stats,
	}
}

// ignoredBy returns the first ignore pattern matching rel, or "".
func (op *BaseOperation) ignoredBy(ctx context.Context, rel string) string {
	rel = filepath.ToSlash(rel)
	for _, pattern := range op.IgnorePatterns {
		ok, err := doublestar.Match(pattern, rel)
		if err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Str("pattern", pattern).Msg("bad ignore pattern")
			continue
		}
		if ok {
			return pattern
		}
	}
	return ""
}

// unwanted reports whether name's extension is one delete mode removes.
func (op *BaseOperation) unwanted(name string) bool {
	ext := text.SplitName(name).Ext
	if ext == "" {
		return false
	}
	for _, u := range op.UnwantedExtensions {
		if strings.EqualFold(ext, u) {
			return true
		}
	}
	return false
}

// move resolves the pending name and renames the file into place. It returns
// the final name and whether the resolver had to change it.
func (op *BaseOperation) move(ctx context.Context, p pendingRename) (string, bool, error) {
	final, err := op.Resolver.Resolve(ctx, p.dir, p.proposed)
	if err != nil {
		return "", false, errors.Errorf("resolving %s: %w", p.proposed, err)
	}
	if err := op.Files.Rename(ctx, p.src, filepath.Join(p.dir, final)); err != nil {
		return "", false, err
	}
	return final, final != p.proposed, nil
}

// report records the outcome of one file on the console, in zerolog and in
// the stats.
func (op *BaseOperation) report(ctx context.Context, fop status.Operation) {
	op.Stats.Record(fop.Status)
	log.FromContext(ctx).LogFileOperation(ctx, fop)

	ev := zerolog.Ctx(ctx).Debug()
	if fop.Err != nil {
		ev = ev.Err(fop.Err)
	}
	ev.Str("root", op.Root).
		Str("file", fop.Path).
		Str("target", fop.Target).
		Str("status", fop.Status.String()).
		Msg("decision")
}
