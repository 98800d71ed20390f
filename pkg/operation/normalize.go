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

	"github.com/rs/zerolog"
	"github.com/walteh/renamerc/pkg/status"
	"github.com/walteh/renamerc/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// 🔄 NewNormalizeOperation creates the rename phase for root
func NewNormalizeOperation(opts Options, root string, stats *Stats) Operation {
	return &normalizeOperation{
		BaseOperation: NewBaseOperation(opts, root, stats),
	}
}

// 🔄 normalizeOperation deletes unwanted files and renames the rest in place
type normalizeOperation struct {
	BaseOperation
}

// 🏃 Execute runs the normalize phase
func (op *normalizeOperation) Execute(ctx context.Context) error {
	entries, err := op.Files.Snapshot(ctx, op.Root)
	if err != nil {
		return errors.Errorf("listing files: %w", err)
	}

	zerolog.Ctx(ctx).Debug().Str("root", op.Root).Int("files", len(entries)).Msg("normalizing")

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return errors.Errorf("normalizing %s: %w", op.Root, err)
		}
		op.Stats.Scanned++
		op.processFile(ctx, entry)
	}

	return nil
}

// 📄 processFile routes one file through ignore, delete, transform and rename
func (op *normalizeOperation) processFile(ctx context.Context, entry status.Entry) {
	logger := zerolog.Ctx(ctx)

	if pattern := op.ignoredBy(ctx, entry.Rel); pattern != "" {
		op.report(ctx, status.Operation{
			Status: status.StatusSkipped,
			Path:   entry.Rel,
			Detail: "ignored by " + pattern,
		})
		return
	}

	if op.Delete && op.unwanted(entry.Name) {
		if err := op.Files.DeleteFile(ctx, entry.Path); err != nil {
			op.report(ctx, status.Operation{Status: status.StatusFailed, Path: entry.Rel, Err: err})
			return
		}
		op.report(ctx, status.Operation{Status: status.StatusDeleted, Path: entry.Rel})
		return
	}

	res := text.Trace(entry.Name, op.Rules)
	for _, step := range res.Steps {
		ev := logger.Debug().Str("file", entry.Rel).Str("stage", string(step.Stage)).Str("base", step.Base)
		if step.Rule != nil {
			ev = ev.Stringer("rule", step.Rule).Int("count", step.Count)
		}
		ev.Msg("transform step")
	}

	if !res.Changed() {
		op.report(ctx, status.Operation{Status: status.StatusUnchanged, Path: entry.Rel})
		return
	}

	pending := pendingRename{
		src:      entry.Path,
		dir:      entry.Dir(),
		proposed: res.Name,
	}

	final, collided, err := op.rename(ctx, entry, pending)
	if err != nil {
		op.report(ctx, status.Operation{Status: status.StatusFailed, Path: entry.Rel, Err: err})
		return
	}

	fop := status.Operation{
		Status: status.StatusRenamed,
		Path:   entry.Rel,
		Target: filepath.Join(filepath.Dir(entry.Rel), final),
	}
	if collided {
		fop.Detail = res.Name + " exists"
	}
	op.report(ctx, fop)
}

// rename tries a case-only change directly, since the resolver would see the
// file itself as a collision on case-insensitive filesystems.
func (op *normalizeOperation) rename(ctx context.Context, entry status.Entry, p pendingRename) (string, bool, error) {
	if strings.EqualFold(entry.Name, p.proposed) {
		err := op.Files.Rename(ctx, p.src, filepath.Join(p.dir, p.proposed))
		if err == nil {
			return p.proposed, false, nil
		}
		if !errors.Is(err, status.ErrTargetExists) {
			return "", false, err
		}
		zerolog.Ctx(ctx).Debug().Str("file", entry.Rel).Msg("case-only target is another file, resolving")
	}
	return op.move(ctx, p)
}
