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

	"github.com/rs/zerolog"
	"github.com/walteh/renamerc/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// 📥 NewFlattenOperation creates the flatten phase for root
func NewFlattenOperation(opts Options, root string, stats *Stats) Operation {
	return &flattenOperation{
		BaseOperation: NewBaseOperation(opts, root, stats),
	}
}

// 📥 flattenOperation moves nested files into the root and prunes the
// directories it empties
type flattenOperation struct {
	BaseOperation
}

// 🏃 Execute runs the flatten phase
func (op *flattenOperation) Execute(ctx context.Context) error {
	logger := zerolog.Ctx(ctx)

	entries, err := op.Files.Snapshot(ctx, op.Root)
	if err != nil {
		return errors.Errorf("listing files: %w", err)
	}

	var nested []status.Entry
	for _, entry := range entries {
		if entry.Depth < 2 {
			continue
		}
		if pattern := op.ignoredBy(ctx, entry.Rel); pattern != "" {
			logger.Debug().Str("file", entry.Rel).Str("pattern", pattern).Msg("ignored, not flattening")
			continue
		}
		nested = append(nested, entry)
	}

	logger.Debug().Str("root", op.Root).Int("files", len(nested)).Msg("flattening")

	for _, entry := range nested {
		if err := ctx.Err(); err != nil {
			return errors.Errorf("flattening %s: %w", op.Root, err)
		}

		final, collided, err := op.move(ctx, pendingRename{
			src:      entry.Path,
			dir:      op.Root,
			proposed: entry.Name,
		})
		if err != nil {
			op.report(ctx, status.Operation{Status: status.StatusFailed, Path: entry.Rel, Err: err})
			continue
		}

		fop := status.Operation{Status: status.StatusMoved, Path: entry.Rel, Target: final}
		if collided {
			fop.Detail = entry.Name + " exists"
		}
		op.report(ctx, fop)
	}

	pruned, err := op.Files.PruneEmptyDirs(ctx, op.Root)
	if err != nil {
		return errors.Errorf("pruning empty directories: %w", err)
	}
	op.Stats.PrunedDirs += len(pruned)

	return nil
}
