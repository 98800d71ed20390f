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

	"github.com/rs/zerolog"
	"github.com/walteh/renamerc/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// Phase names as shown to the operator
const (
	PhaseNormalize = "normalize"
	PhaseFlatten   = "flatten"
)

// 🏃 Runner executes the phases over every root, one after another
type Runner struct {
	opts Options
}

// 🏗️ NewRunner creates a new runner
func NewRunner(opts Options) (*Runner, error) {
	if err := opts.validate(); err != nil {
		return nil, errors.Errorf("invalid options: %w", err)
	}
	return &Runner{opts: opts}, nil
}

// 🏃 Run processes roots in order. Invalid roots and failing entries are
// reported and counted; only cancellation stops the run early.
func (r *Runner) Run(ctx context.Context, roots []string) (*RunStats, error) {
	logger := zerolog.Ctx(ctx)
	console := log.FromContext(ctx)

	run := &RunStats{}
	for _, root := range roots {
		if err := ctx.Err(); err != nil {
			run.Total = sum(run.Roots)
			return run, errors.Errorf("run cancelled: %w", err)
		}

		root = filepath.Clean(root)
		ok, err := r.opts.Files.IsDir(ctx, root)
		if err == nil && !ok {
			err = ErrInvalidRoot
		}
		if err != nil {
			logger.Warn().Err(err).Str("root", root).Msg("skipping root")
			console.Warningf("skipping %s: %v", root, err)
			run.InvalidRoots = append(run.InvalidRoots, root)
			continue
		}

		stats := &Stats{Root: root}
		run.Roots = append(run.Roots, stats)

		phases := []phase{{PhaseNormalize, NewNormalizeOperation(r.opts, root, stats)}}
		if r.opts.Flatten {
			phases = append(phases, phase{PhaseFlatten, NewFlattenOperation(r.opts, root, stats)})
		}

		for _, p := range phases {
			if err := r.runPhase(ctx, root, p); err != nil {
				if ctx.Err() != nil {
					run.Total = sum(run.Roots)
					return run, errors.Errorf("run cancelled: %w", err)
				}
				logger.Error().Err(err).Str("root", root).Str("phase", p.name).Msg("phase failed")
				console.Errorf("%s %s: %v", p.name, root, err)
				break
			}
		}
	}

	run.Total = sum(run.Roots)
	return run, nil
}

type phase struct {
	name string
	op   Operation
}

// 🔄 runPhase runs one operation bracketed by its console header
func (r *Runner) runPhase(ctx context.Context, root string, p phase) error {
	console := log.FromContext(ctx)
	console.StartRootOperation(ctx, log.RootOperation{Root: root, Phase: p.name})
	defer console.EndRootOperation(ctx)
	return p.op.Execute(ctx)
}

func sum(roots []*Stats) Stats {
	var total Stats
	for _, s := range roots {
		total.Add(*s)
	}
	return total
}
