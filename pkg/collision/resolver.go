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

// Package collision picks filenames that do not clobber existing entries.
package collision

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/walteh/renamerc/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// DefaultMaxAttempts bounds the number of suffixed candidates tried.
const DefaultMaxAttempts = 64

// ErrExhausted is returned when no free candidate was found.
var ErrExhausted = errors.Base("no free filename found")

// 🛡️ Resolver turns a proposed name into one that is free in a directory.
// It checks the filesystem on every call and keeps no record of past answers.
type Resolver struct {
	tokens      TokenSource
	maxAttempts int
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithTokens sets the token source used for suffixes.
func WithTokens(ts TokenSource) Option {
	return func(r *Resolver) {
		r.tokens = ts
	}
}

// WithMaxAttempts sets how many suffixed candidates are tried before giving up.
func WithMaxAttempts(n int) Option {
	return func(r *Resolver) {
		if n > 0 {
			r.maxAttempts = n
		}
	}
}

// 🏭 New creates a resolver using clock tokens unless told otherwise
func New(opts ...Option) *Resolver {
	r := &Resolver{
		tokens:      NewClockTokens(),
		maxAttempts: DefaultMaxAttempts,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// 🎯 Resolve returns proposed if dir has no entry by that name. Otherwise it
// returns base_<token>ext for the first token whose candidate is free.
func (r *Resolver) Resolve(ctx context.Context, dir, proposed string) (string, error) {
	logger := zerolog.Ctx(ctx)

	taken, err := exists(filepath.Join(dir, proposed))
	if err != nil {
		return "", err
	}
	if !taken {
		return proposed, nil
	}

	parts := text.SplitName(proposed)
	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		candidate := parts.Base + "_" + r.tokens.Token() + parts.Ext

		taken, err := exists(filepath.Join(dir, candidate))
		if err != nil {
			return "", err
		}
		if !taken {
			logger.Debug().
				Str("dir", dir).
				Str("proposed", proposed).
				Str("resolved", candidate).
				Int("attempts", attempt).
				Msg("collision resolved")
			return candidate, nil
		}

		logger.Debug().Str("dir", dir).Str("candidate", candidate).Msg("candidate taken, retrying")
	}

	return "", errors.Errorf("%w: %s in %s after %d attempts", ErrExhausted, proposed, dir, r.maxAttempts)
}

// exists uses Lstat so a dangling symlink still counts as taken.
func exists(path string) (bool, error) {
	_, err := os.Lstat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, errors.Errorf("checking %s: %w", path, err)
}
