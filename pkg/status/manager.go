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
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// ErrTargetExists is returned instead of overwriting an existing entry.
var ErrTargetExists = errors.Base("target already exists")

// 💾 FileManager handles all file system operations
type FileManager interface {
	// Tree snapshots, taken before anything is mutated
	Snapshot(ctx context.Context, root string) ([]Entry, error)
	IsDir(ctx context.Context, path string) (bool, error)

	// Mutations
	DeleteFile(ctx context.Context, path string) error
	Rename(ctx context.Context, src, dst string) error
	PruneEmptyDirs(ctx context.Context, root string) ([]string, error)
}

// 🔧 Manager implements FileManager on the local filesystem
type Manager struct{}

// 🏭 NewManager creates a new file manager
func NewManager() *Manager {
	return &Manager{}
}

var _ FileManager = (*Manager)(nil)

func dirOf(path string) string {
	return filepath.Dir(path)
}

func depthOf(rel string) int {
	return strings.Count(filepath.ToSlash(rel), "/") + 1
}

// resolveRoot follows a symlinked root so the walk descends into it.
func resolveRoot(root string) (string, error) {
	resolved, err := filepath.EvalSymlinks(root)
	if err != nil {
		return "", errors.Errorf("resolving %s: %w", root, err)
	}
	return resolved, nil
}

// 📸 Snapshot lists every regular file under root, depth-first in lexical
// order. Symlinks and special files below root are left out; a symlinked
// root is followed. Entry paths stay under root as given.
func (m *Manager) Snapshot(ctx context.Context, root string) ([]Entry, error) {
	walkRoot, err := resolveRoot(root)
	if err != nil {
		return nil, err
	}

	var entries []Entry
	err = filepath.WalkDir(walkRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == walkRoot {
				return err
			}
			zerolog.Ctx(ctx).Warn().Err(err).Str("path", path).Msg("skipping unreadable entry")
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if path == walkRoot || !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(walkRoot, path)
		if err != nil {
			return errors.Errorf("relative path of %s: %w", path, err)
		}
		entries = append(entries, Entry{
			Path:  filepath.Join(root, rel),
			Rel:   rel,
			Name:  d.Name(),
			Depth: depthOf(rel),
		})
		return nil
	})
	if err != nil {
		return nil, errors.Errorf("walking %s: %w", root, err)
	}
	return entries, nil
}

func (m *Manager) IsDir(ctx context.Context, path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, errors.Errorf("checking %s: %w", path, err)
	}
	return info.IsDir(), nil
}

func (m *Manager) DeleteFile(ctx context.Context, path string) error {
	if err := os.Remove(path); err != nil {
		return errors.Errorf("deleting file: %w", err)
	}
	return nil
}

// 🔀 Rename moves src to dst without ever replacing an existing dst. The
// file is hard-linked to dst and then unlinked from src, so a failure leaves
// it under its original name. Filesystems without hard links fall back to a
// checked rename.
func (m *Manager) Rename(ctx context.Context, src, dst string) error {
	srcInfo, err := os.Lstat(src)
	if err != nil {
		return errors.Errorf("checking source: %w", err)
	}

	dstInfo, err := os.Lstat(dst)
	switch {
	case err == nil:
		// case-only rename on a case-insensitive filesystem
		if os.SameFile(srcInfo, dstInfo) {
			if err := os.Rename(src, dst); err != nil {
				return errors.Errorf("renaming file: %w", err)
			}
			return nil
		}
		return errors.Errorf("%w: %s", ErrTargetExists, dst)
	case !errors.Is(err, fs.ErrNotExist):
		return errors.Errorf("checking target: %w", err)
	}

	if err := os.Link(src, dst); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return errors.Errorf("%w: %s", ErrTargetExists, dst)
		}
		zerolog.Ctx(ctx).Debug().Err(err).Str("src", src).Msg("hard link unavailable, using rename")
		if err := os.Rename(src, dst); err != nil {
			return errors.Errorf("renaming file: %w", err)
		}
		return nil
	}

	if err := os.Remove(src); err != nil {
		if rmErr := os.Remove(dst); rmErr != nil {
			zerolog.Ctx(ctx).Error().Err(rmErr).Str("path", dst).Msg("could not undo link")
		}
		return errors.Errorf("removing source after link: %w", err)
	}
	return nil
}

// 🧹 PruneEmptyDirs removes every directory under root that is empty, deepest
// first, so parents emptied by their children go too. root itself is kept.
func (m *Manager) PruneEmptyDirs(ctx context.Context, root string) ([]string, error) {
	logger := zerolog.Ctx(ctx)

	walkRoot, err := resolveRoot(root)
	if err != nil {
		return nil, err
	}

	var dirs []string
	err = filepath.WalkDir(walkRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == walkRoot {
				return err
			}
			return nil
		}
		if d.IsDir() && path != walkRoot {
			rel, err := filepath.Rel(walkRoot, path)
			if err != nil {
				return errors.Errorf("relative path of %s: %w", path, err)
			}
			dirs = append(dirs, filepath.Join(root, rel))
		}
		return nil
	})
	if err != nil {
		return nil, errors.Errorf("walking %s: %w", root, err)
	}

	sort.SliceStable(dirs, func(i, j int) bool {
		return depthOf(dirs[i]) > depthOf(dirs[j])
	})

	var removed []string
	for _, dir := range dirs {
		children, err := os.ReadDir(dir)
		if err != nil {
			logger.Warn().Err(err).Str("dir", dir).Msg("cannot read directory, not pruning")
			continue
		}
		if len(children) > 0 {
			continue
		}
		if err := os.Remove(dir); err != nil {
			logger.Warn().Err(err).Str("dir", dir).Msg("cannot remove empty directory")
			continue
		}
		logger.Debug().Str("dir", dir).Msg("pruned empty directory")
		removed = append(removed, dir)
	}
	return removed, nil
}
