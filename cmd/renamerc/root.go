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

package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/renamerc/pkg/collision"
	"github.com/walteh/renamerc/pkg/config"
	"github.com/walteh/renamerc/pkg/log"
	"github.com/walteh/renamerc/pkg/operation"
	"github.com/walteh/renamerc/pkg/rules"
	"gitlab.com/tozd/go/errors"
)

// usageError marks errors caused by how the command was invoked.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

// 🎮 Handler holds the flags and output streams of one invocation
type Handler struct {
	rulesFile  string
	configFile string
	flatten    bool
	delete     bool
	verbose    bool
	help       bool

	stdout io.Writer
	stderr io.Writer
}

// 🏭 newRootCmd creates the root command bound to h
func newRootCmd(h *Handler) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "renamerc [flags] dir...",
		Short: "Normalize filenames in directory trees",
		Long: `renamerc rewrites filenames under each directory: dashes, underscores and
extra periods become spaces, replacement rules are applied, and runs of spaces
collapse. It can also delete unwanted files and flatten subdirectories into
their root. Existing files are never overwritten.`,
		Version:       GetVersionInfo().Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return &usageError{errors.New("at least one directory is required")}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return h.Run(cmd, args)
		},
	}

	cmd.SetOut(h.stdout)
	cmd.SetErr(h.stderr)
	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return &usageError{err}
	})

	flags := cmd.Flags()
	flags.StringVarP(&h.rulesFile, "rules", "r", rules.DefaultFile, "rule file to load")
	flags.BoolVarP(&h.flatten, "flatten", "f", false, "move files from subdirectories into each root")
	flags.BoolVarP(&h.delete, "delete", "d", false, "delete files with unwanted extensions")
	flags.BoolVarP(&h.verbose, "verbose", "x", false, "print diagnostics to stderr")
	flags.StringVarP(&h.configFile, "config", "c", "", "optional YAML or HCL config file")
	flags.BoolVarP(&h.help, "help", "h", false, "show this help")

	return cmd
}

// run executes the command line and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	h := &Handler{stdout: stdout, stderr: stderr}
	cmd := newRootCmd(h)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	if h.help {
		return exitUsage
	}
	if err == nil {
		return exitOK
	}

	var uerr *usageError
	switch {
	case errors.As(err, &uerr):
		fmt.Fprintf(stderr, "Error: %v\n\n%s", err, cmd.UsageString())
		return exitUsage
	case ctx.Err() != nil:
		fmt.Fprintf(stderr, "interrupted: %v\n", err)
		return exitInterrupted
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitSetup
	}
}

// 🏃 Run loads the configuration and rules, then processes every root
func (h *Handler) Run(cmd *cobra.Command, roots []string) error {
	// the -x flag alone decides verbosity until the config file is read
	zlog := h.setupLogging(h.verbose)

	cfg := config.Default()
	if h.configFile != "" {
		loaded, err := config.Load(zlog.WithContext(cmd.Context()), h.configFile)
		if err != nil {
			return errors.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}
	h.applyFlags(cmd, cfg)

	zlog = h.setupLogging(cfg.Verbose)
	ctx := zlog.WithContext(cmd.Context())
	console := log.New(h.stdout, zlog)
	ctx = log.NewContext(ctx, console)

	zlog.Debug().Str("config", cfg.String()).Str("location", cfg.Location()).Msg("configuration")

	rs := rules.Load(ctx, cfg.RulesFile)
	inline, err := cfg.InlineRules()
	if err != nil {
		return errors.Errorf("loading inline rules: %w", err)
	}
	rs = append(rs, inline...)
	console.Infof("%d rules loaded from %s", len(rs), cfg.RulesFile)

	var tokens collision.TokenSource = collision.NewClockTokens()
	if cfg.Suffix == config.SuffixUUID {
		tokens = collision.UUIDTokens{}
	}

	runner, err := operation.NewRunner(operation.Options{
		Rules:              rs,
		Flatten:            cfg.Flatten,
		Delete:             cfg.Delete,
		UnwantedExtensions: cfg.UnwantedExtensions,
		IgnorePatterns:     cfg.IgnorePatterns,
		Resolver:           collision.New(collision.WithTokens(tokens)),
	})
	if err != nil {
		return errors.Errorf("creating runner: %w", err)
	}

	console.Header(fmt.Sprintf("%d rules, %d directories", len(rs), len(roots)))

	stats, runErr := runner.Run(ctx, roots)
	if stats != nil {
		console.LogNewline()
		if err := console.Table(stats.Rows()); err != nil {
			zlog.Warn().Err(err).Msg("printing summary")
		}
	}
	if runErr != nil {
		return runErr
	}

	switch {
	case stats.Total.Failed > 0:
		console.Warningf("%d files could not be processed", stats.Total.Failed)
	case len(stats.InvalidRoots) > 0:
		console.Warningf("%d directories were skipped", len(stats.InvalidRoots))
	default:
		console.Successf("done: %d renamed, %d moved, %d deleted", stats.Total.Renamed, stats.Total.Moved, stats.Total.Deleted)
	}

	return nil
}

// applyFlags lets flags given on the command line override the config file.
func (h *Handler) applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("rules") || cfg.RulesFile == "" {
		cfg.RulesFile = h.rulesFile
	}
	if flags.Changed("flatten") {
		cfg.Flatten = h.flatten
	}
	if flags.Changed("delete") {
		cfg.Delete = h.delete
	}
	if flags.Changed("verbose") {
		cfg.Verbose = h.verbose
	}
}

// setupLogging builds the diagnostic logger, written to stderr
func (h *Handler) setupLogging(verbose bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: h.stderr, TimeFormat: time.Kitchen}).
		Level(level).
		With().
		Timestamp().
		Logger()
}
