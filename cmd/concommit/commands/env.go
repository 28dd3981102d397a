// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Concommit - Concommit surfaces files that are frequently committed together with the file you are working on.
It reads recent git history, groups changed paths per commit and ranks co-committed files for quick navigation.

Copyright (C) 2025  Bartek Kus

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/bartekus/concommit/cmd/concommit/internal/clierr"
	"github.com/bartekus/concommit/internal/config"
	"github.com/bartekus/concommit/internal/history"
	"github.com/bartekus/concommit/internal/logging"
	"github.com/bartekus/concommit/internal/projectroot"
)

// env is the resolved per-invocation state shared by subcommands.
type env struct {
	dir    string
	root   string
	cfg    *config.Config
	logger *slog.Logger
}

// setup resolves the project root, loads configuration and builds the logger.
func setup(cmd *cobra.Command) (*env, error) {
	dir, _ := cmd.Flags().GetString("dir")
	configPath, _ := cmd.Flags().GetString("config")
	verbose, _ := cmd.Flags().GetBool("verbose")
	logFormat, _ := cmd.Flags().GetString("log-format")

	root, err := projectroot.Find(dir)
	if err != nil {
		return nil, clierr.Wrap(clierr.CodeGit, "finding repo root", err)
	}

	cfg, err := config.Load(configPath, config.SearchDirs(root)...)
	if err != nil {
		return nil, clierr.Usage(err)
	}

	level := cfg.Logging.Level
	if verbose {
		level = "debug"
	}
	if logFormat == "" {
		logFormat = cfg.Logging.Format
	}
	logger, err := logging.New(logging.Options{Level: level, Format: logFormat, Writer: cmd.ErrOrStderr()})
	if err != nil {
		return nil, clierr.Usage(err)
	}
	slog.SetDefault(logger)
	logger.Debug("resolved project root", slog.String("root", root), slog.String("dir", dir))

	return &env{dir: dir, root: root, cfg: cfg, logger: logger}, nil
}

// intFlag returns the flag value when set on the command line, fallback otherwise.
func intFlag(cmd *cobra.Command, name string, fallback int) int {
	if !cmd.Flags().Changed(name) {
		return fallback
	}
	v, _ := cmd.Flags().GetInt(name)
	return v
}

// stringFlag returns the flag value when set on the command line, fallback otherwise.
func stringFlag(cmd *cobra.Command, name, fallback string) string {
	if !cmd.Flags().Changed(name) {
		return fallback
	}
	v, _ := cmd.Flags().GetString(name)
	return v
}

// loadHistory reads and parses the last maxCount commits, mapping failures to exit codes.
func (e *env) loadHistory(ctx context.Context, maxCount int) (history.CommitHistory, error) {
	if maxCount <= 0 {
		return nil, clierr.Usage(fmt.Errorf("%w: %d", history.ErrInvalidMaxCount, maxCount))
	}

	h, err := history.Load(ctx, history.NewGitSource(e.root, maxCount))
	if err != nil {
		if errors.Is(err, history.ErrMalformedLine) {
			return nil, clierr.Wrap(clierr.CodeParse, "parsing git log", err)
		}
		return nil, clierr.Wrap(clierr.CodeGit, "failed to run git log", err)
	}
	if e.logger.Enabled(ctx, slog.LevelDebug) {
		head, herr := history.GitHead{Dir: e.root}.Head(ctx)
		if herr != nil {
			head = "unknown"
			e.logger.Debug("resolving HEAD failed", slog.Any("err", herr))
		}
		e.logger.Debug("history loaded",
			slog.String("head", head),
			slog.Int("commits", len(h)),
			slog.Int("max_count", maxCount),
		)
	}
	return h, nil
}

// resolveFile maps a file argument (relative to --dir) onto the root-relative git path.
func (e *env) resolveFile(file string) (string, error) {
	if !filepath.IsAbs(file) {
		file = filepath.Join(e.dir, file)
	}
	rel, err := projectroot.Rel(e.root, file)
	if err != nil {
		return "", clierr.Usage(err)
	}
	return rel, nil
}
