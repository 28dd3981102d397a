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
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"

	"github.com/spf13/cobra"

	"github.com/bartekus/concommit/cmd/concommit/internal/clierr"
	"github.com/bartekus/concommit/internal/cochange"
	"github.com/bartekus/concommit/internal/config"
	"github.com/bartekus/concommit/internal/history"
	"github.com/bartekus/concommit/internal/present"
	"github.com/bartekus/concommit/internal/projection"
	"github.com/bartekus/concommit/internal/projectroot"
	"github.com/bartekus/concommit/internal/scanner"
)

// newPresenter builds the interactive picker; tests replace it.
var newPresenter = func(cmd *cobra.Command) present.Presenter {
	return &present.PickerPresenter{In: cmd.InOrStdin(), Out: cmd.ErrOrStderr()}
}

// NewRelatedCommand returns the `concommit related` command.
func NewRelatedCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "related <file>",
		Short: "List files most often committed together with <file>",
		Long: `Reads the last --max-count commits with git log --numstat, counts how often every other
file was changed in the same commit as <file> and prints the most frequent ones.
With --pick, an interactive list is shown and the chosen file's absolute path is printed.`,
		Args: cobra.ExactArgs(1),
		RunE: runRelated,
	}

	// Flags in alphabetical order for deterministic help output
	cmd.Flags().StringSlice("exclude-dir", nil, "drop results under this directory name (repeatable)")
	cmd.Flags().Bool("exclude-defaults", false, "drop results under common build and dependency directories")
	cmd.Flags().String("format", "text", "output format: text, table, json, yaml or markdown")
	cmd.Flags().String("include-ext", "", "only list files with this extension (e.g. .go)")
	cmd.Flags().Int("max-count", 100, "number of recent commits to analyze")
	cmd.Flags().Int("max-results", cochange.DefaultMaxResults, "maximum number of files to list (0 lists none)")
	cmd.Flags().Bool("no-color", false, "disable colored text output")
	cmd.Flags().StringP("output", "o", "", "write the result to this file instead of stdout")
	cmd.Flags().Bool("pick", false, "choose a file interactively and print its absolute path")
	cmd.Flags().Bool("tracked-only", false, "drop files that are no longer tracked")

	return cmd
}

func runRelated(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	e, err := setup(cmd)
	if err != nil {
		return err
	}

	target, err := e.resolveFile(args[0])
	if err != nil {
		return err
	}

	maxCount := intFlag(cmd, "max-count", e.cfg.History.MaxCount)
	maxResults := intFlag(cmd, "max-results", e.cfg.Rank.MaxResults)
	format := stringFlag(cmd, "format", e.cfg.Output.Format)
	if maxResults < 0 {
		return clierr.Usage(fmt.Errorf("%w: %d", cochange.ErrNegativeMaxResults, maxResults))
	}
	if !config.ValidFormat(format) {
		return clierr.Usage(fmt.Errorf("%w: %q", config.ErrInvalidFormat, format))
	}

	opts, err := filterOptions(cmd, e)
	if err != nil {
		return err
	}

	h, err := e.loadHistory(ctx, maxCount)
	if err != nil {
		return err
	}

	entries, err := rankFiltered(h, target, maxResults, opts)
	if err != nil {
		return clierr.Usage(err)
	}
	e.logger.Debug("ranked co-committed files",
		slog.String("target", target),
		slog.Int("results", len(entries)),
	)

	if pick, _ := cmd.Flags().GetBool("pick"); pick {
		return pickFile(cmd, e, target, entries)
	}

	noColor, _ := cmd.Flags().GetBool("no-color")
	output, _ := cmd.Flags().GetString("output")
	res := present.Result{Target: target, Commits: len(h), Files: entries}

	if output == "" {
		return present.Render(cmd.OutOrStdout(), format, res, present.Options{NoColor: noColor})
	}

	var buf bytes.Buffer
	if err := present.Render(&buf, format, res, present.Options{NoColor: true}); err != nil {
		return err
	}
	if err := projection.AtomicWrite(output, buf.Bytes()); err != nil {
		return fmt.Errorf("writing %s: %w", output, err)
	}
	e.logger.Info("wrote result", slog.String("path", output))
	return nil
}

// rankFiltered ranks target's co-committed files, applying opts before the result cap so
// filtered-out files do not use up result slots.
func rankFiltered(h history.CommitHistory, target string, maxResults int, opts scanner.FilterOptions) ([]cochange.Entry, error) {
	if opts.Empty() {
		return cochange.RankEntries(h, target, maxResults)
	}

	all, err := cochange.RankEntries(h, target, math.MaxInt)
	if err != nil {
		return nil, err
	}
	kept := scanner.FilterEntries(all, opts)
	if len(kept) > maxResults {
		kept = kept[:maxResults]
	}
	return kept, nil
}

func filterOptions(cmd *cobra.Command, e *env) (scanner.FilterOptions, error) {
	var opts scanner.FilterOptions

	opts.ExcludeDirs = append(opts.ExcludeDirs, e.cfg.Rank.ExcludeDirs...)
	dirs, _ := cmd.Flags().GetStringSlice("exclude-dir")
	opts.ExcludeDirs = append(opts.ExcludeDirs, dirs...)
	if defaults, _ := cmd.Flags().GetBool("exclude-defaults"); defaults {
		opts.ExcludeDirs = append(opts.ExcludeDirs, scanner.DefaultExcludeDirs()...)
	}

	if ext, _ := cmd.Flags().GetString("include-ext"); ext != "" {
		opts.IncludeExtensions = []string{ext}
	}

	trackedOnly := e.cfg.Rank.TrackedOnly
	if cmd.Flags().Changed("tracked-only") {
		trackedOnly, _ = cmd.Flags().GetBool("tracked-only")
	}
	if trackedOnly {
		set, err := scanner.New(e.root).TrackedSet(cmd.Context())
		if err != nil {
			return opts, clierr.Wrap(clierr.CodeGit, "listing tracked files", err)
		}
		opts.Tracked = set
	}
	return opts, nil
}

// pickFile shows the picker and prints the chosen file resolved against the project root.
// Cancelling is not an error.
func pickFile(cmd *cobra.Command, e *env, target string, entries []cochange.Entry) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintf(cmd.ErrOrStderr(), "No files committed together with %s.\n", target)
		return err
	}

	choice, err := newPresenter(cmd).Select(cmd.Context(), "Committed together with "+target, entries)
	if errors.Is(err, present.ErrNoSelection) {
		return nil
	}
	if err != nil {
		return err
	}

	abs := projectroot.Abs(e.root, choice)
	if _, statErr := os.Stat(abs); statErr != nil {
		e.logger.Warn("selected file is not in the working tree", slog.String("path", abs))
	}
	_, err = io.WriteString(cmd.OutOrStdout(), abs+"\n")
	return err
}
