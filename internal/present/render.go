// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Concommit - Concommit surfaces files that are frequently committed together with the file you are working on.
It reads recent git history, groups changed paths per commit and ranks co-committed files for quick navigation.

Copyright (C) 2025  Bartek Kus

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

// Package present renders rankings and lets the user pick one of the ranked files.
package present

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/dustin/go-humanize/english"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"

	"github.com/bartekus/concommit/internal/cochange"
	"github.com/bartekus/concommit/internal/history"
	"github.com/bartekus/concommit/internal/projection"
)

// Result is a ranking ready for output.
type Result struct {
	Target  string           `json:"target" yaml:"target"`
	Commits int              `json:"commits" yaml:"commits"`
	Files   []cochange.Entry `json:"files" yaml:"files"`
}

// Options tweaks rendering.
type Options struct {
	NoColor bool
}

// Render writes res to w in the given format (text, table, json, yaml or markdown).
func Render(w io.Writer, format string, res Result, opts Options) error {
	if res.Files == nil {
		res.Files = []cochange.Entry{}
	}

	switch format {
	case "text", "":
		return renderText(w, res, opts)
	case "table":
		return renderTable(w, res)
	case "json":
		return encodeJSON(w, res)
	case "yaml":
		return encodeYAML(w, res)
	case "markdown":
		_, err := io.WriteString(w, projection.Ranking(res.Target, res.Commits, res.Files))
		return err
	default:
		return fmt.Errorf("invalid format: %s (must be text, table, json, yaml or markdown)", format)
	}
}

func renderText(w io.Writer, res Result, opts Options) error {
	title := color.New(color.FgCyan, color.Bold)
	path := color.New(color.FgGreen)
	dim := color.New(color.Faint)
	if opts.NoColor {
		title.DisableColor()
		path.DisableColor()
		dim.DisableColor()
	}

	window := english.Plural(res.Commits, "commit", "")
	if len(res.Files) == 0 {
		_, err := fmt.Fprintf(w, "No files committed together with %s in the last %s.\n", res.Target, window)
		return err
	}

	if _, err := title.Fprintf(w, "Committed together with %s (last %s):\n", res.Target, window); err != nil {
		return err
	}
	for i, e := range res.Files {
		if _, err := fmt.Fprintf(w, "%3d. %s %s\n", i+1, path.Sprint(e.Path),
			dim.Sprint("("+english.Plural(e.Count, "commit", "")+")")); err != nil {
			return err
		}
	}
	return nil
}

func renderTable(w io.Writer, res Result) error {
	t := table.NewWriter()
	t.SetTitle("Co-committed with " + res.Target)
	t.AppendHeader(table.Row{"#", "File", "Commits"})
	for i, e := range res.Files {
		t.AppendRow(table.Row{i + 1, e.Path, e.Count})
	}
	t.AppendFooter(table.Row{"", "analyzed", strconv.Itoa(res.Commits)})
	t.SetStyle(table.StyleLight)

	_, err := io.WriteString(w, t.Render()+"\n")
	return err
}

// RenderGroups writes parsed commit groups in json, yaml or markdown.
func RenderGroups(w io.Writer, format string, h history.CommitHistory) error {
	groups := make([][]string, 0, len(h))
	for _, g := range h {
		files := []string(g)
		if files == nil {
			files = []string{}
		}
		groups = append(groups, files)
	}

	switch format {
	case "json", "":
		return encodeJSON(w, map[string]any{"commits": groups})
	case "yaml":
		return encodeYAML(w, map[string]any{"commits": groups})
	case "markdown":
		for i, files := range groups {
			if _, err := io.WriteString(w, projection.RenderHeader(3, "Commit "+strconv.Itoa(i+1))); err != nil {
				return err
			}
			if len(files) == 0 {
				if _, err := io.WriteString(w, "_no file changes_\n\n"); err != nil {
					return err
				}
				continue
			}
			if _, err := io.WriteString(w, projection.RenderList(files)+"\n"); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("invalid format: %s (must be json, yaml or markdown)", format)
	}
}

func encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return nil
}

func encodeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return enc.Close()
}
