// SPDX-License-Identifier: AGPL-3.0-or-later

package scanner

import (
	"strings"

	"github.com/bartekus/concommit/internal/cochange"
)

// FilterOptions defines criteria for dropping ranked files.
type FilterOptions struct {
	// ExcludeDirs is a list of directory names to exclude.
	// Matching is segment-aware: "vendor" excludes "vendor/foo" and "pkg/vendor/bar",
	// but not "vendor_stuff/foo".
	ExcludeDirs []string

	// IncludeExtensions is a list of extensions to include (e.g., ".go").
	// If empty, all extensions are included.
	IncludeExtensions []string

	// Tracked, when non-nil, keeps only paths present in the set.
	Tracked map[string]struct{}
}

// Empty reports whether the options would keep every path.
func (o FilterOptions) Empty() bool {
	return len(o.ExcludeDirs) == 0 && len(o.IncludeExtensions) == 0 && o.Tracked == nil
}

// DefaultExcludeDirs returns directories that rarely make useful navigation targets.
func DefaultExcludeDirs() []string {
	return []string{
		"node_modules",
		".git",
		"dist",
		"build",
		"out",
		"vendor",
		"target",
		".idea",
		".bin",
	}
}

// Keep reports whether path passes the filter.
func Keep(path string, opts FilterOptions) bool {
	if shouldExclude(path, opts.ExcludeDirs) {
		return false
	}
	if !shouldIncludeExtension(path, opts.IncludeExtensions) {
		return false
	}
	if opts.Tracked != nil {
		if _, ok := opts.Tracked[path]; !ok {
			return false
		}
	}
	return true
}

// FilterEntries drops entries rejected by opts, preserving rank order.
func FilterEntries(entries []cochange.Entry, opts FilterOptions) []cochange.Entry {
	filtered := make([]cochange.Entry, 0, len(entries))
	for _, e := range entries {
		if Keep(e.Path, opts) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// shouldExclude returns true if the path contains any of the excluded segments.
// The last segment is the file name and is never treated as a directory.
func shouldExclude(path string, excludes []string) bool {
	if len(excludes) == 0 {
		return false
	}
	parts := strings.Split(path, "/")
	for _, part := range parts[:len(parts)-1] {
		for _, exclude := range excludes {
			if part == exclude {
				return true
			}
		}
	}
	return false
}

// shouldIncludeExtension returns true if length is 0 OR path matches one extension.
func shouldIncludeExtension(path string, extensions []string) bool {
	if len(extensions) == 0 {
		return true
	}
	for _, ext := range extensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}
