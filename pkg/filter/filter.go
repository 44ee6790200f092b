// Package filter decides whether a path is in scope for a scan.
// A Filter combines two independent tests: an extension allow-list
// derived from the filetype taxonomy, and glob-based exclusion of
// ancestor directory names. It is a pure predicate and safe to reuse
// across scans.
package filter

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/dedup/pkg/filetype"
)

// DefaultExcludeDirs are the directory name patterns excluded unless
// the caller opts out: version-control metadata, dependency and cache
// directories, and build output.
var DefaultExcludeDirs = []string{
	".git",
	".gitignore",
	".hg",
	".hgignore",
	".svn",
	"__pycache__",
	".pytest_cache",
	".tox",
	".venv",
	"venv",
	"node_modules",
	".idea",
	".vscode",
	"dist",
	"build",
	".mypy_cache",
	"*.egg-info",
}

// Options configures a Filter.
type Options struct {
	// Categories restricts files to extensions of these taxonomy
	// categories. Empty means all extensions pass.
	Categories []filetype.Category

	// ExcludeDirs are directory name glob patterns. Nil falls back to
	// DefaultExcludeDirs when UseDefaultExcludes is set; an explicit
	// empty slice disables directory exclusion.
	ExcludeDirs []string

	// UseDefaultExcludes enables DefaultExcludeDirs when ExcludeDirs
	// is nil.
	UseDefaultExcludes bool
}

// Filter is an immutable include/exclude predicate over file paths.
type Filter struct {
	allowedExts map[string]struct{}
	patterns    []string
}

// New builds a Filter from the given options.
func New(opts Options) *Filter {
	f := &Filter{allowedExts: make(map[string]struct{})}

	for _, cat := range opts.Categories {
		for _, ext := range filetype.Extensions(cat) {
			f.allowedExts[ext] = struct{}{}
		}
	}

	switch {
	case opts.ExcludeDirs != nil:
		f.patterns = append(f.patterns, opts.ExcludeDirs...)
	case opts.UseDefaultExcludes:
		f.patterns = append(f.patterns, DefaultExcludeDirs...)
	}

	return f
}

// Default returns a Filter with no extension restriction and the
// default directory exclusions.
func Default() *Filter {
	return New(Options{UseDefaultExcludes: true})
}

// IncludePath reports whether the file at path passes both tests.
func (f *Filter) IncludePath(p string) bool {
	if len(f.allowedExts) > 0 {
		ext := strings.ToLower(filepath.Ext(p))
		if _, ok := f.allowedExts[ext]; !ok {
			return false
		}
	}

	// Every ancestor directory name is tested against the exclusion
	// patterns, not just the immediate parent.
	dir := filepath.Dir(p)
	for {
		name := filepath.Base(dir)
		if f.ExcludesDir(name) {
			return false
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return true
}

// ExcludesDir reports whether a single directory name matches any
// exclusion pattern. Matching is case-sensitive glob matching.
func (f *Filter) ExcludesDir(name string) bool {
	for _, pattern := range f.patterns {
		if ok, err := path.Match(pattern, name); err == nil && ok {
			return true
		}
	}
	return false
}

// FilterPaths returns the subset of paths passing IncludePath.
func (f *Filter) FilterPaths(paths []string) []string {
	var kept []string
	for _, p := range paths {
		if f.IncludePath(p) {
			kept = append(kept, p)
		}
	}
	return kept
}

// AddExcludePattern returns a copy of the filter with one more
// directory exclusion pattern. The receiver is not modified, so
// filters stay safe to share between scans.
func (f *Filter) AddExcludePattern(pattern string) *Filter {
	clone := &Filter{
		allowedExts: f.allowedExts,
		patterns:    append(append([]string(nil), f.patterns...), pattern),
	}
	return clone
}

// Active reports whether any filtering is configured.
func (f *Filter) Active() bool {
	return len(f.allowedExts) > 0 || len(f.patterns) > 0
}
