package core

import (
	"github.com/arthur-debert/dedup/pkg/config"
	"github.com/arthur-debert/dedup/pkg/errors"
	"github.com/arthur-debert/dedup/pkg/filesystem"
	"github.com/arthur-debert/dedup/pkg/filetype"
	"github.com/arthur-debert/dedup/pkg/filter"
	"github.com/arthur-debert/dedup/pkg/hashengine"
	"github.com/arthur-debert/dedup/pkg/keep"
	"github.com/arthur-debert/dedup/pkg/logging"
	"github.com/arthur-debert/dedup/pkg/reporter"
	"github.com/arthur-debert/dedup/pkg/scanner"
	"github.com/arthur-debert/dedup/pkg/types"
)

// FindOptions configures a detection pass.
type FindOptions struct {
	// Root is the directory to scan.
	Root string

	// Config supplies filtering, hashing and trash settings. Nil uses
	// the embedded defaults.
	Config *config.Config

	// FS is the filesystem to operate on. Nil uses the real one.
	FS types.FS

	// ScanProgress and HashProgress, when set, receive throttled
	// updates from the scan and hash phases.
	ScanProgress scanner.ProgressFunc
	HashProgress func(pct int)
}

func (o *FindOptions) normalize() {
	if o.Config == nil {
		o.Config = config.Default()
	}
	if o.FS == nil {
		o.FS = filesystem.NewOS()
	}
}

// FindResult is the output of a detection pass.
type FindResult struct {
	Summary   types.ScanSummary
	Groups    map[string]types.DuplicateGroup
	Decisions []types.Decision
	Stats     reporter.ScanStats
}

// FindDuplicates runs the scan, hash and keep-selection phases and
// returns the duplicate groups with their resolutions. A failing scan
// root or an unknown file type name fails the whole pass; per-file
// errors are counted in the summary instead.
func FindDuplicates(opts FindOptions) (*FindResult, error) {
	opts.normalize()
	logger := logging.GetLogger("core.find")

	pathFilter, err := buildFilter(opts.Config)
	if err != nil {
		return nil, err
	}

	scan, err := scanner.New(opts.FS, opts.Root, scanner.Options{
		Filter:        pathFilter,
		Progress:      opts.ScanProgress,
		EstimateTotal: opts.Config.Scan.EstimateTotal,
	})
	if err != nil {
		return nil, err
	}

	records, summary, err := scan.Collect()
	if err != nil {
		return nil, err
	}
	logger.Info().
		Str("root", scan.Root()).
		Int("processed", summary.Processed).
		Int("skippedSymlinks", summary.SkippedSymlinks).
		Int("errors", summary.Errors).
		Msg("Scan complete")

	engine := hashengine.New(opts.FS)
	groups := engine.FindDuplicates(records, hashengine.Options{
		Progress: opts.HashProgress,
		Workers:  opts.Config.Hash.Workers,
	})

	decisions, err := keep.DecideAll(groups)
	if err != nil {
		return nil, err
	}
	logger.Info().
		Int("groups", len(groups)).
		Int("decisions", len(decisions)).
		Msg("Duplicate detection complete")

	return &FindResult{
		Summary:   summary,
		Groups:    groups,
		Decisions: decisions,
		Stats:     reporter.CalculateStats(groups, decisions, summary.Processed),
	}, nil
}

// buildFilter converts the scan configuration into a path filter.
// Unknown file type names fail with INVALID_INPUT.
func buildFilter(cfg *config.Config) (*filter.Filter, error) {
	categories := make([]filetype.Category, 0, len(cfg.Scan.FileTypes))
	for _, name := range cfg.Scan.FileTypes {
		cat, err := filetype.ParseCategory(name)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrInvalidInput, "invalid file type %q in scan configuration", name)
		}
		categories = append(categories, cat)
	}

	// Configured patterns add to the built-in set rather than
	// replacing it; use_default_excludes = false drops the built-ins.
	var patterns []string
	if cfg.Scan.UseDefaultExcludes {
		patterns = append(patterns, filter.DefaultExcludeDirs...)
	}
	patterns = append(patterns, cfg.Scan.ExcludeDirs...)

	return filter.New(filter.Options{
		Categories:  categories,
		ExcludeDirs: patterns,
	}), nil
}
