// Package scanner walks a directory tree and produces FileRecords for
// every in-scope regular file. Symlinks are detected and skipped, never
// followed. Per-entry I/O failures are counted and skipped; only a
// failure on the root directory aborts a scan.
package scanner

import (
	"io/fs"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/dedup/pkg/errors"
	"github.com/arthur-debert/dedup/pkg/filter"
	"github.com/arthur-debert/dedup/pkg/logging"
	"github.com/arthur-debert/dedup/pkg/types"
)

// progressInterval is how many processed files may pass between
// progress updates; progressMaxDelay forces an update regardless.
const (
	progressInterval = 100
	progressMaxDelay = time.Second
)

// ProgressFunc observes scan progress. Updates are throttled and purely
// observational; they never gate correctness.
type ProgressFunc func(processed, total int, dir string)

// EmitFunc receives one FileRecord per in-scope file. Returning false
// stops the walk early.
type EmitFunc func(types.FileRecord) bool

// Options configures a Scanner.
type Options struct {
	// Filter decides which paths are in scope. Nil means the default
	// filter (no extension restriction, default directory excludes).
	Filter *filter.Filter

	// Progress, when set, receives throttled progress updates.
	Progress ProgressFunc

	// EstimateTotal runs a cheap pre-walk so progress updates can
	// report a total file count.
	EstimateTotal bool
}

// Scanner enumerates regular files under a root directory.
type Scanner struct {
	fs     types.FS
	root   string
	filter *filter.Filter
	opts   Options
	logger zerolog.Logger
}

// New creates a Scanner for root. Fails with INVALID_INPUT when root
// does not exist or is not a directory.
func New(fsys types.FS, root string, opts Options) (*Scanner, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "cannot resolve root %s", root)
	}

	info, err := fsys.Stat(abs)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "directory does not exist: %s", root)
	}
	if !info.IsDir() {
		return nil, errors.Newf(errors.ErrInvalidInput, "path is not a directory: %s", root)
	}

	f := opts.Filter
	if f == nil {
		f = filter.Default()
	}

	return &Scanner{
		fs:     fsys,
		root:   abs,
		filter: f,
		opts:   opts,
		logger: logging.GetLogger("scanner").With().Str("root", abs).Logger(),
	}, nil
}

// Root returns the resolved root directory.
func (s *Scanner) Root() string {
	return s.root
}

// Scan walks the tree once, emitting a record per in-scope regular
// file. The sequence is lazy and one-shot; calling Scan again restarts
// the walk. Returns the aggregate counters of the pass.
func (s *Scanner) Scan(emit EmitFunc) (types.ScanSummary, error) {
	var sum types.ScanSummary

	total := 0
	if s.opts.Progress != nil && s.opts.EstimateTotal {
		total = s.countFiles(s.root)
		s.logger.Debug().Int("estimated", total).Msg("Pre-walk estimate complete")
	}

	// Root access failure is the one fatal error of a scan
	entries, err := s.fs.ReadDir(s.root)
	if err != nil {
		return sum, errors.WrapIO(err, s.root)
	}

	w := &walk{scanner: s, summary: &sum, total: total, lastUpdate: time.Now()}
	w.dir(s.root, entries, emit)

	s.logger.Debug().
		Int("processed", sum.Processed).
		Int("skippedSymlinks", sum.SkippedSymlinks).
		Int("errors", sum.Errors).
		Msg("Scan complete")

	return sum, nil
}

// Collect runs Scan and materializes every record. Convenience for
// callers that need the full set anyway, such as size bucketing.
func (s *Scanner) Collect() ([]types.FileRecord, types.ScanSummary, error) {
	var records []types.FileRecord
	sum, err := s.Scan(func(rec types.FileRecord) bool {
		records = append(records, rec)
		return true
	})
	return records, sum, err
}

// walk carries the mutable state of one Scan pass
type walk struct {
	scanner    *Scanner
	summary    *types.ScanSummary
	total      int
	lastUpdate time.Time
}

// dir processes one directory's entries. Returns false when the caller
// requested early termination.
func (w *walk) dir(dir string, entries []fs.DirEntry, emit EmitFunc) bool {
	s := w.scanner

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())

		// Symlinks are counted and skipped, never followed. This also
		// covers links to directories, so cycles cannot occur.
		if entry.Type()&fs.ModeSymlink != 0 {
			w.summary.SkippedSymlinks++
			continue
		}

		if entry.IsDir() {
			if s.filter.ExcludesDir(entry.Name()) {
				s.logger.Trace().Str("dir", path).Msg("Directory excluded")
				continue
			}
			sub, err := s.fs.ReadDir(path)
			if err != nil {
				w.summary.Errors++
				s.logger.Warn().Err(err).Str("dir", path).Msg("Cannot list directory, skipping")
				continue
			}
			if !w.dir(path, sub, emit) {
				return false
			}
			continue
		}

		if !entry.Type().IsRegular() {
			s.logger.Trace().Str("path", path).Msg("Skipping irregular file")
			continue
		}

		if !s.filter.IncludePath(path) {
			continue
		}

		// The file may have vanished between listing and stat
		info, err := s.fs.Stat(path)
		if err != nil {
			w.summary.Errors++
			s.logger.Warn().Err(err).Str("path", path).Msg("Cannot stat file, skipping")
			continue
		}

		rec := types.FileRecord{
			Path:    path,
			Size:    info.Size(),
			ModTime: float64(info.ModTime().UnixNano()) / 1e9,
		}
		w.summary.Processed++
		w.progress(dir)
		if !emit(rec) {
			return false
		}
	}

	return true
}

// progress reports at most once per progressInterval files or once per
// progressMaxDelay, whichever comes first.
func (w *walk) progress(dir string) {
	if w.scanner.opts.Progress == nil {
		return
	}
	if w.summary.Processed%progressInterval != 0 && time.Since(w.lastUpdate) < progressMaxDelay {
		return
	}
	w.lastUpdate = time.Now()
	w.scanner.opts.Progress(w.summary.Processed, w.total, dir)
}

// countFiles estimates the total number of files for progress display.
// Errors are ignored; the estimate does not gate correctness.
func (s *Scanner) countFiles(dir string) int {
	entries, err := s.fs.ReadDir(dir)
	if err != nil {
		return 0
	}

	count := 0
	for _, entry := range entries {
		if entry.IsDir() {
			count += s.countFiles(filepath.Join(dir, entry.Name()))
		} else {
			count++
		}
	}
	return count
}
