// Package deleter moves the non-survivors of duplicate groups to a
// recoverable trash location. Files are never permanently erased. A
// dry-run mode reports what would happen without touching the
// filesystem, and one file's failure never aborts the rest of a batch.
package deleter

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/dedup/pkg/errors"
	"github.com/arthur-debert/dedup/pkg/logging"
	"github.com/arthur-debert/dedup/pkg/types"
)

// Deleter moves files to trash, or simulates doing so. The mode is
// fixed at construction.
type Deleter struct {
	fs       types.FS
	trashDir string
	dryRun   bool
	logger   zerolog.Logger
}

// New creates a Deleter that moves files into trashDir. With dryRun set
// it only simulates.
func New(fsys types.FS, trashDir string, dryRun bool) *Deleter {
	return &Deleter{
		fs:       fsys,
		trashDir: trashDir,
		dryRun:   dryRun,
		logger:   logging.GetLogger("deleter").With().Bool("dryRun", dryRun).Logger(),
	}
}

// DryRun reports whether the deleter only simulates.
func (d *Deleter) DryRun() bool {
	return d.dryRun
}

// DeleteFile moves a single file to trash. The path is re-validated
// immediately before acting, since state may have changed since the
// scan: a missing path yields NOT_FOUND, anything that is no longer a
// regular file NOT_A_FILE. In dry-run mode validation still runs but
// the filesystem is left untouched.
func (d *Deleter) DeleteFile(path string) types.DeletionOutcome {
	info, err := d.fs.Stat(path)
	if err != nil {
		return failure(path, errors.Wrapf(err, errors.ClassifyIO(err), "cannot delete %s", path))
	}
	if !info.Mode().IsRegular() {
		return failure(path, errors.Newf(errors.ErrNotAFile, "path is not a regular file: %s", path))
	}

	if d.dryRun {
		d.logger.Info().Str("path", path).Msg("Dry run - would move to trash")
		return types.DeletionOutcome{Path: path, Success: true}
	}

	if err := d.fs.MkdirAll(d.trashDir, 0755); err != nil {
		return failure(path, errors.Wrapf(err, errors.ErrTrashUnavailable, "cannot create trash directory %s", d.trashDir))
	}

	target := d.trashTarget(filepath.Base(path))
	if err := d.fs.Rename(path, target); err != nil {
		// Rename cannot cross filesystems; fall back to copy+remove
		if _, ok := err.(*os.LinkError); ok {
			err = d.copyAndRemove(path, target)
		}
		if err != nil {
			return failure(path, errors.Wrapf(err, errors.ClassifyIO(err), "cannot move %s to trash", path))
		}
	}

	d.logger.Info().Str("path", path).Str("trash", target).Msg("Moved to trash")
	return types.DeletionOutcome{Path: path, Success: true}
}

// DeleteDecisions flattens every delete list across the decisions,
// never touching a keep path, and attempts each deletion
// independently. Partial failure is the designed-for outcome: the
// aggregate counts and per-file results are always complete.
func (d *Deleter) DeleteDecisions(decisions []types.Decision) (successCount, failureCount int, results []types.DeletionOutcome) {
	for _, path := range d.Preview(decisions) {
		outcome := d.DeleteFile(path)
		if outcome.Success {
			successCount++
		} else {
			failureCount++
			d.logger.Warn().Err(outcome.Err).Str("path", path).Msg("Deletion failed")
		}
		results = append(results, outcome)
	}
	return successCount, failureCount, results
}

// Preview returns the flattened list of paths DeleteDecisions would
// act on, with no side effects. Confirmation UIs are built on this.
func (d *Deleter) Preview(decisions []types.Decision) []string {
	var paths []string
	for _, decision := range decisions {
		paths = append(paths, decision.Delete...)
	}
	return paths
}

// trashTarget picks a free name inside the trash directory, suffixing
// a counter when the base name is already taken.
func (d *Deleter) trashTarget(base string) string {
	target := filepath.Join(d.trashDir, base)
	for i := 1; ; i++ {
		if _, err := d.fs.Lstat(target); err != nil {
			return target
		}
		target = filepath.Join(d.trashDir, fmt.Sprintf("%s.%d", base, i))
	}
}

// copyAndRemove streams the file into the trash and removes the
// original, for trash directories on a different filesystem.
func (d *Deleter) copyAndRemove(path, target string) error {
	src, err := d.fs.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = src.Close() }()

	dst, err := d.fs.Create(target)
	if err != nil {
		return err
	}

	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		_ = d.fs.Remove(target)
		return err
	}
	if err := dst.Close(); err != nil {
		return err
	}

	return d.fs.Remove(path)
}

func failure(path string, err error) types.DeletionOutcome {
	return types.DeletionOutcome{Path: path, Success: false, Err: err}
}
