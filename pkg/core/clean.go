package core

import (
	"github.com/arthur-debert/dedup/pkg/deleter"
	"github.com/arthur-debert/dedup/pkg/logging"
	"github.com/arthur-debert/dedup/pkg/types"
)

// CleanOptions configures a full detection-and-resolution run.
type CleanOptions struct {
	FindOptions

	// DryRun reports what would be deleted without touching any file.
	DryRun bool

	// Confirm, when set, is called with the detection result before
	// any deletion. Returning false aborts the run cleanly; the
	// result is still returned with no deletions performed.
	Confirm func(*FindResult) bool
}

// CleanResult is the output of a clean run.
type CleanResult struct {
	Find *FindResult

	// Aborted is set when the Confirm callback declined.
	Aborted bool

	Deleted  int
	Failed   int
	Outcomes []types.DeletionOutcome
}

// Clean finds duplicates under the root and moves the redundant copies
// to the trash. Individual deletion failures do not stop the run; they
// are reported per path in Outcomes.
func Clean(opts CleanOptions) (*CleanResult, error) {
	logger := logging.GetLogger("core.clean")
	opts.normalize()

	find, err := FindDuplicates(opts.FindOptions)
	if err != nil {
		return nil, err
	}
	result := &CleanResult{Find: find}

	if len(find.Decisions) == 0 {
		return result, nil
	}

	if opts.Confirm != nil && !opts.Confirm(find) {
		logger.Info().Msg("Deletion declined, leaving files in place")
		result.Aborted = true
		return result, nil
	}

	d := deleter.New(opts.FS, opts.Config.TrashDir(), opts.DryRun)
	result.Deleted, result.Failed, result.Outcomes = d.DeleteDecisions(find.Decisions)

	logger.Info().
		Bool("dryRun", opts.DryRun).
		Int("deleted", result.Deleted).
		Int("failed", result.Failed).
		Msg("Clean complete")

	return result, nil
}
