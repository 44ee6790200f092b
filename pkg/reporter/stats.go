package reporter

import (
	"fmt"

	"github.com/arthur-debert/dedup/pkg/types"
)

// ScanStats summarizes a duplicate-detection pass for reports and the
// deletion confirmation prompt.
type ScanStats struct {
	TotalFilesScanned    int   `json:"total_files_scanned" yaml:"total_files_scanned"`
	DuplicateGroupsFound int   `json:"duplicate_groups_found" yaml:"duplicate_groups_found"`
	TotalDuplicateFiles  int   `json:"total_duplicate_files" yaml:"total_duplicate_files"`
	FilesToDelete        int   `json:"files_to_delete" yaml:"files_to_delete"`
	SpaceToRecover       int64 `json:"space_to_recover" yaml:"space_to_recover"`
}

// CalculateStats derives statistics from the detection results. The
// recoverable space is the group's file size times the number of
// deletions, summed over all groups; group members share an exact size
// so any member's size works.
func CalculateStats(groups map[string]types.DuplicateGroup, decisions []types.Decision, totalScanned int) ScanStats {
	stats := ScanStats{TotalFilesScanned: totalScanned}

	for _, decision := range decisions {
		group, ok := groups[decision.Hash]
		if !ok || len(group.Files) == 0 {
			continue
		}
		stats.DuplicateGroupsFound++
		stats.TotalDuplicateFiles += len(decision.Delete) + 1
		stats.FilesToDelete += len(decision.Delete)
		stats.SpaceToRecover += group.Files[0].Size * int64(len(decision.Delete))
	}

	return stats
}

// SpaceHuman renders the recoverable space in a human-readable unit.
func (s ScanStats) SpaceHuman() string {
	size := float64(s.SpaceToRecover)
	for _, unit := range []string{"B", "KB", "MB", "GB", "TB"} {
		if size < 1024.0 {
			return fmt.Sprintf("%.2f %s", size, unit)
		}
		size /= 1024.0
	}
	return fmt.Sprintf("%.2f PB", size)
}
