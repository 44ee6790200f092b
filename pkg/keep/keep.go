// Package keep picks the survivor of each duplicate group. Members are
// ranked by modification time (newest first) with path length as the
// tie-break (shorter first); the sort is stable, so members tied on
// both keys keep their first-encountered order. Downstream automation
// depends on this exact ordering.
package keep

import (
	"sort"

	"github.com/arthur-debert/dedup/pkg/errors"
	"github.com/arthur-debert/dedup/pkg/types"
)

// Decide returns the keep/delete decision for one group. The head of
// the ranked members is kept; the remainder, in ranked order, is the
// delete list. A single-member group is accepted and kept with an empty
// delete list. An empty group fails with INVALID_INPUT.
func Decide(group types.DuplicateGroup) (types.Decision, error) {
	if len(group.Files) == 0 {
		return types.Decision{}, errors.New(errors.ErrInvalidInput, "duplicate group has no members")
	}

	ranked := make([]types.FileRecord, len(group.Files))
	copy(ranked, group.Files)

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].ModTime != ranked[j].ModTime {
			return ranked[i].ModTime > ranked[j].ModTime
		}
		return len(ranked[i].Path) < len(ranked[j].Path)
	})

	decision := types.Decision{
		Hash: group.Hash,
		Keep: ranked[0].Path,
	}
	for _, rec := range ranked[1:] {
		decision.Delete = append(decision.Delete, rec.Path)
	}

	return decision, nil
}

// DecideAll resolves every group, in hash order so the result is
// deterministic regardless of map iteration.
func DecideAll(groups map[string]types.DuplicateGroup) ([]types.Decision, error) {
	hashes := make([]string, 0, len(groups))
	for hash := range groups {
		hashes = append(hashes, hash)
	}
	sort.Strings(hashes)

	decisions := make([]types.Decision, 0, len(groups))
	for _, hash := range hashes {
		decision, err := Decide(groups[hash])
		if err != nil {
			return nil, err
		}
		decisions = append(decisions, decision)
	}

	return decisions, nil
}
