package engine

import (
	"context"

	"github.com/repoviz/repoviz/pkg/vizmodel"
)

// AnalyzeBranches reports every local branch as a graph node: head commit,
// lane position, timestamps from the head commit, and whether it is the
// checked-out branch. Branches whose head cannot be resolved are skipped,
// not reported as errors.
func (a *Analyzer) AnalyzeBranches(ctx context.Context) ([]vizmodel.BranchNode, error) {
	branches, err := a.repo.Branches()
	if err != nil {
		return nil, &AnalysisError{Op: "enumerate branches", Err: err}
	}

	// An unborn HEAD (fresh repository) just means no branch is active;
	// the summary itself still succeeds.
	_, activeBranch, err := a.repo.Head()
	if err != nil {
		activeBranch = ""
	}

	lanes := NewLaneTable()

	nodes := make([]vizmodel.BranchNode, 0, len(branches))

	for _, branch := range branches {
		commit, lookupErr := a.repo.LookupCommit(branch.Target)
		if lookupErr != nil {
			// Dangling ref: the branch points at nothing resolvable.
			continue
		}

		when := commit.Committer().When
		commit.Free()

		connections := a.branchConnections(branch.Name)

		nodes = append(nodes, vizmodel.BranchNode{
			Name:        branch.Name,
			HeadSHA:     branch.Target.String(),
			IsActive:    branch.Name == activeBranch,
			MergeCount:  len(connections),
			CreatedAt:   when.UTC(),
			LastCommit:  when.UTC(),
			X:           lanes.Position(branch.Name),
			Y:           float64(when.Unix()),
			Z:           0,
			Connections: connections,
		})
	}

	a.logger.DebugContext(ctx, "branch summary complete",
		"repo", a.repo.Path(),
		"branches", len(nodes),
		"active", activeBranch,
	)

	return nodes, nil
}

// branchConnections would detect merge, fork and rebase edges between
// branches. Detection is not implemented; the empty result keeps merge
// counts at zero while the wire format stays ready for it.
func (a *Analyzer) branchConnections(_ string) []vizmodel.BranchConnection {
	return []vizmodel.BranchConnection{}
}
