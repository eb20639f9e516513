// Package engine derives visualization data from a repository's commit DAG:
// a 3D spatial embedding of every commit, per-file change aggregates for the
// heatmap, and a branch-graph summary.
//
// Each analysis pass is self-contained: it opens its own repository handle,
// builds fresh lane/depth/color tables and retains nothing afterward, so
// concurrent passes against the same repository never interfere. All work is
// synchronous; callers stream or paginate the finished result.
package engine

import (
	"log/slog"

	"github.com/repoviz/repoviz/pkg/gitlib"
)

// DefaultCommitLimit bounds a pass when the caller does not specify a limit.
const DefaultCommitLimit = 1000

const (
	// fallbackBranch labels commits that are not the head of any local
	// branch. All such commits collapse onto one label, which also merges
	// unrelated histories into a single lane. Known limitation.
	fallbackBranch = "main"

	// unknownEmail stands in for commits without an author email.
	unknownEmail = "unknown"
)

// Analyzer runs analysis passes against one open repository.
type Analyzer struct {
	repo   *gitlib.Repository
	logger *slog.Logger
}

// Open opens the repository at path for analysis. Failure to open is a
// *RepositoryError.
func Open(path string, logger *slog.Logger) (*Analyzer, error) {
	repo, err := gitlib.OpenRepository(path)
	if err != nil {
		return nil, &RepositoryError{Path: path, Err: err}
	}

	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Analyzer{repo: repo, logger: logger}, nil
}

// Close releases the repository handle.
func (a *Analyzer) Close() {
	a.repo.Free()
}

// branchFor resolves the branch label for a commit by exact head match:
// only commits that are themselves a branch head get that branch's name,
// everything else falls back to the catch-all label.
func branchFor(hash gitlib.Hash, branches []gitlib.Branch) string {
	for _, branch := range branches {
		if branch.Target == hash {
			return branch.Name
		}
	}

	return fallbackBranch
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultCommitLimit
	}

	return limit
}
