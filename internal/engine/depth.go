package engine

import (
	"github.com/repoviz/repoviz/pkg/gitlib"
)

// fallbackDepth is assigned to a non-root commit none of whose parents have
// a recorded depth at the time it is visited.
const fallbackDepth = 1.0

// CommitLike is the subset of commit accessors the depth resolver needs.
// Satisfied by *gitlib.Commit and by test stubs.
type CommitLike interface {
	Hash() gitlib.Hash
	NumParents() int
	ParentHash(n int) gitlib.Hash
}

// DepthTable memoizes longest-path depth from a root commit, keyed by commit
// identity. Like LaneTable it is scoped to a single pass.
//
// Resolution is traversal-order-sensitive: a parent's depth only contributes
// if it was recorded before the child is visited. The commit embedder walks
// newest-first, so most non-root commits see no recorded parents and take
// the fallback depth of 1. That degenerate shape is what the current
// visualization renders; changing the walk to parents-first would change
// every Z coordinate and is deliberately not done here.
type DepthTable struct {
	depths map[gitlib.Hash]float64
}

// NewDepthTable returns an empty depth table.
func NewDepthTable() *DepthTable {
	return &DepthTable{depths: make(map[gitlib.Hash]float64)}
}

// Resolve returns the memoized depth for the commit, computing and recording
// it on first encounter. Root commits are depth 0; otherwise the depth is
// 1 + max over parents already present in the table, or 1 if none are.
func (t *DepthTable) Resolve(commit CommitLike) float64 {
	hash := commit.Hash()

	if depth, ok := t.depths[hash]; ok {
		return depth
	}

	depth := t.compute(commit)
	t.depths[hash] = depth

	return depth
}

func (t *DepthTable) compute(commit CommitLike) float64 {
	numParents := commit.NumParents()
	if numParents == 0 {
		return 0
	}

	maxParent := -1.0

	for i := range numParents {
		if parentDepth, ok := t.depths[commit.ParentHash(i)]; ok && parentDepth > maxParent {
			maxParent = parentDepth
		}
	}

	if maxParent < 0 {
		return fallbackDepth
	}

	return maxParent + 1
}

// Len returns the number of recorded depths.
func (t *DepthTable) Len() int {
	return len(t.depths)
}
