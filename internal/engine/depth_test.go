package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/repoviz/repoviz/internal/engine"
	"github.com/repoviz/repoviz/pkg/gitlib"
)

// stubCommit satisfies engine.CommitLike without a real repository.
type stubCommit struct {
	hash    gitlib.Hash
	parents []gitlib.Hash
}

func (s stubCommit) Hash() gitlib.Hash          { return s.hash }
func (s stubCommit) NumParents() int            { return len(s.parents) }
func (s stubCommit) ParentHash(n int) gitlib.Hash { return s.parents[n] }

func hashOf(b byte) gitlib.Hash {
	var h gitlib.Hash
	h[0] = b

	return h
}

func TestDepthRootIsZero(t *testing.T) {
	depths := engine.NewDepthTable()

	root := stubCommit{hash: hashOf(1)}

	assert.InDelta(t, 0.0, depths.Resolve(root), 0)
	assert.Equal(t, 1, depths.Len())
}

func TestDepthParentsFirstAccumulates(t *testing.T) {
	depths := engine.NewDepthTable()

	root := stubCommit{hash: hashOf(1)}
	child := stubCommit{hash: hashOf(2), parents: []gitlib.Hash{hashOf(1)}}
	grandchild := stubCommit{hash: hashOf(3), parents: []gitlib.Hash{hashOf(2)}}

	assert.InDelta(t, 0.0, depths.Resolve(root), 0)
	assert.InDelta(t, 1.0, depths.Resolve(child), 0)
	assert.InDelta(t, 2.0, depths.Resolve(grandchild), 0)
}

func TestDepthChildBeforeParentFallsBack(t *testing.T) {
	depths := engine.NewDepthTable()

	child := stubCommit{hash: hashOf(2), parents: []gitlib.Hash{hashOf(1)}}
	root := stubCommit{hash: hashOf(1)}

	// Visiting the child first finds no recorded parent depth, so it takes
	// the fallback depth of 1; the root still resolves to 0 afterwards.
	assert.InDelta(t, 1.0, depths.Resolve(child), 0)
	assert.InDelta(t, 0.0, depths.Resolve(root), 0)

	// The child's depth was memoized before the parent was known.
	assert.InDelta(t, 1.0, depths.Resolve(child), 0)
}

func TestDepthMergeTakesMaxParent(t *testing.T) {
	depths := engine.NewDepthTable()

	root := stubCommit{hash: hashOf(1)}
	left := stubCommit{hash: hashOf(2), parents: []gitlib.Hash{hashOf(1)}}
	right := stubCommit{hash: hashOf(3), parents: []gitlib.Hash{hashOf(1)}}
	mid := stubCommit{hash: hashOf(4), parents: []gitlib.Hash{hashOf(2)}}
	merge := stubCommit{hash: hashOf(5), parents: []gitlib.Hash{hashOf(4), hashOf(3)}}

	depths.Resolve(root)
	depths.Resolve(left)
	depths.Resolve(right)
	depths.Resolve(mid)

	assert.InDelta(t, 3.0, depths.Resolve(merge), 0)
}

func TestDepthPartiallyKnownParentsIgnoresMissing(t *testing.T) {
	depths := engine.NewDepthTable()

	root := stubCommit{hash: hashOf(1)}
	merge := stubCommit{hash: hashOf(5), parents: []gitlib.Hash{hashOf(1), hashOf(9)}}

	depths.Resolve(root)

	// Only the recorded parent contributes: 0 + 1.
	assert.InDelta(t, 1.0, depths.Resolve(merge), 0)
}
