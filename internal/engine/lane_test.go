package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/repoviz/repoviz/internal/engine"
)

func TestLaneTableFirstSeenOrder(t *testing.T) {
	lanes := engine.NewLaneTable()

	assert.InDelta(t, 0.0, lanes.Position("main"), 0)
	assert.InDelta(t, 10.0, lanes.Position("feature"), 0)
	assert.InDelta(t, 20.0, lanes.Position("hotfix"), 0)
	assert.Equal(t, 3, lanes.Len())
}

func TestLaneTableStableWithinPass(t *testing.T) {
	lanes := engine.NewLaneTable()

	first := lanes.Position("develop")
	second := lanes.Position("develop")

	assert.InDelta(t, first, second, 0)
	assert.Equal(t, 1, lanes.Len())
}

func TestLaneTableInterleavedLookups(t *testing.T) {
	lanes := engine.NewLaneTable()

	assert.InDelta(t, 0.0, lanes.Position("a"), 0)
	assert.InDelta(t, 10.0, lanes.Position("b"), 0)
	assert.InDelta(t, 0.0, lanes.Position("a"), 0)
	assert.InDelta(t, 20.0, lanes.Position("c"), 0)
	assert.InDelta(t, 10.0, lanes.Position("b"), 0)
}

func TestLaneTablesAreIndependent(t *testing.T) {
	first := engine.NewLaneTable()
	second := engine.NewLaneTable()

	first.Position("main")
	first.Position("feature")

	// A fresh table starts over from lane 0.
	assert.InDelta(t, 0.0, second.Position("feature"), 0)
}
