package engine

// LaneSpacing is the horizontal distance between adjacent branch lanes.
const LaneSpacing = 10.0

// LaneTable maps branch names to horizontal lane positions. Lanes are
// assigned in first-seen order: 0, 10, 20, … for a spacing of 10. A table
// is scoped to one analysis pass and never shared between requests.
type LaneTable struct {
	positions map[string]float64
}

// NewLaneTable returns an empty lane table.
func NewLaneTable() *LaneTable {
	return &LaneTable{positions: make(map[string]float64)}
}

// Position returns the lane for the given branch name, assigning the next
// free lane on first encounter. Repeated calls with the same name always
// return the same value.
func (t *LaneTable) Position(branch string) float64 {
	if pos, ok := t.positions[branch]; ok {
		return pos
	}

	pos := float64(len(t.positions)) * LaneSpacing
	t.positions[branch] = pos

	return pos
}

// Len returns the number of assigned lanes.
func (t *LaneTable) Len() int {
	return len(t.positions)
}
