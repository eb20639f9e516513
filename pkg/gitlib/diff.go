package gitlib

import (
	"fmt"

	git2go "github.com/libgit2/git2go/v34"
)

// Diff wraps a libgit2 diff.
type Diff struct {
	diff *git2go.Diff
}

// TouchedPaths returns the new-file path of every delta in the diff.
// Deleted files report their old path, matching libgit2's delta layout.
func (d *Diff) TouchedPaths() ([]string, error) {
	numDeltas, err := d.diff.NumDeltas()
	if err != nil {
		return nil, fmt.Errorf("get num deltas: %w", err)
	}

	paths := make([]string, 0, numDeltas)

	for i := range numDeltas {
		delta, deltaErr := d.diff.Delta(i)
		if deltaErr != nil {
			return nil, fmt.Errorf("get delta %d: %w", i, deltaErr)
		}

		path := delta.NewFile.Path
		if path == "" {
			path = delta.OldFile.Path
		}

		if path != "" {
			paths = append(paths, path)
		}
	}

	return paths, nil
}

// Free releases the diff resources.
func (d *Diff) Free() {
	if d.diff != nil {
		_ = d.diff.Free()
		d.diff = nil
	}
}
