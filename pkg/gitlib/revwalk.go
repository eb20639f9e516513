package gitlib

import (
	"fmt"
	"io"

	git2go "github.com/libgit2/git2go/v34"
)

// RevWalk wraps a libgit2 revision walker.
type RevWalk struct {
	walk *git2go.RevWalk
	repo *Repository
}

// SortByTime orders the walk by commit time, newest first.
func (w *RevWalk) SortByTime() {
	w.walk.Sorting(git2go.SortTime)
}

// Next returns the next commit hash in the walk. Returns io.EOF when the
// walk is exhausted.
func (w *RevWalk) Next() (Hash, error) {
	oid := new(git2go.Oid)

	err := w.walk.Next(oid)
	if err != nil {
		if git2go.IsErrorCode(err, git2go.ErrorCodeIterOver) {
			return Hash{}, io.EOF
		}

		return Hash{}, fmt.Errorf("revwalk next: %w", err)
	}

	return HashFromOid(oid), nil
}

// Free releases the walker resources.
func (w *RevWalk) Free() {
	if w.walk != nil {
		w.walk.Free()
		w.walk = nil
	}
}
