package gitlib

import (
	"errors"
	"fmt"
	"time"

	git2go "github.com/libgit2/git2go/v34"

	"github.com/repoviz/repoviz/pkg/safeconv"
)

// ErrParentNotFound is returned when the requested parent commit is not found.
var ErrParentNotFound = errors.New("parent commit not found")

// Signature is a git author or committer identity.
type Signature struct {
	Name  string
	Email string
	When  time.Time
}

// Commit wraps a libgit2 commit.
type Commit struct {
	commit *git2go.Commit
	repo   *Repository
}

// Hash returns the commit hash.
func (c *Commit) Hash() Hash {
	return HashFromOid(c.commit.Id())
}

// Author returns the commit author.
func (c *Commit) Author() Signature {
	sig := c.commit.Author()

	return Signature{
		Name:  sig.Name,
		Email: sig.Email,
		When:  sig.When,
	}
}

// Committer returns the commit committer.
func (c *Commit) Committer() Signature {
	sig := c.commit.Committer()

	return Signature{
		Name:  sig.Name,
		Email: sig.Email,
		When:  sig.When,
	}
}

// Message returns the commit message.
func (c *Commit) Message() string {
	return c.commit.Message()
}

// NumParents returns the number of parent commits.
func (c *Commit) NumParents() int {
	return safeconv.MustUintToInt(c.commit.ParentCount())
}

// ParentHash returns the hash of the nth parent.
func (c *Commit) ParentHash(n int) Hash {
	return HashFromOid(c.commit.ParentId(safeconv.MustIntToUint(n)))
}

// ParentHashes returns the hashes of all parents in order.
func (c *Commit) ParentHashes() []Hash {
	count := c.NumParents()

	hashes := make([]Hash, count)
	for i := range count {
		hashes[i] = c.ParentHash(i)
	}

	return hashes
}

// Parent returns the nth parent commit.
func (c *Commit) Parent(n int) (*Commit, error) {
	parent := c.commit.Parent(safeconv.MustIntToUint(n))
	if parent == nil {
		return nil, ErrParentNotFound
	}

	return &Commit{commit: parent, repo: c.repo}, nil
}

// Tree returns the tree associated with this commit.
func (c *Commit) Tree() (*Tree, error) {
	tree, err := c.commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("get commit tree: %w", err)
	}

	return &Tree{tree: tree}, nil
}

// Free releases the commit resources.
func (c *Commit) Free() {
	if c.commit != nil {
		c.commit.Free()
		c.commit = nil
	}
}

// Tree wraps a libgit2 tree.
type Tree struct {
	tree *git2go.Tree
}

// Free releases the tree resources.
func (t *Tree) Free() {
	if t.tree != nil {
		t.tree.Free()
		t.tree = nil
	}
}
