package gitlib

import (
	"fmt"
	"os"
	"path/filepath"

	git2go "github.com/libgit2/git2go/v34"
)

// Repository wraps a libgit2 repository.
type Repository struct {
	repo *git2go.Repository
	path string
}

// OpenRepository opens a git repository at the given path.
func OpenRepository(path string) (*Repository, error) {
	repo, err := git2go.OpenRepository(path)
	if err != nil {
		return nil, fmt.Errorf("open repository: %w", err)
	}

	return &Repository{repo: repo, path: path}, nil
}

// Path returns the repository path.
func (r *Repository) Path() string {
	return r.path
}

// Free releases the repository resources.
func (r *Repository) Free() {
	if r.repo != nil {
		r.repo.Free()
		r.repo = nil
	}
}

// Head resolves HEAD to its target hash and branch shorthand
// (e.g. "main" for refs/heads/main).
func (r *Repository) Head() (Hash, string, error) {
	ref, err := r.repo.Head()
	if err != nil {
		return Hash{}, "", fmt.Errorf("get HEAD: %w", err)
	}
	defer ref.Free()

	return HashFromOid(ref.Target()), ref.Shorthand(), nil
}

// LookupCommit returns the commit with the given hash.
func (r *Repository) LookupCommit(hash Hash) (*Commit, error) {
	commit, err := r.repo.LookupCommit(hash.ToOid())
	if err != nil {
		return nil, fmt.Errorf("lookup commit: %w", err)
	}

	return &Commit{commit: commit, repo: r}, nil
}

// Walk creates a revision walker rooted at HEAD.
func (r *Repository) Walk() (*RevWalk, error) {
	walk, err := r.repo.Walk()
	if err != nil {
		return nil, fmt.Errorf("create revwalk: %w", err)
	}

	headRef, err := r.repo.Head()
	if err != nil {
		walk.Free()

		return nil, fmt.Errorf("get HEAD: %w", err)
	}
	defer headRef.Free()

	err = walk.Push(headRef.Target())
	if err != nil {
		walk.Free()

		return nil, fmt.Errorf("push HEAD to revwalk: %w", err)
	}

	return &RevWalk{walk: walk, repo: r}, nil
}

// Branches returns all local branches as (name, head hash) pairs.
// Branches whose reference does not resolve to a commit are skipped.
func (r *Repository) Branches() ([]Branch, error) {
	iter, err := r.repo.NewBranchIterator(git2go.BranchLocal)
	if err != nil {
		return nil, fmt.Errorf("create branch iterator: %w", err)
	}
	defer iter.Free()

	var branches []Branch

	err = iter.ForEach(func(branch *git2go.Branch, _ git2go.BranchType) error {
		name, nameErr := branch.Name()
		if nameErr != nil {
			name = "unknown"
		}

		target := branch.Target()
		if target == nil {
			// Dangling ref, nothing to report.
			return nil
		}

		branches = append(branches, Branch{Name: name, Target: HashFromOid(target)})

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterate branches: %w", err)
	}

	return branches, nil
}

// DiffTreeToTree computes the diff between two trees. Either side may be nil,
// which diffs against the empty tree.
func (r *Repository) DiffTreeToTree(oldTree, newTree *Tree) (*Diff, error) {
	opts, err := git2go.DefaultDiffOptions()
	if err != nil {
		return nil, fmt.Errorf("get diff options: %w", err)
	}

	var oldT, newT *git2go.Tree
	if oldTree != nil {
		oldT = oldTree.tree
	}

	if newTree != nil {
		newT = newTree.tree
	}

	diff, err := r.repo.DiffTreeToTree(oldT, newT, &opts)
	if err != nil {
		return nil, fmt.Errorf("diff trees: %w", err)
	}

	return &Diff{diff: diff}, nil
}

// WorkdirFileSize returns the size of a working-tree file by repo-relative
// path. Returns 0 for bare repositories and paths that no longer exist.
func (r *Repository) WorkdirFileSize(path string) int64 {
	workdir := r.repo.Workdir()
	if workdir == "" {
		return 0
	}

	info, err := os.Stat(filepath.Join(workdir, path))
	if err != nil {
		return 0
	}

	return info.Size()
}

// Native returns the underlying libgit2 repository for advanced operations.
func (r *Repository) Native() *git2go.Repository {
	return r.repo
}

// Branch is a local branch head.
type Branch struct {
	Name   string
	Target Hash
}
