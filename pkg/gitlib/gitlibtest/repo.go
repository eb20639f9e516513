// Package gitlibtest builds throwaway git repositories for integration
// tests. Repositories live in t.TempDir and are constructed through the
// native libgit2 bindings so tests do not depend on a git binary.
package gitlibtest

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	git2go "github.com/libgit2/git2go/v34"
	"github.com/stretchr/testify/require"

	"github.com/repoviz/repoviz/pkg/gitlib"
)

// Repo is a scratch repository rooted in a temp directory.
type Repo struct {
	T      *testing.T
	Path   string
	Native *git2go.Repository
}

// NewRepo initializes an empty repository with an unborn "main" branch,
// so branch naming is deterministic regardless of host git configuration.
func NewRepo(t *testing.T) *Repo {
	t.Helper()

	dir := t.TempDir()

	native, err := git2go.InitRepository(dir, false)
	require.NoError(t, err)

	err = native.SetHead("refs/heads/main")
	require.NoError(t, err)

	t.Cleanup(native.Free)

	return &Repo{T: t, Path: dir, Native: native}
}

// WriteFile creates or overwrites a file in the working directory.
func (r *Repo) WriteFile(name, content string) {
	r.T.Helper()

	path := filepath.Join(r.Path, name)

	dir := filepath.Dir(path)
	if dir != r.Path {
		require.NoError(r.T, os.MkdirAll(dir, 0o755))
	}

	require.NoError(r.T, os.WriteFile(path, []byte(content), 0o644))
}

// RemoveFile deletes a file from the working directory.
func (r *Repo) RemoveFile(name string) {
	r.T.Helper()

	require.NoError(r.T, os.Remove(filepath.Join(r.Path, name)))
}

// Commit stages everything and commits to the current branch.
func (r *Repo) Commit(message string, when time.Time) gitlib.Hash {
	return r.CommitAs(message, "Test User", "test@example.com", when)
}

// CommitAs stages everything and commits with the given author identity.
func (r *Repo) CommitAs(message, name, email string, when time.Time) gitlib.Hash {
	r.T.Helper()

	index, err := r.Native.Index()
	require.NoError(r.T, err)

	defer index.Free()

	require.NoError(r.T, index.AddAll([]string{"*"}, git2go.IndexAddDefault, nil))
	require.NoError(r.T, index.Write())

	treeID, err := index.WriteTree()
	require.NoError(r.T, err)

	tree, err := r.Native.LookupTree(treeID)
	require.NoError(r.T, err)

	defer tree.Free()

	sig := &git2go.Signature{Name: name, Email: email, When: when}

	var parents []*git2go.Commit

	head, headErr := r.Native.Head()
	if headErr == nil {
		headCommit, lookupErr := r.Native.LookupCommit(head.Target())
		require.NoError(r.T, lookupErr)

		parents = append(parents, headCommit)

		head.Free()
	}

	oid, err := r.Native.CreateCommit("HEAD", sig, sig, message, tree, parents...)
	require.NoError(r.T, err)

	for _, parent := range parents {
		parent.Free()
	}

	return gitlib.HashFromOid(oid)
}

// CreateBranch points a new local branch at the given commit.
func (r *Repo) CreateBranch(name string, at gitlib.Hash) {
	r.T.Helper()

	commit, err := r.Native.LookupCommit(at.ToOid())
	require.NoError(r.T, err)

	defer commit.Free()

	branch, err := r.Native.CreateBranch(name, commit, false)
	require.NoError(r.T, err)

	branch.Free()
}

// Open opens the repository through gitlib and registers cleanup.
func (r *Repo) Open() *gitlib.Repository {
	r.T.Helper()

	repo, err := gitlib.OpenRepository(r.Path)
	require.NoError(r.T, err)

	r.T.Cleanup(repo.Free)

	return repo
}
