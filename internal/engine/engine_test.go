package engine_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repoviz/repoviz/internal/engine"
	"github.com/repoviz/repoviz/pkg/gitlib/gitlibtest"
	"github.com/repoviz/repoviz/pkg/vizmodel"
)

func openAnalyzer(t *testing.T, path string) *engine.Analyzer {
	t.Helper()

	analyzer, err := engine.Open(path, nil)
	require.NoError(t, err)

	t.Cleanup(analyzer.Close)

	return analyzer
}

func TestOpenNotARepository(t *testing.T) {
	analyzer, err := engine.Open(t.TempDir(), nil)

	assert.Nil(t, analyzer)
	require.Error(t, err)
	assert.True(t, engine.IsRepositoryError(err))
}

func TestAnalyzeCommitsEmptyRepositoryFails(t *testing.T) {
	tr := gitlibtest.NewRepo(t)
	analyzer := openAnalyzer(t, tr.Path)

	_, err := analyzer.AnalyzeCommits(t.Context(), 0)
	require.Error(t, err)
	assert.True(t, engine.IsRepositoryError(err))
}

func TestAnalyzeCommitsTwoCommitChain(t *testing.T) {
	tr := gitlibtest.NewRepo(t)
	tr.WriteFile("a.txt", "one")
	c1 := tr.Commit("first", time.Unix(100, 0))
	tr.WriteFile("a.txt", "two")
	c2 := tr.Commit("second", time.Unix(200, 0))

	analyzer := openAnalyzer(t, tr.Path)

	commits, err := analyzer.AnalyzeCommits(t.Context(), 0)
	require.NoError(t, err)
	require.Len(t, commits, 2)

	// Newest first.
	assert.Equal(t, c2.String(), commits[0].SHA)
	assert.Equal(t, c1.String(), commits[1].SHA)

	// Both resolve to the checked-out branch label and share lane 0.
	assert.Equal(t, "main", commits[0].Branch)
	assert.Equal(t, "main", commits[1].Branch)
	assert.InDelta(t, 0.0, commits[0].X, 0)
	assert.InDelta(t, 0.0, commits[1].X, 0)

	// Time axis carries the raw commit timestamps.
	assert.InDelta(t, 200.0, commits[0].Y, 0)
	assert.InDelta(t, 100.0, commits[1].Y, 0)

	// Newest-first traversal: the child is visited before its parent's
	// depth is recorded, so it takes the fallback depth of 1; the root is 0.
	assert.InDelta(t, 1.0, commits[0].Z, 0)
	assert.InDelta(t, 0.0, commits[1].Z, 0)

	assert.Equal(t, []string{c1.String()}, commits[0].Parents)
	assert.Empty(t, commits[1].Parents)

	// Same author, same color.
	assert.Equal(t, commits[0].Color, commits[1].Color)
	assert.Equal(t, "test@example.com", commits[0].AuthorEmail)
}

func TestAnalyzeCommitsRespectsLimit(t *testing.T) {
	tr := gitlibtest.NewRepo(t)

	for i, when := range []int64{100, 200, 300} {
		tr.WriteFile("a.txt", string(rune('a'+i)))
		tr.Commit("step", time.Unix(when, 0))
	}

	analyzer := openAnalyzer(t, tr.Path)

	commits, err := analyzer.AnalyzeCommits(t.Context(), 2)
	require.NoError(t, err)
	require.Len(t, commits, 2)
	assert.InDelta(t, 300.0, commits[0].Y, 0)
	assert.InDelta(t, 200.0, commits[1].Y, 0)
}

func TestAnalyzeCommitsBranchHeadLabels(t *testing.T) {
	tr := gitlibtest.NewRepo(t)
	tr.WriteFile("a.txt", "one")
	c1 := tr.Commit("first", time.Unix(100, 0))
	tr.WriteFile("a.txt", "two")
	c2 := tr.Commit("second", time.Unix(200, 0))
	tr.CreateBranch("feature", c1)

	analyzer := openAnalyzer(t, tr.Path)

	commits, err := analyzer.AnalyzeCommits(t.Context(), 0)
	require.NoError(t, err)
	require.Len(t, commits, 2)

	// Each commit is an exact branch head here, so both get real labels
	// and distinct lanes in first-seen order.
	assert.Equal(t, c2.String(), commits[0].SHA)
	assert.Equal(t, "main", commits[0].Branch)
	assert.InDelta(t, 0.0, commits[0].X, 0)

	assert.Equal(t, c1.String(), commits[1].SHA)
	assert.Equal(t, "feature", commits[1].Branch)
	assert.InDelta(t, 10.0, commits[1].X, 0)
}

func TestAnalyzeCommitsIdempotent(t *testing.T) {
	tr := gitlibtest.NewRepo(t)
	tr.WriteFile("a.txt", "one")
	tr.CommitAs("first", "Ada", "ada@example.com", time.Unix(100, 0))
	tr.WriteFile("b.txt", "two")
	tr.CommitAs("second", "Bob", "bob@example.com", time.Unix(200, 0))

	analyzer := openAnalyzer(t, tr.Path)

	first, err := analyzer.AnalyzeCommits(t.Context(), 0)
	require.NoError(t, err)

	second, err := analyzer.AnalyzeCommits(t.Context(), 0)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestAnalyzeFileStatsHeatNormalization(t *testing.T) {
	tr := gitlibtest.NewRepo(t)
	tr.WriteFile("a.txt", "v1")
	tr.WriteFile("b.txt", "v1")
	tr.Commit("both", time.Unix(100, 0))
	tr.WriteFile("a.txt", "v2")
	tr.Commit("a again", time.Unix(200, 0))
	tr.WriteFile("a.txt", "v3")
	tr.Commit("a once more", time.Unix(300, 0))

	analyzer := openAnalyzer(t, tr.Path)

	stats, err := analyzer.AnalyzeFileStats(t.Context(), 0)
	require.NoError(t, err)
	require.Len(t, stats, 2)

	byPath := map[string]vizmodel.FileStats{}
	for _, stat := range stats {
		byPath[stat.Path] = stat
	}

	a := byPath["a.txt"]
	assert.Equal(t, 3, a.ChangeCount)
	assert.InDelta(t, 1.0, a.HeatLevel, 1e-9)
	assert.Equal(t, int64(2), a.Size)
	assert.Equal(t, []string{"test@example.com"}, a.Authors)

	b := byPath["b.txt"]
	assert.Equal(t, 1, b.ChangeCount)
	assert.InDelta(t, 1.0/3.0, b.HeatLevel, 1e-9)

	// Line counts are not derived from diff content.
	assert.Zero(t, a.Additions)
	assert.Zero(t, a.Deletions)
}

func TestAnalyzeFileStatsRespectsLimit(t *testing.T) {
	tr := gitlibtest.NewRepo(t)
	tr.WriteFile("old.txt", "v1")
	tr.Commit("old", time.Unix(100, 0))
	tr.WriteFile("new.txt", "v1")
	tr.Commit("new", time.Unix(200, 0))

	analyzer := openAnalyzer(t, tr.Path)

	// Only the newest commit falls inside the window.
	stats, err := analyzer.AnalyzeFileStats(t.Context(), 1)
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, "new.txt", stats[0].Path)
}

func TestAnalyzeFileStatsDeletedFileHasZeroSize(t *testing.T) {
	tr := gitlibtest.NewRepo(t)
	tr.WriteFile("gone.txt", "bye")
	tr.Commit("add", time.Unix(100, 0))
	tr.RemoveFile("gone.txt")
	tr.Commit("remove", time.Unix(200, 0))

	analyzer := openAnalyzer(t, tr.Path)

	stats, err := analyzer.AnalyzeFileStats(t.Context(), 0)
	require.NoError(t, err)
	require.Len(t, stats, 1)

	assert.Equal(t, "gone.txt", stats[0].Path)
	assert.Equal(t, 2, stats[0].ChangeCount)
	assert.Zero(t, stats[0].Size)
}

func TestAnalyzeFileStatsDetectsLanguage(t *testing.T) {
	tr := gitlibtest.NewRepo(t)
	tr.WriteFile("main.go", "package main\n")
	tr.Commit("go file", time.Unix(100, 0))

	analyzer := openAnalyzer(t, tr.Path)

	stats, err := analyzer.AnalyzeFileStats(t.Context(), 0)
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, "Go", stats[0].Language)
}

func TestAnalyzeBranches(t *testing.T) {
	tr := gitlibtest.NewRepo(t)
	tr.WriteFile("a.txt", "one")
	c1 := tr.Commit("first", time.Unix(100, 0))
	tr.WriteFile("a.txt", "two")
	c2 := tr.Commit("second", time.Unix(200, 0))
	tr.CreateBranch("feature", c1)

	analyzer := openAnalyzer(t, tr.Path)

	nodes, err := analyzer.AnalyzeBranches(t.Context())
	require.NoError(t, err)
	require.Len(t, nodes, 2)

	byName := map[string]vizmodel.BranchNode{}
	for _, node := range nodes {
		byName[node.Name] = node
	}

	main := byName["main"]
	assert.Equal(t, c2.String(), main.HeadSHA)
	assert.True(t, main.IsActive)
	assert.Zero(t, main.MergeCount)
	assert.Empty(t, main.Connections)
	assert.NotNil(t, main.Connections)
	assert.InDelta(t, 200.0, main.Y, 0)
	assert.InDelta(t, 0.0, main.Z, 0)

	feature := byName["feature"]
	assert.Equal(t, c1.String(), feature.HeadSHA)
	assert.False(t, feature.IsActive)
	assert.InDelta(t, 100.0, feature.Y, 0)

	// Lanes are distinct and spaced by 10 in enumeration order.
	assert.NotEqual(t, main.X, feature.X)
}

func TestAnalyzeBranchesEmptyRepository(t *testing.T) {
	// No commits: HEAD is unborn and there are no branches, but the
	// summary succeeds with an empty node list.
	tr := gitlibtest.NewRepo(t)
	analyzer := openAnalyzer(t, tr.Path)

	nodes, err := analyzer.AnalyzeBranches(t.Context())
	require.NoError(t, err)
	assert.Empty(t, nodes)
}

func TestAnalyzeBranchesSkipsDanglingRef(t *testing.T) {
	tr := gitlibtest.NewRepo(t)
	tr.WriteFile("a.txt", "one")
	tr.Commit("first", time.Unix(100, 0))

	// A raw ref pointing at an object that does not exist.
	refPath := filepath.Join(tr.Path, ".git", "refs", "heads", "broken")
	require.NoError(t, os.WriteFile(refPath, []byte(strings.Repeat("a", 40)+"\n"), 0o644))

	analyzer := openAnalyzer(t, tr.Path)

	nodes, err := analyzer.AnalyzeBranches(t.Context())
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.Equal(t, "main", nodes[0].Name)
}
