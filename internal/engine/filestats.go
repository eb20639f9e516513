package engine

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"sort"
	"time"

	"github.com/src-d/enry/v2"

	"github.com/repoviz/repoviz/pkg/gitlib"
	"github.com/repoviz/repoviz/pkg/vizmodel"
)

// fileAccumulator collects per-path statistics across the diff pass.
type fileAccumulator struct {
	changeCount  int
	lastModified time.Time
	authors      map[string]struct{}
}

func (acc *fileAccumulator) touch(email string, when time.Time) {
	acc.changeCount++
	acc.lastModified = when
	acc.authors[email] = struct{}{}
}

// AnalyzeFileStats walks up to limit commits from HEAD, diffs each against
// its first parent (the empty tree for roots), and aggregates change counts
// per touched path. Heat levels are normalized to the most-changed path;
// file sizes come from the working tree at aggregation time. Addition and
// deletion line counts are not derived from diff content and stay zero.
//
// The result is an unordered set; it is returned sorted by path only so
// output is stable.
func (a *Analyzer) AnalyzeFileStats(ctx context.Context, limit int) ([]vizmodel.FileStats, error) {
	limit = normalizeLimit(limit)

	walk, err := a.repo.Walk()
	if err != nil {
		return nil, &RepositoryError{Path: a.repo.Path(), Err: err}
	}
	defer walk.Free()

	files := make(map[string]*fileAccumulator)

	count := 0

	for count < limit {
		hash, nextErr := walk.Next()
		if errors.Is(nextErr, io.EOF) {
			break
		}

		if nextErr != nil {
			return nil, &AnalysisError{Op: "walk commits", Err: nextErr}
		}

		err = a.accumulateCommitDiff(hash, files)
		if err != nil {
			return nil, err
		}

		count++
	}

	stats := buildFileStats(files, a.repo)

	a.logger.DebugContext(ctx, "file aggregation complete",
		"repo", a.repo.Path(),
		"commits", count,
		"files", len(stats),
	)

	return stats, nil
}

// accumulateCommitDiff diffs one commit against its first parent and folds
// every touched path into the accumulator map.
func (a *Analyzer) accumulateCommitDiff(hash gitlib.Hash, files map[string]*fileAccumulator) error {
	commit, err := a.repo.LookupCommit(hash)
	if err != nil {
		return &AnalysisError{Op: "resolve commit " + hash.String(), Err: err}
	}
	defer commit.Free()

	tree, err := commit.Tree()
	if err != nil {
		return &AnalysisError{Op: "read tree of " + hash.String(), Err: err}
	}
	defer tree.Free()

	var parentTree *gitlib.Tree

	if commit.NumParents() > 0 {
		parent, parentErr := commit.Parent(0)
		if parentErr != nil {
			return &AnalysisError{Op: "resolve parent of " + hash.String(), Err: parentErr}
		}

		parentTree, parentErr = parent.Tree()
		parent.Free()

		if parentErr != nil {
			return &AnalysisError{Op: "read parent tree of " + hash.String(), Err: parentErr}
		}

		defer parentTree.Free()
	}

	diff, err := a.repo.DiffTreeToTree(parentTree, tree)
	if err != nil {
		return &AnalysisError{Op: "diff " + hash.String(), Err: err}
	}
	defer diff.Free()

	paths, err := diff.TouchedPaths()
	if err != nil {
		return &AnalysisError{Op: "enumerate deltas of " + hash.String(), Err: err}
	}

	email := commit.Author().Email
	if email == "" {
		email = unknownEmail
	}

	now := time.Now().UTC()

	for _, path := range paths {
		acc, ok := files[path]
		if !ok {
			acc = &fileAccumulator{authors: make(map[string]struct{})}
			files[path] = acc
		}

		acc.touch(email, now)
	}

	return nil
}

// buildFileStats normalizes accumulated counts into heat levels and fills in
// working-tree sizes and detected languages.
func buildFileStats(files map[string]*fileAccumulator, repo *gitlib.Repository) []vizmodel.FileStats {
	// Floor the divisor at 1 so an empty window cannot divide by zero.
	maxChanges := 1
	for _, acc := range files {
		if acc.changeCount > maxChanges {
			maxChanges = acc.changeCount
		}
	}

	stats := make([]vizmodel.FileStats, 0, len(files))

	for path, acc := range files {
		authors := make([]string, 0, len(acc.authors))
		for author := range acc.authors {
			authors = append(authors, author)
		}

		sort.Strings(authors)

		heat := float64(acc.changeCount) / float64(maxChanges)
		if heat > 1.0 {
			heat = 1.0
		}

		stats = append(stats, vizmodel.FileStats{
			Path:         path,
			ChangeCount:  acc.changeCount,
			LastModified: acc.lastModified,
			Authors:      authors,
			HeatLevel:    heat,
			Size:         repo.WorkdirFileSize(path),
			Language:     enry.GetLanguage(filepath.Base(path), nil),
		})
	}

	sort.Slice(stats, func(i, j int) bool { return stats[i].Path < stats[j].Path })

	return stats
}
