package engine

import (
	"context"
	"errors"
	"io"

	"github.com/repoviz/repoviz/pkg/vizmodel"
)

// AnalyzeCommits walks ancestry from HEAD, newest first by commit time, and
// embeds at most limit commits in visualization space (limit <= 0 means
// DefaultCommitLimit). Records are emitted in traversal order; pagination
// and chunking rely on that order.
//
// The pass fails atomically: a walk that cannot be initialized is a
// *RepositoryError, any commit that cannot be resolved mid-walk is an
// *AnalysisError, and neither returns partial results.
func (a *Analyzer) AnalyzeCommits(ctx context.Context, limit int) ([]vizmodel.Commit3D, error) {
	limit = normalizeLimit(limit)

	walk, err := a.repo.Walk()
	if err != nil {
		return nil, &RepositoryError{Path: a.repo.Path(), Err: err}
	}
	defer walk.Free()

	walk.SortByTime()

	branches, err := a.repo.Branches()
	if err != nil {
		return nil, &RepositoryError{Path: a.repo.Path(), Err: err}
	}

	lanes := NewLaneTable()
	depths := NewDepthTable()
	colors := NewColorCache()

	commits := make([]vizmodel.Commit3D, 0, limit)

	for len(commits) < limit {
		hash, nextErr := walk.Next()
		if errors.Is(nextErr, io.EOF) {
			break
		}

		if nextErr != nil {
			return nil, &AnalysisError{Op: "walk commits", Err: nextErr}
		}

		commit, lookupErr := a.repo.LookupCommit(hash)
		if lookupErr != nil {
			return nil, &AnalysisError{Op: "resolve commit " + hash.String(), Err: lookupErr}
		}

		branch := branchFor(hash, branches)

		author := commit.Author()

		email := author.Email
		if email == "" {
			email = unknownEmail
		}

		when := commit.Committer().When

		parentHashes := commit.ParentHashes()

		parents := make([]string, 0, len(parentHashes))
		for _, parent := range parentHashes {
			parents = append(parents, parent.String())
		}

		commits = append(commits, vizmodel.Commit3D{
			SHA:         hash.String(),
			Message:     commit.Message(),
			Author:      author.Name,
			AuthorEmail: email,
			Timestamp:   when.UTC(),
			Branch:      branch,
			Parents:     parents,
			X:           lanes.Position(branch),
			Y:           float64(when.Unix()),
			Z:           depths.Resolve(commit),
			Color:       colors.Color(email),
		})

		commit.Free()
	}

	a.logger.DebugContext(ctx, "commit embedding complete",
		"repo", a.repo.Path(),
		"commits", len(commits),
		"lanes", lanes.Len(),
	)

	return commits, nil
}
