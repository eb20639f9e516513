package server

import (
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/repoviz/repoviz/internal/engine"
	"github.com/repoviz/repoviz/internal/stream"
	"github.com/repoviz/repoviz/pkg/vizmodel"
)

// handleCommits serves GET /api/commits: the full 3D commit embedding, up to
// limit commits.
func (s *Server) handleCommits(c *gin.Context) {
	repoPath := s.resolveRepoPath(c)
	limit := intQuery(c, "limit", s.cfg.CommitLimit)

	analyzer, ok := s.openAnalyzer(c, repoPath)
	if !ok {
		return
	}
	defer analyzer.Close()

	start := time.Now()

	commits, err := analyzer.AnalyzeCommits(c.Request.Context(), limit)
	if err != nil {
		s.failAnalysis(c, "commits", err)
		return
	}

	s.recordPass(c, "commits", len(commits), time.Since(start))
	s.logger.InfoContext(c.Request.Context(), "analyzed commits",
		"count", len(commits), "repo", repoPath)

	c.JSON(http.StatusOK, vizmodel.OK(commits))
}

// handlePaginatedCommits serves GET /api/commits/paginated: one page of the
// full embedding. page is zero-based; limit is the page size.
func (s *Server) handlePaginatedCommits(c *gin.Context) {
	repoPath := s.resolveRepoPath(c)
	page := intQuery(c, "page", 0)
	size := intQuery(c, "limit", s.cfg.PageSize)

	analyzer, ok := s.openAnalyzer(c, repoPath)
	if !ok {
		return
	}
	defer analyzer.Close()

	start := time.Now()

	commits, err := analyzer.AnalyzeCommits(c.Request.Context(), s.cfg.CommitLimit)
	if err != nil {
		s.failAnalysis(c, "commits", err)
		return
	}

	s.recordPass(c, "commits", len(commits), time.Since(start))

	pageCommits := stream.Paginate(commits, page, size)
	s.logger.InfoContext(c.Request.Context(), "serving commit page",
		"page", page, "size", len(pageCommits), "total", len(commits), "repo", repoPath)

	c.JSON(http.StatusOK, vizmodel.OK(pageCommits))
}

// handleStreamCommits serves GET /api/commits/stream: the full embedding as
// Server-Sent Events, one chunk per event with a progress marker.
func (s *Server) handleStreamCommits(c *gin.Context) {
	repoPath := s.resolveRepoPath(c)
	chunkSize := intQuery(c, "chunk_size", s.cfg.ChunkSize)

	analyzer, ok := s.openAnalyzer(c, repoPath)
	if !ok {
		return
	}
	defer analyzer.Close()

	start := time.Now()

	commits, err := analyzer.AnalyzeCommits(c.Request.Context(), s.cfg.CommitLimit)
	if err != nil {
		s.failAnalysis(c, "commits", err)
		return
	}

	s.recordPass(c, "commits", len(commits), time.Since(start))
	s.logger.InfoContext(c.Request.Context(), "streaming commits",
		"count", len(commits), "chunk_size", chunkSize, "repo", repoPath)

	chunks := stream.Split(commits, chunkSize)

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	next := 0

	c.Stream(func(_ io.Writer) bool {
		if next >= len(chunks) {
			return false
		}

		c.SSEvent("message", chunks[next])
		next++

		return true
	})
}

// handleFileHeatmap serves GET /api/files/heatmap: per-file change
// aggregates over the last limit commits.
func (s *Server) handleFileHeatmap(c *gin.Context) {
	repoPath := s.resolveRepoPath(c)
	limit := intQuery(c, "limit", s.cfg.CommitLimit)

	analyzer, ok := s.openAnalyzer(c, repoPath)
	if !ok {
		return
	}
	defer analyzer.Close()

	start := time.Now()

	stats, err := analyzer.AnalyzeFileStats(c.Request.Context(), limit)
	if err != nil {
		s.failAnalysis(c, "files", err)
		return
	}

	s.recordPass(c, "files", len(stats), time.Since(start))
	s.logger.InfoContext(c.Request.Context(), "analyzed files",
		"count", len(stats), "repo", repoPath)

	c.JSON(http.StatusOK, vizmodel.OK(stats))
}

// handleBranchGraph serves GET /api/branches/graph: one node per local
// branch with its spatial position.
func (s *Server) handleBranchGraph(c *gin.Context) {
	repoPath := s.resolveRepoPath(c)

	analyzer, ok := s.openAnalyzer(c, repoPath)
	if !ok {
		return
	}
	defer analyzer.Close()

	start := time.Now()

	branches, err := analyzer.AnalyzeBranches(c.Request.Context())
	if err != nil {
		s.failAnalysis(c, "branches", err)
		return
	}

	s.recordPass(c, "branches", len(branches), time.Since(start))
	s.logger.InfoContext(c.Request.Context(), "analyzed branches",
		"count", len(branches), "repo", repoPath)

	c.JSON(http.StatusOK, vizmodel.OK(branches))
}

// openAnalyzer opens the repository or writes the 400 error response.
func (s *Server) openAnalyzer(c *gin.Context, repoPath string) (*engine.Analyzer, bool) {
	analyzer, err := engine.Open(repoPath, s.logger)
	if err != nil {
		s.logger.ErrorContext(c.Request.Context(), "failed to open repository",
			"repo", repoPath, "error", err)
		c.JSON(http.StatusBadRequest, vizmodel.Err[any]("Repository error: "+err.Error()))

		return nil, false
	}

	return analyzer, true
}

// failAnalysis maps an analysis failure to its status code and writes the
// error envelope. Input errors are the client's fault; everything else is a
// server-side analysis failure.
func (s *Server) failAnalysis(c *gin.Context, view string, err error) {
	s.recordFailure(c, view)
	s.logger.ErrorContext(c.Request.Context(), "analysis failed",
		"view", view, "error", err)

	if engine.IsRepositoryError(err) {
		c.JSON(http.StatusBadRequest, vizmodel.Err[any]("Repository error: "+err.Error()))
		return
	}

	c.JSON(http.StatusInternalServerError, vizmodel.Err[any]("Analysis error: "+err.Error()))
}

func (s *Server) recordPass(c *gin.Context, view string, items int, elapsed time.Duration) {
	if s.metrics != nil {
		s.metrics.RecordPass(c.Request.Context(), view, items, elapsed)
	}
}

func (s *Server) recordFailure(c *gin.Context, view string) {
	if s.metrics != nil {
		s.metrics.RecordFailure(c.Request.Context(), view)
	}
}

// intQuery parses an integer query parameter, falling back on absence or a
// malformed value.
func intQuery(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}

	return value
}
