package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/repoviz/repoviz/internal/engine"
	"github.com/repoviz/repoviz/pkg/vizmodel"
)

const (
	viewCommits  = "commits"
	viewFiles    = "files"
	viewBranches = "branches"

	shortSHALen   = 8
	maxMessageLen = 60

	heatHigh = 0.66
	heatLow  = 0.33
	heatBars = 10
)

// NewAnalyzeCommand creates the analyze command.
func NewAnalyzeCommand() *cobra.Command {
	var (
		repoPath string
		view     string
		limit    int
		noColor  bool
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run an analysis pass and print the result",
		Long: `Analyze a repository and print one view of the result as a table:
the commit embedding, the file heatmap or the branch graph.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if noColor {
				color.NoColor = true //nolint:reassign // intentional override of library global
			}

			return runAnalyze(cmd.Context(), cmd.OutOrStdout(), repoPath, view, limit)
		},
	}

	cmd.Flags().StringVarP(&repoPath, "repo", "r", ".", "repository path")
	cmd.Flags().StringVarP(&view, "view", "w", viewCommits, "view to print: commits, files or branches")
	cmd.Flags().IntVarP(&limit, "limit", "n", engine.DefaultCommitLimit, "max commits to analyze")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable colored output")

	return cmd
}

func runAnalyze(ctx context.Context, out io.Writer, repoPath, view string, limit int) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	analyzer, err := engine.Open(repoPath, logger)
	if err != nil {
		return fmt.Errorf("open repository: %w", err)
	}
	defer analyzer.Close()

	switch view {
	case viewCommits:
		commits, err := analyzer.AnalyzeCommits(ctx, limit)
		if err != nil {
			return fmt.Errorf("analyze commits: %w", err)
		}

		renderCommits(out, commits)
	case viewFiles:
		stats, err := analyzer.AnalyzeFileStats(ctx, limit)
		if err != nil {
			return fmt.Errorf("analyze files: %w", err)
		}

		renderFiles(out, stats)
	case viewBranches:
		branches, err := analyzer.AnalyzeBranches(ctx)
		if err != nil {
			return fmt.Errorf("analyze branches: %w", err)
		}

		renderBranches(out, branches)
	default:
		return fmt.Errorf("unknown view %q: want commits, files or branches", view)
	}

	return nil
}

func renderCommits(out io.Writer, commits []vizmodel.Commit3D) {
	tbl := newTable(out)
	tbl.AppendHeader(table.Row{"SHA", "Author", "Branch", "Lane", "Depth", "When", "Message"})

	for _, commit := range commits {
		tbl.AppendRow(table.Row{
			shortSHA(commit.SHA),
			commit.Author,
			commit.Branch,
			commit.X,
			commit.Z,
			humanize.Time(commit.Timestamp),
			truncate(firstLine(commit.Message), maxMessageLen),
		})
	}

	tbl.AppendFooter(table.Row{fmt.Sprintf("Total: %d commits", len(commits))})
	tbl.Render()
}

func renderFiles(out io.Writer, stats []vizmodel.FileStats) {
	tbl := newTable(out)
	tbl.AppendHeader(table.Row{"Path", "Changes", "Heat", "Size", "Language", "Authors"})

	for _, st := range stats {
		tbl.AppendRow(table.Row{
			st.Path,
			st.ChangeCount,
			heatBar(st.HeatLevel),
			humanize.Bytes(uint64(st.Size)),
			st.Language,
			len(st.Authors),
		})
	}

	tbl.AppendFooter(table.Row{fmt.Sprintf("Total: %d files", len(stats))})
	tbl.Render()
}

func renderBranches(out io.Writer, branches []vizmodel.BranchNode) {
	tbl := newTable(out)
	tbl.AppendHeader(table.Row{"Name", "Head", "Active", "Last Commit"})

	for _, branch := range branches {
		active := ""
		if branch.IsActive {
			active = "*"
		}

		tbl.AppendRow(table.Row{
			branch.Name,
			shortSHA(branch.HeadSHA),
			active,
			humanize.Time(branch.LastCommit),
		})
	}

	tbl.AppendFooter(table.Row{fmt.Sprintf("Total: %d branches", len(branches))})
	tbl.Render()
}

func newTable(out io.Writer) table.Writer {
	tbl := table.NewWriter()
	tbl.SetOutputMirror(out)
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Format.Footer = text.FormatDefault

	return tbl
}

// heatBar renders a proportional bar, red for hot paths, yellow for warm,
// green for cold.
func heatBar(heat float64) string {
	filled := int(heat * heatBars)
	if filled > heatBars {
		filled = heatBars
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", heatBars-filled)
	label := fmt.Sprintf("%s %.2f", bar, heat)

	switch {
	case heat >= heatHigh:
		return color.New(color.FgRed).Sprint(label)
	case heat >= heatLow:
		return color.New(color.FgYellow).Sprint(label)
	default:
		return color.New(color.FgGreen).Sprint(label)
	}
}

func shortSHA(sha string) string {
	if len(sha) <= shortSHALen {
		return sha
	}

	return sha[:shortSHALen]
}

func firstLine(message string) string {
	if idx := strings.IndexByte(message, '\n'); idx >= 0 {
		return message[:idx]
	}

	return message
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}

	return s[:maxLen-3] + "..."
}
