// Package vizmodel defines the wire-level result records produced by the
// analysis engine and served to visualization clients.
package vizmodel

import "time"

// Commit3D is a single commit positioned in visualization space.
// X is the branch lane, Y the commit time, Z the topological depth.
type Commit3D struct {
	SHA         string    `json:"sha"`
	Message     string    `json:"message"`
	Author      string    `json:"author"`
	AuthorEmail string    `json:"author_email"`
	Timestamp   time.Time `json:"timestamp"`
	Branch      string    `json:"branch"`
	Parents     []string  `json:"parents"`

	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`

	// Color differentiates authors, stable per email.
	Color string `json:"color"`
}

// FileStats holds per-path change aggregates for the heatmap view.
type FileStats struct {
	Path         string    `json:"path"`
	ChangeCount  int       `json:"change_count"`
	Additions    int       `json:"additions"`
	Deletions    int       `json:"deletions"`
	LastModified time.Time `json:"last_modified"`
	Authors      []string  `json:"authors"`

	// HeatLevel is the change count normalized to [0, 1] against the
	// most-changed path in the analyzed window.
	HeatLevel float64 `json:"heat_level"`
	// Size is the working-tree file size in bytes, 0 when absent.
	Size int64 `json:"size"`
	// Language is best-effort, empty when detection fails.
	Language string `json:"language,omitempty"`
}

// BranchNode is one node of the branch graph.
type BranchNode struct {
	Name       string    `json:"name"`
	HeadSHA    string    `json:"head_sha"`
	IsActive   bool      `json:"is_active"`
	MergeCount int       `json:"merge_count"`
	CreatedAt  time.Time `json:"created_at"`
	LastCommit time.Time `json:"last_commit"`

	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`

	Connections []BranchConnection `json:"connections"`
}

// ConnectionType tags how two branches relate.
type ConnectionType string

// Branch connection kinds. Detection is not implemented yet; the variants
// exist so the wire format is stable once it is.
const (
	ConnectionMerge  ConnectionType = "merge"
	ConnectionFork   ConnectionType = "fork"
	ConnectionRebase ConnectionType = "rebase"
)

// BranchConnection is an edge between two branches (merge point).
type BranchConnection struct {
	TargetBranch   string         `json:"target_branch"`
	MergeSHA       string         `json:"merge_sha"`
	ConnectionType ConnectionType `json:"connection_type"`
}
