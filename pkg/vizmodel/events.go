package vizmodel

// EventType tags a realtime event pushed to WebSocket clients.
type EventType string

// Realtime event kinds.
const (
	EventNewCommit     EventType = "new_commit"
	EventFileChanged   EventType = "file_changed"
	EventBranchCreated EventType = "branch_created"
	EventBranchDeleted EventType = "branch_deleted"
)

// ChangeType classifies a working-tree or ref file change.
type ChangeType string

// File change kinds.
const (
	ChangeAdded    ChangeType = "added"
	ChangeModified ChangeType = "modified"
	ChangeDeleted  ChangeType = "deleted"
)

// RealtimeEvent is a single repository change notification. Only the fields
// relevant to the event type are populated.
type RealtimeEvent struct {
	Type       EventType   `json:"type"`
	Commit     *Commit3D   `json:"commit,omitempty"`
	Path       string      `json:"path,omitempty"`
	ChangeType ChangeType  `json:"change_type,omitempty"`
	Branch     *BranchNode `json:"branch,omitempty"`
	BranchName string      `json:"branch_name,omitempty"`
}
