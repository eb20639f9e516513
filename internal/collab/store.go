// Package collab holds the in-memory collaboration state: comments attached
// to commits and shareable view configurations. Nothing is persisted; the
// store lives and dies with the process.
package collab

import (
	"fmt"
	"hash/fnv"
	"sync"
	"time"

	"github.com/google/uuid"
)

// shortIDLen is the length of shareable view IDs.
const shortIDLen = 8

// Comment is a note attached to a specific commit.
type Comment struct {
	ID        string    `json:"id"`
	CommitSHA string    `json:"commit_sha"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ViewFilters restricts which commits a shared view displays.
type ViewFilters struct {
	Authors  []string `json:"authors"`
	Branches []string `json:"branches"`
	DateFrom string   `json:"date_from,omitempty"`
	DateTo   string   `json:"date_to,omitempty"`
}

// SharedView captures a visualization state for sharing by link.
type SharedView struct {
	ID             string      `json:"id"`
	CreatedBy      string      `json:"created_by"`
	RepoPath       string      `json:"repo_path"`
	ViewMode       string      `json:"view_mode"`
	Filters        ViewFilters `json:"filters"`
	CameraPosition [3]float64  `json:"camera_position"`
	CreatedAt      time.Time   `json:"created_at"`
}

// Store is a mutex-guarded in-memory collaboration store, safe for
// concurrent use by request handlers.
type Store struct {
	mu       sync.RWMutex
	comments map[string][]Comment
	views    map[string]SharedView
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		comments: make(map[string][]Comment),
		views:    make(map[string]SharedView),
	}
}

// AddComment attaches a new comment to the given commit and returns it.
func (s *Store) AddComment(commitSHA, author, content string) Comment {
	now := time.Now().UTC()

	comment := Comment{
		ID:        uuid.NewString(),
		CommitSHA: commitSHA,
		Author:    author,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.mu.Lock()
	s.comments[commitSHA] = append(s.comments[commitSHA], comment)
	s.mu.Unlock()

	return comment
}

// CommentsFor returns all comments on the given commit, oldest first.
func (s *Store) CommentsFor(commitSHA string) []Comment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	comments := make([]Comment, len(s.comments[commitSHA]))
	copy(comments, s.comments[commitSHA])

	return comments
}

// DeleteComment removes the comment with the given ID wherever it lives.
// Deleting an unknown ID is a no-op.
func (s *Store) DeleteComment(commentID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for sha, comments := range s.comments {
		kept := comments[:0]

		for _, comment := range comments {
			if comment.ID != commentID {
				kept = append(kept, comment)
			}
		}

		s.comments[sha] = kept
	}
}

// ShareView stores a new shared view and returns it with its short ID.
func (s *Store) ShareView(createdBy, repoPath, viewMode string, filters ViewFilters, camera [3]float64) SharedView {
	view := SharedView{
		ID:             shortID(),
		CreatedBy:      createdBy,
		RepoPath:       repoPath,
		ViewMode:       viewMode,
		Filters:        filters,
		CameraPosition: camera,
		CreatedAt:      time.Now().UTC(),
	}

	s.mu.Lock()
	s.views[view.ID] = view
	s.mu.Unlock()

	return view
}

// View looks up a shared view by ID.
func (s *Store) View(viewID string) (SharedView, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	view, ok := s.views[viewID]

	return view, ok
}

// shortID derives a compact hex ID for shareable links. Uniqueness is
// best-effort; a uuid seed keeps concurrent calls from colliding.
func shortID() string {
	h := fnv.New64a()
	_, _ = h.Write([]byte(uuid.NewString()))

	return fmt.Sprintf("%016x", h.Sum64())[:shortIDLen]
}
