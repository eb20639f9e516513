package collab_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repoviz/repoviz/internal/collab"
)

func TestAddAndListComments(t *testing.T) {
	store := collab.NewStore()

	first := store.AddComment("abc123", "ada", "looks good")
	second := store.AddComment("abc123", "bob", "needs a test")
	store.AddComment("def456", "ada", "unrelated")

	comments := store.CommentsFor("abc123")
	require.Len(t, comments, 2)
	assert.Equal(t, first.ID, comments[0].ID)
	assert.Equal(t, second.ID, comments[1].ID)
	assert.Equal(t, "abc123", comments[0].CommitSHA)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestCommentsForUnknownCommitIsEmpty(t *testing.T) {
	store := collab.NewStore()

	assert.Empty(t, store.CommentsFor("nope"))
}

func TestDeleteComment(t *testing.T) {
	store := collab.NewStore()

	keep := store.AddComment("abc123", "ada", "keep me")
	drop := store.AddComment("abc123", "bob", "drop me")

	store.DeleteComment(drop.ID)

	comments := store.CommentsFor("abc123")
	require.Len(t, comments, 1)
	assert.Equal(t, keep.ID, comments[0].ID)

	// Unknown IDs are a no-op.
	store.DeleteComment("missing")
	assert.Len(t, store.CommentsFor("abc123"), 1)
}

func TestShareAndFetchView(t *testing.T) {
	store := collab.NewStore()

	filters := collab.ViewFilters{Authors: []string{"ada"}, Branches: []string{"main"}}
	view := store.ShareView("ada", "/repo", "heatmap", filters, [3]float64{1, 2, 3})

	require.Len(t, view.ID, 8)

	got, ok := store.View(view.ID)
	require.True(t, ok)
	assert.Equal(t, view, got)

	_, ok = store.View("missing")
	assert.False(t, ok)
}

func TestStoreConcurrentAccess(t *testing.T) {
	store := collab.NewStore()

	var wg sync.WaitGroup

	for range 16 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			store.AddComment("abc123", "ada", "ping")
			store.CommentsFor("abc123")
			store.ShareView("ada", "/repo", "3d", collab.ViewFilters{}, [3]float64{})
		}()
	}

	wg.Wait()

	assert.Len(t, store.CommentsFor("abc123"), 16)
}
