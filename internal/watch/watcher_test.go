package watch_test

import (
	"testing"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repoviz/repoviz/internal/watch"
	"github.com/repoviz/repoviz/pkg/vizmodel"
)

func TestClassifyRefChange(t *testing.T) {
	event, ok := watch.Classify("/repo/.git/refs/heads/main", fsnotify.Write)
	require.True(t, ok)
	assert.Equal(t, vizmodel.EventFileChanged, event.Type)
	assert.Equal(t, vizmodel.ChangeModified, event.ChangeType)
	assert.Equal(t, "/repo/.git/refs/heads/main", event.Path)
}

func TestClassifyObjectCreate(t *testing.T) {
	event, ok := watch.Classify("/repo/.git/objects/ab/cdef", fsnotify.Create)
	require.True(t, ok)
	assert.Equal(t, vizmodel.ChangeAdded, event.ChangeType)
}

func TestClassifyRemovedRef(t *testing.T) {
	event, ok := watch.Classify("/repo/.git/refs/heads/feature", fsnotify.Remove)
	require.True(t, ok)
	assert.Equal(t, vizmodel.ChangeDeleted, event.ChangeType)
}

func TestClassifyHeadAndPackedRefs(t *testing.T) {
	_, ok := watch.Classify("/repo/.git/HEAD", fsnotify.Write)
	assert.True(t, ok)

	_, ok = watch.Classify("/repo/.git/packed-refs", fsnotify.Write)
	assert.True(t, ok)
}

func TestClassifyIgnoresNoise(t *testing.T) {
	// Index churn, lock files and chmods never reach clients.
	_, ok := watch.Classify("/repo/.git/index", fsnotify.Write)
	assert.False(t, ok)

	_, ok = watch.Classify("/repo/.git/refs/heads/main.lock", fsnotify.Create)
	assert.False(t, ok)

	_, ok = watch.Classify("/repo/.git/refs/heads/main", fsnotify.Chmod)
	assert.False(t, ok)

	_, ok = watch.Classify("/repo/src/file.go", fsnotify.Write)
	assert.False(t, ok)
}

func TestNewRejectsNonRepository(t *testing.T) {
	watcher, err := watch.New(t.TempDir(), nil)

	assert.Nil(t, watcher)
	require.ErrorIs(t, err, watch.ErrNotARepository)
}
