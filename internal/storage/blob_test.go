package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focusdo/internal/model"
)

func newTestBlobStore(t *testing.T) *BlobStore {
	t.Helper()
	db, err := NewDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	return NewBlobStore(db, zerolog.Nop())
}

func TestSaveAndLoadTasks(t *testing.T) {
	b := newTestBlobStore(t)

	due := time.Date(2024, 5, 1, 17, 0, 0, 0, time.UTC)
	task := model.NewTask("persist me", "with details")
	task.DueAt = &due
	task.Subtasks = []model.Subtask{{ID: "s1", Title: "part", Done: false}}

	require.NoError(t, b.SaveTasks([]model.Task{task}))

	loaded, err := b.LoadTasks()
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, task.ID, loaded[0].ID)
	assert.Equal(t, "persist me", loaded[0].Title)
	require.NotNil(t, loaded[0].DueAt)
	assert.True(t, loaded[0].DueAt.Equal(due))
}

func TestLoadMissingKeyYieldsEmpty(t *testing.T) {
	b := newTestBlobStore(t)

	tasks, err := b.LoadTasks()
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestUndecodableBlobYieldsEmpty(t *testing.T) {
	b := newTestBlobStore(t)

	row := blobRow{Key: keyTasks, Data: []byte("{not json"), UpdatedAt: time.Now()}
	require.NoError(t, b.db.Create(&row).Error)

	tasks, err := b.LoadTasks()
	require.NoError(t, err, "a corrupt snapshot is treated as no data")
	assert.Empty(t, tasks)
}

func TestSaveOverwritesPreviousSnapshot(t *testing.T) {
	b := newTestBlobStore(t)

	first := model.NewTask("first", "")
	require.NoError(t, b.SaveTasks([]model.Task{first}))
	require.NoError(t, b.SaveTasks(nil))

	tasks, err := b.LoadTasks()
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestTrashAndCategoriesRoundTrip(t *testing.T) {
	b := newTestBlobStore(t)

	entry := model.TrashEntry{
		Task:             model.NewTask("deleted", ""),
		OriginalPosition: 3,
		DeletedAt:        time.Now(),
	}
	require.NoError(t, b.SaveTrash([]model.TrashEntry{entry}))
	trash, err := b.LoadTrash()
	require.NoError(t, err)
	require.Len(t, trash, 1)
	assert.Equal(t, 3, trash[0].OriginalPosition)

	cat := model.NewCategory("Errands", "#aabbcc")
	require.NoError(t, b.SaveCategories([]model.Category{cat}))
	categories, err := b.LoadCategories()
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, "Errands", categories[0].Name)
}
