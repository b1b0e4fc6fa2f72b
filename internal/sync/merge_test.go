package sync

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focusdo/internal/model"
)

func taskAt(id, title string, updated time.Time) model.Task {
	return model.Task{
		ID:        id,
		Title:     title,
		CreatedAt: updated.Add(-time.Hour),
		UpdatedAt: updated,
	}
}

func TestMergeDisjointSetsUnion(t *testing.T) {
	now := time.Now()
	local := []model.Task{
		taskAt("l1", "local one", now),
		taskAt("l2", "local two", now.Add(time.Minute)),
	}
	remote := []model.Task{
		taskAt("r1", "remote one", now.Add(2*time.Minute)),
		taskAt("r2", "remote two", now.Add(3*time.Minute)),
		taskAt("r3", "remote three", now.Add(4*time.Minute)),
	}

	merged, localOnly := Merge(local, remote)

	assert.Len(t, merged, 5)
	ids := make([]string, len(localOnly))
	for i, task := range localOnly {
		ids[i] = task.ID
	}
	assert.ElementsMatch(t, []string{"l1", "l2"}, ids, "every local-only record is queued for upload")
}

func TestMergeRemoteWinsOnNewerOrEqualTimestamp(t *testing.T) {
	base := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	t.Run("remote newer", func(t *testing.T) {
		merged, _ := Merge(
			[]model.Task{taskAt("x", "local", base)},
			[]model.Task{taskAt("x", "remote", base.Add(time.Second))},
		)
		require.Len(t, merged, 1)
		assert.Equal(t, "remote", merged[0].Title)
	})

	t.Run("local newer", func(t *testing.T) {
		merged, localOnly := Merge(
			[]model.Task{taskAt("x", "local", base.Add(time.Second))},
			[]model.Task{taskAt("x", "remote", base)},
		)
		require.Len(t, merged, 1)
		assert.Equal(t, "local", merged[0].Title)
		assert.Empty(t, localOnly, "a shared id is never re-uploaded as local-only")
	})

	t.Run("exact tie goes to remote", func(t *testing.T) {
		local := taskAt("x", "task", base)
		remote := taskAt("x", "task", base)
		remote.Completed = true
		completedAt := base.Add(-time.Minute)
		remote.CompletedAt = &completedAt

		merged, _ := Merge([]model.Task{local}, []model.Task{remote})
		require.Len(t, merged, 1)
		assert.True(t, merged[0].Completed, "remote completion state wins an exact tie")
	})
}

func TestMergeDeduplicatesLocalKeepingNewer(t *testing.T) {
	base := time.Now()
	local := []model.Task{
		taskAt("dup", "stale", base),
		taskAt("dup", "fresh", base.Add(time.Minute)),
	}

	merged, _ := Merge(local, nil)
	require.Len(t, merged, 1)
	assert.Equal(t, "fresh", merged[0].Title)
}

func TestMergeSortsByUpdatedAtDescending(t *testing.T) {
	base := time.Now()
	merged, _ := Merge(
		[]model.Task{taskAt("old", "old", base.Add(-time.Hour))},
		[]model.Task{
			taskAt("new", "new", base),
			taskAt("mid", "mid", base.Add(-30*time.Minute)),
		},
	)
	require.Len(t, merged, 3)
	assert.Equal(t, []string{"new", "mid", "old"},
		[]string{merged[0].ID, merged[1].ID, merged[2].ID})
}

func TestMergeCategoriesUnionKeepsLocalOnly(t *testing.T) {
	localCat := model.NewCategory("LocalOnly", "")
	remoteCat := model.NewCategory("Remote", "")

	merged, localOnly := MergeCategories(
		[]model.Category{localCat},
		[]model.Category{remoteCat},
	)

	require.Len(t, merged, 2)
	require.Len(t, localOnly, 1)
	assert.Equal(t, localCat.ID, localOnly[0].ID, "local-only category is queued for upload")
}

func TestMergeCategoriesRemoteWinsOnNewerOrEqualTimestamp(t *testing.T) {
	base := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	local := model.Category{ID: "c", Name: "Old name", UpdatedAt: base}
	remote := model.Category{ID: "c", Name: "New name", UpdatedAt: base.Add(time.Second)}

	merged, localOnly := MergeCategories([]model.Category{local}, []model.Category{remote})
	require.Len(t, merged, 1)
	assert.Equal(t, "New name", merged[0].Name)
	assert.Empty(t, localOnly)

	local.UpdatedAt = base.Add(time.Minute)
	merged, _ = MergeCategories([]model.Category{local}, []model.Category{remote})
	assert.Equal(t, "Old name", merged[0].Name, "newer local rename survives")
}

func TestResolveCategoriesAttachesMatch(t *testing.T) {
	cat := model.NewCategory("Work", "#0000ff")
	task := model.NewTask("with ref", "")
	task.CategoryID = cat.ID
	other := model.NewTask("without ref", "")

	tasks := []model.Task{task, other}
	ResolveCategories(tasks, []model.Category{cat})

	require.NotNil(t, tasks[0].Category)
	assert.Equal(t, "Work", tasks[0].Category.Name)
	assert.Nil(t, tasks[1].Category)
}
