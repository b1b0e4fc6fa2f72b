package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focusdo/internal/model"
)

func TestDeleteMovesTaskToTrash(t *testing.T) {
	s := newTestStore(Options{})
	defer s.Close()

	task := model.NewTask("old chore", "")
	s.Add(task)
	s.Delete(task.ID)

	assert.Equal(t, 0, s.Len())
	trash := s.Trash()
	require.Len(t, trash, 1)
	assert.Equal(t, task.ID, trash[0].Task.ID)
	assert.Equal(t, 0, trash[0].OriginalPosition)
	assert.False(t, trash[0].DeletedAt.IsZero())
}

func TestRestoreReinsertsTask(t *testing.T) {
	s := newTestStore(Options{})
	defer s.Close()

	first := model.NewTask("first", "")
	second := model.NewTask("second", "")
	s.Add(first)
	s.Add(second)
	s.Delete(first.ID)

	s.Restore(0)

	assert.Equal(t, 2, s.Len())
	assert.Empty(t, s.Trash())
	assert.Equal(t, first.ID, s.Tasks()[0].ID, "restored at its original position")
}

func TestTrashPrunedByCount(t *testing.T) {
	s := newTestStore(Options{TrashMaxEntries: 2})
	defer s.Close()

	d1 := model.NewTask("d1", "")
	d2 := model.NewTask("d2", "")
	d3 := model.NewTask("d3", "")
	s.Add(d1)
	s.Add(d2)
	s.Add(d3)

	s.Delete(d1.ID)
	s.Delete(d2.ID)
	s.Delete(d3.ID)

	trash := s.Trash()
	require.Len(t, trash, 2)
	assert.Equal(t, d2.ID, trash[0].Task.ID)
	assert.Equal(t, d3.ID, trash[1].Task.ID)
}

func TestTrashPrunedByAge(t *testing.T) {
	s := newTestStore(Options{TrashMaxAge: time.Hour})
	defer s.Close()

	stale := model.NewTask("stale", "")
	fresh := model.NewTask("fresh", "")
	s.Add(stale)
	s.Add(fresh)

	s.Delete(stale.ID)
	// Backdate the first entry past the age ceiling.
	s.mu.Lock()
	s.trash[0].DeletedAt = time.Now().Add(-2 * time.Hour)
	s.mu.Unlock()

	s.Delete(fresh.ID)

	trash := s.Trash()
	require.Len(t, trash, 1)
	assert.Equal(t, fresh.ID, trash[0].Task.ID)
}

func TestEmptyTrashIssuesRemoteDeletes(t *testing.T) {
	remote := &fakeRemote{}
	s := newTestStore(Options{Remote: remote})

	a := model.NewTask("a", "")
	b := model.NewTask("b", "")
	s.Add(a)
	s.Add(b)
	s.Delete(a.ID)
	s.Delete(b.ID)

	s.EmptyTrash()
	assert.Empty(t, s.Trash())

	s.Close() // drain the effect queue
	deleted := remote.deletedIDs()
	assert.ElementsMatch(t, []string{a.ID, b.ID, a.ID, b.ID}, deleted,
		"one delete per Delete call plus one per emptied entry")
}

func TestPermanentlyRemove(t *testing.T) {
	remote := &fakeRemote{}
	s := newTestStore(Options{Remote: remote})

	task := model.NewTask("gone for good", "")
	s.Add(task)
	s.Delete(task.ID)
	s.PermanentlyRemove(0)

	assert.Empty(t, s.Trash())
	assert.Equal(t, 0, s.Len())
	s.Close()
	assert.Contains(t, remote.deletedIDs(), task.ID)
}
