package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focusdo/internal/model"
)

func TestCreateCategoryRejectsDuplicateNames(t *testing.T) {
	s := newTestStore(Options{})
	defer s.Close()

	_, err := s.CreateCategory("Work", "#ff0000")
	require.NoError(t, err)

	_, err = s.CreateCategory("work", "#00ff00")
	assert.ErrorIs(t, err, ErrDuplicateCategory, "names are unique case-insensitively")
}

func TestRenameCategorySkipsUniquenessCheck(t *testing.T) {
	s := newTestStore(Options{})
	defer s.Close()

	a, err := s.CreateCategory("Home", "")
	require.NoError(t, err)
	_, err = s.CreateCategory("Errands", "")
	require.NoError(t, err)

	// Uniqueness is enforced on create only; a rename may collide.
	s.RenameCategory(a.ID, "Errands")
	names := []string{s.Categories()[0].Name, s.Categories()[1].Name}
	assert.Equal(t, []string{"Errands", "Errands"}, names)
}

func TestCategoryChangesPushToRemote(t *testing.T) {
	remote := &fakeRemote{}
	s := newTestStore(Options{Remote: remote})

	cat, err := s.CreateCategory("Chores", "")
	require.NoError(t, err)
	s.RenameCategory(cat.ID, "Household")
	s.DeleteCategory(cat.ID)

	s.Close() // drain the effect queue
	assert.Equal(t, []string{cat.ID, cat.ID}, remote.savedCategories,
		"one save per create and per rename")
	assert.Equal(t, []string{cat.ID}, remote.deletedCategories)
}

func TestDeleteCategoryClearsTaskReferences(t *testing.T) {
	s := newTestStore(Options{})
	defer s.Close()

	cat, err := s.CreateCategory("Health", "")
	require.NoError(t, err)

	task := model.NewTask("run", "")
	task.CategoryID = cat.ID
	s.Add(task)

	s.DeleteCategory(cat.ID)

	assert.Empty(t, s.Categories())
	got, ok := s.Get(task.ID)
	require.True(t, ok)
	assert.Empty(t, got.CategoryID)
	assert.Nil(t, got.Category)
}
