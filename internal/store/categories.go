package store

import (
	"errors"
	"strings"
	"time"

	"focusdo/internal/model"
)

// ErrDuplicateCategory reports a create with a name already in use.
var ErrDuplicateCategory = errors.New("category name already exists")

// Categories returns a snapshot of the category list.
func (s *Store) Categories() []model.Category {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Category, len(s.categories))
	copy(out, s.categories)
	return out
}

// CreateCategory appends a category. Names are unique case-insensitively
// at creation time.
func (s *Store) CreateCategory(name, color string) (model.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.categories {
		if strings.EqualFold(c.Name, name) {
			return model.Category{}, ErrDuplicateCategory
		}
	}
	c := model.NewCategory(name, color)
	s.categories = append(s.categories, c)
	s.persistCategories()
	s.enqueue(effect{kind: effectSaveCategory, category: c})
	s.log.Info().Str("category_id", c.ID).Str("name", name).Msg("created category")
	return c, nil
}

// RenameCategory changes a category's display name. Uniqueness is not
// re-checked here, matching create-time-only enforcement.
func (s *Store) RenameCategory(id, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.categories {
		if s.categories[i].ID == id {
			s.categories[i].Name = name
			s.categories[i].UpdatedAt = time.Now()
			s.persistCategories()
			s.enqueue(effect{kind: effectSaveCategory, category: s.categories[i]})
			s.log.Info().Str("category_id", id).Str("name", name).Msg("renamed category")
			return
		}
	}
}

// DeleteCategory removes a category and clears the reference from any task
// that pointed at it.
func (s *Store) DeleteCategory(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.categories {
		if s.categories[i].ID != id {
			continue
		}
		removed := s.categories[i]
		s.categories = append(s.categories[:i], s.categories[i+1:]...)
		for j := range s.tasks {
			if s.tasks[j].CategoryID == id {
				s.tasks[j].CategoryID = ""
				s.tasks[j].Category = nil
				s.tasks[j].Touch()
			}
		}
		s.persistCategories()
		s.persistTasks()
		s.enqueue(effect{kind: effectDeleteCategory, category: removed})
		s.log.Info().Str("category_id", id).Msg("deleted category")
		return
	}
}

// ReplaceCategories swaps in a merged category list from reconciliation.
func (s *Store) ReplaceCategories(categories []model.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]model.Category, len(categories))
	copy(next, categories)
	s.categories = next
	s.persistCategories()
}
