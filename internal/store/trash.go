package store

import (
	"time"

	"focusdo/internal/model"
)

// Trash returns a snapshot of the trash list, oldest deletion first.
func (s *Store) Trash() []model.TrashEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.TrashEntry, len(s.trash))
	for i, e := range s.trash {
		out[i] = model.TrashEntry{
			Task:             e.Task.Clone(),
			OriginalPosition: e.OriginalPosition,
			DeletedAt:        e.DeletedAt,
		}
	}
	return out
}

// Restore moves the trash entry at the given index back into the
// collection. Out-of-range indexes are ignored.
func (s *Store) Restore(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.trash) {
		return
	}
	e := s.trash[index]
	s.trash = append(s.trash[:index], s.trash[index+1:]...)

	// The task can already be back in the collection when its delete was
	// undone; drop the stale entry instead of duplicating the id.
	if s.indexOf(e.Task.ID) >= 0 {
		s.persistTrash()
		return
	}

	t := e.Task.Clone()
	t.Touch()
	pos := e.OriginalPosition
	if pos < 0 || pos > len(s.tasks) {
		pos = len(s.tasks)
	}
	s.tasks = append(s.tasks[:pos], append([]model.Task{t}, s.tasks[pos:]...)...)

	s.persistTasks()
	s.persistTrash()
	s.taskChanged(t)
	s.log.Info().Str("task_id", t.ID).Msg("restored task from trash")
}

// PermanentlyRemove erases one trash entry and issues a remote delete for
// it. Out-of-range indexes are ignored.
func (s *Store) PermanentlyRemove(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.trash) {
		return
	}
	e := s.trash[index]
	s.trash = append(s.trash[:index], s.trash[index+1:]...)
	s.persistTrash()
	s.enqueue(effect{kind: effectDelete, task: e.Task.Clone()})
	s.log.Info().Str("task_id", e.Task.ID).Msg("permanently removed task")
}

// EmptyTrash erases every trash entry, issuing a remote delete for each.
func (s *Store) EmptyTrash() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.trash {
		s.enqueue(effect{kind: effectDelete, task: e.Task.Clone()})
	}
	n := len(s.trash)
	s.trash = nil
	s.persistTrash()
	s.log.Info().Int("count", n).Msg("emptied trash")
}

// pruneTrash drops entries beyond the age ceiling, then beyond the count
// ceiling, oldest first.
func (s *Store) pruneTrash(now time.Time) {
	cutoff := now.Add(-s.trashMaxAge)
	kept := s.trash[:0]
	for _, e := range s.trash {
		if e.DeletedAt.Before(cutoff) {
			continue
		}
		kept = append(kept, e)
	}
	s.trash = kept
	if over := len(s.trash) - s.trashMaxEntries; over > 0 {
		s.trash = append([]model.TrashEntry(nil), s.trash[over:]...)
	}
}
