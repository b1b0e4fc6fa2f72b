package store

import (
	"time"

	"focusdo/internal/model"
)

type actionKind int

const (
	actionCreate actionKind = iota
	actionDelete
	actionComplete
	actionUncomplete
	actionUpdate
)

// action is one reversible unit on the undo/redo stacks. Which fields are
// meaningful depends on the kind: create and delete carry a full snapshot,
// update carries the record to reinstall, complete carries the completion
// time to restore.
type action struct {
	kind        actionKind
	task        model.Task
	pos         int
	id          string
	completedAt *time.Time
}

func (s *Store) pushUndo(a action) {
	s.undo = append(s.undo, a)
	s.redo = nil
}

// UndoDepth reports the number of undoable steps.
func (s *Store) UndoDepth() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.undo)
}

// RedoDepth reports the number of redoable steps.
func (s *Store) RedoDepth() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.redo)
}

// Undo reverts the most recent mutation. A no-op when nothing is undoable.
func (s *Store) Undo() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.undo) == 0 {
		return
	}
	a := s.undo[len(s.undo)-1]
	s.undo = s.undo[:len(s.undo)-1]
	inv := s.apply(a)
	s.redo = append(s.redo, inv)
}

// Redo re-applies the most recently undone mutation. A no-op when nothing
// is redoable.
func (s *Store) Redo() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.redo) == 0 {
		return
	}
	a := s.redo[len(s.redo)-1]
	s.redo = s.redo[:len(s.redo)-1]
	inv := s.apply(a)
	s.undo = append(s.undo, inv)
}

// apply executes an action against the collection and returns its inverse.
// Actions never fail: when the target record is gone (or a created record
// already exists) the collection is left alone and the action itself comes
// back as the inverse, so the stacks stay depth-symmetric with the user's
// undo presses.
func (s *Store) apply(a action) action {
	switch a.kind {
	case actionCreate:
		if s.indexOf(a.task.ID) >= 0 {
			return action{kind: actionDelete, task: a.task, pos: s.indexOf(a.task.ID)}
		}
		pos := a.pos
		if pos < 0 || pos > len(s.tasks) {
			pos = len(s.tasks)
		}
		s.tasks = append(s.tasks[:pos], append([]model.Task{a.task.Clone()}, s.tasks[pos:]...)...)
		s.persistTasks()
		s.taskChanged(a.task)
		return action{kind: actionDelete, task: a.task, pos: pos}

	case actionDelete:
		i := s.indexOf(a.task.ID)
		if i < 0 {
			return a
		}
		removed := s.tasks[i].Clone()
		s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
		s.persistTasks()
		s.taskRemoved(removed)
		return action{kind: actionCreate, task: removed, pos: i}

	case actionComplete:
		i := s.indexOf(a.id)
		if i < 0 {
			return a
		}
		t := &s.tasks[i]
		inv := action{kind: actionUncomplete, id: a.id}
		if t.Completed {
			return inv
		}
		when := time.Now()
		if a.completedAt != nil {
			when = *a.completedAt
		}
		t.Completed = true
		t.CompletedAt = &when
		t.Touch()
		s.recordCompletion(when, 1)
		s.persistTasks()
		s.taskChanged(*t)
		return inv

	case actionUncomplete:
		i := s.indexOf(a.id)
		if i < 0 {
			return a
		}
		t := &s.tasks[i]
		var prev *time.Time
		if t.CompletedAt != nil {
			v := *t.CompletedAt
			prev = &v
		}
		inv := action{kind: actionComplete, id: a.id, completedAt: prev}
		if !t.Completed {
			return inv
		}
		day := time.Now()
		if t.CompletedAt != nil {
			day = *t.CompletedAt
		}
		t.Completed = false
		t.CompletedAt = nil
		t.Touch()
		s.recordCompletion(day, -1)
		s.persistTasks()
		s.taskChanged(*t)
		return inv

	case actionUpdate:
		i := s.indexOf(a.task.ID)
		if i < 0 {
			return a
		}
		current := s.tasks[i].Clone()
		s.tasks[i] = a.task.Clone()
		s.persistTasks()
		s.taskChanged(s.tasks[i])
		return action{kind: actionUpdate, task: current}
	}
	return a
}
