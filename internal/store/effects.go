package store

import (
	"context"

	"focusdo/internal/model"
)

type effectKind int

const (
	effectSave effectKind = iota
	effectDelete
	effectSaveCategory
	effectDeleteCategory
)

// effect is one queued unit of asynchronous side work: a best-effort push
// of a single changed record to the remote store plus the matching
// calendar mirror call.
type effect struct {
	kind     effectKind
	task     model.Task
	category model.Category
}

// enqueue hands an effect to the worker without ever blocking a mutating
// call. A full queue drops the push; the next reconciliation pass picks
// the record up again.
func (s *Store) enqueue(e effect) {
	if s.remote == nil && s.calendar == nil && s.categoryRemote == nil {
		return
	}
	select {
	case s.effects <- e:
	default:
		s.log.Warn().Str("task_id", e.task.ID).Str("category_id", e.category.ID).Msg("effect queue full, push dropped")
	}
}

func (s *Store) runEffects() {
	defer close(s.drained)
	for e := range s.effects {
		s.runEffect(e)
	}
}

func (s *Store) runEffect(e effect) {
	ctx, cancel := context.WithTimeout(context.Background(), s.effectTimeout)
	defer cancel()

	switch e.kind {
	case effectSave:
		if s.remote != nil {
			if err := s.remote.Save(ctx, e.task); err != nil {
				s.log.Warn().Err(err).Str("task_id", e.task.ID).Msg("remote save failed")
			}
		}
		if s.calendar != nil {
			if err := s.calendar.SyncTask(ctx, e.task); err != nil {
				s.log.Warn().Err(err).Str("task_id", e.task.ID).Msg("calendar sync failed")
			}
		}
	case effectDelete:
		if s.remote != nil {
			if err := s.remote.Delete(ctx, e.task); err != nil {
				s.log.Warn().Err(err).Str("task_id", e.task.ID).Msg("remote delete failed")
			}
		}
		if s.calendar != nil {
			if err := s.calendar.RemoveTask(ctx, e.task); err != nil {
				s.log.Warn().Err(err).Str("task_id", e.task.ID).Msg("calendar remove failed")
			}
		}
	case effectSaveCategory:
		if s.categoryRemote != nil {
			if err := s.categoryRemote.SaveCategory(ctx, e.category); err != nil {
				s.log.Warn().Err(err).Str("category_id", e.category.ID).Msg("remote category save failed")
			}
		}
	case effectDeleteCategory:
		if s.categoryRemote != nil {
			if err := s.categoryRemote.DeleteCategory(ctx, e.category); err != nil {
				s.log.Warn().Err(err).Str("category_id", e.category.ID).Msg("remote category delete failed")
			}
		}
	}
}
