// Package calendar mirrors due tasks into an external calendar. Events are
// keyed by a private extended property carrying the task id, so events can
// be found again even when the local index is lost.
package calendar

import (
	"context"

	"focusdo/internal/model"
)

// Mirror keeps calendar events in step with tasks.
type Mirror interface {
	SyncTask(ctx context.Context, t model.Task) error
	RemoveTask(ctx context.Context, t model.Task) error
}

// Nop is the mirror used when no calendar is configured.
type Nop struct{}

func (Nop) SyncTask(ctx context.Context, t model.Task) error   { return nil }
func (Nop) RemoveTask(ctx context.Context, t model.Task) error { return nil }
