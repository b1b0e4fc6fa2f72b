// Package notify keeps one-shot reminder alerts in step with task due
// dates and delivers them when they fire.
package notify

import (
	"fmt"
	"time"

	"focusdo/internal/model"
)

// Alert is a scheduled one-shot notification.
type Alert struct {
	ID     string
	Title  string
	Body   string
	FireAt time.Time
}

// Notifier schedules and cancels one-shot alerts. Scheduling with an id
// that is already pending replaces the pending alert.
type Notifier interface {
	Schedule(a Alert)
	Cancel(id string)
}

// Planner derives reminder alerts from task state. It satisfies the
// store's ReminderScheduler contract.
type Planner struct {
	notifier Notifier
}

func NewPlanner(n Notifier) *Planner {
	return &Planner{notifier: n}
}

// TaskChanged schedules an alert at due time minus the reminder lead, or
// cancels the pending one when the task no longer needs a reminder.
func (p *Planner) TaskChanged(t model.Task) {
	if t.DueAt == nil || t.ReminderLeadMinutes <= 0 || t.Completed {
		p.notifier.Cancel(t.ID)
		return
	}
	fireAt := t.DueAt.Add(-time.Duration(t.ReminderLeadMinutes) * time.Minute)
	if fireAt.Before(time.Now()) {
		p.notifier.Cancel(t.ID)
		return
	}
	p.notifier.Schedule(Alert{
		ID:     t.ID,
		Title:  t.Title,
		Body:   fmt.Sprintf("Due %s", t.DueAt.Format("15:04, Jan 2")),
		FireAt: fireAt,
	})
}

// TaskRemoved cancels any pending alert for the task.
func (p *Planner) TaskRemoved(id string) {
	p.notifier.Cancel(id)
}
