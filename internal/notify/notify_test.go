package notify

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focusdo/internal/model"
)

type fakeNotifier struct {
	scheduled []Alert
	cancelled []string
}

func (f *fakeNotifier) Schedule(a Alert) { f.scheduled = append(f.scheduled, a) }
func (f *fakeNotifier) Cancel(id string) { f.cancelled = append(f.cancelled, id) }

func TestPlannerSchedulesAtDueMinusLead(t *testing.T) {
	fn := &fakeNotifier{}
	p := NewPlanner(fn)

	due := time.Now().Add(2 * time.Hour)
	task := model.NewTask("dentist", "")
	task.DueAt = &due
	task.ReminderLeadMinutes = 30

	p.TaskChanged(task)

	require.Len(t, fn.scheduled, 1)
	alert := fn.scheduled[0]
	assert.Equal(t, task.ID, alert.ID)
	assert.Equal(t, "dentist", alert.Title)
	assert.True(t, alert.FireAt.Equal(due.Add(-30*time.Minute)))
}

func TestPlannerCancelsWhenReminderNoLongerApplies(t *testing.T) {
	due := time.Now().Add(2 * time.Hour)
	past := time.Now().Add(-time.Hour)

	cases := []struct {
		name  string
		setup func(*model.Task)
	}{
		{"no due date", func(t *model.Task) { t.ReminderLeadMinutes = 15 }},
		{"no lead", func(t *model.Task) { t.DueAt = &due }},
		{"completed", func(t *model.Task) {
			t.DueAt = &due
			t.ReminderLeadMinutes = 15
			t.Completed = true
		}},
		{"fire time already passed", func(t *model.Task) {
			t.DueAt = &past
			t.ReminderLeadMinutes = 15
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fn := &fakeNotifier{}
			p := NewPlanner(fn)
			task := model.NewTask("x", "")
			tc.setup(&task)

			p.TaskChanged(task)

			assert.Empty(t, fn.scheduled)
			assert.Equal(t, []string{task.ID}, fn.cancelled)
		})
	}
}

func TestPlannerTaskRemovedCancels(t *testing.T) {
	fn := &fakeNotifier{}
	p := NewPlanner(fn)

	p.TaskRemoved("t1")

	assert.Equal(t, []string{"t1"}, fn.cancelled)
}

func TestDailySummaryListsPendingByDueDate(t *testing.T) {
	now := time.Date(2024, 5, 15, 8, 0, 0, 0, time.UTC)
	soon := now.Add(4 * time.Hour)
	later := now.AddDate(0, 0, 5)
	past := now.Add(-24 * time.Hour)

	overdue := model.NewTask("pay rent", "")
	overdue.DueAt = &past
	upcoming := model.NewTask("write report", "")
	upcoming.DueAt = &later
	urgent := model.NewTask("call plumber", "")
	urgent.DueAt = &soon
	done := model.NewTask("already done", "")
	done.Completed = true

	msg := BuildDailySummary([]model.Task{upcoming, done, overdue, urgent}, now, 0, 0)

	assert.Contains(t, msg, "pay rent")
	assert.Contains(t, msg, "overdue")
	assert.Contains(t, msg, "call plumber")
	assert.Contains(t, msg, "write report")
	assert.NotContains(t, msg, "already done")

	// Overdue first, then the nearest due date.
	rent := indexOf(t, msg, "pay rent")
	plumber := indexOf(t, msg, "call plumber")
	report := indexOf(t, msg, "write report")
	assert.Less(t, rent, plumber)
	assert.Less(t, plumber, report)
}

func TestDailySummaryEscapesHTMLAndShowsGoal(t *testing.T) {
	now := time.Date(2024, 5, 15, 8, 0, 0, 0, time.UTC)

	task := model.NewTask("review <launch> plan", "")
	task.Category = &model.Category{Name: "Work & Life"}
	task.Subtasks = []model.Subtask{
		{ID: "a", Title: "draft", Done: true},
		{ID: "b", Title: "send", Done: false},
	}

	msg := BuildDailySummary([]model.Task{task}, now, 3, 10)

	assert.Contains(t, msg, "review &lt;launch&gt; plan")
	assert.Contains(t, msg, "Work &amp; Life")
	assert.Contains(t, msg, "1/2 subtasks")
	assert.Contains(t, msg, "Weekly goal: 3 of 10 done")
}

func TestDailySummaryWithNoOpenTasks(t *testing.T) {
	now := time.Date(2024, 5, 15, 8, 0, 0, 0, time.UTC)

	msg := BuildDailySummary(nil, now, 0, 5)

	assert.Contains(t, msg, "no open tasks")
	assert.Contains(t, msg, "Weekly goal: 0 of 5 done")
}

func indexOf(t *testing.T, s, sub string) int {
	t.Helper()
	i := strings.Index(s, sub)
	require.GreaterOrEqual(t, i, 0, "expected %q in summary", sub)
	return i
}
