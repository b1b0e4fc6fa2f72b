package model

import (
	"reflect"
	"time"

	"github.com/google/uuid"
)

// Priority ranks how urgent a task is.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// RecurrenceKind selects how a task repeats.
type RecurrenceKind string

const (
	RecurNone    RecurrenceKind = "none"
	RecurDaily   RecurrenceKind = "daily"
	RecurWeekly  RecurrenceKind = "weekly"
	RecurMonthly RecurrenceKind = "monthly"
)

// Recurrence describes a repeat rule. Every is the step (every N days,
// weeks or months); Weekdays applies to weekly rules only.
type Recurrence struct {
	Kind     RecurrenceKind `json:"kind"`
	Every    int            `json:"every,omitempty"`
	Weekdays []time.Weekday `json:"weekdays,omitempty"`
}

// Subtask is a checklist entry inside a task.
type Subtask struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Done  bool   `json:"done"`
}

// Image is an opaque binary attachment on a task.
type Image struct {
	ID   string `json:"id"`
	Data []byte `json:"data"`
}

// Task represents a single item in the planner.
type Task struct {
	ID                  string     `json:"id"`
	Title               string     `json:"title"`
	Description         string     `json:"description,omitempty"`
	Completed           bool       `json:"completed"`
	CompletedAt         *time.Time `json:"completed_at,omitempty"`
	DueAt               *time.Time `json:"due_at,omitempty"`
	ReminderLeadMinutes int        `json:"reminder_lead_minutes,omitempty"`
	Priority            Priority   `json:"priority,omitempty"`
	CategoryID          string     `json:"category_id,omitempty"`
	Category            *Category  `json:"category,omitempty"`
	Subtasks            []Subtask  `json:"subtasks,omitempty"`
	Recurrence          Recurrence `json:"recurrence"`
	Favorite            bool       `json:"favorite,omitempty"`
	Images              []Image    `json:"images,omitempty"`
	CalendarEventID     string     `json:"calendar_event_id,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// NewTask builds a task with a fresh identifier and creation timestamps.
func NewTask(title, description string) Task {
	now := time.Now()
	return Task{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		Priority:    PriorityMedium,
		Recurrence:  Recurrence{Kind: RecurNone},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Touch bumps the last-update timestamp, never backwards.
func (t *Task) Touch() {
	now := time.Now()
	if now.After(t.UpdatedAt) {
		t.UpdatedAt = now
	}
}

// Clone returns a deep copy so stored snapshots stay isolated from later
// mutation of the original.
func (t Task) Clone() Task {
	c := t
	if t.CompletedAt != nil {
		v := *t.CompletedAt
		c.CompletedAt = &v
	}
	if t.DueAt != nil {
		v := *t.DueAt
		c.DueAt = &v
	}
	if t.Category != nil {
		v := *t.Category
		c.Category = &v
	}
	if t.Subtasks != nil {
		c.Subtasks = make([]Subtask, len(t.Subtasks))
		copy(c.Subtasks, t.Subtasks)
	}
	if t.Recurrence.Weekdays != nil {
		c.Recurrence.Weekdays = make([]time.Weekday, len(t.Recurrence.Weekdays))
		copy(c.Recurrence.Weekdays, t.Recurrence.Weekdays)
	}
	if t.Images != nil {
		c.Images = make([]Image, len(t.Images))
		for i, img := range t.Images {
			c.Images[i] = Image{ID: img.ID, Data: append([]byte(nil), img.Data...)}
		}
	}
	return c
}

// Equal reports value equality across every field.
func (t Task) Equal(o Task) bool {
	return reflect.DeepEqual(t, o)
}

// TasksEqual reports value equality of two slices in order.
func TasksEqual(a, b []Task) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}
