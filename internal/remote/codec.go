package remote

import (
	"encoding/base64"
	"fmt"
	"time"

	"focusdo/internal/model"
)

// DecodeError reports a field bag that cannot become a typed record.
type DecodeError struct {
	Field  string
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode record: field %q: %s", e.Field, e.Reason)
}

// EncodeTask flattens a task into a wire field bag.
func EncodeTask(t model.Task) Record {
	rec := Record{
		"id":         t.ID,
		"title":      t.Title,
		"completed":  t.Completed,
		"created_at": t.CreatedAt.Format(time.RFC3339Nano),
		"updated_at": t.UpdatedAt.Format(time.RFC3339Nano),
	}
	if t.Description != "" {
		rec["description"] = t.Description
	}
	if t.CompletedAt != nil {
		rec["completed_at"] = t.CompletedAt.Format(time.RFC3339Nano)
	}
	if t.DueAt != nil {
		rec["due_at"] = t.DueAt.Format(time.RFC3339Nano)
	}
	if t.ReminderLeadMinutes != 0 {
		rec["reminder_lead_minutes"] = t.ReminderLeadMinutes
	}
	if t.Priority != "" {
		rec["priority"] = string(t.Priority)
	}
	if t.CategoryID != "" {
		rec["category_id"] = t.CategoryID
	}
	if t.Favorite {
		rec["favorite"] = true
	}
	if t.CalendarEventID != "" {
		rec["calendar_event_id"] = t.CalendarEventID
	}
	if len(t.Subtasks) > 0 {
		subs := make([]any, len(t.Subtasks))
		for i, st := range t.Subtasks {
			subs[i] = map[string]any{"id": st.ID, "title": st.Title, "done": st.Done}
		}
		rec["subtasks"] = subs
	}
	if len(t.Images) > 0 {
		imgs := make([]any, len(t.Images))
		for i, img := range t.Images {
			imgs[i] = map[string]any{
				"id":   img.ID,
				"data": base64.StdEncoding.EncodeToString(img.Data),
			}
		}
		rec["images"] = imgs
	}
	if t.Recurrence.Kind != "" && t.Recurrence.Kind != model.RecurNone {
		days := make([]any, len(t.Recurrence.Weekdays))
		for i, d := range t.Recurrence.Weekdays {
			days[i] = int(d)
		}
		rec["recurrence"] = map[string]any{
			"kind":     string(t.Recurrence.Kind),
			"every":    t.Recurrence.Every,
			"weekdays": days,
		}
	}
	return rec
}

// DecodeTask turns a wire field bag into a typed task. Unknown fields are
// ignored; a missing id or title is a decode error.
func DecodeTask(rec Record) (model.Task, error) {
	id := bagString(rec, "id")
	if id == "" {
		return model.Task{}, &DecodeError{Field: "id", Reason: "missing"}
	}
	title := bagString(rec, "title")
	if title == "" {
		return model.Task{}, &DecodeError{Field: "title", Reason: "missing"}
	}

	t := model.Task{
		ID:                  id,
		Title:               title,
		Description:         bagString(rec, "description"),
		Completed:           bagBool(rec, "completed"),
		CompletedAt:         bagTime(rec, "completed_at"),
		DueAt:               bagTime(rec, "due_at"),
		ReminderLeadMinutes: bagInt(rec, "reminder_lead_minutes"),
		Priority:            model.Priority(bagString(rec, "priority")),
		CategoryID:          bagString(rec, "category_id"),
		Favorite:            bagBool(rec, "favorite"),
		CalendarEventID:     bagString(rec, "calendar_event_id"),
		Recurrence:          model.Recurrence{Kind: model.RecurNone},
	}

	if created := bagTime(rec, "created_at"); created != nil {
		t.CreatedAt = *created
	}
	if updated := bagTime(rec, "updated_at"); updated != nil {
		t.UpdatedAt = *updated
	}

	if raw, ok := rec["subtasks"].([]any); ok {
		for _, item := range raw {
			bag, ok := item.(map[string]any)
			if !ok {
				continue
			}
			t.Subtasks = append(t.Subtasks, model.Subtask{
				ID:    bagString(bag, "id"),
				Title: bagString(bag, "title"),
				Done:  bagBool(bag, "done"),
			})
		}
	}

	if raw, ok := rec["images"].([]any); ok {
		for _, item := range raw {
			bag, ok := item.(map[string]any)
			if !ok {
				continue
			}
			data, err := base64.StdEncoding.DecodeString(bagString(bag, "data"))
			if err != nil {
				return model.Task{}, &DecodeError{Field: "images", Reason: err.Error()}
			}
			t.Images = append(t.Images, model.Image{ID: bagString(bag, "id"), Data: data})
		}
	}

	if bag, ok := rec["recurrence"].(map[string]any); ok {
		t.Recurrence = model.Recurrence{
			Kind:  model.RecurrenceKind(bagString(bag, "kind")),
			Every: bagInt(bag, "every"),
		}
		if days, ok := bag["weekdays"].([]any); ok {
			for _, d := range days {
				if n, ok := asInt(d); ok {
					t.Recurrence.Weekdays = append(t.Recurrence.Weekdays, time.Weekday(n))
				}
			}
		}
	}

	return t, nil
}

// EncodeCategory flattens a category into a wire field bag.
func EncodeCategory(c model.Category) Record {
	return Record{
		"id":         c.ID,
		"name":       c.Name,
		"color":      c.Color,
		"created_at": c.CreatedAt.Format(time.RFC3339Nano),
		"updated_at": c.UpdatedAt.Format(time.RFC3339Nano),
	}
}

// DecodeCategory turns a wire field bag into a typed category.
func DecodeCategory(rec Record) (model.Category, error) {
	id := bagString(rec, "id")
	if id == "" {
		return model.Category{}, &DecodeError{Field: "id", Reason: "missing"}
	}
	c := model.Category{
		ID:    id,
		Name:  bagString(rec, "name"),
		Color: bagString(rec, "color"),
	}
	if created := bagTime(rec, "created_at"); created != nil {
		c.CreatedAt = *created
	}
	if updated := bagTime(rec, "updated_at"); updated != nil {
		c.UpdatedAt = *updated
	}
	return c, nil
}

func bagString(rec map[string]any, key string) string {
	if v, ok := rec[key].(string); ok {
		return v
	}
	return ""
}

func bagBool(rec map[string]any, key string) bool {
	if v, ok := rec[key].(bool); ok {
		return v
	}
	return false
}

func bagInt(rec map[string]any, key string) int {
	if n, ok := asInt(rec[key]); ok {
		return n
	}
	return 0
}

// asInt accepts the numeric shapes JSON decoding can produce.
func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	}
	return 0, false
}

func bagTime(rec map[string]any, key string) *time.Time {
	s := bagString(rec, key)
	if s == "" {
		return nil
	}
	ts, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return nil
	}
	return &ts
}
