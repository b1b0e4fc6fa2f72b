package remote

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focusdo/internal/model"
)

func TestDecodeTaskRequiresIdentifier(t *testing.T) {
	_, err := DecodeTask(Record{"title": "no id"})
	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, "id", decodeErr.Field)
}

func TestDecodeTaskIgnoresUnknownFields(t *testing.T) {
	task, err := DecodeTask(Record{
		"id":            "t1",
		"title":         "known",
		"mystery_field": "ignored",
		"another_extra": 42,
		"completed":     true,
	})
	require.NoError(t, err)
	assert.Equal(t, "t1", task.ID)
	assert.True(t, task.Completed)
}

func TestEncodeDecodeThroughWireJSON(t *testing.T) {
	due := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	task := model.NewTask("rich task", "with everything")
	task.DueAt = &due
	task.ReminderLeadMinutes = 15
	task.Priority = model.PriorityHigh
	task.Favorite = true
	task.Subtasks = []model.Subtask{{ID: "s1", Title: "step one", Done: true}}
	task.Images = []model.Image{{ID: "i1", Data: []byte{0x01, 0x02}}}
	task.Recurrence = model.Recurrence{
		Kind:     model.RecurWeekly,
		Every:    2,
		Weekdays: []time.Weekday{time.Monday, time.Thursday},
	}

	// Round-trip through JSON: the wire bag comes back with float64
	// numbers and generic maps, which is what the decoder must accept.
	data, err := json.Marshal(EncodeTask(task))
	require.NoError(t, err)
	var bag Record
	require.NoError(t, json.Unmarshal(data, &bag))

	got, err := DecodeTask(bag)
	require.NoError(t, err)

	assert.Equal(t, task.ID, got.ID)
	assert.Equal(t, "rich task", got.Title)
	assert.Equal(t, 15, got.ReminderLeadMinutes)
	assert.Equal(t, model.PriorityHigh, got.Priority)
	assert.True(t, got.Favorite)
	require.NotNil(t, got.DueAt)
	assert.True(t, got.DueAt.Equal(due))
	require.Len(t, got.Subtasks, 1)
	assert.True(t, got.Subtasks[0].Done)
	require.Len(t, got.Images, 1)
	assert.Equal(t, []byte{0x01, 0x02}, got.Images[0].Data)
	assert.Equal(t, model.RecurWeekly, got.Recurrence.Kind)
	assert.Equal(t, []time.Weekday{time.Monday, time.Thursday}, got.Recurrence.Weekdays)
}

func TestDecodeCategory(t *testing.T) {
	cat, err := DecodeCategory(Record{"id": "c1", "name": "Work", "color": "#123456"})
	require.NoError(t, err)
	assert.Equal(t, "Work", cat.Name)

	_, err = DecodeCategory(Record{"name": "no id"})
	assert.Error(t, err)
}
