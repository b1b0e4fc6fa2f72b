package calendar

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"focusdo/internal/model"
)

const taskIDProperty = "focusdo_id"

// Google mirrors tasks into a Google Calendar. An in-memory index maps
// task ids to event ids; a lookup by extended property covers index
// misses.
type Google struct {
	srv        *gcal.Service
	calendarID string
	log        zerolog.Logger

	mu    sync.Mutex
	index map[string]string
}

// NewGoogle connects to the calendar with the given display name.
func NewGoogle(ctx context.Context, credentialsDir, calendarName string, log zerolog.Logger) (*Google, error) {
	client, err := httpClient(ctx, credentialsDir)
	if err != nil {
		return nil, err
	}

	srv, err := gcal.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("calendar service: %w", err)
	}

	list, err := srv.CalendarList.List().Do()
	if err != nil {
		return nil, fmt.Errorf("list calendars: %w", err)
	}
	var calendarID string
	for _, item := range list.Items {
		if item.Summary == calendarName {
			calendarID = item.Id
			break
		}
	}
	if calendarID == "" {
		return nil, fmt.Errorf("calendar %q not found", calendarName)
	}

	return &Google{
		srv:        srv,
		calendarID: calendarID,
		log:        log.With().Str("component", "calendar").Logger(),
		index:      make(map[string]string),
	}, nil
}

// SyncTask creates or updates the event mirroring a task. Tasks without a
// due date (or already completed) have their event removed instead.
func (g *Google) SyncTask(ctx context.Context, t model.Task) error {
	if t.DueAt == nil || t.Completed {
		return g.RemoveTask(ctx, t)
	}

	existing, err := g.findEvent(t)
	if err != nil {
		return err
	}

	want := g.eventFor(t)
	if existing == nil {
		created, err := g.srv.Events.Insert(g.calendarID, want).Context(ctx).Do()
		if err != nil {
			return fmt.Errorf("insert event: %w", err)
		}
		g.remember(t.ID, created.Id)
		return nil
	}

	if existing.Summary == want.Summary &&
		existing.Description == want.Description &&
		existing.Start != nil && existing.Start.DateTime == want.Start.DateTime {
		return nil
	}
	patched, err := g.srv.Events.Patch(g.calendarID, existing.Id, want).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("patch event: %w", err)
	}
	g.remember(t.ID, patched.Id)
	return nil
}

// RemoveTask deletes the event mirroring a task, if one exists.
func (g *Google) RemoveTask(ctx context.Context, t model.Task) error {
	existing, err := g.findEvent(t)
	if err != nil || existing == nil {
		return err
	}
	if err := g.srv.Events.Delete(g.calendarID, existing.Id).Context(ctx).Do(); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	g.mu.Lock()
	delete(g.index, t.ID)
	g.mu.Unlock()
	return nil
}

func (g *Google) eventFor(t model.Task) *gcal.Event {
	start := t.DueAt.Format(time.RFC3339)
	end := t.DueAt.Add(30 * time.Minute).Format(time.RFC3339)
	return &gcal.Event{
		Summary:     t.Title,
		Description: t.Description,
		Start:       &gcal.EventDateTime{DateTime: start},
		End:         &gcal.EventDateTime{DateTime: end},
		ExtendedProperties: &gcal.EventExtendedProperties{
			Private: map[string]string{taskIDProperty: t.ID},
		},
	}
}

// findEvent tries the stored event reference, then the local index, then
// an extended-property search.
func (g *Google) findEvent(t model.Task) (*gcal.Event, error) {
	g.mu.Lock()
	eventID := g.index[t.ID]
	g.mu.Unlock()
	if eventID == "" {
		eventID = t.CalendarEventID
	}

	if eventID != "" {
		ev, err := g.srv.Events.Get(g.calendarID, eventID).Do()
		if err == nil {
			return ev, nil
		}
		// Stale reference; fall back to search.
		g.log.Debug().Str("task_id", t.ID).Str("event_id", eventID).Msg("stale event reference")
	}

	events, err := g.srv.Events.List(g.calendarID).
		PrivateExtendedProperty(fmt.Sprintf("%s=%s", taskIDProperty, t.ID)).
		Do()
	if err != nil {
		return nil, fmt.Errorf("search event: %w", err)
	}
	if len(events.Items) > 0 {
		g.remember(t.ID, events.Items[0].Id)
		return events.Items[0], nil
	}
	return nil, nil
}

func (g *Google) remember(taskID, eventID string) {
	g.mu.Lock()
	g.index[taskID] = eventID
	g.mu.Unlock()
}
