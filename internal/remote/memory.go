package remote

import (
	"context"
	"sync"
	"time"

	"focusdo/internal/model"
)

// Memory is an in-process Store used for tests and fully-offline runs.
type Memory struct {
	mu         sync.RWMutex
	tasks      map[string]model.Task
	categories map[string]model.Category
	daily      map[string]int
	focus      map[string]int
}

func NewMemory() *Memory {
	return &Memory{
		tasks:      make(map[string]model.Task),
		categories: make(map[string]model.Category),
		daily:      make(map[string]int),
		focus:      make(map[string]int),
	}
}

func (m *Memory) FetchAll(ctx context.Context) ([]model.Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]model.Task, 0, len(m.tasks))
	for _, t := range m.tasks {
		out = append(out, t.Clone())
	}
	return out, nil
}

func (m *Memory) Save(ctx context.Context, t model.Task) error {
	m.mu.Lock()
	m.tasks[t.ID] = t.Clone()
	m.mu.Unlock()
	return nil
}

func (m *Memory) Delete(ctx context.Context, t model.Task) error {
	m.mu.Lock()
	delete(m.tasks, t.ID)
	m.mu.Unlock()
	return nil
}

func (m *Memory) FetchCategories(ctx context.Context) ([]model.Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]model.Category, 0, len(m.categories))
	for _, c := range m.categories {
		out = append(out, c)
	}
	return out, nil
}

func (m *Memory) SaveCategory(ctx context.Context, c model.Category) error {
	m.mu.Lock()
	m.categories[c.ID] = c
	m.mu.Unlock()
	return nil
}

func (m *Memory) DeleteCategory(ctx context.Context, c model.Category) error {
	m.mu.Lock()
	delete(m.categories, c.ID)
	m.mu.Unlock()
	return nil
}

func (m *Memory) FetchDailyStat(ctx context.Context, day time.Time) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.daily[day.Format(dayFormat)], nil
}

func (m *Memory) SaveDailyStat(ctx context.Context, day time.Time, count int) error {
	m.mu.Lock()
	m.daily[day.Format(dayFormat)] = count
	m.mu.Unlock()
	return nil
}

func (m *Memory) FetchFocusStat(ctx context.Context, day time.Time) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.focus[day.Format(dayFormat)], nil
}

func (m *Memory) SaveFocusStat(ctx context.Context, day time.Time, minutes int) error {
	m.mu.Lock()
	m.focus[day.Format(dayFormat)] = minutes
	m.mu.Unlock()
	return nil
}

// TaskCount reports how many task records the fake holds.
func (m *Memory) TaskCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.tasks)
}
