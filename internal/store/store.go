package store

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"focusdo/internal/model"
)

// Persister owns the serialized form of the collection. Loading tolerates
// missing or undecodable state by returning empty slices.
type Persister interface {
	SaveTasks(tasks []model.Task) error
	LoadTasks() ([]model.Task, error)
	SaveTrash(entries []model.TrashEntry) error
	LoadTrash() ([]model.TrashEntry, error)
	SaveCategories(categories []model.Category) error
	LoadCategories() ([]model.Category, error)
}

// RemotePusher receives best-effort single-record pushes after local
// mutations. Failures are logged by the store, never surfaced.
type RemotePusher interface {
	Save(ctx context.Context, t model.Task) error
	Delete(ctx context.Context, t model.Task) error
}

// CategoryPusher receives best-effort category pushes after local category
// mutations. A Remote that also implements it gets category changes
// mirrored upward.
type CategoryPusher interface {
	SaveCategory(ctx context.Context, c model.Category) error
	DeleteCategory(ctx context.Context, c model.Category) error
}

// ReminderScheduler keeps one-shot alerts in step with task due dates.
type ReminderScheduler interface {
	TaskChanged(t model.Task)
	TaskRemoved(id string)
}

// CalendarMirror keeps an external calendar event in step with a task.
type CalendarMirror interface {
	SyncTask(ctx context.Context, t model.Task) error
	RemoveTask(ctx context.Context, t model.Task) error
}

// CompletionRecorder tallies completions per civil day.
type CompletionRecorder interface {
	RecordCompletion(day time.Time, delta int)
}

const (
	defaultTrashMaxEntries = 100
	defaultTrashMaxAge     = 30 * 24 * time.Hour
	defaultEffectTimeout   = 15 * time.Second
	effectQueueSize        = 256
)

// Options wires a Store. Every collaborator is optional; a nil one is
// simply skipped.
type Options struct {
	Persister       Persister
	Remote          RemotePusher
	Reminders       ReminderScheduler
	Calendar        CalendarMirror
	Completions     CompletionRecorder
	Logger          zerolog.Logger
	TrashMaxEntries int
	TrashMaxAge     time.Duration
	EffectTimeout   time.Duration
}

// Store is the authoritative in-memory task collection plus its undo/redo
// log and trash. A single mutex serializes all access; asynchronous side
// effects go through an internal queue and never touch the collection.
type Store struct {
	mu             sync.Mutex
	log            zerolog.Logger
	persister      Persister
	remote         RemotePusher
	categoryRemote CategoryPusher
	reminders      ReminderScheduler
	calendar       CalendarMirror
	completions    CompletionRecorder

	tasks      []model.Task
	trash      []model.TrashEntry
	categories []model.Category

	undo []action
	redo []action

	trashMaxEntries int
	trashMaxAge     time.Duration

	effectTimeout time.Duration
	effects       chan effect
	drained       chan struct{}

	onChange func(tasks []model.Task)
}

// New builds a Store and starts its side-effect worker. Call Close to
// drain the queue on shutdown.
func New(opts Options) *Store {
	s := &Store{
		log:             opts.Logger.With().Str("component", "store").Logger(),
		persister:       opts.Persister,
		remote:          opts.Remote,
		reminders:       opts.Reminders,
		calendar:        opts.Calendar,
		completions:     opts.Completions,
		trashMaxEntries: opts.TrashMaxEntries,
		trashMaxAge:     opts.TrashMaxAge,
		effectTimeout:   opts.EffectTimeout,
		effects:         make(chan effect, effectQueueSize),
		drained:         make(chan struct{}),
	}
	if cp, ok := opts.Remote.(CategoryPusher); ok {
		s.categoryRemote = cp
	}
	if s.trashMaxEntries <= 0 {
		s.trashMaxEntries = defaultTrashMaxEntries
	}
	if s.trashMaxAge <= 0 {
		s.trashMaxAge = defaultTrashMaxAge
	}
	if s.effectTimeout <= 0 {
		s.effectTimeout = defaultEffectTimeout
	}
	go s.runEffects()
	return s
}

// Close stops the side-effect worker after draining queued work.
func (s *Store) Close() {
	close(s.effects)
	<-s.drained
}

// SetOnChange registers the observer invoked when a reconciliation pass
// changes the collection.
func (s *Store) SetOnChange(fn func(tasks []model.Task)) {
	s.onChange = fn
}

// LoadLocal restores tasks, trash and categories from the persister. An
// absent or undecodable snapshot yields an empty collection.
func (s *Store) LoadLocal() {
	if s.persister == nil {
		return
	}
	tasks, err := s.persister.LoadTasks()
	if err != nil {
		s.log.Warn().Err(err).Msg("load tasks, starting empty")
		tasks = nil
	}
	trash, err := s.persister.LoadTrash()
	if err != nil {
		s.log.Warn().Err(err).Msg("load trash, starting empty")
		trash = nil
	}
	categories, err := s.persister.LoadCategories()
	if err != nil {
		s.log.Warn().Err(err).Msg("load categories, starting empty")
		categories = nil
	}
	s.mu.Lock()
	s.tasks = tasks
	s.trash = trash
	s.categories = categories
	s.mu.Unlock()
	s.log.Info().
		Int("tasks", len(tasks)).
		Int("trash", len(trash)).
		Int("categories", len(categories)).
		Msg("restored local state")
}

// Tasks returns a snapshot of the collection.
func (s *Store) Tasks() []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() []model.Task {
	out := make([]model.Task, len(s.tasks))
	for i, t := range s.tasks {
		out[i] = t.Clone()
	}
	return out
}

// Get returns the task with the given id, if present.
func (s *Store) Get(id string) (model.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(id); i >= 0 {
		return s.tasks[i].Clone(), true
	}
	return model.Task{}, false
}

// Len reports the number of tasks in the collection.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// Add appends a task to the collection. It always succeeds; validation of
// required fields happens upstream.
func (s *Store) Add(t model.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t = t.Clone()
	if t.ID == "" {
		t = model.NewTask(t.Title, t.Description)
	}
	t.Touch()

	pos := len(s.tasks)
	s.tasks = append(s.tasks, t)
	s.pushUndo(action{kind: actionDelete, task: t.Clone(), pos: pos})

	s.persistTasks()
	s.taskChanged(t)
	s.log.Info().Str("task_id", t.ID).Msg("added task")
}

// Update replaces the task with a matching identifier in place. A missing
// identifier is a silent no-op.
func (s *Store) Update(t model.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(t.ID)
	if i < 0 {
		s.log.Debug().Str("task_id", t.ID).Msg("update of unknown task ignored")
		return
	}
	old := s.tasks[i].Clone()
	t = t.Clone()
	t.Touch()
	s.tasks[i] = t
	s.pushUndo(action{kind: actionUpdate, task: old})

	s.persistTasks()
	s.taskChanged(t)
	s.log.Info().Str("task_id", t.ID).Msg("updated task")
}

// ToggleCompletion flips the completion flag. Completing stamps the
// completion time and counts it against that day; uncompleting clears the
// stamp and uncounts the day the task was completed on.
func (s *Store) ToggleCompletion(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		s.log.Debug().Str("task_id", id).Msg("toggle of unknown task ignored")
		return
	}
	t := &s.tasks[i]
	if !t.Completed {
		now := time.Now()
		t.Completed = true
		t.CompletedAt = &now
		t.Touch()
		s.recordCompletion(now, 1)
		s.pushUndo(action{kind: actionUncomplete, id: id})
	} else {
		day := time.Now()
		var prev *time.Time
		if t.CompletedAt != nil {
			day = *t.CompletedAt
			v := *t.CompletedAt
			prev = &v
		}
		t.Completed = false
		t.CompletedAt = nil
		t.Touch()
		s.recordCompletion(day, -1)
		s.pushUndo(action{kind: actionComplete, id: id, completedAt: prev})
	}

	s.persistTasks()
	s.taskChanged(*t)
	s.log.Info().Str("task_id", id).Bool("completed", t.Completed).Msg("toggled task")
}

// Delete moves the task into the trash. A missing identifier is a silent
// no-op.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		s.log.Debug().Str("task_id", id).Msg("delete of unknown task ignored")
		return
	}
	t := s.tasks[i].Clone()
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	s.trash = append(s.trash, model.TrashEntry{Task: t, OriginalPosition: i, DeletedAt: time.Now()})
	s.pruneTrash(time.Now())
	s.pushUndo(action{kind: actionCreate, task: t.Clone(), pos: i})

	s.persistTasks()
	s.persistTrash()
	s.taskRemoved(t)
	s.log.Info().Str("task_id", id).Msg("deleted task")
}

func (s *Store) indexOf(id string) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) recordCompletion(day time.Time, delta int) {
	if s.completions != nil {
		s.completions.RecordCompletion(day, delta)
	}
}

// taskChanged runs the synchronous reminder bookkeeping and queues the
// asynchronous remote and calendar pushes.
func (s *Store) taskChanged(t model.Task) {
	if s.reminders != nil {
		s.reminders.TaskChanged(t)
	}
	s.enqueue(effect{kind: effectSave, task: t.Clone()})
}

func (s *Store) taskRemoved(t model.Task) {
	if s.reminders != nil {
		s.reminders.TaskRemoved(t.ID)
	}
	s.enqueue(effect{kind: effectDelete, task: t.Clone()})
}

func (s *Store) persistTasks() {
	if s.persister == nil {
		return
	}
	if err := s.persister.SaveTasks(s.tasks); err != nil {
		s.log.Error().Err(err).Msg("persist tasks")
	}
}

func (s *Store) persistTrash() {
	if s.persister == nil {
		return
	}
	if err := s.persister.SaveTrash(s.trash); err != nil {
		s.log.Error().Err(err).Msg("persist trash")
	}
}

func (s *Store) persistCategories() {
	if s.persister == nil {
		return
	}
	if err := s.persister.SaveCategories(s.categories); err != nil {
		s.log.Error().Err(err).Msg("persist categories")
	}
}

// ReplaceAll swaps in a merged collection, persists it, and notifies the
// observer only when the new set differs by value from the old one. It
// reports whether anything changed.
func (s *Store) ReplaceAll(merged []model.Task) bool {
	s.mu.Lock()
	changed := !model.TasksEqual(s.tasks, merged)
	next := make([]model.Task, len(merged))
	for i, t := range merged {
		next[i] = t.Clone()
	}
	s.tasks = next
	s.persistTasks()
	var snapshot []model.Task
	if changed && s.onChange != nil {
		snapshot = s.snapshotLocked()
	}
	s.mu.Unlock()

	if snapshot != nil {
		s.onChange(snapshot)
	}
	return changed
}
