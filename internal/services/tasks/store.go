// Package tasks owns the in-memory task collection and keeps the durable
// entry in sync with it.
package tasks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/riordanpawley/taskmaster/internal/domain"
	"github.com/riordanpawley/taskmaster/internal/services/storage"
)

const defaultTimeout = 2 * time.Second

// ErrWritesSuspended is reported for mutations made after a failed Load.
// Writing then would replace the unread entry with a partial collection.
var ErrWritesSuspended = errors.New("stored tasks could not be read, changes are kept in memory only")

// Store holds the ordered task collection and the edit target.
//
// Every mutation reduces the collection and then writes the full collection
// through the backend. A failed write is logged and remembered (see
// PersistErr); the in-memory collection stays authoritative.
//
// Store is not safe for concurrent use. The TUI drives it from the bubbletea
// update loop only.
type Store struct {
	backend storage.Backend
	logger  *log.Logger
	now     func() time.Time
	timeout time.Duration

	tasks      []domain.Task
	lastID     int64
	editID     *int64
	persistErr error
	readErr    error
}

// Option configures a Store
type Option func(*Store)

// WithClock overrides the time source used for new IDs
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithTimeout bounds each backend call
func WithTimeout(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// NewStore creates an empty store backed by backend. Call Load to restore
// the persisted collection.
func NewStore(backend storage.Backend, logger *log.Logger, opts ...Option) *Store {
	if backend == nil {
		panic("tasks.NewStore: backend is nil")
	}
	if logger == nil {
		panic("tasks.NewStore: logger is nil")
	}

	s := &Store{
		backend: backend,
		logger:  logger,
		now:     time.Now,
		timeout: defaultTimeout,
		tasks:   []domain.Task{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load restores the collection from the backend. A missing entry or
// malformed data yields an empty collection; Load never fails. Read errors
// other than not-found are kept in PersistErr so the UI can warn, and
// writes stay suspended until a later Load succeeds.
func (s *Store) Load(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	s.tasks = []domain.Task{}
	s.editID = nil
	s.persistErr = nil
	s.readErr = nil

	data, err := s.backend.Read(ctx)
	if errors.Is(err, domain.ErrNotFound) {
		s.logger.Debug("no stored tasks", "backend", s.backend.Name())
		return
	}
	if err != nil {
		s.logger.Error("failed to read tasks", "backend", s.backend.Name(), "error", err)
		s.readErr = err
		s.persistErr = err
		return
	}

	tasks, err := storage.Decode(data)
	if err != nil {
		s.logger.Warn("discarding malformed stored tasks", "backend", s.backend.Name(), "error", err)
		return
	}

	s.tasks = tasks
	s.lastID = max(s.lastID, domain.MaxID(tasks))
	s.logger.Info("loaded tasks", "backend", s.backend.Name(), "count", len(tasks))
}

// Add appends a new incomplete task and persists. Input is not validated
// here; callers run domain.ValidateDraft first.
func (s *Store) Add(title, description string, priority domain.Priority) domain.Task {
	task := domain.Task{
		ID:          s.nextID(),
		Title:       title,
		Description: description,
		Priority:    priority,
	}
	s.apply(domain.AddCommand{Task: task})
	return task
}

// Remove deletes the task with id. Unknown ids leave the collection as is.
func (s *Store) Remove(id int64) {
	s.apply(domain.RemoveCommand{ID: id})
	if s.editID != nil && *s.editID == id {
		s.editID = nil
	}
}

// Toggle flips completion of the task with id
func (s *Store) Toggle(id int64) {
	s.apply(domain.ToggleCommand{ID: id})
}

// Update replaces the editable fields of the task with id and clears the
// edit target
func (s *Store) Update(id int64, update domain.TaskUpdate) {
	s.apply(domain.UpdateCommand{ID: id, Update: update})
	s.editID = nil
}

// Dispatch applies an arbitrary command. Add commands whose ID is not above
// every ID handed out so far are assigned a fresh one, so removed IDs are
// never reused.
func (s *Store) Dispatch(cmd domain.Command) {
	switch c := cmd.(type) {
	case domain.AddCommand:
		if c.Task.ID <= s.lastID {
			c.Task.ID = s.nextID()
		} else {
			s.lastID = c.Task.ID
		}
		s.apply(c)
	case domain.RemoveCommand:
		s.Remove(c.ID)
	case domain.UpdateCommand:
		s.Update(c.ID, c.Update)
	default:
		s.apply(cmd)
	}
}

// SetEditTarget marks the task with id as being edited. Returns false when
// no such task exists.
func (s *Store) SetEditTarget(id int64) bool {
	if _, ok := domain.Find(s.tasks, id); !ok {
		return false
	}
	s.editID = &id
	return true
}

// ClearEditTarget forgets the edit target
func (s *Store) ClearEditTarget() {
	s.editID = nil
}

// EditTarget returns the task currently being edited
func (s *Store) EditTarget() (domain.Task, bool) {
	if s.editID == nil {
		return domain.Task{}, false
	}
	return domain.Find(s.tasks, *s.editID)
}

// Tasks returns a copy of the collection in insertion order
func (s *Store) Tasks() []domain.Task {
	out := make([]domain.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Get returns the task with id
func (s *Store) Get(id int64) (domain.Task, bool) {
	return domain.Find(s.tasks, id)
}

// Len returns the number of tasks
func (s *Store) Len() int {
	return len(s.tasks)
}

// FilteredView projects the collection through search and selector
func (s *Store) FilteredView(search, selector string) []domain.Task {
	return domain.FilteredView(s.tasks, search, selector)
}

// PersistErr returns the last persistence failure, or nil if the latest
// write succeeded
func (s *Store) PersistErr() error {
	return s.persistErr
}

// BackendName names the durable backend
func (s *Store) BackendName() string {
	return s.backend.Name()
}

func (s *Store) apply(cmd domain.Command) {
	s.tasks = domain.Reduce(s.tasks, cmd)
	s.persist()
}

func (s *Store) persist() {
	if s.readErr != nil {
		s.persistErr = fmt.Errorf("%w: %w", ErrWritesSuspended, s.readErr)
		s.logger.Warn("not persisting tasks after failed load", "backend", s.backend.Name(), "count", len(s.tasks))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	data, err := storage.Encode(s.tasks)
	if err == nil {
		err = s.backend.Write(ctx, data)
	}
	if err != nil {
		s.logger.Error("failed to persist tasks", "backend", s.backend.Name(), "count", len(s.tasks), "error", err)
		s.persistErr = err
		return
	}
	s.persistErr = nil
	s.logger.Debug("persisted tasks", "backend", s.backend.Name(), "count", len(s.tasks))
}

// nextID returns max(now in ms, lastID+1)
func (s *Store) nextID() int64 {
	id := s.now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}
