package task

import (
	"fmt"
	"log/slog"
	"math"
	"slices"
	"strconv"
	"sync"
	"time"
)

// Store owns the canonical task collection in insertion order.
//
// All methods are safe for concurrent use. Every mutation completes under the
// write lock, so bulk operations are never observed half-applied.
type Store struct {
	mu     sync.RWMutex
	tasks  []Task
	lastID int // highest numeric ID ever held; only grows between Loads
	now    func() time.Time
	log    *slog.Logger
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithClock sets the clock used for CreatedDate. Defaults to time.Now.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		s.now = now
	}
}

// WithLogger sets the logger used for mutation debug logs.
func WithLogger(log *slog.Logger) StoreOption {
	return func(s *Store) {
		s.log = log
	}
}

// NewStore returns an empty Store.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		now: time.Now,
		log: slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Load replaces the whole collection with tasks.
//
// Every record is validated and IDs must be unique. On error the Store is left
// unchanged and the returned error names the offending record index.
func (s *Store) Load(tasks []Task) error {
	seen := make(map[string]int, len(tasks))
	maxID := 0

	for i := range tasks {
		if err := validateTask(&tasks[i]); err != nil {
			return fmt.Errorf("task %d: %w", i, err)
		}

		id := tasks[i].ID
		if first, dup := seen[id]; dup {
			return fmt.Errorf("task %d: %w (first seen at task %d)", i,
				fieldErr(id, "id", id, ReasonDuplicate), first)
		}

		seen[id] = i

		n, _ := numericID(id)
		maxID = max(maxID, n)
	}

	loaded := slices.Clone(tasks)

	s.mu.Lock()
	s.tasks = loaded
	s.lastID = maxID
	s.mu.Unlock()

	s.log.Debug("tasks loaded", "count", len(loaded), "last_id", maxID)

	return nil
}

// Add validates in, assigns the next ID and today's CreatedDate, and appends
// the new task. Empty Priority and Status take [DefaultPriority] and
// [DefaultStatus].
func (s *Store) Add(in TaskInput) (Task, error) {
	if in.Priority == "" {
		in.Priority = DefaultPriority
	}

	if in.Status == "" {
		in.Status = DefaultStatus
	}

	if err := validateInput(&in); err != nil {
		return Task{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.lastID == math.MaxInt {
		return Task{}, fieldErr("", "id", strconv.Itoa(s.lastID), ReasonIDExhausted)
	}

	s.lastID++

	created := Task{
		ID:          strconv.Itoa(s.lastID),
		Title:       in.Title,
		Description: in.Description,
		Assignee:    in.Assignee,
		Category:    in.Category,
		Priority:    in.Priority,
		Status:      in.Status,
		DueDate:     in.DueDate,
		CreatedDate: s.now().Format(DateLayout),
	}

	s.tasks = append(s.tasks, created)

	s.log.Debug("task added", "id", created.ID, "title", created.Title)

	return created, nil
}

// Update replaces the stored task with the same ID, keeping its position.
// CreatedDate must equal the stored value.
func (s *Store) Update(t Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(t.ID)
	if idx < 0 {
		return &NotFoundError{ID: t.ID}
	}

	if t.CreatedDate != s.tasks[idx].CreatedDate {
		return fieldErr(t.ID, "createdDate", t.CreatedDate, ReasonImmutable)
	}

	if err := validateTask(&t); err != nil {
		return err
	}

	s.tasks[idx] = t

	s.log.Debug("task updated", "id", t.ID)

	return nil
}

// Delete removes the task with the given ID.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return &NotFoundError{ID: id}
	}

	s.tasks = slices.Delete(s.tasks, idx, idx+1)

	s.log.Debug("task deleted", "id", id)

	return nil
}

// BulkDelete removes every task whose ID is in ids and returns how many were
// removed. Unknown IDs are ignored.
func (s *Store) BulkDelete(ids []string) int {
	drop := idSet(ids)

	s.mu.Lock()
	defer s.mu.Unlock()

	before := len(s.tasks)
	s.tasks = slices.DeleteFunc(s.tasks, func(t Task) bool {
		_, ok := drop[t.ID]
		return ok
	})
	removed := before - len(s.tasks)

	s.log.Debug("tasks bulk deleted", "requested", len(drop), "count", removed)

	return removed
}

// BulkSetStatus sets status on every task whose ID is in ids and returns how
// many were updated. Unknown IDs are ignored.
func (s *Store) BulkSetStatus(ids []string, status Status) (int, error) {
	if !status.Valid() {
		return 0, fieldErr("", "status", string(status), ReasonInvalidStatus)
	}

	match := idSet(ids)

	s.mu.Lock()
	defer s.mu.Unlock()

	updated := 0

	for i := range s.tasks {
		if _, ok := match[s.tasks[i].ID]; ok {
			s.tasks[i].Status = status
			updated++
		}
	}

	s.log.Debug("tasks bulk status", "status", string(status), "count", updated)

	return updated, nil
}

// Get returns a copy of the task with the given ID.
func (s *Store) Get(id string) (Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return Task{}, &NotFoundError{ID: id}
	}

	return s.tasks[idx], nil
}

// Snapshot returns a copy of the collection in insertion order.
// Modifying the result does not affect the Store.
func (s *Store) Snapshot() []Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.tasks)
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.tasks)
}

// indexOf must be called with s.mu held.
func (s *Store) indexOf(id string) int {
	return slices.IndexFunc(s.tasks, func(t Task) bool {
		return t.ID == id
	})
}

func idSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}

	return set
}
