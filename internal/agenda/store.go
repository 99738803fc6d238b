package agenda

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"agenda/internal/storage"
)

// IDFunc returns a fresh, never reused identifier.
type IDFunc func() string

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for diagnostics.
func WithLogger(log *zap.Logger) Option {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}

// WithIDFunc replaces the UUID generator.
func WithIDFunc(fn IDFunc) Option {
	return func(s *Store) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// WithWriteBehind makes persistence asynchronous: mutations return as soon
// as memory is updated and a background goroutine writes the latest snapshot.
// Call Flush or Close to wait for it.
func WithWriteBehind() Option {
	return func(s *Store) {
		s.writeBehind = true
	}
}

// Store owns the agenda collection and the active selection.
//
// A Store is not safe for concurrent use; callers serialize operations.
// Every operation that changes the collection or the selection writes a
// snapshot of both through to storage. Reads always observe the latest
// in-memory state, whether or not the write has completed.
type Store struct {
	storage     storage.Storage
	log         *zap.Logger
	newID       IDFunc
	writeBehind bool
	persist     persister

	agendas     []Agenda
	activeID    string
	initialized bool
}

// New creates a Store over st. Initialize must be called before use.
func New(st storage.Storage, opts ...Option) *Store {
	s := &Store{
		storage: st,
		log:     zap.NewNop(),
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.writeBehind {
		s.persist = newWriteBehind(st, s.log)
	} else {
		s.persist = newSyncPersister(st, s.log)
	}
	return s
}

// Initialize restores the collection and active id from storage.
// Missing, unreadable or malformed data is replaced by a single default
// agenda; a stale or missing active id selects the first agenda.
// Initialize never fails.
func (s *Store) Initialize(ctx context.Context) {
	agendas, restored := s.loadCollection(ctx)
	if !restored {
		agendas = []Agenda{s.defaultAgenda()}
	}

	activeID := s.loadActive(ctx)
	if !containsAgenda(agendas, activeID) {
		if activeID != "" {
			s.log.Info("stored active agenda no longer exists", zap.String("id", activeID))
		}
		activeID = agendas[0].ID
	}

	s.agendas = agendas
	s.activeID = activeID
	s.initialized = true

	s.log.Debug("agendas initialized",
		zap.Int("agendas", len(agendas)),
		zap.Bool("restored", restored),
		zap.String("active", activeID))

	if !restored {
		s.save(ctx)
	}
}

func (s *Store) loadCollection(ctx context.Context) ([]Agenda, bool) {
	data, err := s.storage.Load(ctx, CollectionKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.log.Warn("loading agendas failed; starting fresh", zap.Error(err))
		}
		return nil, false
	}
	agendas, err := DecodeCollection(data)
	if err != nil {
		if errors.Is(err, ErrEmptySnapshot) {
			s.log.Debug("stored agenda collection is empty; seeding default")
		} else {
			s.log.Warn("stored agendas are unusable; starting fresh", zap.Error(err))
		}
		return nil, false
	}
	return agendas, true
}

func (s *Store) loadActive(ctx context.Context) string {
	data, err := s.storage.Load(ctx, ActiveKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.log.Warn("loading active agenda failed", zap.Error(err))
		}
		return ""
	}
	return DecodeActive(data)
}

func (s *Store) defaultAgenda() Agenda {
	return Agenda{ID: s.newID(), Name: DefaultAgendaName, Tasks: []Task{}}
}

// CreateAgenda appends a new empty agenda and makes it active.
// A name that trims to empty is rejected.
func (s *Store) CreateAgenda(ctx context.Context, name string) (Agenda, bool) {
	s.mustBeInitialized()
	name = strings.TrimSpace(name)
	if name == "" {
		return Agenda{}, false
	}
	a := Agenda{ID: s.freshID(), Name: name, Tasks: []Task{}}
	s.agendas = append(s.agendas, a)
	s.activeID = a.ID
	s.save(ctx)
	return a.clone(), true
}

// RenameAgenda changes the name of agenda id in place.
// Unknown ids and names that trim to empty are rejected.
func (s *Store) RenameAgenda(ctx context.Context, id, name string) bool {
	s.mustBeInitialized()
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}
	i := s.agendaIndex(id)
	if i < 0 {
		return false
	}
	if s.agendas[i].Name == name {
		return true
	}
	s.agendas[i].Name = name
	s.save(ctx)
	return true
}

// DeleteAgenda removes agenda id and all of its tasks. If it was active,
// the first remaining agenda becomes active, or none if the collection is
// now empty. An empty collection is kept as is until the next Initialize.
func (s *Store) DeleteAgenda(ctx context.Context, id string) bool {
	s.mustBeInitialized()
	i := s.agendaIndex(id)
	if i < 0 {
		return false
	}
	s.agendas = append(s.agendas[:i], s.agendas[i+1:]...)
	if s.activeID == id {
		s.activeID = ""
		if len(s.agendas) > 0 {
			s.activeID = s.agendas[0].ID
		}
	}
	s.save(ctx)
	return true
}

// SetActive selects agenda id. Unknown ids are rejected.
func (s *Store) SetActive(ctx context.Context, id string) bool {
	s.mustBeInitialized()
	if s.agendaIndex(id) < 0 {
		return false
	}
	if s.activeID == id {
		return true
	}
	s.activeID = id
	s.save(ctx)
	return true
}

// AddTask appends a new, uncompleted task to the active agenda.
// Rejected when no agenda is active or text trims to empty.
func (s *Store) AddTask(ctx context.Context, text string) (Task, bool) {
	s.mustBeInitialized()
	text = strings.TrimSpace(text)
	a := s.active()
	if a == nil || text == "" {
		return Task{}, false
	}
	t := Task{ID: s.freshID(), Text: text}
	a.Tasks = append(a.Tasks, t)
	s.save(ctx)
	return t, true
}

// DeleteTask removes task id from the active agenda.
func (s *Store) DeleteTask(ctx context.Context, id string) bool {
	s.mustBeInitialized()
	a := s.active()
	if a == nil {
		return false
	}
	i := taskIndex(a.Tasks, id)
	if i < 0 {
		return false
	}
	a.Tasks = append(a.Tasks[:i], a.Tasks[i+1:]...)
	s.save(ctx)
	return true
}

// ToggleTask flips the completion state of task id in the active agenda.
func (s *Store) ToggleTask(ctx context.Context, id string) bool {
	s.mustBeInitialized()
	a := s.active()
	if a == nil {
		return false
	}
	i := taskIndex(a.Tasks, id)
	if i < 0 {
		return false
	}
	a.Tasks[i].Completed = !a.Tasks[i].Completed
	s.save(ctx)
	return true
}

// EditTaskText replaces the text of task id in the active agenda with the
// trimmed text. Text that trims to empty is rejected and the old text kept.
func (s *Store) EditTaskText(ctx context.Context, id, text string) bool {
	s.mustBeInitialized()
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	a := s.active()
	if a == nil {
		return false
	}
	i := taskIndex(a.Tasks, id)
	if i < 0 {
		return false
	}
	if a.Tasks[i].Text == text {
		return true
	}
	a.Tasks[i].Text = text
	s.save(ctx)
	return true
}

// CompletionSummary returns the completed and total task counts of the
// active agenda, or (0, 0) when none is active.
func (s *Store) CompletionSummary() (completed, total int) {
	a := s.active()
	if a == nil {
		return 0, 0
	}
	return a.Summary()
}

// Agendas returns a deep copy of the collection in display order.
func (s *Store) Agendas() []Agenda {
	return cloneAll(s.agendas)
}

// ActiveID returns the id of the active agenda, or "" when none is active.
func (s *Store) ActiveID() string {
	return s.activeID
}

// Active returns a copy of the active agenda.
func (s *Store) Active() (Agenda, bool) {
	a := s.active()
	if a == nil {
		return Agenda{}, false
	}
	return a.clone(), true
}

// Flush waits for pending persistence writes and returns the most recent
// write error, if any.
func (s *Store) Flush(ctx context.Context) error {
	return s.persist.flush(ctx)
}

// Err returns the error of the most recent completed persistence write.
// It is nil once a later write succeeds.
func (s *Store) Err() error {
	return s.persist.err()
}

// Close flushes pending writes, stops background work and closes the
// storage if it implements io.Closer. The returned error reports a failed
// final write or close.
func (s *Store) Close(ctx context.Context) error {
	err := s.persist.stop(ctx)
	if c, ok := s.storage.(io.Closer); ok {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// save submits the current state for persistence.
func (s *Store) save(ctx context.Context) {
	collection, err := EncodeCollection(s.agendas)
	if err != nil {
		// Only plain strings and bools are encoded; this cannot happen.
		s.log.Error("encoding agendas failed", zap.Error(err))
		return
	}
	s.persist.submit(ctx, snapshot{
		collection: collection,
		active:     EncodeActive(s.activeID),
	})
}

func (s *Store) mustBeInitialized() {
	if !s.initialized {
		panic("agenda: Store used before Initialize")
	}
}

func (s *Store) active() *Agenda {
	if s.activeID == "" {
		return nil
	}
	i := s.agendaIndex(s.activeID)
	if i < 0 {
		return nil
	}
	return &s.agendas[i]
}

func (s *Store) agendaIndex(id string) int {
	for i := range s.agendas {
		if s.agendas[i].ID == id {
			return i
		}
	}
	return -1
}

// maxIDAttempts bounds retries against a misbehaving IDFunc.
const maxIDAttempts = 100

// freshID returns an id not used by any agenda or task currently held.
func (s *Store) freshID() string {
	for i := 0; i < maxIDAttempts; i++ {
		id := s.newID()
		if id != "" && !s.idInUse(id) {
			return id
		}
		s.log.Warn("id generator returned a used id; retrying", zap.String("id", id))
	}
	panic("agenda: IDFunc keeps returning ids already in use")
}

func (s *Store) idInUse(id string) bool {
	for _, a := range s.agendas {
		if a.ID == id {
			return true
		}
		if taskIndex(a.Tasks, id) >= 0 {
			return true
		}
	}
	return false
}

func taskIndex(tasks []Task, id string) int {
	for i := range tasks {
		if tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func containsAgenda(agendas []Agenda, id string) bool {
	if id == "" {
		return false
	}
	for _, a := range agendas {
		if a.ID == id {
			return true
		}
	}
	return false
}
