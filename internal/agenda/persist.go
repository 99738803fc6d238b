package agenda

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"agenda/internal/storage"
)

// snapshot is an encoded, immutable copy of the store state.
type snapshot struct {
	collection []byte
	active     []byte
}

// persister writes snapshots to storage.
type persister interface {
	// submit hands a snapshot over for writing. It must not block on I/O
	// longer than the persister's policy allows.
	submit(ctx context.Context, s snapshot)

	// flush waits until every submitted snapshot has been written and
	// returns the most recent write error.
	flush(ctx context.Context) error

	// err returns the result of the most recent completed write.
	err() error

	// stop flushes and releases background resources.
	stop(ctx context.Context) error
}

// writeSnapshot saves both keys. Each key is replaced atomically by the
// backend; the pair is not atomic, which Initialize tolerates.
func writeSnapshot(ctx context.Context, st storage.Storage, s snapshot) error {
	if err := st.Save(ctx, CollectionKey, s.collection); err != nil {
		return fmt.Errorf("save %s: %w", CollectionKey, err)
	}
	if err := st.Save(ctx, ActiveKey, s.active); err != nil {
		return fmt.Errorf("save %s: %w", ActiveKey, err)
	}
	return nil
}

// syncPersister writes each snapshot before submit returns.
type syncPersister struct {
	storage storage.Storage
	log     *zap.Logger

	mu      sync.Mutex
	lastErr error
}

func newSyncPersister(st storage.Storage, log *zap.Logger) *syncPersister {
	return &syncPersister{storage: st, log: log}
}

func (p *syncPersister) submit(ctx context.Context, s snapshot) {
	err := writeSnapshot(ctx, p.storage, s)
	if err != nil {
		p.log.Warn("persisting agendas failed", zap.Error(err))
	}
	p.mu.Lock()
	p.lastErr = err
	p.mu.Unlock()
}

func (p *syncPersister) flush(ctx context.Context) error {
	return p.err()
}

func (p *syncPersister) err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastErr
}

func (p *syncPersister) stop(ctx context.Context) error {
	return p.err()
}

// writeBehind writes snapshots from a background goroutine. Only the
// latest pending snapshot is kept; older unwritten ones are superseded.
type writeBehind struct {
	storage storage.Storage
	log     *zap.Logger

	wake    chan struct{}
	quit    chan struct{}
	stopped chan struct{}

	mu        sync.Mutex
	pending   *snapshot
	submitted uint64
	written   uint64
	lastErr   error
	progress  chan struct{} // closed and replaced after every write
	closed    bool
}

func newWriteBehind(st storage.Storage, log *zap.Logger) *writeBehind {
	w := &writeBehind{
		storage:  st,
		log:      log,
		wake:     make(chan struct{}, 1),
		quit:     make(chan struct{}),
		stopped:  make(chan struct{}),
		progress: make(chan struct{}),
	}
	go w.run()
	return w
}

func (w *writeBehind) submit(ctx context.Context, s snapshot) {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		w.log.Warn("snapshot submitted after close; dropped")
		return
	}
	w.pending = &s
	w.submitted++
	w.mu.Unlock()

	select {
	case w.wake <- struct{}{}:
	default:
	}
}

func (w *writeBehind) run() {
	defer close(w.stopped)
	for {
		select {
		case <-w.wake:
			w.drain()
		case <-w.quit:
			w.drain()
			return
		}
	}
}

func (w *writeBehind) drain() {
	for {
		w.mu.Lock()
		s := w.pending
		seq := w.submitted
		w.pending = nil
		w.mu.Unlock()
		if s == nil {
			return
		}

		err := writeSnapshot(context.Background(), w.storage, *s)
		if err != nil {
			w.log.Warn("persisting agendas failed", zap.Error(err))
		}

		w.mu.Lock()
		w.written = seq
		w.lastErr = err
		close(w.progress)
		w.progress = make(chan struct{})
		w.mu.Unlock()
	}
}

func (w *writeBehind) flush(ctx context.Context) error {
	w.mu.Lock()
	target := w.submitted
	w.mu.Unlock()

	for {
		w.mu.Lock()
		if w.written >= target {
			err := w.lastErr
			w.mu.Unlock()
			return err
		}
		progress := w.progress
		w.mu.Unlock()

		select {
		case <-progress:
		case <-w.stopped:
			w.mu.Lock()
			done := w.written >= target
			err := w.lastErr
			w.mu.Unlock()
			if !done {
				return fmt.Errorf("writer stopped before flush completed")
			}
			return err
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (w *writeBehind) err() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastErr
}

func (w *writeBehind) stop(ctx context.Context) error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return w.err()
	}
	w.closed = true
	w.mu.Unlock()

	close(w.quit)
	select {
	case <-w.stopped:
	case <-ctx.Done():
		return ctx.Err()
	}
	return w.err()
}
