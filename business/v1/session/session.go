// Package session holds the list of notes shown to a user.
//
// A Session mirrors the store's live query in a single current value and forwards
// add and remove intents to the store without blocking the caller. Writes become
// visible once the store emits its next snapshot; the session never edits the
// list itself.
package session

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/ribgsilva/meditate/business/v1/note"
	"github.com/ribgsilva/meditate/platform/notify"
	"go.uber.org/zap"
)

// ErrLiveQueryEnded is reported when the store stops emitting while the session is still open.
// The list is frozen from then on.
var ErrLiveQueryEnded = errors.New("live query ended")

// Store is the durable side of a session.
type Store interface {
	Insert(ctx context.Context, n note.NewNote) (note.Note, error)
	Delete(ctx context.Context, n note.Note) error
	Observe(ctx context.Context) (<-chan []note.Note, error)
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger receiving write failures.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(s *Session) { s.log = log }
}

// WithClock sets the clock stamping new notes.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithErrorHandler sets a callback receiving each failed write, with the
// operation name ("add", "remove" or "observe").
func WithErrorHandler(fn func(op string, err error)) Option {
	return func(s *Session) { s.onError = fn }
}

// Session is the list of notes of one user, kept in sync with a Store.
type Session struct {
	store   Store
	log     *zap.SugaredLogger
	now     func() time.Time
	onError func(op string, err error)

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu      sync.RWMutex
	notes   []note.Note
	version uint64
	changed chan struct{}
	closed  bool
}

// New subscribes to the store's live query. The session starts with an empty
// list and follows the store until Close or until ctx is done.
func New(ctx context.Context, store Store, opts ...Option) (*Session, error) {
	sCtx, sCancel := context.WithCancel(ctx)
	s := &Session{
		store:   store,
		log:     zap.NewNop().Sugar(),
		now:     time.Now,
		ctx:     sCtx,
		cancel:  sCancel,
		notes:   []note.Note{},
		changed: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	live, err := store.Observe(sCtx)
	if err != nil {
		sCancel()
		return nil, fmt.Errorf("failed to observe notes: %w", err)
	}

	s.wg.Add(1)
	go s.follow(live)

	return s, nil
}

func (s *Session) follow(live <-chan []note.Note) {
	defer s.wg.Done()
	for {
		select {
		case <-s.ctx.Done():
			return
		case notes, ok := <-live:
			if !ok {
				if s.ctx.Err() == nil {
					s.report("observe", ErrLiveQueryEnded)
				}
				return
			}
			s.replace(notes)
		}
	}
}

// replace swaps the current list and wakes every watcher.
func (s *Session) replace(notes []note.Note) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if notes == nil {
		notes = []note.Note{}
	}
	s.notes = notes
	s.version++
	close(s.changed)
	s.changed = make(chan struct{})
}

// Notes returns the current list, newest first.
func (s *Session) Notes() []note.Note {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.notes)
}

// Watch delivers the current list, then every list replacing it. A slow reader
// skips to the latest list. The channel closes when ctx is done or the session closes.
func (s *Session) Watch(ctx context.Context) <-chan []note.Note {
	out := make(chan []note.Note, 1)

	go func() {
		defer close(out)

		var seen uint64
		first := true
		for {
			s.mu.RLock()
			notes, version, changed := s.notes, s.version, s.changed
			s.mu.RUnlock()

			if first || version != seen {
				notify.Offer(out, slices.Clone(notes))
				seen, first = version, false
			}

			select {
			case <-ctx.Done():
				return
			case <-s.ctx.Done():
				return
			case <-changed:
			}
		}
	}()

	return out
}

// AddNote stores a new note stamped with the current time. It returns at once;
// the note shows up in Notes after the store reports it.
func (s *Session) AddNote(content, tag string) {
	draft := note.NewNote{
		Content:   content,
		Tag:       tag,
		Timestamp: s.now().UnixMilli(),
	}
	s.dispatch("add", func(ctx context.Context) error {
		_, err := s.store.Insert(ctx, draft)
		return err
	})
}

// RemoveNote deletes n, matched by id. Removing a note that is already gone is a no-op.
func (s *Session) RemoveNote(n note.Note) {
	s.dispatch("remove", func(ctx context.Context) error {
		return s.store.Delete(ctx, n)
	})
}

func (s *Session) dispatch(op string, write func(ctx context.Context) error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		s.log.Warnw("session", "status", "write dropped, session closed", "op", op)
		return
	}
	s.wg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.wg.Done()
		if err := write(s.ctx); err != nil {
			if errors.Is(err, context.Canceled) && s.ctx.Err() != nil {
				return
			}
			s.report(op, err)
		}
	}()
}

func (s *Session) report(op string, err error) {
	s.log.Errorw("session", "status", op+" failed", "op", op, "ERROR", err)
	if s.onError != nil {
		s.onError(op, err)
	}
}

// Close releases the live query and waits for writes still running. Writes
// that did not reach the store are abandoned.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	s.cancel()
	s.wg.Wait()
}
