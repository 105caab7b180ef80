package wizard

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session expired")
)

type session struct {
	ctrl     *Controller
	lastSeen time.Time
}

// Store maps session ids to controllers. A session expires after ttl
// without access; expiry closes its controller.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*session
	ttl      time.Duration
	deps     Deps

	stop     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

func NewStore(ttl time.Duration, deps Deps) *Store {
	if deps.Refs == nil {
		deps.Refs = NewReferences()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &Store{
		sessions: make(map[string]*session),
		ttl:      ttl,
		deps:     deps,
		stop:     make(chan struct{}),
	}
}

// Refs returns the reference table shared by all sessions.
func (s *Store) Refs() *References {
	return s.deps.Refs
}

func (s *Store) Create() *Controller {
	id := uuid.NewString()
	ctrl := NewController(id, s.deps)

	s.mu.Lock()
	s.sessions[id] = &session{ctrl: ctrl, lastSeen: s.deps.Now()}
	s.mu.Unlock()

	s.deps.Logger.Debug().Str("session_id", id).Msg("session created")
	return ctrl
}

// Get returns the controller for id and refreshes its expiry.
func (s *Store) Get(id string) (*Controller, error) {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	if !ok {
		s.mu.Unlock()
		return nil, ErrSessionNotFound
	}
	now := s.deps.Now()
	if s.expired(sess, now) {
		delete(s.sessions, id)
		s.mu.Unlock()
		sess.ctrl.Close()
		return nil, ErrSessionExpired
	}
	sess.lastSeen = now
	s.mu.Unlock()
	return sess.ctrl, nil
}

// GetOrCreate returns the controller for id, or a fresh session when id is
// unknown or expired. created reports which happened.
func (s *Store) GetOrCreate(id string) (ctrl *Controller, created bool) {
	if id != "" {
		if ctrl, err := s.Get(id); err == nil {
			return ctrl, false
		}
	}
	return s.Create(), true
}

// Delete closes and forgets a session. Unknown ids are ignored.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if ok {
		sess.ctrl.Close()
	}
}

// Cleanup closes every expired session and returns how many were removed.
func (s *Store) Cleanup() int {
	now := s.deps.Now()
	var expired []*Controller

	s.mu.Lock()
	for id, sess := range s.sessions {
		if s.expired(sess, now) {
			delete(s.sessions, id)
			expired = append(expired, sess.ctrl)
		}
	}
	s.mu.Unlock()

	for _, ctrl := range expired {
		ctrl.Close()
	}
	if len(expired) > 0 {
		s.deps.Logger.Info().Int("removed", len(expired)).Msg("expired sessions cleaned up")
	}
	return len(expired)
}

// StartCleanupTicker runs Cleanup every interval until ctx is done or the
// store is closed.
func (s *Store) StartCleanupTicker(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-s.stop:
				return
			case <-ticker.C:
				s.Cleanup()
			}
		}
	}()
}

func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Close stops the cleanup ticker, closes every session and waits for their
// in-flight generations to return.
func (s *Store) Close() {
	s.stopOnce.Do(func() { close(s.stop) })
	s.wg.Wait()

	s.mu.Lock()
	ctrls := make([]*Controller, 0, len(s.sessions))
	for id, sess := range s.sessions {
		ctrls = append(ctrls, sess.ctrl)
		delete(s.sessions, id)
	}
	s.mu.Unlock()

	for _, ctrl := range ctrls {
		ctrl.Close()
	}
	for _, ctrl := range ctrls {
		ctrl.Wait()
	}
}

func (s *Store) expired(sess *session, now time.Time) bool {
	return s.ttl > 0 && now.Sub(sess.lastSeen) > s.ttl
}
