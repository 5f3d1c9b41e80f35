package handlers

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/csg33k/salesproj/internal/adapters/htmlview"
	"github.com/csg33k/salesproj/internal/page"
	"github.com/csg33k/salesproj/internal/ports"
)

// SessionCookie names the cookie carrying the page session id.
const SessionCookie = "salesproj_session"

// sweepInterval bounds how often Get scans the whole store for idle sessions.
const sweepInterval = time.Minute

// Session is the server-side state of one browser page.
type Session struct {
	ID         string
	View       *htmlview.Page
	Controller *page.Controller
	Dispatcher *page.Dispatcher

	lastSeen time.Time
}

// SessionStore holds page sessions in memory, dropping those idle for longer
// than the TTL.
type SessionStore struct {
	ttl   time.Duration
	clock ports.Clock
	build func(ports.View) *page.Controller

	mu        sync.Mutex
	sessions  map[string]*Session
	lastSweep time.Time
}

// NewSessionStore returns a store whose sessions get a controller from build.
func NewSessionStore(ttl time.Duration, clock ports.Clock, build func(ports.View) *page.Controller) *SessionStore {
	if clock == nil {
		clock = page.SystemClock{}
	}
	return &SessionStore{ttl: ttl, clock: clock, build: build, sessions: map[string]*Session{}}
}

// Get returns the live session for id and marks it as used. It also drops
// idle sessions, at most once per sweepInterval.
func (s *SessionStore) Get(id string) (*Session, bool) {
	s.mu.Lock()
	now := s.clock.Now()
	var evicted []*Session
	if now.Sub(s.lastSweep) >= sweepInterval {
		evicted = s.sweepLocked(now)
	}
	sess, ok := s.sessions[id]
	if ok && s.expired(sess, now) {
		delete(s.sessions, id)
		evicted = append(evicted, sess)
		sess, ok = nil, false
	}
	if ok {
		sess.lastSeen = now
	}
	s.mu.Unlock()

	release(evicted)
	return sess, ok
}

// Create starts a new session with its own view, controller and dispatcher.
func (s *SessionStore) Create() *Session {
	view := htmlview.New()
	ctrl := s.build(view)
	d := page.NewDispatcher()
	ctrl.Bind(d)

	s.mu.Lock()
	now := s.clock.Now()
	evicted := s.sweepLocked(now)
	sess := &Session{
		ID:         uuid.NewString(),
		View:       view,
		Controller: ctrl,
		Dispatcher: d,
		lastSeen:   now,
	}
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	release(evicted)
	return sess
}

func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *SessionStore) sweepLocked(now time.Time) []*Session {
	s.lastSweep = now
	var evicted []*Session
	for id, sess := range s.sessions {
		if s.expired(sess, now) {
			delete(s.sessions, id)
			evicted = append(evicted, sess)
		}
	}
	return evicted
}

func (s *SessionStore) expired(sess *Session, now time.Time) bool {
	return s.ttl > 0 && now.Sub(sess.lastSeen) > s.ttl
}

// release cancels the pending notification timers of dropped sessions.
func release(sessions []*Session) {
	for _, sess := range sessions {
		sess.Controller.Notifier.Clear()
	}
}
