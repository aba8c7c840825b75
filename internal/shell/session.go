package shell

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"k8s.io/utils/clock"

	"alfredoptarigan/cv-warehouse/internal/console"
)

const (
	SessionCookie = "cv_console_session"

	DefaultSessionIdle = 30 * time.Minute
	DefaultMaxSessions = 1000
)

// Factory builds the console for a new browser session.
type Factory func(dialogs console.Dialogs) (*console.Console, error)

// sessionDialogs answers confirmations with the decision the browser sent
// along with the triggering event. Alerts reach the browser as surface
// notices, so nothing else happens here.
type sessionDialogs struct {
	mu      sync.Mutex
	approve bool
}

func (d *sessionDialogs) Confirm(message string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	zap.S().Named("shell").Debugw("confirmation requested", "message", message, "approved", d.approve)
	return d.approve
}

func (d *sessionDialogs) Alert(string) {}

func (d *sessionDialogs) setApproval(approve bool) {
	d.mu.Lock()
	d.approve = approve
	d.mu.Unlock()
}

type session struct {
	id      string
	console *console.Console
	dialogs *sessionDialogs
	// events holds one browser event at a time so an approval is paired
	// with the delete it was sent with.
	events sync.Mutex
	// lastSeen is guarded by the store mutex.
	lastSeen time.Time
}

type sessionStore struct {
	mu       sync.Mutex
	sessions map[string]*session
	factory  Factory
	clock    clock.PassiveClock
	idle     time.Duration
	max      int
}

func newSessionStore(factory Factory, clk clock.PassiveClock, idle time.Duration, max int) *sessionStore {
	return &sessionStore{
		sessions: make(map[string]*session),
		factory:  factory,
		clock:    clk,
		idle:     idle,
		max:      max,
	}
}

// get returns the session for id, creating a new one when id is unknown.
// Sessions idle for longer than the idle period are closed first, and the
// least recently seen one makes room when the store is full.
func (s *sessionStore) get(id string) (*session, error) {
	now := s.clock.Now()

	s.mu.Lock()
	expired := s.expireLocked(now)
	sess, ok := s.sessions[id]
	if ok {
		sess.lastSeen = now
		s.mu.Unlock()
		closeSessions(expired)
		return sess, nil
	}
	if s.max > 0 && len(s.sessions) >= s.max {
		expired = append(expired, s.evictOldestLocked())
	}
	s.mu.Unlock()
	closeSessions(expired)

	dialogs := &sessionDialogs{}
	c, err := s.factory(dialogs)
	if err != nil {
		return nil, err
	}
	sess = &session{
		id:       uuid.NewString(),
		console:  c,
		dialogs:  dialogs,
		lastSeen: now,
	}

	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()
	zap.S().Named("shell").Infow("console session started", "session", sess.id)
	return sess, nil
}

func (s *sessionStore) expireLocked(now time.Time) []*session {
	if s.idle <= 0 {
		return nil
	}
	var expired []*session
	for id, sess := range s.sessions {
		if now.Sub(sess.lastSeen) > s.idle {
			expired = append(expired, sess)
			delete(s.sessions, id)
		}
	}
	return expired
}

func (s *sessionStore) evictOldestLocked() *session {
	var oldest *session
	for _, sess := range s.sessions {
		if oldest == nil || sess.lastSeen.Before(oldest.lastSeen) {
			oldest = sess
		}
	}
	delete(s.sessions, oldest.id)
	return oldest
}

func (s *sessionStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func closeSessions(sessions []*session) {
	for _, sess := range sessions {
		zap.S().Named("shell").Infow("console session closed", "session", sess.id, "last_seen", sess.lastSeen)
		sess.console.Close()
	}
}

func (s *sessionStore) closeAll() {
	s.mu.Lock()
	all := make([]*session, 0, len(s.sessions))
	for id, sess := range s.sessions {
		all = append(all, sess)
		delete(s.sessions, id)
	}
	s.mu.Unlock()
	closeSessions(all)
}
