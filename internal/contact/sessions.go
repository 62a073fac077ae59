package contact

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// FormFactory builds the form for a newly mounted widget.
type FormFactory func(sessionID string) (*Form, error)

type session struct {
	form     *Form
	lastSeen time.Time
}

// Sessions keeps one form per mounted widget in memory. Every page render
// mounts a fresh form under its own id, so drafts are never shared between
// tabs or carried over a reload.
type Sessions struct {
	mu      sync.Mutex
	forms   map[string]*session
	factory FormFactory
	ttl     time.Duration
	now     func() time.Time
}

// NewSessions constructs a session store. Sessions idle for longer than ttl
// are dropped by Sweep; a zero ttl keeps them forever.
func NewSessions(factory FormFactory, ttl time.Duration) *Sessions {
	return &Sessions{
		forms:   make(map[string]*session),
		factory: factory,
		ttl:     ttl,
		now:     time.Now,
	}
}

// Mount creates an empty, idle form under a new id.
func (s *Sessions) Mount() (string, *Form, error) {
	id := uuid.NewString()
	form, err := s.Get(id)
	if err != nil {
		return "", nil, err
	}
	return id, form, nil
}

// Get returns the form for id, creating an empty one when it is unknown,
// e.g. after the page sat idle past the sweep.
func (s *Sessions) Get(id string) (*Form, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.forms[id]; ok {
		sess.lastSeen = s.now()
		return sess.form, nil
	}

	form, err := s.factory(id)
	if err != nil {
		return nil, err
	}
	s.forms[id] = &session{form: form, lastSeen: s.now()}
	return form, nil
}

// Lookup returns the form for id without creating one.
func (s *Sessions) Lookup(id string) (*Form, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.forms[id]
	if !ok {
		return nil, false
	}
	sess.lastSeen = s.now()
	return sess.form, true
}

// Len returns the number of mounted forms.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.forms)
}

// Sweep drops idle sessions and returns how many were removed. Forms with a
// submission still in flight stay until it resolves.
func (s *Sessions) Sweep() int {
	if s.ttl <= 0 {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.ttl)
	removed := 0
	for id, sess := range s.forms {
		if sess.lastSeen.After(cutoff) || sess.form.InFlight() {
			continue
		}
		delete(s.forms, id)
		removed++
	}
	return removed
}

// Run sweeps every interval until ctx ends.
func (s *Sessions) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 || s.ttl <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}

// Wait blocks until every session's in-flight submissions have resolved.
func (s *Sessions) Wait() {
	s.mu.Lock()
	forms := make([]*Form, 0, len(s.forms))
	for _, sess := range s.forms {
		forms = append(forms, sess.form)
	}
	s.mu.Unlock()

	for _, f := range forms {
		f.Wait()
	}
}
