package review

import (
	"errors"
	"sync"

	"github.com/gtmaihackathon/internal-link-suggester/internal/content"
	"github.com/gtmaihackathon/internal-link-suggester/internal/suggest"
)

// ErrSessionNotFound is returned for unknown session IDs.
var ErrSessionNotFound = errors.New("session not found")

// Analytics are process-wide usage counters.
type Analytics struct {
	Analyses       int     `json:"total_analyses"`
	Suggestions    int     `json:"total_suggestions"`
	Accepted       int     `json:"total_accepted"`
	Rejected       int     `json:"total_rejected"`
	AcceptanceRate float64 `json:"acceptance_rate"`
}

// DefaultMaxSessions bounds how many review sessions a store keeps.
const DefaultMaxSessions = 1000

// Store is an in-memory session registry safe for concurrent use. Once it
// holds its maximum number of sessions, creating another evicts the oldest.
type Store struct {
	mu          sync.Mutex
	sessions    map[string]*Session
	order       []string
	maxSessions int
	counts      Analytics
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithMaxSessions sets the session bound. Values below 1 are ignored.
func WithMaxSessions(n int) StoreOption {
	return func(s *Store) {
		if n > 0 {
			s.maxSessions = n
		}
	}
}

// NewStore creates an empty store.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		sessions:    make(map[string]*Session),
		maxSessions: DefaultMaxSessions,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create registers a new session and counts it as one analysis.
func (s *Store) Create(doc content.Document, suggestions []suggest.Suggestion) *Session {
	sess := NewSession(doc, suggestions)

	s.mu.Lock()
	defer s.mu.Unlock()
	for len(s.order) >= s.maxSessions {
		delete(s.sessions, s.order[0])
		s.order = s.order[1:]
	}
	s.sessions[sess.ID] = sess
	s.order = append(s.order, sess.ID)
	s.counts.Analyses++
	s.counts.Suggestions += len(suggestions)
	return sess
}

// RecordAnalysis counts an analysis that produced no suggestions and so
// opened no session.
func (s *Store) RecordAnalysis() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counts.Analyses++
}

// Len reports how many sessions the store holds.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// View calls fn with the session while holding the store lock.
func (s *Store) View(id string, fn func(*Session) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	return fn(sess)
}

// Accept records an accepted suggestion. Repeating a decision is not
// counted twice; changing it moves the count.
func (s *Store) Accept(id, url string) error {
	return s.decide(id, url, DecisionAccepted)
}

// Reject records a rejected suggestion.
func (s *Store) Reject(id, url string) error {
	return s.decide(id, url, DecisionRejected)
}

// Reset returns a suggestion to pending and withdraws its counted decision.
func (s *Store) Reset(id, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	prev := sess.DecisionFor(url)
	if err := sess.Reset(url); err != nil {
		return err
	}
	s.adjust(prev, -1)
	return nil
}

func (s *Store) decide(id, url string, d Decision) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	prev := sess.DecisionFor(url)
	if err := sess.decide(url, d); err != nil {
		return err
	}
	if prev == d {
		return nil
	}
	s.adjust(prev, -1)
	s.adjust(d, 1)
	return nil
}

func (s *Store) adjust(d Decision, delta int) {
	switch d {
	case DecisionAccepted:
		s.counts.Accepted += delta
	case DecisionRejected:
		s.counts.Rejected += delta
	}
}

// Delete forgets a session. Its decisions stay in the analytics.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return
	}
	delete(s.sessions, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Analytics returns a snapshot of the usage counters. The acceptance rate
// is a percentage of all suggestions made.
func (s *Store) Analytics() Analytics {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := s.counts
	if a.Suggestions > 0 {
		a.AcceptanceRate = float64(a.Accepted) / float64(a.Suggestions) * 100
	}
	return a
}
