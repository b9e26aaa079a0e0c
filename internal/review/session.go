// Package review tracks a user's accept/reject decisions over a set of
// suggestions.
package review

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/gtmaihackathon/internal-link-suggester/internal/content"
	"github.com/gtmaihackathon/internal-link-suggester/internal/suggest"
)

// ErrUnknownSuggestion is returned when a decision names a URL that is not
// among the session's suggestions.
var ErrUnknownSuggestion = errors.New("no suggestion for url")

// Decision is the user's verdict on one suggestion.
type Decision string

const (
	DecisionPending  Decision = "pending"
	DecisionAccepted Decision = "accepted"
	DecisionRejected Decision = "rejected"
)

// Session holds one analysed document and the decisions made on it.
// A Session is not safe for concurrent use; Store serialises access.
type Session struct {
	ID          string
	Document    content.Document
	Suggestions []suggest.Suggestion
	CreatedAt   time.Time

	decisions map[string]Decision
}

// NewSession starts a review with every suggestion pending.
func NewSession(doc content.Document, suggestions []suggest.Suggestion) *Session {
	return &Session{
		ID:          uuid.New().String(),
		Document:    doc,
		Suggestions: suggestions,
		CreatedAt:   time.Now().UTC(),
		decisions:   make(map[string]Decision, len(suggestions)),
	}
}

// Accept marks the suggestion for url as accepted.
func (s *Session) Accept(url string) error {
	return s.decide(url, DecisionAccepted)
}

// Reject marks the suggestion for url as rejected.
func (s *Session) Reject(url string) error {
	return s.decide(url, DecisionRejected)
}

// Reset returns the suggestion for url to pending.
func (s *Session) Reset(url string) error {
	if !s.has(url) {
		return ErrUnknownSuggestion
	}
	delete(s.decisions, url)
	return nil
}

func (s *Session) decide(url string, d Decision) error {
	if !s.has(url) {
		return ErrUnknownSuggestion
	}
	s.decisions[url] = d
	return nil
}

func (s *Session) has(url string) bool {
	for _, sg := range s.Suggestions {
		if sg.DestinationURL == url {
			return true
		}
	}
	return false
}

// DecisionFor returns the current decision for url.
func (s *Session) DecisionFor(url string) Decision {
	if d, ok := s.decisions[url]; ok {
		return d
	}
	return DecisionPending
}

// Pending returns undecided suggestions in suggestion order.
func (s *Session) Pending() []suggest.Suggestion {
	return s.filter(DecisionPending)
}

// Accepted returns accepted suggestions in suggestion order.
func (s *Session) Accepted() []suggest.Suggestion {
	return s.filter(DecisionAccepted)
}

func (s *Session) filter(d Decision) []suggest.Suggestion {
	out := []suggest.Suggestion{}
	for _, sg := range s.Suggestions {
		if s.DecisionFor(sg.DestinationURL) == d {
			out = append(out, sg)
		}
	}
	return out
}

// Stats counts decisions.
type Stats struct {
	Total    int `json:"total"`
	Accepted int `json:"accepted"`
	Rejected int `json:"rejected"`
	Pending  int `json:"pending"`
}

// Stats returns the decision counts for the session.
func (s *Session) Stats() Stats {
	st := Stats{Total: len(s.Suggestions)}
	for _, sg := range s.Suggestions {
		switch s.DecisionFor(sg.DestinationURL) {
		case DecisionAccepted:
			st.Accepted++
		case DecisionRejected:
			st.Rejected++
		default:
			st.Pending++
		}
	}
	return st
}
