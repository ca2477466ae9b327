package search

import (
	"errors"
	"sync"

	"github.com/pders01/roost/internal/catalog"
)

// ErrNoSearchYet is returned when results are re-sorted before any query has
// been submitted.
var ErrNoSearchYet = errors.New("no search has been run yet")

// SessionState is the phase of a search session.
type SessionState int

const (
	NoSearchYet SessionState = iota
	HasResults
)

func (s SessionState) String() string {
	if s == HasResults {
		return "has-results"
	}
	return "no-search-yet"
}

// Session tracks the most recent query over a fixed catalog snapshot. Submit
// is its only state transition; SetSort re-derives the order from the last
// filtered set.
type Session struct {
	mu       sync.RWMutex
	listings []catalog.Listing
	engine   *Engine
	keywords KeywordMatcher

	state    SessionState
	query    Query
	text     string
	filtered []catalog.Listing
	sorted   []catalog.Listing
	sortBy   SortCriterion
}

// NewSession starts a session in the NoSearchYet state.
func NewSession(listings []catalog.Listing, engine *Engine) *Session {
	if engine == nil {
		engine = NewEngine()
	}
	return &Session{listings: listings, engine: engine, sortBy: SortFeatured}
}

// UseKeywords attaches the matcher consulted by SubmitWithKeywords.
func (s *Session) UseKeywords(m KeywordMatcher) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keywords = m
}

// Submit runs q and moves the session to HasResults with the featured order.
// On a validation error the previous state is kept.
func (s *Session) Submit(q Query) ([]catalog.Listing, error) {
	return s.SubmitWithKeywords(q, "")
}

// SubmitWithKeywords narrows the catalog by free text before running q.
// Blank text, or no attached matcher, behaves like Submit.
func (s *Session) SubmitWithKeywords(q Query, text string) ([]catalog.Listing, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	matcher := s.keywords
	s.mu.RUnlock()

	candidates, err := Narrow(s.listings, matcher, text)
	if err != nil {
		return nil, err
	}
	results, err := s.engine.Search(candidates, q)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = HasResults
	s.query = q
	s.text = text
	s.filtered = results
	s.sortBy = SortFeatured
	s.sorted = results
	return copyListings(results), nil
}

// SetSort reorders the last filtered result set.
func (s *Session) SetSort(c SortCriterion) ([]catalog.Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != HasResults {
		return nil, ErrNoSearchYet
	}
	sorted, err := Sort(s.filtered, c)
	if err != nil {
		return nil, err
	}
	s.sortBy = c
	s.sorted = sorted
	return copyListings(sorted), nil
}

// Results returns the current ordered results; nil before the first submit.
func (s *Session) Results() []catalog.Listing {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state != HasResults {
		return nil
	}
	return copyListings(s.sorted)
}

// Count is the number of current results.
func (s *Session) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sorted)
}

func (s *Session) State() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Session) Query() Query {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.query
}

// Keywords is the free text of the last submit.
func (s *Session) Keywords() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.text
}

func (s *Session) SortCriterion() SortCriterion {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortBy
}

func copyListings(in []catalog.Listing) []catalog.Listing {
	out := make([]catalog.Listing, len(in))
	copy(out, in)
	return out
}
