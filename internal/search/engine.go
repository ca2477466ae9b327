package search

import (
	"strings"
	"time"

	"github.com/pders01/roost/internal/catalog"
	"github.com/pders01/roost/internal/debuglog"
)

// Engine runs queries against a listing sequence. It holds no result state
// and is safe for concurrent use.
type Engine struct {
	now func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the reference clock used for added-within cutoffs.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// NewEngine creates a search engine using the wall clock unless overridden.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Search validates q and returns the listings matching it, in input order.
// An empty result is not an error.
func (e *Engine) Search(listings []catalog.Listing, q Query) ([]catalog.Listing, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	results := Filter(listings, q, e.now())
	debuglog.WithFields(map[string]interface{}{
		"query":   q.String(),
		"matched": len(results),
		"total":   len(listings),
	}).Debugf("search executed")
	return results, nil
}

// Filter returns the subset of listings satisfying every active predicate of
// q, preserving relative order. The input is never modified. now is the
// reference instant for AddedWithin; the cutoff is derived once per call.
// Filter does not validate q.
func Filter(listings []catalog.Listing, q Query, now time.Time) []catalog.Listing {
	m := newMatcher(q, now)
	out := make([]catalog.Listing, 0, len(listings))
	for i := range listings {
		if m.match(&listings[i]) {
			out = append(out, listings[i])
		}
	}
	return out
}

// matcher is a query with its derived values computed up front.
type matcher struct {
	q          Query
	typeActive bool
	postcode   string
	cutoff     time.Time
	since      time.Time
}

func newMatcher(q Query, now time.Time) matcher {
	m := matcher{
		q:          q,
		typeActive: q.typeActive(),
		postcode:   NormalizePostcode(q.PostcodeArea),
	}
	if q.AddedWithin > AnyTime {
		m.cutoff = startOfDay(now).AddDate(0, 0, -int(q.AddedWithin))
	}
	if !q.AddedSince.IsZero() {
		m.since = startOfDay(q.AddedSince)
	}
	return m
}

func (m matcher) match(l *catalog.Listing) bool {
	if m.typeActive && !strings.EqualFold(string(l.Type), strings.TrimSpace(string(m.q.Type))) {
		return false
	}
	if !m.q.Bedrooms.Contains(l.Bedrooms) {
		return false
	}
	if !m.q.Price.Contains(l.Price) {
		return false
	}
	if !m.cutoff.IsZero() || !m.since.IsZero() {
		added := l.AddedOn()
		if added.IsZero() {
			return false
		}
		if !m.cutoff.IsZero() && added.Before(m.cutoff) {
			return false
		}
		if !m.since.IsZero() && added.Before(m.since) {
			return false
		}
	}
	if m.postcode != "" {
		area, ok := ExtractPostcodeArea(l.Location)
		if !ok || area != m.postcode {
			return false
		}
	}
	return true
}

// startOfDay truncates t to midnight UTC of its calendar date, matching the
// representation of catalog added dates.
func startOfDay(t time.Time) time.Time {
	y, mo, d := t.Date()
	return time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)
}
