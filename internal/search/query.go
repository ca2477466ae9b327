package search

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pders01/roost/internal/catalog"
)

var (
	// ErrInvalidRange is returned for a query whose range has min > max or a
	// negative bound. The caller must correct the query and resubmit.
	ErrInvalidRange = errors.New("invalid range")
	// ErrUnknownSort is returned for an unrecognised sort criterion name.
	ErrUnknownSort = errors.New("unknown sort criterion")
)

// TypeAny is the wildcard property type: no type filter.
const TypeAny catalog.PropertyType = "Any"

// Range is an inclusive [Min, Max] bound. The zero value means "no filter";
// a range built with Between is always active, including Between(0, 0).
type Range struct {
	Min int
	Max int

	active bool
}

// Between builds an inclusive, active range.
func Between(min, max int) Range { return Range{Min: min, Max: max, active: true} }

// IsZero reports whether the range is the no-op sentinel.
func (r Range) IsZero() bool { return !r.active }

// Contains reports min <= v <= max. The no-op range contains everything.
func (r Range) Contains(v int) bool {
	if r.IsZero() {
		return true
	}
	return r.Min <= v && v <= r.Max
}

func (r Range) validate(field string) error {
	if r.IsZero() {
		return nil
	}
	if r.Min < 0 || r.Max < 0 {
		return fmt.Errorf("%w: %s bounds must not be negative (%d-%d)", ErrInvalidRange, field, r.Min, r.Max)
	}
	if r.Min > r.Max {
		return fmt.Errorf("%w: %s min %d is greater than max %d", ErrInvalidRange, field, r.Min, r.Max)
	}
	return nil
}

func (r Range) String() string {
	if r.IsZero() {
		return "any"
	}
	return fmt.Sprintf("%d-%d", r.Min, r.Max)
}

// AddedWithin limits results to listings added within the last N days.
// AnyTime (zero) disables the filter.
type AddedWithin int

// AnyTime is the no-op AddedWithin sentinel.
const AnyTime AddedWithin = 0

// AddedWithinPresets are the recency choices offered by the search form.
var AddedWithinPresets = []AddedWithin{AnyTime, 7, 30, 90, 365}

// Label is the human-readable name of the window.
func (a AddedWithin) Label() string {
	switch a {
	case AnyTime:
		return "Anytime"
	case 7:
		return "Last 7 days"
	case 30:
		return "Last 30 days"
	case 90:
		return "Last 3 months"
	case 365:
		return "Last year"
	default:
		return fmt.Sprintf("Last %d days", int(a))
	}
}

// Query is one search submission. The zero value matches every listing.
type Query struct {
	Type        catalog.PropertyType
	Bedrooms    Range
	Price       Range
	AddedWithin AddedWithin
	// AddedSince is an optional calendar-date floor; zero disables it.
	AddedSince time.Time
	// PostcodeArea is matched exactly against the area token extracted from
	// each listing's location. Blank disables the filter.
	PostcodeArea string
}

// NewQuery returns a query with every filter at its no-op value.
func NewQuery() Query {
	return Query{Type: TypeAny}
}

// Validate checks ranges and the recency window.
func (q Query) Validate() error {
	if err := q.Bedrooms.validate("bedrooms"); err != nil {
		return err
	}
	if err := q.Price.validate("price"); err != nil {
		return err
	}
	if q.AddedWithin < 0 {
		return fmt.Errorf("%w: added within %d days", ErrInvalidRange, int(q.AddedWithin))
	}
	return nil
}

// IsIdentity reports whether every filter is inactive.
func (q Query) IsIdentity() bool {
	return !q.typeActive() && q.Bedrooms.IsZero() && q.Price.IsZero() &&
		q.AddedWithin == AnyTime && q.AddedSince.IsZero() && NormalizePostcode(q.PostcodeArea) == ""
}

func (q Query) typeActive() bool {
	t := strings.TrimSpace(string(q.Type))
	return t != "" && !strings.EqualFold(t, string(TypeAny))
}

// String is a compact description used in logs and status lines.
func (q Query) String() string {
	var parts []string
	if q.typeActive() {
		parts = append(parts, "type="+string(q.Type))
	}
	if !q.Bedrooms.IsZero() {
		parts = append(parts, "beds="+q.Bedrooms.String())
	}
	if !q.Price.IsZero() {
		parts = append(parts, "price="+q.Price.String())
	}
	if q.AddedWithin != AnyTime {
		parts = append(parts, fmt.Sprintf("added<=%dd", int(q.AddedWithin)))
	}
	if !q.AddedSince.IsZero() {
		parts = append(parts, "since="+q.AddedSince.Format("2006-01-02"))
	}
	if pc := NormalizePostcode(q.PostcodeArea); pc != "" {
		parts = append(parts, "postcode="+pc)
	}
	if len(parts) == 0 {
		return "all listings"
	}
	return strings.Join(parts, " ")
}
