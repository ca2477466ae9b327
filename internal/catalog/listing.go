package catalog

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// PropertyType is the listing category, e.g. House or Flat.
type PropertyType string

const (
	TypeHouse PropertyType = "House"
	TypeFlat  PropertyType = "Flat"
)

// Listing is a single property in the catalog. Listings are read-only once
// loaded; favourites keep full copies of them.
type Listing struct {
	ID          string       `json:"id" toml:"id" validate:"required"`
	Type        PropertyType `json:"type" toml:"type" validate:"required"`
	Bedrooms    int          `json:"bedrooms" toml:"bedrooms" validate:"min=1,max=10"`
	Price       int          `json:"price" toml:"price" validate:"gt=0"`
	Tenure      string       `json:"tenure,omitempty" toml:"tenure"`
	Description string       `json:"description" toml:"description"`
	Location    string       `json:"location" toml:"location" validate:"required"`
	Picture     string       `json:"picture,omitempty" toml:"picture"`
	Images      []string     `json:"images,omitempty" toml:"images"`
	FloorPlan   string       `json:"floor_plan,omitempty" toml:"floor_plan"`
	URL         string       `json:"url,omitempty" toml:"url"`
	Added       AddedDate    `json:"added" toml:"added"`
}

// AddedOn returns the calendar date the listing entered the catalog, at
// midnight UTC. Listings that went through Load always have a valid date; an
// unparseable date yields the zero time.
func (l Listing) AddedOn() time.Time {
	t, err := l.Added.Date()
	if err != nil {
		return time.Time{}
	}
	return t
}

// Media returns every media reference of the listing in display order, with
// the primary picture first and duplicates removed.
func (l Listing) Media() []string {
	var refs []string
	seen := make(map[string]bool)
	add := func(ref string) {
		ref = strings.TrimSpace(ref)
		if ref == "" || seen[ref] {
			return
		}
		seen[ref] = true
		refs = append(refs, ref)
	}
	add(l.Picture)
	for _, img := range l.Images {
		add(img)
	}
	add(l.FloorPlan)
	return refs
}

// AddedDate is the date a listing was added, as written in catalog files:
// a year, a month given by name ("October", "Oct") or number, and a day.
type AddedDate struct {
	Year  int   `json:"year" toml:"year"`
	Month Month `json:"month" toml:"month"`
	Day   int   `json:"day" toml:"day"`
}

// Date converts the added date to a time.Time at midnight UTC.
func (d AddedDate) Date() (time.Time, error) {
	m, err := d.Month.Parse()
	if err != nil {
		return time.Time{}, err
	}
	if d.Year <= 0 {
		return time.Time{}, fmt.Errorf("%w: year %d", ErrInvalidDate, d.Year)
	}
	t := time.Date(d.Year, m, d.Day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes overflow (Feb 30 -> Mar 2); reject it instead.
	if t.Year() != d.Year || t.Month() != m || t.Day() != d.Day {
		return time.Time{}, fmt.Errorf("%w: %d %s %d is not a calendar date", ErrInvalidDate, d.Day, m, d.Year)
	}
	return t, nil
}

// NewAddedDate builds an AddedDate from a time value.
func NewAddedDate(t time.Time) AddedDate {
	return AddedDate{Year: t.Year(), Month: Month(t.Month().String()), Day: t.Day()}
}

// Month holds the raw month of an added date.
type Month string

var monthsByName = func() map[string]time.Month {
	m := make(map[string]time.Month, 24)
	for i := time.January; i <= time.December; i++ {
		name := strings.ToLower(i.String())
		m[name] = i
		m[name[:3]] = i
	}
	m["sept"] = time.September
	return m
}()

// Parse resolves the month by full name, three-letter abbreviation or number
// (1-12). Matching is case-insensitive.
func (m Month) Parse() (time.Month, error) {
	s := strings.ToLower(strings.TrimSpace(string(m)))
	if s == "" {
		return 0, fmt.Errorf("%w: missing month", ErrInvalidDate)
	}
	if month, ok := monthsByName[s]; ok {
		return month, nil
	}
	if n, err := strconv.Atoi(s); err == nil && n >= 1 && n <= 12 {
		return time.Month(n), nil
	}
	return 0, fmt.Errorf("%w: unknown month %q", ErrInvalidDate, string(m))
}

// UnmarshalJSON accepts both "October" and 10.
func (m *Month) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*m = Month(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("%w: month must be a name or number", ErrInvalidDate)
	}
	*m = Month(n.String())
	return nil
}

// UnmarshalText lets TOML decoders fill a Month from a string value.
func (m *Month) UnmarshalText(text []byte) error {
	*m = Month(text)
	return nil
}
