package search

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pders01/roost/internal/catalog"
)

// Form bounds used when a range field is left partially blank.
const (
	DefaultPriceMin    = 50000
	DefaultPriceMax    = 2000000
	DefaultBedroomsMin = 1
	DefaultBedroomsMax = 6
)

// FormDefaults are the bounds substituted for a blank end of a range.
type FormDefaults struct {
	PriceMin    int
	PriceMax    int
	BedroomsMin int
	BedroomsMax int
}

// DefaultFormDefaults returns the stock bounds.
func DefaultFormDefaults() FormDefaults {
	return FormDefaults{
		PriceMin:    DefaultPriceMin,
		PriceMax:    DefaultPriceMax,
		BedroomsMin: DefaultBedroomsMin,
		BedroomsMax: DefaultBedroomsMax,
	}
}

// FormInput is the raw text of a search form. Blank fields become no-op
// sentinels; a range with only one end filled uses the default for the other.
type FormInput struct {
	Type        string
	MinBedrooms string
	MaxBedrooms string
	MinPrice    string
	MaxPrice    string
	AddedWithin string
	AddedSince  string
	Postcode    string
}

// Query converts the form into a validated Query.
func (f FormInput) Query(d FormDefaults) (Query, error) {
	q := NewQuery()

	switch t := strings.TrimSpace(f.Type); {
	case t == "" || strings.EqualFold(t, string(TypeAny)):
	case strings.EqualFold(t, string(catalog.TypeHouse)):
		q.Type = catalog.TypeHouse
	case strings.EqualFold(t, string(catalog.TypeFlat)):
		q.Type = catalog.TypeFlat
	default:
		q.Type = catalog.PropertyType(t)
	}

	var err error
	if q.Bedrooms, err = parseRange("bedrooms", f.MinBedrooms, f.MaxBedrooms, d.BedroomsMin, d.BedroomsMax); err != nil {
		return Query{}, err
	}
	if q.Price, err = parseRange("price", f.MinPrice, f.MaxPrice, d.PriceMin, d.PriceMax); err != nil {
		return Query{}, err
	}

	if s := strings.TrimSpace(f.AddedWithin); s != "" && !strings.EqualFold(s, "any") {
		n, err := strconv.Atoi(strings.TrimSuffix(strings.ToLower(s), "d"))
		if err != nil {
			return Query{}, fmt.Errorf("%w: added within %q is not a number of days", ErrInvalidRange, s)
		}
		q.AddedWithin = AddedWithin(n)
	}

	if s := strings.TrimSpace(f.AddedSince); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return Query{}, fmt.Errorf("%w: added since %q must be YYYY-MM-DD", ErrInvalidRange, s)
		}
		q.AddedSince = t
	}

	q.PostcodeArea = NormalizePostcode(f.Postcode)

	if err := q.Validate(); err != nil {
		return Query{}, err
	}
	return q, nil
}

func parseRange(field, minText, maxText string, defMin, defMax int) (Range, error) {
	minText, maxText = strings.TrimSpace(minText), strings.TrimSpace(maxText)
	if minText == "" && maxText == "" {
		return Range{}, nil
	}
	lo, hi := defMin, defMax
	if minText != "" {
		v, err := parseAmount(minText)
		if err != nil {
			return Range{}, fmt.Errorf("%w: %s min %q", ErrInvalidRange, field, minText)
		}
		lo = v
	}
	if maxText != "" {
		v, err := parseAmount(maxText)
		if err != nil {
			return Range{}, fmt.Errorf("%w: %s max %q", ErrInvalidRange, field, maxText)
		}
		hi = v
	}
	return Between(lo, hi), nil
}

// parseAmount accepts "450000", "450,000" and "£450,000".
func parseAmount(s string) (int, error) {
	s = strings.TrimPrefix(s, "£")
	s = strings.ReplaceAll(s, ",", "")
	return strconv.Atoi(s)
}
