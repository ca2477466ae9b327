package search

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pders01/roost/internal/catalog"
)

// SortCriterion orders a result set.
type SortCriterion string

const (
	SortFeatured     SortCriterion = "featured"
	SortPriceAsc     SortCriterion = "price-asc"
	SortPriceDesc    SortCriterion = "price-desc"
	SortBedroomsDesc SortCriterion = "beds-desc"
	SortNewest       SortCriterion = "newest"
)

// SortCriteria lists every criterion in display order.
var SortCriteria = []SortCriterion{SortFeatured, SortPriceAsc, SortPriceDesc, SortBedroomsDesc, SortNewest}

// Label is the human-readable name shown in the sort control.
func (c SortCriterion) Label() string {
	switch c {
	case SortFeatured:
		return "Featured"
	case SortPriceAsc:
		return "Price (low to high)"
	case SortPriceDesc:
		return "Price (high to low)"
	case SortBedroomsDesc:
		return "Most bedrooms"
	case SortNewest:
		return "Newest"
	default:
		return string(c)
	}
}

// Next cycles to the following criterion, wrapping around.
func (c SortCriterion) Next() SortCriterion {
	for i, s := range SortCriteria {
		if s == c {
			return SortCriteria[(i+1)%len(SortCriteria)]
		}
	}
	return SortFeatured
}

// ParseSortCriterion maps a name (case-insensitive) to a criterion.
func ParseSortCriterion(s string) (SortCriterion, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "featured":
		return SortFeatured, nil
	case "price-asc", "price-ascending", "price-low":
		return SortPriceAsc, nil
	case "price-desc", "price-descending", "price-high":
		return SortPriceDesc, nil
	case "beds-desc", "bedrooms-desc", "bedrooms-descending", "beds":
		return SortBedroomsDesc, nil
	case "newest", "newest-first":
		return SortNewest, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSort, s)
	}
}

// Sort returns a new, stably ordered copy of results. Featured keeps the
// input order. The input slice is never reordered.
func Sort(results []catalog.Listing, c SortCriterion) ([]catalog.Listing, error) {
	out := make([]catalog.Listing, len(results))
	copy(out, results)

	var less func(a, b *catalog.Listing) bool
	switch c {
	case SortFeatured:
		return out, nil
	case SortPriceAsc:
		less = func(a, b *catalog.Listing) bool { return a.Price < b.Price }
	case SortPriceDesc:
		less = func(a, b *catalog.Listing) bool { return a.Price > b.Price }
	case SortBedroomsDesc:
		less = func(a, b *catalog.Listing) bool { return a.Bedrooms > b.Bedrooms }
	case SortNewest:
		less = func(a, b *catalog.Listing) bool { return a.AddedOn().After(b.AddedOn()) }
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSort, string(c))
	}

	sort.SliceStable(out, func(i, j int) bool { return less(&out[i], &out[j]) })
	return out, nil
}
