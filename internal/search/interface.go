package search

import (
	"strings"

	"github.com/pders01/roost/internal/catalog"
)

// Searcher is the query API consumed by the presentation layers.
type Searcher interface {
	Search(listings []catalog.Listing, q Query) ([]catalog.Listing, error)
}

// KeywordMatcher narrows listings by free text. Implemented by KeywordIndex.
type KeywordMatcher interface {
	Match(text string) ([]string, error)
}

// DebugStatser provides lightweight stats for visibility/debugging.
type DebugStatser interface {
	DocCount() (int, error)
}

var (
	_ Searcher       = (*Engine)(nil)
	_ KeywordMatcher = (*KeywordIndex)(nil)
	_ DebugStatser   = (*KeywordIndex)(nil)
)

// Narrow applies a keyword match, when text carries any keyword, before the caller
// runs its structured query. A nil matcher or keyword-free text returns
// listings unchanged.
func Narrow(listings []catalog.Listing, m KeywordMatcher, text string) ([]catalog.Listing, error) {
	if m == nil || len(tokenize(strings.TrimSpace(text))) == 0 {
		return listings, nil
	}
	ids, err := m.Match(text)
	if err != nil {
		return nil, err
	}
	return Restrict(listings, ids), nil
}
