package search

import (
	"strings"
	"unicode"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/v2/mapping"
	bleveQuery "github.com/blevesearch/bleve/v2/search/query"

	"github.com/pders01/roost/internal/catalog"
)

// KeywordIndex is an in-memory full-text index over listing text. It narrows
// a catalog before the structured filter runs.
type KeywordIndex struct {
	idx  bleve.Index
	size int
}

// NewKeywordIndex builds a memory-only index over listings.
func NewKeywordIndex(listings []catalog.Listing) (*KeywordIndex, error) {
	idx, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, err
	}

	batch := idx.NewBatch()
	for i := range listings {
		l := &listings[i]
		if err := batch.Index(l.ID, map[string]any{
			"type":        string(l.Type),
			"location":    l.Location,
			"description": catalog.PlainDescription(l.Description),
			"tenure":      l.Tenure,
		}); err != nil {
			_ = idx.Close()
			return nil, err
		}
	}
	if err := idx.Batch(batch); err != nil {
		_ = idx.Close()
		return nil, err
	}
	return &KeywordIndex{idx: idx, size: len(listings)}, nil
}

func buildIndexMapping() mapping.IndexMapping {
	im := bleve.NewIndexMapping()
	im.DefaultAnalyzer = standard.Name

	dm := bleve.NewDocumentMapping()

	location := bleve.NewTextFieldMapping()
	location.Analyzer = standard.Name
	location.Store = false

	desc := bleve.NewTextFieldMapping()
	desc.Analyzer = standard.Name
	desc.Store = false
	desc.IncludeTermVectors = false

	kind := bleve.NewTextFieldMapping()
	kind.Analyzer = standard.Name
	kind.Store = false

	tenure := bleve.NewTextFieldMapping()
	tenure.Analyzer = standard.Name
	tenure.Store = false

	dm.AddFieldMappingsAt("location", location)
	dm.AddFieldMappingsAt("description", desc)
	dm.AddFieldMappingsAt("type", kind)
	dm.AddFieldMappingsAt("tenure", tenure)

	im.DefaultMapping = dm
	return im
}

// Match returns the ids of listings matching every keyword in text, best
// match first. Blank text matches nothing and returns nil.
func (k *KeywordIndex) Match(text string) ([]string, error) {
	tokens := tokenize(text)
	if len(tokens) == 0 {
		return nil, nil
	}

	// Every token must hit at least one field.
	conjuncts := make([]bleveQuery.Query, 0, len(tokens))
	for _, tok := range tokens {
		var qs []bleveQuery.Query
		for field, boost := range fieldBoosts {
			qm := bleve.NewMatchQuery(tok)
			qm.SetField(field)
			qm.SetBoost(boost)
			qs = append(qs, qm)
			qp := bleve.NewPrefixQuery(tok)
			qp.SetField(field)
			qp.SetBoost(boost * 0.8)
			qs = append(qs, qp)
		}
		conjuncts = append(conjuncts, bleve.NewDisjunctionQuery(qs...))
	}

	size := k.size
	if size == 0 {
		size = 1
	}
	req := bleve.NewSearchRequestOptions(bleve.NewConjunctionQuery(conjuncts...), size, 0, false)
	res, err := k.idx.Search(req)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(res.Hits))
	for _, h := range res.Hits {
		ids = append(ids, h.ID)
	}
	return ids, nil
}

var fieldBoosts = map[string]float64{
	"location":    3.0,
	"type":        2.0,
	"description": 1.0,
	"tenure":      0.5,
}

// DocCount reports the number of indexed listings.
func (k *KeywordIndex) DocCount() (int, error) {
	n, err := k.idx.DocCount()
	return int(n), err
}

func (k *KeywordIndex) Close() error {
	return k.idx.Close()
}

// Restrict keeps the listings whose id is in ids, preserving the order of
// listings rather than the order of ids.
func Restrict(listings []catalog.Listing, ids []string) []catalog.Listing {
	keep := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		keep[id] = struct{}{}
	}
	out := make([]catalog.Listing, 0, len(ids))
	for i := range listings {
		if _, ok := keep[listings[i].ID]; ok {
			out = append(out, listings[i])
		}
	}
	return out
}

// tokenize lowercases text and splits it on anything that is not a letter or
// digit. Single-character tokens are dropped.
func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	out := fields[:0]
	for _, f := range fields {
		if len([]rune(f)) > 1 {
			out = append(out, f)
		}
	}
	return out
}
