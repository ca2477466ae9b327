package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pders01/roost/internal/catalog"
)

func TestFormInputBlankIsIdentity(t *testing.T) {
	q, err := FormInput{}.Query(DefaultFormDefaults())
	require.NoError(t, err)
	assert.True(t, q.IsIdentity())
}

func TestFormInputFillsMissingBounds(t *testing.T) {
	q, err := FormInput{MinPrice: "£100,000", MaxBedrooms: "4"}.Query(DefaultFormDefaults())
	require.NoError(t, err)
	assert.Equal(t, Between(100000, DefaultPriceMax), q.Price)
	assert.Equal(t, Between(DefaultBedroomsMin, 4), q.Bedrooms)
}

func TestFormInputZeroBoundsStayActive(t *testing.T) {
	q, err := FormInput{MinPrice: "0", MaxPrice: "0"}.Query(DefaultFormDefaults())
	require.NoError(t, err)
	assert.Equal(t, Between(0, 0), q.Price)
	assert.False(t, q.IsIdentity())
	assert.Equal(t, "price=0-0", q.String())

	assert.Empty(t, Filter(defaultListings(t), q, referenceNow))
}

func TestFormInputFields(t *testing.T) {
	q, err := FormInput{
		Type:        "house",
		MinBedrooms: "2",
		MaxBedrooms: "4",
		MinPrice:    "100000",
		MaxPrice:    "500000",
		AddedWithin: "30",
		AddedSince:  "2023-01-01",
		Postcode:    " br5 ",
	}.Query(DefaultFormDefaults())
	require.NoError(t, err)

	assert.Equal(t, catalog.TypeHouse, q.Type)
	assert.Equal(t, AddedWithin(30), q.AddedWithin)
	assert.Equal(t, time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), q.AddedSince)
	assert.Equal(t, "BR5", q.PostcodeArea)
}

func TestFormInputAnyValues(t *testing.T) {
	q, err := FormInput{Type: "Any", AddedWithin: "any"}.Query(DefaultFormDefaults())
	require.NoError(t, err)
	assert.True(t, q.IsIdentity())
}

func TestFormInputErrors(t *testing.T) {
	tests := []struct {
		name string
		in   FormInput
	}{
		{"inverted price", FormInput{MinPrice: "500000", MaxPrice: "100000"}},
		{"min above default max", FormInput{MinBedrooms: "8"}},
		{"non-numeric", FormInput{MaxPrice: "lots"}},
		{"bad window", FormInput{AddedWithin: "soon"}},
		{"bad date", FormInput{AddedSince: "01/01/2023"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.in.Query(DefaultFormDefaults())
			assert.ErrorIs(t, err, ErrInvalidRange)
		})
	}
}

func TestAddedWithinLabels(t *testing.T) {
	labels := make([]string, 0, len(AddedWithinPresets))
	for _, p := range AddedWithinPresets {
		labels = append(labels, p.Label())
	}
	assert.Equal(t, []string{"Anytime", "Last 7 days", "Last 30 days", "Last 3 months", "Last year"}, labels)
}
