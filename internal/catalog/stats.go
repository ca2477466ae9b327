package catalog

// Stats summarises a set of listings for the dashboard header and `roost stats`.
type Stats struct {
	Total         int
	ByType        map[PropertyType]int
	MinPrice      int
	MaxPrice      int
	AveragePrice  int
	Cheapest      *Listing
	MostExpensive *Listing
}

// Houses is the number of House listings.
func (s Stats) Houses() int { return s.ByType[TypeHouse] }

// Flats is the number of Flat listings.
func (s Stats) Flats() int { return s.ByType[TypeFlat] }

// ComputeStats aggregates listings. An empty input yields zero prices and
// nil extremes.
func ComputeStats(listings []Listing) Stats {
	s := Stats{ByType: make(map[PropertyType]int)}
	if len(listings) == 0 {
		return s
	}

	s.Total = len(listings)
	var total int64
	for i := range listings {
		l := &listings[i]
		s.ByType[l.Type]++
		total += int64(l.Price)
		if s.Cheapest == nil || l.Price < s.Cheapest.Price {
			s.Cheapest = l
		}
		if s.MostExpensive == nil || l.Price > s.MostExpensive.Price {
			s.MostExpensive = l
		}
	}
	s.MinPrice = s.Cheapest.Price
	s.MaxPrice = s.MostExpensive.Price
	s.AveragePrice = int((total + int64(s.Total)/2) / int64(s.Total))
	return s
}
