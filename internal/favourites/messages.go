package favourites

import (
	"fmt"

	"github.com/pders01/roost/internal/catalog"
)

// Message is a request from the presentation layer to change the set.
type Message interface {
	favouritesMessage()
}

// AddToFavourites saves the listing with the given id.
type AddToFavourites struct {
	ID string
}

// RemoveFromFavourites drops the listing with the given id.
type RemoveFromFavourites struct {
	ID string
}

// ClearFavourites empties the set.
type ClearFavourites struct{}

func (AddToFavourites) favouritesMessage()      {}
func (RemoveFromFavourites) favouritesMessage() {}
func (ClearFavourites) favouritesMessage()      {}

// Resolver looks a listing up by id, typically (*catalog.Catalog).Get.
type Resolver func(id string) (catalog.Listing, bool)

// Apply performs msg against the store. Adds resolve the id to a full listing
// first; removes work on the stored copy and need no resolver. The returned
// bool reports whether the set changed.
func (s *Store) Apply(msg Message, resolve Resolver) (bool, error) {
	switch m := msg.(type) {
	case AddToFavourites:
		if resolve == nil {
			return false, fmt.Errorf("%w: %q (no resolver)", ErrUnknownListing, m.ID)
		}
		l, ok := resolve(m.ID)
		if !ok {
			return false, fmt.Errorf("%w: %q", ErrUnknownListing, m.ID)
		}
		return s.Add(l)
	case RemoveFromFavourites:
		return s.Remove(m.ID)
	case ClearFavourites:
		changed := s.Len() > 0
		return changed, s.Clear()
	default:
		return false, fmt.Errorf("unsupported favourites message %T", msg)
	}
}
