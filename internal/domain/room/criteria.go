package room

import "github.com/google/uuid"

// Criteria is the basic room filter: a location, a minimum headcount and
// amenities that must all be present. Zero values match everything.
type Criteria struct {
	LocationID  *uuid.UUID
	MinCapacity int
	Amenities   []string
	ActiveOnly  bool
}

func (c Criteria) Satisfies(locationID uuid.UUID, capacity int, active bool, amenities Amenities) bool {
	if c.LocationID != nil && *c.LocationID != locationID {
		return false
	}
	if capacity < c.MinCapacity {
		return false
	}
	if c.ActiveOnly && !active {
		return false
	}
	for _, a := range c.Amenities {
		if !amenities.Has(a) {
			return false
		}
	}
	return true
}

func (c Criteria) Matches(r *Room) bool {
	return c.Satisfies(r.locationID, r.capacity, r.active, r.amenities)
}
