package partner

import "dispatch/internal/core/domain/model/kernel"

// Profile is the partner's declared base location. Any part of it may be unset.
type Profile struct {
	id          kernel.UUID
	locality    kernel.Locality
	coordinates kernel.Coordinates
}

// NewProfile creates a profile. Only the id is required; an empty locality or
// zero coordinates just make the partner rank lower.
//
// Example:
//
//	profile, err := partner.NewProfile(id, kernel.NewLocality("Pune", "Maharashtra"), kernel.Coordinates{})
func NewProfile(id kernel.UUID, locality kernel.Locality, coordinates kernel.Coordinates) (Profile, error) {
	if err := id.Validate(); err != nil {
		return Profile{}, err
	}
	return Profile{id: id, locality: locality, coordinates: coordinates}, nil
}

func (p Profile) ID() kernel.UUID {
	return p.id
}

func (p Profile) Locality() kernel.Locality {
	return p.locality
}

func (p Profile) Coordinates() kernel.Coordinates {
	return p.coordinates
}
