package kernel

import "strings"

// Locality is the administrative area of an address or a partner: city and state/region.
// Either part may be empty.
type Locality struct {
	city  string
	state string
}

// NewLocality creates a locality. Values are stored as given; matching trims and folds case.
//
// Example:
//
//	l := kernel.NewLocality("Pune", "Maharashtra")
//	l.SameCity(kernel.NewLocality(" pune", "")) // true
func NewLocality(city, state string) Locality {
	return Locality{city: city, state: state}
}

// City returns the city as given, possibly empty.
func (l Locality) City() string {
	return l.city
}

// State returns the state or region as given, possibly empty.
func (l Locality) State() string {
	return l.state
}

// SameCity reports whether both cities are non-empty and equal after trimming, ignoring case.
func (l Locality) SameCity(other Locality) bool {
	return sameName(l.city, other.city)
}

// SameState reports whether both states are non-empty and equal after trimming, ignoring case.
func (l Locality) SameState(other Locality) bool {
	return sameName(l.state, other.state)
}

func sameName(a, b string) bool {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	return a != "" && b != "" && strings.EqualFold(a, b)
}
