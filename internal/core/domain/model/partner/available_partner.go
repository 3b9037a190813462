package partner

import (
	"errors"
	"fmt"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// ErrAvailablePartnerIsNotConstructed is returned for the zero AvailablePartner.
var ErrAvailablePartnerIsNotConstructed = errors.New("AvailablePartner must be created via NewAvailablePartner")

// ErrProfileMismatch is returned when an availability record is joined to another partner's profile.
var ErrProfileMismatch = errors.New("availability and profile belong to different partners")

// AvailablePartner is an availability record with status available joined to its profile.
// It is what the partner directory returns and what the candidate ranker consumes.
type AvailablePartner struct {
	availability Availability
	profile      Profile
}

// NewAvailablePartner joins an availability record to the profile of the same partner.
// It fails when the ids differ or the status is anything but available.
//
// Example:
//
//	availability, _ := partner.NewAvailability(id, partner.Available, nil)
//	profile, _ := partner.NewProfile(id, kernel.NewLocality("Pune", "Maharashtra"), kernel.Coordinates{})
//	p, err := partner.NewAvailablePartner(availability, profile)
func NewAvailablePartner(availability Availability, profile Profile) (AvailablePartner, error) {
	if !availability.PartnerID().IsEqual(profile.ID()) {
		return AvailablePartner{}, fmt.Errorf("%w: %s != %s", ErrProfileMismatch, availability.PartnerID(), profile.ID())
	}
	if !availability.Status().IsAvailable() {
		return AvailablePartner{}, errs.NewValueIsInvalidErrorWithCause(
			"availability status",
			fmt.Errorf("%s is not available", availability.Status()),
		)
	}
	return AvailablePartner{availability: availability, profile: profile}, nil
}

// Validate fails for a value that did not come from NewAvailablePartner.
func (p AvailablePartner) Validate() error {
	if p.profile.ID().Validate() != nil || !p.availability.Status().IsAvailable() {
		return ErrAvailablePartnerIsNotConstructed
	}
	return nil
}

func (p AvailablePartner) ID() kernel.UUID {
	return p.profile.ID()
}

func (p AvailablePartner) Availability() Availability {
	return p.availability
}

func (p AvailablePartner) Profile() Profile {
	return p.profile
}
