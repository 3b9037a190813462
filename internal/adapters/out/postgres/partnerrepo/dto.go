// Package partnerrepo reads partner availability joined with partner profiles.
package partnerrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/partner"

	"github.com/google/uuid"
)

// AvailabilityDTO is a row of partner_availability, owned by the partner-facing subsystem.
type AvailabilityDTO struct {
	PartnerID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	Status         string    `gorm:"type:varchar(16);not null;index"`
	LastAssignedAt *time.Time
	UpdatedAt      time.Time
}

func (AvailabilityDTO) TableName() string {
	return "partner_availability"
}

// ProfileDTO is a row of partner_profiles.
type ProfileDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	City      string    `gorm:"type:varchar(128)"`
	State     string    `gorm:"type:varchar(128)"`
	Latitude  *float64  `gorm:"type:double precision"`
	Longitude *float64  `gorm:"type:double precision"`
	UpdatedAt time.Time
}

func (ProfileDTO) TableName() string {
	return "partner_profiles"
}

// availablePartnerRow is one row of the availability/profile join.
type availablePartnerRow struct {
	PartnerID      uuid.UUID
	Status         string
	LastAssignedAt *time.Time
	City           string
	State          string
	Latitude       *float64
	Longitude      *float64
}

func toDomain(row availablePartnerRow) (partner.AvailablePartner, error) {
	id, err := kernel.UUIDFromBytes(row.PartnerID[:])
	if err != nil {
		return partner.AvailablePartner{}, err
	}

	availability, err := partner.NewAvailability(id, partner.AvailabilityStatus(row.Status), row.LastAssignedAt)
	if err != nil {
		return partner.AvailablePartner{}, err
	}

	profile, err := partner.NewProfile(
		id,
		kernel.NewLocality(row.City, row.State),
		kernel.RestoreCoordinates(row.Latitude, row.Longitude),
	)
	if err != nil {
		return partner.AvailablePartner{}, err
	}

	return partner.NewAvailablePartner(availability, profile)
}
