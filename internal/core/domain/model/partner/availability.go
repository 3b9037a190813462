package partner

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
)

// AvailabilityStatus is what a partner currently declares about itself.
type AvailabilityStatus string

const (
	Available   AvailabilityStatus = "available"
	Unavailable AvailabilityStatus = "unavailable"
	Busy        AvailabilityStatus = "busy"
)

func (s AvailabilityStatus) IsAvailable() bool {
	return s == Available
}

// Availability is one partner-availability record. The partner-facing subsystem owns it;
// the assignment flow only updates LastAssignedAt.
type Availability struct {
	partnerID      kernel.UUID
	status         AvailabilityStatus
	lastAssignedAt *time.Time
}

// NewAvailability creates an availability record. lastAssignedAt is nil for a partner never assigned.
func NewAvailability(partnerID kernel.UUID, status AvailabilityStatus, lastAssignedAt *time.Time) (Availability, error) {
	if err := partnerID.Validate(); err != nil {
		return Availability{}, err
	}
	return Availability{partnerID: partnerID, status: status, lastAssignedAt: lastAssignedAt}, nil
}

func (a Availability) PartnerID() kernel.UUID {
	return a.partnerID
}

func (a Availability) Status() AvailabilityStatus {
	return a.status
}

// LastAssignedAt returns nil for a partner that was never assigned.
func (a Availability) LastAssignedAt() *time.Time {
	return a.lastAssignedAt
}

// LastAssignedAtMillis is the Unix epoch in milliseconds, or 0 when never assigned.
func (a Availability) LastAssignedAtMillis() int64 {
	if a.lastAssignedAt == nil {
		return 0
	}
	return a.lastAssignedAt.UnixMilli()
}
