package ports

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/partner"
)

// PartnerRepository reads partner availability joined with profiles.
type PartnerRepository interface {
	// GetAllAvailable returns partners whose availability status is "available" and that
	// have a profile. Partners without a profile are left out. Returns an empty slice when none.
	GetAllAvailable(ctx context.Context) ([]partner.AvailablePartner, error)

	// TouchLastAssigned records that the partner received an assignment at the given time.
	TouchLastAssigned(ctx context.Context, partnerID kernel.UUID, at time.Time) error
}
