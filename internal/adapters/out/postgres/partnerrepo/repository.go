package partnerrepo

import (
	"context"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/partner"

	"gorm.io/gorm"
)

// GormPartnerRepository implements ports.PartnerRepository using GORM.
type GormPartnerRepository struct {
	db *gorm.DB
}

// NewGormPartnerRepository binds the repository to db, which may be a transaction.
func NewGormPartnerRepository(db *gorm.DB) *GormPartnerRepository {
	return &GormPartnerRepository{db: db}
}

// GetAllAvailable inner-joins available partners with their profiles.
// The inner join drops partners that have no profile.
func (r *GormPartnerRepository) GetAllAvailable(ctx context.Context) ([]partner.AvailablePartner, error) {
	var rows []availablePartnerRow
	err := r.db.WithContext(ctx).
		Table("partner_availability AS a").
		Select("a.partner_id, a.status, a.last_assigned_at, p.city, p.state, p.latitude, p.longitude").
		Joins("JOIN partner_profiles AS p ON p.id = a.partner_id").
		Where("a.status = ?", string(partner.Available)).
		Order("a.partner_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list available partners: %w", err)
	}

	partners := make([]partner.AvailablePartner, 0, len(rows))
	for _, row := range rows {
		p, convErr := toDomain(row)
		if convErr != nil {
			return nil, convErr
		}
		partners = append(partners, p)
	}
	return partners, nil
}

// TouchLastAssigned sets last_assigned_at and updated_at for the partner.
func (r *GormPartnerRepository) TouchLastAssigned(ctx context.Context, partnerID kernel.UUID, at time.Time) error {
	if err := partnerID.Validate(); err != nil {
		return err
	}

	err := r.db.WithContext(ctx).
		Model(&AvailabilityDTO{}).
		Where("partner_id = ?", partnerID.Bytes()).
		Updates(map[string]any{
			"last_assigned_at": at,
			"updated_at":       at,
		}).Error
	if err != nil {
		return fmt.Errorf("touch partner %s: %w", partnerID, err)
	}
	return nil
}
