package queries

import (
	"context"
	"database/sql"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/partner"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAvailablePartnersQueryHandler reads available partners straight from the database.
// Least loaded partners come first.
type GetAvailablePartnersQueryHandler struct {
	db *gorm.DB
}

// NewGetAvailablePartnersQueryHandler creates the handler over a plain connection.
func NewGetAvailablePartnersQueryHandler(db *gorm.DB) GetAvailablePartnersQueryHandler {
	return GetAvailablePartnersQueryHandler{db: db}
}

// Handle runs one read-only query joining availability, profiles and active order counts.
// The result is never nil.
func (h GetAvailablePartnersQueryHandler) Handle(
	ctx context.Context,
	query GetAvailablePartnersQuery,
) ([]GetAvailablePartnersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	partners := make([]GetAvailablePartnersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			a.partner_id,
			p.city,
			p.state,
			p.latitude,
			p.longitude,
			a.last_assigned_at,
			COALESCE(l.active, 0) AS active_deliveries
		FROM partner_availability a
		JOIN partner_profiles p ON p.id = a.partner_id
		LEFT JOIN (
			SELECT delivery_partner_id, COUNT(*) AS active
			FROM orders
			WHERE delivery_partner_id IS NOT NULL
			  AND (delivery_status IS NULL OR delivery_status NOT IN (?, ?))
			GROUP BY delivery_partner_id
		) l ON l.delivery_partner_id = a.partner_id
		WHERE a.status = ?
		ORDER BY active_deliveries, a.partner_id
	`,
		string(order.DeliveryDelivered),
		string(order.DeliveryCompleted),
		string(partner.Available),
	).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			item           GetAvailablePartnersQueryResponse
			id             uuid.UUID
			lat, lon       sql.NullFloat64
			lastAssignedAt sql.NullTime
		)

		err = rows.Scan(&id, &item.City, &item.State, &lat, &lon, &lastAssignedAt, &item.ActiveDeliveries)
		if err != nil {
			return nil, err
		}

		partnerID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		item.ID = partnerID
		item.Coordinates = kernel.RestoreCoordinates(nullFloat(lat), nullFloat(lon))
		if lastAssignedAt.Valid {
			t := lastAssignedAt.Time.In(time.UTC)
			item.LastAssignedAt = &t
		}

		partners = append(partners, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return partners, nil
}

func nullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	return &v.Float64
}
