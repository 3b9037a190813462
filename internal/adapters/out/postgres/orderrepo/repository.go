package orderrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository binds the repository to db, which may be a transaction.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// AssignPartner runs
//
//	UPDATE orders SET delivery_partner_id = ?, delivery_status = 'assigned', updated_at = ?
//	WHERE id = ? AND delivery_partner_id IS NULL
//	RETURNING delivery_partner_id
//
// A concurrent writer on the same row blocks on the row lock, re-evaluates the guard after
// the first commits and matches nothing.
func (r *GormOrderRepository) AssignPartner(
	ctx context.Context,
	orderID, partnerID kernel.UUID,
	at time.Time,
) (*kernel.UUID, error) {
	if err := errors.Join(orderID.Validate(), partnerID.Validate()); err != nil {
		return nil, err
	}

	var updated []OrderDTO
	result := r.db.WithContext(ctx).
		Model(&updated).
		Clauses(clause.Returning{Columns: []clause.Column{{Name: "delivery_partner_id"}}}).
		Where("id = ? AND delivery_partner_id IS NULL", orderID.Bytes()).
		Updates(map[string]any{
			"delivery_partner_id": partnerID.Bytes(),
			"delivery_status":     string(order.DeliveryAssigned),
			"updated_at":          at,
		})
	if result.Error != nil {
		return nil, fmt.Errorf("assign partner to order %s: %w", orderID, result.Error)
	}

	if result.RowsAffected == 0 || len(updated) == 0 || updated[0].DeliveryPartnerID == nil {
		return nil, nil
	}

	bound, err := kernel.UUIDFromBytes(updated[0].DeliveryPartnerID[:])
	if err != nil {
		return nil, err
	}
	return &bound, nil
}

// MarkPendingAssignment parks an unassigned order for a later sweep.
func (r *GormOrderRepository) MarkPendingAssignment(ctx context.Context, orderID kernel.UUID, at time.Time) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	err := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND delivery_partner_id IS NULL", orderID.Bytes()).
		Updates(map[string]any{
			"delivery_status": string(order.DeliveryPendingAssignment),
			"updated_at":      at,
		}).Error
	if err != nil {
		return fmt.Errorf("mark order %s pending assignment: %w", orderID, err)
	}
	return nil
}

// GetAllAwaitingAssignment lists unassigned orders the sweep should retry, oldest update first.
func (r *GormOrderRepository) GetAllAwaitingAssignment(ctx context.Context) ([]*order.Order, error) {
	statuses := make([]string, 0, len(order.SweepableStatuses()))
	for _, s := range order.SweepableStatuses() {
		statuses = append(statuses, string(s))
	}

	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Where("delivery_partner_id IS NULL").
		Where("status IN ?", statuses).
		Where("delivery_status IS NULL OR delivery_status = ?", string(order.DeliveryPendingAssignment)).
		Order("updated_at ASC, id ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainList(dtos)
}

type activeCountRow struct {
	PartnerID uuid.UUID
	Active    int
}

// CountActiveDeliveries counts non-terminal orders per partner in one grouped query.
func (r *GormOrderRepository) CountActiveDeliveries(
	ctx context.Context,
	partnerIDs []kernel.UUID,
) (map[kernel.UUID]int, error) {
	counts := make(map[kernel.UUID]int)
	if len(partnerIDs) == 0 {
		return counts, nil
	}

	ids := make([]string, 0, len(partnerIDs))
	for _, id := range partnerIDs {
		ids = append(ids, id.String())
	}
	terminal := make([]string, 0, len(order.TerminalDeliveryStatuses()))
	for _, s := range order.TerminalDeliveryStatuses() {
		terminal = append(terminal, string(s))
	}

	var rows []activeCountRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT delivery_partner_id AS partner_id, COUNT(*) AS active
		FROM orders
		WHERE delivery_partner_id = ANY(?::uuid[])
		  AND (delivery_status IS NULL OR delivery_status NOT IN ?)
		GROUP BY delivery_partner_id`,
		pq.Array(ids), terminal,
	).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("count active deliveries: %w", err)
	}

	for _, row := range rows {
		id, idErr := kernel.UUIDFromBytes(row.PartnerID[:])
		if idErr != nil {
			return nil, idErr
		}
		counts[id] = row.Active
	}
	return counts, nil
}
