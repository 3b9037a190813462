package ports

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// OrderRepository is the persistence contract for orders as the assignment flow sees them.
// Orders are created and advanced by other subsystems; this service only binds partners.
type OrderRepository interface {
	// Get retrieves an order by id.
	// Returns an errs.ObjectNotFoundError when the order does not exist.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// AssignPartner is the conditional write that guarantees at most one partner per order:
	// it sets the partner, delivery status "assigned" and updated_at only while the order's
	// partner is still unset.
	//
	// Returns the partner id read back from the updated row, or nil when the guard matched
	// no row (another writer won, or the order already had a partner).
	AssignPartner(ctx context.Context, orderID, partnerID kernel.UUID, at time.Time) (*kernel.UUID, error)

	// MarkPendingAssignment sets delivery status "pending_assignment" while the partner is unset.
	// A no-op for orders that already have a partner.
	MarkPendingAssignment(ctx context.Context, orderID kernel.UUID, at time.Time) error

	// GetAllAwaitingAssignment lists orders with no partner, status pending, confirmed or
	// dispatched, and delivery status unset or pending_assignment.
	GetAllAwaitingAssignment(ctx context.Context) ([]*order.Order, error)

	// CountActiveDeliveries counts, per partner, orders bound to that partner whose delivery
	// status is neither delivered nor completed. Partners with no active delivery are absent.
	CountActiveDeliveries(ctx context.Context, partnerIDs []kernel.UUID) (map[kernel.UUID]int, error)
}
