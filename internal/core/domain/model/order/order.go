package order

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

// ErrOrderIsNotConstructed is returned when an Order was not created via RestoreOrder.
var ErrOrderIsNotConstructed = errors.New("Order must be created via RestoreOrder constructor")

// Order is a customer purchase that needs a delivery partner.
//
// Orders are created by the ordering subsystem; this service restores them from
// storage, reads them, and changes their assignment fields only through the
// conditional write in the order repository. It never deletes an order.
//
// Invariant kept by the assignment flow: a partner is bound exactly when the
// delivery status is assigned or a later stage.
type Order struct {
	id             kernel.UUID
	status         Status
	deliveryStatus DeliveryStatus
	partnerID      *kernel.UUID
	address        DeliveryAddress
	totalPrice     float64
	guard          guard.ConstructorGuard
}

// RestoreOrder rebuilds an order from persisted state.
//
// Example:
//
//	addr := order.NewDeliveryAddress(kernel.NewLocality("Pune", "Maharashtra"), coords)
//	o, err := order.RestoreOrder(id, order.Confirmed, order.DeliveryUnset, nil, addr, 499.0)
func RestoreOrder(
	id kernel.UUID,
	status Status,
	deliveryStatus DeliveryStatus,
	partnerID *kernel.UUID,
	address DeliveryAddress,
	totalPrice float64,
) (*Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if partnerID != nil {
		if err := partnerID.Validate(); err != nil {
			return nil, err
		}
	}

	return &Order{
		id:             id,
		status:         status,
		deliveryStatus: deliveryStatus,
		partnerID:      partnerID,
		address:        address,
		totalPrice:     totalPrice,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate fails for nil orders and orders not built by RestoreOrder.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) DeliveryStatus() DeliveryStatus {
	return o.deliveryStatus
}

// Partner returns the bound delivery partner, or nil when unassigned.
func (o *Order) Partner() *kernel.UUID {
	return o.partnerID
}

func (o *Order) IsAssigned() bool {
	return o.partnerID != nil
}

func (o *Order) Address() DeliveryAddress {
	return o.address
}

func (o *Order) TotalPrice() float64 {
	return o.totalPrice
}

// CanBeReassigned reports whether a new partner may be looked for:
// no partner is bound and the delivery status is rejected, pending_assignment or unset.
func (o *Order) CanBeReassigned() bool {
	return !o.IsAssigned() && o.deliveryStatus.IsEligibleForReassignment()
}

// IsAwaitingAssignment mirrors the sweep query: no partner, a sweepable lifecycle
// status, and a delivery status that is unset or pending_assignment.
func (o *Order) IsAwaitingAssignment() bool {
	return !o.IsAssigned() && o.status.IsSweepable() && o.deliveryStatus.IsAwaitingAssignment()
}
