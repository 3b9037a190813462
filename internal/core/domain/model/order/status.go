package order

import "slices"

// Status is the commercial lifecycle of an order. It is owned by the ordering
// subsystem; this service only reads it.
type Status string

const (
	Pending    Status = "pending"
	Confirmed  Status = "confirmed"
	Dispatched Status = "dispatched"
	Delivered  Status = "delivered"
	Cancelled  Status = "cancelled"
)

// SweepableStatuses are the lifecycle statuses in which an unassigned order is
// picked up by the pending-order sweep.
func SweepableStatuses() []Status {
	return []Status{Pending, Confirmed, Dispatched}
}

// IsSweepable reports whether s is one of SweepableStatuses.
func (s Status) IsSweepable() bool {
	return slices.Contains(SweepableStatuses(), s)
}

func (s Status) String() string {
	return string(s)
}

// DeliveryStatus tracks the delivery-partner side of an order.
// The empty value means the order has never entered the assignment flow.
//
// Transitions driven by this service:
//
//	unset ─────────────┬──> assigned
//	pending_assignment ┤
//	rejected ──────────┘
//	unset ──> pending_assignment   (no partner could be found)
//
// rejected, delivered and completed are set by the fulfillment subsystem.
type DeliveryStatus string

const (
	DeliveryUnset             DeliveryStatus = ""
	DeliveryPendingAssignment DeliveryStatus = "pending_assignment"
	DeliveryAssigned          DeliveryStatus = "assigned"
	DeliveryRejected          DeliveryStatus = "rejected"
	DeliveryDelivered         DeliveryStatus = "delivered"
	DeliveryCompleted         DeliveryStatus = "completed"
)

// TerminalDeliveryStatuses are the statuses after which an order no longer
// counts towards a partner's active deliveries.
func TerminalDeliveryStatuses() []DeliveryStatus {
	return []DeliveryStatus{DeliveryDelivered, DeliveryCompleted}
}

// IsTerminal reports whether s is delivered or completed.
func (s DeliveryStatus) IsTerminal() bool {
	return slices.Contains(TerminalDeliveryStatuses(), s)
}

// IsEligibleForReassignment reports whether an unassigned order in this state may
// be handed to a new partner: rejected, pending_assignment or unset.
func (s DeliveryStatus) IsEligibleForReassignment() bool {
	switch s {
	case DeliveryRejected, DeliveryPendingAssignment, DeliveryUnset:
		return true
	default:
		return false
	}
}

// IsAwaitingAssignment reports whether the sweep should pick the order up:
// unset or pending_assignment.
func (s DeliveryStatus) IsAwaitingAssignment() bool {
	return s == DeliveryUnset || s == DeliveryPendingAssignment
}

func (s DeliveryStatus) String() string {
	if s == DeliveryUnset {
		return "unset"
	}
	return string(s)
}
