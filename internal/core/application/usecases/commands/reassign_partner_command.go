package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrReassignPartnerCommandIsNotConstructed = errors.New(
	"ReassignPartnerCommand must be created via NewReassignPartnerCommand constructor",
)

// ReassignPartnerCommand retries assignment for an order whose previous partner dropped it.
type ReassignPartnerCommand struct {
	orderID kernel.UUID
	guard   guard.ConstructorGuard
}

// NewReassignPartnerCommand fails for the nil UUID.
func NewReassignPartnerCommand(orderID kernel.UUID) (ReassignPartnerCommand, error) {
	if err := orderID.Validate(); err != nil {
		return ReassignPartnerCommand{}, err
	}

	return ReassignPartnerCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c ReassignPartnerCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c ReassignPartnerCommand) Validate() error {
	return c.guard.Validate(ErrReassignPartnerCommandIsNotConstructed)
}
