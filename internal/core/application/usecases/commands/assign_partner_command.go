package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrAssignPartnerCommandIsNotConstructed = errors.New(
	"AssignPartnerCommand must be created via NewAssignPartnerCommand constructor",
)

// AssignPartnerCommand asks for the best available partner to be bound to one order.
//
// Example:
//
//	cmd, err := NewAssignPartnerCommand(orderID)
//	if err != nil {
//	    return err
//	}
//	result, err := handler.Handle(ctx, cmd)
type AssignPartnerCommand struct {
	orderID kernel.UUID
	guard   guard.ConstructorGuard
}

// NewAssignPartnerCommand fails for the nil UUID.
func NewAssignPartnerCommand(orderID kernel.UUID) (AssignPartnerCommand, error) {
	if err := orderID.Validate(); err != nil {
		return AssignPartnerCommand{}, err
	}

	return AssignPartnerCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c AssignPartnerCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Validate ensures the command was created through the constructor.
func (c AssignPartnerCommand) Validate() error {
	return c.guard.Validate(ErrAssignPartnerCommandIsNotConstructed)
}
