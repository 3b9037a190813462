package commands

import (
	"context"
	"errors"

	"dispatch/internal/pkg/errs"
)

// Assigner runs one assignment attempt; AssignPartnerCommandHandler implements it.
type Assigner interface {
	Handle(ctx context.Context, command AssignPartnerCommand) (AssignmentResult, error)
}

// ReassignPartnerCommandHandler gates assignment on the order's delivery status.
// Only orders with no partner and a delivery status of rejected, pending_assignment
// or unset are passed on to the Assigner.
type ReassignPartnerCommandHandler struct {
	uowFactory OrderUoWFactory
	assigner   Assigner
}

// NewReassignPartnerCommandHandler creates the handler. assigner is normally an AssignPartnerCommandHandler.
//
// Example:
//
//	assign := commands.NewAssignPartnerCommandHandler(uowFactory, publisher, observer, logger)
//	reassign := commands.NewReassignPartnerCommandHandler(uowFactory, assign)
//	result, err := reassign.Handle(ctx, cmd)
func NewReassignPartnerCommandHandler(uowFactory OrderUoWFactory, assigner Assigner) ReassignPartnerCommandHandler {
	return ReassignPartnerCommandHandler{
		uowFactory: uowFactory,
		assigner:   assigner,
	}
}

// Handle returns StatusStillAssigned or StatusNoReassignmentNeeded without writing when the
// order is not eligible, and otherwise the outcome of one assignment attempt.
func (h ReassignPartnerCommandHandler) Handle(
	ctx context.Context,
	command ReassignPartnerCommand,
) (AssignmentResult, error) {
	if err := command.Validate(); err != nil {
		return AssignmentResult{}, err
	}

	result, eligible, err := h.check(ctx, command)
	if err != nil || !eligible {
		return result, err
	}

	assignCmd, err := NewAssignPartnerCommand(command.OrderID())
	if err != nil {
		return AssignmentResult{}, err
	}
	return h.assigner.Handle(ctx, assignCmd)
}

// check reads the order in its own short transaction, which is closed before assignment starts.
func (h ReassignPartnerCommandHandler) check(
	ctx context.Context,
	command ReassignPartnerCommand,
) (AssignmentResult, bool, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return AssignmentResult{}, false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().Get(ctx, command.OrderID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return newResult(StatusOrderNotFound, nil), false, nil
	}
	if err != nil {
		return AssignmentResult{}, false, err
	}

	switch {
	case o.IsAssigned():
		return newResult(StatusStillAssigned, o.Partner()), false, nil
	case !o.CanBeReassigned():
		return newResult(StatusNoReassignmentNeeded, nil), false, nil
	default:
		return AssignmentResult{}, true, nil
	}
}
