package commands

import (
	"context"
	"log/slog"
	"sync/atomic"

	"dispatch/internal/core/domain/model/order"

	"golang.org/x/sync/errgroup"
)

// DefaultSweepConcurrency bounds parallel assignment attempts when none is configured.
const DefaultSweepConcurrency = 4

// SweepResult reports how many orders were attempted, whatever their outcome.
type SweepResult struct {
	Processed int
}

// SweepObserver receives the number of orders each sweep attempted.
type SweepObserver interface {
	ObserveSweep(processed int)
}

// SweepPendingOrdersCommandHandler retries assignment for every order awaiting a partner.
//
// Orders are distinct, so attempts run in parallel up to the configured limit.
// A failed attempt is logged and counted; it never stops the rest of the sweep.
// A failed listing yields zero processed orders and no error.
type SweepPendingOrdersCommandHandler struct {
	uowFactory  OrderUoWFactory
	assigner    Assigner
	concurrency int
	observer    SweepObserver
	logger      *slog.Logger
}

// NewSweepPendingOrdersCommandHandler creates the handler.
// concurrency below 1 means DefaultSweepConcurrency. observer may be nil.
//
// Example:
//
//	sweep := commands.NewSweepPendingOrdersCommandHandler(uowFactory, assign, 4, metrics, logger)
//	result, _ := sweep.Handle(ctx, commands.NewSweepPendingOrdersCommand())
func NewSweepPendingOrdersCommandHandler(
	uowFactory OrderUoWFactory,
	assigner Assigner,
	concurrency int,
	observer SweepObserver,
	logger *slog.Logger,
) SweepPendingOrdersCommandHandler {
	if concurrency < 1 {
		concurrency = DefaultSweepConcurrency
	}
	if logger == nil {
		logger = slog.Default()
	}

	return SweepPendingOrdersCommandHandler{
		uowFactory:  uowFactory,
		assigner:    assigner,
		concurrency: concurrency,
		observer:    observer,
		logger:      logger.With("component", "sweep-pending-orders"),
	}
}

// Handle lists orders awaiting a partner and attempts each one.
// The error is non-nil only for an invalid command.
func (h SweepPendingOrdersCommandHandler) Handle(ctx context.Context, command SweepPendingOrdersCommand) (SweepResult, error) {
	if err := command.Validate(); err != nil {
		return SweepResult{}, err
	}

	listed, err := h.listAwaiting(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list orders awaiting assignment", "error", err)
		return SweepResult{Processed: 0}, nil
	}

	orders := h.stillAwaiting(ctx, listed)
	if len(orders) == 0 {
		return SweepResult{Processed: 0}, nil
	}

	var processed atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(h.concurrency)

	for _, o := range orders {
		g.Go(func() error {
			defer processed.Add(1)
			h.attempt(gctx, o)
			return nil
		})
	}
	_ = g.Wait()

	result := SweepResult{Processed: int(processed.Load())}
	if h.observer != nil {
		h.observer.ObserveSweep(result.Processed)
	}
	h.logger.InfoContext(ctx, "sweep finished", "processed", result.Processed)
	return result, nil
}

// listAwaiting reads the sweep backlog in a short read-only transaction.
func (h SweepPendingOrdersCommandHandler) listAwaiting(ctx context.Context) ([]*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	return uow.OrderRepository().GetAllAwaitingAssignment(ctx)
}

// stillAwaiting drops listed orders the aggregate does not consider awaiting a partner.
func (h SweepPendingOrdersCommandHandler) stillAwaiting(ctx context.Context, listed []*order.Order) []*order.Order {
	orders := make([]*order.Order, 0, len(listed))
	for _, o := range listed {
		if err := o.Validate(); err != nil {
			h.logger.WarnContext(ctx, "skipping invalid order in sweep", "error", err)
			continue
		}
		if !o.IsAwaitingAssignment() {
			h.logger.DebugContext(ctx, "skipping order no longer awaiting assignment", "order_id", o.ID().String())
			continue
		}
		orders = append(orders, o)
	}
	return orders
}

func (h SweepPendingOrdersCommandHandler) attempt(ctx context.Context, o *order.Order) {
	cmd, err := NewAssignPartnerCommand(o.ID())
	if err != nil {
		h.logger.ErrorContext(ctx, "invalid order in sweep", "error", err)
		return
	}

	result, err := h.assigner.Handle(ctx, cmd)
	if err != nil {
		h.logger.ErrorContext(ctx, "assignment attempt failed",
			"order_id", o.ID().String(),
			"error", err,
		)
		return
	}

	h.logger.DebugContext(ctx, "assignment attempted",
		"order_id", o.ID().String(),
		"status", result.Status.String(),
	)
}
