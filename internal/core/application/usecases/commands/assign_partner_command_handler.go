package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/partner"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// AssignPartnerCommandHandler binds the top-ranked available partner to an order.
//
// Reads, the conditional write and the partner's last-assigned touch share one unit of work.
// Correctness for concurrent calls on the same order rests on the conditional write alone:
// exactly one caller sees its write apply, every other caller gets StatusRaceLost.
// The partner.assigned event is published after commit; a failed publish is logged only.
type AssignPartnerCommandHandler struct {
	uowFactory UoWFactory
	ranker     services.CandidateRanker
	publisher  ports.AssignmentEventPublisher
	observer   AssignmentObserver
	logger     *slog.Logger
	now        func() time.Time
}

// NewAssignPartnerCommandHandler creates the handler. publisher and observer may be nil.
func NewAssignPartnerCommandHandler(
	uowFactory UoWFactory,
	publisher ports.AssignmentEventPublisher,
	observer AssignmentObserver,
	logger *slog.Logger,
) AssignPartnerCommandHandler {
	if observer == nil {
		observer = nopObserver{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return AssignPartnerCommandHandler{
		uowFactory: uowFactory,
		ranker:     services.NewCandidateRanker(),
		publisher:  publisher,
		observer:   observer,
		logger:     logger.With("component", "assign-partner"),
		now:        time.Now,
	}
}

// Handle runs one assignment attempt. See AssignmentStatus for the possible outcomes.
func (h AssignPartnerCommandHandler) Handle(ctx context.Context, command AssignPartnerCommand) (AssignmentResult, error) {
	if err := command.Validate(); err != nil {
		return AssignmentResult{}, err
	}

	result, err := h.assign(ctx, command.OrderID())
	if err != nil {
		return AssignmentResult{}, err
	}

	h.observer.ObserveAssignment(result.Status.String())
	return result, nil
}

func (h AssignPartnerCommandHandler) assign(ctx context.Context, orderID kernel.UUID) (AssignmentResult, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return AssignmentResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	partnerRepo := uow.PartnerRepository()

	o, err := orderRepo.Get(ctx, orderID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return newResult(StatusOrderNotFound, nil), nil
	}
	if err != nil {
		return AssignmentResult{}, err
	}

	if o.IsAssigned() {
		return newResult(StatusAlreadyAssigned, o.Partner()), nil
	}

	partners, err := partnerRepo.GetAllAvailable(ctx)
	if err != nil {
		return AssignmentResult{}, err
	}
	if len(partners) == 0 {
		return h.park(ctx, uow, orderRepo, orderID, StatusNoAvailablePartners)
	}

	loads, err := orderRepo.CountActiveDeliveries(ctx, partnerIDs(partners))
	if err != nil {
		return AssignmentResult{}, err
	}

	// the directory listed partners but none of them survived ranking
	candidates := h.ranker.Rank(o, partners, loads)
	if len(candidates) == 0 {
		return h.park(ctx, uow, orderRepo, orderID, StatusNoCandidates)
	}

	selected := candidates[0]
	at := h.now().UTC()

	bound, err := orderRepo.AssignPartner(ctx, orderID, selected.PartnerID, at)
	if err != nil {
		return AssignmentResult{}, err
	}
	if bound == nil {
		h.logger.DebugContext(ctx, "conditional write matched no row", "order_id", orderID.String())
		return newResult(StatusRaceLost, nil), nil
	}

	if err = partnerRepo.TouchLastAssigned(ctx, *bound, at); err != nil {
		return AssignmentResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return AssignmentResult{}, err
	}

	h.logger.InfoContext(ctx, "partner assigned",
		"order_id", orderID.String(),
		"partner_id", bound.String(),
		"rank_group", selected.RankGroup,
		"active_deliveries", selected.ActiveDeliveries,
	)
	h.publish(ctx, ports.PartnerAssigned{OrderID: orderID, PartnerID: *bound, AssignedAt: at})

	return newResult(StatusAssigned, bound), nil
}

// park marks the order pending_assignment so the sweep picks it up later.
func (h AssignPartnerCommandHandler) park(
	ctx context.Context,
	tx TxManager,
	orderRepo ports.OrderRepository,
	orderID kernel.UUID,
	status AssignmentStatus,
) (AssignmentResult, error) {
	if err := orderRepo.MarkPendingAssignment(ctx, orderID, h.now().UTC()); err != nil {
		return AssignmentResult{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return AssignmentResult{}, err
	}

	h.logger.InfoContext(ctx, "order parked", "order_id", orderID.String(), "status", status.String())
	return newResult(status, nil), nil
}

func (h AssignPartnerCommandHandler) publish(ctx context.Context, event ports.PartnerAssigned) {
	if h.publisher == nil {
		return
	}
	if err := h.publisher.PublishPartnerAssigned(ctx, event); err != nil {
		h.logger.WarnContext(ctx, "failed to publish partner assigned event",
			"order_id", event.OrderID.String(),
			"error", err,
		)
	}
}

func partnerIDs(partners []partner.AvailablePartner) []kernel.UUID {
	ids := make([]kernel.UUID, 0, len(partners))
	for _, p := range partners {
		ids = append(ids, p.ID())
	}
	return ids
}
