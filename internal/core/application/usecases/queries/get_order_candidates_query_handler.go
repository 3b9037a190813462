package queries

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
)

// Repositories gives queries read access outside of a transaction.
type Repositories interface {
	OrderRepository() ports.OrderRepository
	PartnerRepository() ports.PartnerRepository
}

// GetOrderCandidatesQueryHandler ranks the currently available partners for one order.
// Returns an errs.ObjectNotFoundError for unknown orders.
type GetOrderCandidatesQueryHandler struct {
	repos  Repositories
	ranker services.CandidateRanker
}

// NewGetOrderCandidatesQueryHandler creates the handler.
//
// Example:
//
//	handler := queries.NewGetOrderCandidatesQueryHandler(uowFactory.Create())
//	candidates, err := handler.Handle(ctx, query)
func NewGetOrderCandidatesQueryHandler(repos Repositories) GetOrderCandidatesQueryHandler {
	return GetOrderCandidatesQueryHandler{
		repos:  repos,
		ranker: services.NewCandidateRanker(),
	}
}

// Handle returns candidates best first, or an empty slice when no partner is available.
func (h GetOrderCandidatesQueryHandler) Handle(
	ctx context.Context,
	query GetOrderCandidatesQuery,
) ([]services.Candidate, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orderRepo := h.repos.OrderRepository()

	o, err := orderRepo.Get(ctx, query.OrderID())
	if err != nil {
		return nil, err
	}

	partners, err := h.repos.PartnerRepository().GetAllAvailable(ctx)
	if err != nil {
		return nil, err
	}
	if len(partners) == 0 {
		return []services.Candidate{}, nil
	}

	ids := make([]kernel.UUID, 0, len(partners))
	for _, p := range partners {
		ids = append(ids, p.ID())
	}

	loads, err := orderRepo.CountActiveDeliveries(ctx, ids)
	if err != nil {
		return nil, err
	}

	return h.ranker.Rank(o, partners, loads), nil
}
