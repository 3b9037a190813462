package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetOrderCandidatesQueryIsNotConstructed = errors.New(
	"GetOrderCandidatesQuery must be created via NewGetOrderCandidatesQuery constructor",
)

// GetOrderCandidatesQuery previews the ranking an assignment attempt would use for an order.
// Nothing is written.
type GetOrderCandidatesQuery struct {
	orderID kernel.UUID
	guard   guard.ConstructorGuard
}

// NewGetOrderCandidatesQuery fails for the nil UUID.
func NewGetOrderCandidatesQuery(orderID kernel.UUID) (GetOrderCandidatesQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderCandidatesQuery{}, err
	}
	return GetOrderCandidatesQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderCandidatesQuery) OrderID() kernel.UUID {
	return q.orderID
}

func (q GetOrderCandidatesQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderCandidatesQueryIsNotConstructed)
}
