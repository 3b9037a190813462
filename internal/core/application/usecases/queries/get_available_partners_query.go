package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetAvailablePartnersQueryIsNotConstructed = errors.New(
	"GetAvailablePartnersQuery must be created via NewGetAvailablePartnersQuery constructor",
)

// GetAvailablePartnersQuery lists partners that can currently take an order,
// together with their locality and how many deliveries they are carrying.
//
// Example:
//
//	partners, err := handler.Handle(ctx, NewGetAvailablePartnersQuery())
//	if err != nil {
//	    return err
//	}
//	for _, p := range partners {
//	    fmt.Printf("%s in %s carries %d\n", p.ID, p.City, p.ActiveDeliveries)
//	}
type GetAvailablePartnersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetAvailablePartnersQuery creates the query.
func NewGetAvailablePartnersQuery() GetAvailablePartnersQuery {
	return GetAvailablePartnersQuery{guard: guard.NewConstructorGuard()}
}

func (q GetAvailablePartnersQuery) Validate() error {
	return q.guard.Validate(ErrGetAvailablePartnersQueryIsNotConstructed)
}

// GetAvailablePartnersQueryResponse is the read model of one available partner.
type GetAvailablePartnersQueryResponse struct {
	ID               kernel.UUID
	City             string
	State            string
	Coordinates      kernel.Coordinates
	LastAssignedAt   *time.Time
	ActiveDeliveries int
}
