package ports

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/kernel"
)

// PartnerAssigned is emitted after an assignment has been committed.
type PartnerAssigned struct {
	OrderID    kernel.UUID
	PartnerID  kernel.UUID
	AssignedAt time.Time
}

// AssignmentEventPublisher notifies downstream consumers about committed assignments.
type AssignmentEventPublisher interface {
	PublishPartnerAssigned(ctx context.Context, event PartnerAssigned) error
}
