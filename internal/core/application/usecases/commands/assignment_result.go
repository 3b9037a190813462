package commands

import "dispatch/internal/core/domain/model/kernel"

// AssignmentStatus is the named outcome of an assignment attempt.
// Every status is a normal result; only infrastructure failures are returned as errors.
type AssignmentStatus string

const (
	StatusOrderNotFound        AssignmentStatus = "order_not_found"
	StatusAlreadyAssigned      AssignmentStatus = "already_assigned"
	StatusNoAvailablePartners  AssignmentStatus = "no_available_partners"
	StatusNoCandidates         AssignmentStatus = "no_candidates"
	StatusRaceLost             AssignmentStatus = "race_lost_or_already_assigned"
	StatusAssigned             AssignmentStatus = "assigned"
	StatusStillAssigned        AssignmentStatus = "still_assigned"
	StatusNoReassignmentNeeded AssignmentStatus = "no_reassignment_needed"
)

func (s AssignmentStatus) String() string {
	return string(s)
}

// AssignmentResult is returned by both the assign and the reassign handlers.
// PartnerID is nil unless Status is StatusAssigned, StatusAlreadyAssigned or StatusStillAssigned.
type AssignmentResult struct {
	PartnerID *kernel.UUID
	Status    AssignmentStatus
}

func newResult(status AssignmentStatus, partnerID *kernel.UUID) AssignmentResult {
	return AssignmentResult{PartnerID: partnerID, Status: status}
}

// AssignmentObserver receives every completed assignment outcome.
type AssignmentObserver interface {
	ObserveAssignment(status string)
}

type nopObserver struct{}

func (nopObserver) ObserveAssignment(string) {}
