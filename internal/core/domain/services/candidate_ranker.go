package services

import (
	"cmp"
	"slices"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/partner"
)

// Locality rank groups. Lower is preferred.
const (
	RankSameCity  = 1
	RankSameState = 2
	RankElsewhere = 3
)

// Candidate is one ranked partner for a single assignment attempt. It is never persisted.
type Candidate struct {
	PartnerID            kernel.UUID
	RankGroup            int
	ActiveDeliveries     int
	LastAssignedAtMillis int64
	DistanceKm           float64
}

// CandidateRanker orders available partners for an order.
//
// Sort key, ascending:
//   - locality rank group (same city, same state, elsewhere)
//   - active deliveries
//   - last assignment time in epoch millis, 0 when never assigned
//   - haversine distance in km, +Inf when either side has no coordinates
//
// The partner id is the final tie-break so equal keys never depend on input order.
type CandidateRanker struct{}

// NewCandidateRanker creates a ranker. It holds no state and is safe for concurrent use.
//
// Example:
//
//	candidates := services.NewCandidateRanker().Rank(o, partners, loads)
//	best := candidates[0]
func NewCandidateRanker() CandidateRanker {
	return CandidateRanker{}
}

// Rank returns candidates best first. loads maps partner id to active deliveries; missing means 0.
// Partners that fail Validate are left out.
func (CandidateRanker) Rank(
	o *order.Order,
	partners []partner.AvailablePartner,
	loads map[kernel.UUID]int,
) []Candidate {
	if o == nil || len(partners) == 0 {
		return []Candidate{}
	}

	address := o.Address()
	candidates := make([]Candidate, 0, len(partners))
	for _, p := range partners {
		if p.Validate() != nil {
			continue
		}
		profile := p.Profile()
		candidates = append(candidates, Candidate{
			PartnerID:            p.ID(),
			RankGroup:            rankGroup(address.Locality(), profile.Locality()),
			ActiveDeliveries:     loads[p.ID()],
			LastAssignedAtMillis: p.Availability().LastAssignedAtMillis(),
			DistanceKm:           address.Coordinates().DistanceTo(profile.Coordinates()),
		})
	}

	slices.SortStableFunc(candidates, compareCandidates)
	return candidates
}

func rankGroup(orderLocality, partnerLocality kernel.Locality) int {
	switch {
	case orderLocality.SameCity(partnerLocality):
		return RankSameCity
	case orderLocality.SameState(partnerLocality):
		return RankSameState
	default:
		return RankElsewhere
	}
}

func compareCandidates(a, b Candidate) int {
	return cmp.Or(
		cmp.Compare(a.RankGroup, b.RankGroup),
		cmp.Compare(a.ActiveDeliveries, b.ActiveDeliveries),
		cmp.Compare(a.LastAssignedAtMillis, b.LastAssignedAtMillis),
		cmp.Compare(a.DistanceKm, b.DistanceKm),
		cmp.Compare(a.PartnerID.String(), b.PartnerID.String()),
	)
}
