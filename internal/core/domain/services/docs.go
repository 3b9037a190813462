// Package services holds domain logic that spans the order and partner models.
//
// The package includes:
//   - CandidateRanker: orders available partners for an order by locality, load, fairness and distance
package services
