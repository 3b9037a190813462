// Package order models the order as seen by partner assignment: its lifecycle status,
// its delivery status, the bound partner and the delivery address used for ranking.
package order
