// Package kernel provides the value objects shared by the order and partner models:
//   - UUID: identifier of orders and delivery partners
//   - Coordinates and DistanceKm: optional geocoded points and haversine distance
//   - Locality: city and state used for locality ranking
package kernel
